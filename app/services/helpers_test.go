package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tasknest/app/models"
	"tasknest/app/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedList(t *testing.T, db *gorm.DB, userID uint, name string) *models.List {
	t.Helper()
	list := &models.List{Name: name, UserID: userID}
	require.NoError(t, db.Create(list).Error)
	return list
}

// seedChain creates a root task plus a chain of subtasks, one per depth
// level, and returns them root-first.
func seedChain(t *testing.T, svc *TaskService, userID, listID uint, length int) []*models.Task {
	t.Helper()
	ctx := context.Background()

	root, err := svc.CreateTask(ctx, userID, TaskInput{Title: "root", ListID: listID})
	require.NoError(t, err)

	chain := []*models.Task{root}
	parent := root.ID
	for i := 1; i < length; i++ {
		task, err := svc.CreateTask(ctx, userID, TaskInput{Title: "sub", ParentID: &parent})
		require.NoError(t, err)
		chain = append(chain, task)
		parent = task.ID
	}
	return chain
}
