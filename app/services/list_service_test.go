package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/app/models"
)

func TestListCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()

	_, err := svc.CreateList(ctx, user.ID, "  ", "")
	assert.Equal(t, KindInvalid, KindOf(err))

	list, err := svc.CreateList(ctx, user.ID, " Groceries ", "weekly shop")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", list.Name)

	name := "Errands"
	updated, err := svc.UpdateList(ctx, user.ID, list.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Errands", updated.Name)
	assert.Equal(t, "weekly shop", updated.Description)

	empty := " "
	_, err = svc.UpdateList(ctx, user.ID, list.ID, &empty, nil)
	assert.Equal(t, KindInvalid, KindOf(err))

	lists, err := svc.GetLists(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, int64(0), lists[0].TaskCount)
}

func TestGetListIncludesNestedTasks(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	tasks := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	seedChain(t, tasks, user.ID, list.ID, 3)

	detail, err := svc.GetList(ctx, user.ID, list.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.TaskCount)
	require.Len(t, detail.Tasks, 1) // only the root is top-level
	require.Len(t, detail.Tasks[0].Children, 1)
	require.Len(t, detail.Tasks[0].Children[0].Children, 1)
}

func TestDeleteListCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	tasks := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	keep := seedList(t, db, user.ID, "Keep")
	ctx := context.Background()

	seedChain(t, tasks, user.ID, list.ID, 3)
	kept, err := tasks.CreateTask(ctx, user.ID, TaskInput{Title: "kept", ListID: keep.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(ctx, user.ID, list.ID))

	var remaining []models.Task
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	_, err = svc.GetList(ctx, user.ID, list.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListsHiddenAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")
	list := seedList(t, db, alice.ID, "private")
	ctx := context.Background()

	_, err := svc.GetList(ctx, mallory.ID, list.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = svc.DeleteList(ctx, mallory.ID, list.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	lists, err := svc.GetLists(ctx, mallory.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}
