package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/app/models"
)

func TestCreateTaskDepths(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, list.ID, models.MaxTaskDepth+1)
	for i, task := range chain {
		assert.Equal(t, i, task.Depth)
		assert.Equal(t, list.ID, task.ListID)
	}

	// One level past the maximum is rejected.
	deepest := chain[len(chain)-1].ID
	_, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "too deep", ParentID: &deepest})
	require.Error(t, err)
	assert.Equal(t, KindDepthLimit, KindOf(err))
}

func TestCreateTaskValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "   ", ListID: list.ID})
	assert.Equal(t, KindInvalid, KindOf(err))

	_, err = svc.CreateTask(ctx, user.ID, TaskInput{Title: "t", ListID: list.ID, Urgency: "asap"})
	assert.Equal(t, KindInvalid, KindOf(err))

	task, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "t", ListID: list.ID})
	require.NoError(t, err)
	assert.Equal(t, models.UrgencyMedium, task.Urgency)
}

func TestSubtaskInheritsParentList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	listA := seedList(t, db, user.ID, "A")
	listB := seedList(t, db, user.ID, "B")
	ctx := context.Background()

	root, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "root", ListID: listA.ID})
	require.NoError(t, err)

	// A conflicting list_id in the request loses to the parent's list.
	sub, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "sub", ListID: listB.ID, ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, listA.ID, sub.ListID)
}

func TestCompleteCascadesDownOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, list.ID, 3)
	root, mid, leaf := chain[0], chain[1], chain[2]

	completed := true
	_, err := svc.UpdateTask(ctx, user.ID, root.ID, TaskUpdate{Completed: &completed})
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, db.Order("id").Find(&tasks).Error)
	for _, task := range tasks {
		assert.True(t, task.Completed, "task %d should be completed", task.ID)
		assert.NotNil(t, task.CompletedAt)
	}

	// Unchecking the middle task touches only that node: the leaf stays
	// completed and the root is not forced back to incomplete.
	completed = false
	_, err = svc.UpdateTask(ctx, user.ID, mid.ID, TaskUpdate{Completed: &completed})
	require.NoError(t, err)

	byID := map[uint]models.Task{}
	require.NoError(t, db.Order("id").Find(&tasks).Error)
	for _, task := range tasks {
		byID[task.ID] = task
	}
	assert.True(t, byID[root.ID].Completed)
	assert.False(t, byID[mid.ID].Completed)
	assert.Nil(t, byID[mid.ID].CompletedAt)
	assert.True(t, byID[leaf.ID].Completed)
}

func TestDeleteTaskRemovesSubtree(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, list.ID, 4)
	other, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "keep", ListID: list.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, user.ID, chain[1].ID))

	var remaining []models.Task
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, chain[0].ID, remaining[0].ID)
	assert.Equal(t, other.ID, remaining[1].ID)
}

func TestMoveTaskRecomputesSubtreeDepth(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, list.ID, 3) // root(0) -> mid(1) -> leaf(2)
	mid, leaf := chain[1], chain[2]

	// Promote mid to top level; its subtree shifts up by one.
	node, err := svc.MoveTask(ctx, user.ID, mid.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, node.ParentID)
	assert.Equal(t, 0, node.Depth)
	require.Len(t, node.Children, 1)
	assert.Equal(t, 1, node.Children[0].Depth)

	// Move it back under the root; depths shift down again.
	node, err = svc.MoveTask(ctx, user.ID, mid.ID, &chain[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, node.Depth)

	var got models.Task
	require.NoError(t, db.First(&got, leaf.ID).Error)
	assert.Equal(t, 2, got.Depth)
}

func TestMoveTaskDepthLimitCountsSubtree(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	deep := seedChain(t, svc, user.ID, list.ID, models.MaxTaskDepth+1) // depths 0..5
	pair := seedChain(t, svc, user.ID, list.ID, 2)                     // root(0) -> child(1)

	// Hanging a two-level subtree under a depth-4 node would push the
	// child to depth 6.
	_, err := svc.MoveTask(ctx, user.ID, pair[0].ID, &deep[4].ID)
	require.Error(t, err)
	assert.Equal(t, KindDepthLimit, KindOf(err))

	// Under a depth-3 node it fits exactly.
	_, err = svc.MoveTask(ctx, user.ID, pair[0].ID, &deep[3].ID)
	require.NoError(t, err)

	var child models.Task
	require.NoError(t, db.First(&child, pair[1].ID).Error)
	assert.Equal(t, models.MaxTaskDepth, child.Depth)
}

func TestMoveTaskRejectsDescendantAndSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, list.ID, 3)

	_, err := svc.MoveTask(ctx, user.ID, chain[0].ID, &chain[2].ID)
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.MoveTask(ctx, user.ID, chain[0].ID, &chain[0].ID)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestMoveTaskRejectsCrossListParent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	listA := seedList(t, db, user.ID, "A")
	listB := seedList(t, db, user.ID, "B")
	ctx := context.Background()

	a, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "a", ListID: listA.ID})
	require.NoError(t, err)
	b, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "b", ListID: listB.ID})
	require.NoError(t, err)

	_, err = svc.MoveTask(ctx, user.ID, a.ID, &b.ID)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestMoveTaskToList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	listA := seedList(t, db, user.ID, "A")
	listB := seedList(t, db, user.ID, "B")
	ctx := context.Background()

	chain := seedChain(t, svc, user.ID, listA.ID, 3)

	// Non-root tasks cannot change lists directly.
	_, err := svc.MoveTaskToList(ctx, user.ID, chain[1].ID, listB.ID)
	assert.Equal(t, KindConflict, KindOf(err))

	// Moving the root drags the whole subtree along.
	_, err = svc.MoveTaskToList(ctx, user.ID, chain[0].ID, listB.ID)
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, db.Find(&tasks).Error)
	for _, task := range tasks {
		assert.Equal(t, listB.ID, task.ListID)
	}
}

func TestSetAllCompletedScopedToList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	listA := seedList(t, db, user.ID, "A")
	listB := seedList(t, db, user.ID, "B")
	ctx := context.Background()

	seedChain(t, svc, user.ID, listA.ID, 4)
	other, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "other", ListID: listB.ID})
	require.NoError(t, err)

	require.NoError(t, svc.SetAllCompleted(ctx, user.ID, listA.ID, true))

	var tasks []models.Task
	require.NoError(t, db.Where("list_id = ?", listA.ID).Find(&tasks).Error)
	require.Len(t, tasks, 4)
	for _, task := range tasks {
		assert.True(t, task.Completed)
	}
	var untouched models.Task
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.False(t, untouched.Completed)

	require.NoError(t, svc.SetAllCompleted(ctx, user.ID, listA.ID, false))
	require.NoError(t, db.Where("list_id = ?", listA.ID).Find(&tasks).Error)
	for _, task := range tasks {
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	}
}

func TestTreeAndFlatten(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	user := seedUser(t, db, "alice")
	list := seedList(t, db, user.ID, "Groceries")
	ctx := context.Background()

	root, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "root", ListID: list.ID})
	require.NoError(t, err)
	a, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "a", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, user.ID, TaskInput{Title: "a1", ParentID: &a.ID})
	require.NoError(t, err)
	b, err := svc.CreateTask(ctx, user.ID, TaskInput{Title: "b", ParentID: &root.ID})
	require.NoError(t, err)

	completed := true
	_, err = svc.UpdateTask(ctx, user.ID, b.ID, TaskUpdate{Completed: &completed})
	require.NoError(t, err)

	tree, err := svc.TaskTree(ctx, user.ID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Depth)
	assert.Equal(t, 3, tree.TotalDescendants)
	require.Len(t, tree.Tree.Children, 2)
	assert.Equal(t, "a", tree.Tree.Children[0].Title)
	require.Len(t, tree.Tree.Children[0].Children, 1)

	flat, err := svc.FlattenTask(ctx, user.ID, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, flat.TotalCount)
	assert.Equal(t, 1, flat.CompletedCount)

	titles := make([]string, 0, len(flat.Tasks))
	for _, task := range flat.Tasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"root", "a", "a1", "b"}, titles)
}

func TestOwnershipIsInvisible(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")
	list := seedList(t, db, alice.ID, "private")
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, alice.ID, TaskInput{Title: "secret", ListID: list.ID})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, mallory.ID, task.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	completed := true
	_, err = svc.UpdateTask(ctx, mallory.ID, task.ID, TaskUpdate{Completed: &completed})
	assert.Equal(t, KindNotFound, KindOf(err))

	err = svc.DeleteTask(ctx, mallory.ID, task.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.GetListTasks(ctx, mallory.ID, list.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	// Creating into someone else's list is equally invisible.
	_, err = svc.CreateTask(ctx, mallory.ID, TaskInput{Title: "x", ListID: list.ID})
	assert.Equal(t, KindNotFound, KindOf(err))
}
