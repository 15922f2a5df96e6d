package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"tasknest/app/models"
)

// TaskService handles task-related operations, including the tree
// mutations (nesting, cascades, moves).
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Title       string
	Description string
	Urgency     string
	ListID      uint
	ParentID    *uint
}

// TaskUpdate carries the optional fields of a task update; nil means
// "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Description *string
	Urgency     *string
	Completed   *bool
}

// TreeResult is a task subtree with its summary numbers.
type TreeResult struct {
	Tree             models.TaskNode
	Depth            int
	TotalDescendants int
}

// FlatResult is a pre-order flattening of a task subtree.
type FlatResult struct {
	Tasks          []models.Task
	TotalCount     int
	CompletedCount int
}

func getOwnedTask(tx *gorm.DB, userID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Task not found")
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func nodeFromRows(rows []models.Task) models.TaskNode {
	byParent := make(map[uint][]models.Task)
	for _, t := range rows[1:] {
		if t.ParentID != nil {
			byParent[*t.ParentID] = append(byParent[*t.ParentID], t)
		}
	}
	return buildNode(rows[0], byParent)
}

func (s *TaskService) loadNode(tx *gorm.DB, userID, taskID uint) (*models.TaskNode, error) {
	task, err := getOwnedTask(tx, userID, taskID)
	if err != nil {
		return nil, err
	}
	rows, err := subtreeRows(tx, task)
	if err != nil {
		return nil, err
	}
	node := nodeFromRows(rows)
	return &node, nil
}

// GetListTasks returns the top-level tasks of an owned list, children nested.
func (s *TaskService) GetListTasks(ctx context.Context, userID, listID uint) ([]models.TaskNode, error) {
	db := s.db.WithContext(ctx)
	if _, err := getOwnedList(db, userID, listID); err != nil {
		return nil, err
	}
	var rows []models.Task
	if err := db.Where("list_id = ?", listID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return nestTasks(rows), nil
}

// GetTask returns one owned task with its descendants nested.
func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint) (*models.TaskNode, error) {
	return s.loadNode(s.db.WithContext(ctx), userID, taskID)
}

// GetSubtasks returns an owned task and its direct children (nested below).
func (s *TaskService) GetSubtasks(ctx context.Context, userID, taskID uint) (*models.Task, []models.TaskNode, error) {
	node, err := s.loadNode(s.db.WithContext(ctx), userID, taskID)
	if err != nil {
		return nil, nil, err
	}
	return &node.Task, node.Children, nil
}

// CreateTask creates a task at depth 0, or under ParentID when given.
// The parent's list wins over ListID so a subtree never spans lists.
func (s *TaskService) CreateTask(ctx context.Context, userID uint, in TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("Task title cannot be empty")
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyMedium
	}
	if !models.ValidUrgency(urgency) {
		return nil, invalid("Invalid urgency level")
	}

	task := &models.Task{
		Title:       title,
		Description: in.Description,
		Urgency:     urgency,
		UserID:      userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.ParentID != nil {
			parent, err := getOwnedTask(tx, userID, *in.ParentID)
			if err != nil {
				if KindOf(err) == KindNotFound {
					return notFound("Parent task not found")
				}
				return err
			}
			if parent.Depth >= models.MaxTaskDepth {
				return depthLimit("Maximum nesting depth reached")
			}
			task.ParentID = &parent.ID
			task.Depth = parent.Depth + 1
			task.ListID = parent.ListID
		} else {
			list, err := getOwnedList(tx, userID, in.ListID)
			if err != nil {
				return err
			}
			task.ListID = list.ID
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask mutates title/description/urgency/completed in place.
// Setting Completed=true cascades to every descendant; setting it false
// touches only this task.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, up TaskUpdate) (*models.TaskNode, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getOwnedTask(tx, userID, taskID)
		if err != nil {
			return err
		}

		if up.Title != nil {
			title := strings.TrimSpace(*up.Title)
			if title == "" {
				return invalid("Task title cannot be empty")
			}
			task.Title = title
		}
		if up.Description != nil {
			task.Description = *up.Description
		}
		if up.Urgency != nil {
			if !models.ValidUrgency(*up.Urgency) {
				return invalid("Invalid urgency level")
			}
			task.Urgency = *up.Urgency
		}
		if up.Completed != nil {
			if *up.Completed {
				now := time.Now().UTC()
				task.Completed = true
				task.CompletedAt = &now

				rows, err := subtreeRows(tx, task)
				if err != nil {
					return err
				}
				if len(rows) > 1 {
					if err := tx.Model(&models.Task{}).
						Where("id IN ?", taskIDs(rows[1:])).
						Updates(map[string]any{"completed": true, "completed_at": now}).Error; err != nil {
						return err
					}
				}
			} else {
				task.Completed = false
				task.CompletedAt = nil
			}
		}

		return tx.Save(task).Error
	})
	if err != nil {
		return nil, err
	}
	return s.loadNode(s.db.WithContext(ctx), userID, taskID)
}

// DeleteTask removes an owned task and its entire subtree.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getOwnedTask(tx, userID, taskID)
		if err != nil {
			return err
		}
		rows, err := subtreeRows(tx, task)
		if err != nil {
			return err
		}
		return tx.Where("id IN ?", taskIDs(rows)).Delete(&models.Task{}).Error
	})
}

// MoveTask re-parents a task within its list (nil parent makes it
// top-level), recomputing the depth of the whole moved subtree.
func (s *TaskService) MoveTask(ctx context.Context, userID, taskID uint, newParentID *uint) (*models.TaskNode, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getOwnedTask(tx, userID, taskID)
		if err != nil {
			return err
		}
		rows, err := subtreeRows(tx, task)
		if err != nil {
			return err
		}

		newDepth := 0
		if newParentID != nil {
			parent, err := getOwnedTask(tx, userID, *newParentID)
			if err != nil {
				if KindOf(err) == KindNotFound {
					return notFound("New parent task not found")
				}
				return err
			}
			if parent.ListID != task.ListID {
				return conflict("Cannot move task to different list")
			}
			for _, id := range taskIDs(rows) {
				if id == parent.ID {
					return conflict("Cannot move task to descendant")
				}
			}
			newDepth = parent.Depth + 1
		}

		delta := newDepth - task.Depth
		if maxRowDepth(rows)+delta > models.MaxTaskDepth {
			return depthLimit("Maximum nesting depth reached")
		}

		if delta != 0 {
			if err := tx.Model(&models.Task{}).
				Where("id IN ?", taskIDs(rows)).
				UpdateColumn("depth", gorm.Expr("depth + ?", delta)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("parent_id", newParentID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.loadNode(s.db.WithContext(ctx), userID, taskID)
}

// MoveTaskToList moves a top-level task (and its subtree) to another
// owned list.
func (s *TaskService) MoveTaskToList(ctx context.Context, userID, taskID, newListID uint) (*models.TaskNode, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getOwnedTask(tx, userID, taskID)
		if err != nil {
			return err
		}
		if task.ParentID != nil {
			return conflict("Only top-level tasks can be moved between lists")
		}
		if _, err := getOwnedList(tx, userID, newListID); err != nil {
			if KindOf(err) == KindNotFound {
				return notFound("Destination list not found")
			}
			return err
		}
		rows, err := subtreeRows(tx, task)
		if err != nil {
			return err
		}
		return tx.Model(&models.Task{}).
			Where("id IN ?", taskIDs(rows)).
			UpdateColumn("list_id", newListID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.loadNode(s.db.WithContext(ctx), userID, taskID)
}

// TaskTree returns the subtree rooted at an owned task.
func (s *TaskService) TaskTree(ctx context.Context, userID, taskID uint) (*TreeResult, error) {
	db := s.db.WithContext(ctx)
	task, err := getOwnedTask(db, userID, taskID)
	if err != nil {
		return nil, err
	}
	rows, err := subtreeRows(db, task)
	if err != nil {
		return nil, err
	}
	return &TreeResult{
		Tree:             nodeFromRows(rows),
		Depth:            task.Depth,
		TotalDescendants: len(rows) - 1,
	}, nil
}

// FlattenTask returns an owned task and its descendants as a flat
// pre-order sequence.
func (s *TaskService) FlattenTask(ctx context.Context, userID, taskID uint) (*FlatResult, error) {
	db := s.db.WithContext(ctx)
	task, err := getOwnedTask(db, userID, taskID)
	if err != nil {
		return nil, err
	}
	rows, err := subtreeRows(db, task)
	if err != nil {
		return nil, err
	}

	flat := make([]models.Task, 0, len(rows))
	preorder(nodeFromRows(rows), &flat)

	completed := 0
	for _, t := range flat {
		if t.Completed {
			completed++
		}
	}
	return &FlatResult{Tasks: flat, TotalCount: len(flat), CompletedCount: completed}, nil
}

// SetAllCompleted sets the completed flag on every task in an owned
// list, at every depth, in one pass.
func (s *TaskService) SetAllCompleted(ctx context.Context, userID, listID uint, completed bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := getOwnedList(tx, userID, listID)
		if err != nil {
			return err
		}
		updates := map[string]any{"completed": completed, "completed_at": nil}
		if completed {
			updates["completed_at"] = time.Now().UTC()
		}
		return tx.Model(&models.Task{}).
			Where("list_id = ?", list.ID).
			Updates(updates).Error
	})
}
