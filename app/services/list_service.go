package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tasknest/app/models"
)

// ListService handles todo-list CRUD for a given principal.
type ListService struct {
	db *gorm.DB
}

// NewListService creates a new instance of ListService.
func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

func getOwnedList(tx *gorm.DB, userID, listID uint) (*models.List, error) {
	var list models.List
	err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("List not found")
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetLists returns all lists owned by userID with their task counts.
func (s *ListService) GetLists(ctx context.Context, userID uint) ([]models.ListSummary, error) {
	db := s.db.WithContext(ctx)

	var lists []models.List
	if err := db.Where("user_id = ?", userID).Order("id").Find(&lists).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.ListSummary, 0, len(lists))
	for _, l := range lists {
		var count int64
		if err := db.Model(&models.Task{}).Where("list_id = ?", l.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ListSummary{List: l, TaskCount: count})
	}
	return summaries, nil
}

// GetList returns one owned list with its top-level tasks nested.
func (s *ListService) GetList(ctx context.Context, userID, listID uint) (*models.ListDetail, error) {
	db := s.db.WithContext(ctx)

	list, err := getOwnedList(db, userID, listID)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := db.Where("list_id = ?", listID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &models.ListDetail{
		ListSummary: models.ListSummary{List: *list, TaskCount: int64(len(tasks))},
		Tasks:       nestTasks(tasks),
	}, nil
}

// CreateList creates a new list for userID.
func (s *ListService) CreateList(ctx context.Context, userID uint, name, description string) (*models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("List name cannot be empty")
	}

	list := &models.List{Name: name, Description: description, UserID: userID}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList updates the provided fields of an owned list.
func (s *ListService) UpdateList(ctx context.Context, userID, listID uint, name, description *string) (*models.List, error) {
	var list *models.List
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		list, err = getOwnedList(tx, userID, listID)
		if err != nil {
			return err
		}
		if name != nil {
			trimmed := strings.TrimSpace(*name)
			if trimmed == "" {
				return invalid("List name cannot be empty")
			}
			list.Name = trimmed
		}
		if description != nil {
			list.Description = *description
		}
		return tx.Save(list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList deletes an owned list and every task in it.
func (s *ListService) DeleteList(ctx context.Context, userID, listID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := getOwnedList(tx, userID, listID)
		if err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
}
