// Package store exposes the query shapes the application needs over the
// lists and items tables. Every operation is a single parameterized
// statement except DeleteList, which removes a list and its items in one
// transaction.
package store

import (
	"context"

	"github.com/pathakanu/myLists/internal/database"
	"github.com/pathakanu/myLists/internal/model"
	"gorm.io/gorm"
)

// Store issues reads and writes against a shared database handle.
type Store struct {
	db *gorm.DB
}

// New wraps an opened handle. The handle stays owned by the caller.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetAllLists returns every list ordered by id.
func (s *Store) GetAllLists(ctx context.Context) ([]model.List, error) {
	lists := []model.List{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&lists).Error; err != nil {
		return nil, database.IOError("get all lists", err)
	}
	return lists, nil
}

// GetList returns the list with the given id.
func (s *Store) GetList(ctx context.Context, id uint) (model.List, error) {
	var list model.List
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&list).Error; err != nil {
		return model.List{}, database.IOError("get list", err)
	}
	return list, nil
}

// GetListsByDate returns the lists whose date equals date exactly. No
// normalisation is applied, so "2024-5-01" never matches "2024-05-01".
func (s *Store) GetListsByDate(ctx context.Context, date string) ([]model.List, error) {
	lists := []model.List{}
	if err := s.db.WithContext(ctx).Where("date = ?", date).Order("id ASC").Find(&lists).Error; err != nil {
		return nil, database.IOError("get lists by date", err)
	}
	return lists, nil
}

// GetListsFrom returns lists scheduled on or after date, ordered by date.
func (s *Store) GetListsFrom(ctx context.Context, date string) ([]model.List, error) {
	lists := []model.List{}
	if err := s.db.WithContext(ctx).Where("date >= ?", date).Order("date ASC, id ASC").Find(&lists).Error; err != nil {
		return nil, database.IOError("get lists from date", err)
	}
	return lists, nil
}

// InsertList creates a pending list and returns its id.
func (s *Store) InsertList(ctx context.Context, title, date string) (uint, error) {
	list := &model.List{Title: title, Date: date, Notified: false}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return 0, database.IOError("insert list", err)
	}
	return list.ID, nil
}

// MarkListNotified flips notified from 0 to 1 in a single conditional update.
// claimed is true only for the caller whose update changed the row; a list
// that was already notified yields claimed == false and no error.
func (s *Store) MarkListNotified(ctx context.Context, id uint) (claimed bool, err error) {
	result := s.db.WithContext(ctx).
		Model(&model.List{}).
		Where("id = ? AND notified = ?", id, false).
		Update("notified", true)
	if result.Error != nil {
		return false, database.IOError("mark list notified", result.Error)
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.List{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, database.IOError("mark list notified", err)
	}
	if count == 0 {
		return false, database.IOError("mark list notified", gorm.ErrRecordNotFound)
	}
	return false, nil
}

// DeleteList removes a list together with its items.
func (s *Store) DeleteList(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.List{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return database.IOError("delete list", err)
}
