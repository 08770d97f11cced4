package store

import (
	"context"

	"github.com/pathakanu/myLists/internal/database"
	"github.com/pathakanu/myLists/internal/model"
	"gorm.io/gorm"
)

// GetAllItems returns every item ordered by id.
func (s *Store) GetAllItems(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, database.IOError("get all items", err)
	}
	return items, nil
}

// GetItemsForList returns exactly the items whose list_id equals listID.
func (s *Store) GetItemsForList(ctx context.Context, listID uint) ([]model.Item, error) {
	items := []model.Item{}
	if err := s.db.WithContext(ctx).Where("list_id = ?", listID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, database.IOError("get items for list", err)
	}
	return items, nil
}

// InsertItem creates an unchecked item and returns its id. A listID without
// a matching list is rejected by the foreign key.
func (s *Store) InsertItem(ctx context.Context, listID uint, text string) (uint, error) {
	item := &model.Item{ListID: listID, Text: text, Done: false}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return 0, database.IOError("insert item", err)
	}
	return item.ID, nil
}

// DeleteItem hard-deletes an item. Deleting a missing id returns ErrNotFound
// and leaves other rows untouched.
func (s *Store) DeleteItem(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{})
	return affectedOne("delete item", result)
}

// UpdateItemDone sets the done flag. Repeating the same value is a no-op.
func (s *Store) UpdateItemDone(ctx context.Context, id uint, done bool) error {
	result := s.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Update("done", done)
	return affectedOne("update item done", result)
}

func affectedOne(op string, result *gorm.DB) error {
	if result.Error != nil {
		return database.IOError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return database.IOError(op, gorm.ErrRecordNotFound)
	}
	return nil
}
