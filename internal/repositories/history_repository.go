package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"promptbox/internal/models"
)

type HistoryRepository interface {
	List(ctx context.Context) ([]models.HistoryItem, error)
	Add(ctx context.Context, item *models.HistoryItem) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context, ids []uint) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// List returns every item, most recent first.
func (r *historyRepository) List(ctx context.Context) ([]models.HistoryItem, error) {
	var items []models.HistoryItem
	if err := r.db.WithContext(ctx).Order("timestamp DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return items, nil
}

func (r *historyRepository) Add(ctx context.Context, item *models.HistoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("adding history item: %w", err)
	}
	return nil
}

func (r *historyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.HistoryItem{}, id).Error; err != nil {
		return fmt.Errorf("deleting history item %d: %w", id, err)
	}
	return nil
}

func (r *historyRepository) DeleteMany(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&models.HistoryItem{}, ids).Error; err != nil {
		return fmt.Errorf("deleting %d history items: %w", len(ids), err)
	}
	return nil
}

func (r *historyRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.HistoryItem{}).Error; err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func (r *historyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.HistoryItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}
