package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptbox/internal/models"
)

type SettingRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Put(ctx context.Context, setting *models.Setting) error
	BulkPut(ctx context.Context, settings []models.Setting) error
	Clear(ctx context.Context) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	return settings, nil
}

// Get returns nil, nil when the key has never been written.
func (r *settingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("setting key is required")
	}
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).Take(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return &setting, nil
}

func (r *settingRepository) Put(ctx context.Context, setting *models.Setting) error {
	if setting == nil || setting.Key == "" {
		return fmt.Errorf("setting key is required")
	}
	if err := upsertSettings(r.db.WithContext(ctx), []models.Setting{*setting}); err != nil {
		return fmt.Errorf("putting setting %s: %w", setting.Key, err)
	}
	return nil
}

// BulkPut writes every setting in one transaction; either all land or none.
func (r *settingRepository) BulkPut(ctx context.Context, settings []models.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	for _, s := range settings {
		if s.Key == "" {
			return fmt.Errorf("setting key is required")
		}
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertSettings(tx, settings)
	})
	if err != nil {
		return fmt.Errorf("bulk putting %d settings: %w", len(settings), err)
	}
	return nil
}

func (r *settingRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}

func upsertSettings(db *gorm.DB, settings []models.Setting) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&settings).Error
}
