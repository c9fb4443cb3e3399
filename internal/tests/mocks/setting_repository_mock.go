package mocks

import (
	"context"

	"promptbox/internal/models"
)

type SettingRepositoryMock struct {
	ListFunc    func(ctx context.Context) ([]models.Setting, error)
	GetFunc     func(ctx context.Context, key string) (*models.Setting, error)
	PutFunc     func(ctx context.Context, setting *models.Setting) error
	BulkPutFunc func(ctx context.Context, settings []models.Setting) error
	ClearFunc   func(ctx context.Context) error
}

func (m *SettingRepositoryMock) List(ctx context.Context) ([]models.Setting, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Setting{}, nil
}

func (m *SettingRepositoryMock) Get(ctx context.Context, key string) (*models.Setting, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, nil
}

func (m *SettingRepositoryMock) Put(ctx context.Context, setting *models.Setting) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, setting)
	}
	return nil
}

func (m *SettingRepositoryMock) BulkPut(ctx context.Context, settings []models.Setting) error {
	if m.BulkPutFunc != nil {
		return m.BulkPutFunc(ctx, settings)
	}
	return nil
}

func (m *SettingRepositoryMock) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}
