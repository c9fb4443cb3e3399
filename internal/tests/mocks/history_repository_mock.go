package mocks

import (
	"context"

	"promptbox/internal/models"
)

type HistoryRepositoryMock struct {
	ListFunc       func(ctx context.Context) ([]models.HistoryItem, error)
	AddFunc        func(ctx context.Context, item *models.HistoryItem) error
	DeleteFunc     func(ctx context.Context, id uint) error
	DeleteManyFunc func(ctx context.Context, ids []uint) error
	ClearFunc      func(ctx context.Context) error
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *HistoryRepositoryMock) List(ctx context.Context) ([]models.HistoryItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.HistoryItem{}, nil
}

func (m *HistoryRepositoryMock) Add(ctx context.Context, item *models.HistoryItem) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, item)
	}
	return nil
}

func (m *HistoryRepositoryMock) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *HistoryRepositoryMock) DeleteMany(ctx context.Context, ids []uint) error {
	if m.DeleteManyFunc != nil {
		return m.DeleteManyFunc(ctx, ids)
	}
	return nil
}

func (m *HistoryRepositoryMock) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

func (m *HistoryRepositoryMock) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}
