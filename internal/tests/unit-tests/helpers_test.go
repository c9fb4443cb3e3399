package unit_tests

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"promptbox/internal/models"
	"promptbox/internal/repositories"
	"promptbox/internal/tests/mocks"
)

// settingStore backs a SettingRepositoryMock with a map and counts writes per key.
type settingStore struct {
	mu     sync.Mutex
	values map[string]string
	writes map[string]int
	bulks  int
}

func newSettingStore(initial map[string]string) (*settingStore, *mocks.SettingRepositoryMock) {
	st := &settingStore{values: map[string]string{}, writes: map[string]int{}}
	maps.Copy(st.values, initial)
	repo := &mocks.SettingRepositoryMock{
		ListFunc: func(ctx context.Context) ([]models.Setting, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			out := make([]models.Setting, 0, len(st.values))
			for k, v := range st.values {
				out = append(out, models.Setting{Key: k, Value: v})
			}
			return out, nil
		},
		PutFunc: func(ctx context.Context, s *models.Setting) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			st.values[s.Key] = s.Value
			st.writes[s.Key]++
			return nil
		},
		BulkPutFunc: func(ctx context.Context, rows []models.Setting) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			st.bulks++
			for _, s := range rows {
				st.values[s.Key] = s.Value
				st.writes[s.Key]++
			}
			return nil
		},
	}
	return st, repo
}

func (s *settingStore) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *settingStore) writeCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

// templateStore backs a TemplateRepositoryMock with a slice.
type templateStore struct {
	mu     sync.Mutex
	nextID uint
	list   []*models.Template
}

func newTemplateStore() (*templateStore, *mocks.TemplateRepositoryMock) {
	st := &templateStore{nextID: 1}
	repo := &mocks.TemplateRepositoryMock{
		GetFunc: func(ctx context.Context, id uint) (*models.Template, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			for _, t := range st.list {
				if t.ID == id {
					cp := *t
					return &cp, nil
				}
			}
			return nil, repositoriesNotFound(id)
		},
		GetByNameFunc: func(ctx context.Context, name string) (*models.Template, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			for _, t := range st.list {
				if t.Name == name {
					cp := *t
					return &cp, nil
				}
			}
			return nil, nil
		},
		GetAllFunc: func(ctx context.Context) ([]*models.Template, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			out := make([]*models.Template, 0, len(st.list))
			for _, t := range st.list {
				cp := *t
				out = append(out, &cp)
			}
			return out, nil
		},
		CreateFunc: func(ctx context.Context, t *models.Template) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			t.ID = st.nextID
			st.nextID++
			cp := *t
			st.list = append(st.list, &cp)
			return nil
		},
		UpdateFunc: func(ctx context.Context, t *models.Template) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			for i, existing := range st.list {
				if existing.ID == t.ID {
					cp := *t
					st.list[i] = &cp
				}
			}
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			for i, t := range st.list {
				if t.ID == id {
					st.list = append(st.list[:i], st.list[i+1:]...)
					return nil
				}
			}
			return fmt.Errorf("deleting template %d: %w", id, repositories.ErrNotFound)
		},
	}
	return st, repo
}

func (s *templateStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

func repositoriesNotFound(id uint) error {
	return fmt.Errorf("getting template %d: %w", id, repositories.ErrNotFound)
}
