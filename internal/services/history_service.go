package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"promptbox/internal/events"
	"promptbox/internal/logging"
	"promptbox/internal/models"
	"promptbox/internal/repositories"
)

// HistoryService mirrors the history table in memory, newest first.
type HistoryService struct {
	repo    repositories.HistoryRepository
	emitter events.Emitter
	logger  *zap.Logger

	mu      sync.RWMutex
	items   []models.HistoryItem
	loaded  bool
	lastErr string
}

func NewHistoryService(repo repositories.HistoryRepository, emitter events.Emitter, logger *zap.Logger) *HistoryService {
	if emitter == nil {
		emitter = events.Nop()
	}
	return &HistoryService{repo: repo, emitter: emitter, logger: logging.OrNop(logger).Named("history")}
}

// Fetch replaces the in-memory list with everything in storage.
func (s *HistoryService) Fetch(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return s.fail("fetch history", err)
	}
	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Add stores item, stamping the current time when it has none, and returns
// the new id. It returns 0 when storage fails.
func (s *HistoryService) Add(ctx context.Context, item models.HistoryItem) uint {
	item.ID = 0
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	if err := s.repo.Add(ctx, &item); err != nil {
		s.fail("add history item", err)
		return 0
	}

	s.mu.Lock()
	s.items = append([]models.HistoryItem{item}, s.items...)
	s.lastErr = ""
	s.mu.Unlock()

	evt := events.New(events.TopicHistory, "added")
	evt.ID = item.ID
	s.emitter.Emit(ctx, evt)
	return item.ID
}

func (s *HistoryService) Remove(ctx context.Context, id uint) {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.fail(fmt.Sprintf("remove history item %d", id), err)
		return
	}
	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(it models.HistoryItem) bool { return it.ID == id })
	s.lastErr = ""
	s.mu.Unlock()

	evt := events.New(events.TopicHistory, "removed")
	evt.ID = id
	s.emitter.Emit(ctx, evt)
}

func (s *HistoryService) Clear(ctx context.Context) {
	if err := s.repo.Clear(ctx); err != nil {
		s.fail("clear history", err)
		return
	}
	s.mu.Lock()
	s.items = nil
	s.lastErr = ""
	s.mu.Unlock()
	s.emitter.Emit(ctx, events.New(events.TopicHistory, "cleared"))
}

// EnforceLimit deletes the oldest entries until at most limit remain.
// Age is ordered by timestamp, then id.
func (s *HistoryService) EnforceLimit(ctx context.Context, limit int) {
	if limit < 0 {
		return
	}
	if !s.isLoaded() {
		if err := s.Fetch(ctx); err != nil {
			return
		}
	}

	s.mu.RLock()
	excess := len(s.items) - limit
	var victims []uint
	if excess > 0 {
		oldest := slices.Clone(s.items)
		slices.SortFunc(oldest, compareOldestFirst)
		for _, it := range oldest[:excess] {
			victims = append(victims, it.ID)
		}
	}
	s.mu.RUnlock()

	if len(victims) == 0 {
		return
	}
	if err := s.repo.DeleteMany(ctx, victims); err != nil {
		s.fail("enforce history limit", err)
		return
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(it models.HistoryItem) bool {
		return slices.Contains(victims, it.ID)
	})
	s.lastErr = ""
	s.mu.Unlock()

	s.logger.Debug("history trimmed", zap.Int("limit", limit), zap.Int("removed", len(victims)))
	s.emitter.Emit(ctx, events.New(events.TopicHistory, "trimmed"))
}

// Items returns a copy of the list, most recent first.
func (s *HistoryService) Items() []models.HistoryItem {
	s.mu.RLock()
	out := slices.Clone(s.items)
	s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b models.HistoryItem) int {
		return compareOldestFirst(b, a)
	})
	return out
}

func (s *HistoryService) HasHistory() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) > 0
}

func (s *HistoryService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *HistoryService) isLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *HistoryService) fail(op string, err error) error {
	err = fmt.Errorf("service: %s: %w", op, err)
	s.logger.Error(op+" failed", zap.Error(err))
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func compareOldestFirst(a, b models.HistoryItem) int {
	if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
