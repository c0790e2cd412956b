package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

const (
	defaultHistoryMaxAge      = time.Minute
	defaultHistoryLoadTimeout = 30 * time.Second
)

// historyEntry is one user's cached list. Until loaded is set its load is still in flight.
type historyEntry struct {
	key      string
	items    []domain.HistoryItem
	loadedAt time.Time
	loaded   bool
}

// historyService caches each user's history list until it ages out or a mutation invalidates it.
type historyService struct {
	BaseService
	backend     portsrepo.ValuationReader
	group       singleflight.Group
	maxAge      time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	mu      sync.Mutex
	seq     uint64
	entries map[int64]*historyEntry
}

// HistoryServiceOption is a functional option for configuring the history service
type HistoryServiceOption func(*historyService)

// WithHistoryMaxAge sets how long a loaded list is served before it is fetched again.
// Zero keeps lists until they are invalidated.
func WithHistoryMaxAge(d time.Duration) HistoryServiceOption {
	return func(s *historyService) {
		s.maxAge = d
	}
}

// WithHistoryLoadTimeout bounds a shared backend load, which outlives any single caller.
func WithHistoryLoadTimeout(d time.Duration) HistoryServiceOption {
	return func(s *historyService) {
		s.loadTimeout = d
	}
}

// WithHistoryClock overrides the time source used for expiry.
func WithHistoryClock(now func() time.Time) HistoryServiceOption {
	return func(s *historyService) {
		s.now = now
	}
}

// NewHistoryService creates a history service loading lists from backend.
func NewHistoryService(backend portsrepo.ValuationReader, options ...HistoryServiceOption) portssvc.HistorySvcFacade {
	s := &historyService{
		backend:     backend,
		maxAge:      defaultHistoryMaxAge,
		loadTimeout: defaultHistoryLoadTimeout,
		now:         time.Now,
		entries:     make(map[int64]*historyEntry),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

func (s *historyService) expired(e *historyEntry, now time.Time) bool {
	return e.loaded && s.maxAge > 0 && now.Sub(e.loadedAt) >= s.maxAge
}

// pending returns the entry a miss should load into. Callers arriving while a load
// is in flight get the same entry, and so the same singleflight key.
func (s *historyService) pending(userID int64) *historyEntry {
	if e, ok := s.entries[userID]; ok && !e.loaded {
		return e
	}
	s.seq++
	e := &historyEntry{key: fmt.Sprintf("%d/%d", userID, s.seq)}
	s.entries[userID] = e
	return e
}

// prune drops every expired entry. Must hold s.mu.
func (s *historyService) prune(now time.Time) {
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
}

func (s *historyService) List(ctx context.Context, session *domain.Session) ([]domain.HistoryItem, error) {
	if err := s.RequireSession(session); err != nil {
		return nil, err
	}
	userID := session.ID

	s.mu.Lock()
	if e, ok := s.entries[userID]; ok && e.loaded && !s.expired(e, s.now()) {
		items := cloneItems(e.items)
		s.mu.Unlock()
		return items, nil
	}
	e := s.pending(userID)
	s.mu.Unlock()

	// Concurrent misses for the same user share one backend call. The call runs
	// detached from any one caller so a caller going away does not fail the others.
	ch := s.group.DoChan(e.key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		resp, err := s.backend.ListValuationsByUser(loadCtx, session.Token, userID)

		s.mu.Lock()
		defer s.mu.Unlock()
		// An invalidation during the load removed e; the result may already be stale.
		current, ok := s.entries[userID]
		if !ok || current != e {
			if err != nil {
				return nil, err
			}
			return domain.ToHistoryItems(resp), nil
		}
		if err != nil {
			delete(s.entries, userID)
			return nil, err
		}
		now := s.now()
		e.items = domain.ToHistoryItems(resp)
		e.loadedAt = now
		e.loaded = true
		s.prune(now)
		return e.items, nil
	})

	select {
	case <-ctx.Done():
		s.LogDebug(ctx, "History request canceled while waiting for load", slog.Int64("user_id", userID))
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.LogError(ctx, res.Err, "Failed to load history", slog.Int64("user_id", userID))
			return nil, fmt.Errorf("failed to load history: %w", res.Err)
		}
		if res.Shared {
			s.LogDebug(ctx, "History load shared with a concurrent request", slog.Int64("user_id", userID))
		}
		return cloneItems(res.Val.([]domain.HistoryItem)), nil
	}
}

func (s *historyService) Invalidate(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

func cloneItems(items []domain.HistoryItem) []domain.HistoryItem {
	out := make([]domain.HistoryItem, len(items))
	copy(out, items)
	return out
}
