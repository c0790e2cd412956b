// Package memory provides process-local implementations of the repository ports.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	"github.com/JuanPescoran/bond-valuation-app/internal/models"
)

type entryKey struct {
	namespace string
	key       string
}

// KVRepository keeps entries in a map. Contents are lost on restart.
type KVRepository struct {
	mu      sync.RWMutex
	entries map[entryKey]models.KVEntry
	now     func() time.Time
}

// NewKVRepository returns an empty in-memory store.
func NewKVRepository() *KVRepository {
	return &KVRepository{
		entries: make(map[entryKey]models.KVEntry),
		now:     time.Now,
	}
}

var _ portsrepo.KVStoreFacade = (*KVRepository)(nil)

func (r *KVRepository) Get(_ context.Context, namespace, key string) ([]byte, error) {
	r.mu.RLock()
	e, ok := r.entries[entryKey{namespace, key}]
	r.mu.RUnlock()
	if !ok || e.Expired(r.now()) {
		return nil, apperrors.ErrNotFound
	}
	out := make([]byte, len(e.Value))
	copy(out, e.Value)
	return out, nil
}

func (r *KVRepository) Put(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	now := r.now()
	stored := make([]byte, len(value))
	copy(stored, value)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entryKey{namespace, key}] = models.KVEntry{
		Namespace: namespace,
		Key:       key,
		Value:     stored,
		ExpiresAt: models.ExpiryFor(now, ttl),
		UpdatedAt: now,
	}
	return nil
}

func (r *KVRepository) Delete(_ context.Context, namespace, key string) error {
	r.mu.Lock()
	delete(r.entries, entryKey{namespace, key})
	r.mu.Unlock()
	return nil
}

func (r *KVRepository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, e := range r.entries {
		if e.Expired(now) {
			delete(r.entries, k)
			n++
		}
	}
	return n, nil
}
