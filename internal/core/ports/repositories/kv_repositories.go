package repositories

import (
	"context"
	"time"
)

// Namespaces of the key/value store. Sessions and settings never share keys.
const (
	NamespaceSessions = "sessions"
	NamespaceSettings = "settings"
)

// KVReader defines read operations of the durable key/value store.
type KVReader interface {
	// Get returns the value stored under key, or apperrors.ErrNotFound when it is absent or expired.
	Get(ctx context.Context, namespace, key string) ([]byte, error)
}

// KVWriter defines write operations of the durable key/value store.
type KVWriter interface {
	// Put stores value under key. A ttl of zero keeps the entry until it is deleted.
	Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, namespace, key string) error
}

// KVLifecycleManager defines housekeeping operations.
type KVLifecycleManager interface {
	// PurgeExpired removes every entry whose ttl elapsed before now and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// KVStoreFacade combines all key/value store interfaces.
type KVStoreFacade interface {
	KVReader
	KVWriter
	KVLifecycleManager
}
