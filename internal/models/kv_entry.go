package models

import "time"

// KVEntry is a row of the kv_entries table.
type KVEntry struct {
	Namespace string     `db:"namespace"`
	Key       string     `db:"key"`
	Value     []byte     `db:"value"`
	ExpiresAt *time.Time `db:"expires_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Expired reports whether the entry is past its expiry at now.
func (e KVEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// ExpiryFor returns the expiry of an entry written at now with ttl, or nil when ttl is zero.
func ExpiryFor(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl).UTC()
	return &t
}
