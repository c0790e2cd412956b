// Package sqlite stores repository data in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	"github.com/JuanPescoran/bond-valuation-app/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	namespace  TEXT    NOT NULL,
	key        TEXT    NOT NULL,
	value      BLOB    NOT NULL,
	expires_at INTEGER NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (namespace, key)
);
CREATE INDEX IF NOT EXISTS idx_kv_entries_expires_at ON kv_entries (expires_at);
`

// KVRepository stores entries in the kv_entries table. Timestamps are unix nanoseconds.
type KVRepository struct {
	db *sql.DB
}

// NewKVRepository creates the schema if needed and returns the store.
func NewKVRepository(ctx context.Context, db *sql.DB) (*KVRepository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create kv schema: %w", err)
	}
	return &KVRepository{db: db}, nil
}

var _ portsrepo.KVStoreFacade = (*KVRepository)(nil)

func (r *KVRepository) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var (
		entry     models.KVEntry
		expiresAt sql.NullInt64
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT namespace, key, value, expires_at, updated_at FROM kv_entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&entry.Namespace, &entry.Key, &entry.Value, &expiresAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	if expiresAt.Valid {
		t := time.Unix(0, expiresAt.Int64).UTC()
		entry.ExpiresAt = &t
	}
	entry.UpdatedAt = time.Unix(0, updatedAt).UTC()
	if entry.Expired(time.Now()) {
		return nil, apperrors.ErrNotFound
	}
	return entry.Value, nil
}

func (r *KVRepository) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	var expiresAt sql.NullInt64
	if exp := models.ExpiryFor(now, ttl); exp != nil {
		expiresAt = sql.NullInt64{Int64: exp.UnixNano(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_entries (namespace, key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		namespace, key, value, expiresAt, now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, namespace, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`, namespace, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *KVRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired entries: %w", err)
	}
	return res.RowsAffected()
}
