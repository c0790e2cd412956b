package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	"github.com/JuanPescoran/bond-valuation-app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxKVRepository stores entries in the kv_entries table created by the migrations.
type PgxKVRepository struct {
	BaseRepository
}

func newPgxKVRepository(pool *pgxpool.Pool) portsrepo.KVStoreFacade {
	return &PgxKVRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.KVStoreFacade = (*PgxKVRepository)(nil)

// Get retrieves a live entry.
func (r *PgxKVRepository) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	query := `
		SELECT namespace, key, value, expires_at, updated_at
		FROM kv_entries
		WHERE namespace = $1 AND key = $2;
	`
	var entry models.KVEntry
	err := r.Pool.QueryRow(ctx, query, namespace, key).Scan(
		&entry.Namespace,
		&entry.Key,
		&entry.Value,
		&entry.ExpiresAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	if entry.Expired(time.Now()) {
		return nil, apperrors.ErrNotFound
	}
	return entry.Value, nil
}

// Put upserts an entry.
func (r *PgxKVRepository) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO kv_entries (namespace, key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, namespace, key, value, models.ExpiryFor(now, ttl), now); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes an entry if present.
func (r *PgxKVRepository) Delete(ctx context.Context, namespace, key string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2;`, namespace, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

// PurgeExpired deletes every expired entry in one transaction.
func (r *PgxKVRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at <= $1;`, now.UTC())
		if err != nil {
			return fmt.Errorf("failed to purge expired entries: %w", err)
		}
		removed = tag.RowsAffected()
		return nil
	})
	return removed, err
}
