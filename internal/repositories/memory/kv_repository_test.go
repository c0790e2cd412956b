package memory

import (
	"context"
	"testing"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	_, err := repo.Get(ctx, "sessions", "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "sessions", "a", []byte(`{"id":1}`), 0))
	got, err := repo.Get(ctx, "sessions", "a")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	_, err = repo.Get(ctx, "settings", "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "namespaces are isolated")

	require.NoError(t, repo.Delete(ctx, "sessions", "a"))
	require.NoError(t, repo.Delete(ctx, "sessions", "missing"))
	_, err = repo.Get(ctx, "sessions", "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestKVRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }

	require.NoError(t, repo.Put(ctx, "sessions", "short", []byte("x"), time.Minute))
	require.NoError(t, repo.Put(ctx, "sessions", "forever", []byte("y"), 0))

	repo.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err := repo.Get(ctx, "sessions", "short")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	n, err := repo.PurgeExpired(ctx, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.Get(ctx, "sessions", "forever")
	require.NoError(t, err)
	assert.Equal(t, "y", string(got))
}

func TestKVRepository_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()
	value := []byte("abc")
	require.NoError(t, repo.Put(ctx, "n", "k", value, 0))
	value[0] = 'z'

	got, err := repo.Get(ctx, "n", "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
