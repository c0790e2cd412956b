package pgsql

import (
	portsrepo "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewKVStore returns the postgres-backed key/value store.
func NewKVStore(dbPool *pgxpool.Pool) portsrepo.KVStoreFacade {
	return newPgxKVRepository(dbPool)
}
