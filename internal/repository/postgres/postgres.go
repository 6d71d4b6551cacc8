package postgres

import (
	"context"
	"database/sql"

	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store persists the finished-rental ledger. Fleet, reservations and rentals stay in memory.
type Store struct {
	db *sql.DB
	repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		LedgerRepository: NewLedgerRepository(db),
	}
}

const schema = `CREATE TABLE IF NOT EXISTS rental_ledger (
	id          BIGSERIAL PRIMARY KEY,
	rental_id   TEXT NOT NULL UNIQUE,
	plate       TEXT NOT NULL,
	customer_id TEXT NOT NULL,
	start_date  TIMESTAMPTZ NOT NULL,
	end_date    TIMESTAMPTZ NOT NULL,
	days        INTEGER NOT NULL,
	km_driven   DOUBLE PRECISION NOT NULL,
	season      TEXT NOT NULL,
	total_cost  DOUBLE PRECISION NOT NULL,
	finished_on TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the ledger table when it is missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.DatabaseCall("CREATE", "rental_ledger")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("CREATE", 0, err)
	return err
}
