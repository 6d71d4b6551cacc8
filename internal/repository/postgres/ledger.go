package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Record(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO rental_ledger (rental_id, plate, customer_id, start_date, end_date, days, km_driven, season, total_cost, finished_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	logger.DatabaseCall("INSERT", "rental_ledger", "rental_id", e.RentalID)
	err := r.db.QueryRowContext(ctx, query, e.RentalID, e.Plate, e.CustomerID, e.StartDate, e.EndDate, e.Days, e.KmDriven, e.Season, e.TotalCost, e.FinishedOn).Scan(&e.ID)
	logger.DatabaseResult("INSERT", 1, err)
	return err
}

func (r *ledgerRepository) ListByPlate(ctx context.Context, plate string) ([]domain.LedgerEntry, error) {
	query := `SELECT id, rental_id, plate, customer_id, start_date, end_date, days, km_driven, season, total_cost, finished_on
	          FROM rental_ledger WHERE plate = $1 ORDER BY finished_on`
	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(strings.TrimSpace(plate)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var season string
		if err := rows.Scan(&e.ID, &e.RentalID, &e.Plate, &e.CustomerID, &e.StartDate, &e.EndDate, &e.Days, &e.KmDriven, &season, &e.TotalCost, &e.FinishedOn); err != nil {
			return nil, err
		}
		e.Season = domain.Season(season)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) IncomeBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(total_cost), 0) FROM rental_ledger WHERE finished_on >= $1 AND finished_on < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total)
	return total, err
}
