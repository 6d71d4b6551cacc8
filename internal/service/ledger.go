package service

import (
	"context"
	"fmt"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) History(ctx context.Context, plate string) ([]domain.LedgerEntry, error) {
	return s.ledgerRepo.ListByPlate(ctx, plate)
}

// Income sums the recorded rentals finished within the period.
func (s *ledgerService) Income(ctx context.Context, period *domain.DateRange) (float64, error) {
	if period == nil {
		return 0, fmt.Errorf("%w: income report", domain.ErrPeriodRequired)
	}
	return s.ledgerRepo.IncomeBetween(ctx, period.Start(), period.End())
}
