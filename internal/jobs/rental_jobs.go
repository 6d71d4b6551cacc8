package jobs

import (
	"context"

	"rentacar-backend/internal/logger"
)

// StartScheduledRentals starts every confirmed reservation that begins today.
func (jr *JobRunner) StartScheduledRentals() {
	jr.runWithRecovery("StartScheduledRentals", func() {
		ctx := context.Background()
		today := jr.today()

		started, err := jr.services.Rentals.StartConfirmedToday(ctx, today)
		for _, r := range started {
			logger.Debug("Rental started", "rental_id", r.ID(), "plate", r.Plate(), "range", r.Range().String())
		}
		logger.JobRun("StartScheduledRentals", len(started), err)
	})
}
