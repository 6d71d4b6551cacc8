package jobs

import (
	"context"

	"rentacar-backend/internal/logger"
)

// SendMaintenanceReminders emails the fleet manager the plates still waiting in maintenance.
func (jr *JobRunner) SendMaintenanceReminders() {
	jr.runWithRecovery("SendMaintenanceReminders", func() {
		ctx := context.Background()

		vehicles, err := jr.services.Fleet.ListInMaintenance(ctx)
		if err != nil {
			logger.JobRun("SendMaintenanceReminders", 0, err)
			return
		}
		if len(vehicles) == 0 {
			logger.JobRun("SendMaintenanceReminders", 0, nil)
			return
		}

		plates := make([]string, 0, len(vehicles))
		for _, v := range vehicles {
			plates = append(plates, v.Plate())
		}

		err = jr.services.Email.SendMaintenanceReminder(ctx, plates, jr.today())
		logger.JobRun("SendMaintenanceReminders", len(plates), err)
	})
}
