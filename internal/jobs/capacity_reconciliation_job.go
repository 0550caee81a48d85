package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// CapacityReconciliationJob periodically cross-checks every warehouse's
// occupancy counter against the sum of its capacity ledger deltas. The two
// are written in the same transaction, so any drift means a bug or a manual
// database intervention and is logged loudly for operators.
type CapacityReconciliationJob struct {
	handler queries.GetCapacityDriftQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCapacityReconciliationJob creates a job that verifies ledger consistency
// every minute.
func NewCapacityReconciliationJob(
	handler queries.GetCapacityDriftQueryHandler,
	logger *slog.Logger,
) *CapacityReconciliationJob {
	return &CapacityReconciliationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "capacity_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every minute.
func (j *CapacityReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		results, handleErr := j.handler.Handle(ctx, queries.NewGetCapacityDriftQuery())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Capacity reconciliation check failed", "error", handleErr)
			return
		}

		for _, result := range results {
			if result.Drift == 0 {
				continue
			}

			j.logger.ErrorContext(ctx, "Capacity ledger drift detected",
				"warehouse", result.WarehouseName,
				"binsUsed", result.BinsUsed,
				"ledgerSum", result.LedgerSum,
				"drift", result.Drift,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *CapacityReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Capacity reconciliation job stopped")
}
