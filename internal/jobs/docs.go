// Package jobs provides scheduled background tasks for the freight tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment tracking service.
//
// # Available Jobs
//
// 1. CapacityReconciliationJob - Runs every minute to verify that each
// warehouse's occupancy counter matches the sum of its capacity ledger deltas
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(capacityDriftHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "* * * * *", running once a
// minute. The counter and the ledger are written in the same transaction, so
// a minute of detection latency is acceptable; drift can only appear through
// bugs or manual database intervention.
//
// # Error Handling
//
// - A failed drift query is logged and retried on the next tick
// - Non-zero drift is logged per warehouse with both figures
package jobs
