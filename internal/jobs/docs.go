// Package jobs provides scheduled background tasks for the delivery tracking
// service.
//
// Jobs use github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and publishes a batch of domain events
// from the outbox table to Kafka.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, cfg.OutboxBatchSize, logger.Get())
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. Events stay in the
// outbox until the broker accepted them.
package jobs
