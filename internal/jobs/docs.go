// Package jobs provides scheduled background tasks for the cafe order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OutboxRelayJob publishes outbox events that have not reached RabbitMQ yet
// and marks them published. It runs every second unless OUTBOX_RELAY_SCHEDULE
// says otherwise; the schedule uses the six field cron format with seconds.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, cfg.OutboxRelaySchedule, 0, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay tick is logged at WARN. Unpublished events remain in the
// outbox and are retried on the next tick, so delivery is at least once.
package jobs
