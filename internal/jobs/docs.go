// Package jobs runs scheduled background tasks with github.com/robfig/cron/v3.
//
// TransportOrderStartJob periodically looks for transport units with orders in
// INITIALIZED or INTERRUPTED state and starts the best one of each unit that
// has no STARTED order yet. Priority wins first, then the oldest order.
//
// Jobs are started and stopped through a JobManager:
//
//	manager := jobs.NewJobManager(
//		jobs.NewTransportOrderStartJob(units, startNextHandler, "*/5 * * * * *", logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// Schedules use the six field cron format with seconds. A pass that is still
// running when the next tick fires is skipped.
//
// Busy units and units without startable orders are expected outcomes and are
// only logged at debug level. Every other failure is logged as an error and the
// pass continues with the next unit.
package jobs
