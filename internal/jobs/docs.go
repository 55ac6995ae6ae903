// Package jobs provides scheduled background tasks for the fablab service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution
// schedules.
//
// # Available Jobs
//
// OrderStatsJob counts printings per status through the read side and
// publishes the counts to the Prometheus gauge. Its schedule comes from
// ORDER_STATS_SCHEDULE and defaults to every thirty seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewOrderStatsJob(reader, metrics, schedule, logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// Refresh failures are logged and retried on the next tick.
package jobs
