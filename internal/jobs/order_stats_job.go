package jobs

import (
	"context"
	"log/slog"
	"time"

	"fablab/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultOrderStatsSchedule refreshes the gauge every thirty seconds.
const DefaultOrderStatsSchedule = "*/30 * * * * *"

const refreshTimeout = 10 * time.Second

// PrintingCounter reports how many printings sit in each status.
type PrintingCounter interface {
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}

// PrintingGauge receives the latest per-status counts.
type PrintingGauge interface {
	SetPrintingCounts(counts map[order.Status]int)
}

// OrderStatsJob periodically copies per-status printing counts into the
// metrics gauge.
type OrderStatsJob struct {
	counter  PrintingCounter
	gauge    PrintingGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob creates the job. An empty schedule falls back to
// DefaultOrderStatsSchedule; schedules use the six-field cron format.
func NewOrderStatsJob(counter PrintingCounter, gauge PrintingGauge, schedule string, logger *slog.Logger) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultOrderStatsSchedule
	}
	return &OrderStatsJob{
		counter:  counter,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Refresh performs a single count-and-publish cycle.
func (j *OrderStatsJob) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	counts, err := j.counter.CountByStatus(ctx)
	if err != nil {
		return err
	}
	j.gauge.SetPrintingCounts(counts)
	return nil
}

// Start schedules the refresh and runs the first one immediately.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order stats refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := j.Refresh(ctx); err != nil {
		j.logger.WarnContext(ctx, "Initial order stats refresh failed", "error", err)
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Order stats job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
