package commands

import (
	"context"
	"log/slog"

	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"
)

// TransitionNotifier reports committed printing transitions to metrics and to
// the event publisher. Publishing failures are logged and swallowed; the
// transition is already durable.
type TransitionNotifier struct {
	publisher ports.OrderEventPublisher
	metrics   ports.OrderMetrics
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewTransitionNotifier(
	publisher ports.OrderEventPublisher,
	metrics ports.OrderMetrics,
	clock kernel.Clock,
	logger *slog.Logger,
) TransitionNotifier {
	return TransitionNotifier{
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		logger:    logger.With("component", "TransitionNotifier"),
	}
}

// Notify must be called after Commit.
func (n TransitionNotifier) Notify(ctx context.Context, p *order.Printing) {
	n.metrics.TransitionRecorded(p.Status())

	event := order.NewChangedEvent(p, n.clock.Now())
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "failed to publish order changed event",
			"printingId", p.ID().String(),
			"status", p.Status().String(),
			"error", err,
		)
	}
}
