// Package kafka publishes order-changed events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fablab/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

// OrderChangedMessage is the wire form of order.ChangedEvent.
type OrderChangedMessage struct {
	OrderID    string    `json:"orderId"`
	AuthorID   string    `json:"authorId"`
	Status     string    `json:"status"`
	TotalPrice *int64    `json:"totalPrice,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newOrderChangedMessage(event order.ChangedEvent) OrderChangedMessage {
	return OrderChangedMessage{
		OrderID:    event.PrintingID.String(),
		AuthorID:   event.AuthorID.String(),
		Status:     event.Status.String(),
		TotalPrice: event.TotalPrice,
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// OrderEventPublisher implements ports.OrderEventPublisher over a sarama
// SyncProducer. Messages are keyed by order id so one order's events stay
// on one partition.
type OrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewOrderEventPublisher connects a synchronous producer to brokers.
func NewOrderEventPublisher(brokers []string, topic string, logger *slog.Logger) (*OrderEventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newOrderEventPublisher(producer, topic, logger), nil
}

func newOrderEventPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "OrderEventPublisher"),
	}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event order.ChangedEvent) error {
	payload, err := json.Marshal(newOrderChangedMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PrintingID.String()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.DebugContext(ctx, "order changed event sent",
		"topic", p.topic,
		"printingId", event.PrintingID.String(),
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *OrderEventPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, order.ChangedEvent) error {
	return nil
}
