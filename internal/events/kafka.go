// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes one JSON message per event, keyed by order id so that the
// events of an order stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
		BatchTimeout:           10 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

type orderEventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	data, err := json.Marshal(orderEventMessage{
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		UserID:     event.UserID.String(),
		Status:     string(event.Status),
		Total:      event.Total.Amount.StringFixed(2),
		Currency:   event.Total.Currency.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	p.logger.DebugContext(ctx, "order event published", "type", event.Type, "order_id", event.OrderID)

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

// NewNop drops every event; used when no broker is configured.
func NewNop() port.OrderEvents {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, domain.OrderEvent) error {
	return nil
}
