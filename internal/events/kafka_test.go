package events_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
	"golang.org/x/text/currency"
)

func TestKafkaPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a kafka container")
	}

	ctx := t.Context()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	topic := "storefront.orders." + uuid.NewString()[:8]
	createTopic(t, brokers[0], topic)

	publisher := events.NewKafkaPublisher(brokers, topic, slog.Default())
	t.Cleanup(func() {
		_ = publisher.Close()
	})

	event := domain.OrderEvent{
		Type:       domain.OrderEventPaid,
		OrderID:    uuid.New(),
		UserID:     uuid.New(),
		Status:     domain.OrderStatusPaid,
		Total:      domain.NewMoney(decimal.RequireFromString("113.49"), currency.USD),
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, publisher.Publish(ctx, event))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MaxWait:   500 * time.Millisecond,
	})
	t.Cleanup(func() {
		_ = reader.Close()
	})

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)
	assert.Equal(t, event.OrderID.String(), string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order.paid", got["type"])
	assert.Equal(t, "paid", got["status"])
	assert.Equal(t, "113.49", got["total"])
	assert.Equal(t, "USD", got["currency"])
}

func TestNop(t *testing.T) {
	err := events.NewNop().Publish(t.Context(), domain.OrderEvent{Type: domain.OrderEventCreated})
	assert.NoError(t, err)
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	t.Helper()

	conn, err := kafka.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	require.NoError(t, err)
}
