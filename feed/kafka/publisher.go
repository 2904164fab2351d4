// Package kafka publishes reporting events for downstream consumers, such
// as the cache invalidator and the notification service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/segmentio/kafka-go"
)

// Topic carrying snapshot events.
const SnapshotsTopic = "networth_snapshots"

// SnapshotComputed is emitted after a net worth figure has been computed
// for an owner.
type SnapshotComputed struct {
	OwnerID  string    `json:"owner_id"`
	Date     date.Date `json:"date"`
	Currency string    `json:"currency"`
	NetWorth string    `json:"net_worth"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    SnapshotsTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishSnapshot emits a SnapshotComputed event keyed by owner, so all of
// one owner's snapshots land on the same partition in order.
func (p *Publisher) PublishSnapshot(ctx context.Context, ownerID string, on date.Date, total networth.Money) error {
	event := SnapshotComputed{
		OwnerID:  ownerID,
		Date:     on,
		Currency: total.Currency(),
		NetWorth: total.Amount().String(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding snapshot event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ownerID),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error { return p.writer.Close() }
