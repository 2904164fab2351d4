package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/openfin/networth/feed/kafka"
)

// publishSnapshot emits the computed net worth on the snapshot topic, for
// the cache and notification consumers. Brokers come from KAFKA_BROKERS,
// comma separated.
func publishSnapshot(ctx context.Context, ownerID string, on date.Date, total networth.Money) error {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return fmt.Errorf("no brokers: set KAFKA_BROKERS")
	}
	p := kafka.NewPublisher(strings.Split(brokers, ","))
	defer p.Close()
	return p.PublishSnapshot(ctx, ownerID, on, total)
}
