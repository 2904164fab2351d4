package memstore

import (
	"context"
	"sync"

	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Rates is an in-memory rate table. Each pair holds a dated series; lookups
// resolve to the most recent rate at or before the requested date, the way a
// reference-rate feed behaves over weekends.
type Rates struct {
	mu     sync.RWMutex
	series map[string]*date.History[decimal.Decimal]
}

// NewRates returns an empty rate table.
func NewRates() *Rates {
	return &Rates{series: make(map[string]*date.History[decimal.Decimal])}
}

func pair(from, to string) string { return from + "/" + to }

// Set records the from/to rate effective on a date.
func (r *Rates) Set(from, to string, on date.Date, rate decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.series[pair(from, to)]
	if !ok {
		h = &date.History[decimal.Decimal]{}
		r.series[pair(from, to)] = h
	}
	h.Append(on, rate)
}

// Rate implements networth.RateProvider.
func (r *Rates) Rate(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, false, err
	}
	if from == to {
		return decimal.NewFromInt(1), true, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.series[pair(from, to)]
	if !ok {
		return decimal.Zero, false, nil
	}
	rate, ok := h.ValueAsOf(on)
	return rate, ok, nil
}

var _ networth.RateProvider = (*Rates)(nil)
