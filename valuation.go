package networth

import (
	"context"
	"sync"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FallbackPolicy decides what a Valuer does when a rate lookup fails or the
// rate is simply unknown.
type FallbackPolicy int

const (
	// FallbackParity values the position as if it were already in the
	// target currency (rate 1). Every application of the fallback is
	// logged, since it under- or over-values the position.
	FallbackParity FallbackPolicy = iota
	// FallbackSkip excludes the position from the aggregate.
	FallbackSkip
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackParity:
		return "parity"
	case FallbackSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// maxRateCache bounds the per-request rate cache. Once full, further rates
// are still served but no longer memoized.
const maxRateCache = 4096

type rateKey struct {
	instrument string
	from, to   string
	on         date.Date
}

// Valuer converts a position (quantity in an instrument's currency) into a
// monetary amount in a target currency. It is request-scoped: one Valuer is
// created per aggregate call so that its cache can never leak rates across
// users or requests. It is safe for use from the worker pool.
type Valuer struct {
	rates  RateProvider
	policy FallbackPolicy
	log    zerolog.Logger

	mu    sync.Mutex
	cache map[rateKey]decimal.Decimal
}

// NewValuer returns a fresh request-scoped valuer.
func NewValuer(rates RateProvider, policy FallbackPolicy, log zerolog.Logger) *Valuer {
	return &Valuer{
		rates:  rates,
		policy: policy,
		log:    log,
		cache:  make(map[rateKey]decimal.Decimal),
	}
}

// Value converts quantity from the instrument's currency into the target
// currency as of 'on'. Same-currency conversions are the identity. The
// boolean reports whether the result should be counted; it is false only
// under FallbackSkip when no rate could be obtained. An error is returned
// only for cancellation, a failed lookup falls back per policy instead of
// failing the aggregation.
func (v *Valuer) Value(ctx context.Context, instrument string, quantity decimal.Decimal, from, to string, on date.Date) (Money, bool, error) {
	if from == to {
		return M(quantity, to), true, nil
	}

	key := rateKey{instrument: instrument, from: from, to: to, on: on}
	if rate, ok := v.cached(key); ok {
		return M(rate, to).Mul(Q(quantity)), true, nil
	}

	rate, found, err := v.rates.Rate(ctx, from, to, on)
	if err != nil {
		if ctx.Err() != nil {
			return Money{}, false, ctx.Err()
		}
		v.logFallback(instrument, from, to, on, err)
		return v.fallback(quantity, to)
	}
	if !found {
		v.logFallback(instrument, from, to, on, nil)
		return v.fallback(quantity, to)
	}

	v.store(key, rate)
	return M(rate, to).Mul(Q(quantity)), true, nil
}

func (v *Valuer) fallback(quantity decimal.Decimal, to string) (Money, bool, error) {
	if v.policy == FallbackSkip {
		return Money{}, false, nil
	}
	return M(quantity, to), true, nil
}

func (v *Valuer) logFallback(instrument, from, to string, on date.Date, err error) {
	ev := v.log.Warn().
		Str("instrument", instrument).
		Str("from", from).
		Str("to", to).
		Stringer("on", on).
		Stringer("fallback", v.policy)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("no exchange rate")
}

func (v *Valuer) cached(key rateKey) (decimal.Decimal, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	rate, ok := v.cache[key]
	return rate, ok
}

func (v *Valuer) store(key rateKey, rate decimal.Decimal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.cache) >= maxRateCache {
		return
	}
	v.cache[key] = rate
}
