package networth

import (
	"context"
	"fmt"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultWorkers = 4

// Reporter answers cross-type queries by fanning each operation out to the
// per-kind aggregators of its registry and merging their results. It holds
// no state between calls: every query builds a fresh request-scoped Valuer.
type Reporter struct {
	ledger  LedgerReader
	rates   RateProvider
	aggs    map[Kind]Aggregator
	policy  FallbackPolicy
	workers int
	log     zerolog.Logger
	now     func() date.Date
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithFallback sets the policy applied when a rate lookup fails.
func WithFallback(p FallbackPolicy) Option {
	return func(r *Reporter) { r.policy = p }
}

// WithWorkers bounds the per-aggregator worker pool.
func WithWorkers(n int) Option {
	return func(r *Reporter) { r.workers = n }
}

// WithLogger sets the logger used for per-account skip warnings and rate
// fallbacks.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Reporter) { r.log = log }
}

// withClock overrides "today" for deterministic tests.
func withClock(now func() date.Date) Option {
	return func(r *Reporter) { r.now = now }
}

// NewReporter builds a reporter over the ledger-read and rate-lookup
// collaborators, registering one aggregator per account kind.
func NewReporter(ledger LedgerReader, rates RateProvider, opts ...Option) *Reporter {
	r := &Reporter{
		ledger:  ledger,
		rates:   rates,
		policy:  FallbackParity,
		workers: defaultWorkers,
		log:     zerolog.Nop(),
		now:     date.Today,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.aggs = map[Kind]Aggregator{
		CashAccount:     newCashAggregator(CashAccount, ledger, r.workers, r.log, r.now),
		CurrencyAccount: newCashAggregator(CurrencyAccount, ledger, r.workers, r.log, r.now),
		StockAccount:    newStockAggregator(ledger, r.workers, r.log, r.now),
		BondAccount:     newBondAggregator(ledger, r.workers, r.log, r.now),
	}
	return r
}

// Aggregator returns the registered aggregator for a kind.
func (r *Reporter) Aggregator(kind Kind) Aggregator { return r.aggs[kind] }

func (r *Reporter) newValuer() *Valuer { return NewValuer(r.rates, r.policy, r.log) }

// clamp caps a future as-of date to today.
func (r *Reporter) clamp(on date.Date) date.Date { return on.Min(r.now()) }

func validRange(x date.Range) error {
	if x.To.Before(x.From) {
		return fmt.Errorf("invalid range: end %s is before start %s", x.To, x.From)
	}
	return nil
}

// HasAssets reports whether the owner holds any strictly positive position,
// of any kind, as of now.
func (r *Reporter) HasAssets(ctx context.Context, ownerID string) (bool, error) {
	return r.hasAny(ctx, ownerID, Positive)
}

// HasLiabilities reports whether the owner holds any strictly negative
// position, of any kind, as of now.
func (r *Reporter) HasLiabilities(ctx context.Context, ownerID string) (bool, error) {
	return r.hasAny(ctx, ownerID, Negative)
}

func (r *Reporter) hasAny(ctx context.Context, ownerID string, sign Sign) (bool, error) {
	for _, kind := range Kinds() {
		found, err := r.aggs[kind].HasAnyPosition(ctx, ownerID, sign)
		if err != nil {
			return false, fmt.Errorf("%s accounts: %w", kind, err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// AssetsPerAccount lists every positively-balanced account valued in the
// reporting currency at 'on', across all kinds.
func (r *Reporter) AssetsPerAccount(ctx context.Context, ownerID, currency string, on date.Date) ([]Position, error) {
	return r.perAccount(ctx, ownerID, currency, on, Positive)
}

// LiabilitiesPerAccount lists every negatively-balanced account valued in
// the reporting currency at 'on', across all kinds.
func (r *Reporter) LiabilitiesPerAccount(ctx context.Context, ownerID, currency string, on date.Date) ([]Position, error) {
	return r.perAccount(ctx, ownerID, currency, on, Negative)
}

func (r *Reporter) perAccount(ctx context.Context, ownerID, currency string, on date.Date, sign Sign) ([]Position, error) {
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	on = r.clamp(on)
	v := r.newValuer()
	var all []Position
	for _, kind := range Kinds() {
		positions, err := r.aggs[kind].PerAccount(ctx, ownerID, currency, on, sign, v)
		if err != nil {
			return nil, fmt.Errorf("%s accounts: %w", kind, err)
		}
		all = append(all, positions...)
	}
	return all, nil
}

// AssetsPerCategory sums positively-balanced positions by category label
// across all kinds; identical labels from different kinds merge into one.
func (r *Reporter) AssetsPerCategory(ctx context.Context, ownerID, currency string, on date.Date) ([]Position, error) {
	return r.perCategory(ctx, ownerID, currency, on, Positive)
}

// LiabilitiesPerCategory sums negatively-balanced positions by category.
func (r *Reporter) LiabilitiesPerCategory(ctx context.Context, ownerID, currency string, on date.Date) ([]Position, error) {
	return r.perCategory(ctx, ownerID, currency, on, Negative)
}

func (r *Reporter) perCategory(ctx context.Context, ownerID, currency string, on date.Date, sign Sign) ([]Position, error) {
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	on = r.clamp(on)
	v := r.newValuer()
	group := newGroupByLabel()
	for _, kind := range Kinds() {
		positions, err := r.aggs[kind].PerCategory(ctx, ownerID, currency, on, sign, v)
		if err != nil {
			return nil, fmt.Errorf("%s accounts: %w", kind, err)
		}
		for _, p := range positions {
			group.add(p.Label, p.Amount)
		}
	}
	return group.positions(), nil
}

// NetWorth is the signed sum of every position across all kinds and all
// categories at 'on'. Unlike the asset and liability views it does not
// filter by sign: negative balances reduce net worth.
func (r *Reporter) NetWorth(ctx context.Context, ownerID, currency string, on date.Date) (Money, error) {
	if err := ValidCurrency(currency); err != nil {
		return Money{}, err
	}
	on = r.clamp(on)
	v := r.newValuer()
	total := M(0, currency)
	for _, kind := range Kinds() {
		positions, err := r.aggs[kind].PerAccount(ctx, ownerID, currency, on, AnySign, v)
		if err != nil {
			return Money{}, fmt.Errorf("%s accounts: %w", kind, err)
		}
		for _, p := range positions {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// Series values the owner's combined position for every day of the range,
// summed across all kinds. Days present in one kind's series but absent
// from another count the missing kind as zero. A non-empty category
// restricts the series to matching accounts.
func (r *Reporter) Series(ctx context.Context, ownerID, currency string, x date.Range, category string) (*date.History[decimal.Decimal], error) {
	if err := validRange(x); err != nil {
		return nil, err
	}
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	x.To = r.clamp(x.To)
	if x.To.Before(x.From) {
		// the whole range lies in the future
		return &date.History[decimal.Decimal]{}, nil
	}
	v := r.newValuer()
	var total date.History[decimal.Decimal]
	for _, kind := range Kinds() {
		series, err := r.aggs[kind].Series(ctx, ownerID, currency, x, category, v)
		if err != nil {
			return nil, fmt.Errorf("%s accounts: %w", kind, err)
		}
		for on, amount := range series.Values() {
			total.Merge(on, amount, decimal.Decimal.Add)
		}
	}
	return &total, nil
}
