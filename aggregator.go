package networth

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Sign selects which balances a view counts. Asset views count strictly
// positive balances, liability views strictly negative ones; net worth
// counts everything.
type Sign int

const (
	AnySign Sign = iota
	Positive
	Negative
)

func (s Sign) matches(d decimal.Decimal) bool {
	switch s {
	case Positive:
		return d.IsPositive()
	case Negative:
		return d.IsNegative()
	default:
		return true
	}
}

// Position is one valued line of a breakdown: an account name or a category
// label with its amount in the reporting currency.
type Position struct {
	Label  string
	Amount Money
}

// sortPositions orders a breakdown by label for deterministic output.
func sortPositions(positions []Position) {
	sort.Slice(positions, func(i, j int) bool { return positions[i].Label < positions[j].Label })
}

// Aggregator computes the four query operations for one account kind.
// Implementations are selected from the Reporter's registry by kind, one
// strategy per member of the closed Kind set.
type Aggregator interface {
	Kind() Kind

	// HasAnyPosition reports whether any account of this kind owned by
	// ownerID currently has a balance matching sign.
	HasAnyPosition(ctx context.Context, ownerID string, sign Sign) (bool, error)

	// PerAccount values each account at 'on' in the reporting currency.
	// Accounts with no resolvable position, or whose balance does not
	// match sign, are skipped.
	PerAccount(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error)

	// PerCategory is PerAccount grouped and summed by category label
	// (instrument sub-type for stock accounts).
	PerCategory(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error)

	// Series values the kind's combined position for every day of r,
	// carrying positions forward over days without postings. A non-empty
	// category restricts the series to matching accounts.
	Series(ctx context.Context, ownerID, currency string, r date.Range, category string, v *Valuer) (*date.History[decimal.Decimal], error)
}

// lookback is how many days before "now" HasAnyPosition loads, so that a
// position closed earlier today still counts.
const lookback = 1

// eachWindow runs fn over windows with a bounded pool of workers. A failure
// for one window is logged and that window skipped, the aggregation goes on
// with a partial result. Cancellation is never downgraded to a skip: whether
// it is seen between windows or reported by fn mid-window, it aborts the run
// and comes back as the run's error, so a truncated aggregation cannot pass
// for a complete one.
func eachWindow(ctx context.Context, workers int, windows []*Window, log zerolog.Logger, fn func(*Window) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > len(windows) {
		workers = len(windows)
	}

	var mu sync.Mutex
	var cause error
	abort := func(err error) {
		mu.Lock()
		if cause == nil {
			cause = err
		}
		mu.Unlock()
	}

	jobs := make(chan *Window)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range jobs {
				err := fn(w)
				switch {
				case err == nil:
				case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
					abort(err)
				default:
					log.Warn().
						Str("account", w.Account.ID).
						Str("name", w.Account.Name).
						Err(err).
						Msg("skipping account")
				}
			}
		}()
	}

feed:
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			abort(err)
			break
		}
		select {
		case <-ctx.Done():
			abort(ctx.Err())
			break feed
		case jobs <- w:
		}
	}
	close(jobs)
	wg.Wait()
	return cause
}

// groupByLabel folds valued lines sharing a label into one position each,
// returned in label order.
type groupByLabel struct {
	mu      sync.Mutex
	labels  []string
	amounts map[string]Money
}

func newGroupByLabel() *groupByLabel {
	return &groupByLabel{amounts: make(map[string]Money)}
}

func (g *groupByLabel) add(label string, amount Money) {
	g.mu.Lock()
	defer g.mu.Unlock()
	old, ok := g.amounts[label]
	if !ok {
		g.labels = append(g.labels, label)
		g.amounts[label] = amount
		return
	}
	g.amounts[label] = old.Add(amount)
}

func (g *groupByLabel) positions() []Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	sort.Strings(g.labels)
	positions := make([]Position, 0, len(g.labels))
	for _, label := range g.labels {
		positions = append(positions, Position{Label: label, Amount: g.amounts[label]})
	}
	return positions
}

// seriesAccumulator sums valued daily samples across accounts into one
// chronological series. Days contribute only when at least one account had
// a resolvable position.
type seriesAccumulator struct {
	mu      sync.Mutex
	history date.History[decimal.Decimal]
}

func (a *seriesAccumulator) add(on date.Date, amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Merge(on, amount, decimal.Decimal.Add)
}
