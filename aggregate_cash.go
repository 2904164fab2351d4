package networth

import (
	"context"
	"sync"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cashAggregator aggregates balance-carrying accounts: the running balance
// of each entry is a monetary amount in the account's native currency. It
// serves both the cash and the generic currency account kinds, which share
// these semantics exactly.
type cashAggregator struct {
	kind    Kind
	ledger  LedgerReader
	workers int
	log     zerolog.Logger
	now     func() date.Date
}

func newCashAggregator(kind Kind, ledger LedgerReader, workers int, log zerolog.Logger, now func() date.Date) *cashAggregator {
	return &cashAggregator{kind: kind, ledger: ledger, workers: workers, log: log, now: now}
}

func (a *cashAggregator) Kind() Kind { return a.kind }

func (a *cashAggregator) HasAnyPosition(ctx context.Context, ownerID string, sign Sign) (bool, error) {
	today := a.now()
	windows, err := a.ledger.Accounts(ctx, ownerID, a.kind, date.Range{From: today.Add(-lookback), To: today})
	if err != nil {
		return false, err
	}
	var mu sync.Mutex
	found := false
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		if e, ok := w.EntryAsOf(today); ok && sign.matches(e.Value) {
			mu.Lock()
			found = true
			mu.Unlock()
		}
		return nil
	})
	return found, err
}

func (a *cashAggregator) PerAccount(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, a.kind, date.Range{From: on.Add(-lookback), To: on})
	if err != nil {
		return nil, err
	}
	var mu sync.Mutex
	var positions []Position
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		e, ok := w.EntryAsOf(on)
		if !ok || !sign.matches(e.Value) {
			return nil
		}
		amount, ok, err := v.Value(ctx, w.Account.ID, e.Value, w.Account.Currency, currency, on)
		if err != nil || !ok {
			return err
		}
		mu.Lock()
		positions = append(positions, Position{Label: w.Account.Name, Amount: amount})
		mu.Unlock()
		return nil
	})
	sortPositions(positions)
	return positions, err
}

func (a *cashAggregator) PerCategory(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, a.kind, date.Range{From: on.Add(-lookback), To: on})
	if err != nil {
		return nil, err
	}
	group := newGroupByLabel()
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		e, ok := w.EntryAsOf(on)
		if !ok || !sign.matches(e.Value) {
			return nil
		}
		amount, ok, err := v.Value(ctx, w.Account.ID, e.Value, w.Account.Currency, currency, on)
		if err != nil || !ok {
			return err
		}
		group.add(w.Account.Category, amount)
		return nil
	})
	return group.positions(), err
}

func (a *cashAggregator) Series(ctx context.Context, ownerID, currency string, r date.Range, category string, v *Valuer) (*date.History[decimal.Decimal], error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, a.kind, r)
	if err != nil {
		return nil, err
	}
	var acc seriesAccumulator
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		if category != "" && w.Account.Category != category {
			return nil
		}
		for on, e := range w.Timeline("").Sweep(r) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if e == nil {
				continue // no position yet on that day
			}
			amount, ok, err := v.Value(ctx, w.Account.ID, e.Value, w.Account.Currency, currency, on)
			if err != nil {
				return err
			}
			if ok {
				acc.add(on, amount.Amount())
			}
		}
		return nil
	})
	return &acc.history, err
}

var _ Aggregator = (*cashAggregator)(nil)
