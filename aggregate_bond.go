package networth

import (
	"context"
	"sync"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// bondAggregator aggregates bond accounts. Like cash, a bond entry's running
// value is a balance in the account's native currency; the entry also
// references the bond's terms, which the engine carries through untouched
// (coupon accrual is posted by the write path, not computed here).
type bondAggregator struct {
	ledger  LedgerReader
	workers int
	log     zerolog.Logger
	now     func() date.Date
}

func newBondAggregator(ledger LedgerReader, workers int, log zerolog.Logger, now func() date.Date) *bondAggregator {
	return &bondAggregator{ledger: ledger, workers: workers, log: log, now: now}
}

func (a *bondAggregator) Kind() Kind { return BondAccount }

func (a *bondAggregator) HasAnyPosition(ctx context.Context, ownerID string, sign Sign) (bool, error) {
	today := a.now()
	windows, err := a.ledger.Accounts(ctx, ownerID, BondAccount, date.Range{From: today.Add(-lookback), To: today})
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

func (a *bondAggregator) PerAccount(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, BondAccount, date.Range{From: on.Add(-lookback), To: on})
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

func (a *bondAggregator) PerCategory(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, BondAccount, date.Range{From: on.Add(-lookback), To: on})
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

func (a *bondAggregator) Series(ctx context.Context, ownerID, currency string, r date.Range, category string, v *Valuer) (*date.History[decimal.Decimal], error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, BondAccount, r)
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
				continue
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

var _ Aggregator = (*bondAggregator)(nil)
