package networth

import (
	"context"
	"sync"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// stockAggregator aggregates stock accounts. The running value of an entry
// is a quantity of its ticker; each ticker lives on its own timeline inside
// the account's window, with its own boundary pair and its own
// carry-forward during sweeps.
type stockAggregator struct {
	ledger  LedgerReader
	workers int
	log     zerolog.Logger
	now     func() date.Date
}

func newStockAggregator(ledger LedgerReader, workers int, log zerolog.Logger, now func() date.Date) *stockAggregator {
	return &stockAggregator{ledger: ledger, workers: workers, log: log, now: now}
}

func (a *stockAggregator) Kind() Kind { return StockAccount }

func (a *stockAggregator) HasAnyPosition(ctx context.Context, ownerID string, sign Sign) (bool, error) {
	today := a.now()
	windows, err := a.ledger.Accounts(ctx, ownerID, StockAccount, date.Range{From: today.Add(-lookback), To: today})
	if err != nil {
		return false, err
	}
	var mu sync.Mutex
	found := false
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		for _, ticker := range w.Tickers() {
			if e, ok := w.TickerAsOf(ticker, today); ok && sign.matches(e.Value) {
				mu.Lock()
				found = true
				mu.Unlock()
				return nil
			}
		}
		return nil
	})
	return found, err
}

// valuedTickers resolves every ticker of a stock window at 'on' and values
// the quantities matching sign, yielding (resolved entry, amount) pairs.
func (a *stockAggregator) valuedTickers(ctx context.Context, w *Window, currency string, on date.Date, sign Sign, v *Valuer, emit func(Entry, Money)) error {
	for _, ticker := range w.Tickers() {
		e, ok := w.TickerAsOf(ticker, on)
		if !ok || !sign.matches(e.Value) {
			continue
		}
		amount, ok, err := v.Value(ctx, ticker, e.Value, w.Account.Currency, currency, on)
		if err != nil {
			return err
		}
		if ok {
			emit(e, amount)
		}
	}
	return nil
}

func (a *stockAggregator) PerAccount(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, StockAccount, date.Range{From: on.Add(-lookback), To: on})
	if err != nil {
		return nil, err
	}
	var mu sync.Mutex
	var positions []Position
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		total := M(0, currency)
		any := false
		err := a.valuedTickers(ctx, w, currency, on, sign, v, func(_ Entry, amount Money) {
			total = total.Add(amount)
			any = true
		})
		if err != nil || !any {
			return err
		}
		mu.Lock()
		positions = append(positions, Position{Label: w.Account.Name, Amount: total})
		mu.Unlock()
		return nil
	})
	sortPositions(positions)
	return positions, err
}

// PerCategory groups stock positions by instrument sub-type rather than by
// the account's category label.
func (a *stockAggregator) PerCategory(ctx context.Context, ownerID, currency string, on date.Date, sign Sign, v *Valuer) ([]Position, error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, StockAccount, date.Range{From: on.Add(-lookback), To: on})
	if err != nil {
		return nil, err
	}
	group := newGroupByLabel()
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		return a.valuedTickers(ctx, w, currency, on, sign, v, func(e Entry, amount Money) {
			label := e.SubType
			if label == "" {
				label = "other"
			}
			group.add(label, amount)
		})
	})
	return group.positions(), err
}

func (a *stockAggregator) Series(ctx context.Context, ownerID, currency string, r date.Range, category string, v *Valuer) (*date.History[decimal.Decimal], error) {
	windows, err := a.ledger.Accounts(ctx, ownerID, StockAccount, r)
	if err != nil {
		return nil, err
	}
	var acc seriesAccumulator
	err = eachWindow(ctx, a.workers, windows, a.log, func(w *Window) error {
		if category != "" && w.Account.Category != category {
			return nil
		}
		// Each ticker sweeps independently so a quiet ticker keeps
		// contributing its carried-forward quantity.
		for _, ticker := range w.Tickers() {
			for on, e := range w.Timeline(ticker).Sweep(r) {
				if err := ctx.Err(); err != nil {
					return err
				}
				if e == nil {
					continue
				}
				amount, ok, err := v.Value(ctx, ticker, e.Value, w.Account.Currency, currency, on)
				if err != nil {
					return err
				}
				if ok {
					acc.add(on, amount.Amount())
				}
			}
		}
		return nil
	})
	return &acc.history, err
}

var _ Aggregator = (*stockAggregator)(nil)
