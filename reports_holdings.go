package networth

import (
	"context"
	"fmt"
	"sort"

	"github.com/openfin/networth/date"
)

// Holding is one instrument position of a stock account: the quantity held
// and its value in the reporting currency.
type Holding struct {
	Account  string
	Ticker   string
	SubType  string
	Quantity Quantity
	Value    Money
}

// Holdings lists every ticker position across the owner's stock accounts at
// 'on', including short positions. Rows are ordered by account then ticker.
func (r *Reporter) Holdings(ctx context.Context, ownerID, currency string, on date.Date) ([]Holding, error) {
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	on = r.clamp(on)
	v := r.newValuer()

	windows, err := r.ledger.Accounts(ctx, ownerID, StockAccount, date.Range{From: on.Add(-lookback), To: on})
	if err != nil {
		return nil, fmt.Errorf("stock accounts: %w", err)
	}
	var holdings []Holding
	for _, w := range windows {
		for _, ticker := range w.Tickers() {
			e, ok := w.TickerAsOf(ticker, on)
			if !ok || e.Value.IsZero() {
				continue
			}
			amount, ok, err := v.Value(ctx, ticker, e.Value, w.Account.Currency, currency, on)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			holdings = append(holdings, Holding{
				Account:  w.Account.Name,
				Ticker:   ticker,
				SubType:  e.SubType,
				Quantity: Q(e.Value),
				Value:    amount,
			})
		}
	}
	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].Account != holdings[j].Account {
			return holdings[i].Account < holdings[j].Account
		}
		return holdings[i].Ticker < holdings[j].Ticker
	})
	return holdings, nil
}
