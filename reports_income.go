package networth

import (
	"context"
	"fmt"

	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Income sums, per day, the positive entry deltas of the owner's cash and
// currency accounts over the range, valued in the reporting currency.
// Only the delta's own sign matters: a deposit into an overdrawn account is
// still income. Entries posted outside the range are excluded.
func (r *Reporter) Income(ctx context.Context, ownerID, currency string, x date.Range) (*date.History[decimal.Decimal], error) {
	return r.flows(ctx, ownerID, currency, x, Positive)
}

// Spending is the negative counterpart of Income; the daily sums it returns
// are negative.
func (r *Reporter) Spending(ctx context.Context, ownerID, currency string, x date.Range) (*date.History[decimal.Decimal], error) {
	return r.flows(ctx, ownerID, currency, x, Negative)
}

// flows partitions cash-like entries by the sign of their delta on their
// exact posting day. Stock and bond movements are not cash flows and are
// never counted.
func (r *Reporter) flows(ctx context.Context, ownerID, currency string, x date.Range, sign Sign) (*date.History[decimal.Decimal], error) {
	if err := validRange(x); err != nil {
		return nil, err
	}
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	x.To = r.clamp(x.To)
	if x.To.Before(x.From) {
		return &date.History[decimal.Decimal]{}, nil
	}

	v := r.newValuer()
	var acc seriesAccumulator
	for _, kind := range []Kind{CashAccount, CurrencyAccount} {
		windows, err := r.ledger.Accounts(ctx, ownerID, kind, x)
		if err != nil {
			return nil, fmt.Errorf("%s accounts: %w", kind, err)
		}
		err = eachWindow(ctx, r.workers, windows, r.log, func(w *Window) error {
			for e := range w.Entries() {
				if !x.Contains(e.Date) || !sign.matches(e.Change) {
					continue
				}
				amount, ok, err := v.Value(ctx, w.Account.ID, e.Change, w.Account.Currency, currency, e.Date)
				if err != nil {
					return err
				}
				if ok {
					acc.add(e.Date, amount.Amount())
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return &acc.history, nil
}
