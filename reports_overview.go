package networth

import (
	"context"
	"fmt"

	"github.com/openfin/networth/date"
)

// Overview is the one-page summary of an owner's wealth at a date, the
// shape consumed by the renderer and the command line.
type Overview struct {
	OwnerID     string
	Date        date.Date
	Currency    string
	NetWorth    Money
	Assets      []Position
	Liabilities []Position
}

// Overview assembles net worth plus assets and liabilities grouped by
// category, all valued in the reporting currency at 'on'.
func (r *Reporter) Overview(ctx context.Context, ownerID, currency string, on date.Date) (*Overview, error) {
	if err := ValidCurrency(currency); err != nil {
		return nil, err
	}
	on = r.clamp(on)

	total, err := r.NetWorth(ctx, ownerID, currency, on)
	if err != nil {
		return nil, fmt.Errorf("net worth: %w", err)
	}
	assets, err := r.AssetsPerCategory(ctx, ownerID, currency, on)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	liabilities, err := r.LiabilitiesPerCategory(ctx, ownerID, currency, on)
	if err != nil {
		return nil, fmt.Errorf("liabilities: %w", err)
	}
	return &Overview{
		OwnerID:     ownerID,
		Date:        on,
		Currency:    currency,
		NetWorth:    total,
		Assets:      assets,
		Liabilities: liabilities,
	}, nil
}
