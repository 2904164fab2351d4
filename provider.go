package networth

import (
	"context"

	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// LedgerReader is the read capability the engine consumes. Implementations
// (SQL, in-memory) build Windows including boundary entries; the engine
// never writes through this interface.
type LedgerReader interface {
	// Accounts returns one window per account of the given kind owned by
	// ownerID, loaded for the range r.
	Accounts(ctx context.Context, ownerID string, kind Kind, r date.Range) ([]*Window, error)
	// Account returns the window of a single account. An accountID that
	// does not exist, or is owned by someone else, is an error.
	Account(ctx context.Context, ownerID, accountID string, r date.Range) (*Window, error)
}

// RateProvider looks up the exchange factor between two currencies as of a
// date. The boolean reports whether a rate was found; a lookup that fails
// upstream returns an error and lets the caller decide on a fallback.
type RateProvider interface {
	Rate(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error)
}

// RateFunc adapts a function to the RateProvider interface.
type RateFunc func(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error)

func (f RateFunc) Rate(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
	return f(ctx, from, to, on)
}
