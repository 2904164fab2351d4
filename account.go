package networth

import (
	"fmt"
	"strings"
)

// Kind is the closed set of account kinds the engine knows how to aggregate.
type Kind int

const (
	// CashAccount is a bank or checking account holding a balance in its
	// native currency.
	CashAccount Kind = iota
	// StockAccount holds quantities of one or more tickers, each ticker
	// with its own independent entry timeline.
	StockAccount
	// BondAccount holds a balance of bond units referencing bond terms.
	BondAccount
	// CurrencyAccount is a generic currency position (wallets, foreign
	// cash). It aggregates exactly like a cash account.
	CurrencyAccount
)

func (k Kind) String() string {
	switch k {
	case CashAccount:
		return "cash"
	case StockAccount:
		return "stock"
	case BondAccount:
		return "bond"
	case CurrencyAccount:
		return "currency"
	default:
		return "unknown"
	}
}

// ParseKind parses an account kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return CashAccount, nil
	case "stock":
		return StockAccount, nil
	case "bond":
		return BondAccount, nil
	case "currency":
		return CurrencyAccount, nil
	default:
		return 0, fmt.Errorf("unknown account kind %q", s)
	}
}

// Kinds lists every account kind, in aggregation order.
func Kinds() []Kind {
	return []Kind{CashAccount, StockAccount, BondAccount, CurrencyAccount}
}

// Account identifies one ledger and how to value it. Identity is immutable;
// category and name are maintained by the persistence layer, the engine only
// observes them.
type Account struct {
	ID       string
	OwnerID  string
	Kind     Kind
	Name     string // display name
	Category string // free label used for grouping, e.g. "Cash", "Loan", "Other"
	Currency string // ISO code of the account's native currency
}
