// Package memstore provides in-memory implementations of the ledger and rate
// collaborators. It backs tests and the command line's demo mode; nothing is
// persisted.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Store is an in-memory ledger. Entries must be posted in chronological
// order per timeline; the store derives each entry's running value from the
// previous one.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]networth.Account
	entries  map[string][]networth.Entry // by account ID, (date, ID) sorted
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]networth.Account),
		entries:  make(map[string][]networth.Entry),
	}
}

// CreateAccount registers an account and returns it with a fresh ID.
func (s *Store) CreateAccount(ownerID string, kind networth.Kind, name, category, currency string) networth.Account {
	a := networth.Account{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Kind:     kind,
		Name:     name,
		Category: category,
		Currency: currency,
	}
	s.mu.Lock()
	s.accounts[a.ID] = a
	s.mu.Unlock()
	return a
}

// PostOption sets the kind-specific fields of a posted entry.
type PostOption func(*networth.Entry)

// WithTicker marks a stock entry with its instrument and sub-type.
func WithTicker(ticker, subType string) PostOption {
	return func(e *networth.Entry) { e.Ticker, e.SubType = ticker, subType }
}

// WithBondTerms references the terms of a bond entry.
func WithBondTerms(ref string) PostOption {
	return func(e *networth.Entry) { e.BondTerms = ref }
}

// WithComment labels a cash entry.
func WithComment(c string) PostOption {
	return func(e *networth.Entry) { e.Comment = c }
}

// Post appends a delta to an account's timeline. The running value of the
// new entry is the previous value plus the change. Posting before the
// timeline's last entry is rejected, the store never rewrites history.
func (s *Store) Post(accountID string, on date.Date, change decimal.Decimal, opts ...PostOption) (networth.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return networth.Entry{}, fmt.Errorf("no account %q", accountID)
	}
	e := networth.Entry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Date:      on,
		Change:    change,
	}
	for _, opt := range opts {
		opt(&e)
	}
	if a.Kind == networth.StockAccount && e.Ticker == "" {
		return networth.Entry{}, fmt.Errorf("account %q: stock entries need a ticker", a.Name)
	}

	prev := decimal.Zero
	for i := len(s.entries[accountID]) - 1; i >= 0; i-- {
		last := s.entries[accountID][i]
		if last.Ticker != e.Ticker {
			continue
		}
		if on.Before(last.Date) {
			return networth.Entry{}, fmt.Errorf("account %q: cannot post %s before last entry %s", a.Name, on, last.Date)
		}
		prev = last.Value
		break
	}
	e.Value = prev.Add(change)
	s.entries[accountID] = append(s.entries[accountID], e)
	return e, nil
}

// window builds the bounded view of one account: in-range entries plus the
// out-of-range ones the window constructor distills into boundaries.
func (s *Store) window(a networth.Account, r date.Range) *networth.Window {
	var in, older, younger []networth.Entry
	for _, e := range s.entries[a.ID] {
		switch {
		case e.Date.Before(r.From):
			older = append(older, e)
		case e.Date.After(r.To):
			younger = append(younger, e)
		default:
			in = append(in, e)
		}
	}
	return networth.NewWindow(a, r, in, older, younger)
}

// Accounts implements networth.LedgerReader.
func (s *Store) Accounts(ctx context.Context, ownerID string, kind networth.Kind, r date.Range) ([]*networth.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var windows []*networth.Window
	for _, a := range s.accounts {
		if a.OwnerID == ownerID && a.Kind == kind {
			windows = append(windows, s.window(a, r))
		}
	}
	return windows, nil
}

// Account implements networth.LedgerReader.
func (s *Store) Account(ctx context.Context, ownerID, accountID string, r date.Range) (*networth.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok || a.OwnerID != ownerID {
		return nil, fmt.Errorf("no account %q for owner %q", accountID, ownerID)
	}
	return s.window(a, r), nil
}

var _ networth.LedgerReader = (*Store)(nil)
