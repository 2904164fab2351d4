package networth

import (
	"sort"

	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Entry is one recorded change to an account's balance or quantity.
// It carries both the delta and the resulting running total, so the state
// at any entry can be read without replaying the whole ledger:
//
//	Value(entry_n) = Value(entry_n-1) + Change(entry_n)
//
// Entries are written by the persistence layer and never mutated here.
type Entry struct {
	ID        string
	AccountID string
	Date      date.Date // posting date, normalized to a UTC day

	Value  decimal.Decimal // running balance/quantity immediately after this entry
	Change decimal.Decimal // the delta this entry applied

	// Stock entries only.
	Ticker  string
	SubType string // instrument sub-type, e.g. "share", "etf", "fund"

	// Bond entries only: reference to the bond's terms.
	BondTerms string

	// Cash and currency entries: free-text label.
	Comment string
}

// less orders entries chronologically; entries sharing a posting date are
// ordered by ascending ID. This is the tie-breaking contract: the resolver
// always picks the entry that sorts last among those at or before a date.
func (e Entry) less(x Entry) bool {
	if e.Date != x.Date {
		return e.Date.Before(x.Date)
	}
	return e.ID < x.ID
}

// sortEntries sorts entries by (posting date, ID) ascending.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].less(entries[j]) })
}
