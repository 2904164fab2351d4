package networth

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/openfin/networth/date"
)

// Boundary holds the nearest entries just outside a loaded window. The older
// boundary seeds reconstruction at the window's start; the younger one keeps
// resolution honest past the end, where it supersedes every in-window entry.
// Either may be nil.
type Boundary struct {
	Older   *Entry // nearest entry strictly before the window start
	Younger *Entry // nearest entry strictly after the window end
}

// Timeline is one ordered entry sequence with its boundary pair. A cash,
// bond or currency account has a single timeline; a stock account has one
// per ticker.
type Timeline struct {
	Entries  []Entry // sorted by (posting date, ID)
	Boundary Boundary
}

// EntryAsOf returns the entry with the greatest posting date at or before
// 'on'. Entries sharing a posting date resolve to the one with the highest
// ID, consistent with the (date, ID) entry order. When no entry in the
// window qualifies, the older boundary entry is returned instead. Absence
// of any entry means "no position", not a zero balance.
//
// When 'on' falls past the window's loaded range, a younger boundary entry
// already in effect is the nearest later posting the timeline knows; it is
// returned rather than a stale in-window entry.
func (t *Timeline) EntryAsOf(on date.Date) (Entry, bool) {
	if t.Boundary.Younger != nil && !t.Boundary.Younger.Date.After(on) {
		return *t.Boundary.Younger, true
	}
	// First index with a posting date strictly after 'on'.
	i := sort.Search(len(t.Entries), func(i int) bool { return t.Entries[i].Date.After(on) })
	if i > 0 {
		return t.Entries[i-1], true
	}
	if t.Boundary.Older != nil && !t.Boundary.Older.Date.After(on) {
		return *t.Boundary.Older, true
	}
	return Entry{}, false
}

// Sweep materializes a dense daily series over r: it yields every day of the
// range paired with the entry in effect on that day, carrying the previous
// entry forward on days with no posting. Days before the first known entry
// yield nil.
func (t *Timeline) Sweep(r date.Range) iter.Seq2[date.Date, *Entry] {
	return func(yield func(date.Date, *Entry) bool) {
		var current *Entry
		if e, ok := t.EntryAsOf(r.From); ok {
			current = &e
		}
		// Index of the first in-window entry strictly after r.From.
		next := sort.Search(len(t.Entries), func(i int) bool { return t.Entries[i].Date.After(r.From) })
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			for next < len(t.Entries) && !t.Entries[next].Date.After(on) {
				current = &t.Entries[next]
				next++
			}
			if !yield(on, current) {
				return
			}
		}
	}
}

// Window is a read-only, bounded-range view of one account's ledger, plus
// the boundary entries needed to answer "what was the balance at the start".
// The engine only ever observes windows; it never mutates them.
type Window struct {
	Account Account
	Range   date.Range

	flat    Timeline             // all kinds but stock
	tickers map[string]*Timeline // stock: one independent timeline per ticker
}

// NewWindow assembles a window from in-range entries and boundary entries.
// Entries need not be pre-sorted. For stock accounts the entries (and the
// boundaries) are split into per-ticker timelines; for every other kind they
// form a single timeline and at most one boundary entry per side is kept.
func NewWindow(account Account, r date.Range, entries []Entry, older, younger []Entry) *Window {
	w := &Window{Account: account, Range: r}
	if account.Kind != StockAccount {
		w.flat.Entries = slices.Clone(entries)
		sortEntries(w.flat.Entries)
		if len(older) > 0 {
			e := older[len(older)-1]
			w.flat.Boundary.Older = &e
		}
		if len(younger) > 0 {
			e := younger[0]
			w.flat.Boundary.Younger = &e
		}
		return w
	}

	w.tickers = make(map[string]*Timeline)
	timeline := func(ticker string) *Timeline {
		t, ok := w.tickers[ticker]
		if !ok {
			t = &Timeline{}
			w.tickers[ticker] = t
		}
		return t
	}
	for _, e := range entries {
		t := timeline(e.Ticker)
		t.Entries = append(t.Entries, e)
	}
	for _, t := range w.tickers {
		sortEntries(t.Entries)
	}
	for _, e := range older {
		t := timeline(e.Ticker)
		if t.Boundary.Older == nil || t.Boundary.Older.less(e) {
			c := e
			t.Boundary.Older = &c
		}
	}
	for _, e := range younger {
		t := timeline(e.Ticker)
		if t.Boundary.Younger == nil || e.less(*t.Boundary.Younger) {
			c := e
			t.Boundary.Younger = &c
		}
	}
	return w
}

// EntryAsOf resolves the account's single timeline. For stock accounts use
// TickerAsOf, each ticker has its own timeline.
func (w *Window) EntryAsOf(on date.Date) (Entry, bool) {
	return w.flat.EntryAsOf(on)
}

// TickerAsOf resolves the position of one ticker of a stock account.
func (w *Window) TickerAsOf(ticker string, on date.Date) (Entry, bool) {
	t, ok := w.tickers[ticker]
	if !ok {
		return Entry{}, false
	}
	return t.EntryAsOf(on)
}

// Timeline returns the timeline for a ticker ("" for non-stock accounts),
// or nil when the window holds no such timeline.
func (w *Window) Timeline(ticker string) *Timeline {
	if w.Account.Kind != StockAccount {
		return &w.flat
	}
	return w.tickers[ticker]
}

// Tickers returns the sorted set of tickers present in a stock window,
// including tickers known only through a boundary entry.
func (w *Window) Tickers() []string {
	keys := slices.Collect(maps.Keys(w.tickers))
	slices.Sort(keys)
	return keys
}

// Entries yields all in-window entries in (posting date, ID) order,
// regardless of ticker.
func (w *Window) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if w.Account.Kind != StockAccount {
			for _, e := range w.flat.Entries {
				if !yield(e) {
					return
				}
			}
			return
		}
		var all []Entry
		for _, t := range w.tickers {
			all = append(all, t.Entries...)
		}
		sortEntries(all)
		for _, e := range all {
			if !yield(e) {
				return
			}
		}
	}
}
