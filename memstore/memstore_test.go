package memstore

import (
	"context"
	"testing"

	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

func TestPostRunningValue(t *testing.T) {
	s := New()
	a := s.CreateAccount("o1", networth.CashAccount, "Checking", "banking", "USD")

	day := date.MustParse("2025-02-01")
	if _, err := s.Post(a.ID, day, decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}
	e, err := s.Post(a.ID, day.Add(5), decimal.NewFromInt(-30))
	if err != nil {
		t.Fatal(err)
	}
	if !e.Value.Equal(decimal.NewFromInt(70)) {
		t.Errorf("running value = %s, want 70", e.Value)
	}

	if _, err := s.Post(a.ID, day.Add(2), decimal.NewFromInt(1)); err == nil {
		t.Error("backdated post accepted, want error")
	}
}

func TestPostStockPerTicker(t *testing.T) {
	s := New()
	a := s.CreateAccount("o1", networth.StockAccount, "Broker", "investments", "EUR")
	day := date.MustParse("2025-02-01")

	if _, err := s.Post(a.ID, day, decimal.NewFromInt(10)); err == nil {
		t.Fatal("stock post without ticker accepted, want error")
	}
	if _, err := s.Post(a.ID, day, decimal.NewFromInt(10), WithTicker("AAA", "share")); err != nil {
		t.Fatal(err)
	}
	// a first BBB entry starts its own running value, independent of AAA
	e, err := s.Post(a.ID, day.Add(1), decimal.NewFromInt(3), WithTicker("BBB", "etf"))
	if err != nil {
		t.Fatal(err)
	}
	if !e.Value.Equal(decimal.NewFromInt(3)) {
		t.Errorf("BBB running value = %s, want 3", e.Value)
	}
}

func TestAccountsWindowBoundaries(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := s.CreateAccount("o1", networth.CashAccount, "Checking", "banking", "USD")
	day := date.MustParse("2025-02-01")
	for i, change := range []int64{100, 20, 30} {
		if _, err := s.Post(a.ID, day.Add(i*10), decimal.NewFromInt(change)); err != nil {
			t.Fatal(err)
		}
	}

	// window covering only the middle entry: both boundaries populated
	r := date.Range{From: day.Add(5), To: day.Add(15)}
	windows, err := s.Accounts(ctx, "o1", networth.CashAccount, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	w := windows[0]

	e, ok := w.EntryAsOf(day.Add(7))
	if !ok || !e.Value.Equal(decimal.NewFromInt(100)) {
		t.Errorf("EntryAsOf before in-window entries = %v, %v; want older boundary value 100", e.Value, ok)
	}
	e, ok = w.EntryAsOf(day.Add(15))
	if !ok || !e.Value.Equal(decimal.NewFromInt(120)) {
		t.Errorf("EntryAsOf at window end = %v, %v; want 120", e.Value, ok)
	}
	// past the window's end the younger boundary answers
	e, ok = w.EntryAsOf(day.Add(25))
	if !ok || !e.Value.Equal(decimal.NewFromInt(150)) {
		t.Errorf("EntryAsOf past window end = %v, %v; want younger boundary value 150", e.Value, ok)
	}

	if _, err := s.Account(ctx, "o2", a.ID, r); err == nil {
		t.Error("Account() for the wrong owner succeeded, want error")
	}
}

func TestRatesAsOf(t *testing.T) {
	r := NewRates()
	ctx := context.Background()
	day := date.MustParse("2025-02-03")
	r.Set("EUR", "USD", day, decimal.NewFromFloat(1.08))

	rate, found, err := r.Rate(ctx, "EUR", "USD", day.Add(2))
	if err != nil || !found {
		t.Fatalf("Rate() = %v, %v", found, err)
	}
	if !rate.Equal(decimal.NewFromFloat(1.08)) {
		t.Errorf("rate = %s, want carry-forward 1.08", rate)
	}

	if _, found, _ := r.Rate(ctx, "EUR", "USD", day.Add(-1)); found {
		t.Error("rate before first fixing found, want absent")
	}
	if _, found, _ := r.Rate(ctx, "EUR", "JPY", day); found {
		t.Error("unknown pair found, want absent")
	}
}

func TestDemoSeeds(t *testing.T) {
	s, r, owner := Demo()
	ctx := context.Background()
	rep := networth.NewReporter(s, r)

	hasAssets, err := rep.HasAssets(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if !hasAssets {
		t.Error("demo owner has no assets")
	}
	hasLiabilities, err := rep.HasLiabilities(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if !hasLiabilities {
		t.Error("demo owner has no liabilities")
	}
}
