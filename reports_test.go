package networth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// fakeLedger serves windows from in-memory accounts, splitting each account's
// full entry list around the requested range like a real store would.
type fakeLedger struct {
	mu       sync.Mutex
	accounts []Account
	entries  map[string][]Entry
	calls    int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string][]Entry)}
}

func (l *fakeLedger) add(a Account, entries ...Entry) {
	l.accounts = append(l.accounts, a)
	l.entries[a.ID] = entries
}

func (l *fakeLedger) window(a Account, r date.Range) *Window {
	var in, older, younger []Entry
	for _, e := range l.entries[a.ID] {
		switch {
		case e.Date.Before(r.From):
			older = append(older, e)
		case e.Date.After(r.To):
			younger = append(younger, e)
		default:
			in = append(in, e)
		}
	}
	return NewWindow(a, r, in, older, younger)
}

func (l *fakeLedger) Accounts(ctx context.Context, ownerID string, kind Kind, r date.Range) ([]*Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	var windows []*Window
	for _, a := range l.accounts {
		if a.OwnerID == ownerID && a.Kind == kind {
			windows = append(windows, l.window(a, r))
		}
	}
	return windows, nil
}

func (l *fakeLedger) Account(ctx context.Context, ownerID, accountID string, r date.Range) (*Window, error) {
	for _, a := range l.accounts {
		if a.ID == accountID && a.OwnerID == ownerID {
			return l.window(a, r), nil
		}
	}
	return nil, fmt.Errorf("no account %q for owner %q", accountID, ownerID)
}

// parityRates answers 1 for every pair, so amounts pass through unconverted.
func parityRates() RateProvider {
	return RateFunc(func(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
		return decimal.NewFromInt(1), true, nil
	})
}

func fixedClock(s string) Option { return withClock(func() date.Date { return d(s) }) }

func TestNetWorthIncludesNegativeBalances(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})
	ledger.add(Account{ID: "loan", OwnerID: "o1", Kind: CashAccount, Name: "Loan", Category: "loans", Currency: "USD"},
		Entry{ID: "e2", Date: d("2025-01-05"), Value: dec(-40), Change: dec(-40)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	ctx := context.Background()

	total, err := rep.NetWorth(ctx, "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !total.Amount().Equal(dec(60)) {
		t.Errorf("NetWorth = %s, want 60", total.Amount())
	}

	assets, err := rep.AssetsPerAccount(ctx, "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 || assets[0].Label != "Checking" {
		t.Errorf("AssetsPerAccount = %v, want only Checking", assets)
	}

	liabilities, err := rep.LiabilitiesPerAccount(ctx, "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(liabilities) != 1 || liabilities[0].Label != "Loan" {
		t.Errorf("LiabilitiesPerAccount = %v, want only Loan", liabilities)
	}
	if !liabilities[0].Amount.Amount().Equal(dec(-40)) {
		t.Errorf("liability amount = %s, want signed -40", liabilities[0].Amount.Amount())
	}
}

func TestNetWorthResolvesAsOf(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-01"), Value: dec(100), Change: dec(100)},
		Entry{ID: "e2", Date: d("2025-01-10"), Value: dec(150), Change: dec(50)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	ctx := context.Background()

	// between the two postings the first value is in effect
	total, err := rep.NetWorth(ctx, "o1", "USD", d("2025-01-05"))
	if err != nil {
		t.Fatal(err)
	}
	if !total.Amount().Equal(dec(100)) {
		t.Errorf("NetWorth on day 5 = %s, want 100", total.Amount())
	}

	series, err := rep.Series(ctx, "o1", "USD", date.Range{From: d("2025-01-01"), To: d("2025-01-10")}, "")
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 10 {
		t.Fatalf("series has %d days, want 10", series.Len())
	}
	for on, v := range series.Values() {
		want := dec(100)
		if !on.Before(d("2025-01-10")) {
			want = dec(150)
		}
		if !v.Equal(want) {
			t.Errorf("series[%s] = %s, want %s", on, v, want)
		}
	}
}

func TestStockValuedByRate(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "broker", OwnerID: "o1", Kind: StockAccount, Name: "Broker", Category: "investments", Currency: "EUR"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(10), Change: dec(10), Ticker: "VWCE", SubType: "etf"})

	rates := RateFunc(func(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
		if from == "EUR" && to == "USD" {
			return decimal.NewFromFloat(1.1), true, nil
		}
		return decimal.Zero, false, nil
	})
	rep := NewReporter(ledger, rates, fixedClock("2025-06-01"))

	assets, err := rep.AssetsPerAccount(context.Background(), "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 {
		t.Fatalf("AssetsPerAccount = %v, want one position", assets)
	}
	if !assets[0].Amount.Amount().Equal(decimal.NewFromInt(11)) {
		t.Errorf("stock position = %s, want 11", assets[0].Amount.Amount())
	}
}

func TestPerCategoryMergesAcrossKinds(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Brokerage Cash", Category: "investments", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})
	ledger.add(Account{ID: "bond", OwnerID: "o1", Kind: BondAccount, Name: "T-Bill", Category: "investments", Currency: "USD"},
		Entry{ID: "e2", Date: d("2025-01-05"), Value: dec(50), Change: dec(50), BondTerms: "US-13W"})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	assets, err := rep.AssetsPerCategory(context.Background(), "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 1 || assets[0].Label != "investments" {
		t.Fatalf("AssetsPerCategory = %v, want one merged category", assets)
	}
	if !assets[0].Amount.Amount().Equal(dec(150)) {
		t.Errorf("investments total = %s, want 150", assets[0].Amount.Amount())
	}
}

func TestFutureDatesClampToToday(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-03-01"))
	ctx := context.Background()

	today, err := rep.NetWorth(ctx, "o1", "USD", d("2025-03-01"))
	if err != nil {
		t.Fatal(err)
	}
	future, err := rep.NetWorth(ctx, "o1", "USD", d("2030-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !future.Equal(today) {
		t.Errorf("future NetWorth = %s, want today's %s", future, today)
	}

	// a series ending in the future stops at today
	series, err := rep.Series(ctx, "o1", "USD", date.Range{From: d("2025-02-27"), To: d("2030-01-01")}, "")
	if err != nil {
		t.Fatal(err)
	}
	last, _ := series.Latest()
	if last != d("2025-03-01") {
		t.Errorf("series ends on %s, want clamped to 2025-03-01", last)
	}

	// a fully-future range yields an empty series, not an error
	series, err = rep.Series(ctx, "o1", "USD", date.Range{From: d("2029-01-01"), To: d("2030-01-01")}, "")
	if err != nil {
		t.Fatal(err)
	}
	if series.Len() != 0 {
		t.Errorf("fully-future series has %d days, want 0", series.Len())
	}
}

func TestBadInputRejectedBeforeIO(t *testing.T) {
	ledger := newFakeLedger()
	rep := NewReporter(ledger, parityRates(), fixedClock("2025-03-01"))
	ctx := context.Background()

	_, err := rep.Series(ctx, "o1", "USD", date.Range{From: d("2025-02-01"), To: d("2025-01-01")}, "")
	if err == nil || !strings.Contains(err.Error(), "invalid range") {
		t.Errorf("reversed range error = %v, want invalid range", err)
	}
	if _, err := rep.NetWorth(ctx, "o1", "WAT", d("2025-01-01")); err == nil {
		t.Error("unknown currency accepted, want error")
	}
	if ledger.calls != 0 {
		t.Errorf("ledger was read %d times for invalid input, want 0", ledger.calls)
	}
}

func TestSeriesCategoryFilter(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-01"), Value: dec(100), Change: dec(100)})
	ledger.add(Account{ID: "save", OwnerID: "o1", Kind: CashAccount, Name: "Savings", Category: "savings", Currency: "USD"},
		Entry{ID: "e2", Date: d("2025-01-01"), Value: dec(40), Change: dec(40)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	series, err := rep.Series(context.Background(), "o1", "USD", date.Range{From: d("2025-01-01"), To: d("2025-01-03")}, "savings")
	if err != nil {
		t.Fatal(err)
	}
	for on, v := range series.Values() {
		if !v.Equal(dec(40)) {
			t.Errorf("series[%s] = %s, want savings only 40", on, v)
		}
	}
}

func TestIncomeAndSpending(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		// before the range, must not count
		Entry{ID: "e0", Date: d("2024-12-20"), Value: dec(500), Change: dec(500)},
		Entry{ID: "e1", Date: d("2025-01-02"), Value: dec(600), Change: dec(100)},
		Entry{ID: "e2", Date: d("2025-01-03"), Value: dec(570), Change: dec(-30)},
		Entry{ID: "e3", Date: d("2025-01-03"), Value: dec(620), Change: dec(50)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	ctx := context.Background()
	r := date.Range{From: d("2025-01-01"), To: d("2025-01-10")}

	income, err := rep.Income(ctx, "o1", "USD", r)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := income.Get(d("2025-01-02")); !ok || !v.Equal(dec(100)) {
		t.Errorf("income on Jan 2 = %v, %v; want 100", v, ok)
	}
	if v, ok := income.Get(d("2025-01-03")); !ok || !v.Equal(dec(50)) {
		t.Errorf("income on Jan 3 = %v, %v; want 50", v, ok)
	}
	if _, ok := income.Get(d("2024-12-20")); ok {
		t.Error("income counted an entry posted before the range")
	}

	spending, err := rep.Spending(ctx, "o1", "USD", r)
	if err != nil {
		t.Fatal(err)
	}
	if spending.Len() != 1 {
		t.Fatalf("spending has %d days, want 1", spending.Len())
	}
	if v, ok := spending.Get(d("2025-01-03")); !ok || !v.Equal(dec(-30)) {
		t.Errorf("spending on Jan 3 = %v, %v; want -30", v, ok)
	}
}

func TestReporterFallbackPolicies(t *testing.T) {
	newLedger := func() *fakeLedger {
		ledger := newFakeLedger()
		ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "EUR"},
			Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})
		return ledger
	}
	noRates := RateFunc(func(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
		return decimal.Zero, false, nil
	})
	ctx := context.Background()

	rep := NewReporter(newLedger(), noRates, fixedClock("2025-06-01"))
	total, err := rep.NetWorth(ctx, "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !total.Amount().Equal(dec(100)) {
		t.Errorf("parity NetWorth = %s, want face value 100", total.Amount())
	}

	rep = NewReporter(newLedger(), noRates, fixedClock("2025-06-01"), WithFallback(FallbackSkip))
	total, err = rep.NetWorth(ctx, "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !total.IsZero() {
		t.Errorf("skip NetWorth = %s, want 0 with the position excluded", total.Amount())
	}
}

func TestSeriesCancelledMidSweepFails(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "EUR"},
		Entry{ID: "e1", Date: d("2025-01-01"), Value: dec(100), Change: dec(100)})

	// the request is torn down while the sweep is under way; the truncated
	// series must surface as a failure, not as a short success
	ctx, cancel := context.WithCancel(context.Background())
	rates := RateFunc(func(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
		cancel()
		return decimal.Zero, false, ctx.Err()
	})
	rep := NewReporter(ledger, rates, fixedClock("2025-06-01"), WithWorkers(1))

	_, err := rep.Series(ctx, "o1", "USD", date.Range{From: d("2025-01-01"), To: d("2025-01-10")}, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Series after mid-sweep cancellation = %v, want context.Canceled", err)
	}
}

func TestNetWorthCancelledBeforeDispatchFails(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	if _, err := rep.NetWorth(ctx, "o1", "USD", d("2025-02-01")); !errors.Is(err, context.Canceled) {
		t.Fatalf("NetWorth on a cancelled context = %v, want context.Canceled", err)
	}
}

func TestOverview(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})
	ledger.add(Account{ID: "loan", OwnerID: "o1", Kind: CashAccount, Name: "Loan", Category: "loans", Currency: "USD"},
		Entry{ID: "e2", Date: d("2025-01-05"), Value: dec(-40), Change: dec(-40)})

	rep := NewReporter(ledger, parityRates(), fixedClock("2025-06-01"))
	o, err := rep.Overview(context.Background(), "o1", "USD", d("2025-02-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !o.NetWorth.Amount().Equal(dec(60)) {
		t.Errorf("overview net worth = %s, want 60", o.NetWorth.Amount())
	}
	if len(o.Assets) != 1 || o.Assets[0].Label != "banking" {
		t.Errorf("overview assets = %v, want banking", o.Assets)
	}
	if len(o.Liabilities) != 1 || o.Liabilities[0].Label != "loans" {
		t.Errorf("overview liabilities = %v, want loans", o.Liabilities)
	}
}

func TestHasAssetsAndLiabilities(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})

	rep := NewReporter(ledger, parityRates())
	ctx := context.Background()

	hasAssets, err := rep.HasAssets(ctx, "o1")
	if err != nil {
		t.Fatal(err)
	}
	if !hasAssets {
		t.Error("HasAssets = false, want true")
	}
	hasLiabilities, err := rep.HasLiabilities(ctx, "o1")
	if err != nil {
		t.Fatal(err)
	}
	if hasLiabilities {
		t.Error("HasLiabilities = true, want false")
	}
	// an unknown owner has nothing
	hasAssets, err = rep.HasAssets(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if hasAssets {
		t.Error("HasAssets for unknown owner = true, want false")
	}
}

func TestHasAssetsUsesReporterClock(t *testing.T) {
	ledger := newFakeLedger()
	ledger.add(Account{ID: "cash", OwnerID: "o1", Kind: CashAccount, Name: "Checking", Category: "banking", Currency: "USD"},
		Entry{ID: "e1", Date: d("2025-01-05"), Value: dec(100), Change: dec(100)})
	ctx := context.Background()

	// the day before the first posting nothing is held yet
	rep := NewReporter(ledger, parityRates(), fixedClock("2025-01-04"))
	has, err := rep.HasAssets(ctx, "o1")
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Error("HasAssets before the first posting = true, want false")
	}

	rep = NewReporter(ledger, parityRates(), fixedClock("2025-01-05"))
	has, err = rep.HasAssets(ctx, "o1")
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("HasAssets on the posting day = false, want true")
	}
}
