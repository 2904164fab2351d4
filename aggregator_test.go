package networth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/openfin/networth/date"
	"github.com/rs/zerolog"
)

func poolWindows(ids ...string) []*Window {
	r := date.Range{From: d("2025-01-01"), To: d("2025-01-31")}
	var windows []*Window
	for _, id := range ids {
		a := Account{ID: id, Name: id, Kind: CashAccount, Currency: "USD"}
		windows = append(windows, NewWindow(a, r, nil, nil, nil))
	}
	return windows
}

func TestEachWindowSkipsFailedAccount(t *testing.T) {
	windows := poolWindows("a1", "a2", "a3")
	var mu sync.Mutex
	var done []string
	err := eachWindow(context.Background(), 2, windows, zerolog.Nop(), func(w *Window) error {
		if w.Account.ID == "a2" {
			return fmt.Errorf("corrupt entry")
		}
		mu.Lock()
		done = append(done, w.Account.ID)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("one bad account failed the whole run: %v", err)
	}
	sort.Strings(done)
	if len(done) != 2 || done[0] != "a1" || done[1] != "a3" {
		t.Errorf("processed %v, want the two healthy accounts", done)
	}
}

func TestEachWindowCancellationIsNotASkip(t *testing.T) {
	windows := poolWindows("a1", "a2", "a3")
	ctx, cancel := context.WithCancel(context.Background())
	err := eachWindow(ctx, 1, windows, zerolog.Nop(), func(w *Window) error {
		cancel()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("eachWindow after cancellation = %v, want context.Canceled", err)
	}
}

func TestEachWindowDeadlineIsNotASkip(t *testing.T) {
	windows := poolWindows("a1")
	err := eachWindow(context.Background(), 1, windows, zerolog.Nop(), func(w *Window) error {
		return fmt.Errorf("loading entries: %w", context.DeadlineExceeded)
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("eachWindow after deadline = %v, want context.DeadlineExceeded", err)
	}
}
