package date

import (
	"testing"
	"time"
)

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(New(2025, time.January, 10), 100)
	h.Append(New(2025, time.January, 20), 150)
	// Out-of-order append must keep the series sorted.
	h.Append(New(2025, time.January, 5), 50)

	testCases := []struct {
		name   string
		on     Date
		want   float64
		wantOK bool
	}{
		{"before any data", New(2025, time.January, 1), 0, false},
		{"exact first day", New(2025, time.January, 5), 50, true},
		{"between entries", New(2025, time.January, 15), 100, true},
		{"exact last day", New(2025, time.January, 20), 150, true},
		{"after last entry", New(2025, time.February, 1), 150, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ValueAsOf(%v) = (%v, %v), want (%v, %v)", tc.on, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestHistoryAppendOverwrites(t *testing.T) {
	var h History[float64]
	on := New(2025, time.March, 1)
	h.Append(on, 1).Append(on, 2)
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 2 {
		t.Errorf("Get() = %v, want 2 (last write wins)", v)
	}
}

func TestHistoryMerge(t *testing.T) {
	var h History[float64]
	on := New(2025, time.March, 1)
	sum := func(old, new float64) float64 { return old + new }
	h.Merge(on, 10, sum)
	h.Merge(on, 5, sum)
	h.Merge(on.Add(1), 7, sum)
	if v, _ := h.Get(on); v != 15 {
		t.Errorf("Merge() = %v, want 15", v)
	}
	if day, v := h.Latest(); day != on.Add(1) || v != 7 {
		t.Errorf("Latest() = (%v, %v), want (%v, 7)", day, v, on.Add(1))
	}
}
