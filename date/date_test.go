package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-02", want: New(2025, time.January, 2)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
		{in: "2025-13-45", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStartEndOf(t *testing.T) {
	// 2025-08-13 is a Wednesday.
	d := New(2025, time.August, 13)

	testCases := []struct {
		name      string
		period    Period
		wantStart Date
		wantEnd   Date
	}{
		{"daily", Daily, d, d},
		{"weekly", Weekly, New(2025, time.August, 11), New(2025, time.August, 17)},
		{"monthly", Monthly, New(2025, time.August, 1), New(2025, time.August, 31)},
		{"quarterly", Quarterly, New(2025, time.July, 1), New(2025, time.September, 30)},
		{"yearly", Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.wantStart {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.wantStart)
			}
			if got := d.EndOf(tc.period); got != tc.wantEnd {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.wantEnd)
			}
		})
	}
}

func TestWeekStartsOnMonday(t *testing.T) {
	// A Sunday must belong to the week that started 6 days before.
	sunday := New(2025, time.August, 17)
	if got := sunday.StartOf(Weekly); got != New(2025, time.August, 11) {
		t.Errorf("StartOf(Weekly) on Sunday = %v, want 2025-08-11", got)
	}
}

func TestRangeEach(t *testing.T) {
	r := NewRange(New(2025, time.January, 30), New(2025, time.February, 2))
	var got []Date
	for d := range r.Each() {
		got = append(got, d)
	}
	want := []Date{
		New(2025, time.January, 30),
		New(2025, time.January, 31),
		New(2025, time.February, 1),
		New(2025, time.February, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("Each() yielded %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Each()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Days() != 4 {
		t.Errorf("Days() = %d, want 4", r.Days())
	}
}

func TestRangePeriods(t *testing.T) {
	r := NewRange(New(2025, time.January, 15), New(2025, time.March, 10))
	var months []Range
	for pr := range r.Periods(Monthly) {
		months = append(months, pr)
	}
	if len(months) != 3 {
		t.Fatalf("Periods(Monthly) yielded %d ranges, want 3", len(months))
	}
	if months[0].From != New(2025, time.January, 1) || months[2].To != New(2025, time.March, 31) {
		t.Errorf("unexpected period boundaries: %v .. %v", months[0], months[2])
	}
}

func TestNewRangeSwaps(t *testing.T) {
	r := NewRange(New(2025, time.May, 10), New(2025, time.May, 1))
	if r.From != New(2025, time.May, 1) || r.To != New(2025, time.May, 10) {
		t.Errorf("NewRange did not swap reversed boundaries: %v", r)
	}
}
