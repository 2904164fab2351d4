package networth

import (
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Spans (in days, inclusive) up to which each granularity is chosen
// automatically. Anything longer than a year falls back to yearly.
const (
	maxDailySpan   = 31
	maxWeeklySpan  = 93
	maxMonthlySpan = 365
)

// ChoosePeriod picks a bucketing granularity for a span so that a chart of
// the bucketed series keeps a readable number of points.
func ChoosePeriod(r date.Range) date.Period {
	switch days := r.Days(); {
	case days <= maxDailySpan:
		return date.Daily
	case days <= maxWeeklySpan:
		return date.Weekly
	case days <= maxMonthlySpan:
		return date.Monthly
	default:
		return date.Yearly
	}
}

// Bucket is one point of a downsampled series. Date is the date of the first
// sample that fell into the bucket, not the calendar start of the period, so
// a sparse series never reports dates it has no data for.
type Bucket struct {
	Date   date.Date
	Values []decimal.Decimal
}

// Sum adds up the bucket's values.
func (b Bucket) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b.Values {
		sum = sum.Add(v)
	}
	return sum
}

// Last returns the bucket's most recent value, the natural reduction for a
// balance series where each sample supersedes the previous one.
func (b Bucket) Last() decimal.Decimal {
	if len(b.Values) == 0 {
		return decimal.Zero
	}
	return b.Values[len(b.Values)-1]
}

// BucketSeries groups a daily history into per-period buckets at the given
// granularity. Periods with no sample produce no bucket. Since histories are
// date-ordered, bucketing a series already at the target granularity yields
// one single-value bucket per sample, unchanged.
func BucketSeries(h *date.History[decimal.Decimal], p date.Period) []Bucket {
	var buckets []Bucket
	for on, v := range h.Values() {
		start := on.StartOf(p)
		if n := len(buckets); n > 0 && !buckets[n-1].Date.StartOf(p).Before(start) {
			buckets[n-1].Values = append(buckets[n-1].Values, v)
			continue
		}
		buckets = append(buckets, Bucket{Date: on, Values: []decimal.Decimal{v}})
	}
	return buckets
}

// AutoBucket buckets a history at the granularity ChoosePeriod picks for the
// requested range.
func AutoBucket(h *date.History[decimal.Decimal], r date.Range) []Bucket {
	return BucketSeries(h, ChoosePeriod(r))
}
