package networth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// frankfurterURL serves ECB reference rates keyed by date:
//
//	GET /v1/2025-06-10?base=EUR&symbols=USD
//	{"amount":1.0,"base":"EUR","date":"2025-06-10","rates":{"USD":1.04}}
//
// Weekends and holidays resolve to the closest preceding business day.
const frankfurterURL = "https://api.frankfurter.dev/v1"

// HTTPRates looks historical exchange rates up over HTTP. Responses are
// cached on disk for a day, so sweeping a range re-fetches each date at
// most once per process lifetime.
type HTTPRates struct {
	base   string
	client *http.Client
}

// NewHTTPRates returns a provider backed by the public frankfurter API.
func NewHTTPRates() *HTTPRates {
	return &HTTPRates{base: frankfurterURL, client: daily()}
}

// NewHTTPRatesAt targets a specific endpoint, for tests and self-hosted
// mirrors. A nil client falls back to the daily-cached default.
func NewHTTPRatesAt(base string, client *http.Client) *HTTPRates {
	if client == nil {
		client = daily()
	}
	return &HTTPRates{base: base, client: client}
}

// Rate returns the from/to exchange rate effective on the given date.
// An unknown pair or a date before the feed's history reports found=false
// with no error.
func (p *HTTPRates) Rate(ctx context.Context, from, to string, on date.Date) (decimal.Decimal, bool, error) {
	if from == to {
		return decimal.NewFromInt(1), true, nil
	}
	addr := fmt.Sprintf("%s/%s?base=%s&symbols=%s", p.base, on, url.QueryEscape(from), url.QueryEscape(to))

	var jobj any
	found, err := jwget(ctx, p.client, addr, &jobj)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("fetching %s/%s rate: %w", from, to, err)
	}
	if !found {
		return decimal.Zero, false, nil
	}

	path := fmt.Sprintf("$.rates.%s", to)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// the feed answered but does not quote this pair
		return decimal.Zero, false, nil
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, false, fmt.Errorf("parsing %s/%s rate: %q is not a number: %v", from, to, path, jval)
	}
	return decimal.NewFromFloat(val), true, nil
}

var _ RateProvider = (*HTTPRates)(nil)
