package networth

import (
	"fmt"
	"slices"

	"github.com/Rhymond/go-money"
)

// Currency describes one known currency of the catalog.
type Currency struct {
	Code   string // ISO 4217 code, e.g. "EUR"
	Symbol string // display symbol, e.g. "€"
	Digits int    // number of minor-unit digits
}

// catalogCodes is the set of currencies the reports can be requested in.
// Positions may be held in any currency go-money knows; this list only
// bounds the reporting side.
var catalogCodes = []string{
	"AUD", "BRL", "CAD", "CHF", "CNY", "CZK", "DKK", "EUR", "GBP", "HKD",
	"HUF", "IDR", "ILS", "INR", "ISK", "JPY", "KRW", "MXN", "MYR", "NOK",
	"NZD", "PHP", "PLN", "RON", "SEK", "SGD", "THB", "TRY", "USD", "ZAR",
}

// LookupCurrency returns the ISO 4217 description of a code, catalog member
// or not. Positions use it; validating a reporting currency is ValidCurrency.
func LookupCurrency(code string) (Currency, bool) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return Currency{}, false
	}
	return Currency{Code: cur.Code, Symbol: cur.Grapheme, Digits: cur.Fraction}, true
}

// ValidCurrency returns a descriptive error when code is not part of the
// reporting catalog. Reports validate their currency argument with it
// before doing any I/O.
func ValidCurrency(code string) error {
	if !slices.Contains(catalogCodes, code) {
		return fmt.Errorf("unknown reporting currency %q", code)
	}
	return nil
}

// Currencies enumerates the reporting currency catalog, sorted by code.
func Currencies() []Currency {
	all := make([]Currency, 0, len(catalogCodes))
	for _, code := range catalogCodes {
		if c, ok := LookupCurrency(code); ok {
			all = append(all, c)
		}
	}
	return all
}
