package networth

import "testing"

func TestLookupCurrency(t *testing.T) {
	c, ok := LookupCurrency("EUR")
	if !ok {
		t.Fatal("EUR not found")
	}
	if c.Code != "EUR" || c.Digits != 2 || c.Symbol == "" {
		t.Errorf("LookupCurrency(EUR) = %+v", c)
	}
	if _, ok := LookupCurrency("WAT"); ok {
		t.Error("LookupCurrency found a currency that does not exist")
	}
}

func TestValidCurrency(t *testing.T) {
	if err := ValidCurrency("USD"); err != nil {
		t.Errorf("ValidCurrency(USD) = %v", err)
	}
	if err := ValidCurrency("WAT"); err == nil {
		t.Error("ValidCurrency accepted an unknown code")
	}
	// a real ISO code outside the catalog can hold positions but is not a
	// reporting currency
	if _, ok := LookupCurrency("KWD"); !ok {
		t.Fatal("KWD not a known ISO code")
	}
	if err := ValidCurrency("KWD"); err == nil {
		t.Error("ValidCurrency accepted a code outside the reporting catalog")
	}
}

func TestCurrenciesCatalog(t *testing.T) {
	all := Currencies()
	if len(all) != len(catalogCodes) {
		t.Fatalf("catalog resolved %d of %d codes", len(all), len(catalogCodes))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatalf("catalog not sorted at %s", all[i].Code)
		}
	}
}
