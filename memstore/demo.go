package memstore

import (
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/shopspring/decimal"
)

// Demo seeds a store and a rate table with a small multi-currency ledger,
// enough to exercise every report from the command line without a database.
// It returns the owner ID the data belongs to.
func Demo() (*Store, *Rates, string) {
	s := New()
	r := NewRates()
	owner := "demo"
	start := date.Today().Add(-120)

	checking := s.CreateAccount(owner, networth.CashAccount, "Checking", "banking", "USD")
	savings := s.CreateAccount(owner, networth.CashAccount, "Savings", "banking", "EUR")
	broker := s.CreateAccount(owner, networth.StockAccount, "Broker", "investments", "EUR")
	loan := s.CreateAccount(owner, networth.CashAccount, "Car Loan", "loans", "USD")
	tbill := s.CreateAccount(owner, networth.BondAccount, "T-Bill", "investments", "USD")

	mustPost := func(id string, day date.Date, change float64, opts ...PostOption) {
		if _, err := s.Post(id, day, decimal.NewFromFloat(change), opts...); err != nil {
			panic(err)
		}
	}

	mustPost(checking.ID, start, 2500, WithComment("opening balance"))
	mustPost(checking.ID, start.Add(15), 1800, WithComment("salary"))
	mustPost(checking.ID, start.Add(20), -430.25, WithComment("rent"))
	mustPost(checking.ID, start.Add(45), 1800, WithComment("salary"))
	mustPost(checking.ID, start.Add(47), -89.99, WithComment("groceries"))

	mustPost(savings.ID, start.Add(3), 5000, WithComment("transfer in"))
	mustPost(savings.ID, start.Add(60), 500, WithComment("transfer in"))

	mustPost(broker.ID, start.Add(10), 12, WithTicker("VWCE", "etf"))
	mustPost(broker.ID, start.Add(40), 8, WithTicker("VWCE", "etf"))
	mustPost(broker.ID, start.Add(40), 5, WithTicker("ASML", "share"))

	mustPost(loan.ID, start, -9000, WithComment("car loan principal"))
	mustPost(loan.ID, start.Add(30), 310, WithComment("repayment"))
	mustPost(loan.ID, start.Add(60), 310, WithComment("repayment"))

	mustPost(tbill.ID, start.Add(5), 1000, WithBondTerms("US-13W-2026"))

	r.Set("EUR", "USD", start, decimal.NewFromFloat(1.08))
	r.Set("EUR", "USD", start.Add(60), decimal.NewFromFloat(1.10))
	r.Set("USD", "EUR", start, decimal.NewFromFloat(0.926))
	r.Set("USD", "EUR", start.Add(60), decimal.NewFromFloat(0.909))

	return s, r, owner
}
