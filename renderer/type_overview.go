package renderer

import (
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
)

// Overview is a struct to represent the overview data in json.
// Amounts keep the exact decimal types (Money) so that they already carry
// their display renderers (SignedString etc.).
type Overview struct {
	// Owner of the reported wealth.
	Owner string `json:"owner"`
	// Date the figures are valued at.
	Date date.Date `json:"date"`
	// Currency every amount is reported in.
	Currency string `json:"currency"`
	// NetWorth is the signed total across all accounts.
	NetWorth networth.Money `json:"netWorth"`
	// Assets lists positively-valued categories.
	Assets []OverviewLine `json:"assets"`
	// Liabilities lists negatively-valued categories.
	Liabilities []OverviewLine `json:"liabilities"`
}

// OverviewLine is one category row of the overview.
type OverviewLine struct {
	Label  string         `json:"label"`
	Amount networth.Money `json:"amount"`
}

// NewOverview creates the renderable view of an overview report.
func NewOverview(o *networth.Overview) *Overview {
	view := &Overview{
		Owner:    o.OwnerID,
		Date:     o.Date,
		Currency: o.Currency,
		NetWorth: o.NetWorth.Round(),
	}
	for _, p := range o.Assets {
		view.Assets = append(view.Assets, OverviewLine{Label: p.Label, Amount: p.Amount.Round()})
	}
	for _, p := range o.Liabilities {
		view.Liabilities = append(view.Liabilities, OverviewLine{Label: p.Label, Amount: p.Amount.Round()})
	}
	return view
}
