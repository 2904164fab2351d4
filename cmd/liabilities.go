package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
)

// liabilitiesCmd holds the flags for the 'liabilities' subcommand.
type liabilitiesCmd struct {
	date       string
	byCategory bool
}

func (*liabilitiesCmd) Name() string     { return "liabilities" }
func (*liabilitiesCmd) Synopsis() string { return "list negatively valued positions" }
func (*liabilitiesCmd) Usage() string {
	return `nw liabilities [-d <date>] [-by-category]

  Lists every negatively valued account at a date, or category totals
  with -by-category.

`
}

func (c *liabilitiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to value positions at (YYYY-MM-DD).")
	f.BoolVar(&c.byCategory, "by-category", false, "Group positions by category.")
}

func (c *liabilitiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return listPositions(ctx, "Liabilities", c.date, c.byCategory, func(ctx context.Context, rep *networth.Reporter, owner string, on date.Date) ([]networth.Position, error) {
		if c.byCategory {
			return rep.LiabilitiesPerCategory(ctx, owner, *currency, on)
		}
		return rep.LiabilitiesPerAccount(ctx, owner, *currency, on)
	})
}
