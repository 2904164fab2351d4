package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
)

// assetsCmd holds the flags for the 'assets' subcommand.
type assetsCmd struct {
	date       string
	byCategory bool
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list positively valued positions" }
func (*assetsCmd) Usage() string {
	return `nw assets [-d <date>] [-by-category]

  Lists every positively valued account at a date, or category totals
  with -by-category.

`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to value positions at (YYYY-MM-DD).")
	f.BoolVar(&c.byCategory, "by-category", false, "Group positions by category.")
}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return listPositions(ctx, "Assets", c.date, c.byCategory, func(ctx context.Context, rep *networth.Reporter, owner string, on date.Date) ([]networth.Position, error) {
		if c.byCategory {
			return rep.AssetsPerCategory(ctx, owner, *currency, on)
		}
		return rep.AssetsPerAccount(ctx, owner, *currency, on)
	})
}

// listPositions runs the shared flow of the assets and liabilities commands.
func listPositions(ctx context.Context, title, day string, byCategory bool, query func(context.Context, *networth.Reporter, string, date.Date) ([]networth.Position, error)) subcommands.ExitStatus {
	on, err := date.Parse(day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rep, owner, err := reporter()
	if err != nil {
		return fail(err)
	}
	positions, err := query(ctx, rep, owner, on)
	if err != nil {
		return fail(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s on %s\n\n", title, on)
	if len(positions) == 0 {
		fmt.Fprintf(&b, "none\n")
	}
	label := "Account"
	if byCategory {
		label = "Category"
	}
	if len(positions) > 0 {
		fmt.Fprintf(&b, "| %s | Value |\n|:---|---:|\n", label)
		for _, p := range positions {
			fmt.Fprintf(&b, "| %s | %s |\n", p.Label, p.Amount.Round())
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
