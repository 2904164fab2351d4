package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfin/networth"
	"github.com/openfin/networth/date"
	"github.com/openfin/networth/renderer"
)

// seriesCmd holds the flags for the 'series' subcommand.
type seriesCmd struct {
	from     string
	to       string
	category string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display net worth over a date range" }
func (*seriesCmd) Usage() string {
	return `nw series -from <date> [-to <date>] [-category <name>]

  Values the combined position for every day of the range and displays it
  bucketed at a granularity fitting the span: daily up to a month, weekly
  up to a quarter, monthly up to a year, yearly beyond.

Usage Examples:
# This year so far.
$ nw series -from 2025-01-01

# Only the investment accounts.
$ nw series -from 2025-01-01 -category investments

`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Range start (YYYY-MM-DD), required.")
	f.StringVar(&c.to, "to", date.Today().String(), "Range end (YYYY-MM-DD).")
	f.StringVar(&c.category, "category", "", "Restrict to accounts of one category.")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required")
		return subcommands.ExitUsageError
	}
	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
		return subcommands.ExitUsageError
	}

	rep, owner, err := reporter()
	if err != nil {
		return fail(err)
	}
	r := date.Range{From: from, To: to}
	series, err := rep.Series(ctx, owner, *currency, r, c.category)
	if err != nil {
		return fail(err)
	}

	title := "Net Worth"
	if c.category != "" {
		title = fmt.Sprintf("Net Worth, %s", c.category)
	}
	printMarkdown(renderer.SeriesMarkdown(title, *currency, networth.AutoBucket(series, r)))
	return subcommands.ExitSuccess
}
