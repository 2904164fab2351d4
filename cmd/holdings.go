package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfin/networth/date"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list stock positions per ticker" }
func (*holdingsCmd) Usage() string {
	return `nw holdings [-d <date>]

  Lists every ticker position across stock accounts with its quantity and
  its value in the reporting currency.

`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date to value holdings at (YYYY-MM-DD).")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rep, owner, err := reporter()
	if err != nil {
		return fail(err)
	}
	holdings, err := rep.Holdings(ctx, owner, *currency, on)
	if err != nil {
		return fail(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", on)
	if len(holdings) == 0 {
		fmt.Fprintln(&b, "none")
	} else {
		fmt.Fprintf(&b, "| Account | Ticker | Type | Quantity | Value |\n|:---|:---|:---|---:|---:|\n")
		for _, h := range holdings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", h.Account, h.Ticker, h.SubType, h.Quantity, h.Value.Round())
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
