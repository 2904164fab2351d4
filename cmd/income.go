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
	"github.com/shopspring/decimal"
)

// incomeCmd serves both the 'income' and 'spending' subcommands, which differ
// only in the sign of the cash deltas they sum.
type incomeCmd struct {
	sign networth.Sign
	from string
	to   string
}

func (c *incomeCmd) Name() string {
	if c.sign == networth.Negative {
		return "spending"
	}
	return "income"
}

func (c *incomeCmd) Synopsis() string {
	if c.sign == networth.Negative {
		return "sum negative cash movements over a date range"
	}
	return "sum positive cash movements over a date range"
}

func (c *incomeCmd) Usage() string {
	word := "positive"
	if c.sign == networth.Negative {
		word = "negative"
	}
	return fmt.Sprintf(`nw %s -from <date> [-to <date>]

  Sums the %s cash deltas posted inside the range, day by day, bucketed
  at a granularity fitting the span.

`, c.Name(), word)
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Range start (YYYY-MM-DD), required.")
	f.StringVar(&c.to, "to", date.Today().String(), "Range end (YYYY-MM-DD).")
}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	var series *date.History[decimal.Decimal]
	if c.sign == networth.Negative {
		series, err = rep.Spending(ctx, owner, *currency, r)
	} else {
		series, err = rep.Income(ctx, owner, *currency, r)
	}
	if err != nil {
		return fail(err)
	}

	title := "Income"
	if c.sign == networth.Negative {
		title = "Spending"
	}
	printMarkdown(renderer.FlowsMarkdown(title, *currency, networth.AutoBucket(series, r)))
	return subcommands.ExitSuccess
}
