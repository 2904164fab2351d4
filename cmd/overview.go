package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfin/networth/date"
	"github.com/openfin/networth/renderer"
)

// overviewCmd holds the flags for the 'overview' subcommand.
type overviewCmd struct {
	date    string
	publish bool
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display net worth with assets and liabilities" }
func (*overviewCmd) Usage() string {
	return `nw overview [-d <date>]

  Displays net worth at a date, with assets and liabilities broken down
  by category. Future dates are reported as of today.

Usage Examples:
# Today's overview in the default currency.
$ nw overview

# End of last year, in euros.
$ nw -currency EUR overview -d 2024-12-31

`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the overview (YYYY-MM-DD).")
	f.BoolVar(&c.publish, "publish", false, "Publish the snapshot to the event feed (KAFKA_BROKERS).")
}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	rep, owner, err := reporter()
	if err != nil {
		return fail(err)
	}
	report, err := rep.Overview(ctx, owner, *currency, on)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RenderOverview(renderer.NewOverview(report)))

	if c.publish {
		if err := publishSnapshot(ctx, owner, report.Date, report.NetWorth); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}
