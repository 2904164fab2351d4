// Package cmd implements the CLI application to query net worth reports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/openfin/networth"
	"github.com/openfin/networth/memstore"
	"github.com/openfin/networth/pgstore"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand the binary registers.
var Commands = []subcommands.Command{
	&overviewCmd{},
	&assetsCmd{},
	&liabilitiesCmd{},
	&seriesCmd{},
	&holdingsCmd{},
	&incomeCmd{sign: networth.Positive},
	&incomeCmd{sign: networth.Negative},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var (
	ownerID  = flag.String("owner", os.Getenv("NETWORTH_OWNER"), "Owner to report on")
	currency = flag.String("currency", envOr("NETWORTH_CURRENCY", "USD"), "Reporting currency (ISO 4217 code)")
	verbose  = flag.Bool("v", false, "Log rate fallbacks and skipped accounts")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logger() zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	log := zerolog.New(w).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.ErrorLevel)
	}
	return log
}

// reporter wires stores and providers from the environment. With a
// DATABASE_URL the ledger comes from postgres and rates from the public
// rate feed; without one, a seeded in-memory demo ledger is served instead.
func reporter() (*networth.Reporter, string, error) {
	// a missing .env file is fine, the environment may be set by the shell
	godotenv.Load()

	log := logger()
	owner := *ownerID

	var ledger networth.LedgerReader
	var rates networth.RateProvider
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		store, err := pgstore.Open(dsn)
		if err != nil {
			return nil, "", err
		}
		ledger, rates = store, networth.NewHTTPRates()
		if base := os.Getenv("FX_API_URL"); base != "" {
			rates = networth.NewHTTPRatesAt(base, nil)
		}
		if owner == "" {
			return nil, "", fmt.Errorf("no owner: set -owner or NETWORTH_OWNER")
		}
	} else {
		log.Info().Msg("no DATABASE_URL, serving the built-in demo ledger")
		var demoOwner string
		ledger, rates, demoOwner = memstore.Demo()
		if owner == "" {
			owner = demoOwner
		}
	}

	rep := networth.NewReporter(ledger, rates, networth.WithLogger(log))
	return rep, owner, nil
}

// fail prints an error the way every subcommand reports one.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
