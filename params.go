package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/parabank-qa/bank-contract-tests/banktests"
	"github.com/parabank-qa/bank-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL   string
	dbDriver     string
	dbDSN        string
	settleDelay  time.Duration
	filters      framework.RegexFilters
	allowReset   bool
	loadWorkers  int
	loadDuration time.Duration
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the bank service under test")
	fs.StringVar(&c.dbDSN, "db", "", "DSN of the service's backing store (empty disables the database channel)")
	fs.StringVar(&c.dbDriver, "db-driver", "mysql", "database driver for the backing store (mysql or sqlite3)")
	fs.DurationVar(&c.settleDelay, "settle", banktests.DefaultSettleDelay, "grace period after a database reset")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.allowReset, "reset", false, "allow the destructive database-reset scenario to run")
	fs.IntVar(&c.loadWorkers, "load", 0, "run the load scenario driver with this many workers instead of the verification suite")
	fs.DurationVar(&c.loadDuration, "load-duration", time.Second*30, "how long the load scenario driver runs")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that reruns only the given failed tests.
func rerunCommand(params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0], "-url", params.serviceURL)
	if params.dbDSN != "" {
		b.add("-db", params.dbDSN, "-db-driver", params.dbDriver)
	}
	if params.allowReset {
		b.add("-reset")
	}
	b.add("-debug")
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}
