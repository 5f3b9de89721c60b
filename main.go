package main

import (
	"fmt"
	"log"
	"os"

	// SQL drivers available for the bootstrap channel; -db-driver picks one.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/parabank-qa/bank-contract-tests/banktests"
	"github.com/parabank-qa/bank-contract-tests/client"
	"github.com/parabank-qa/bank-contract-tests/db"
	"github.com/parabank-qa/bank-contract-tests/framework"
	"github.com/parabank-qa/bank-contract-tests/loadgen"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	serviceClient := client.New(params.serviceURL, mainDebugLogger)

	// Bootstrap warnings always go to the console: a degraded baseline is not
	// fatal here, but the eventual test failures should be explicable.
	store := db.Store{
		Driver: params.dbDriver,
		DSN:    params.dbDSN,
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}
	baseline := db.InitializeBaseline(store)

	if params.loadWorkers > 0 {
		runLoadScenarios(serviceClient, baseline, params, mainDebugLogger)
		return
	}

	env := banktests.Environment{
		Client:      serviceClient,
		Baseline:    baseline,
		Store:       store,
		SettleDelay: params.settleDelay,
		AllowReset:  params.allowReset,
	}

	fmt.Println()
	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := banktests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Println()
	if results.OK() {
		color.New(color.FgGreen, color.Bold).Printf("All tests passed (%d total)\n", len(results.Tests))
		return
	}
	failedColor.Printf("%d of %d tests failed:\n", len(results.Failures), len(results.Tests))
	for _, f := range results.FailureErrors() {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println()
	fmt.Println("To rerun only the failed tests:")
	fmt.Printf("  %s\n", rerunCommand(params, results.Failures))
	os.Exit(1)
}

func runLoadScenarios(
	serviceClient *client.ServiceClient,
	baseline db.Baseline,
	params commandParams,
	logger framework.Logger,
) {
	fmt.Printf("Running load scenarios with %d workers for %s\n", params.loadWorkers, params.loadDuration)

	driver := &loadgen.Driver{
		Client:   serviceClient,
		Baseline: baseline,
		Workers:  params.loadWorkers,
		Duration: params.loadDuration,
		Logger:   logger,
	}
	counts, err := driver.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Completed %d requests (%d failed)\n", counts.Requests, counts.Failures)
	for op, n := range counts.ByOperation {
		fmt.Printf("  %-16s %d\n", op, n)
	}
	if counts.Failures > 0 {
		os.Exit(1)
	}
}
