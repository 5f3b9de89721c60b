package banktests

import (
	"time"

	"github.com/parabank-qa/bank-contract-tests/browser"
	"github.com/parabank-qa/bank-contract-tests/client"
	"github.com/parabank-qa/bank-contract-tests/db"
	"github.com/parabank-qa/bank-contract-tests/framework"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DefaultSettleDelay is how long the harness waits after a database reset
// before treating the service's state as authoritative again, when no
// explicit delay was configured.
const DefaultSettleDelay = time.Second * 10

// Environment holds the collaborators shared by every scenario: the service
// client, the session baseline established at startup, the database access
// configuration, and run options. It is constructed once and treated as
// read-only for the rest of the run.
type Environment struct {
	Client      *client.ServiceClient
	Baseline    db.Baseline
	Store       db.Store
	Browser     browser.Driver // nil when no UI automation layer is attached
	SettleDelay time.Duration
	AllowReset  bool
}

// T represents a test or subtest in the banking verification suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as captured debug logging provided by the lower-level framework package.
//
// To make test assertions, use the assert and require packages, passing the
// *T as if it were a *testing.T. The Require* methods below build the common
// capture-before/verify-after fixture steps on top of that, failing the test
// immediately when a step they depend on cannot be completed.
type T struct {
	context *framework.Context
	env     Environment
	client  *client.ServiceClient
}

func newTestScope(c *framework.Context, env Environment) *T {
	return &T{
		context: c,
		env:     env,
		client:  env.Client.WithLogger(c.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest with a fresh scope; no fixture state leaks between
// subtests.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// SkipWithReason terminates the current test immediately without failing it.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug records debug output for the test. The output is buffered and shown
// by the console logger according to its configuration.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Client returns the service client scoped to this test's debug log.
func (t *T) Client() *client.ServiceClient {
	return t.client
}

// Baseline returns the shared session baseline. It may be uninitialized; use
// RequireBaseline when the test cannot proceed without it.
func (t *T) Baseline() db.Baseline {
	return t.env.Baseline
}

// RequireBaseline returns the base account and its owning customer, failing
// the test immediately if the session bootstrap degraded to an empty
// baseline. This is the loud-failure point the bootstrap itself deliberately
// does not have.
func (t *T) RequireBaseline() (baseAccountID, customerID int) {
	b := t.env.Baseline
	if !b.Initialized() {
		t.Errorf("session baseline not initialized: the bootstrap query failed or no database was configured")
		t.FailNow()
	}
	return b.BaseAccountID.IntValue(), b.CustomerID.IntValue()
}

// RequireStore returns the database access configuration, failing the test
// if the harness was started without one.
func (t *T) RequireStore() db.Store {
	if !t.env.Store.Configured() {
		t.Errorf("no backing store configured: this scenario needs the database channel")
		t.FailNow()
	}
	return t.env.Store
}

// RequireInitialBalance captures the balance of an account before the
// operation under test. A failed capture invalidates any later delta
// assertion, so errors fail the test immediately rather than being swallowed.
func (t *T) RequireInitialBalance(accountID int) decimal.Decimal {
	balance, err := t.client.AccountBalance(accountID)
	require.NoError(t, err, "could not capture initial balance for account %d", accountID)
	t.Debug("initial balance for account %d: %s", accountID, balance)
	return balance
}

// RequireBalance reads the current balance of an account, failing the test
// on any client error.
func (t *T) RequireBalance(accountID int) decimal.Decimal {
	balance, err := t.client.AccountBalance(accountID)
	require.NoError(t, err, "could not read balance for account %d", accountID)
	return balance
}

// RequireBalanceDelta asserts that the account's balance now equals exactly
// before+delta, and returns the freshly read balance. Pass decimal.Zero as
// the delta to assert that an operation had no effect.
func (t *T) RequireBalanceDelta(accountID int, before, delta decimal.Decimal) decimal.Decimal {
	after := t.RequireBalance(accountID)
	expected := before.Add(delta)
	if !after.Equal(expected) {
		t.Errorf("balance for account %d was %s, expected %s (started at %s, expected change of %s)",
			accountID, after, expected, before, delta)
		t.FailNow()
	}
	t.Debug("balance for account %d moved from %s to %s as expected", accountID, before, after)
	return after
}

// CleanDatabase resets the service's backing store and then waits out the
// configured settling period before returning, so callers can immediately
// trust subsequent state queries.
func (t *T) CleanDatabase() {
	_, err := t.client.CleanDatabase()
	require.NoError(t, err, "database reset request failed")

	delay := t.env.SettleDelay
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	t.Debug("waiting %s for the service to settle after database reset", delay)
	time.Sleep(delay)
}
