package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/framework"
)

// RunTestSuite executes every banking verification scenario against the
// given environment, honoring the filter, and returns the accumulated
// results.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("accounts", DoAccountTests)
		t.Run("customers", DoCustomerTests)
		t.Run("bill pay", DoBillPayTests)
		t.Run("loans", DoLoanTests)
		t.Run("positions", DoPositionTests)
		t.Run("negative paths", DoNegativePathTests)
		t.Run("registration", DoRegistrationTests)
		t.Run("database reset", DoDatabaseResetTests)
	})
}
