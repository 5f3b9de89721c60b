package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/client"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// an account ID that cannot exist in the service's ID range
const invalidSourceAccountID = 1515512

func DoNegativePathTests(t *T) {
	t.Run("open account with invalid source", func(t *T) {
		baseAccountID, customerID := t.RequireBaseline()
		before := t.RequireInitialBalance(baseAccountID)

		creation, err := t.Client().CreateAccount(customerID, client.AccountTypeSavings, invalidSourceAccountID)
		require.NoError(t, err)
		require.False(t, creation.Created(),
			"account creation succeeded despite invalid source account %d", invalidSourceAccountID)

		assert.Contains(t, creation.Rejection.Code, "400",
			"unexpected rejection code: %s", creation.Rejection.Code)
		assert.Contains(t, creation.Rejection.Details, "Could not create new account",
			"unexpected rejection details: %s", creation.Rejection.Details)
		t.Debug("creation rejected as expected: %s (%s)", creation.Rejection.Code, creation.Rejection.Details)

		// the failed attempt must not have partially mutated the base account
		t.RequireBalanceDelta(baseAccountID, before, decimal.Zero)
	})
}
