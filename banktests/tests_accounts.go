package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/client"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opening an account moves a fixed allocation from the funding account into
// the new one.
const newAccountAllocation = 100

func DoAccountTests(t *T) {
	t.Run("open new account", func(t *T) {
		baseAccountID, customerID := t.RequireBaseline()
		before := t.RequireInitialBalance(baseAccountID)

		creation, err := t.Client().CreateAccount(customerID, client.AccountTypeSavings, baseAccountID)
		require.NoError(t, err)
		require.True(t, creation.Created(), "account creation was rejected: %+v", creation.Rejection)
		require.NotZero(t, creation.AccountID, "no account ID returned for the new account")
		t.Debug("new account created with ID %d", creation.AccountID)

		t.RequireBalanceDelta(baseAccountID, before, decimal.NewFromInt(-newAccountAllocation))

		record, err := t.Client().AccountByID(creation.AccountID)
		require.NoError(t, err)
		assert.Equal(t, "SAVINGS", record.Type)
		assert.True(t, record.Balance.Equal(decimal.NewFromInt(newAccountAllocation)),
			"new account balance was %s, expected %d", record.Balance, newAccountAllocation)
	})

	t.Run("repeated balance reads are stable", func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		first := t.RequireBalance(baseAccountID)
		second := t.RequireBalance(baseAccountID)
		assert.True(t, first.Equal(second),
			"balance changed between reads with no intervening operation: %s then %s", first, second)
	})
}
