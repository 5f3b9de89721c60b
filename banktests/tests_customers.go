package banktests

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoCustomerTests(t *T) {
	t.Run("customer details lookup", func(t *T) {
		_, customerID := t.RequireBaseline()

		customer, err := t.Client().CustomerDetails(customerID)
		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		t.Debug("customer %d: %s %s, %s, %s %s %s",
			customer.ID, customer.FirstName, customer.LastName,
			customer.Address.Street, customer.Address.City, customer.Address.State, customer.Address.ZipCode)
	})

	t.Run("deposit updates balance", func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		depositAmount := decimal.NewFromInt(5000)
		before := t.RequireInitialBalance(baseAccountID)

		_, err := t.Client().Deposit(baseAccountID, depositAmount)
		require.NoError(t, err)

		t.RequireBalanceDelta(baseAccountID, before, depositAmount)
	})

	t.Run("withdrawal updates balance", func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		withdrawAmount := decimal.NewFromInt(200)
		before := t.RequireInitialBalance(baseAccountID)

		_, err := t.Client().Withdraw(baseAccountID, withdrawAmount)
		require.NoError(t, err)

		t.RequireBalanceDelta(baseAccountID, before, withdrawAmount.Neg())
	})

	t.Run("deposit then withdrawal", func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		depositAmount := decimal.NewFromInt(5000)
		withdrawAmount := decimal.NewFromInt(200)
		before := t.RequireInitialBalance(baseAccountID)

		_, err := t.Client().Deposit(baseAccountID, depositAmount)
		require.NoError(t, err)
		_, err = t.Client().Withdraw(baseAccountID, withdrawAmount)
		require.NoError(t, err)

		t.RequireBalanceDelta(baseAccountID, before, depositAmount.Sub(withdrawAmount))
	})
}
