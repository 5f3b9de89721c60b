package banktests

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoLoanTests(t *T) {
	cases := []struct {
		name           string
		amount         int64
		downPayment    int64
		expectApproval bool
	}{
		{"small loan is approved", 1000, 100, true},
		{"larger loan is approved", 5000, 500, true},
		{"oversized loan is rejected", 20000000, 500000, false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *T) {
			baseAccountID, customerID := t.RequireBaseline()
			amount := decimal.NewFromInt(c.amount)
			downPayment := decimal.NewFromInt(c.downPayment)
			before := t.RequireInitialBalance(baseAccountID)

			approved, err := t.Client().RequestLoan(customerID, amount, downPayment, baseAccountID)
			require.NoError(t, err)
			require.Equal(t, c.expectApproval, approved, "loan approval outcome did not match")

			if !approved {
				// a declined loan must leave the funding account untouched
				t.RequireBalanceDelta(baseAccountID, before, decimal.Zero)
				return
			}

			// The service does not return the new loan account's ID, so find it
			// through the database channel: it is the newest account.
			loanAccountID, err := t.RequireStore().NewestAccountID()
			require.NoError(t, err)
			t.Debug("loan account created with ID %d", loanAccountID)

			record, err := t.Client().AccountByID(loanAccountID)
			require.NoError(t, err)
			assert.Equal(t, "LOAN", record.Type)
			assert.True(t, record.Balance.Equal(amount),
				"loan account balance was %s, expected %s", record.Balance, amount)

			// only the down payment leaves the funding account
			t.RequireBalanceDelta(baseAccountID, before, downPayment.Neg())
		})
	}
}
