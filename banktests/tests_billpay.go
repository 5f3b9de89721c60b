package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/client"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPayee() client.Payee {
	return client.Payee{
		Name:          gofakeit.Name(),
		Street:        gofakeit.Street(),
		City:          gofakeit.City(),
		State:         gofakeit.State(),
		ZipCode:       gofakeit.Zip(),
		PhoneNumber:   gofakeit.Phone(),
		AccountNumber: gofakeit.Number(15000, 30000),
	}
}

func DoBillPayTests(t *T) {
	t.Run("bill payment echoes payee and reduces balance", func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		billAmount := decimal.NewFromInt(350)
		payee := randomPayee()
		before := t.RequireInitialBalance(baseAccountID)

		t.Debug("paying %s from account %d to %s", billAmount, baseAccountID, payee.Name)
		approval, err := t.Client().BillPay(baseAccountID, billAmount, payee)
		require.NoError(t, err)

		assert.Equal(t, payee.Name, approval.PayeeName, "approval record named the wrong payee")
		t.RequireBalanceDelta(baseAccountID, before, billAmount.Neg())
	})
}
