package banktests

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func DoPositionTests(t *T) {
	t.Run("buying a position reduces the funding account", func(t *T) {
		baseAccountID, customerID := t.RequireBaseline()
		const shares = 225
		pricePerShare := decimal.NewFromInt(5)
		before := t.RequireInitialBalance(baseAccountID)

		purchase, err := t.Client().BuyPosition(customerID, baseAccountID, "Apple", "AAPL", shares, pricePerShare)
		require.NoError(t, err)
		require.False(t, purchase.Data.IsNull(), "no purchase record returned")
		t.Debug("purchase record: %s", purchase.Data.JSONString())

		cost := pricePerShare.Mul(decimal.NewFromInt(shares))
		t.RequireBalanceDelta(baseAccountID, before, cost.Neg())
	})
}
