package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoDatabaseResetTests exercises the administrative reset operation. It wipes
// every account the rest of the suite relies on, so it only runs when the
// harness was started with -reset, and the suite schedules it last.
func DoDatabaseResetTests(t *T) {
	t.Run("reset and settle", func(t *T) {
		if !t.env.AllowReset {
			t.SkipWithReason("destructive; run the harness with -reset to enable")
		}
		store := t.RequireStore()

		t.CleanDatabase()

		// after the settling period the store must be queryable again, and a
		// fresh bootstrap must be able to establish a new baseline
		_, err := store.NewestAccountID()
		require.NoError(t, err, "backing store not queryable after the settling period")

		fresh := db.InitializeBaseline(store)
		assert.True(t, fresh.Initialized(), "could not establish a baseline against the reset store")
	})
}
