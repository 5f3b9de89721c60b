package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestStore(t *testing.T, accounts map[int]int) Store {
	path := filepath.Join(t.TempDir(), "bank.db")
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec("CREATE TABLE ACCOUNT (ID INTEGER PRIMARY KEY, CUSTOMER_ID INTEGER)")
	require.NoError(t, err)
	for id, customerID := range accounts {
		_, err = conn.Exec("INSERT INTO ACCOUNT (ID, CUSTOMER_ID) VALUES (?, ?)", id, customerID)
		require.NoError(t, err)
	}

	return Store{Driver: "sqlite3", DSN: path}
}

func TestInitializeBaselineResolvesIdentifiers(t *testing.T) {
	store := makeTestStore(t, map[int]int{
		12000: 11100, // seed data, below the ceiling
		13566: 12323,
		13455: 12212,
	})

	b := InitializeBaseline(store)

	require.True(t, b.Initialized())
	assert.Equal(t, []int{13455, 13566}, b.AccountIDs)
	assert.Equal(t, 13455, b.BaseAccountID.IntValue())
	assert.Equal(t, 12212, b.CustomerID.IntValue())
}

func TestInitializeBaselineExcludesAllSeedAccounts(t *testing.T) {
	store := makeTestStore(t, map[int]int{12000: 11100, 13100: 11200})

	b := InitializeBaseline(store)

	assert.False(t, b.Initialized())
	assert.Empty(t, b.AccountIDs)
}

func TestInitializeBaselineHonorsCustomCeiling(t *testing.T) {
	store := makeTestStore(t, map[int]int{50: 1, 200: 2})
	store.SeedAccountCeiling = 100

	b := InitializeBaseline(store)

	require.True(t, b.Initialized())
	assert.Equal(t, []int{200}, b.AccountIDs)
	assert.Equal(t, 2, b.CustomerID.IntValue())
}

func TestInitializeBaselineDegradesWhenStoreUnreachable(t *testing.T) {
	store := Store{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "missing", "nope.db")}

	b := InitializeBaseline(store)

	assert.False(t, b.Initialized())
	assert.Empty(t, b.AccountIDs)
	assert.False(t, b.BaseAccountID.IsDefined())
	assert.False(t, b.CustomerID.IsDefined())
}

func TestInitializeBaselineDegradesWhenUnconfigured(t *testing.T) {
	b := InitializeBaseline(Store{})
	assert.False(t, b.Initialized())
}

func TestNewestAccountID(t *testing.T) {
	store := makeTestStore(t, map[int]int{13455: 12212, 13900: 12212, 13566: 12323})

	id, err := store.NewestAccountID()
	require.NoError(t, err)
	assert.Equal(t, 13900, id)
}

func TestNewestAccountIDWithEmptyTable(t *testing.T) {
	store := makeTestStore(t, nil)

	_, err := store.NewestAccountID()
	assert.Error(t, err)
}
