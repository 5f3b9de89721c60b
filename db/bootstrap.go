// Package db gives the harness its direct view into the banking service's
// backing store. It has two jobs: establishing the session baseline of known
// account/customer identifiers before any test runs, and answering the few
// point queries that scenarios need for state inspection (such as finding an
// account the service just created).
//
// The SQL driver is chosen by the binary that imports this package; any
// database/sql driver that can reach the service's ACCOUNT table works.
package db

import (
	"database/sql"
	"errors"

	"github.com/parabank-qa/bank-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultSeedAccountCeiling is the highest account ID belonging to the
// service's pre-seeded demo data. Baseline queries only consider accounts
// above it.
const DefaultSeedAccountCeiling = 13400

// Store describes how to reach the backing store. Connections are not
// pooled: every operation opens a scoped connection and releases it before
// returning, success or failure.
type Store struct {
	Driver string
	DSN    string

	// SeedAccountCeiling overrides DefaultSeedAccountCeiling when positive.
	SeedAccountCeiling int

	Logger framework.Logger
}

// Configured reports whether a backing store was specified at all.
func (s Store) Configured() bool { return s.DSN != "" }

func (s Store) logger() framework.Logger {
	if s.Logger == nil {
		return framework.NullLogger()
	}
	return s.Logger
}

func (s Store) seedCeiling() int {
	if s.SeedAccountCeiling > 0 {
		return s.SeedAccountCeiling
	}
	return DefaultSeedAccountCeiling
}

// queryInts runs a SELECT producing a single integer column.
func queryInts(conn *sql.DB, query string, args ...interface{}) ([]int, error) {
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// NewestAccountID returns the highest account ID currently in the store.
// Scenarios use it to locate an account the service created as a side effect
// of an operation, such as the loan account minted by an approved loan.
func (s Store) NewestAccountID() (int, error) {
	conn, err := sql.Open(s.Driver, s.DSN)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var id sql.NullInt64
	if err := conn.QueryRow("SELECT MAX(ID) FROM ACCOUNT").Scan(&id); err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, errors.New("no accounts found in backing store")
	}
	return int(id.Int64), nil
}

// Baseline is the session-wide starting state established once before any
// test runs: the known non-seed account IDs in ascending order, the first of
// them as the base account, and the customer owning that account. It is
// constructed once and then shared read-only; tests must not modify it.
//
// A Baseline may legitimately be empty — see InitializeBaseline. Consumers
// that need the base identifiers must check Initialized (or the individual
// OptionalInt values) before dereferencing.
type Baseline struct {
	AccountIDs    []int
	BaseAccountID ldvalue.OptionalInt
	CustomerID    ldvalue.OptionalInt
}

// Initialized reports whether the bootstrap succeeded in resolving both base
// identifiers.
func (b Baseline) Initialized() bool {
	return b.BaseAccountID.IsDefined() && b.CustomerID.IsDefined()
}

// InitializeBaseline establishes the session baseline by querying the backing
// store. It never fails past its own boundary: if the store is unreachable,
// unconfigured, or holds no usable accounts, it logs the problem and returns
// an empty Baseline, leaving it to downstream consumers to fail loudly at the
// point they actually need the missing identifiers.
func InitializeBaseline(store Store) Baseline {
	log := store.logger()

	if !store.Configured() {
		log.Printf("no backing store configured; session baseline left empty")
		return Baseline{}
	}

	// one scoped connection serves both bootstrap statements
	conn, err := sql.Open(store.Driver, store.DSN)
	if err != nil {
		log.Printf("warning: could not open backing store, proceeding with empty baseline: %s", err)
		return Baseline{}
	}
	defer conn.Close()

	ids, err := queryInts(conn, "SELECT ID FROM ACCOUNT WHERE ID > ? ORDER BY ID", store.seedCeiling())
	if err != nil {
		log.Printf("warning: could not query account IDs, proceeding with empty baseline: %s", err)
		return Baseline{}
	}
	if len(ids) == 0 {
		log.Printf("warning: no accounts above ID %d, proceeding with empty baseline", store.seedCeiling())
		return Baseline{}
	}
	base := ids[0]

	owners, err := queryInts(conn, "SELECT CUSTOMER_ID FROM ACCOUNT WHERE ID = ?", base)
	if err != nil || len(owners) == 0 {
		log.Printf("warning: could not resolve customer for account %d, proceeding with empty baseline: %v", base, err)
		return Baseline{}
	}

	log.Printf("session baseline: %d accounts, base account %d owned by customer %d", len(ids), base, owners[0])
	return Baseline{
		AccountIDs:    ids,
		BaseAccountID: ldvalue.NewOptionalInt(base),
		CustomerID:    ldvalue.NewOptionalInt(owners[0]),
	}
}
