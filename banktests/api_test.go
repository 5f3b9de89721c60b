package banktests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/parabank-qa/bank-contract-tests/client"
	"github.com/parabank-qa/bank-contract-tests/db"
	"github.com/parabank-qa/bank-contract-tests/framework"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	testAccountID  = 13455
	testCustomerID = 12212
)

// fakeBank is just enough of the service's balance/deposit/withdraw surface
// to exercise the fixture logic.
type fakeBank struct {
	lock     sync.Mutex
	balances map[int]decimal.Decimal
}

func newFakeBank(openingBalance int64) *fakeBank {
	return &fakeBank{
		balances: map[int]decimal.Decimal{testAccountID: decimal.NewFromInt(openingBalance)},
	}
}

func (f *fakeBank) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	defer f.lock.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/accounts/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/accounts/"))
		balance, ok := f.balances[id]
		if !ok {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": id, "customerId": testCustomerID, "type": "CHECKING", "balance": balance,
		})
	case r.URL.Path == "/deposit":
		f.adjust(w, r, false)
	case r.URL.Path == "/withdraw":
		f.adjust(w, r, true)
	default:
		w.WriteHeader(404)
	}
}

func (f *fakeBank) adjust(w http.ResponseWriter, r *http.Request, negate bool) {
	id, _ := strconv.Atoi(r.URL.Query().Get("accountId"))
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		w.WriteHeader(400)
		return
	}
	if negate {
		amount = amount.Neg()
	}
	f.balances[id] = f.balances[id].Add(amount)
	_, _ = w.Write([]byte("ok"))
}

func makeTestEnvironment(t *testing.T, bank *fakeBank) Environment {
	server := httptest.NewServer(bank)
	t.Cleanup(server.Close)
	return Environment{
		Client: client.New(server.URL, nil),
		Baseline: db.Baseline{
			AccountIDs:    []int{testAccountID},
			BaseAccountID: ldvalue.NewOptionalInt(testAccountID),
			CustomerID:    ldvalue.NewOptionalInt(testCustomerID),
		},
	}
}

func runScenario(env Environment, action func(*T)) framework.Results {
	return framework.Run(nil, nil, func(c *framework.Context) {
		newTestScope(c, env).Run("scenario", action)
	})
}

func TestDeltaFixtureAcceptsExactChange(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(1000))

	results := runScenario(env, func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		before := t.RequireInitialBalance(baseAccountID)
		_, err := t.Client().Deposit(baseAccountID, decimal.NewFromInt(50))
		require.NoError(t, err)
		t.RequireBalanceDelta(baseAccountID, before, decimal.NewFromInt(50))
	})

	assert.True(t, results.OK(), "scenario failed: %+v", results.Failures)
}

func TestDeltaFixtureRejectsWrongChange(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(1000))

	results := runScenario(env, func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		before := t.RequireInitialBalance(baseAccountID)
		_, err := t.Client().Deposit(baseAccountID, decimal.NewFromInt(50))
		require.NoError(t, err)
		t.RequireBalanceDelta(baseAccountID, before, decimal.NewFromInt(60))
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "expected 1060")
}

func TestDepositThenWithdrawalDelta(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(100))

	results := runScenario(env, func(t *T) {
		baseAccountID, _ := t.RequireBaseline()
		before := t.RequireInitialBalance(baseAccountID)
		_, err := t.Client().Deposit(baseAccountID, decimal.NewFromInt(5000))
		require.NoError(t, err)
		_, err = t.Client().Withdraw(baseAccountID, decimal.NewFromInt(200))
		require.NoError(t, err)
		t.RequireBalanceDelta(baseAccountID, before, decimal.NewFromInt(4800))
	})

	assert.True(t, results.OK(), "scenario failed: %+v", results.Failures)
}

func TestRequireBaselineFailsLoudlyWhenUninitialized(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(1000))
	env.Baseline = db.Baseline{}
	reachedBody := false

	results := runScenario(env, func(t *T) {
		t.RequireBaseline()
		reachedBody = true
	})

	assert.False(t, reachedBody)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "baseline not initialized")
}

func TestInitialBalanceCaptureFailurePropagates(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(1000))
	operated := false

	results := runScenario(env, func(t *T) {
		t.RequireInitialBalance(99999) // unknown account: capture must fail the test
		operated = true
	})

	assert.False(t, operated, "test body continued after a failed baseline capture")
	require.Len(t, results.Failures, 1)
}

func TestSubtestsGetIndependentScopes(t *testing.T) {
	env := makeTestEnvironment(t, newFakeBank(1000))
	var scopes []*T

	framework.Run(nil, nil, func(c *framework.Context) {
		root := newTestScope(c, env)
		root.Run("a", func(t *T) { scopes = append(scopes, t) })
		root.Run("b", func(t *T) { scopes = append(scopes, t) })
	})

	require.Len(t, scopes, 2)
	assert.NotSame(t, scopes[0], scopes[1])
}
