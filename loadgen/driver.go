// Package loadgen issues the same logical banking operations as the
// verification suite, but at volume, for throughput and response-time
// measurement. It consumes the client package's operation contracts and the
// session baseline as read-only inputs and performs no correctness
// verification beyond counting failed calls.
package loadgen

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/parabank-qa/bank-contract-tests/client"
	"github.com/parabank-qa/bank-contract-tests/db"
	"github.com/parabank-qa/bank-contract-tests/framework"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultDuration = time.Second * 30

// Driver runs a weighted mix of banking operations across a pool of workers
// until the configured duration elapses.
type Driver struct {
	Client   *client.ServiceClient
	Baseline db.Baseline
	Workers  int
	Duration time.Duration
	Logger   framework.Logger
}

// Counts is the outcome of a load run.
type Counts struct {
	Requests    int64
	Failures    int64
	ByOperation map[string]int64
}

type worker struct {
	tag        string
	client     *client.ServiceClient
	accounts   []int
	customerID int
	faker      *gofakeit.Faker
}

func (w *worker) randomAccount() int {
	return w.accounts[w.faker.Number(0, len(w.accounts)-1)]
}

func (w *worker) randomAmount(min, max int) decimal.Decimal {
	return decimal.NewFromInt(int64(w.faker.Number(min, max)))
}

type task struct {
	name   string
	weight int
	run    func(w *worker) error
}

// The task mix mirrors real traffic: balance reads dominate, mutations are
// rarer, and administrative operations never run here.
var tasks = []task{
	{"balance", 3, func(w *worker) error {
		_, err := w.client.AccountBalance(w.randomAccount())
		return err
	}},
	{"deposit", 3, func(w *worker) error {
		_, err := w.client.Deposit(w.randomAccount(), w.randomAmount(100, 1000))
		return err
	}},
	{"withdraw", 2, func(w *worker) error {
		_, err := w.client.Withdraw(w.randomAccount(), w.randomAmount(50, 500))
		return err
	}},
	{"customer details", 2, func(w *worker) error {
		_, err := w.client.CustomerDetails(w.customerID)
		return err
	}},
	{"account by id", 1, func(w *worker) error {
		_, err := w.client.AccountByID(w.randomAccount())
		return err
	}},
	{"create account", 1, func(w *worker) error {
		// a rejection is a valid outcome here, not a failure
		_, err := w.client.CreateAccount(w.customerID, client.AccountTypeSavings, w.randomAccount())
		return err
	}},
	{"bill pay", 1, func(w *worker) error {
		payee := client.Payee{
			Name:          w.faker.Name(),
			Street:        w.faker.Street(),
			City:          w.faker.City(),
			State:         w.faker.State(),
			ZipCode:       w.faker.Zip(),
			PhoneNumber:   w.faker.Phone(),
			AccountNumber: w.faker.Number(15000, 30000),
		}
		_, err := w.client.BillPay(w.randomAccount(), w.randomAmount(100, 500), payee)
		return err
	}},
	{"loan request", 1, func(w *worker) error {
		_, err := w.client.RequestLoan(w.customerID,
			w.randomAmount(1000, 10000), w.randomAmount(100, 1000), w.randomAccount())
		return err
	}},
}

func pickTask(f *gofakeit.Faker) task {
	total := 0
	for _, t := range tasks {
		total += t.weight
	}
	n := f.Number(0, total-1)
	for _, t := range tasks {
		n -= t.weight
		if n < 0 {
			return t
		}
	}
	return tasks[0]
}

func (d *Driver) logger() framework.Logger {
	if d.Logger == nil {
		return framework.NullLogger()
	}
	return d.Logger
}

// Run starts the worker pool and blocks until the run duration elapses.
func (d *Driver) Run() (Counts, error) {
	if !d.Baseline.Initialized() || len(d.Baseline.AccountIDs) == 0 {
		return Counts{}, errors.New("session baseline not initialized; load generation needs known account IDs")
	}
	workers := d.Workers
	if workers <= 0 {
		workers = 1
	}
	duration := d.Duration
	if duration <= 0 {
		duration = defaultDuration
	}

	deadline := time.Now().Add(duration)
	var requests, failures int64
	perOp := make(map[string]int64)
	var perOpLock sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			w := &worker{
				tag:        uuid.NewString(),
				client:     d.Client,
				accounts:   d.Baseline.AccountIDs,
				customerID: d.Baseline.CustomerID.IntValue(),
				faker:      gofakeit.New(seed),
			}
			for time.Now().Before(deadline) {
				tk := pickTask(w.faker)
				err := tk.run(w)
				atomic.AddInt64(&requests, 1)
				perOpLock.Lock()
				perOp[tk.name]++
				perOpLock.Unlock()
				if err != nil {
					atomic.AddInt64(&failures, 1)
					d.logger().Printf("[worker %s] %s failed: %s", w.tag, tk.name, err)
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()

	return Counts{Requests: requests, Failures: failures, ByOperation: perOp}, nil
}
