// Package client implements the verification-oriented wrapper around the
// banking service's HTTP operations. Each method performs one JSON-over-HTTP
// call and returns either the successful payload or a classified error; see
// errors.go for the taxonomy. The client does not retry and keeps no state
// about the service, so one instance can be shared or cheaply re-derived per
// test with a different logger.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/parabank-qa/bank-contract-tests/framework"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const defaultRequestTimeout = time.Second * 10

// ServiceClient issues verified operations against the banking service.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// New creates a ServiceClient for the service at baseURL, which should be the
// root of the bank API (e.g. http://localhost:8090/parabank/services/bank).
func New(baseURL string, logger framework.Logger) *ServiceClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ServiceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger,
	}
}

// WithLogger returns a copy of the client that logs request/response activity
// to the given logger. Tests use this to route client chatter into their own
// captured debug output.
func (c *ServiceClient) WithLogger(logger framework.Logger) *ServiceClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

type rawResponse struct {
	status     string
	statusCode int
	body       []byte
}

func (r rawResponse) ok() bool { return r.statusCode >= 200 && r.statusCode <= 299 }

func (c *ServiceClient) send(op, method, path string, query url.Values, jsonBody interface{}) (rawResponse, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if jsonBody != nil {
		data, err := json.Marshal(jsonBody)
		if err != nil {
			return rawResponse{}, &UnexpectedError{Op: op, Cause: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		return rawResponse{}, &UnexpectedError{Op: op, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Printf("%s %s", method, requestURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rawResponse{}, &TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, &TransportError{Op: op, Status: resp.Status, Cause: err}
	}
	c.logger.Printf("%s %s -> %s", method, requestURL, resp.Status)
	return rawResponse{status: resp.Status, statusCode: resp.StatusCode, body: data}, nil
}

// AccountBalance reads the current balance of an account.
func (c *ServiceClient) AccountBalance(accountID int) (decimal.Decimal, error) {
	const op = "getAccountBalance"
	resp, err := c.send(op, "GET", fmt.Sprintf("/accounts/%d", accountID), nil, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !resp.ok() {
		return decimal.Decimal{}, &TransportError{Op: op, Status: resp.status}
	}
	var account struct {
		Balance *decimal.Decimal `json:"balance"`
	}
	if err := json.Unmarshal(resp.body, &account); err != nil {
		return decimal.Decimal{}, &ValidationError{Op: op, Detail: "malformed account payload", Body: string(resp.body), Cause: err}
	}
	if account.Balance == nil {
		return decimal.Decimal{}, &ValidationError{Op: op, Detail: "balance field missing from response", Body: string(resp.body)}
	}
	return *account.Balance, nil
}

// CreateAccount opens a new account for a customer, funded from an existing
// account. A declined creation is reported through the returned
// AccountCreation's Rejection field, not as an error; see AccountCreation.
func (c *ServiceClient) CreateAccount(customerID, accountType, fromAccountID int) (AccountCreation, error) {
	const op = "createNewAccount"
	q := url.Values{}
	q.Set("customerId", strconv.Itoa(customerID))
	q.Set("newAccountType", strconv.Itoa(accountType))
	q.Set("fromAccountId", strconv.Itoa(fromAccountID))

	resp, err := c.send(op, "POST", "/createAccount", q, nil)
	if err != nil {
		return AccountCreation{}, err
	}
	if !resp.ok() {
		rej := Rejection{Code: resp.status, Details: string(resp.body)}
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if json.Unmarshal(resp.body, &errBody) == nil {
			if errBody.Error != "" {
				rej.Code = errBody.Error
			}
			if errBody.Details != "" {
				rej.Details = errBody.Details
			}
		}
		return AccountCreation{Rejection: &rej}, nil
	}

	var account struct {
		ID *int `json:"id"`
	}
	if err := json.Unmarshal(resp.body, &account); err != nil {
		return AccountCreation{}, &ValidationError{Op: op, Detail: "malformed account payload", Body: string(resp.body), Cause: err}
	}
	if account.ID == nil {
		return AccountCreation{}, &ValidationError{Op: op, Detail: "id field missing from response", Body: string(resp.body)}
	}
	return AccountCreation{AccountID: *account.ID}, nil
}

// Deposit adds funds to an account. Success is determined solely by the HTTP
// status; the raw response text is returned for logging.
func (c *ServiceClient) Deposit(accountID int, amount decimal.Decimal) (string, error) {
	return c.postAmount("depositToAccount", "/deposit", accountID, amount)
}

// Withdraw removes funds from an account. Success is determined solely by the
// HTTP status; the raw response text is returned for logging.
func (c *ServiceClient) Withdraw(accountID int, amount decimal.Decimal) (string, error) {
	return c.postAmount("withdrawFromAccount", "/withdraw", accountID, amount)
}

func (c *ServiceClient) postAmount(op, path string, accountID int, amount decimal.Decimal) (string, error) {
	q := url.Values{}
	q.Set("accountId", strconv.Itoa(accountID))
	q.Set("amount", amount.String())

	resp, err := c.send(op, "POST", path, q, nil)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", &TransportError{Op: op, Status: resp.status}
	}
	return string(resp.body), nil
}

// BillPay pays a bill from an account to the given payee and returns the
// service's approval record, whose PayeeName echoes the submitted name.
func (c *ServiceClient) BillPay(accountID int, amount decimal.Decimal, payee Payee) (ApprovalRecord, error) {
	const op = "billPay"
	q := url.Values{}
	q.Set("accountId", strconv.Itoa(accountID))
	q.Set("amount", amount.String())

	body := payeeBody{
		Name: payee.Name,
		Address: payeeAddress{
			Street:  payee.Street,
			City:    payee.City,
			State:   payee.State,
			ZipCode: payee.ZipCode,
		},
		PhoneNumber:   payee.PhoneNumber,
		AccountNumber: payee.AccountNumber,
	}

	resp, err := c.send(op, "POST", "/billpay", q, body)
	if err != nil {
		return ApprovalRecord{}, err
	}
	if !resp.ok() {
		return ApprovalRecord{}, &TransportError{Op: op, Status: resp.status}
	}
	var approval ApprovalRecord
	if err := json.Unmarshal(resp.body, &approval); err != nil {
		return ApprovalRecord{}, &ValidationError{Op: op, Detail: "malformed approval payload", Body: string(resp.body), Cause: err}
	}
	return approval, nil
}

// CustomerDetails looks up a customer record by customer ID.
func (c *ServiceClient) CustomerDetails(customerID int) (CustomerRecord, error) {
	const op = "getCustomerDetails"
	resp, err := c.send(op, "GET", fmt.Sprintf("/customers/%d", customerID), nil, nil)
	if err != nil {
		return CustomerRecord{}, err
	}
	if !resp.ok() {
		return CustomerRecord{}, &TransportError{Op: op, Status: resp.status}
	}
	var customer CustomerRecord
	if err := json.Unmarshal(resp.body, &customer); err != nil {
		return CustomerRecord{}, &ValidationError{Op: op, Detail: "malformed customer payload", Body: string(resp.body), Cause: err}
	}
	if customer.ID == 0 {
		return CustomerRecord{}, &ValidationError{Op: op, Detail: "empty customer payload", Body: string(resp.body)}
	}
	return customer, nil
}

// AccountByID looks up a full account record by account ID.
func (c *ServiceClient) AccountByID(accountID int) (AccountRecord, error) {
	const op = "getAccountById"
	resp, err := c.send(op, "GET", fmt.Sprintf("/accounts/%d", accountID), nil, nil)
	if err != nil {
		return AccountRecord{}, err
	}
	if !resp.ok() {
		return AccountRecord{}, &TransportError{Op: op, Status: resp.status}
	}
	var account AccountRecord
	if err := json.Unmarshal(resp.body, &account); err != nil {
		return AccountRecord{}, &ValidationError{Op: op, Detail: "malformed account payload", Body: string(resp.body), Cause: err}
	}
	if account.ID == 0 {
		return AccountRecord{}, &ValidationError{Op: op, Detail: "empty account payload", Body: string(resp.body)}
	}
	return account, nil
}

// RequestLoan asks for a loan funded from an existing account and returns
// whether it was approved. An absent "approved" field in the response is a
// valid "not approved" signal, not an error.
func (c *ServiceClient) RequestLoan(customerID int, amount, downPayment decimal.Decimal, fromAccountID int) (bool, error) {
	const op = "requestLoanApproval"
	q := url.Values{}
	q.Set("customerId", strconv.Itoa(customerID))
	q.Set("amount", amount.String())
	q.Set("downPayment", downPayment.String())
	q.Set("fromAccountId", strconv.Itoa(fromAccountID))

	resp, err := c.send(op, "POST", "/requestLoan", q, nil)
	if err != nil {
		return false, err
	}
	if !resp.ok() {
		return false, &TransportError{Op: op, Status: resp.status}
	}
	var outcome struct {
		Approved *bool `json:"approved"`
	}
	if err := json.Unmarshal(resp.body, &outcome); err != nil {
		return false, &ValidationError{Op: op, Detail: "malformed loan payload", Body: string(resp.body), Cause: err}
	}
	if outcome.Approved == nil {
		return false, nil
	}
	return *outcome.Approved, nil
}

// BuyPosition purchases shares for a customer, funded from an account.
func (c *ServiceClient) BuyPosition(customerID, accountID int, name, symbol string, shares int, pricePerShare decimal.Decimal) (PurchaseRecord, error) {
	const op = "buyPosition"
	q := url.Values{}
	q.Set("accountId", strconv.Itoa(accountID))
	q.Set("name", name)
	q.Set("symbol", symbol)
	q.Set("shares", strconv.Itoa(shares))
	q.Set("pricePerShare", pricePerShare.String())

	resp, err := c.send(op, "POST", fmt.Sprintf("/customers/%d/buyPosition", customerID), q, nil)
	if err != nil {
		return PurchaseRecord{}, err
	}
	if !resp.ok() {
		return PurchaseRecord{}, &TransportError{Op: op, Status: resp.status}
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return PurchaseRecord{}, &ValidationError{Op: op, Detail: "empty purchase payload", Body: string(resp.body)}
	}
	var data ldvalue.Value
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return PurchaseRecord{}, &ValidationError{Op: op, Detail: "malformed purchase payload", Body: string(resp.body), Cause: err}
	}
	return PurchaseRecord{Data: data}, nil
}

// CleanDatabase asks the service to reset its backing store. The call is
// idempotent from the caller's perspective, but the service needs a settling
// period afterward before state queries are reliable again; enforcing that
// grace period is the caller's responsibility.
func (c *ServiceClient) CleanDatabase() (string, error) {
	const op = "cleanDatabase"
	resp, err := c.send(op, "POST", "/cleanDB", nil, nil)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", &TransportError{Op: op, Status: resp.status}
	}
	return string(resp.body), nil
}
