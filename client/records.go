package client

import (
	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Account type codes accepted by the createAccount operation.
const (
	AccountTypeChecking = 0
	AccountTypeSavings  = 1
	AccountTypeLoan     = 2
)

// Payee is the recipient of a bill payment.
type Payee struct {
	Name          string
	Street        string
	City          string
	State         string
	ZipCode       string
	PhoneNumber   string
	AccountNumber int
}

// wire shape of the billpay request body
type payeeBody struct {
	Name          string       `json:"name"`
	Address       payeeAddress `json:"address"`
	PhoneNumber   string       `json:"phoneNumber"`
	AccountNumber int          `json:"accountNumber"`
}

type payeeAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// ApprovalRecord is the service's echo of a completed bill payment.
type ApprovalRecord struct {
	PayeeName string          `json:"payeeName"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID int             `json:"accountId"`
}

// AccountRecord is the service's representation of a single account.
type AccountRecord struct {
	ID         int             `json:"id"`
	CustomerID int             `json:"customerId"`
	Type       string          `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
}

// Address is a customer's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// CustomerRecord is the service's representation of a customer.
type CustomerRecord struct {
	ID          int     `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Address     Address `json:"address"`
	PhoneNumber string  `json:"phoneNumber"`
	SSN         string  `json:"ssn"`
}

// PurchaseRecord is the service's echo of a completed position purchase. Its
// schema varies between service versions, so the payload is kept as a parsed
// JSON value rather than a fixed struct.
type PurchaseRecord struct {
	Data ldvalue.Value
}

// AccountCreation is the outcome of a createAccount call. Exactly one of the
// two fields is meaningful: AccountID when the account was created, Rejection
// when the service declined with a descriptive error body. Rejections are
// returned as data, not as an error, mirroring the service's own
// error-as-payload convention for this operation.
type AccountCreation struct {
	AccountID int
	Rejection *Rejection
}

// Created reports whether the service actually created an account.
func (r AccountCreation) Created() bool { return r.Rejection == nil }

// Rejection is the structured error body the service returns when it
// declines an account creation, e.g. for an invalid source account.
type Rejection struct {
	Code    string // HTTP-status-derived code, e.g. "400 Bad Request"
	Details string
}
