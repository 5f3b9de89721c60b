package client

import "fmt"

// Every failed operation returns one of three error types: TransportError when
// the HTTP exchange itself went wrong, ValidationError when the service
// answered successfully but the payload violates the operation's contract,
// and UnexpectedError for anything else. Business-level declines (an
// unapproved loan, a rejected account creation) are not errors; see
// AccountCreation and RequestLoan.

// TransportError indicates that the request could not be completed, or that
// the service answered with a non-2xx status.
type TransportError struct {
	Op     string
	Status string // HTTP status line, if a response was received at all
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: service returned %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: request failed: %s", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ValidationError indicates a successful response whose payload did not have
// the shape the operation requires, such as a missing balance field.
type ValidationError struct {
	Op     string
	Detail string
	Body   string // the offending response body, for diagnostics
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (response was: %s)", e.Op, e.Detail, e.Body)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// UnexpectedError is the catch-all for failures outside the other two
// classifications, such as being unable to serialize a request.
type UnexpectedError struct {
	Op    string
	Cause error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: unexpected error: %s", e.Op, e.Cause)
}

func (e *UnexpectedError) Unwrap() error { return e.Cause }
