// Package browser declares the contract between the harness and the
// UI-automation layer. The concrete page-object implementation is external to
// this repository; the harness only consumes these interfaces, passing a
// Driver into the suite when one is available.
package browser

// Registration is the data entered into the service's new-customer form.
type Registration struct {
	FirstName   string
	LastName    string
	Street      string
	City        string
	State       string
	ZipCode     string
	PhoneNumber string
	SSN         string
	Username    string
	Password    string
}

// Driver performs browser-level interactions with the service's web UI.
// Implementations are expected to surface any UI-level failure as an error;
// the harness makes no assertions about rendering.
type Driver interface {
	// RegisterCustomer fills out and submits the registration form.
	RegisterCustomer(reg Registration) error

	// Login signs in with an existing user's credentials.
	Login(username, password string) error

	// Logout ends the current UI session.
	Logout() error
}
