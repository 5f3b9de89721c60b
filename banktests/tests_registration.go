package banktests

import (
	"github.com/parabank-qa/bank-contract-tests/browser"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func randomRegistration() browser.Registration {
	return browser.Registration{
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Street:      gofakeit.Street(),
		City:        gofakeit.City(),
		State:       gofakeit.State(),
		ZipCode:     gofakeit.Zip(),
		PhoneNumber: gofakeit.Phone(),
		SSN:         gofakeit.SSN(),
		Username:    gofakeit.Username(),
		Password:    gofakeit.Password(true, true, true, false, false, 12),
	}
}

// DoRegistrationTests drives the UI registration and login flow through
// whatever browser driver the harness was configured with. The page-object
// implementation lives outside this repository; without one, the scenario is
// skipped.
func DoRegistrationTests(t *T) {
	t.Run("register and log in", func(t *T) {
		if t.env.Browser == nil {
			t.SkipWithReason("no browser driver configured")
		}

		reg := randomRegistration()
		t.Debug("registering user %s", reg.Username)
		require.NoError(t, t.env.Browser.RegisterCustomer(reg))
		require.NoError(t, t.env.Browser.Login(reg.Username, reg.Password))
		require.NoError(t, t.env.Browser.Logout())
	})
}
