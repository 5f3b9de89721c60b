// Package banktests contains the banking verification scenarios themselves
// and their supporting API.
//
// Harness infrastructure that is not specific to the banking domain, such as
// the test context, result accumulation, and filtering, is in the lower-level
// framework package. The operations under test are issued through the client
// package, and the session baseline comes from the db package.
package banktests
