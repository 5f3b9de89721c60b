// Package framework contains the low-level test harness infrastructure that is
// not specific to the banking domain.
//
// The general model is:
//
// 1. The harness observes the service under test from the outside, through
// whatever channels the domain-specific code provides (HTTP operations, SQL
// queries). The framework itself knows nothing about those channels.
//
// 2. There is a general notion of a test context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results, outside of the Go
// test runner.
//
// 3. Per-test debug output is captured as it happens and only surfaced
// according to the test logger's configuration, so a passing run stays quiet.
//
// The domain-specific code that knows what is being tested (the banktests
// package) is responsible for providing the service client, the session
// baseline, and a domain test API on top of the test context.
package framework
