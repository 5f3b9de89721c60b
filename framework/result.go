package framework

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a full harness run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of a single test or subtest.
type TestResult struct {
	TestID TestID
	Errors []error
}

// OK returns true if no test failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test as the path of subtest names leading to it.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// TestFailure pairs a test identifier with one of its errors, for printing
// failure summaries.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// FailureErrors flattens the failed tests into printable test/error pairs,
// one per recorded error.
func (r Results) FailureErrors() []TestFailure {
	var ret []TestFailure
	for _, f := range r.Failures {
		for _, err := range f.Errors {
			ret = append(ret, TestFailure{ID: f.TestID, Err: err})
		}
	}
	return ret
}
