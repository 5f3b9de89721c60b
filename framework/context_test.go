package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished map[string]bool
	skipped  map[string]string
	errors   []error
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{
		finished: make(map[string]bool),
		skipped:  make(map[string]string),
	}
}

func (l *recordingTestLogger) TestStarted(id TestID) { l.started = append(l.started, id.String()) }
func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.errors = append(l.errors, err)
}
func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	l.finished[id.String()] = failed
}
func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.skipped[id.String()] = reason
}

func TestRunCollectsPassingAndFailingResults(t *testing.T) {
	logger := newRecordingTestLogger()

	results := Run(nil, logger, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Errorf("deliberate failure")
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "deliberate failure", results.Failures[0].Errors[0].Error())

	assert.False(t, logger.finished["passes"])
	assert.True(t, logger.finished["fails"])
}

func TestFailNowTerminatesOnlyCurrentTest(t *testing.T) {
	logger := newRecordingTestLogger()
	reachedAfterFailNow := false
	ranSibling := false

	results := Run(nil, logger, func(c *Context) {
		c.Run("aborts", func(c *Context) {
			c.Errorf("bad state")
			c.FailNow()
			reachedAfterFailNow = true
		})
		c.Run("sibling", func(c *Context) { ranSibling = true })
	})

	assert.False(t, reachedAfterFailNow)
	assert.True(t, ranSibling)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "aborts", results.Failures[0].TestID.String())
}

func TestFailNowWithoutMessageRecordsPlaceholderError(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent failure", func(c *Context) {
			c.FailNow()
		})
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "no failure message")
}

func TestUnexpectedPanicBecomesFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestSkippedTestIsNotAFailure(t *testing.T) {
	logger := newRecordingTestLogger()

	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not applicable here")
			c.Errorf("should never get here")
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, "not applicable here", logger.skipped["skipped"])
}

func TestFilterExcludesTests(t *testing.T) {
	logger := newRecordingTestLogger()
	ran := []string{}
	filter := func(id TestID) bool { return id.String() != "excluded" }

	Run(filter, logger, func(c *Context) {
		c.Run("included", func(c *Context) { ran = append(ran, "included") })
		c.Run("excluded", func(c *Context) { ran = append(ran, "excluded") })
	})

	assert.Equal(t, []string{"included"}, ran)
	assert.Equal(t, "excluded by filter parameters", logger.skipped["excluded"])
}

func TestCleanupRunsInReverseOrderEvenAfterFailNow(t *testing.T) {
	var order []string

	Run(nil, nil, func(c *Context) {
		c.Run("cleanup", func(c *Context) {
			c.Cleanup(func() { order = append(order, "first") })
			c.Cleanup(func() { order = append(order, "second") })
			c.Errorf("stop")
			c.FailNow()
		})
	})

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestSubtestIDsAreIndependent(t *testing.T) {
	var ids []string

	Run(nil, nil, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("child a", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("child b", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})

	assert.Equal(t, []string{"parent/child a", "parent/child b"}, ids)
}
