package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureErrorsFlattenResults(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) { c.Errorf("first problem") })
		c.Run("b", func(c *Context) {})
	})

	failures := results.FailureErrors()
	require.Len(t, failures, 1)
	assert.Equal(t, "[a]: first problem", failures[0].Error())
}

func TestFailureErrorsIncludeEveryRecordedError(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Errorf("first problem")
			c.Errorf("second problem")
		})
	})

	failures := results.FailureErrors()
	require.Len(t, failures, 2)
	assert.Equal(t, "[a]: second problem", failures[1].Error())
}
