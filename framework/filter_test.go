package framework

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIDOf(path ...string) TestID { return TestID{Path: path} }

func TestRegexFiltersWithNoPatternsRunEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(testIDOf("loans", "rejected case")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^loans"))

	assert.True(t, f.AsFilter(testIDOf("loans", "approved case")))
	assert.False(t, f.AsFilter(testIDOf("bill pay", "payee echo")))
}

func TestRegexFiltersMustNotMatchWinsOverMustMatch(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("loans"))
	require.NoError(t, f.MustNotMatch.Set("rejected"))

	assert.True(t, f.AsFilter(testIDOf("loans", "approved case")))
	assert.False(t, f.AsFilter(testIDOf("loans", "rejected case")))
}

func TestRegexFiltersAnchoredFullPathPatternPassesParentGroup(t *testing.T) {
	// the shape of pattern the rerun command generates for a failed test
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^"+regexp.QuoteMeta("accounts/open new account")+"$"))

	assert.True(t, f.AsFilter(testIDOf("accounts")), "parent group must pass so the leaf can be reached")
	assert.True(t, f.AsFilter(testIDOf("accounts", "open new account")))
	assert.False(t, f.AsFilter(testIDOf("accounts", "repeated balance reads stable")))
	assert.False(t, f.AsFilter(testIDOf("customers")))
}

func TestAnchoredFullPathPatternRerunsOnlyTheLeafTest(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^"+regexp.QuoteMeta("accounts/open new account")+"$"))

	ranLeaf, ranOthers := false, false
	results := Run(f.AsFilter, nil, func(c *Context) {
		c.Run("accounts", func(c *Context) {
			c.Run("open new account", func(c *Context) { ranLeaf = true })
			c.Run("repeated balance reads stable", func(c *Context) { ranOthers = true })
		})
		c.Run("customers", func(c *Context) { ranOthers = true })
	})

	assert.True(t, ranLeaf, "the selected leaf test should have run")
	assert.False(t, ranOthers, "tests outside the pattern should have been filtered out")
	assert.True(t, results.OK())
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var l RegexList
	assert.Error(t, l.Set("(unclosed"))
}

func TestRegexListString(t *testing.T) {
	var l RegexList
	require.NoError(t, l.Set("a"))
	require.NoError(t, l.Set("b"))
	assert.Equal(t, `"a" or "b"`, l.String())
}
