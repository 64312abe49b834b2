/*
* This package provides bool returning "assertions" about expectations.
*
* # Why is this needed?
*
* [testing.T.FailNow] requires that it be called from the goroutine running the test. Mocks
* are often invoked from goroutines started by the code under test, so these functions
* record the failure with [gotest.tools/v3/assert.Check] and hand the result back instead of
* stopping the test.
 */
package check

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/uberbrodt/mockcore/mock/expectation"
	"github.com/uberbrodt/mockcore/mock/invocation"
)

// returns false if any item in [checks] fails.
func Chain(t testing.TB, checks ...bool) bool {
	t.Helper()
	for idx, check := range checks {
		if !check {
			t.Logf("[check.Chain] check #%d failed\n", idx)
			return check
		}
	}
	return true
}

// returns true if every one of [exps] has been invoked its required number of times.
func Satisfied(t testing.TB, exps ...*expectation.InvocationExpectation) bool {
	t.Helper()
	ok := true
	for _, e := range exps {
		ok = assert.Check(t, e.IsSatisfied(), "not satisfied: %v", e) && ok
	}
	return ok
}

// returns true if none of [exps] has been invoked its required number of times.
func Unsatisfied(t testing.TB, exps ...*expectation.InvocationExpectation) bool {
	t.Helper()
	ok := true
	for _, e := range exps {
		ok = assert.Check(t, !e.IsSatisfied(), "unexpectedly satisfied: %v", e) && ok
	}
	return ok
}

// returns true if [e] matches [inv]. The failure message says which part did not.
func Matches(t testing.TB, e *expectation.InvocationExpectation, inv invocation.Invocation) bool {
	t.Helper()
	return assert.Check(t, cmp.Nil(e.Mismatch(inv)), "%v should match %v", e, inv)
}

func NotMatches(t testing.TB, e *expectation.InvocationExpectation, inv invocation.Invocation) bool {
	t.Helper()
	return assert.Check(t, !e.Matches(inv), "%v should not match %v", e, inv)
}

// returns true if [e] was invoked exactly [n] times.
func CallCount(t testing.TB, e *expectation.InvocationExpectation, n int) bool {
	t.Helper()
	return assert.Check(t, cmp.Equal(e.CallCount(), n), "call count of %v", e)
}

// checks the values returned by an Invoke: no error and [expected] as the result.
func Result(t testing.TB, actual any, err error, expected any) bool {
	t.Helper()
	return Chain(t,
		assert.Check(t, cmp.Nil(err)),
		assert.Check(t, cmp.Equal(actual, expected)),
	)
}

// Compares two values using [go-cmp/cmp]
func DeepEqual(t testing.TB, actual, expected any, opts ...gocmp.Option) bool {
	t.Helper()
	return assert.Check(t, cmp.DeepEqual(actual, expected, opts...))
}

// returns true if [actual] is or wraps [expected]
func ErrorIs(t testing.TB, actual error, expected error) bool {
	t.Helper()
	return assert.Check(t, cmp.ErrorIs(actual, expected))
}
