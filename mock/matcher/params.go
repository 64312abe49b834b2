package matcher

import (
	"fmt"

	"github.com/uberbrodt/mockcore/mock/invocation"
)

type paramsMatcher struct {
	ms []Matcher
}

func (p paramsMatcher) Matches(x any) bool {
	params, ok := x.(invocation.Params)
	if !ok || params.IsAbsent() || params.Len() != len(p.ms) {
		return false
	}
	for i, m := range p.ms {
		if !m.Matches(params.At(i)) {
			return false
		}
	}
	return true
}

func (p paramsMatcher) String() string {
	return "params" + join(p.ms, ", ")
}

func (p paramsMatcher) Got(got any) string {
	if params, ok := got.(invocation.Params); ok {
		return params.String()
	}
	return fmt.Sprintf("%v (%T)", got, got)
}

// ParamsOf matches a present [invocation.Params] with exactly len(ms) arguments where
// argument i matches ms[i]. An absent parameter list never matches, even with no
// matchers; use `Eq(invocation.Absent())` for that.
func ParamsOf(ms ...Matcher) Matcher {
	return paramsMatcher{ms: ms}
}
