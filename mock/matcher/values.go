package matcher

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/budougumi0617/cmpmock"
	gocmp "github.com/google/go-cmp/cmp"
)

type sameMatcher struct {
	x any
}

func (s sameMatcher) Matches(x any) bool {
	return identical(s.x, x)
}

func (s sameMatcher) String() string {
	return fmt.Sprintf("same instance as <%v>", s.x)
}

// Same matches only the very same instance as [x].
//
// Pointers, maps, channels and slices are compared by address (and type), so two
// distinct pointers to equal structs do not match. A slice with no backing array only
// matches if both are nil. Funcs have no usable identity and never match; use [Func]
// to constrain them. Other kinds fall back to `==`, and never match if they are not
// comparable.
func Same(x any) Matcher {
	return sameMatcher{x: x}
}

func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		// method values of different receivers share one code pointer
		return false
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		// zero-capacity slices may all point at the same zero-size base
		if va.Cap() == 0 || vb.Cap() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

type eqMatcher struct {
	x any
}

func (e eqMatcher) Matches(x any) bool {
	return reflect.DeepEqual(e.x, x)
}

func (e eqMatcher) String() string {
	return fmt.Sprintf("is equal to %v (%T)", e.x, e.x)
}

// Eq matches values that are [reflect.DeepEqual] to [x].
func Eq(x any) Matcher {
	return eqMatcher{x: x}
}

// DeepEqual matches values with no diff against [x] according to go-cmp. Use [opts] to
// ignore fields, allow unexported ones, etc.
func DeepEqual(x any, opts ...gocmp.Option) Matcher {
	return cmpmock.DiffEq(x, opts...)
}

type nilMatcher struct{}

func (nilMatcher) Matches(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func (nilMatcher) String() string { return "is nil" }

// Nil matches nil, including typed nil pointers, maps, slices etc.
func Nil() Matcher {
	return nilMatcher{}
}

type greaterThan[T cmp.Ordered] struct {
	lower T
}

func (g greaterThan[T]) Matches(x any) bool {
	v, ok := x.(T)
	if !ok {
		return false
	}
	return cmp.Compare(g.lower, v) < 0
}

func (g greaterThan[T]) String() string {
	return fmt.Sprintf("a value greater than <%v>", g.lower)
}

// GreaterThan matches values of type [T] strictly greater than [lower]. Values of any
// other dynamic type do not match.
func GreaterThan[T cmp.Ordered](lower T) Matcher {
	return greaterThan[T]{lower: lower}
}

type lessThan[T cmp.Ordered] struct {
	upper T
}

func (l lessThan[T]) Matches(x any) bool {
	v, ok := x.(T)
	if !ok {
		return false
	}
	return cmp.Compare(l.upper, v) > 0
}

func (l lessThan[T]) String() string {
	return fmt.Sprintf("a value less than <%v>", l.upper)
}

// LessThan matches values of type [T] strictly less than [upper].
func LessThan[T cmp.Ordered](upper T) Matcher {
	return lessThan[T]{upper: upper}
}
