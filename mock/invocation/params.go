package invocation

import (
	"fmt"
	"reflect"
	"strings"
)

// Params is the argument list of an [Invocation].
//
// There are two "empty" values and they are not interchangeable: the zero value
// (see [Absent]) means the proxy recorded no parameter list at all, while [None]
// is a parameter list with no arguments in it. Matchers comparing against one must
// not accept the other.
type Params struct {
	values  []any
	present bool
}

// Absent returns a Params that carries no parameter list. Same as the zero value.
func Absent() Params {
	return Params{}
}

// None returns the explicit empty parameter list. Alias for `Of()`
func None() Params {
	return Of()
}

// Of returns a parameter list holding a copy of [values].
func Of(values ...any) Params {
	v := make([]any, len(values))
	copy(v, values)
	return Params{values: v, present: true}
}

// returns true if there is no parameter list
func (p Params) IsAbsent() bool {
	return !p.present
}

// number of arguments. An absent list has length zero, use [IsAbsent] to tell it
// apart from [None].
func (p Params) Len() int {
	return len(p.values)
}

// At returns the argument at [idx]. Panics if out of range, like a slice would.
func (p Params) At(idx int) any {
	return p.values[idx]
}

// Values returns a copy of the arguments, or nil if the list is absent.
func (p Params) Values() []any {
	if !p.present {
		return nil
	}
	v := make([]any, len(p.values))
	copy(v, p.values)
	return v
}

// Equal reports whether both lists are present (or both absent) and hold deeply equal
// arguments in the same order.
func (p Params) Equal(other Params) bool {
	if p.present != other.present || len(p.values) != len(other.values) {
		return false
	}
	for i := range p.values {
		if !reflect.DeepEqual(p.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func (p Params) String() string {
	if !p.present {
		return "<absent>"
	}
	parts := make([]string, len(p.values))
	for i, v := range p.values {
		parts[i] = fmt.Sprintf("%#v", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Get returns the argument at [idx] as a [T]. Panics if the argument is not a [T].
func Get[T any](p Params, idx int) T {
	return p.values[idx].(T)
}
