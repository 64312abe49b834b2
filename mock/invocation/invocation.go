// Package invocation holds the normalized record of a call made on a mock object.
//
// An [Invocation] is produced by whatever intercepts calls on the mock (a generated
// proxy, a hand written fake, ...) and is only read afterwards.
package invocation

import (
	"fmt"
	"reflect"
)

// Method identifies the method that was called. Two Methods are the same method
// when they are `==`.
type Method struct {
	Name string
	// Signature of the method. nil if the caller did not record one.
	Type reflect.Type
}

// NewMethod returns a Method that only carries a name.
func NewMethod(name string) Method {
	return Method{Name: name}
}

// MethodOf looks up [name] in the method set of [typ] and returns it with its
// signature. [ok] is false if there is no such method.
//
// For interface types the signature has no receiver, for concrete types it does.
func MethodOf(typ reflect.Type, name string) (m Method, ok bool) {
	if typ == nil {
		return m, false
	}
	rm, ok := typ.MethodByName(name)
	if !ok {
		return m, false
	}
	return Method{Name: rm.Name, Type: rm.Type}, true
}

func (m Method) String() string {
	if m.Type == nil {
		return m.Name
	}
	return fmt.Sprintf("%s %s", m.Name, m.Type)
}

// Invocation is an immutable record of one call: the object it was made on, the
// method and the arguments.
type Invocation struct {
	target any
	method Method
	params Params
}

func New(target any, method Method, params Params) Invocation {
	return Invocation{target: target, method: method, params: params}
}

// the object the method was invoked on
func (i Invocation) Target() any {
	return i.target
}

func (i Invocation) Method() Method {
	return i.method
}

func (i Invocation) Params() Params {
	return i.params
}

func (i Invocation) String() string {
	return fmt.Sprintf("%v.%s%s", i.target, i.method.Name, i.params)
}
