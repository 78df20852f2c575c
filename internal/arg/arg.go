// Package arg is the typed view of host-supplied argument cells.
//
// A host cell is a tag plus a union payload. Here it becomes Value, a closed
// set of concrete types; consumers switch on the concrete type, so there is no
// way to read a payload under the wrong tag.
package arg

import (
	"fmt"
	"strings"

	"go.klb.dev/hostbridge/internal/errcode"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindInt:
		return "integer"
	case KindUint:
		return "unsigned integer"
	case KindFloat:
		return "double"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one host argument. The set of implementations is closed.
type Value interface {
	Kind() Kind
	value()
}

type (
	Undefined struct{}
	Int       int64
	Uint      uint64
	Float     float64
	String    string
	Bool      bool
)

func (Undefined) Kind() Kind { return KindUndefined }
func (Int) Kind() Kind       { return KindInt }
func (Uint) Kind() Kind      { return KindUint }
func (Float) Kind() Kind     { return KindFloat }
func (String) Kind() Kind    { return KindString }
func (Bool) Kind() Kind      { return KindBool }

func (Undefined) value() {}
func (Int) value()       {}
func (Uint) value()      {}
func (Float) value()     {}
func (String) value()    {}
func (Bool) value()      {}

// Vector is the ordered argument list of one call. It belongs to the host and
// must not be retained past the call.
type Vector []Value

// Param describes one positional parameter.
type Param struct {
	Name    string
	Accepts []Kind
}

func (p Param) accepts(k Kind) bool {
	for _, a := range p.Accepts {
		if a == k {
			return true
		}
	}
	return false
}

// Check validates v against params: exact arity first, then each position's
// accepted kinds.
func (v Vector) Check(params []Param) error {
	if len(v) != len(params) {
		return errcode.Wrap(errcode.BadArgumentList, "arity",
			fmt.Errorf("got %d arguments, want %d", len(v), len(params)))
	}
	for i, p := range params {
		k := kindOf(v[i])
		if !p.accepts(k) {
			want := make([]string, len(p.Accepts))
			for j, a := range p.Accepts {
				want[j] = a.String()
			}
			return errcode.Wrap(errcode.TypeMismatch, p.Name,
				fmt.Errorf("argument %d is %s, want %s", i, k, strings.Join(want, " or ")))
		}
	}
	return nil
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}

// AsInteger returns the payload of an Int or Uint. A Uint is reinterpreted bit
// for bit so codes pass through verbatim.
func AsInteger(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Uint:
		return int64(x), true
	default:
		return 0, false
	}
}

// AsString returns the payload of a String.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// Slot is the mutable return value of one call. The zero Slot holds Undefined.
type Slot struct {
	v Value
}

// Set stores v. A nil v stores Undefined.
func (s *Slot) Set(v Value) {
	if v == nil {
		v = Undefined{}
	}
	s.v = v
}

// Value returns the stored value.
func (s *Slot) Value() Value {
	if s.v == nil {
		return Undefined{}
	}
	return s.v
}
