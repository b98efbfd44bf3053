package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgfh98/kotlin/internal/types"
)

// Value is a runtime value.
type Value interface {
	value()
}

// Number is an integral or Char value, wrapped to the width of Type.
type Number struct {
	V    int64
	Type *types.Type
}

// Bool is a Boolean value.
type Bool bool

// Str is a String value.
type Str string

// Unit is the value of Unit-typed expressions.
type Unit struct{}

// Array is a mutable fixed-size array. Arrays are shared by reference.
type Array struct {
	Type  *types.Type
	Items []Value
}

// List is an immutable list.
type List struct {
	Items []Value
}

func (Number) value()       {}
func (Bool) value()         {}
func (Str) value()          {}
func (Unit) value()         {}
func (*Array) value()       {}
func (*List) value()        {}
func (*Progression) value() {}
func (*Iterator) value()    {}

func number(t *types.Type, v int64) Number {
	return Number{V: types.Wrap(t, v), Type: t}
}

// Format renders v the way println prints it.
func Format(v Value) string {
	switch x := v.(type) {
	case Number:
		if x.Type.Kind == types.Char {
			return string(rune(x.V))
		}
		return strconv.FormatInt(x.V, 10)
	case Bool:
		return strconv.FormatBool(bool(x))
	case Str:
		return string(x)
	case Unit:
		return "kotlin.Unit"
	case *Array:
		return formatItems(x.Items)
	case *List:
		return formatItems(x.Items)
	case *Progression:
		return x.String()
	case *Iterator:
		return "Iterator"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

func formatItems(items []Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Format(it)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// equal implements == on values of assignable types
func equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x.V == y.V && (x.Type.Kind == types.Char) == (y.Type.Kind == types.Char)
	case *Progression:
		y, ok := b.(*Progression)
		if !ok {
			return false
		}
		if x.IsEmpty() && y.IsEmpty() {
			return true
		}
		return x.First == y.First && x.Last == y.Last && x.Step == y.Step
	}
	return a == b
}
