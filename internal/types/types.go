// Package types describes the built-in types of the Kotlin subset and the
// symbols (functions and properties) the front end and the loop lowering
// resolve against.
package types

import "strings"

// Kind classifies a Type
type Kind int

const (
	Invalid Kind = iota
	Unit
	Nothing
	Any
	Boolean
	Char
	Byte
	Short
	Int
	Long
	String
	Array          // Array<T>
	PrimitiveArray // IntArray, CharArray, ...
	List           // List<T>
	Range          // IntRange, LongRange, CharRange
	Progression    // IntProgression, LongProgression, CharProgression
	Iterator       // Iterator<T>
)

// Type represents a type in the Kotlin subset
type Type struct {
	Kind Kind
	Elem *Type // element type for containers, progressions and iterators
}

// Builtin types
var (
	TypeUnit    = &Type{Kind: Unit}
	TypeNothing = &Type{Kind: Nothing}
	TypeAny     = &Type{Kind: Any}
	TypeBoolean = &Type{Kind: Boolean}
	TypeChar    = &Type{Kind: Char}
	TypeByte    = &Type{Kind: Byte}
	TypeShort   = &Type{Kind: Short}
	TypeInt     = &Type{Kind: Int}
	TypeLong    = &Type{Kind: Long}
	TypeString  = &Type{Kind: String}
)

// ProgressionElementTypes is the allow-list of element types eligible for
// progression loop optimization.
var ProgressionElementTypes = []*Type{TypeChar, TypeByte, TypeShort, TypeInt, TypeLong}

var namedTypes = map[string]*Type{
	"Unit":    TypeUnit,
	"Any":     TypeAny,
	"Boolean": TypeBoolean,
	"Char":    TypeChar,
	"Byte":    TypeByte,
	"Short":   TypeShort,
	"Int":     TypeInt,
	"Long":    TypeLong,
	"String":  TypeString,
}

var scalarNames = map[Kind]string{
	Unit:    "Unit",
	Nothing: "Nothing",
	Any:     "Any",
	Boolean: "Boolean",
	Char:    "Char",
	Byte:    "Byte",
	Short:   "Short",
	Int:     "Int",
	Long:    "Long",
	String:  "String",
}

// ArrayOf returns the generic array type Array<elem>
func ArrayOf(elem *Type) *Type {
	return &Type{Kind: Array, Elem: elem}
}

// PrimitiveArrayOf returns the specialized array type for elem (IntArray for
// Int). It returns nil when elem has no primitive array.
func PrimitiveArrayOf(elem *Type) *Type {
	switch elem.Kind {
	case Boolean, Char, Byte, Short, Int, Long:
		return &Type{Kind: PrimitiveArray, Elem: elem}
	default:
		return nil
	}
}

// ListOf returns List<elem>
func ListOf(elem *Type) *Type {
	return &Type{Kind: List, Elem: elem}
}

// RangeOf returns the closed range type over elem (IntRange for Int)
func RangeOf(elem *Type) *Type {
	return &Type{Kind: Range, Elem: elem}
}

// ProgressionOf returns the progression type over elem (IntProgression for Int)
func ProgressionOf(elem *Type) *Type {
	return &Type{Kind: Progression, Elem: elem}
}

// IteratorOf returns Iterator<elem>
func IteratorOf(elem *Type) *Type {
	return &Type{Kind: Iterator, Elem: elem}
}

// Name returns the source-level name of the type
func (t *Type) Name() string {
	if t == nil {
		return "<invalid>"
	}
	if name, ok := scalarNames[t.Kind]; ok {
		return name
	}
	switch t.Kind {
	case Array:
		return "Array<" + t.Elem.Name() + ">"
	case PrimitiveArray:
		return t.Elem.Name() + "Array"
	case List:
		return "List<" + t.Elem.Name() + ">"
	case Range:
		return t.Elem.Name() + "Range"
	case Progression:
		return t.Elem.Name() + "Progression"
	case Iterator:
		return "Iterator<" + t.Elem.Name() + ">"
	default:
		return "<invalid>"
	}
}

// String returns the type name
func (t *Type) String() string {
	return t.Name()
}

// Equal reports whether two types are structurally identical
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}
	return t.Elem.Equal(other.Elem)
}

// IsIntegral reports whether t is Byte, Short, Int or Long
func (t *Type) IsIntegral() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case Byte, Short, Int, Long:
		return true
	}
	return false
}

// IsProgression reports whether t is a range or progression type
func (t *Type) IsProgression() bool {
	return t != nil && (t.Kind == Range || t.Kind == Progression)
}

// IsArray reports whether t is Array<T> or a primitive array
func (t *Type) IsArray() bool {
	return t != nil && (t.Kind == Array || t.Kind == PrimitiveArray)
}

// IsProgressionElement reports whether t is in the progression allow-list
func IsProgressionElement(t *Type) bool {
	return OneOf(t, ProgressionElementTypes)
}

// OneOf reports whether t equals one of the candidates
func OneOf(t *Type, candidates []*Type) bool {
	for _, c := range candidates {
		if t.Equal(c) {
			return true
		}
	}
	return false
}

// AssignableTo reports whether a value of type t can be stored where target
// is expected.
func (t *Type) AssignableTo(target *Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t.Equal(target) || t.Kind == Nothing || target.Kind == Any {
		return true
	}
	// Every range is a progression of the same element type
	return t.Kind == Range && target.Kind == Progression && t.Elem.Equal(target.Elem)
}

// ProgressionElement returns the element type of a progression built from
// operands a and b: Char with Char gives Char, any Long operand gives Long,
// other integral operands give Int. It returns nil for incompatible operands.
func ProgressionElement(a, b *Type) *Type {
	if !IsProgressionElement(a) || !IsProgressionElement(b) {
		return nil
	}
	if a.Kind == Char || b.Kind == Char {
		if a.Kind == Char && b.Kind == Char {
			return TypeChar
		}
		return nil
	}
	if a.Kind == Long || b.Kind == Long {
		return TypeLong
	}
	return TypeInt
}

// StepType returns the type of the step of a progression over elem
func StepType(elem *Type) *Type {
	if elem.Kind == Long {
		return TypeLong
	}
	return TypeInt
}

// IterationElement returns the type produced by iterating over t, or nil if
// t is not iterable.
func IterationElement(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Array, PrimitiveArray, List, Range, Progression:
		return t.Elem
	}
	return nil
}

// BitSize returns the width in bits of an integral or character type
func BitSize(t *Type) int {
	switch t.Kind {
	case Byte:
		return 8
	case Short, Char:
		return 16
	case Int:
		return 32
	default:
		return 64
	}
}

// MinValue returns the smallest value representable by an integral or
// character type
func MinValue(t *Type) int64 {
	if t.Kind == Char {
		return 0
	}
	return -1 << (BitSize(t) - 1)
}

// MaxValue returns the largest value representable by an integral or
// character type
func MaxValue(t *Type) int64 {
	if t.Kind == Char {
		return 1<<16 - 1
	}
	return 1<<(BitSize(t)-1) - 1
}

// Wrap truncates v to the width of t using two's complement, or unsigned
// 16-bit arithmetic for Char.
func Wrap(t *Type, v int64) int64 {
	switch t.Kind {
	case Byte:
		return int64(int8(v))
	case Short:
		return int64(int16(v))
	case Char:
		return int64(uint16(v))
	case Int:
		return int64(int32(v))
	default:
		return v
	}
}

// Lookup resolves a source type name with its type arguments. It returns nil
// for unknown names or wrong arity.
func Lookup(name string, args []*Type) *Type {
	if t, ok := namedTypes[name]; ok {
		if len(args) != 0 {
			return nil
		}
		return t
	}

	switch name {
	case "Array", "List":
		if len(args) != 1 || args[0] == nil {
			return nil
		}
		if name == "Array" {
			return ArrayOf(args[0])
		}
		return ListOf(args[0])
	}
	if len(args) != 0 {
		return nil
	}

	for _, suffix := range []string{"Array", "Range", "Progression"} {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		elem := Lookup(strings.TrimSuffix(name, suffix), nil)
		if elem == nil {
			return nil
		}
		switch suffix {
		case "Array":
			return PrimitiveArrayOf(elem)
		default:
			if elem.Kind != Char && elem.Kind != Int && elem.Kind != Long {
				return nil
			}
			if suffix == "Range" {
				return RangeOf(elem)
			}
			return ProgressionOf(elem)
		}
	}
	return nil
}
