package types

import "strings"

// SymbolKind distinguishes callable functions from property getters
type SymbolKind int

const (
	FunctionSymbol SymbolKind = iota
	PropertySymbol
)

// Symbol describes a resolved function or property. Symbols are values: two
// resolutions of the same member compare equal by FqName.
type Symbol struct {
	FqName    string // e.g. "kotlin.ranges.downTo", "kotlin.IntArray.size"
	Kind      SymbolKind
	Dispatch  *Type   // dispatch receiver type for members, nil otherwise
	Extension *Type   // extension receiver type for extensions, nil otherwise
	Params    []*Type // parameter types; the last one repeats when Variadic
	Variadic  bool
	Return    *Type
	Infix     bool
	Builtin   bool // implemented by the runtime rather than user code
}

// Name returns the last segment of the fully-qualified name
func (s *Symbol) Name() string {
	if i := strings.LastIndexByte(s.FqName, '.'); i >= 0 {
		return s.FqName[i+1:]
	}
	return s.FqName
}

// IsProperty reports whether s is a property getter
func (s *Symbol) IsProperty() bool {
	return s.Kind == PropertySymbol
}

// String returns the fully-qualified name
func (s *Symbol) String() string {
	return s.FqName
}

// classFqName returns the qualified name of the class declaring members of t
func classFqName(t *Type) string {
	switch t.Kind {
	case Range, Progression:
		return "kotlin.ranges." + ProgressionOf(t.Elem).Name()
	case Array:
		return "kotlin.Array"
	case List:
		return "kotlin.collections.List"
	default:
		return "kotlin." + t.Name()
	}
}

func member(recv *Type, name string, kind SymbolKind, ret *Type, params ...*Type) *Symbol {
	return &Symbol{
		FqName:   classFqName(recv) + "." + name,
		Kind:     kind,
		Dispatch: recv,
		Params:   params,
		Return:   ret,
		Builtin:  true,
	}
}

func extension(fq string, recv *Type, kind SymbolKind, ret *Type, params ...*Type) *Symbol {
	return &Symbol{
		FqName:    fq,
		Kind:      kind,
		Extension: recv,
		Params:    params,
		Return:    ret,
		Builtin:   true,
	}
}

var conversions = map[string]*Type{
	"toChar":  TypeChar,
	"toByte":  TypeByte,
	"toShort": TypeShort,
	"toInt":   TypeInt,
	"toLong":  TypeLong,
}

// Member resolves a member or extension function named name on a receiver of
// type recv for the given argument types. It returns nil when nothing applies.
func Member(recv *Type, name string, args []*Type) *Symbol {
	return resolve(recv, name, args, false)
}

// Property resolves a member or extension property named name on a receiver
// of type recv. It returns nil when nothing applies.
func Property(recv *Type, name string) *Symbol {
	return resolve(recv, name, nil, true)
}

func resolve(recv *Type, name string, args []*Type, property bool) *Symbol {
	if recv == nil {
		return nil
	}

	switch {
	case IsProgressionElement(recv):
		if property {
			return nil
		}
		return numberMember(recv, name, args)
	case recv.IsProgression():
		return progressionMember(recv, name, args, property)
	case recv.IsArray() || recv.Kind == List:
		return containerMember(recv, name, args, property)
	}
	return nil
}

func numberMember(recv *Type, name string, args []*Type) *Symbol {
	if to, ok := conversions[name]; ok && len(args) == 0 {
		return member(recv, name, FunctionSymbol, to)
	}

	switch name {
	case "rangeTo":
		if len(args) == 1 {
			if elem := ProgressionElement(recv, args[0]); elem != nil {
				return member(recv, name, FunctionSymbol, RangeOf(elem), args[0])
			}
		}
	case "downTo", "until":
		if len(args) == 1 {
			if elem := ProgressionElement(recv, args[0]); elem != nil {
				ret := ProgressionOf(elem)
				if name == "until" {
					ret = RangeOf(elem)
				}
				sym := extension("kotlin.ranges."+name, recv, FunctionSymbol, ret, args[0])
				sym.Infix = true
				return sym
			}
		}
	case "unaryMinus":
		if len(args) == 0 && recv.IsIntegral() {
			ret := TypeInt
			if recv.Kind == Long {
				ret = TypeLong
			}
			return member(recv, name, FunctionSymbol, ret)
		}
	}
	return nil
}

func progressionMember(recv *Type, name string, args []*Type, property bool) *Symbol {
	elem := recv.Elem
	switch name {
	case "first", "last":
		if property {
			return member(recv, name, PropertySymbol, elem)
		}
	case "step":
		if property {
			return member(recv, name, PropertySymbol, StepType(elem))
		}
	case "iterator":
		if !property && len(args) == 0 {
			return member(recv, name, FunctionSymbol, IteratorOf(elem))
		}
	case "reversed":
		if !property && len(args) == 0 {
			return extension("kotlin.ranges.reversed", ProgressionOf(elem), FunctionSymbol, ProgressionOf(elem))
		}
	}
	return nil
}

func containerMember(recv *Type, name string, args []*Type, property bool) *Symbol {
	elem := recv.Elem
	switch name {
	case "size":
		if property {
			return member(recv, name, PropertySymbol, TypeInt)
		}
	case "get":
		if !property && len(args) == 1 && args[0].Equal(TypeInt) {
			return member(recv, name, FunctionSymbol, elem, TypeInt)
		}
	case "set":
		if !property && recv.IsArray() && len(args) == 2 && args[0].Equal(TypeInt) && args[1].AssignableTo(elem) {
			return member(recv, name, FunctionSymbol, TypeUnit, TypeInt, elem)
		}
	case "iterator":
		if !property && len(args) == 0 {
			return member(recv, name, FunctionSymbol, IteratorOf(elem))
		}
	case "indices":
		if property {
			return extension("kotlin.collections.indices", recv, PropertySymbol, RangeOf(TypeInt))
		}
	case "reversed":
		if !property && len(args) == 0 {
			return extension("kotlin.collections.reversed", recv, FunctionSymbol, ListOf(elem))
		}
	}
	return nil
}

var arrayFactories = map[string]*Type{
	"booleanArrayOf": TypeBoolean,
	"charArrayOf":    TypeChar,
	"byteArrayOf":    TypeByte,
	"shortArrayOf":   TypeShort,
	"intArrayOf":     TypeInt,
	"longArrayOf":    TypeLong,
}

// FactoryElement returns the element type of a primitive array factory such
// as intArrayOf, or nil if name is not one.
func FactoryElement(name string) *Type {
	return arrayFactories[name]
}

// Function resolves a top-level built-in function for the given argument
// types. It returns nil when no overload applies.
func Function(name string, args []*Type) *Symbol {
	switch name {
	case "println", "print":
		if len(args) > 1 {
			return nil
		}
		sym := &Symbol{FqName: "kotlin.io." + name, Return: TypeUnit, Builtin: true}
		if len(args) == 1 {
			sym.Params = []*Type{TypeAny}
		}
		if name == "print" && len(args) == 0 {
			return nil
		}
		return sym
	case "error":
		if len(args) == 1 && args[0].AssignableTo(TypeAny) {
			return &Symbol{FqName: "kotlin.error", Params: []*Type{TypeAny}, Return: TypeNothing, Builtin: true}
		}
		return nil
	case "arrayOf":
		if len(args) == 0 {
			return nil
		}
		for _, a := range args[1:] {
			if !a.Equal(args[0]) {
				return nil
			}
		}
		return &Symbol{FqName: "kotlin.arrayOf", Params: []*Type{args[0]}, Variadic: true, Return: ArrayOf(args[0]), Builtin: true}
	}

	if elem, ok := arrayFactories[name]; ok {
		for _, a := range args {
			if !a.Equal(elem) {
				return nil
			}
		}
		return &Symbol{FqName: "kotlin." + name, Params: []*Type{elem}, Variadic: true, Return: PrimitiveArrayOf(elem), Builtin: true}
	}
	return nil
}
