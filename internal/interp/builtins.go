package interp

import (
	"fmt"
	"io"

	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

func (in *Interpreter) evalCall(call *ir.Call, f frame) (Value, error) {
	var recv Value
	if r := call.Receiver(); r != nil {
		v, err := in.eval(r, f)
		if err != nil {
			return nil, err
		}
		recv = v
	}
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := in.eval(a, f)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	sym := call.Symbol
	if !sym.Builtin {
		fn, ok := in.functions[sym.FqName]
		if !ok {
			return nil, fmt.Errorf("%s: unknown function %s", call.Pos, sym.FqName)
		}
		return in.Call(fn, args)
	}
	return in.builtin(call, recv, args)
}

// builtin evaluates a runtime-provided function or property
func (in *Interpreter) builtin(call *ir.Call, recv Value, args []Value) (Value, error) {
	sym := call.Symbol
	switch sym.FqName {
	case "kotlin.io.println":
		line := ""
		if len(args) == 1 {
			line = Format(args[0])
		}
		return in.write(call.Pos, line+"\n")
	case "kotlin.io.print":
		return in.write(call.Pos, Format(args[0]))
	case "kotlin.error":
		return nil, &RuntimeError{Pos: call.Pos, Msg: "IllegalStateException: " + Format(args[0])}
	case "kotlin.arrayOf":
		return &Array{Type: call.Type, Items: args}, nil
	case "kotlin.ranges.downTo":
		a, b, elem := progressionOperands(call, recv, args)
		return downTo(elem, a, b), nil
	case "kotlin.ranges.until":
		a, b, elem := progressionOperands(call, recv, args)
		return until(elem, a, b), nil
	case "kotlin.ranges.reversed":
		return recv.(*Progression).Reversed(), nil
	case "kotlin.collections.indices":
		return until(types.TypeInt, 0, int64(len(items(recv)))), nil
	case "kotlin.collections.reversed":
		src := items(recv)
		out := make([]Value, len(src))
		for i, v := range src {
			out[len(src)-1-i] = v
		}
		return &List{Items: out}, nil
	}

	if types.FactoryElement(sym.Name()) != nil {
		return &Array{Type: call.Type, Items: args}, nil
	}

	switch sym.Name() {
	case "rangeTo":
		a, b, elem := progressionOperands(call, recv, args)
		return rangeTo(elem, a, b), nil
	case "unaryMinus":
		return number(sym.Return, -recv.(Number).V), nil
	case "toChar", "toByte", "toShort", "toInt", "toLong":
		return number(sym.Return, recv.(Number).V), nil
	case "first":
		p := recv.(*Progression)
		return Number{V: p.First, Type: p.Elem}, nil
	case "last":
		p := recv.(*Progression)
		return Number{V: p.Last, Type: p.Elem}, nil
	case "step":
		p := recv.(*Progression)
		return number(types.StepType(p.Elem), p.Step), nil
	case "size":
		return number(types.TypeInt, int64(len(items(recv)))), nil
	case "get":
		return in.get(call, recv, args[0].(Number).V)
	case "set":
		arr := recv.(*Array)
		i := args[0].(Number).V
		if i < 0 || i >= int64(len(arr.Items)) {
			return nil, outOfBounds(call.Pos, "ArrayIndexOutOfBoundsException", i, len(arr.Items))
		}
		arr.Items[i] = args[1]
		return Unit{}, nil
	case "iterator":
		switch r := recv.(type) {
		case *Progression:
			return r.iterator(), nil
		default:
			return itemsIterator(items(recv)), nil
		}
	}
	return nil, fmt.Errorf("%s: unsupported builtin %s", call.Pos, sym.FqName)
}

func (in *Interpreter) write(pos ir.Pos, s string) (Value, error) {
	if _, err := io.WriteString(in.out, s); err != nil {
		return nil, fmt.Errorf("%s: write output: %w", pos, err)
	}
	return Unit{}, nil
}

func (in *Interpreter) get(call *ir.Call, recv Value, i int64) (Value, error) {
	switch r := recv.(type) {
	case *Array:
		if i < 0 || i >= int64(len(r.Items)) {
			return nil, outOfBounds(call.Pos, "ArrayIndexOutOfBoundsException", i, len(r.Items))
		}
		return r.Items[i], nil
	case *List:
		if i < 0 || i >= int64(len(r.Items)) {
			return nil, outOfBounds(call.Pos, "IndexOutOfBoundsException", i, len(r.Items))
		}
		return r.Items[i], nil
	}
	return nil, fmt.Errorf("%s: cannot index %s", call.Pos, Format(recv))
}

func outOfBounds(pos ir.Pos, kind string, i int64, n int) error {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf("%s: Index %d out of bounds for length %d", kind, i, n)}
}

func items(v Value) []Value {
	switch c := v.(type) {
	case *Array:
		return c.Items
	case *List:
		return c.Items
	}
	return nil
}

// progressionOperands returns the bounds of a rangeTo, downTo or until call
// together with the element type of the progression it builds.
func progressionOperands(call *ir.Call, recv Value, args []Value) (int64, int64, *types.Type) {
	elem := call.Type.Elem
	return recv.(Number).V, args[0].(Number).V, elem
}
