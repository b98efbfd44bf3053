package ir

import (
	"fmt"

	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// Builder synthesizes IR nodes. Every factory takes the source position
// the new node should carry; the only state is the counter used to name
// temporaries, so one Builder serves one function body.
type Builder struct {
	temps int
}

// NewBuilder returns a Builder with a fresh temporary counter.
func NewBuilder() *Builder {
	return &Builder{}
}

// Const returns a constant of type t, wrapping v to the width of t.
func (b *Builder) Const(pos Pos, t *types.Type, v int64) *Const {
	if t.IsIntegral() || t.Kind == types.Char {
		v = types.Wrap(t, v)
	}
	return &Const{Value: v, Type: t, Pos: pos}
}

// Int returns an Int constant.
func (b *Builder) Int(pos Pos, v int64) *Const {
	return b.Const(pos, types.TypeInt, v)
}

// Long returns a Long constant.
func (b *Builder) Long(pos Pos, v int64) *Const {
	return b.Const(pos, types.TypeLong, v)
}

// Bool returns a Boolean constant.
func (b *Builder) Bool(pos Pos, v bool) *Const {
	c := &Const{Type: types.TypeBoolean, Pos: pos}
	if v {
		c.Value = 1
	}
	return c
}

// Call returns a call of sym with receiver placed in the slot sym
// declares. receiver may be nil for top-level functions.
func (b *Builder) Call(pos Pos, sym *types.Symbol, receiver Expr, args ...Expr) *Call {
	call := &Call{Symbol: sym, Args: args, Type: sym.Return, Pos: pos}
	switch {
	case sym.Dispatch != nil:
		call.Dispatch = receiver
	case sym.Extension != nil:
		call.Extension = receiver
	}
	return call
}

// Member resolves name on the type of receiver and returns the call, or
// nil when no member applies.
func (b *Builder) Member(pos Pos, receiver Expr, name string, args ...Expr) *Call {
	argTypes := make([]*types.Type, len(args))
	for i, a := range args {
		argTypes[i] = a.ExprType()
	}
	sym := types.Member(receiver.ExprType(), name, argTypes)
	if sym == nil {
		return nil
	}
	return b.Call(pos, sym, receiver, args...)
}

// Property returns a read of the named property of receiver, or nil when
// the type has no such property.
func (b *Builder) Property(pos Pos, receiver Expr, name string) *Call {
	sym := types.Property(receiver.ExprType(), name)
	if sym == nil {
		return nil
	}
	return b.Call(pos, sym, receiver)
}

var conversionNames = map[types.Kind]string{
	types.Char:  "toChar",
	types.Byte:  "toByte",
	types.Short: "toShort",
	types.Int:   "toInt",
	types.Long:  "toLong",
}

// Convert returns e converted to t. It returns e unchanged when the types
// already match, folds constants, and otherwise emits a conversion call
// such as toLong(). It returns nil when no conversion exists.
func (b *Builder) Convert(e Expr, t *types.Type) Expr {
	from := e.ExprType()
	if from.Equal(t) {
		return e
	}
	if c, ok := e.(*Const); ok && (from.IsIntegral() || from.Kind == types.Char) {
		return b.Const(c.Pos, t, c.Value)
	}
	name, ok := conversionNames[t.Kind]
	if !ok {
		return nil
	}
	if call := b.Member(e.ExprPos(), e, name); call != nil {
		return call
	}
	return nil
}

// Temporary declares a fresh variable initialized to init. Names are
// unique within this Builder.
func (b *Builder) Temporary(pos Pos, hint string, init Expr, mutable bool) *Variable {
	name := fmt.Sprintf("tmp%d_%s", b.temps, hint)
	b.temps++
	return &Variable{
		Name:    name,
		Type:    init.ExprType(),
		Mutable: mutable,
		Init:    init,
		Pos:     pos,
	}
}

// Get returns a read of v.
func (b *Builder) Get(pos Pos, v *Variable) *GetValue {
	return &GetValue{Var: v, Pos: pos}
}

// Set returns an assignment of value to v.
func (b *Builder) Set(pos Pos, v *Variable, value Expr) *SetValue {
	return &SetValue{Var: v, Value: value, Pos: pos}
}

// Binary returns an arithmetic operation of type t.
func (b *Builder) Binary(pos Pos, op lexer.TokenType, left, right Expr, t *types.Type) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right, Type: t, Pos: pos}
}

// Compare returns a Boolean comparison.
func (b *Builder) Compare(pos Pos, op lexer.TokenType, left, right Expr) *BinaryExpr {
	return b.Binary(pos, op, left, right, types.TypeBoolean)
}
