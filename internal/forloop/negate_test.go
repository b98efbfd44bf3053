package forloop

import (
	"math"
	"testing"

	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

func TestNegateConstants(t *testing.T) {
	b := ir.NewBuilder()
	pos := ir.Pos{Line: 2, Column: 7}

	tests := []struct {
		name string
		typ  *types.Type
		in   int64
		want int64
	}{
		{"int", types.TypeInt, 1, -1},
		{"negative int", types.TypeInt, -1, 1},
		{"long", types.TypeLong, 5, -5},
		{"int min", types.TypeInt, math.MinInt32, math.MinInt32},
		{"long min", types.TypeLong, math.MinInt64, math.MinInt64},
		{"byte min", types.TypeByte, -128, -128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := b.Const(pos, tt.typ, tt.in)
			neg, ok := Negate(b, orig).(*ir.Const)
			if !ok {
				t.Fatalf("expected a folded constant, got %s", ir.FormatExpr(Negate(b, orig)))
			}
			if neg.Value != tt.want || !neg.Type.Equal(tt.typ) {
				t.Errorf("expected %s %d, got %s %d", tt.typ, tt.want, neg.Type, neg.Value)
			}
			if neg.Pos != pos {
				t.Errorf("expected position %s, got %s", pos, neg.Pos)
			}

			twice := Negate(b, neg).(*ir.Const)
			if twice.Value != orig.Value || !twice.Type.Equal(orig.Type) {
				t.Errorf("expected double negation to give %s %d, got %s %d", orig.Type, orig.Value, twice.Type, twice.Value)
			}
		})
	}
}

func TestNegateExpression(t *testing.T) {
	b := ir.NewBuilder()
	pos := ir.Pos{Line: 4, Column: 12}
	step := &ir.Variable{Name: "step", Type: types.TypeLong}
	read := b.Get(pos, step)

	call, ok := Negate(b, read).(*ir.Call)
	if !ok {
		t.Fatalf("expected a unaryMinus call, got %T", Negate(b, read))
	}
	if call.Symbol.FqName != "kotlin.Long.unaryMinus" {
		t.Errorf("expected kotlin.Long.unaryMinus, got %s", call.Symbol)
	}
	if call.Dispatch != read {
		t.Error("expected the original expression as receiver")
	}
	if call.Pos != pos {
		t.Errorf("expected position %s, got %s", pos, call.Pos)
	}
	if !call.Type.Equal(types.TypeLong) {
		t.Errorf("expected Long, got %s", call.Type)
	}
	if got := ir.FormatExpr(call); got != "-step" {
		t.Errorf("expected -step, got %s", got)
	}

	c := &ir.Variable{Name: "c", Type: types.TypeChar}
	if got := Negate(b, b.Get(pos, c)); got != nil {
		t.Errorf("expected no negation for Char, got %s", ir.FormatExpr(got))
	}
}
