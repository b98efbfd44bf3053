package forloop

import (
	"github.com/lgfh98/kotlin/internal/ir"
)

// Negate returns -e. Integral constants fold to a constant of the same
// type, wrapped to its width; anything else becomes e.unaryMinus() at e's
// position. It returns nil when e's type has no negation.
func Negate(b *ir.Builder, e ir.Expr) ir.Expr {
	if c, ok := e.(*ir.Const); ok && c.Type.IsIntegral() {
		return b.Const(c.Pos, c.Type, -c.Value)
	}
	if call := b.Member(e.ExprPos(), e, "unaryMinus"); call != nil {
		return call
	}
	return nil
}
