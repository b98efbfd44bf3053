package forloop

import (
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

// Analyze recognizes iterable as a progression whose elements have type
// elem and returns its header and the idiom that matched. A nil elem
// accepts any element type. It returns a nil Header when no handler
// applies; that is a normal outcome, not an error.
//
// Analyze keeps no state between calls and may be re-entered by a
// handler's builder.
func Analyze(b *ir.Builder, iterable ir.Expr, elem *types.Type) (Header, HandlerKind) {
	call, ok := iterable.(*ir.Call)
	if !ok {
		return nil, 0
	}
	for _, h := range progressionHandlers {
		if !h.match(call) {
			continue
		}
		if header := h.build(b, call, elem); header != nil {
			return header, h.kind
		}
	}
	return nil, 0
}

// AnalyzeLoop recognizes the iterable of loop. Direct array iteration is
// matched on the loop's iterator() call; everything else on the iterable
// itself. The expected element type is the loop variable's type.
func AnalyzeLoop(b *ir.Builder, loop *ir.ForInStmt) (Header, HandlerKind) {
	elem := loop.LoopVar.Type
	if arrayIterationHandler.match(loop.Iterator) {
		if header := arrayIterationHandler.build(b, loop.Iterator, elem); header != nil {
			return header, ArrayIteration
		}
	}
	return Analyze(b, loop.Iterable(), elem)
}
