package forloop

import (
	"fmt"

	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// Report describes what happened to one for-loop.
type Report struct {
	Pos      ir.Pos
	Iterable *types.Type
	Kind     HandlerKind // meaningful only when Lowered
	Lowered  bool
	Reason   string // why the loop was left generic
}

// Message renders the report for diagnostics.
func (r Report) Message() string {
	if r.Lowered {
		return fmt.Sprintf("for-loop over %s lowered (%s)", r.Iterable, r.Kind)
	}
	return fmt.Sprintf("for-loop over %s left generic: %s", r.Iterable, r.Reason)
}

const (
	reasonUnrecognized = "not a recognized progression"
	reasonStep         = "step is not a unit constant"
)

// LowerLoops rewrites every recognized for-loop in fn into a counted loop
// and returns one report per loop in source order. b must be used for fn
// only.
func LowerLoops(fn *ir.Function, b *ir.Builder) []Report {
	l := &loopLowerer{b: b}
	l.block(fn.Body)
	return l.reports
}

type loopLowerer struct {
	b       *ir.Builder
	reports []Report
}

func (l *loopLowerer) block(blk *ir.Block) {
	for i, s := range blk.Stmts {
		blk.Stmts[i] = l.stmt(s)
	}
}

func (l *loopLowerer) stmt(stmt ir.Stmt) ir.Stmt {
	switch s := stmt.(type) {
	case *ir.Block:
		l.block(s)
	case *ir.IfStmt:
		l.block(s.Then)
		if s.Else != nil {
			l.block(s.Else)
		}
	case *ir.WhileStmt:
		l.block(s.Body)
	case *ir.DoWhileStmt:
		l.block(s.Body)
	case *ir.ForInStmt:
		return l.forIn(s)
	}
	return stmt
}

func (l *loopLowerer) forIn(loop *ir.ForInStmt) ir.Stmt {
	report := Report{Pos: loop.Pos, Iterable: loop.Iterable().ExprType()}

	header, kind := AnalyzeLoop(l.b, loop)
	var step int64
	switch {
	case header == nil:
		report.Reason = reasonUnrecognized
	default:
		var ok bool
		if step, ok = unitStep(header.Info().Step); ok {
			report.Lowered = true
			report.Kind = kind
		} else {
			report.Reason = reasonStep
		}
	}
	l.reports = append(l.reports, report)

	l.block(loop.Body)
	if !report.Lowered {
		return loop
	}
	return l.rewrite(loop, header, step)
}

// unitStep returns the value of a constant step of 1 or -1.
func unitStep(e ir.Expr) (int64, bool) {
	c, ok := e.(*ir.Const)
	if !ok || (c.Value != 1 && c.Value != -1) {
		return 0, false
	}
	return c.Value, true
}

// rewrite emits
//
//	additional variables
//	bound temporaries, in source order
//	var i = first
//	while (i < last) { val x = i; i = i + 1; body }
//
// for Safe headers, and otherwise a guarded loop that stops on equality so
// the induction variable never steps past last:
//
//	if (first <= last) { var i = first; do { val x = i; i = i + 1; body } while (x != last) }
//
// with comparisons mirrored for negative steps and an exclusive last tested
// before each iteration.
func (l *loopLowerer) rewrite(loop *ir.ForInStmt, header Header, step int64) ir.Stmt {
	b := l.b
	pos := loop.Pos
	h := header.Info()
	elem := h.ElementType

	out := &ir.Block{Pos: pos}
	for _, v := range h.AdditionalVariables {
		out.Stmts = append(out.Stmts, v)
	}

	var first, last func() ir.Expr
	if h.IsReversed {
		last = l.hoist(out, pos, "last", h.Last)
		first = l.hoist(out, pos, "first", h.First)
	} else {
		first = l.hoist(out, pos, "first", h.First)
		last = l.hoist(out, pos, "last", h.Last)
	}

	init := first()
	if !h.FirstInclusive {
		init = advance(b, pos, init, step, elem)
	}
	index := b.Temporary(pos, "index", init, true)

	x := loop.LoopVar
	if arr, ok := header.(*ArrayHeaderInfo); ok {
		x.Init = b.Member(pos, b.Get(pos, arr.ArrayVariable), "get", b.Get(pos, index))
	} else {
		x.Init = b.Get(pos, index)
	}
	body := &ir.Block{Pos: loop.Body.Pos}
	body.Stmts = append(body.Stmts, x, b.Set(pos, index, advance(b, pos, b.Get(pos, index), step, elem)))
	body.Stmts = append(body.Stmts, loop.Body.Stmts...)

	if h.Overflow == Safe {
		op := ordered(step, h.LastInclusive)
		out.Stmts = append(out.Stmts, index, &ir.WhileStmt{
			Condition: b.Compare(pos, op, b.Get(pos, index), last()),
			Body:      body,
			Pos:       pos,
		})
		return out
	}

	var counted ir.Stmt
	if h.LastInclusive {
		counted = &ir.DoWhileStmt{
			Body:      body,
			Condition: b.Compare(pos, lexer.NEQ, b.Get(pos, x), last()),
			Pos:       pos,
		}
	} else {
		counted = &ir.WhileStmt{
			Condition: b.Compare(pos, lexer.NEQ, b.Get(pos, index), last()),
			Body:      body,
			Pos:       pos,
		}
	}
	guard := ordered(step, h.FirstInclusive && h.LastInclusive)
	out.Stmts = append(out.Stmts, &ir.IfStmt{
		Condition: b.Compare(pos, guard, first(), last()),
		Then:      &ir.Block{Stmts: []ir.Stmt{index, counted}, Pos: pos},
		Pos:       pos,
	})
	return out
}

// hoist evaluates a non-constant bound once into a temporary and returns a
// function producing fresh reads of it.
func (l *loopLowerer) hoist(out *ir.Block, pos ir.Pos, hint string, e ir.Expr) func() ir.Expr {
	if c, ok := e.(*ir.Const); ok {
		return func() ir.Expr { return l.b.Const(c.Pos, c.Type, c.Value) }
	}
	tmp := l.b.Temporary(pos, hint, e, false)
	out.Stmts = append(out.Stmts, tmp)
	return func() ir.Expr { return l.b.Get(pos, tmp) }
}

// advance returns e moved one unit step
func advance(b *ir.Builder, pos ir.Pos, e ir.Expr, step int64, elem *types.Type) ir.Expr {
	op := lexer.PLUS
	if step < 0 {
		op = lexer.MINUS
	}
	return b.Binary(pos, op, e, b.Const(pos, types.StepType(elem), 1), elem)
}

// ordered returns the comparison that holds while the index has not passed
// the bound in the direction of step.
func ordered(step int64, inclusive bool) lexer.TokenType {
	switch {
	case step > 0 && inclusive:
		return lexer.LEQ
	case step > 0:
		return lexer.LT
	case inclusive:
		return lexer.GEQ
	default:
		return lexer.GT
	}
}
