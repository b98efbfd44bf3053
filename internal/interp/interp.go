// Package interp executes IR modules. It runs a module the same way before
// and after loop lowering, which is how the lowering is checked for
// behavioral equivalence.
package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// Options configures a run.
type Options struct {
	// MaxSteps bounds the number of statements and loop iterations
	// executed; 0 means no limit.
	MaxSteps int
}

// RuntimeError is an error raised by the running program.
type RuntimeError struct {
	Pos ir.Pos
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrStepLimit is wrapped by the error returned when Options.MaxSteps is
// exceeded.
var ErrStepLimit = errors.New("step limit exceeded")

// Run executes the function main of mod, writing program output to out.
func Run(mod *ir.Module, out io.Writer, opts Options) error {
	main := mod.Function("main")
	if main == nil {
		return errors.New("no main function")
	}
	in := &Interpreter{
		out:       out,
		opts:      opts,
		functions: make(map[string]*ir.Function, len(mod.Functions)),
	}
	for _, fn := range mod.Functions {
		in.functions[fn.Name] = fn
	}
	_, err := in.Call(main, nil)
	return err
}

// Interpreter holds the state of one run.
type Interpreter struct {
	out       io.Writer
	opts      Options
	functions map[string]*ir.Function
	steps     int
}

// frame holds the locals of one function activation, keyed by declaration
type frame map[*ir.Variable]Value

type control int

const (
	normal control = iota
	breakLoop
	continueLoop
	returnFunc
)

// Call invokes fn with args.
func (in *Interpreter) Call(fn *ir.Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	f := make(frame, len(fn.Params))
	for i, p := range fn.Params {
		f[p] = args[i]
	}
	ctl, ret, err := in.execBlock(fn.Body, f)
	if err != nil {
		return nil, err
	}
	if ctl != returnFunc || ret == nil {
		return Unit{}, nil
	}
	return ret, nil
}

func (in *Interpreter) tick(pos ir.Pos) error {
	in.steps++
	if in.opts.MaxSteps > 0 && in.steps > in.opts.MaxSteps {
		return fmt.Errorf("%s: %w after %d statements", pos, ErrStepLimit, in.opts.MaxSteps)
	}
	return nil
}

func (in *Interpreter) execBlock(blk *ir.Block, f frame) (control, Value, error) {
	for _, s := range blk.Stmts {
		ctl, ret, err := in.execStmt(s, f)
		if err != nil || ctl != normal {
			return ctl, ret, err
		}
	}
	return normal, nil, nil
}

func (in *Interpreter) execStmt(stmt ir.Stmt, f frame) (control, Value, error) {
	if err := in.tick(stmt.StmtPos()); err != nil {
		return normal, nil, err
	}

	switch s := stmt.(type) {
	case *ir.Variable:
		if s.Init == nil {
			return normal, nil, fmt.Errorf("%s: variable %s has no initializer", s.Pos, s.Name)
		}
		v, err := in.eval(s.Init, f)
		if err != nil {
			return normal, nil, err
		}
		f[s] = v

	case *ir.SetValue:
		v, err := in.eval(s.Value, f)
		if err != nil {
			return normal, nil, err
		}
		f[s.Var] = v

	case *ir.ExprStmt:
		if _, err := in.eval(s.Expr, f); err != nil {
			return normal, nil, err
		}

	case *ir.ReturnStmt:
		if s.Value == nil {
			return returnFunc, Unit{}, nil
		}
		v, err := in.eval(s.Value, f)
		if err != nil {
			return normal, nil, err
		}
		return returnFunc, v, nil

	case *ir.IfStmt:
		cond, err := in.evalBool(s.Condition, f)
		if err != nil {
			return normal, nil, err
		}
		if cond {
			return in.execBlock(s.Then, f)
		}
		if s.Else != nil {
			return in.execBlock(s.Else, f)
		}

	case *ir.WhileStmt:
		for {
			if err := in.tick(s.Pos); err != nil {
				return normal, nil, err
			}
			cond, err := in.evalBool(s.Condition, f)
			if err != nil || !cond {
				return normal, nil, err
			}
			ctl, ret, err := in.execBlock(s.Body, f)
			if err != nil || ctl == returnFunc {
				return ctl, ret, err
			}
			if ctl == breakLoop {
				return normal, nil, nil
			}
		}

	case *ir.DoWhileStmt:
		for {
			if err := in.tick(s.Pos); err != nil {
				return normal, nil, err
			}
			ctl, ret, err := in.execBlock(s.Body, f)
			if err != nil || ctl == returnFunc {
				return ctl, ret, err
			}
			if ctl == breakLoop {
				return normal, nil, nil
			}
			cond, err := in.evalBool(s.Condition, f)
			if err != nil || !cond {
				return normal, nil, err
			}
		}

	case *ir.ForInStmt:
		return in.execForIn(s, f)

	case *ir.BreakStmt:
		return breakLoop, nil, nil

	case *ir.ContinueStmt:
		return continueLoop, nil, nil

	case *ir.Block:
		return in.execBlock(s, f)

	default:
		return normal, nil, fmt.Errorf("unknown statement type %T", stmt)
	}
	return normal, nil, nil
}

func (in *Interpreter) execForIn(s *ir.ForInStmt, f frame) (control, Value, error) {
	v, err := in.eval(s.Iterator, f)
	if err != nil {
		return normal, nil, err
	}
	it, ok := v.(*Iterator)
	if !ok {
		return normal, nil, fmt.Errorf("%s: %s did not produce an iterator", s.Pos, s.Iterator.Symbol)
	}
	for it.hasNext() {
		if err := in.tick(s.Pos); err != nil {
			return normal, nil, err
		}
		f[s.LoopVar] = it.next()
		ctl, ret, err := in.execBlock(s.Body, f)
		if err != nil || ctl == returnFunc {
			return ctl, ret, err
		}
		if ctl == breakLoop {
			break
		}
	}
	return normal, nil, nil
}

func (in *Interpreter) evalBool(e ir.Expr, f frame) (bool, error) {
	v, err := in.eval(e, f)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, fmt.Errorf("%s: expected Boolean, got %s", e.ExprPos(), Format(v))
	}
	return bool(b), nil
}

func (in *Interpreter) eval(expr ir.Expr, f frame) (Value, error) {
	switch e := expr.(type) {
	case *ir.Const:
		if e.Type.Kind == types.Boolean {
			return Bool(e.Value != 0), nil
		}
		return Number{V: e.Value, Type: e.Type}, nil

	case *ir.StringConst:
		return Str(e.Value), nil

	case *ir.GetValue:
		v, ok := f[e.Var]
		if !ok {
			return nil, fmt.Errorf("%s: read of unassigned variable %s", e.Pos, e.Var.Name)
		}
		return v, nil

	case *ir.NotExpr:
		b, err := in.evalBool(e.Operand, f)
		if err != nil {
			return nil, err
		}
		return Bool(!b), nil

	case *ir.BinaryExpr:
		return in.evalBinary(e, f)

	case *ir.Call:
		return in.evalCall(e, f)

	case nil:
		return nil, errors.New("nil expression")
	}
	return nil, fmt.Errorf("unknown expression type %T", expr)
}

func (in *Interpreter) evalBinary(e *ir.BinaryExpr, f frame) (Value, error) {
	if e.Op == lexer.AND || e.Op == lexer.OR {
		left, err := in.evalBool(e.Left, f)
		if err != nil {
			return nil, err
		}
		if left == (e.Op == lexer.OR) {
			return Bool(left), nil
		}
		right, err := in.evalBool(e.Right, f)
		return Bool(right), err
	}

	left, err := in.eval(e.Left, f)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right, f)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case lexer.EQ:
		return Bool(equal(left, right)), nil
	case lexer.NEQ:
		return Bool(!equal(left, right)), nil
	}

	if s, ok := left.(Str); ok {
		switch e.Op {
		case lexer.PLUS:
			return s + Str(Format(right)), nil
		case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
			r, ok := right.(Str)
			if !ok {
				break
			}
			return Bool(compare(e.Op, cmpStrings(string(s), string(r)))), nil
		}
		return nil, fmt.Errorf("%s: operator %s not defined for String", e.Pos, e.Op)
	}

	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return nil, fmt.Errorf("%s: operator %s needs numeric operands, got %s and %s",
			e.Pos, e.Op, Format(left), Format(right))
	}

	switch e.Op {
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return Bool(compare(e.Op, cmpInts(l.V, r.V))), nil
	case lexer.PLUS:
		return number(e.Type, l.V+r.V), nil
	case lexer.MINUS:
		return number(e.Type, l.V-r.V), nil
	case lexer.STAR:
		return number(e.Type, l.V*r.V), nil
	case lexer.SLASH, lexer.PERCENT:
		if r.V == 0 {
			return nil, &RuntimeError{Pos: e.Pos, Msg: "ArithmeticException: / by zero"}
		}
		// MinValue / -1 overflows back to MinValue, as on the JVM
		if r.V == -1 {
			if e.Op == lexer.SLASH {
				return number(e.Type, -l.V), nil
			}
			return number(e.Type, 0), nil
		}
		if e.Op == lexer.SLASH {
			return number(e.Type, l.V/r.V), nil
		}
		return number(e.Type, l.V%r.V), nil
	}
	return nil, fmt.Errorf("%s: unknown operator %s", e.Pos, e.Op)
}

func cmpInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compare(op lexer.TokenType, c int) bool {
	switch op {
	case lexer.LT:
		return c < 0
	case lexer.GT:
		return c > 0
	case lexer.LEQ:
		return c <= 0
	default:
		return c >= 0
	}
}
