package ir

import (
	"fmt"
)

// Validate checks an IR module for correctness and returns a list of error messages.
// An empty slice indicates the module is valid.
//
// Besides nil checks it verifies that every variable is declared before it
// is read or written in an enclosing scope, that only mutable variables are
// reassigned, and that each call fills the receiver slot its symbol declares.
func Validate(mod *Module) []string {
	var errors []string
	for _, fn := range mod.Functions {
		errors = append(errors, ValidateFunction(fn)...)
	}
	return errors
}

// ValidateFunction validates a single function.
func ValidateFunction(fn *Function) []string {
	v := &validator{}
	context := fmt.Sprintf("function %s", fn.Name)
	if fn.ReturnType == nil {
		v.errorf("%s has nil ReturnType", context)
	}
	if fn.Body == nil {
		v.errorf("%s has nil Body", context)
		return v.errors
	}

	v.push()
	for _, p := range fn.Params {
		v.declare(p, context)
	}
	v.block(fn.Body, context)
	v.pop()
	return v.errors
}

type validator struct {
	scopes []map[*Variable]bool
	errors []string
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) push() { v.scopes = append(v.scopes, make(map[*Variable]bool)) }
func (v *validator) pop()  { v.scopes = v.scopes[:len(v.scopes)-1] }

func (v *validator) declare(x *Variable, context string) {
	if x.Type == nil {
		v.errorf("%s: variable %s has nil Type", context, x.Name)
	}
	top := v.scopes[len(v.scopes)-1]
	if top[x] {
		v.errorf("%s: variable %s declared twice", context, x.Name)
	}
	top[x] = true
}

func (v *validator) visible(x *Variable) bool {
	for i := len(v.scopes) - 1; i >= 0; i-- {
		if v.scopes[i][x] {
			return true
		}
	}
	return false
}

// block validates b in a new scope
func (v *validator) block(b *Block, context string) {
	if b == nil {
		v.errorf("%s: nil Block", context)
		return
	}
	v.push()
	v.stmts(b.Stmts, context)
	v.pop()
}

func (v *validator) stmts(stmts []Stmt, context string) {
	for i, s := range stmts {
		v.stmt(s, fmt.Sprintf("%s statement %d", context, i))
	}
}

func (v *validator) stmt(stmt Stmt, context string) {
	switch s := stmt.(type) {
	case *Variable:
		if s.Init == nil {
			v.errorf("%s: Variable %s has nil Init", context, s.Name)
		} else {
			v.expr(s.Init, context)
		}
		v.declare(s, context)

	case *SetValue:
		switch {
		case s.Var == nil:
			v.errorf("%s: SetValue has nil Var", context)
		case !v.visible(s.Var):
			v.errorf("%s: assignment to undeclared variable %s", context, s.Var.Name)
		case !s.Var.Mutable:
			v.errorf("%s: assignment to immutable variable %s", context, s.Var.Name)
		}
		v.expr(s.Value, context)

	case *ReturnStmt:
		// Value can be nil for Unit returns
		if s.Value != nil {
			v.expr(s.Value, context)
		}

	case *IfStmt:
		v.expr(s.Condition, context)
		v.block(s.Then, context+" (then)")
		if s.Else != nil {
			v.block(s.Else, context+" (else)")
		}

	case *WhileStmt:
		v.expr(s.Condition, context)
		v.block(s.Body, context+" (while body)")

	case *DoWhileStmt:
		// the condition sees the body's top-level declarations
		if s.Body == nil {
			v.errorf("%s: DoWhileStmt has nil Body", context)
			return
		}
		v.push()
		v.stmts(s.Body.Stmts, context+" (do-while body)")
		v.expr(s.Condition, context)
		v.pop()

	case *ForInStmt:
		if s.Iterator == nil {
			v.errorf("%s: ForInStmt has nil Iterator", context)
		} else {
			v.expr(s.Iterator, context)
			if s.Iterator.Dispatch == nil {
				v.errorf("%s: ForInStmt iterator has no receiver", context)
			}
		}
		if s.LoopVar == nil {
			v.errorf("%s: ForInStmt has nil LoopVar", context)
			return
		}
		v.push()
		v.declare(s.LoopVar, context)
		v.block(s.Body, context+" (for-in body)")
		v.pop()

	case *ExprStmt:
		v.expr(s.Expr, context)

	case *Block:
		v.block(s, context)

	case *BreakStmt, *ContinueStmt:
		// No validation needed

	default:
		v.errorf("%s: unknown statement type %T", context, stmt)
	}
}

func (v *validator) expr(expr Expr, context string) {
	if expr == nil {
		v.errorf("%s: nil expression", context)
		return
	}
	if expr.ExprType() == nil {
		v.errorf("%s: %T has nil Type", context, expr)
	}

	switch e := expr.(type) {
	case *GetValue:
		if e.Var == nil {
			v.errorf("%s: GetValue has nil Var", context)
		} else if !v.visible(e.Var) {
			v.errorf("%s: read of undeclared variable %s", context, e.Var.Name)
		}

	case *Call:
		if e.Symbol == nil {
			v.errorf("%s: Call has nil Symbol", context)
			return
		}
		name := e.Symbol.FqName
		if (e.Symbol.Dispatch != nil) != (e.Dispatch != nil) {
			v.errorf("%s: call of %s has wrong dispatch receiver", context, name)
		}
		if (e.Symbol.Extension != nil) != (e.Extension != nil) {
			v.errorf("%s: call of %s has wrong extension receiver", context, name)
		}
		if r := e.Receiver(); r != nil {
			v.expr(r, context)
		}
		if !e.Symbol.Variadic && len(e.Args) != len(e.Symbol.Params) {
			v.errorf("%s: call of %s has %d arguments, expected %d", context, name, len(e.Args), len(e.Symbol.Params))
		}
		for i, arg := range e.Args {
			v.expr(arg, fmt.Sprintf("%s (arg %d)", context, i))
		}

	case *BinaryExpr:
		v.expr(e.Left, context)
		v.expr(e.Right, context)

	case *NotExpr:
		v.expr(e.Operand, context)

	case *Const, *StringConst:
		// No validation needed for leaf nodes

	default:
		v.errorf("%s: unknown expression type %T", context, expr)
	}
}
