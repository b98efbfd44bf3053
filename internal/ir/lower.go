package ir

import (
	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/checker"
	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// scope maps source names to the variables they currently denote
type scope struct {
	parent *scope
	vars   map[string]*Variable
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*Variable)}
}

func (s *scope) resolve(name string) *Variable {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return nil
}

// lowerer transforms an AST + CheckResult into IR nodes.
type lowerer struct {
	result *checker.CheckResult
	scope  *scope
}

// Lower transforms a checked program into an IR Module. The program must
// have passed checking without errors.
func Lower(prog *ast.Program, result *checker.CheckResult) *Module {
	l := &lowerer{result: result}

	mod := &Module{}
	for _, f := range prog.Functions {
		mod.Functions = append(mod.Functions, l.lowerFunction(f))
	}
	return mod
}

func posOf(n ast.Node) Pos {
	line, col := n.Pos()
	return Pos{Line: line, Column: col}
}

// --- Top-level lowering ---

func (l *lowerer) lowerFunction(f *ast.FunctionDecl) *Function {
	info := l.result.Functions[f.Name]
	fn := &Function{
		Name:       f.Name,
		Symbol:     info.Symbol,
		ReturnType: info.Symbol.Return,
		Pos:        posOf(f),
	}

	l.scope = newScope(nil)
	for i, p := range f.Params {
		v := &Variable{Name: p.Name, Type: info.Symbol.Params[i], Pos: posOf(p)}
		l.scope.vars[p.Name] = v
		fn.Params = append(fn.Params, v)
	}

	fn.Body = l.lowerBlock(f.Body)
	l.scope = nil
	return fn
}

// --- Statement lowering ---

func (l *lowerer) lowerBlock(b *ast.Block) *Block {
	l.scope = newScope(l.scope)
	defer func() { l.scope = l.scope.parent }()

	block := &Block{Pos: posOf(b)}
	for _, s := range b.Statements {
		block.Stmts = append(block.Stmts, l.lowerStmt(s))
	}
	return block
}

func (l *lowerer) lowerStmt(s ast.Statement) Stmt {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		v := &Variable{
			Name:    stmt.Name,
			Type:    l.result.VarTypes[stmt],
			Mutable: stmt.Mutable,
			Init:    l.lowerExpr(stmt.Value),
			Pos:     posOf(stmt),
		}
		l.scope.vars[stmt.Name] = v
		return v

	case *ast.AssignStmt:
		switch target := stmt.Target.(type) {
		case *ast.Identifier:
			return &SetValue{
				Var:   l.scope.resolve(target.Name),
				Value: l.lowerExpr(stmt.Value),
				Pos:   posOf(stmt),
			}
		case *ast.IndexExpr:
			sym := l.result.Symbols[stmt]
			call := &Call{
				Symbol:   sym,
				Dispatch: l.lowerExpr(target.Object),
				Args:     []Expr{l.lowerExpr(target.Index), l.lowerExpr(stmt.Value)},
				Type:     sym.Return,
				Pos:      posOf(stmt),
			}
			return &ExprStmt{Expr: call, Pos: posOf(stmt)}
		}

	case *ast.ReturnStmt:
		ret := &ReturnStmt{Pos: posOf(stmt)}
		if stmt.Value != nil {
			ret.Value = l.lowerExpr(stmt.Value)
		}
		return ret

	case *ast.IfStmt:
		ifStmt := &IfStmt{
			Condition: l.lowerExpr(stmt.Condition),
			Then:      l.lowerBlock(stmt.Then),
			Pos:       posOf(stmt),
		}
		switch els := stmt.Else.(type) {
		case *ast.Block:
			ifStmt.Else = l.lowerBlock(els)
		case *ast.IfStmt:
			ifStmt.Else = &Block{Stmts: []Stmt{l.lowerStmt(els)}, Pos: posOf(els)}
		}
		return ifStmt

	case *ast.WhileStmt:
		return &WhileStmt{
			Condition: l.lowerExpr(stmt.Condition),
			Body:      l.lowerBlock(stmt.Body),
			Pos:       posOf(stmt),
		}

	case *ast.ForInStmt:
		return l.lowerForIn(stmt)

	case *ast.BreakStmt:
		return &BreakStmt{Pos: posOf(stmt)}

	case *ast.ContinueStmt:
		return &ContinueStmt{Pos: posOf(stmt)}

	case *ast.ExprStmt:
		return &ExprStmt{Expr: l.lowerExpr(stmt.Expr), Pos: posOf(stmt)}

	case *ast.Block:
		return l.lowerBlock(stmt)
	}
	return nil
}

// lowerForIn makes the implicit iterator() call explicit. The iterable is
// evaluated in the enclosing scope; the loop variable is visible only in
// the body.
func (l *lowerer) lowerForIn(stmt *ast.ForInStmt) Stmt {
	pos := posOf(stmt)
	sym := l.result.Symbols[stmt]
	iterator := &Call{
		Symbol:   sym,
		Dispatch: l.lowerExpr(stmt.Iterable),
		Type:     sym.Return,
		Pos:      posOf(stmt.Iterable),
	}

	loopVar := &Variable{Name: stmt.Variable, Type: l.result.LoopVars[stmt], Pos: pos}
	l.scope = newScope(l.scope)
	l.scope.vars[stmt.Variable] = loopVar
	body := l.lowerBlock(stmt.Body)
	l.scope = l.scope.parent

	return &ForInStmt{LoopVar: loopVar, Iterator: iterator, Body: body, Pos: pos}
}

// --- Expression lowering ---

func (l *lowerer) lowerExpr(e ast.Expression) Expr {
	pos := posOf(e)
	if v, ok := l.result.Constants[e]; ok {
		return &Const{Value: types.Wrap(l.result.ExprTypes[e], v), Type: l.result.ExprTypes[e], Pos: pos}
	}

	switch expr := e.(type) {
	case *ast.BoolLit:
		c := &Const{Type: types.TypeBoolean, Pos: pos}
		if expr.Value {
			c.Value = 1
		}
		return c

	case *ast.StringLit:
		return &StringConst{Value: expr.Value, Pos: pos}

	case *ast.Identifier:
		return &GetValue{Var: l.scope.resolve(expr.Name), Pos: pos}

	case *ast.BinaryExpr:
		return &BinaryExpr{
			Left:  l.lowerExpr(expr.Left),
			Op:    expr.Op,
			Right: l.lowerExpr(expr.Right),
			Type:  l.result.ExprTypes[e],
			Pos:   pos,
		}

	case *ast.UnaryExpr:
		operand := l.lowerExpr(expr.Operand)
		if expr.Op == lexer.NOT {
			return &NotExpr{Operand: operand, Pos: pos}
		}
		return l.call(e, operand)

	case *ast.RangeExpr:
		return l.call(e, l.lowerExpr(expr.Start), l.lowerExpr(expr.End))

	case *ast.InfixCallExpr:
		return l.call(e, l.lowerExpr(expr.Left), l.lowerExpr(expr.Right))

	case *ast.CallExpr:
		return l.call(e, nil, l.lowerExprs(expr.Args)...)

	case *ast.MethodCallExpr:
		return l.call(e, l.lowerExpr(expr.Object), l.lowerExprs(expr.Args)...)

	case *ast.PropertyExpr:
		return l.call(e, l.lowerExpr(expr.Object))

	case *ast.IndexExpr:
		return l.call(e, l.lowerExpr(expr.Object), l.lowerExpr(expr.Index))
	}
	return nil
}

func (l *lowerer) lowerExprs(exprs []ast.Expression) []Expr {
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, l.lowerExpr(e))
	}
	return out
}

// call builds the Call the checker resolved for e, typed as the checker
// typed e.
func (l *lowerer) call(e ast.Expression, receiver Expr, args ...Expr) *Call {
	sym := l.result.Symbols[e]
	call := &Call{Symbol: sym, Args: args, Type: l.result.ExprTypes[e], Pos: posOf(e)}
	switch {
	case sym.Dispatch != nil:
		call.Dispatch = receiver
	case sym.Extension != nil:
		call.Extension = receiver
	}
	return call
}
