package linter

import (
	"strings"
	"unicode"

	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/lexer"
)

// Linter performs style checks on an AST program, including checks for
// for-loops written in a shape the loop lowering does not recognize.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	prog *ast.Program
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given program and returns diagnostics.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog: prog,
		diag: diagnostic.New(),
	}

	l.lintFunctions()

	return l.diag
}

// lintFunctions checks all top-level functions.
func (l *Linter) lintFunctions() {
	for _, fn := range l.prog.Functions {
		l.checkEmptyFunctionBody(fn.Name, fn.Body, fn.Line, fn.Column)
		l.checkFunctionNaming(fn.Name, fn.Line, fn.Column)

		if fn.Body != nil {
			usedNames := l.collectUsedNames(fn.Body.Statements)
			l.checkUnusedParams(fn.Name, fn.Params, usedNames)
			l.checkUnusedVariables(fn.Body.Statements, usedNames)
			l.checkMutableNeverReassigned(fn.Body.Statements, l.collectAssignedNames(fn.Body.Statements))
			l.checkLoops(fn.Body.Statements)
		}
	}
}

// --- Lint rules ---

// checkEmptyFunctionBody warns if a function body has no statements.
func (l *Linter) checkEmptyFunctionBody(name string, body *ast.Block, line, col int) {
	if body == nil || len(body.Statements) == 0 {
		l.diag.Warningf(line, col, "function '%s' has an empty body", name)
	}
}

// checkFunctionNaming warns if a function name is not camelCase.
func (l *Linter) checkFunctionNaming(name string, line, col int) {
	if !isCamelCase(name) {
		l.diag.Warningf(line, col,
			"function '%s' should use camelCase naming", name)
	}
}

// checkUnusedParams warns about function parameters that are never read in the body.
func (l *Linter) checkUnusedParams(scopeName string, params []*ast.Param, usedNames map[string]bool) {
	for _, p := range params {
		if !usedNames[p.Name] {
			l.diag.Warningf(p.Line, p.Column,
				"parameter '%s' in '%s' is never used", p.Name, scopeName)
		}
	}
}

// checkUnusedVariables warns about local variables that are never read.
func (l *Linter) checkUnusedVariables(stmts []ast.Statement, usedNames map[string]bool) {
	forEachStatement(stmts, func(stmt ast.Statement) {
		if decl, ok := stmt.(*ast.VarDecl); ok && !usedNames[decl.Name] {
			l.diag.Warningf(decl.Line, decl.Column,
				"variable '%s' is declared but never used", decl.Name)
		}
	})
}

// checkMutableNeverReassigned warns about var declarations that are only
// assigned by their initializer.
func (l *Linter) checkMutableNeverReassigned(stmts []ast.Statement, assignedNames map[string]bool) {
	forEachStatement(stmts, func(stmt ast.Statement) {
		if decl, ok := stmt.(*ast.VarDecl); ok && decl.Mutable && !assignedNames[decl.Name] {
			l.diag.WarningWithHint(decl.Line, decl.Column,
				"variable '"+decl.Name+"' is declared with var but never reassigned",
				"declare it with val")
		}
	})
}

// checkLoops warns about for-loops whose iterable has a clearer form that
// the loop lowering turns into a counted loop.
func (l *Linter) checkLoops(stmts []ast.Statement) {
	forEachStatement(stmts, func(stmt ast.Statement) {
		loop, ok := stmt.(*ast.ForInStmt)
		if !ok {
			return
		}
		l.checkLoopVariableType(loop)

		switch it := loop.Iterable.(type) {
		case *ast.RangeExpr:
			// a..b - 1
			if end, ok := it.End.(*ast.BinaryExpr); ok && end.Op == lexer.MINUS && isOne(end.Right) {
				l.diag.WarningWithHint(it.Line, it.Column,
					"range '"+ast.Format(it)+"' excludes its end by subtraction",
					"use '"+ast.Format(it.Start)+" until "+ast.Format(end.Left)+"'")
			}
		case *ast.InfixCallExpr:
			// 0 until a.size
			size, ok := it.Right.(*ast.PropertyExpr)
			if it.Name == "until" && isZero(it.Left) && ok && size.Property == "size" {
				l.diag.WarningWithHint(it.Line, it.Column,
					"range '"+ast.Format(it)+"' spells out the indices of '"+ast.Format(size.Object)+"'",
					"use '"+ast.Format(size.Object)+".indices'")
			}
		case *ast.MethodCallExpr:
			// (a..b).reversed()
			r, ok := it.Object.(*ast.RangeExpr)
			if it.Method == "reversed" && len(it.Args) == 0 && ok {
				l.diag.WarningWithHint(it.Line, it.Column,
					"reversed range literal '"+ast.Format(it)+"'",
					"use '"+ast.Format(r.End)+" downTo "+ast.Format(r.Start)+"'")
			}
		}
	})
}

// checkLoopVariableType warns when the loop variable is annotated with a
// type wider than any progression element, which keeps the loop generic.
func (l *Linter) checkLoopVariableType(loop *ast.ForInStmt) {
	if loop.VarType != nil && loop.VarType.Name == "Any" {
		l.diag.WarningWithHint(loop.Line, loop.Column,
			"loop variable '"+loop.Variable+"' is annotated as Any, so the loop cannot be lowered",
			"drop the annotation")
	}
}

func isOne(e ast.Expression) bool {
	lit, ok := e.(*ast.IntLit)
	return ok && lit.Value == "1"
}

func isZero(e ast.Expression) bool {
	lit, ok := e.(*ast.IntLit)
	return ok && lit.Value == "0"
}

// forEachStatement calls fn for every statement in stmts and in the blocks
// nested below them, parents before children.
func forEachStatement(stmts []ast.Statement, fn func(ast.Statement)) {
	for _, stmt := range stmts {
		fn(stmt)
		switch s := stmt.(type) {
		case *ast.IfStmt:
			if s.Then != nil {
				forEachStatement(s.Then.Statements, fn)
			}
			if s.Else != nil {
				forEachStatement([]ast.Statement{s.Else}, fn)
			}
		case *ast.WhileStmt:
			if s.Body != nil {
				forEachStatement(s.Body.Statements, fn)
			}
		case *ast.ForInStmt:
			if s.Body != nil {
				forEachStatement(s.Body.Statements, fn)
			}
		case *ast.Block:
			forEachStatement(s.Statements, fn)
		}
	}
}

// --- Name collection helpers ---

// collectUsedNames walks all expressions in a slice of statements and collects
// all identifier names that are read (referenced). This is used to detect
// unused variables and parameters.
func (l *Linter) collectUsedNames(stmts []ast.Statement) map[string]bool {
	used := make(map[string]bool)
	for _, stmt := range stmts {
		l.collectUsedNamesFromStmt(stmt, used)
	}
	return used
}

func (l *Linter) collectUsedNamesFromStmt(stmt ast.Statement, used map[string]bool) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		// The initializer expression reads names, but the declared name is not a read
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.AssignStmt:
		// Writing a[i] reads a and i
		if ie, ok := s.Target.(*ast.IndexExpr); ok {
			l.collectUsedNamesFromExpr(ie.Object, used)
			l.collectUsedNamesFromExpr(ie.Index, used)
		}
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.ReturnStmt:
		if s.Value != nil {
			l.collectUsedNamesFromExpr(s.Value, used)
		}
	case *ast.IfStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
		if s.Then != nil {
			l.collectUsedNamesFromStmt(s.Then, used)
		}
		if s.Else != nil {
			l.collectUsedNamesFromStmt(s.Else, used)
		}
	case *ast.WhileStmt:
		l.collectUsedNamesFromExpr(s.Condition, used)
		if s.Body != nil {
			l.collectUsedNamesFromStmt(s.Body, used)
		}
	case *ast.ForInStmt:
		l.collectUsedNamesFromExpr(s.Iterable, used)
		if s.Body != nil {
			l.collectUsedNamesFromStmt(s.Body, used)
		}
	case *ast.ExprStmt:
		l.collectUsedNamesFromExpr(s.Expr, used)
	case *ast.Block:
		for _, inner := range s.Statements {
			l.collectUsedNamesFromStmt(inner, used)
		}
	}
}

func (l *Linter) collectUsedNamesFromExpr(expr ast.Expression, used map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Name] = true
	case *ast.BinaryExpr:
		l.collectUsedNamesFromExpr(e.Left, used)
		l.collectUsedNamesFromExpr(e.Right, used)
	case *ast.UnaryExpr:
		l.collectUsedNamesFromExpr(e.Operand, used)
	case *ast.RangeExpr:
		l.collectUsedNamesFromExpr(e.Start, used)
		l.collectUsedNamesFromExpr(e.End, used)
	case *ast.InfixCallExpr:
		l.collectUsedNamesFromExpr(e.Left, used)
		l.collectUsedNamesFromExpr(e.Right, used)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			l.collectUsedNamesFromExpr(arg, used)
		}
	case *ast.MethodCallExpr:
		l.collectUsedNamesFromExpr(e.Object, used)
		for _, arg := range e.Args {
			l.collectUsedNamesFromExpr(arg, used)
		}
	case *ast.PropertyExpr:
		l.collectUsedNamesFromExpr(e.Object, used)
	case *ast.IndexExpr:
		l.collectUsedNamesFromExpr(e.Object, used)
		l.collectUsedNamesFromExpr(e.Index, used)
	}
}

// collectAssignedNames walks statements and collects names that appear as
// assignment targets (not declaration initializers).
func (l *Linter) collectAssignedNames(stmts []ast.Statement) map[string]bool {
	assigned := make(map[string]bool)
	forEachStatement(stmts, func(stmt ast.Statement) {
		if s, ok := stmt.(*ast.AssignStmt); ok {
			if ident, ok := s.Target.(*ast.Identifier); ok {
				assigned[ident.Name] = true
			}
		}
	})
	return assigned
}

// --- Naming convention helpers ---

// isCamelCase returns true if the name starts with a lowercase letter and
// contains no underscores.
func isCamelCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsLower(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
