package formatter

import (
	"fmt"
	"strings"

	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/lexer"
)

// Format takes an AST Program and returns canonical Kotlin source code.
// Functions keep their source order and are separated by one blank line.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emit(s string) {
	f.sb.WriteString(s)
}

func (f *formatter) emitf(format string, args ...any) {
	f.sb.WriteString(fmt.Sprintf(format, args...))
}

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

// --- program-level ---

func (f *formatter) formatProgram(prog *ast.Program) {
	for i, fn := range prog.Functions {
		if i > 0 {
			f.emitLine("")
		}
		f.formatFunctionDecl(fn)
	}
}

func (f *formatter) formatFunctionDecl(fn *ast.FunctionDecl) {
	f.emit(f.indentStr())
	f.emitf("fun %s(", fn.Name)
	for i, p := range fn.Params {
		if i > 0 {
			f.emit(", ")
		}
		f.emitf("%s: %s", p.Name, p.Type)
	}
	f.emit(")")
	if fn.ReturnType != nil {
		f.emitf(": %s", fn.ReturnType)
	}

	if ret, ok := expressionBody(fn.Body); ok {
		f.emitf(" = %s\n", f.formatExpr(ret.Value))
		return
	}

	f.emit(" {\n")
	f.incIndent()
	f.formatBlock(fn.Body)
	f.decIndent()
	f.emitLine("}")
}

// expressionBody reports whether body was written as `= expr`. The parser
// desugars that form into a block holding one return at the `=` position.
func expressionBody(body *ast.Block) (*ast.ReturnStmt, bool) {
	if body == nil || len(body.Statements) != 1 {
		return nil, false
	}
	ret, ok := body.Statements[0].(*ast.ReturnStmt)
	if !ok || ret.Value == nil {
		return nil, false
	}
	line, col := ret.Pos()
	return ret, line == body.Line && col == body.Column
}

// --- statements ---

func (f *formatter) formatBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		kw := "val"
		if stmt.Mutable {
			kw = "var"
		}
		if stmt.Type != nil {
			f.emitLinef("%s %s: %s = %s", kw, stmt.Name, stmt.Type, f.formatExpr(stmt.Value))
		} else {
			f.emitLinef("%s %s = %s", kw, stmt.Name, f.formatExpr(stmt.Value))
		}

	case *ast.AssignStmt:
		f.emitLinef("%s = %s", f.formatExpr(stmt.Target), f.formatExpr(stmt.Value))

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			f.emitLinef("return %s", f.formatExpr(stmt.Value))
		} else {
			f.emitLine("return")
		}

	case *ast.IfStmt:
		f.formatIfStmt(stmt, false)

	case *ast.WhileStmt:
		f.emitLinef("while (%s) {", f.formatExpr(stmt.Condition))
		f.formatBody(stmt.Body)

	case *ast.ForInStmt:
		variable := stmt.Variable
		if stmt.VarType != nil {
			variable += ": " + stmt.VarType.String()
		}
		f.emitLinef("for (%s in %s) {", variable, f.formatExpr(stmt.Iterable))
		f.formatBody(stmt.Body)

	case *ast.BreakStmt:
		f.emitLine("break")

	case *ast.ContinueStmt:
		f.emitLine("continue")

	case *ast.ExprStmt:
		f.emitLine(f.formatExpr(stmt.Expr))

	case *ast.Block:
		f.emitLine("{")
		f.formatBody(stmt)
	}
}

// formatBody writes an indented block and its closing brace
func (f *formatter) formatBody(b *ast.Block) {
	f.incIndent()
	f.formatBlock(b)
	f.decIndent()
	f.emitLine("}")
}

func (f *formatter) formatIfStmt(stmt *ast.IfStmt, isElseIf bool) {
	if isElseIf {
		f.emitf(" else if (%s) {\n", f.formatExpr(stmt.Condition))
	} else {
		f.emitLinef("if (%s) {", f.formatExpr(stmt.Condition))
	}
	f.incIndent()
	f.formatBlock(stmt.Then)
	f.decIndent()
	if stmt.Else != nil {
		if elseIf, ok := stmt.Else.(*ast.IfStmt); ok {
			f.emit(f.indentStr() + "}")
			f.formatIfStmt(elseIf, true)
		} else if elseBlock, ok := stmt.Else.(*ast.Block); ok {
			f.emitLine("} else {")
			f.formatBody(elseBlock)
		}
	} else {
		f.emitLine("}")
	}
}

// --- expressions ---

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, 0)
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	switch expr := e.(type) {
	case *ast.BinaryExpr:
		prec := precedence(expr.Op)
		left := f.formatExprPrec(expr.Left, prec)
		right := f.formatExprPrec(expr.Right, prec+1) // +1 for left-associativity
		return wrap(fmt.Sprintf("%s %s %s", left, ast.OpString(expr.Op), right), prec, parentPrec)

	case *ast.RangeExpr:
		left := f.formatExprPrec(expr.Start, precRange)
		right := f.formatExprPrec(expr.End, precRange+1)
		return wrap(left+".."+right, precRange, parentPrec)

	case *ast.InfixCallExpr:
		left := f.formatExprPrec(expr.Left, precInfix)
		right := f.formatExprPrec(expr.Right, precInfix+1)
		return wrap(fmt.Sprintf("%s %s %s", left, expr.Name, right), precInfix, parentPrec)

	case *ast.UnaryExpr:
		operand := f.formatExprPrec(expr.Operand, precUnary)
		if _, nested := expr.Operand.(*ast.UnaryExpr); nested {
			operand = "(" + operand + ")"
		}
		return wrap(ast.OpString(expr.Op)+operand, precUnary, parentPrec)

	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", expr.Function, f.formatArgs(expr.Args))

	case *ast.MethodCallExpr:
		obj := f.formatExprPrec(expr.Object, precPostfix)
		return fmt.Sprintf("%s.%s(%s)", obj, expr.Method, f.formatArgs(expr.Args))

	case *ast.PropertyExpr:
		obj := f.formatExprPrec(expr.Object, precPostfix)
		return fmt.Sprintf("%s.%s", obj, expr.Property)

	case *ast.IndexExpr:
		obj := f.formatExprPrec(expr.Object, precPostfix)
		idx := f.formatExpr(expr.Index)
		return fmt.Sprintf("%s[%s]", obj, idx)

	case *ast.Identifier:
		return expr.Name

	case *ast.IntLit:
		return expr.Value

	case *ast.LongLit:
		return expr.Value + "L"

	case *ast.CharLit:
		return "'" + escape(string(expr.Value), '\'') + "'"

	case *ast.StringLit:
		return `"` + escape(expr.Value, '"') + `"`

	case *ast.BoolLit:
		if expr.Value {
			return "true"
		}
		return "false"

	default:
		return "<unknown>"
	}
}

func (f *formatter) formatArgs(args []ast.Expression) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = f.formatExpr(arg)
	}
	return strings.Join(parts, ", ")
}

func wrap(s string, prec, parentPrec int) string {
	if prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}

// escape re-encodes decoded literal contents using the escapes the lexer
// accepts. quote is the delimiter of the literal being written.
func escape(s string, quote byte) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case '$':
			if quote == '"' {
				sb.WriteString(`\$`)
			} else {
				sb.WriteByte(c)
			}
		case quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// --- operator precedence ---

// Precedence levels (higher binds tighter), matching the parser:
//
//	1: ||
//	2: &&
//	3: == !=
//	4: < > <= >=
//	5: downTo until
//	6: ..
//	7: + -
//	8: * / %
//	9: unary - !
//	10: postfix . [] ()
const (
	precInfix   = 5
	precRange   = 6
	precUnary   = 9
	precPostfix = 10
)

func precedence(op lexer.TokenType) int {
	switch op {
	case lexer.OR:
		return 1
	case lexer.AND:
		return 2
	case lexer.EQ, lexer.NEQ:
		return 3
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return 4
	case lexer.PLUS, lexer.MINUS:
		return 7
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return 8
	default:
		return 0
	}
}
