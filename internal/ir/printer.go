package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/types"
)

// Print renders a module as Kotlin-like source text.
func Print(mod *Module) string {
	p := &printer{}
	for i, fn := range mod.Functions {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.function(fn)
	}
	return p.sb.String()
}

// PrintFunction renders a single function.
func PrintFunction(fn *Function) string {
	p := &printer{}
	p.function(fn)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.sb.WriteString(strings.Repeat("    ", p.indent))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *printer) function(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, v := range fn.Params {
		params[i] = v.Name + ": " + v.Type.Name()
	}
	p.line("fun %s(%s): %s {", fn.Name, strings.Join(params, ", "), fn.ReturnType)
	p.stmts(fn.Body.Stmts)
	p.line("}")
}

func (p *printer) stmts(stmts []Stmt) {
	p.indent++
	for _, s := range stmts {
		p.stmt(s)
	}
	p.indent--
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Variable:
		kw := "val"
		if s.Mutable {
			kw = "var"
		}
		p.line("%s %s: %s = %s", kw, s.Name, s.Type, FormatExpr(s.Init))
	case *SetValue:
		p.line("%s = %s", s.Var.Name, FormatExpr(s.Value))
	case *ExprStmt:
		p.line("%s", FormatExpr(s.Expr))
	case *ReturnStmt:
		if s.Value == nil {
			p.line("return")
		} else {
			p.line("return %s", FormatExpr(s.Value))
		}
	case *IfStmt:
		p.line("if (%s) {", FormatExpr(s.Condition))
		p.stmts(s.Then.Stmts)
		if s.Else != nil {
			p.line("} else {")
			p.stmts(s.Else.Stmts)
		}
		p.line("}")
	case *WhileStmt:
		p.line("while (%s) {", FormatExpr(s.Condition))
		p.stmts(s.Body.Stmts)
		p.line("}")
	case *DoWhileStmt:
		p.line("do {")
		p.stmts(s.Body.Stmts)
		p.line("} while (%s)", FormatExpr(s.Condition))
	case *ForInStmt:
		p.line("for (%s: %s in %s) {", s.LoopVar.Name, s.LoopVar.Type, FormatExpr(s.Iterable()))
		p.stmts(s.Body.Stmts)
		p.line("}")
	case *BreakStmt:
		p.line("break")
	case *ContinueStmt:
		p.line("continue")
	case *Block:
		p.line("{")
		p.stmts(s.Stmts)
		p.line("}")
	default:
		p.line("<unknown %T>", stmt)
	}
}

// FormatExpr renders an expression as source text. Nested operators are
// parenthesized.
func FormatExpr(e Expr) string {
	switch expr := e.(type) {
	case nil:
		return "<nil>"
	case *Const:
		return formatConst(expr)
	case *StringConst:
		return strconv.Quote(expr.Value)
	case *GetValue:
		return expr.Var.Name
	case *NotExpr:
		return "!" + operand(expr.Operand)
	case *BinaryExpr:
		return operand(expr.Left) + " " + ast.OpString(expr.Op) + " " + operand(expr.Right)
	case *Call:
		return formatCall(expr)
	}
	return fmt.Sprintf("<unknown %T>", e)
}

func formatConst(c *Const) string {
	switch c.Type.Kind {
	case types.Boolean:
		return strconv.FormatBool(c.Value != 0)
	case types.Char:
		return strconv.QuoteRuneToASCII(rune(c.Value))
	case types.Long:
		return strconv.FormatInt(c.Value, 10) + "L"
	}
	return strconv.FormatInt(c.Value, 10)
}

// operand formats e for use inside a larger operator expression
func operand(e Expr) string {
	s := FormatExpr(e)
	switch expr := e.(type) {
	case *BinaryExpr:
		return "(" + s + ")"
	case *Const:
		if expr.Value < 0 {
			return "(" + s + ")"
		}
	case *Call:
		if isOperatorCall(expr) {
			return "(" + s + ")"
		}
	}
	return s
}

func isOperatorCall(c *Call) bool {
	return c.Symbol.Infix || c.Symbol.Name() == "rangeTo"
}

func formatCall(c *Call) string {
	name := c.Symbol.Name()
	recv := c.Receiver()
	if recv == nil {
		return name + "(" + formatArgs(c.Args) + ")"
	}

	r := operand(recv)
	switch {
	case name == "rangeTo":
		return r + ".." + operand(c.Args[0])
	case c.Symbol.Infix:
		return r + " " + name + " " + operand(c.Args[0])
	case name == "unaryMinus":
		return "-" + r
	case name == "get" && len(c.Args) == 1:
		return r + "[" + FormatExpr(c.Args[0]) + "]"
	case name == "set" && len(c.Args) == 2:
		return r + "[" + FormatExpr(c.Args[0]) + "] = " + FormatExpr(c.Args[1])
	case c.Symbol.IsProperty():
		return r + "." + name
	}
	return r + "." + name + "(" + formatArgs(c.Args) + ")"
}

func formatArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatExpr(a)
	}
	return strings.Join(parts, ", ")
}
