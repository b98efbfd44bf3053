package ast

import (
	"fmt"
	"strings"

	"github.com/lgfh98/kotlin/internal/lexer"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(prefix + "Program\n")
		for _, fn := range n.Functions {
			printNode(sb, fn, indent+1)
		}

	case *FunctionDecl:
		sb.WriteString(fmt.Sprintf("%sFunction: %s\n", prefix, n.Name))
		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}
		if n.ReturnType != nil {
			sb.WriteString(fmt.Sprintf("%s  Returns: %s\n", prefix, n.ReturnType))
		}
		if n.Body != nil {
			sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
			printNode(sb, n.Body, indent+2)
		}

	case *Param:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Name, n.Type))

	case *Block:
		sb.WriteString(prefix + "Block\n")
		for _, s := range n.Statements {
			printNode(sb, s, indent+1)
		}

	case *VarDecl:
		kw := "Val"
		if n.Mutable {
			kw = "Var"
		}
		if n.Type != nil {
			sb.WriteString(fmt.Sprintf("%s%s: %s: %s\n", prefix, kw, n.Name, n.Type))
		} else {
			sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, kw, n.Name))
		}
		printNode(sb, n.Value, indent+1)

	case *AssignStmt:
		sb.WriteString(prefix + "Assign\n")
		printNode(sb, n.Target, indent+1)
		printNode(sb, n.Value, indent+1)

	case *ReturnStmt:
		sb.WriteString(prefix + "Return\n")
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *IfStmt:
		sb.WriteString(prefix + "If\n")
		printNode(sb, n.Condition, indent+1)
		printNode(sb, n.Then, indent+1)
		if n.Else != nil {
			sb.WriteString(prefix + "Else\n")
			printNode(sb, n.Else, indent+1)
		}

	case *WhileStmt:
		sb.WriteString(prefix + "While\n")
		printNode(sb, n.Condition, indent+1)
		printNode(sb, n.Body, indent+1)

	case *ForInStmt:
		sb.WriteString(fmt.Sprintf("%sFor: %s in %s\n", prefix, n.Variable, Format(n.Iterable)))
		printNode(sb, n.Body, indent+1)

	case *BreakStmt:
		sb.WriteString(prefix + "Break\n")

	case *ContinueStmt:
		sb.WriteString(prefix + "Continue\n")

	case *ExprStmt:
		sb.WriteString(prefix + "ExprStmt\n")
		printNode(sb, n.Expr, indent+1)

	case Expression:
		sb.WriteString(prefix + Format(n) + "\n")

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown node %T>\n", prefix, node))
	}
}

var opText = map[lexer.TokenType]string{
	lexer.PLUS:    "+",
	lexer.MINUS:   "-",
	lexer.STAR:    "*",
	lexer.SLASH:   "/",
	lexer.PERCENT: "%",
	lexer.EQ:      "==",
	lexer.NEQ:     "!=",
	lexer.LT:      "<",
	lexer.GT:      ">",
	lexer.LEQ:     "<=",
	lexer.GEQ:     ">=",
	lexer.AND:     "&&",
	lexer.OR:      "||",
	lexer.NOT:     "!",
}

// OpString returns the source spelling of an operator token
func OpString(tt lexer.TokenType) string {
	if s, ok := opText[tt]; ok {
		return s
	}
	return tt.String()
}

// Format renders an expression back to source form. Nested binary
// expressions are parenthesized so the result is unambiguous.
func Format(expr Expression) string {
	var sb strings.Builder
	formatExpr(&sb, expr, false)
	return sb.String()
}

func formatExpr(sb *strings.Builder, expr Expression, nested bool) {
	switch e := expr.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Identifier:
		sb.WriteString(e.Name)
	case *IntLit:
		sb.WriteString(e.Value)
	case *LongLit:
		sb.WriteString(e.Value + "L")
	case *CharLit:
		sb.WriteString(fmt.Sprintf("%q", rune(e.Value)))
	case *StringLit:
		sb.WriteString(fmt.Sprintf("%q", e.Value))
	case *BoolLit:
		sb.WriteString(fmt.Sprintf("%t", e.Value))
	case *BinaryExpr:
		open(sb, nested)
		formatExpr(sb, e.Left, true)
		sb.WriteString(" " + OpString(e.Op) + " ")
		formatExpr(sb, e.Right, true)
		closeParen(sb, nested)
	case *UnaryExpr:
		sb.WriteString(OpString(e.Op))
		formatExpr(sb, e.Operand, true)
	case *RangeExpr:
		open(sb, nested)
		formatExpr(sb, e.Start, true)
		sb.WriteString("..")
		formatExpr(sb, e.End, true)
		closeParen(sb, nested)
	case *InfixCallExpr:
		open(sb, nested)
		formatExpr(sb, e.Left, true)
		sb.WriteString(" " + e.Name + " ")
		formatExpr(sb, e.Right, true)
		closeParen(sb, nested)
	case *CallExpr:
		sb.WriteString(e.Function)
		formatArgs(sb, e.Args)
	case *MethodCallExpr:
		formatExpr(sb, e.Object, true)
		sb.WriteString("." + e.Method)
		formatArgs(sb, e.Args)
	case *PropertyExpr:
		formatExpr(sb, e.Object, true)
		sb.WriteString("." + e.Property)
	case *IndexExpr:
		formatExpr(sb, e.Object, true)
		sb.WriteString("[")
		formatExpr(sb, e.Index, false)
		sb.WriteString("]")
	default:
		sb.WriteString(fmt.Sprintf("<%T>", expr))
	}
}

func formatArgs(sb *strings.Builder, args []Expression) {
	sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		formatExpr(sb, a, false)
	}
	sb.WriteString(")")
}

func open(sb *strings.Builder, nested bool) {
	if nested {
		sb.WriteString("(")
	}
}

func closeParen(sb *strings.Builder, nested bool) {
	if nested {
		sb.WriteString(")")
	}
}
