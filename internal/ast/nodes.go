package ast

import "github.com/lgfh98/kotlin/internal/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Program represents a single source file
type Program struct {
	Functions []*FunctionDecl
}

func (p *Program) Pos() (int, int) {
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return 0, 0
}

// FunctionDecl represents a top-level function declaration
type FunctionDecl struct {
	Name       string
	Params     []*Param
	ReturnType *TypeRef // nil means Unit
	Body       *Block
	Line       int
	Column     int
}

func (f *FunctionDecl) Pos() (int, int) { return f.Line, f.Column }

// Param represents a function parameter
type Param struct {
	Name   string
	Type   *TypeRef
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }

// TypeRef represents a type reference
type TypeRef struct {
	Name     string
	TypeArgs []*TypeRef // e.g., []*TypeRef{{Name:"Int"}} for Array<Int>
	Line     int
	Column   int
}

func (t *TypeRef) Pos() (int, int) { return t.Line, t.Column }

// String renders the type reference as written in source
func (t *TypeRef) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	s := t.Name + "<"
	for i, a := range t.TypeArgs {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// --- Statements ---

// Block represents a braced statement list
type Block struct {
	Statements []Statement
	Line       int
	Column     int
}

func (b *Block) Pos() (int, int) { return b.Line, b.Column }
func (*Block) stmtNode()          {}

// VarDecl represents val/var declarations
type VarDecl struct {
	Name    string
	Mutable bool     // var
	Type    *TypeRef // nil when inferred
	Value   Expression
	Line    int
	Column  int
}

func (s *VarDecl) Pos() (int, int) { return s.Line, s.Column }
func (*VarDecl) stmtNode()          {}

// AssignStmt represents `target = value`
type AssignStmt struct {
	Target Expression // Identifier or IndexExpr
	Value  Expression
	Line   int
	Column int
}

func (s *AssignStmt) Pos() (int, int) { return s.Line, s.Column }
func (*AssignStmt) stmtNode()          {}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Value  Expression // nil for bare return
	Line   int
	Column int
}

func (s *ReturnStmt) Pos() (int, int) { return s.Line, s.Column }
func (*ReturnStmt) stmtNode()          {}

// IfStmt represents an if/else statement
type IfStmt struct {
	Condition Expression
	Then      *Block
	Else      Statement // *Block or *IfStmt, nil if absent
	Line      int
	Column    int
}

func (s *IfStmt) Pos() (int, int) { return s.Line, s.Column }
func (*IfStmt) stmtNode()          {}

// WhileStmt represents a while loop
type WhileStmt struct {
	Condition Expression
	Body      *Block
	Line      int
	Column    int
}

func (s *WhileStmt) Pos() (int, int) { return s.Line, s.Column }
func (*WhileStmt) stmtNode()          {}

// ForInStmt represents `for (x in iterable) { ... }`
type ForInStmt struct {
	Variable string
	VarType  *TypeRef // optional annotation
	Iterable Expression
	Body     *Block
	Line     int
	Column   int
}

func (s *ForInStmt) Pos() (int, int) { return s.Line, s.Column }
func (*ForInStmt) stmtNode()          {}

// BreakStmt represents a break statement
type BreakStmt struct {
	Line   int
	Column int
}

func (s *BreakStmt) Pos() (int, int) { return s.Line, s.Column }
func (*BreakStmt) stmtNode()          {}

// ContinueStmt represents a continue statement
type ContinueStmt struct {
	Line   int
	Column int
}

func (s *ContinueStmt) Pos() (int, int) { return s.Line, s.Column }
func (*ContinueStmt) stmtNode()          {}

// ExprStmt wraps an expression used as a statement
type ExprStmt struct {
	Expr   Expression
	Line   int
	Column int
}

func (s *ExprStmt) Pos() (int, int) { return s.Line, s.Column }
func (*ExprStmt) stmtNode()          {}

// --- Expressions ---

// Identifier represents a name reference
type Identifier struct {
	Name   string
	Line   int
	Column int
}

func (e *Identifier) Pos() (int, int) { return e.Line, e.Column }
func (*Identifier) exprNode()          {}

// IntLit represents an Int literal; Value holds the decimal digits
type IntLit struct {
	Value  string
	Line   int
	Column int
}

func (e *IntLit) Pos() (int, int) { return e.Line, e.Column }
func (*IntLit) exprNode()          {}

// LongLit represents a Long literal (digits without the L suffix)
type LongLit struct {
	Value  string
	Line   int
	Column int
}

func (e *LongLit) Pos() (int, int) { return e.Line, e.Column }
func (*LongLit) exprNode()          {}

// CharLit represents a Char literal
type CharLit struct {
	Value  byte
	Line   int
	Column int
}

func (e *CharLit) Pos() (int, int) { return e.Line, e.Column }
func (*CharLit) exprNode()          {}

// StringLit represents a string literal (decoded contents)
type StringLit struct {
	Value  string
	Line   int
	Column int
}

func (e *StringLit) Pos() (int, int) { return e.Line, e.Column }
func (*StringLit) exprNode()          {}

// BoolLit represents true/false
type BoolLit struct {
	Value  bool
	Line   int
	Column int
}

func (e *BoolLit) Pos() (int, int) { return e.Line, e.Column }
func (*BoolLit) exprNode()          {}

// BinaryExpr represents arithmetic, comparison and logical operators
type BinaryExpr struct {
	Left   Expression
	Op     lexer.TokenType
	Right  Expression
	Line   int
	Column int
}

func (e *BinaryExpr) Pos() (int, int) { return e.Line, e.Column }
func (*BinaryExpr) exprNode()          {}

// UnaryExpr represents `-x` and `!x`
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	Line    int
	Column  int
}

func (e *UnaryExpr) Pos() (int, int) { return e.Line, e.Column }
func (*UnaryExpr) exprNode()          {}

// RangeExpr represents `start..end` (a rangeTo call)
type RangeExpr struct {
	Start  Expression
	End    Expression
	Line   int
	Column int
}

func (e *RangeExpr) Pos() (int, int) { return e.Line, e.Column }
func (*RangeExpr) exprNode()          {}

// InfixCallExpr represents a named infix call such as `a downTo b`
type InfixCallExpr struct {
	Left   Expression
	Name   string
	Right  Expression
	Line   int
	Column int
}

func (e *InfixCallExpr) Pos() (int, int) { return e.Line, e.Column }
func (*InfixCallExpr) exprNode()          {}

// CallExpr represents a call of a top-level function
type CallExpr struct {
	Function string
	Args     []Expression
	Line     int
	Column   int
}

func (e *CallExpr) Pos() (int, int) { return e.Line, e.Column }
func (*CallExpr) exprNode()          {}

// MethodCallExpr represents `receiver.method(args)`
type MethodCallExpr struct {
	Object Expression
	Method string
	Args   []Expression
	Line   int
	Column int
}

func (e *MethodCallExpr) Pos() (int, int) { return e.Line, e.Column }
func (*MethodCallExpr) exprNode()          {}

// PropertyExpr represents `receiver.property`
type PropertyExpr struct {
	Object   Expression
	Property string
	Line     int
	Column   int
}

func (e *PropertyExpr) Pos() (int, int) { return e.Line, e.Column }
func (*PropertyExpr) exprNode()          {}

// IndexExpr represents `array[index]`
type IndexExpr struct {
	Object Expression
	Index  Expression
	Line   int
	Column int
}

func (e *IndexExpr) Pos() (int, int) { return e.Line, e.Column }
func (*IndexExpr) exprNode()          {}
