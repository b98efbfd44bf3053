// Package ir defines the typed intermediate representation the loop
// lowering operates on, the lowering from checked AST into it, and the
// Builder used to synthesize new nodes.
package ir

import (
	"fmt"

	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// Pos is a source position. The zero Pos means "synthesized".
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Module represents a single source file after lowering.
type Module struct {
	Name      string
	Functions []*Function
}

// Function returns the function named name, or nil.
func (m *Module) Function(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Function represents a function declaration in the IR.
type Function struct {
	Name       string
	Symbol     *types.Symbol
	Params     []*Variable
	ReturnType *types.Type
	Body       *Block
	Pos        Pos
}

// --- Statements ---

// Stmt is the interface for all IR statement nodes.
type Stmt interface {
	StmtPos() Pos
	stmtNode()
}

// Variable declares a local. The pointer itself is the variable's
// identity: reads and writes refer to it, never to its name.
type Variable struct {
	Name    string
	Type    *types.Type
	Mutable bool
	Init    Expr // nil for parameters and loop variables
	Pos     Pos
}

func (s *Variable) StmtPos() Pos { return s.Pos }
func (*Variable) stmtNode()      {}

// SetValue assigns to a mutable variable.
type SetValue struct {
	Var   *Variable
	Value Expr
	Pos   Pos
}

func (s *SetValue) StmtPos() Pos { return s.Pos }
func (*SetValue) stmtNode()      {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (s *ExprStmt) StmtPos() Pos { return s.Pos }
func (*ExprStmt) stmtNode()      {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Pos   Pos
}

func (s *ReturnStmt) StmtPos() Pos { return s.Pos }
func (*ReturnStmt) stmtNode()      {}

// IfStmt represents an if/else statement.
type IfStmt struct {
	Condition Expr
	Then      *Block
	Else      *Block // nil if no else branch
	Pos       Pos
}

func (s *IfStmt) StmtPos() Pos { return s.Pos }
func (*IfStmt) stmtNode()      {}

// WhileStmt represents a pre-tested loop.
type WhileStmt struct {
	Condition Expr
	Body      *Block
	Pos       Pos
}

func (s *WhileStmt) StmtPos() Pos { return s.Pos }
func (*WhileStmt) stmtNode()      {}

// DoWhileStmt represents a post-tested loop. The condition may read
// variables declared at the top level of the body.
type DoWhileStmt struct {
	Body      *Block
	Condition Expr
	Pos       Pos
}

func (s *DoWhileStmt) StmtPos() Pos { return s.Pos }
func (*DoWhileStmt) stmtNode()      {}

// ForInStmt represents `for (x in e)`. Iterator is the implicit
// e.iterator() call; its dispatch receiver is the iterable.
type ForInStmt struct {
	LoopVar  *Variable
	Iterator *Call
	Body     *Block
	Pos      Pos
}

func (s *ForInStmt) StmtPos() Pos { return s.Pos }
func (*ForInStmt) stmtNode()      {}

// Iterable returns the expression the loop iterates over.
func (s *ForInStmt) Iterable() Expr {
	return s.Iterator.Dispatch
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	Pos Pos
}

func (s *BreakStmt) StmtPos() Pos { return s.Pos }
func (*BreakStmt) stmtNode()      {}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	Pos Pos
}

func (s *ContinueStmt) StmtPos() Pos { return s.Pos }
func (*ContinueStmt) stmtNode()      {}

// Block is a statement list with its own scope.
type Block struct {
	Stmts []Stmt
	Pos   Pos
}

func (s *Block) StmtPos() Pos { return s.Pos }
func (*Block) stmtNode()      {}

// --- Expressions ---

// Expr is the interface for all IR expression nodes.
type Expr interface {
	ExprType() *types.Type
	ExprPos() Pos
	exprNode()
}

// Const is an integral, char or boolean constant. Value is already wrapped
// to the width of Type; booleans are 0 or 1.
type Const struct {
	Value int64
	Type  *types.Type
	Pos   Pos
}

func (e *Const) ExprType() *types.Type { return e.Type }
func (e *Const) ExprPos() Pos          { return e.Pos }
func (*Const) exprNode()               {}

// StringConst is a string literal.
type StringConst struct {
	Value string
	Pos   Pos
}

func (e *StringConst) ExprType() *types.Type { return types.TypeString }
func (e *StringConst) ExprPos() Pos          { return e.Pos }
func (*StringConst) exprNode()               {}

// GetValue reads a variable.
type GetValue struct {
	Var *Variable
	Pos Pos
}

func (e *GetValue) ExprType() *types.Type { return e.Var.Type }
func (e *GetValue) ExprPos() Pos          { return e.Pos }
func (*GetValue) exprNode()               {}

// Call invokes a function or property getter. At most one of Dispatch and
// Extension is set, matching the receiver slot of Symbol.
type Call struct {
	Symbol    *types.Symbol
	Dispatch  Expr
	Extension Expr
	Args      []Expr
	Type      *types.Type
	Pos       Pos
}

func (e *Call) ExprType() *types.Type { return e.Type }
func (e *Call) ExprPos() Pos          { return e.Pos }
func (*Call) exprNode()               {}

// Receiver returns whichever receiver the call has, or nil.
func (e *Call) Receiver() Expr {
	if e.Dispatch != nil {
		return e.Dispatch
	}
	return e.Extension
}

// BinaryExpr represents arithmetic, comparison and logical operators.
// && and || short-circuit.
type BinaryExpr struct {
	Left  Expr
	Op    lexer.TokenType
	Right Expr
	Type  *types.Type
	Pos   Pos
}

func (e *BinaryExpr) ExprType() *types.Type { return e.Type }
func (e *BinaryExpr) ExprPos() Pos          { return e.Pos }
func (*BinaryExpr) exprNode()               {}

// NotExpr is boolean negation.
type NotExpr struct {
	Operand Expr
	Pos     Pos
}

func (e *NotExpr) ExprType() *types.Type { return types.TypeBoolean }
func (e *NotExpr) ExprPos() Pos          { return e.Pos }
func (*NotExpr) exprNode()               {}
