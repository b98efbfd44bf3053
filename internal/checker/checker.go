package checker

import (
	"strconv"
	"strings"

	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/lexer"
	"github.com/lgfh98/kotlin/internal/types"
)

// FuncInfo holds information about a user-declared function
type FuncInfo struct {
	Name   string
	Symbol *types.Symbol
	Decl   *ast.FunctionDecl
}

// CheckResult holds the results of type checking for use by later pipeline stages
type CheckResult struct {
	Diagnostics *diagnostic.Diagnostics
	ExprTypes   map[ast.Expression]*types.Type

	// Symbols maps every call-like node to its resolved callee: ranges,
	// infix calls, member calls, property reads, index reads, unary minus
	// and function calls, plus index assignments (set) and for-loops
	// (iterator).
	Symbols map[ast.Node]*types.Symbol

	// Constants holds the value of every integer, long and char literal,
	// including negated literals, after coercion to the expected type.
	Constants map[ast.Expression]int64

	// LoopVars holds the declared type of each for-loop variable
	LoopVars map[*ast.ForInStmt]*types.Type
	// VarTypes holds the type of each val/var declaration
	VarTypes  map[*ast.VarDecl]*types.Type
	Functions map[string]*FuncInfo
}

// Checker performs semantic analysis on the AST
type Checker struct {
	prog      *ast.Program
	diag      *diagnostic.Diagnostics
	functions map[string]*FuncInfo
	exprTypes map[ast.Expression]*types.Type
	symbols   map[ast.Node]*types.Symbol
	constants map[ast.Expression]int64
	loopVars  map[*ast.ForInStmt]*types.Type
	varTypes  map[*ast.VarDecl]*types.Type

	loopDepth   int
	currentFunc *FuncInfo
}

// CheckWithResult performs semantic analysis and returns results for downstream stages
func CheckWithResult(prog *ast.Program) *CheckResult {
	c := &Checker{
		prog:      prog,
		diag:      diagnostic.New(),
		functions: make(map[string]*FuncInfo),
		exprTypes: make(map[ast.Expression]*types.Type),
		symbols:   make(map[ast.Node]*types.Symbol),
		constants: make(map[ast.Expression]int64),
		loopVars:  make(map[*ast.ForInStmt]*types.Type),
		varTypes:  make(map[*ast.VarDecl]*types.Type),
	}

	c.registerFunctions()
	c.checkFunctions()

	return &CheckResult{
		Diagnostics: c.diag,
		ExprTypes:   c.exprTypes,
		Symbols:     c.symbols,
		Constants:   c.constants,
		LoopVars:    c.loopVars,
		VarTypes:    c.varTypes,
		Functions:   c.functions,
	}
}

// Check performs semantic analysis on an AST program
func Check(prog *ast.Program) *diagnostic.Diagnostics {
	return CheckWithResult(prog).Diagnostics
}

// resolveType resolves a source type reference, reporting unknown names
func (c *Checker) resolveType(ref *ast.TypeRef) *types.Type {
	args := make([]*types.Type, 0, len(ref.TypeArgs))
	for _, a := range ref.TypeArgs {
		t := c.resolveType(a)
		if t == nil {
			return nil
		}
		args = append(args, t)
	}
	t := types.Lookup(ref.Name, args)
	if t == nil {
		line, col := ref.Pos()
		c.diag.Errorf(line, col, "unresolved type '%s'", ref)
	}
	return t
}

// registerFunctions collects all function signatures
func (c *Checker) registerFunctions() {
	for _, fn := range c.prog.Functions {
		if _, exists := c.functions[fn.Name]; exists {
			line, col := fn.Pos()
			c.diag.Errorf(line, col, "function '%s' already defined", fn.Name)
			continue
		}

		params := make([]*types.Type, 0, len(fn.Params))
		for _, p := range fn.Params {
			pType := c.resolveType(p.Type)
			if pType == nil {
				pType = types.TypeAny // fallback
			}
			params = append(params, pType)
		}

		returnType := types.TypeUnit
		if fn.ReturnType != nil {
			if returnType = c.resolveType(fn.ReturnType); returnType == nil {
				returnType = types.TypeUnit // fallback
			}
		}

		c.functions[fn.Name] = &FuncInfo{
			Name: fn.Name,
			Symbol: &types.Symbol{
				FqName: fn.Name,
				Kind:   types.FunctionSymbol,
				Params: params,
				Return: returnType,
			},
			Decl: fn,
		}
	}
}

// checkFunctions checks all function bodies
func (c *Checker) checkFunctions() {
	for _, fn := range c.prog.Functions {
		if info := c.functions[fn.Name]; info != nil && info.Decl == fn {
			c.checkFunction(fn, info)
		}
	}
}

// checkFunction checks a single function
func (c *Checker) checkFunction(fn *ast.FunctionDecl, info *FuncInfo) {
	funcScope := NewScope(nil)
	c.currentFunc = info

	for i, p := range fn.Params {
		if err := funcScope.Define(p.Name, &Symbol{
			Name: p.Name,
			Type: info.Symbol.Params[i],
			Kind: SymParam,
		}); err != nil {
			line, col := p.Pos()
			c.diag.Errorf(line, col, "duplicate parameter '%s'", p.Name)
		}
	}

	if fn.Body != nil {
		c.checkBlock(fn.Body, funcScope)
		if info.Symbol.Return.Kind != types.Unit && !c.terminates(fn.Body) {
			line, col := fn.Pos()
			c.diag.ErrorWithHint(line, col,
				"missing return in function '"+fn.Name+"'",
				"a function with a block body and a non-Unit return type must end with 'return'")
		}
	}

	c.currentFunc = nil
}

// terminates reports whether control cannot fall off the end of stmt
func (c *Checker) terminates(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.Block:
		if len(s.Statements) == 0 {
			return false
		}
		return c.terminates(s.Statements[len(s.Statements)-1])
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		return s.Else != nil && c.terminates(s.Then) && c.terminates(s.Else)
	case *ast.ExprStmt:
		t := c.exprTypes[s.Expr]
		return t != nil && t.Kind == types.Nothing
	case *ast.WhileStmt:
		lit, ok := s.Condition.(*ast.BoolLit)
		return ok && lit.Value
	}
	return false
}

// checkBlock checks a block of statements
func (c *Checker) checkBlock(block *ast.Block, scope *Scope) {
	for _, stmt := range block.Statements {
		c.checkStatement(stmt, scope)
	}
}

// checkStatement checks a statement
func (c *Checker) checkStatement(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s, scope)
	case *ast.AssignStmt:
		c.checkAssignStmt(s, scope)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s, scope)
	case *ast.IfStmt:
		c.checkIfStmt(s, scope)
	case *ast.WhileStmt:
		c.checkWhileStmt(s, scope)
	case *ast.ForInStmt:
		c.checkForInStmt(s, scope)
	case *ast.BreakStmt:
		c.checkBreakStmt(s)
	case *ast.ContinueStmt:
		c.checkContinueStmt(s)
	case *ast.ExprStmt:
		c.checkExpression(s.Expr, scope)
	case *ast.Block:
		c.checkBlock(s, NewScope(scope))
	}
}

// checkVarDecl checks a val/var declaration
func (c *Checker) checkVarDecl(stmt *ast.VarDecl, scope *Scope) {
	line, col := stmt.Pos()

	var declaredType *types.Type
	if stmt.Type != nil {
		declaredType = c.resolveType(stmt.Type)
	}

	valueType := c.checkExpected(stmt.Value, declaredType, scope)
	if declaredType != nil && valueType != nil && !valueType.AssignableTo(declaredType) {
		c.diag.Errorf(line, col, "type mismatch: inferred type is %s but %s was expected", valueType, declaredType)
	}

	varType := declaredType
	if varType == nil {
		varType = valueType
	}
	if varType != nil {
		c.varTypes[stmt] = varType
	}

	if scope.ResolveLocal(stmt.Name) == nil && scope.Resolve(stmt.Name) != nil {
		c.diag.Warningf(line, col, "name shadowed: %s", stmt.Name)
	}
	if err := scope.Define(stmt.Name, &Symbol{
		Name:    stmt.Name,
		Type:    varType,
		Mutable: stmt.Mutable,
		Kind:    SymVariable,
	}); err != nil {
		c.diag.Errorf(line, col, "variable '%s' already defined in this scope", stmt.Name)
	}
}

// checkAssignStmt checks an assignment statement
func (c *Checker) checkAssignStmt(stmt *ast.AssignStmt, scope *Scope) {
	line, col := stmt.Pos()

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		sym := scope.Resolve(target.Name)
		if sym == nil {
			c.diag.Errorf(line, col, "unresolved reference: %s", target.Name)
			c.checkExpression(stmt.Value, scope)
			return
		}
		c.storeExprType(target, sym.Type)
		if !sym.Mutable {
			c.diag.ErrorWithHint(line, col,
				"val cannot be reassigned: '"+target.Name+"'",
				"declare it with 'var' to allow assignment")
		}
		valueType := c.checkExpected(stmt.Value, sym.Type, scope)
		if sym.Type != nil && valueType != nil && !valueType.AssignableTo(sym.Type) {
			c.diag.Errorf(line, col, "type mismatch: inferred type is %s but %s was expected", valueType, sym.Type)
		}

	case *ast.IndexExpr:
		objType := c.checkExpression(target.Object, scope)
		indexType := c.checkExpected(target.Index, types.TypeInt, scope)
		valueType := c.checkExpected(stmt.Value, types.IterationElement(objType), scope)
		if objType == nil || indexType == nil || valueType == nil {
			return
		}
		sym := types.Member(objType, "set", []*types.Type{indexType, valueType})
		if sym == nil {
			c.diag.Errorf(line, col, "cannot assign %s to an element of %s indexed by %s", valueType, objType, indexType)
			return
		}
		c.symbols[stmt] = sym

	default:
		c.diag.Errorf(line, col, "invalid assignment target %s", ast.Format(stmt.Target))
		c.checkExpression(stmt.Value, scope)
	}
}

// checkReturnStmt checks a return statement
func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt, scope *Scope) {
	line, col := stmt.Pos()
	expected := types.TypeUnit
	if c.currentFunc != nil {
		expected = c.currentFunc.Symbol.Return
	}

	if stmt.Value == nil {
		if expected.Kind != types.Unit {
			c.diag.Errorf(line, col, "return value of type %s expected", expected)
		}
		return
	}

	valueType := c.checkExpected(stmt.Value, expected, scope)
	if valueType != nil && !valueType.AssignableTo(expected) {
		c.diag.Errorf(line, col, "type mismatch: inferred type is %s but %s was expected", valueType, expected)
	}
}

// checkCondition checks that a condition is Boolean
func (c *Checker) checkCondition(cond ast.Expression, scope *Scope, what string) {
	condType := c.checkExpression(cond, scope)
	if condType != nil && condType.Kind != types.Boolean && condType.Kind != types.Nothing {
		line, col := cond.Pos()
		c.diag.Errorf(line, col, "%s condition must be Boolean, got %s", what, condType)
	}
}

// checkIfStmt checks an if statement
func (c *Checker) checkIfStmt(stmt *ast.IfStmt, scope *Scope) {
	c.checkCondition(stmt.Condition, scope, "if")

	if stmt.Then != nil {
		c.checkBlock(stmt.Then, NewScope(scope))
	}
	if stmt.Else != nil {
		c.checkStatement(stmt.Else, NewScope(scope))
	}
}

// checkWhileStmt checks a while statement
func (c *Checker) checkWhileStmt(stmt *ast.WhileStmt, scope *Scope) {
	c.checkCondition(stmt.Condition, scope, "while")

	c.loopDepth++
	c.checkBlock(stmt.Body, NewScope(scope))
	c.loopDepth--
}

// checkForInStmt checks a for-in statement. Any iterable with an iterator()
// member is accepted; the loop variable takes the element type unless an
// annotation names a supertype of it.
func (c *Checker) checkForInStmt(stmt *ast.ForInStmt, scope *Scope) {
	line, col := stmt.Pos()

	var elemType *types.Type
	iterType := c.checkExpression(stmt.Iterable, scope)
	if iterType != nil {
		elemType = types.IterationElement(iterType)
		if elemType == nil {
			c.diag.Errorf(line, col, "for-loop range must have an 'iterator()' method, got %s", iterType)
		} else {
			c.symbols[stmt] = types.Member(iterType, "iterator", nil)
		}
	}

	varType := elemType
	if stmt.VarType != nil {
		declared := c.resolveType(stmt.VarType)
		if declared != nil && elemType != nil && !elemType.AssignableTo(declared) {
			c.diag.Errorf(line, col, "type mismatch: loop variable '%s' is %s but elements are %s", stmt.Variable, declared, elemType)
		}
		if declared != nil {
			varType = declared
		}
	}
	if varType != nil {
		c.loopVars[stmt] = varType
	}

	if scope.Resolve(stmt.Variable) != nil {
		c.diag.Warningf(line, col, "name shadowed: %s", stmt.Variable)
	}
	loopScope := NewScope(scope)
	loopScope.Define(stmt.Variable, &Symbol{
		Name: stmt.Variable,
		Type: varType,
		Kind: SymLoopVariable,
	})

	// Track loop depth for break/continue validation
	c.loopDepth++
	c.checkBlock(stmt.Body, loopScope)
	c.loopDepth--
}

// checkBreakStmt checks a break statement
func (c *Checker) checkBreakStmt(stmt *ast.BreakStmt) {
	if c.loopDepth == 0 {
		line, col := stmt.Pos()
		c.diag.Errorf(line, col, "'break' is not allowed outside a loop")
	}
}

// checkContinueStmt checks a continue statement
func (c *Checker) checkContinueStmt(stmt *ast.ContinueStmt) {
	if c.loopDepth == 0 {
		line, col := stmt.Pos()
		c.diag.Errorf(line, col, "'continue' is not allowed outside a loop")
	}
}

// storeExprType stores the type of an expression for later use by lowering
func (c *Checker) storeExprType(expr ast.Expression, t *types.Type) *types.Type {
	if t != nil {
		c.exprTypes[expr] = t
	}
	return t
}

// intLiteral returns the value of an integer literal or a negated one
func intLiteral(expr ast.Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntLit:
		v, err := strconv.ParseInt(e.Value, 10, 64)
		return v, err == nil
	case *ast.UnaryExpr:
		if e.Op != lexer.MINUS {
			return 0, false
		}
		if lit, ok := e.Operand.(*ast.IntLit); ok {
			v, err := strconv.ParseInt(lit.Value, 10, 64)
			return -v, err == nil
		}
	}
	return 0, false
}

// checkExpected checks expr where a value of type expected is wanted. An
// integer literal whose value fits adopts an expected integral type.
func (c *Checker) checkExpected(expr ast.Expression, expected *types.Type, scope *Scope) *types.Type {
	if expected != nil && expected.IsIntegral() {
		if v, ok := intLiteral(expr); ok && v >= types.MinValue(expected) && v <= types.MaxValue(expected) {
			c.constants[expr] = v
			return c.storeExprType(expr, expected)
		}
	}
	return c.checkExpression(expr, scope)
}

// checkExpression checks an expression and returns its type
func (c *Checker) checkExpression(expr ast.Expression, scope *Scope) *types.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		v, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			c.diag.Errorf(e.Line, e.Column, "the value %s is out of range", e.Value)
			return nil
		}
		c.constants[expr] = v
		if v > types.MaxValue(types.TypeInt) {
			return c.storeExprType(expr, types.TypeLong)
		}
		return c.storeExprType(expr, types.TypeInt)
	case *ast.LongLit:
		v, err := strconv.ParseInt(e.Value, 10, 64)
		if err != nil {
			c.diag.Errorf(e.Line, e.Column, "the value %sL is out of range", e.Value)
			return nil
		}
		c.constants[expr] = v
		return c.storeExprType(expr, types.TypeLong)
	case *ast.CharLit:
		c.constants[expr] = int64(e.Value)
		return c.storeExprType(expr, types.TypeChar)
	case *ast.StringLit:
		return c.storeExprType(expr, types.TypeString)
	case *ast.BoolLit:
		return c.storeExprType(expr, types.TypeBoolean)
	case *ast.Identifier:
		return c.storeExprType(expr, c.checkIdentifier(e, scope))
	case *ast.BinaryExpr:
		return c.storeExprType(expr, c.checkBinaryExpr(e, scope))
	case *ast.UnaryExpr:
		return c.storeExprType(expr, c.checkUnaryExpr(e, scope))
	case *ast.RangeExpr:
		return c.storeExprType(expr, c.checkInfix(e, e.Start, "rangeTo", e.End, scope))
	case *ast.InfixCallExpr:
		return c.storeExprType(expr, c.checkInfix(e, e.Left, e.Name, e.Right, scope))
	case *ast.CallExpr:
		return c.storeExprType(expr, c.checkCallExpr(e, scope))
	case *ast.MethodCallExpr:
		return c.storeExprType(expr, c.checkMethodCallExpr(e, scope))
	case *ast.PropertyExpr:
		return c.storeExprType(expr, c.checkPropertyExpr(e, scope))
	case *ast.IndexExpr:
		return c.storeExprType(expr, c.checkIndexExpr(e, scope))
	default:
		return nil
	}
}

// checkIdentifier checks a variable reference
func (c *Checker) checkIdentifier(expr *ast.Identifier, scope *Scope) *types.Type {
	sym := scope.Resolve(expr.Name)
	if sym == nil {
		if _, isFunc := c.functions[expr.Name]; isFunc {
			c.diag.Errorf(expr.Line, expr.Column, "function '%s' cannot be used as a value", expr.Name)
		} else {
			c.diag.Errorf(expr.Line, expr.Column, "unresolved reference: %s", expr.Name)
		}
		return nil
	}
	return sym.Type
}

// checkOperands checks both sides of a binary operator, letting an integer
// literal on either side adopt the integral type of the other side.
func (c *Checker) checkOperands(left, right ast.Expression, scope *Scope) (*types.Type, *types.Type) {
	if _, ok := intLiteral(left); ok {
		if _, ok := intLiteral(right); !ok {
			rightType := c.checkExpression(right, scope)
			return c.checkExpected(left, rightType, scope), rightType
		}
	}
	leftType := c.checkExpression(left, scope)
	return leftType, c.checkExpected(right, leftType, scope)
}

// checkBinaryExpr checks a binary expression
func (c *Checker) checkBinaryExpr(expr *ast.BinaryExpr, scope *Scope) *types.Type {
	leftType, rightType := c.checkOperands(expr.Left, expr.Right, scope)
	if leftType == nil || rightType == nil {
		return nil
	}

	line, col := expr.Pos()
	op := ast.OpString(expr.Op)

	switch expr.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		if expr.Op == lexer.PLUS && leftType.Kind == types.String {
			return types.TypeString
		}
		if leftType.IsIntegral() && rightType.IsIntegral() {
			if leftType.Kind == types.Long || rightType.Kind == types.Long {
				return types.TypeLong
			}
			return types.TypeInt
		}
		if leftType.Kind == types.Char {
			plusMinus := expr.Op == lexer.PLUS || expr.Op == lexer.MINUS
			if plusMinus && rightType.IsIntegral() && rightType.Kind != types.Long {
				return types.TypeChar
			}
			if expr.Op == lexer.MINUS && rightType.Kind == types.Char {
				return types.TypeInt
			}
		}
		c.diag.Errorf(line, col, "operator '%s' not defined for %s and %s", op, leftType, rightType)
		return nil

	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		if leftType.IsIntegral() && rightType.IsIntegral() {
			return types.TypeBoolean
		}
		if leftType.Equal(rightType) && (leftType.Kind == types.Char || leftType.Kind == types.String) {
			return types.TypeBoolean
		}
		c.diag.Errorf(line, col, "operator '%s' not defined for %s and %s", op, leftType, rightType)
		return nil

	case lexer.EQ, lexer.NEQ:
		if leftType.AssignableTo(rightType) || rightType.AssignableTo(leftType) {
			return types.TypeBoolean
		}
		c.diag.Errorf(line, col, "operator '%s' cannot be applied to %s and %s", op, leftType, rightType)
		return nil

	case lexer.AND, lexer.OR:
		if leftType.Kind == types.Boolean && rightType.Kind == types.Boolean {
			return types.TypeBoolean
		}
		c.diag.Errorf(line, col, "operator '%s' requires Boolean operands, got %s and %s", op, leftType, rightType)
		return nil

	default:
		c.diag.Errorf(line, col, "unknown binary operator %s", op)
		return nil
	}
}

// checkUnaryExpr checks a unary expression. Negated literals fold into
// constants; other negations resolve to the operand's unaryMinus.
func (c *Checker) checkUnaryExpr(expr *ast.UnaryExpr, scope *Scope) *types.Type {
	line, col := expr.Pos()

	switch expr.Op {
	case lexer.MINUS:
		switch expr.Operand.(type) {
		case *ast.IntLit, *ast.LongLit:
			t := c.checkExpression(expr.Operand, scope)
			if t == nil {
				return nil
			}
			c.constants[expr] = -c.constants[expr.Operand]
			return t
		}

		operandType := c.checkExpression(expr.Operand, scope)
		if operandType == nil {
			return nil
		}
		sym := types.Member(operandType, "unaryMinus", nil)
		if sym == nil {
			c.diag.Errorf(line, col, "unary '-' not defined for %s", operandType)
			return nil
		}
		c.symbols[expr] = sym
		return sym.Return

	case lexer.NOT:
		operandType := c.checkExpression(expr.Operand, scope)
		if operandType == nil {
			return nil
		}
		if operandType.Kind != types.Boolean {
			c.diag.Errorf(line, col, "unary '!' requires a Boolean operand, got %s", operandType)
			return nil
		}
		return types.TypeBoolean

	default:
		c.diag.Errorf(line, col, "unknown unary operator")
		return nil
	}
}

// checkInfix checks `left..right` and named infix calls such as downTo
func (c *Checker) checkInfix(expr ast.Expression, left ast.Expression, name string, right ast.Expression, scope *Scope) *types.Type {
	leftType := c.checkExpression(left, scope)
	rightType := c.checkExpression(right, scope)
	if leftType == nil || rightType == nil {
		return nil
	}

	sym := types.Member(leftType, name, []*types.Type{rightType})
	if sym == nil {
		line, col := expr.Pos()
		if name == "rangeTo" {
			c.diag.Errorf(line, col, "operator '..' not defined for %s and %s", leftType, rightType)
		} else {
			c.diag.Errorf(line, col, "infix function '%s' not defined for %s and %s", name, leftType, rightType)
		}
		return nil
	}
	c.symbols[expr] = sym
	return sym.Return
}

// checkCallExpr checks a call of a user function or a built-in
func (c *Checker) checkCallExpr(expr *ast.CallExpr, scope *Scope) *types.Type {
	line, col := expr.Pos()

	if info, ok := c.functions[expr.Function]; ok {
		sym := info.Symbol
		if len(expr.Args) != len(sym.Params) {
			c.diag.Errorf(line, col, "function '%s' expects %d arguments, got %d", expr.Function, len(sym.Params), len(expr.Args))
			for _, a := range expr.Args {
				c.checkExpression(a, scope)
			}
			return sym.Return
		}
		for i, a := range expr.Args {
			argType := c.checkExpected(a, sym.Params[i], scope)
			if argType != nil && !argType.AssignableTo(sym.Params[i]) {
				aline, acol := a.Pos()
				c.diag.Errorf(aline, acol, "type mismatch: argument %d of '%s' is %s, expected %s", i+1, expr.Function, argType, sym.Params[i])
			}
		}
		c.symbols[expr] = sym
		return sym.Return
	}

	hint := types.FactoryElement(expr.Function)
	argTypes, ok := c.checkArgs(expr.Args, hint, scope)
	if !ok {
		return nil
	}
	sym := types.Function(expr.Function, argTypes)
	if sym == nil {
		if !builtinNames[expr.Function] {
			c.diag.Errorf(line, col, "unresolved reference: %s", expr.Function)
		} else {
			c.diag.Errorf(line, col, "no overload of '%s' accepts (%s)", expr.Function, typeList(argTypes))
		}
		return nil
	}
	c.symbols[expr] = sym
	return sym.Return
}

var builtinNames = map[string]bool{
	"println":        true,
	"print":          true,
	"error":          true,
	"arrayOf":        true,
	"booleanArrayOf": true,
	"charArrayOf":    true,
	"byteArrayOf":    true,
	"shortArrayOf":   true,
	"intArrayOf":     true,
	"longArrayOf":    true,
}

// checkArgs checks call arguments; ok is false when any argument failed
func (c *Checker) checkArgs(args []ast.Expression, hint *types.Type, scope *Scope) ([]*types.Type, bool) {
	argTypes := make([]*types.Type, 0, len(args))
	ok := true
	for _, a := range args {
		t := c.checkExpected(a, hint, scope)
		if t == nil {
			ok = false
		}
		argTypes = append(argTypes, t)
	}
	return argTypes, ok
}

// checkMethodCallExpr checks receiver.method(args)
func (c *Checker) checkMethodCallExpr(expr *ast.MethodCallExpr, scope *Scope) *types.Type {
	recvType := c.checkExpression(expr.Object, scope)
	argTypes, ok := c.checkArgs(expr.Args, nil, scope)
	if recvType == nil || !ok {
		return nil
	}

	sym := types.Member(recvType, expr.Method, argTypes)
	if sym == nil {
		c.diag.Errorf(expr.Line, expr.Column, "unresolved reference: %s.%s(%s)", recvType, expr.Method, typeList(argTypes))
		return nil
	}
	c.symbols[expr] = sym
	return sym.Return
}

// checkPropertyExpr checks receiver.property
func (c *Checker) checkPropertyExpr(expr *ast.PropertyExpr, scope *Scope) *types.Type {
	recvType := c.checkExpression(expr.Object, scope)
	if recvType == nil {
		return nil
	}

	sym := types.Property(recvType, expr.Property)
	if sym == nil {
		c.diag.Errorf(expr.Line, expr.Column, "unresolved reference: %s.%s", recvType, expr.Property)
		return nil
	}
	c.symbols[expr] = sym
	return sym.Return
}

// checkIndexExpr checks receiver[index], a call of get
func (c *Checker) checkIndexExpr(expr *ast.IndexExpr, scope *Scope) *types.Type {
	objType := c.checkExpression(expr.Object, scope)
	indexType := c.checkExpected(expr.Index, types.TypeInt, scope)
	if objType == nil || indexType == nil {
		return nil
	}

	sym := types.Member(objType, "get", []*types.Type{indexType})
	if sym == nil {
		c.diag.Errorf(expr.Line, expr.Column, "cannot index %s with %s", objType, indexType)
		return nil
	}
	c.symbols[expr] = sym
	return sym.Return
}

func typeList(ts []*types.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}
