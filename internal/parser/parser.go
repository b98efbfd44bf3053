package parser

import (
	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Program AST
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}

	for !p.check(lexer.EOF) {
		switch p.current().Type {
		case lexer.FUN:
			prog.Functions = append(prog.Functions, p.parseFunctionDecl())
		case lexer.SEMICOLON:
			p.advance()
		default:
			tok := p.current()
			if tok.Type == lexer.ILLEGAL {
				p.diags.Errorf(tok.Line, tok.Column, "%s", tok.Literal)
			} else {
				p.diags.Errorf(tok.Line, tok.Column, "unexpected token %s at top level", tok.Type)
			}
			startPos := p.pos
			p.synchronize()
			if p.pos == startPos {
				p.advance() // ensure forward progress to avoid infinite loop
			}
		}
	}
	return prog
}

// parseFunctionDecl parses: fun <name>(<params>) [: <type>] { ... } | = <expr>
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.expect(lexer.FUN)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	var retType *ast.TypeRef
	if p.match(lexer.COLON) {
		retType = p.parseTypeRef()
	}

	var body *ast.Block
	if p.check(lexer.ASSIGN) {
		// Expression body: fun f() = expr
		eq := p.advance()
		value := p.parseExpression()
		body = &ast.Block{
			Statements: []ast.Statement{&ast.ReturnStmt{Value: value, Line: eq.Line, Column: eq.Column}},
			Line:       eq.Line,
			Column:     eq.Column,
		}
	} else {
		body = p.parseBlock()
	}

	return &ast.FunctionDecl{
		Name:       name.Literal,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Line:       tok.Line,
		Column:     tok.Column,
	}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}

	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		if p.check(lexer.RPAREN) {
			break
		}
		params = append(params, p.parseParam())
	}
	return params
}

// parseParam parses: <name>: <type>
func (p *Parser) parseParam() *ast.Param {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	paramType := p.parseTypeRef()
	return &ast.Param{
		Name:   name.Literal,
		Type:   paramType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseTypeRef parses a type reference such as Int, IntArray or Array<Int>
func (p *Parser) parseTypeRef() *ast.TypeRef {
	tok := p.current()
	if tok.Type != lexer.IDENT {
		p.diags.Errorf(tok.Line, tok.Column, "expected type, got %s", tok.Type)
		return &ast.TypeRef{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
	p.advance()

	// After a type name, '<' always opens type arguments
	var typeArgs []*ast.TypeRef
	if p.check(lexer.LT) {
		p.advance()
		for {
			typeArgs = append(typeArgs, p.parseTypeRef())
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.GT)
	}

	return &ast.TypeRef{
		Name:     tok.Literal,
		TypeArgs: typeArgs,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// parseBlock parses: { statement* }
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{
		Line:   tok.Line,
		Column: tok.Column,
	}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		if p.match(lexer.SEMICOLON) {
			continue
		}
		startPos := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseBody parses a loop or branch body: a block, or a single statement
// which is wrapped in a block.
func (p *Parser) parseBody() *ast.Block {
	if p.check(lexer.LBRACE) {
		return p.parseBlock()
	}
	tok := p.current()
	block := &ast.Block{Line: tok.Line, Column: tok.Column}
	if stmt := p.parseStatement(); stmt != nil {
		block.Statements = append(block.Statements, stmt)
	}
	return block
}

// parseStatement parses a statement
func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Type {
	case lexer.VAL, lexer.VAR:
		return p.parseVarDecl()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		tok := p.advance()
		p.endOfStatement()
		return &ast.BreakStmt{Line: tok.Line, Column: tok.Column}
	case lexer.CONTINUE:
		tok := p.advance()
		p.endOfStatement()
		return &ast.ContinueStmt{Line: tok.Line, Column: tok.Column}
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmtOrAssign()
	}
}

// parseVarDecl parses: (val|var) <name> [: <type>] = <expr>
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.advance()
	name := p.expect(lexer.IDENT)

	var varType *ast.TypeRef
	if p.match(lexer.COLON) {
		varType = p.parseTypeRef()
	}
	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	p.endOfStatement()

	return &ast.VarDecl{
		Name:    name.Literal,
		Mutable: tok.Type == lexer.VAR,
		Type:    varType,
		Value:   value,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// parseReturnStmt parses: return [expr]
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.expect(lexer.RETURN)
	var value ast.Expression
	switch p.current().Type {
	case lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
	default:
		if !p.newlineBefore() {
			value = p.parseExpression()
		}
	}
	p.endOfStatement()

	return &ast.ReturnStmt{
		Value:  value,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseIfStmt parses: if (<expr>) body [else body]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	condition := p.parseExpression()
	p.expect(lexer.RPAREN)
	then := p.parseBody()

	var elseStmt ast.Statement
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			elseStmt = p.parseIfStmt()
		} else {
			elseStmt = p.parseBody()
		}
	}

	return &ast.IfStmt{
		Condition: condition,
		Then:      then,
		Else:      elseStmt,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}

// parseWhileStmt parses: while (<expr>) body
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	condition := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBody()

	return &ast.WhileStmt{
		Condition: condition,
		Body:      body,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}

// parseForStmt parses: for (<variable> [: <type>] in <iterable>) body
func (p *Parser) parseForStmt() *ast.ForInStmt {
	tok := p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)
	varName := p.expect(lexer.IDENT)

	var varType *ast.TypeRef
	if p.match(lexer.COLON) {
		varType = p.parseTypeRef()
	}
	p.expect(lexer.IN)
	iterable := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBody()

	return &ast.ForInStmt{
		Variable: varName.Literal,
		VarType:  varType,
		Iterable: iterable,
		Body:     body,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// parseExprStmtOrAssign parses an expression statement or assignment
func (p *Parser) parseExprStmtOrAssign() ast.Statement {
	tok := p.current()
	expr := p.parseExpression()

	if p.check(lexer.ASSIGN) {
		p.advance()
		value := p.parseExpression()
		p.endOfStatement()
		return &ast.AssignStmt{
			Target: expr,
			Value:  value,
			Line:   tok.Line,
			Column: tok.Column,
		}
	}

	p.endOfStatement()
	return &ast.ExprStmt{
		Expr:   expr,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// Expression parsing - precedence climbing

// Precedence levels (lowest to highest):
// 1. ||
// 2. &&
// 3. == !=
// 4. < > <= >=
// 5. named infix (downTo, until)
// 6. ..
// 7. + -
// 8. * / %
// 9. unary (- !)
// 10. postfix (. () [])

const (
	precNone       = 0
	precOr         = 1
	precAnd        = 2
	precEquality   = 3
	precComparison = 4
	precInfix      = 5
	precRange      = 6
	precAdditive   = 7
	precMulti      = 8
)

// infixNames are the identifiers accepted in infix call position
var infixNames = map[string]bool{
	"downTo": true,
	"until":  true,
}

func tokenPrecedence(tok lexer.Token) int {
	switch tok.Type {
	case lexer.OR:
		return precOr
	case lexer.AND:
		return precAnd
	case lexer.EQ, lexer.NEQ:
		return precEquality
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return precComparison
	case lexer.IDENT:
		if infixNames[tok.Literal] {
			return precInfix
		}
		return precNone
	case lexer.DOTDOT:
		return precRange
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parsePrecedence(precOr)
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		tok := p.current()
		prec := tokenPrecedence(tok)
		if prec == precNone || prec < minPrec {
			break
		}
		// Only && and || may continue an expression on the next line
		if p.newlineBefore() && tok.Type != lexer.AND && tok.Type != lexer.OR {
			break
		}

		op := p.advance()
		right := p.parsePrecedence(prec + 1)
		line, col := left.Pos()

		switch op.Type {
		case lexer.DOTDOT:
			left = &ast.RangeExpr{Start: left, End: right, Line: line, Column: col}
		case lexer.IDENT:
			left = &ast.InfixCallExpr{Left: left, Name: op.Literal, Right: right, Line: line, Column: col}
		default:
			left = &ast.BinaryExpr{
				Left:   left,
				Op:     op.Type,
				Right:  right,
				Line:   op.Line,
				Column: op.Column,
			}
		}
	}

	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS) || p.check(lexer.NOT) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			Op:      op.Type,
			Operand: operand,
			Line:    op.Line,
			Column:  op.Column,
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	line, col := expr.Pos()

	for {
		switch {
		case p.check(lexer.LBRACKET) && !p.newlineBefore():
			// Index access: expr[index]
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpr{
				Object: expr,
				Index:  index,
				Line:   line,
				Column: col,
			}
		case p.check(lexer.DOT):
			p.advance()
			name := p.expect(lexer.IDENT)
			if p.check(lexer.LPAREN) && !p.newlineBefore() {
				p.advance()
				args := p.parseArgList()
				p.expect(lexer.RPAREN)
				expr = &ast.MethodCallExpr{
					Object: expr,
					Method: name.Literal,
					Args:   args,
					Line:   name.Line,
					Column: name.Column,
				}
			} else {
				expr = &ast.PropertyExpr{
					Object:   expr,
					Property: name.Literal,
					Line:     name.Line,
					Column:   name.Column,
				}
			}
		case p.check(lexer.LPAREN) && !p.newlineBefore():
			// function call - only valid if expr is an identifier
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				return expr
			}
			p.advance()
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpr{
				Function: ident.Name,
				Args:     args,
				Line:     ident.Line,
				Column:   ident.Column,
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &ast.IntLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LONG_LIT:
		p.advance()
		return &ast.LongLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.CHAR_LIT:
		p.advance()
		return &ast.CharLit{Value: tok.Literal[0], Line: tok.Line, Column: tok.Column}
	case lexer.STRING_LIT:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Line: tok.Line, Column: tok.Column}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Line: tok.Line, Column: tok.Column}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.ILLEGAL:
		p.diags.Errorf(tok.Line, tok.Column, "%s", tok.Literal)
		p.advance()
		return &ast.Identifier{Name: "<error>", Line: tok.Line, Column: tok.Column}
	default:
		p.diags.Errorf(tok.Line, tok.Column, "unexpected token %s in expression", tok.Type)
		p.advance()
		return &ast.Identifier{Name: "<error>", Line: tok.Line, Column: tok.Column}
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		if p.check(lexer.RPAREN) {
			break
		}
		args = append(args, p.parseExpression())
	}
	return args
}
