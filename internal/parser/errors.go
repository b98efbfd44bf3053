package parser

import (
	"github.com/lgfh98/kotlin/internal/diagnostic"
	"github.com/lgfh98/kotlin/internal/lexer"
)

// syncTokens are tokens the parser can synchronize to after an error
var syncTokens = map[lexer.TokenType]bool{
	lexer.FUN:       true,
	lexer.VAL:       true,
	lexer.VAR:       true,
	lexer.RETURN:    true,
	lexer.IF:        true,
	lexer.WHILE:     true,
	lexer.FOR:       true,
	lexer.RBRACE:    true,
	lexer.SEMICOLON: true,
	lexer.EOF:       true,
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if p.pos == 0 || p.pos > len(p.tokens) {
		return lexer.Token{Type: lexer.ILLEGAL}
	}
	return p.tokens[p.pos-1]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		if tok.Type == lexer.ILLEGAL {
			p.diags.Errorf(tok.Line, tok.Column, "%s", tok.Literal)
		} else {
			p.diags.Errorf(tok.Line, tok.Column, "expected %s, got %s", tt, tok.Type)
		}
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// newlineBefore reports whether the current token starts a new line
// relative to the previously consumed token.
func (p *Parser) newlineBefore() bool {
	prev := p.previous()
	if prev.Type == lexer.ILLEGAL {
		return false
	}
	return p.current().Line > prev.Line
}

// endOfStatement consumes an optional semicolon. Statements on the same
// line must be separated by one.
func (p *Parser) endOfStatement() {
	if p.match(lexer.SEMICOLON) {
		return
	}
	switch p.current().Type {
	case lexer.RBRACE, lexer.ELSE, lexer.EOF:
		return
	}
	if !p.newlineBefore() {
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "expected end of statement, got %s", tok.Type)
		p.synchronize()
	}
}

// synchronize skips tokens until a sync point is found.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.current().Type == lexer.SEMICOLON {
			p.advance() // consume the semicolon and continue
			return
		}
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}
