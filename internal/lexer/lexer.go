package lexer

import "strings"

// Lexer scans Kotlin-subset source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// skipSingleLineComment skips a single-line comment (//)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipMultiLineComment skips a multi-line comment (/* */)
func (l *Lexer) skipMultiLineComment() {
	// Already read '/*', now skip until '*/'
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			break
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads an integer literal with an optional L suffix.
// Underscore separators are accepted and dropped.
func (l *Lexer) readNumber() (string, TokenType) {
	var sb strings.Builder
	for isDigit(l.ch) || (l.ch == '_' && isDigit(l.peekChar())) {
		if l.ch != '_' {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.ch == 'L' {
		l.readChar()
		return sb.String(), LONG_LIT
	}
	return sb.String(), INT_LIT
}

// readEscape decodes the character after a backslash
func (l *Lexer) readEscape() (byte, bool) {
	switch l.ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'', '$':
		return l.ch, true
	default:
		return 0, false
	}
}

// readString reads a string literal and returns its decoded contents
func (l *Lexer) readString() (string, bool) {
	// Already positioned on the opening quote
	var sb strings.Builder
	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return "", false
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			c, ok := l.readEscape()
			if !ok {
				// Unknown escape sequence, keep it verbatim
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
				continue
			}
			sb.WriteByte(c)
		} else {
			sb.WriteByte(l.ch)
		}
	}
	return sb.String(), true
}

// readCharLit reads a character literal and returns the decoded character
func (l *Lexer) readCharLit() (string, bool) {
	// Already positioned on the opening quote
	l.readChar()
	var c byte
	switch l.ch {
	case 0, '\n', '\'':
		return "", false
	case '\\':
		l.readChar()
		e, ok := l.readEscape()
		if !ok {
			return "", false
		}
		c = e
	default:
		c = l.ch
	}
	l.readChar()
	if l.ch != '\'' {
		return "", false
	}
	return string([]byte{c}), true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	// Save position before processing token
	tok.Line = l.line
	tok.Column = l.column

	single := func(tt TokenType) Token {
		return Token{Type: tt, Literal: string(l.ch), Line: tok.Line, Column: tok.Column}
	}
	double := func(tt TokenType) Token {
		ch := l.ch
		l.readChar()
		return Token{Type: tt, Literal: string(ch) + string(l.ch), Line: tok.Line, Column: tok.Column}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = double(EQ)
		} else {
			tok = single(ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = double(NEQ)
		} else {
			tok = single(NOT)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = double(LEQ)
		} else {
			tok = single(LT)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = double(GEQ)
		} else {
			tok = single(GT)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = double(AND)
		} else {
			tok = single(ILLEGAL)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = double(OR)
		} else {
			tok = single(ILLEGAL)
		}
	case '+':
		tok = single(PLUS)
	case '-':
		tok = single(MINUS)
	case '*':
		tok = single(STAR)
	case '/':
		if l.peekChar() == '/' {
			l.skipSingleLineComment()
			return l.NextToken()
		} else if l.peekChar() == '*' {
			l.readChar() // consume '/'
			l.readChar() // consume '*'
			l.skipMultiLineComment()
			return l.NextToken()
		} else {
			tok = single(SLASH)
		}
	case '%':
		tok = single(PERCENT)
	case '(':
		tok = single(LPAREN)
	case ')':
		tok = single(RPAREN)
	case '{':
		tok = single(LBRACE)
	case '}':
		tok = single(RBRACE)
	case '[':
		tok = single(LBRACKET)
	case ']':
		tok = single(RBRACKET)
	case ',':
		tok = single(COMMA)
	case ':':
		tok = single(COLON)
	case ';':
		tok = single(SEMICOLON)
	case '.':
		if l.peekChar() == '.' {
			tok = double(DOTDOT)
		} else {
			tok = single(DOT)
		}
	case '"':
		str, ok := l.readString()
		if !ok {
			tok = Token{Type: ILLEGAL, Literal: "unterminated string", Line: tok.Line, Column: tok.Column}
		} else {
			tok = Token{Type: STRING_LIT, Literal: str, Line: tok.Line, Column: tok.Column}
		}
	case '\'':
		c, ok := l.readCharLit()
		if !ok {
			tok = Token{Type: ILLEGAL, Literal: "malformed character literal", Line: tok.Line, Column: tok.Column}
		} else {
			tok = Token{Type: CHAR_LIT, Literal: c, Line: tok.Line, Column: tok.Column}
		}
	case 0:
		tok = Token{Type: EOF, Literal: "", Line: tok.Line, Column: tok.Column}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tokenType := LookupIdent(ident)
			return Token{Type: tokenType, Literal: ident, Line: tok.Line, Column: tok.Column}
		} else if isDigit(l.ch) {
			literal, tokenType := l.readNumber()
			return Token{Type: tokenType, Literal: literal, Line: tok.Line, Column: tok.Column}
		}
		tok = single(ILLEGAL)
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
