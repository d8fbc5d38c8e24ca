package lexer

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-envfile/internal/token"
)

// Lexer holds the state for splitting envfile source into lines.
type Lexer struct {
	input []byte
	pos   int
	line  int
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next physical line, classified as BLANK, COMMENT or
// TEXT. Once the input is exhausted it returns EOF forever.
func (l *Lexer) NextToken() token.Token {
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Line: l.line + 1}
	}

	var raw []byte
	if i := bytes.IndexByte(l.input[l.pos:], '\n'); i >= 0 {
		raw = l.input[l.pos : l.pos+i]
		l.pos += i + 1
	} else {
		raw = l.input[l.pos:]
		l.pos = len(l.input)
	}
	l.line++

	// Accept CRLF line endings.
	raw = bytes.TrimSuffix(raw, []byte{'\r'})

	tok := token.Token{Raw: string(raw), Line: l.line}
	tok.Literal = strings.TrimSpace(tok.Raw)
	switch {
	case tok.Literal == "":
		tok.Type = token.BLANK
	case tok.Literal[0] == '#':
		tok.Type = token.COMMENT
	default:
		tok.Type = token.TEXT
	}
	return tok
}

// Tokens drains the lexer and returns every line token, excluding EOF.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}
