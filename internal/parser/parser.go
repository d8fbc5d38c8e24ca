package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-envfile/internal/lexer"
	"github.com/KimNorgaard/go-envfile/internal/token"
)

// TripleQuote delimits a multi-line value.
const TripleQuote = `"""`

// Pair is a single decoded name/value assignment.
type Pair struct {
	Key   string
	Value string
	Type  token.Type
	Line  int
}

// Error describes a line that could not be decoded.
type Error struct {
	Line    int
	Content string
	Message string
}

// block holds the state of a multi-line value that is being accumulated.
type block struct {
	key     string
	line    int
	content string
	lines   []string
}

// Parser holds the state of the parser.
type Parser struct {
	l      *lexer.Lexer
	signed bool
	errors []Error

	cur   *block
	pairs []Pair
}

// New creates a new parser. If signedIntegers is true, values such as "-7"
// are inferred as integers instead of strings.
func New(l *lexer.Lexer, signedIntegers bool) *Parser {
	return &Parser{l: l, signed: signedIntegers}
}

// Errors returns the errors encountered during parsing.
func (p *Parser) Errors() []Error {
	return p.errors
}

// Parse consumes all lines and returns the decoded pairs in input order.
// Duplicate keys are returned as they appear; resolving them is up to the
// caller. When Errors is non-empty the returned pairs must not be used.
func (p *Parser) Parse() []Pair {
	for {
		tok := p.l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if p.cur != nil {
			p.continueBlock(tok)
			continue
		}
		switch tok.Type {
		case token.BLANK, token.COMMENT:
			continue
		default:
			p.parseAssignment(tok)
		}
	}

	if p.cur != nil {
		p.errors = append(p.errors, Error{
			Line:    p.cur.line,
			Content: p.cur.content,
			Message: fmt.Sprintf("unterminated multi-line value for key %q", p.cur.key),
		})
		p.cur = nil
	}
	return p.pairs
}

func (p *Parser) parseAssignment(tok token.Token) {
	key, value, found := strings.Cut(tok.Literal, "=")
	if !found {
		p.errors = append(p.errors, Error{Line: tok.Line, Content: tok.Literal, Message: "expected '=' after key"})
		return
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		p.errors = append(p.errors, Error{Line: tok.Line, Content: tok.Literal, Message: "missing key before '='"})
		return
	}

	if rest, ok := strings.CutPrefix(value, TripleQuote); ok {
		if len(rest) >= len(TripleQuote) && strings.HasSuffix(rest, TripleQuote) {
			// Opened and closed on the same line.
			p.emit(key, strings.TrimSpace(strings.TrimSuffix(rest, TripleQuote)), token.STRING, tok.Line)
			return
		}
		p.cur = &block{key: key, line: tok.Line, content: tok.Literal, lines: []string{rest}}
		return
	}

	value = strings.TrimSpace(StripInlineComment(value))
	value, _ = Unquote(value)

	typ := lexer.Classify(value, p.signed)
	if typ == token.INT {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			// Out of int64 range; keep the digits verbatim.
			typ = token.STRING
		}
	}
	p.emit(key, value, typ, tok.Line)
}

// continueBlock appends a line to the open multi-line value. Blank and
// comment lines are content here, and interior indentation is preserved.
func (p *Parser) continueBlock(tok token.Token) {
	if !strings.HasSuffix(tok.Literal, TripleQuote) {
		p.cur.lines = append(p.cur.lines, tok.Raw)
		return
	}
	last := strings.TrimRightFunc(tok.Raw, unicode.IsSpace)
	p.cur.lines = append(p.cur.lines, strings.TrimSuffix(last, TripleQuote))

	value := strings.TrimSpace(strings.Join(p.cur.lines, "\n"))
	p.emit(p.cur.key, value, token.STRING, p.cur.line)
	p.cur = nil
}

func (p *Parser) emit(key, value string, typ token.Type, line int) {
	p.pairs = append(p.pairs, Pair{Key: key, Value: value, Type: typ, Line: line})
}

// StripInlineComment removes a trailing comment, which starts at the first
// '#' preceded by whitespace. For a value opening with a quote, the comment
// starts at the first such '#' after a matching closing quote; a value
// wholly enclosed in quotes with no such '#' is kept as is.
func StripInlineComment(value string) string {
	var cuts []int
	for i := 1; i < len(value); i++ {
		if value[i] != '#' {
			continue
		}
		r, _ := utf8.DecodeLastRuneInString(value[:i])
		if unicode.IsSpace(r) {
			cuts = append(cuts, i)
		}
	}
	if len(cuts) == 0 {
		return value
	}

	if q := value[0]; q == '"' || q == '\'' {
		for _, i := range cuts {
			head := strings.TrimSpace(value[:i])
			if len(head) >= 2 && head[len(head)-1] == q {
				return head
			}
		}
		if len(value) >= 2 && value[len(value)-1] == q {
			return value
		}
	}
	return value[:cuts[0]]
}

// Unquote strips exactly one pair of matching outer double or single quotes.
// No escape sequences are processed.
func Unquote(value string) (string, bool) {
	if len(value) < 2 {
		return value, false
	}
	q := value[0]
	if (q != '"' && q != '\'') || value[len(value)-1] != q {
		return value, false
	}
	return value[1 : len(value)-1], true
}
