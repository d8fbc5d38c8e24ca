package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-envfile/internal/lexer"
	"github.com/KimNorgaard/go-envfile/internal/token"
)

const tripleQuote = `"""`

var (
	// ErrInvalidKey is returned for keys that cannot be written unambiguously.
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnrepresentable is returned for strings that no quoting style can
	// round-trip, such as a multi-line string with an inner line ending in """.
	ErrUnrepresentable = errors.New("value cannot be represented")
)

// Formatter writes key/value entries to an output stream.
type Formatter struct {
	w io.Writer
}

// New returns a new formatter that writes to w.
func New(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// WriteEntry writes a single entry, terminated by a newline. text is the
// canonical string form of the value. With literal set, text is written so
// that it decodes as a string even if it looks like a boolean or a number.
func (f *Formatter) WriteEntry(key, text string, literal bool) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	quote := Quote
	if literal {
		quote = QuoteLiteral
	}
	quoted, err := quote(text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f.w, key+"="+quoted+"\n")
	return err
}

// ValidateKey checks that key is non-empty, carries no surrounding
// whitespace, contains neither '=' nor a line break, and cannot be mistaken
// for a comment.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: %q has leading or trailing whitespace", ErrInvalidKey, key)
	case strings.ContainsAny(key, "=\n\r"):
		return fmt.Errorf("%w: %q contains '=' or a line break", ErrInvalidKey, key)
	case key[0] == '#':
		return fmt.Errorf("%w: %q starts with '#'", ErrInvalidKey, key)
	}
	return nil
}

// Quote returns the on-disk form of a value, in order of preference:
// a triple-quoted block if s spans lines, a double-quoted string if s holds
// a space, '#' or '=', and s itself otherwise. Single quotes are used
// instead when double quotes cannot round-trip: s starts with two double
// quotes, which would open a block, or s holds a double quote followed by
// an inline comment marker, which would end the value early.
func Quote(s string) (string, error) {
	if strings.Contains(s, "\n") {
		return block(s)
	}
	if !needsQuotes(s) && !strings.HasPrefix(s, tripleQuote) {
		return s, nil
	}
	if !strings.HasPrefix(s, `""`) && !closesBeforeComment(s, '"') {
		return `"` + s + `"`, nil
	}
	if !closesBeforeComment(s, '\'') {
		return "'" + s + "'", nil
	}
	return "", fmt.Errorf("%w: %q closes both quote styles before a comment marker", ErrUnrepresentable, s)
}

// QuoteLiteral is like Quote, but uses a triple-quoted block for strings
// that would otherwise be inferred as a boolean or a number. Block values
// are never inferred.
func QuoteLiteral(s string) (string, error) {
	if lexer.Classify(s, true) != token.STRING {
		return block(s)
	}
	return Quote(s)
}

func needsQuotes(s string) bool {
	if strings.ContainsAny(s, " #=") {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	// A bare value wrapped in matching quotes would lose them on decode.
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return true
	}
	return false
}

// closesBeforeComment reports whether s, wrapped in q, would read back
// shorter: a q followed by whitespace and '#' is taken as the closing quote
// and the rest as a comment.
func closesBeforeComment(s string, q byte) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsSpace(r) {
			continue
		}
		head := strings.TrimRightFunc(s[:i], unicode.IsSpace)
		if head != "" && head[len(head)-1] == q {
			return true
		}
	}
	return false
}

// block wraps s in triple quotes. Every line but the last is checked for a
// trailing delimiter, which would end the block early when read back, and
// for a carriage return, which would be read as part of the line ending.
func block(s string) (string, error) {
	lines := strings.Split(s, "\n")
	for _, line := range lines[:len(lines)-1] {
		if strings.HasSuffix(strings.TrimSpace(line), tripleQuote) {
			return "", fmt.Errorf("%w: line %q ends with %s inside a multi-line value", ErrUnrepresentable, line, tripleQuote)
		}
		if strings.HasSuffix(line, "\r") {
			return "", fmt.Errorf("%w: line %q ends with a carriage return inside a multi-line value", ErrUnrepresentable, line)
		}
	}
	// Trailing whitespace on the opening line would be trimmed on decode,
	// so such text starts on the next line instead.
	if len(lines) > 1 && strings.TrimRightFunc(lines[0], unicode.IsSpace) != lines[0] {
		s = "\n" + s
	}
	return tripleQuote + s + tripleQuote, nil
}
