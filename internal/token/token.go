package token

// Type is the type of a token.
type Type string

// Token is a single classified physical line of an envfile source.
type Token struct {
	Type Type
	// Raw is the line as it appeared in the input, without its line terminator.
	Raw string
	// Literal is Raw with surrounding whitespace removed.
	Literal string
	Line    int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // A line that cannot be classified
	EOF     Type = "EOF"     // End of input

	// Line kinds
	BLANK   Type = "BLANK"   // empty or whitespace-only line
	COMMENT Type = "COMMENT" // # a comment
	TEXT    Type = "TEXT"    // any other line; the parser decides its meaning

	// Scalar kinds produced by type inference
	BOOL   Type = "BOOL"   // true, FALSE
	INT    Type = "INT"    // 12345
	FLOAT  Type = "FLOAT"  // 123.45, -.5
	STRING Type = "STRING" // anything else
)

var keywords = map[string]bool{
	"true":  true,
	"false": false,
}

// LookupBool reports whether lit is a boolean keyword and, if so, its value.
// The match is case-insensitive.
func LookupBool(lit string) (value, ok bool) {
	if len(lit) != 4 && len(lit) != 5 {
		return false, false
	}
	value, ok = keywords[toLowerASCII(lit)]
	return value, ok
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
