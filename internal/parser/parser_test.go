package parser

import (
	"testing"

	"github.com/KimNorgaard/go-envfile/internal/lexer"
	"github.com/KimNorgaard/go-envfile/internal/token"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string, signed bool) ([]Pair, []Error) {
	t.Helper()
	p := New(lexer.New([]byte(input)), signed)
	pairs := p.Parse()
	return pairs, p.Errors()
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    string
		expected token.Type
	}{
		{"bare string", "K=hello", "hello", token.STRING},
		{"bool", "K=true", "true", token.BOOL},
		{"bool mixed case", "K=False", "False", token.BOOL},
		{"integer", "K=42", "42", token.INT},
		{"float", "K=3.14", "3.14", token.FLOAT},
		{"not a float", "K=3.14.5", "3.14.5", token.STRING},
		{"negative integer stays string", "K=-7", "-7", token.STRING},
		{"negative float", "K=-0.5", "-0.5", token.FLOAT},
		{"integer overflow", "K=99999999999999999999", "99999999999999999999", token.STRING},
		{"spaces around separator", "  K  =  value  ", "value", token.STRING},
		{"empty value", "K=", "", token.STRING},
		{"value with equals", "K=a=b", "a=b", token.STRING},
		{"double quoted", `K="hello world"`, "hello world", token.STRING},
		{"single quoted", `K='hello world'`, "hello world", token.STRING},
		{"quoted integer is inferred", `K="42"`, "42", token.INT},
		{"mismatched quotes kept", `K="hello'`, `"hello'`, token.STRING},
		{"lone quote kept", `K="`, `"`, token.STRING},
		{"empty quotes", `K=""`, "", token.STRING},
		{"inline comment", "K=value # note", "value", token.STRING},
		{"inline comment tab", "K=value\t#note", "value", token.STRING},
		{"hash without space", "K=color#fff", "color#fff", token.STRING},
		{"quoted hash", `K="a #b"`, "a #b", token.STRING},
		{"quoted hash with comment", `K="a #b" # note`, "a #b", token.STRING},
		{"inline comment after integer", "K=8080 # port", "8080", token.INT},
		{"unterminated quote with comment", `K="a # b`, `"a`, token.STRING},
		{"single line block", `K="""one line"""`, "one line", token.STRING},
		{"single line block stripped", `K="""  padded  """`, "padded", token.STRING},
		{"empty single line block", `K=""""""`, "", token.STRING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, errs := parse(t, tt.input, false)
			require.Empty(t, errs)
			require.Len(t, pairs, 1)
			require.Equal(t, "K", pairs[0].Key)
			require.Equal(t, tt.value, pairs[0].Value)
			require.Equal(t, tt.expected, pairs[0].Type)
		})
	}
}

func TestParse_SignedIntegers(t *testing.T) {
	pairs, errs := parse(t, "A=-7\nB=+7\nC=-", true)
	require.Empty(t, errs)
	require.Len(t, pairs, 3)
	require.Equal(t, token.INT, pairs[0].Type)
	require.Equal(t, token.INT, pairs[1].Type)
	require.Equal(t, token.STRING, pairs[2].Type)
}

func TestParse_SkipsBlankAndComments(t *testing.T) {
	input := "\n# header\n   # indented comment\nA=1\n\n\nB=2\n"
	pairs, errs := parse(t, input, false)
	require.Empty(t, errs)
	require.Len(t, pairs, 2)
	require.Equal(t, Pair{Key: "A", Value: "1", Type: token.INT, Line: 4}, pairs[0])
	require.Equal(t, Pair{Key: "B", Value: "2", Type: token.INT, Line: 7}, pairs[1])
}

func TestParse_Duplicates(t *testing.T) {
	pairs, errs := parse(t, "A=1\nA=2", false)
	require.Empty(t, errs)
	require.Len(t, pairs, 2)
	require.Equal(t, "2", pairs[1].Value)
}

func TestParse_MultiLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "seeded first line",
			input:    "K=\"\"\"first\nsecond\"\"\"",
			expected: "first\nsecond",
		},
		{
			name:     "delimiters on their own lines",
			input:    "K=\"\"\"\nfirst\nsecond\n\"\"\"",
			expected: "first\nsecond",
		},
		{
			name:     "internal blank line",
			input:    "K=\"\"\"a\n\nb\"\"\"",
			expected: "a\n\nb",
		},
		{
			name:     "comment-like line is content",
			input:    "K=\"\"\"a\n# not a comment\nb\"\"\"",
			expected: "a\n# not a comment\nb",
		},
		{
			name:     "equals inside block",
			input:    "K=\"\"\"x=1\ny=2\"\"\"",
			expected: "x=1\ny=2",
		},
		{
			name:     "interior indentation kept",
			input:    "K=\"\"\"a\n  b\n    c\"\"\"",
			expected: "a\n  b\n    c",
		},
		{
			name:     "outer whitespace stripped",
			input:    "K=\"\"\"\n\n  a\nb  \n\n\"\"\"",
			expected: "a\nb",
		},
		{
			name:     "closing line with trailing spaces",
			input:    "K=\"\"\"a\nb\"\"\"   ",
			expected: "a\nb",
		},
		{
			name:     "crlf",
			input:    "K=\"\"\"a\r\nb\"\"\"\r\n",
			expected: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, errs := parse(t, tt.input, false)
			require.Empty(t, errs)
			require.Len(t, pairs, 1)
			require.Equal(t, tt.expected, pairs[0].Value)
			require.Equal(t, token.STRING, pairs[0].Type)
			require.Equal(t, 1, pairs[0].Line)
		})
	}
}

func TestParse_MultiLineValueIsNotInferred(t *testing.T) {
	pairs, errs := parse(t, "K=\"\"\"\n42\n\"\"\"", false)
	require.Empty(t, errs)
	require.Equal(t, "42", pairs[0].Value)
	require.Equal(t, token.STRING, pairs[0].Type)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Error
	}{
		{
			name:     "missing separator",
			input:    "A=1\nnotakeyvalue\nB=2",
			expected: []Error{{Line: 2, Content: "notakeyvalue", Message: "expected '=' after key"}},
		},
		{
			name:     "missing key",
			input:    "=value",
			expected: []Error{{Line: 1, Content: "=value", Message: "missing key before '='"}},
		},
		{
			name:  "unterminated block",
			input: "A=1\nkey=\"\"\"partial\nmore",
			expected: []Error{{
				Line:    2,
				Content: `key="""partial`,
				Message: `unterminated multi-line value for key "key"`,
			}},
		},
		{
			name:  "every malformed line is reported",
			input: "one\nA=1\ntwo",
			expected: []Error{
				{Line: 1, Content: "one", Message: "expected '=' after key"},
				{Line: 3, Content: "two", Message: "expected '=' after key"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parse(t, tt.input, false)
			require.Equal(t, tt.expected, errs)
		})
	}
}

func TestStripInlineComment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"value", "value"},
		{"value # c", "value "},
		{"a # b # c", "a "},
		{"#x", "#x"},
		{"a#b", "a#b"},
		{`"a # b"`, `"a # b"`},
		{`"a # b" # c`, `"a # b"`},
		{`'a # b' # c`, `'a # b'`},
		{`"a # b`, `"a `},
		{`"foo" # set to "bar"`, `"foo"`},
		{`'foo' # was 'bar'`, `'foo'`},
		{`"foo" # note`, `"foo"`},
		{`"a #b" # c "d"`, `"a #b"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, StripInlineComment(tt.input))
		})
	}
}
