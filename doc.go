/*
Package envfile encodes and decodes flat key/value configuration files
of the form commonly named ".env". The API mirrors the standard
`encoding/json` package.

A file holds one entry per line:

	# full-line comments and blank lines are ignored
	NAME=service
	PORT=8080            # inline comments follow whitespace
	RATIO=0.75
	DEBUG=true
	GREETING="hello world"
	MOTD="""
	first line

	third line
	"""

Values are scalars. On decode, "true" and "false" (in any case) become
booleans, runs of ASCII digits become integers, decimal fractions become
floats, and everything else is a string. One pair of matching outer quotes,
double or single, is removed without processing escapes. A value opened with
triple double quotes continues until a line ending with triple quotes; its
text is trimmed of surrounding whitespace.

On encode, values containing a newline are written as triple-quoted blocks,
values containing a space, '#' or '=' are double-quoted, and all others are
written bare.

Decoding into a Document keeps the entries in file order; a name that
occurs twice keeps its first position and its last value:

	doc, err := envfile.Parse(data)
	if err != nil {
		// handle error; a ParseErrors value names each malformed line
	}
	port, _ := doc.Get("PORT") // port.Kind() == envfile.KindInt

Structs map to entries through "env" field tags:

	type Config struct {
		Name  string  `env:"NAME"`
		Port  int     `env:"PORT"`
		Ratio float64 `env:"RATIO,omitempty"`
	}

	var cfg Config
	if err := envfile.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

The store subpackage persists documents on a filesystem with create, read,
update and delete operations.
*/
package envfile
