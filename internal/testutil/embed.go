package testutil

import (
	"embed"
	"fmt"
	"io/fs"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Sources returns the names of the embedded envfile sources, without their
// ".env" extension. Each has a ".golden" file holding its canonical form.
func Sources() ([]string, error) {
	matches, err := fs.Glob(TestdataFS, "testdata/*.env")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m[len("testdata/") : len(m)-len(".env")]
	}
	return names, nil
}
