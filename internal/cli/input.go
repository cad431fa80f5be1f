package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// readDocument returns the input document from the first argument, a file,
// or r, in that order of preference. Comments and trailing commas are
// stripped so hand-written JSONC files are accepted.
func readDocument(args []string, file string, r io.Reader) ([]byte, error) {
	var data []byte
	switch {
	case len(args) > 0:
		data = []byte(args[0])
	case file != "":
		b, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		data = b
	default:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = b
	}

	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("no input document")
	}
	return data, nil
}
