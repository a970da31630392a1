package simlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Load errors.
var (
	// ErrInputNotFound is returned when the log file cannot be opened.
	ErrInputNotFound = errors.New("log file not found")

	// ErrInputMalformed is returned when the log file is not valid JSON or
	// does not match the document shape.
	ErrInputMalformed = errors.New("log file is not valid JSON")
)

// Load reads and decodes the log file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at '%s'", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w at '%s': %v", ErrInputNotFound, path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return doc, nil
}

// Decode decodes a log document from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return Parse(data)
}

// Parse decodes a log document from data. Invalid JSON is ErrInputMalformed;
// a field of the wrong JSON type is an ErrSchemaViolation wrapped in a
// *RecordError.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, locateTypeError(data, typeErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrInputMalformed, err)
	}
	return &doc, nil
}
