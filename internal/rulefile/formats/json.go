package formats

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a JSON ruleset file.
func ParseJSON(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: json unmarshal: %w", ErrMalformed, err)
	}
	return f, nil
}

// MarshalJSON renders a document pretty-printed with two-space indentation.
func MarshalJSON(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}
