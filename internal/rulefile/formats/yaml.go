package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML ruleset file with the same keys as the JSON form.
func ParseYAML(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: yaml unmarshal: %w", ErrMalformed, err)
	}
	return f, nil
}

// MarshalYAML renders a document as YAML.
func MarshalYAML(f File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}
