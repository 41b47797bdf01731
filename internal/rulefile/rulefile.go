// Package rulefile reads and writes ruleset files and manages the on-disk
// ruleset library.
// This package depends on turmite but turmite does not depend on rulefile.
package rulefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/turmite/internal/rulefile/formats"
	"github.com/vovakirdan/turmite/internal/turmite"
)

var (
	// ErrMalformedFile is returned when a file does not have the ruleset shape.
	ErrMalformedFile = formats.ErrMalformed

	// ErrReservedName is returned when saving under the unsaved-table name.
	ErrReservedName = errors.New("reserved ruleset name")

	// ErrInvalidName is returned for empty names or names containing path separators.
	ErrInvalidName = errors.New("invalid ruleset name")

	// ErrUnsupportedFormat is returned for file extensions without a parser.
	ErrUnsupportedFormat = errors.New("unsupported ruleset format")
)

// Decode parses file contents according to the extension (".json", ".yaml", ".yml").
func Decode(data []byte, ext string) ([]turmite.RawRule, error) {
	var (
		f   formats.File
		err error
	)

	switch strings.ToLower(ext) {
	case ".json":
		f, err = formats.ParseJSON(data)
	case ".yaml", ".yml":
		f, err = formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return f.Rows()
}

// Encode renders a table in the format for ext. Only JSON and YAML are supported.
func Encode(rules []turmite.Rule, ext string) ([]byte, error) {
	f := formats.FromRules(rules)

	switch strings.ToLower(ext) {
	case ".json":
		return formats.MarshalJSON(f)
	case ".yaml", ".yml":
		return formats.MarshalYAML(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Read parses the ruleset file at path.
// A missing file yields an error matching fs.ErrNotExist.
func Read(path string) ([]turmite.RawRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	rows, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return rows, nil
}

// Write stores a table at path, in the format matching its extension.
func Write(path string, rules []turmite.Rule) error {
	data, err := Encode(rules, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// LoadInto reads the file at path and loads it into rs.
// On any error the table in rs is left as it was.
func LoadInto(rs *turmite.Ruleset, path string) error {
	rows, err := Read(path)
	if err != nil {
		return err
	}
	if err := rs.Load(rows); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(ext))
}
