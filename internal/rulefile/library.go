package rulefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/turmite/internal/rulefile/formats"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// Ext is the extension used for rulesets written by the library.
const Ext = ".json"

// Library is a directory of named ruleset files.
type Library struct {
	Root string
}

// NewLibrary creates a library rooted at dir. A leading ~ is expanded.
func NewLibrary(dir string) (*Library, error) {
	if dir != "" && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("rulefile: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	return &Library{Root: dir}, nil
}

// ValidateName checks that name can be stored in the library.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if name == turmite.UnsavedName {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

// Path returns the file the library writes name to.
func (l *Library) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.Root, name+Ext), nil
}

// List returns the names of stored rulesets in sorted order.
// A missing library directory is an empty library.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rulefile: reading library %s: %w", l.Root, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isSupportedExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if name == turmite.UnsavedName || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Find returns the file holding name, trying every supported extension.
func (l *Library) Find(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	for _, ext := range formats.FormatExtensions() {
		path := filepath.Join(l.Root, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("rulefile: ruleset %q: %w", name, fs.ErrNotExist)
}

// Load reads the raw rows stored under name.
func (l *Library) Load(name string) ([]turmite.RawRule, error) {
	path, err := l.Find(name)
	if err != nil {
		return nil, err
	}
	return Read(path)
}

// Exists reports whether name is stored in the library.
func (l *Library) Exists(name string) bool {
	_, err := l.Find(name)
	return err == nil
}

// Save writes a table under name as JSON, replacing any previous file.
func (l *Library) Save(name string, rules []turmite.Rule) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return fmt.Errorf("rulefile: cannot create directory %s: %w", l.Root, err)
	}
	return Write(path, rules)
}

// Import copies the ruleset file at src into the library after checking that
// it parses and loads under limits. The stored copy is normalized to JSON.
// It returns the name the ruleset is stored under.
func (l *Library) Import(src string, limits turmite.Limits) (string, error) {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if err := ValidateName(name); err != nil {
		return "", err
	}

	rs := turmite.NewRuleset(limits)
	if err := LoadInto(rs, src); err != nil {
		return "", err
	}

	if err := l.Save(name, rs.Rows()); err != nil {
		return "", err
	}
	return name, nil
}

// Export writes the ruleset stored under name to dst, after checking that it
// loads under limits. The format follows the extension of dst.
func (l *Library) Export(name, dst string, limits turmite.Limits) error {
	rows, err := l.Load(name)
	if err != nil {
		return err
	}

	rs := turmite.NewRuleset(limits)
	if err := rs.Load(rows); err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	return Write(dst, rs.Rows())
}

// Delete removes every file stored under name.
func (l *Library) Delete(name string) error {
	path, err := l.Find(name)
	if err != nil {
		return err
	}
	for err == nil {
		if rmErr := os.Remove(path); rmErr != nil {
			return fmt.Errorf("rulefile: deleting %s: %w", path, rmErr)
		}
		path, err = l.Find(name)
	}
	return nil
}
