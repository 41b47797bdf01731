package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/turmite/internal/registry"
	"github.com/vovakirdan/turmite/internal/rulefile"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// resolveRuleset finds the table named on the command line.
// Lookup order: --preset, library name, preset ID, file path.
// An empty arg and preset returns nil rows.
func resolveRuleset(lib *rulefile.Library, arg, preset string) (string, []turmite.RawRule, error) {
	if preset != "" {
		p, err := registry.Get(preset)
		if err != nil {
			return "", nil, err
		}
		return p.ID, p.Rows, nil
	}

	if arg == "" {
		return "", nil, nil
	}

	if rulefile.ValidateName(arg) == nil && lib.Exists(arg) {
		rows, err := lib.Load(arg)
		return arg, rows, err
	}

	if registry.Exists(arg) {
		p, err := registry.Get(arg)
		if err != nil {
			return "", nil, err
		}
		return p.ID, p.Rows, nil
	}

	if _, err := os.Stat(arg); err == nil {
		rows, err := rulefile.Read(arg)
		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return name, rows, err
	}

	return "", nil, fmt.Errorf("ruleset %q is not in %s, not a preset and not a file: %w", arg, lib.Root, fs.ErrNotExist)
}
