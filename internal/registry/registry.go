// Package registry provides a global registry of built-in rulesets.
// Presets register themselves in init() functions, so the CLI and the picker
// menu can offer them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/turmite/internal/turmite"
)

// Preset is a named, built-in ruleset.
type Preset struct {
	// ID is the identifier used on the command line (e.g., "langton").
	ID string

	// Title is a human-readable name for menus.
	Title string

	// Description says what the pattern does.
	Description string

	// Rows is the table in canonical order.
	Rows []turmite.RawRule
}

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID          string
	Title       string
	Description string
	Rules       int
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered.
func Register(p Preset) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.ID]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", p.ID))
	}

	presets[p.ID] = p
}

// List returns information about all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(presets))
	for id, p := range presets {
		result = append(result, PresetInfo{
			ID:          id,
			Title:       p.Title,
			Description: p.Description,
			Rules:       len(p.Rows),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a copy of the preset with the given ID.
func Get(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("registry: unknown preset %q", id)
	}

	p.Rows = append([]turmite.RawRule(nil), p.Rows...)
	return p, nil
}

// Create builds a ruleset from the preset with the given ID.
// Fails if the preset needs more states or colors than limits allow.
func Create(id string, limits turmite.Limits) (*turmite.Ruleset, error) {
	p, err := Get(id)
	if err != nil {
		return nil, err
	}

	rs := turmite.NewRuleset(limits)
	if err := rs.Load(p.Rows); err != nil {
		return nil, fmt.Errorf("registry: preset %q: %w", id, err)
	}
	return rs, nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}

// MustRows parses rules in the "0-0-L-1-1" form. It panics on malformed
// input and is meant for preset tables written in source.
func MustRows(rules ...string) []turmite.RawRule {
	rows := make([]turmite.RawRule, len(rules))
	for i, s := range rules {
		raw, err := turmite.ParseRawRule(s)
		if err != nil {
			panic(fmt.Sprintf("registry: %v", err))
		}
		rows[i] = raw
	}
	return rows
}
