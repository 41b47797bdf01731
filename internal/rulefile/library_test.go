package rulefile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/turmite/internal/turmite"
)

func newLibrary(t *testing.T) *Library {
	t.Helper()

	lib, err := NewLibrary(filepath.Join(t.TempDir(), "rulesets"))
	if err != nil {
		t.Fatalf("NewLibrary() failed: %v", err)
	}
	return lib
}

func TestLibraryEmpty(t *testing.T) {
	lib := newLibrary(t)

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, expected empty", names)
	}

	if _, err := lib.Load("langton"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, expected fs.ErrNotExist", err)
	}
}

func TestLibrarySaveLoadList(t *testing.T) {
	lib := newLibrary(t)
	rules := langtonRules(t)

	for _, name := range []string{"zeta", "alpha", "langton"} {
		if err := lib.Save(name, rules); err != nil {
			t.Fatalf("Save(%q) failed: %v", name, err)
		}
	}

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	expected := []string{"alpha", "langton", "zeta"}
	if len(names) != len(expected) {
		t.Fatalf("List() = %v, expected %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, names[i], expected[i])
		}
	}

	rows, err := lib.Load("langton")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	rs := turmite.NewRuleset(turmite.DefaultLimits())
	if err := rs.Load(rows); err != nil {
		t.Fatalf("loading saved rows failed: %v", err)
	}
	if rs.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", rs.Len())
	}

	path, _ := lib.Path("langton")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != langtonJSON {
		t.Errorf("saved file =\n%s\nexpected\n%s", data, langtonJSON)
	}
}

func TestLibraryListSkipsReservedAndForeignFiles(t *testing.T) {
	lib := newLibrary(t)
	if err := os.MkdirAll(lib.Root, 0o755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		turmite.UnsavedName + ".json": langtonJSON,
		"notes.txt":                   "hello",
		"spiral.yaml":                 langtonYAML,
		"spiral.json":                 langtonJSON,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(lib.Root, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(lib.Root, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := lib.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(names) != 1 || names[0] != "spiral" {
		t.Errorf("List() = %v, expected [spiral]", names)
	}
}

func TestLibraryYAMLEntry(t *testing.T) {
	lib := newLibrary(t)
	if err := os.MkdirAll(lib.Root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib.Root, "ant.yml"), []byte(langtonYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := lib.Load("ant")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Load() returned %d rows, expected 2", len(rows))
	}
}

func TestLibraryNames(t *testing.T) {
	lib := newLibrary(t)
	rules := langtonRules(t)

	tests := []struct {
		name     string
		expected error
	}{
		{turmite.UnsavedName, ErrReservedName},
		{"", ErrInvalidName},
		{"..", ErrInvalidName},
		{"a/b", ErrInvalidName},
		{`a\b`, ErrInvalidName},
	}

	for _, tc := range tests {
		if err := lib.Save(tc.name, rules); !errors.Is(err, tc.expected) {
			t.Errorf("Save(%q) error = %v, expected %v", tc.name, err, tc.expected)
		}
	}
}

func TestLibraryImport(t *testing.T) {
	lib := newLibrary(t)
	src := filepath.Join(t.TempDir(), "highway.yaml")
	if err := os.WriteFile(src, []byte(langtonYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	name, err := lib.Import(src, turmite.DefaultLimits())
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if name != "highway" {
		t.Errorf("Import() name = %q, expected highway", name)
	}

	path, _ := lib.Path("highway")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("imported file should be stored as JSON: %v", err)
	}
}

func TestLibraryImportRejects(t *testing.T) {
	dir := t.TempDir()
	lib := newLibrary(t)

	reserved := filepath.Join(dir, turmite.UnsavedName+".json")
	if err := os.WriteFile(reserved, []byte(langtonJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Import(reserved, turmite.DefaultLimits()); !errors.Is(err, ErrReservedName) {
		t.Errorf("Import(reserved) error = %v, expected ErrReservedName", err)
	}

	tooBig := filepath.Join(dir, "big.json")
	data := `{"ruleset": [
		{"currState": 0, "currColor": 0, "turnDir": "R", "newColor": 1, "newState": 3},
		{"currState": 0, "currColor": 1, "turnDir": "L", "newColor": 0, "newState": 0}
	]}`
	if err := os.WriteFile(tooBig, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Import(tooBig, turmite.DefaultLimits()); !errors.Is(err, turmite.ErrInvalidRule) {
		t.Errorf("Import(big) error = %v, expected ErrInvalidRule", err)
	}

	if lib.Exists("big") {
		t.Error("a rejected import should not be stored")
	}
}

func TestLibraryExportAndDelete(t *testing.T) {
	lib := newLibrary(t)
	if err := lib.Save("langton", langtonRules(t)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "out.yaml")
	if err := lib.Export("langton", dst, turmite.DefaultLimits()); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	rows, err := Read(dst)
	if err != nil {
		t.Fatalf("Read(exported) failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("exported file has %d rows, expected 2", len(rows))
	}

	if err := lib.Delete("langton"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if lib.Exists("langton") {
		t.Error("Exists() should be false after Delete()")
	}
	if err := lib.Delete("langton"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second Delete() error = %v, expected fs.ErrNotExist", err)
	}
}
