package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/rulefile"
	"github.com/vovakirdan/turmite/internal/turmite"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Copy a ruleset file into the library",
	Long: `Copy a .json, .yaml or .yml ruleset file into the library, stored as
JSON under the file's base name. The file must load under the configured
state and color limits.

Examples:
  turmite import ./spiral.json
  turmite import ~/Downloads/highway.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runImport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	name, err := lib.Import(args[0], cfg.TurmiteLimits())
	if err != nil {
		fail("%v", err)
	}
	logger.Info("imported ruleset", "name", name, "from", args[0])
	fmt.Printf("Imported %s. Run 'turmite run %s' to run it.\n", name, name)
}

var exportCmd = &cobra.Command{
	Use:   "export <ruleset> <file>",
	Short: "Write a ruleset to a file",
	Long: `Write a library ruleset or a preset to a file. The extension picks
the format (.json, .yaml or .yml).

Examples:
  turmite export langton ./langton.json
  turmite export mine ./mine.yaml`,
	Args: cobra.ExactArgs(2),
	Run:  runExport,
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	if lib.Exists(args[0]) {
		if err := lib.Export(args[0], args[1], cfg.TurmiteLimits()); err != nil {
			fail("%v", err)
		}
	} else {
		name, rows, err := resolveRuleset(lib, args[0], "")
		if err != nil {
			fail("%v", err)
		}
		rs := turmite.NewRuleset(cfg.TurmiteLimits())
		if err := rs.Load(rows); err != nil {
			fail("%s: %v", name, err)
		}
		if err := rulefile.Write(args[1], rs.Rows()); err != nil {
			fail("%v", err)
		}
	}
	logger.Info("exported ruleset", "name", args[0], "to", args[1])
}

var deleteCmd = &cobra.Command{
	Use:   "delete <ruleset>",
	Short: "Remove a ruleset from the library",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	if err := lib.Delete(args[0]); err != nil {
		fail("%v", err)
	}
	logger.Info("deleted ruleset", "name", args[0])
}
