// turmite is a terminal simulator for turmites: Langton's ant generalized to
// several internal states and cell colors.
//
// Usage:
//
//	turmite run [ruleset]          - Run a ruleset in the terminal (or headless)
//	turmite edit [ruleset]         - Edit a rule table
//	turmite list                   - List saved rulesets
//	turmite presets                - List built-in presets
//	turmite show <ruleset>         - Print a rule table
//	turmite import <file>          - Copy a ruleset file into the library
//	turmite export <ruleset> <file>
//	turmite delete <ruleset>
//	turmite history [ruleset]      - Show recorded runs
//	turmite serve                  - Start SSH server
//
// Global flags:
//
//	--config <path>    - Configuration file
//	--db <path>        - Run history database (default: ~/.turmite/runs.db)
//	--rulesets <dir>   - Ruleset library (default: ~/.turmite/rulesets)
//	--fps <rate>       - Redraws per second
//	--speed <preset>   - slow, normal, fast or max
//	--verbose          - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turmite/internal/config"
	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/rulefile"
	"github.com/vovakirdan/turmite/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagRulesets string
	flagFPS      int
	flagSpeed    string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turmite",
	Short: "Turmite - Langton's ant and friends in your terminal",
	Long: `Turmite simulates turmites: a head on an endless grid that reads the
color under it, turns, repaints the cell, changes its internal state and
moves on, all according to an editable rule table.

Available commands:
  run      - Run a ruleset (interactive or headless)
  edit     - Edit a rule table
  list     - Show saved rulesets
  presets  - Show built-in presets
  show     - Print a rule table
  import   - Copy a ruleset file into the library
  export   - Write a ruleset to a file
  delete   - Remove a ruleset from the library
  history  - Show recorded runs
  serve    - Start SSH server
  config   - Print the configuration

Examples:
  turmite run langton
  turmite run --preset llr --speed fast
  turmite run langton --headless --steps 11000
  turmite edit
  turmite serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagRulesets, "rulesets", "", "Ruleset library directory (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Redraws per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, max")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the structured logger used by non-interactive commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "turmite",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	if flagRulesets != "" {
		cfg.Paths.Rulesets = flagRulesets
	}
	if flagFPS > 0 {
		cfg.Simulation.FPS = flagFPS
	}
	if flagSpeed != "" {
		if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
			fail("%v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// openLibrary opens the ruleset library from the configuration.
func openLibrary(cfg config.Config) *rulefile.Library {
	lib, err := rulefile.NewLibrary(cfg.Paths.Rulesets)
	if err != nil {
		fail("%v", err)
	}
	return lib
}

// openStore opens the run history. Failures are logged and history is disabled.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		logger.Warn("could not open run history, runs will not be recorded", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the view to the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.FPS = cfg.Simulation.FPS
	rc.Interval = cfg.Interval()
	return rc
}
