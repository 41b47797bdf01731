package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/platform/tui"
	"github.com/vovakirdan/turmite/internal/storage"
	"github.com/vovakirdan/turmite/internal/turmite"
)

var editCmd = &cobra.Command{
	Use:   "edit [ruleset]",
	Short: "Edit a rule table",
	Long: `Open the rule editor on a ruleset, or on the default table.

Every change is repaired immediately: raising a new state or color adds the
rules it needs, lowering one removes rules nothing can reach. Edits that
break a bound are rejected and the table is kept.

Controls:
  Up/Down     - Select rule
  Left/Right  - Select field
  Enter       - Type a new value
  T           - Cycle the turn (L, R, N, U)
  Ctrl+S      - Save to the library
  Esc         - Back to the lattice

Examples:
  turmite edit
  turmite edit langton`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	name, rows, err := resolveRuleset(lib, arg, "")
	if err != nil {
		fail("%v", err)
	}
	if rows == nil {
		name = turmite.UnsavedName
		for _, r := range turmite.NewRuleset(cfg.TurmiteLimits()).Rows() {
			rows = append(rows, r.Raw())
		}
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	env := &tui.Env{
		Config:  cfg,
		Library: lib,
		Store:   store,
		Source:  storage.SourceTUI,
	}
	start := tui.Start{Name: name, Rows: rows, Editor: true}

	if err := tui.Run(context.Background(), env, runtimeConfig(cfg), start); err != nil {
		fail("%v", err)
	}
}
