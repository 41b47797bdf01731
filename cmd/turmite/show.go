package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/turmite"
)

var showCmd = &cobra.Command{
	Use:   "show <ruleset>",
	Short: "Print a rule table",
	Long: `Print a ruleset from the library, a preset or a file, after checking
that it loads.

Each rule reads state-color-turn-paint-next, e.g. 0-0-R-1-0: in state 0 on
color 0, turn right, paint color 1 and stay in state 0.

Examples:
  turmite show langton
  turmite show ./my-rules.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	lib := openLibrary(cfg)

	name, rows, err := resolveRuleset(lib, args[0], "")
	if err != nil {
		fail("%v", err)
	}

	rs := turmite.NewRuleset(cfg.TurmiteLimits())
	if err := rs.Load(rows); err != nil {
		fail("%s: %v", name, err)
	}

	fmt.Printf("%s - %d rules, states 0-%d, colors 0-%d\n", name, rs.Len(), rs.HighestState(), rs.HighestColor())
	fmt.Println()
	fmt.Println(rs.String())
}
