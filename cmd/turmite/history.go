package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryID    string
)

var historyCmd = &cobra.Command{
	Use:   "history [ruleset]",
	Short: "Show recorded runs",
	Long: `Display recent runs, across all rulesets or for one ruleset, with
per-ruleset totals.

Runs are recorded when an interactive run is reset, switched or quit, and at
the end of every headless run.

Examples:
  turmite history
  turmite history langton --limit 50
  turmite history --id 3f2b...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Show one run with its rule table")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	store := openStore(cfg, logger)
	if store == nil {
		fail("run history is unavailable")
	}
	defer store.Close()

	if flagHistoryID != "" {
		showRun(store, flagHistoryID)
		return
	}
	if len(args) == 1 {
		showRulesetHistory(store, args[0])
		return
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'turmite run langton' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-16s  %-12s  %-9s  %-8s  %s\n", "ID", "Date", "Ruleset", "Steps", "Painted", "Source")
	fmt.Printf("  %-8s  %-16s  %-12s  %-9s  %-8s  %s\n", "--", "----", "-------", "-----", "-------", "------")

	for _, r := range runs {
		source := r.Source
		if r.User != "" {
			source = r.User + "@" + source
		}
		fmt.Printf("  %-8s  %-16s  %-12s  %-9d  %-8d  %s\n",
			shortID(r.ID), r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Ruleset, r.Steps, r.Painted, source)
	}

	stats, err := store.AllStats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	fmt.Println()
	fmt.Println("Totals")
	fmt.Println()
	for _, st := range stats {
		fmt.Printf("  %-12s  %d runs, %d steps, longest %d\n", st.Ruleset, st.Runs, st.TotalSteps, st.MaxSteps)
	}
}

// showRulesetHistory prints the longest and the latest runs of one ruleset.
func showRulesetHistory(store *storage.Store, name string) {
	stats, err := store.RulesetStats(name)
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	fmt.Printf("Runs - %s\n", name)
	fmt.Println()
	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'turmite run %s' to record the first one!\n", name)
		return
	}

	longest, err := store.LongestRuns(name, flagHistoryLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %-10s  %s\n", "Rank", "Steps", "Painted", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-10s  %s\n", "----", "-----", "-------", "----", "----")

	for i, r := range longest {
		fmt.Printf("  %-4d  %-10d  %-8d  %-10s  %s\n",
			i+1, r.Steps, r.Painted, r.Duration, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("%d runs, %d steps in total, last run %s\n",
		stats.Runs, stats.TotalSteps, stats.LastRun.Local().Format("2006-01-02 15:04"))
	if len(longest) > 0 {
		fmt.Printf("Rules of the longest run: %s\n", longest[0].Rules)
	}
}

// showRun prints one run, including the rule table it ran with.
func showRun(store *storage.Store, id string) {
	run, err := store.RunByID(id)
	if err != nil {
		fail("retrieving run: %v", err)
	}
	if run == nil {
		fail("no run with ID %q", id)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Println()
	fmt.Printf("  Ruleset:  %s\n", run.Ruleset)
	fmt.Printf("  Steps:    %d\n", run.Steps)
	fmt.Printf("  Painted:  %d\n", run.Painted)
	fmt.Printf("  Time:     %s\n", run.Duration)
	fmt.Printf("  Source:   %s\n", run.Source)
	if run.User != "" {
		fmt.Printf("  User:     %s\n", run.User)
	}
	fmt.Printf("  Date:     %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println("  Rules:")
	for _, rule := range strings.Fields(run.Rules) {
		fmt.Printf("    %s\n", rule)
	}
}

// shortID returns the first block of a UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
