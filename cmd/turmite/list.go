package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved rulesets",
	Long:  `Shows the rulesets stored in the library directory.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	lib := openLibrary(cfg)

	names, err := lib.List()
	if err != nil {
		fail("%v", err)
	}

	if len(names) == 0 {
		fmt.Printf("No saved rulesets in %s.\n", lib.Root)
		fmt.Println()
		fmt.Println("Run 'turmite presets' to see the built-in ones.")
		return
	}

	fmt.Printf("Saved rulesets (%s):\n", lib.Root)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range names {
		maxNameLen = max(maxNameLen, len(name))
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Rules")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")

	for _, name := range names {
		rows, err := lib.Load(name)
		if err != nil {
			logger.Debug("unreadable ruleset", "name", name, "error", err)
			fmt.Printf("  %-*s  %s\n", maxNameLen, name, "unreadable")
			continue
		}
		fmt.Printf("  %-*s  %d\n", maxNameLen, name, len(rows))
	}

	fmt.Println()
	fmt.Println("Run 'turmite run <name>' to run a ruleset.")
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in presets",
	Long:  `Shows the rulesets built into turmite.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	presets := registry.List()

	fmt.Println("Built-in presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Rules", "Description")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-5d  %s: %s\n", maxIDLen, p.ID, p.Rules, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'turmite run --preset <id>' to run a preset.")
}
