package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/turmite/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the effective configuration as YAML, after the user config file,
--config and the global flags have been applied.

Use --defaults to print the built-in configuration, a good starting point
for ~/.turmite/config.yaml.

Examples:
  turmite config
  turmite config --speed fast
  turmite config --defaults > ~/.turmite/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	data, err := yaml.Marshal(loadConfig())
	if err != nil {
		fail("encoding config: %v", err)
	}
	os.Stdout.Write(data)
}
