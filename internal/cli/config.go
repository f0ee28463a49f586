package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/agents"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/logging"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.sdd-skills-ai/settings.yaml.

Keys:
  agent          default assistant preselected in prompts
  log_level      debug, info, warn or error
  merge_exclude  comma-separated globs never merged into a project (e.g. **/node_modules)`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := checkSetting(key, value); err != nil {
			return err
		}
		if err := a.settings.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if !slices.Contains(config.SettingKeys(), args[0]) {
			return fmt.Errorf("unknown key %q (known: %s)", args[0], strings.Join(config.SettingKeys(), ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.settings.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings and catalog file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.settings.Path())
		fmt.Fprintln(cmd.OutOrStdout(), a.store.Path())
		return nil
	},
}

// checkSetting rejects values the CLI could not use later.
func checkSetting(key, value string) error {
	switch key {
	case config.KeyAgent:
		if _, ok := agents.Lookup(value); !ok {
			return fmt.Errorf("unknown agent %q (available: %s)", value, strings.Join(agents.Keys(), ", "))
		}
	case config.KeyLogLevel:
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
	case config.KeyMergeExclude:
		if err := merge.ValidatePatterns(strings.Split(value, ",")); err != nil {
			return err
		}
	}
	return nil
}
