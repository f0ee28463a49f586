package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:       "list [specs|skills]",
	Short:     "List catalog entries",
	Long:      `List the specs and skill packs available to init and apply-skills, with where each comes from (default or user).`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"specs", "skills"},
	RunE:      runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a catalog entry for display.
type listEntry struct {
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Title    string `json:"title"`
	Origin   string `json:"origin"`
	Commands int    `json:"commands"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}

	entries := catalogEntries(a.store.Load(), filter)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func catalogEntries(cfg *config.Config, filter string) []listEntry {
	var entries []listEntry
	if filter == "" || filter == "specs" {
		for _, s := range cfg.Specs {
			entries = append(entries, listEntry{
				Kind: "spec", Value: s.Value, Title: s.Title,
				Origin: string(cfg.SpecOrigin(s.Value)), Commands: len(s.Commands),
			})
		}
	}
	if filter == "" || filter == "skills" {
		for _, s := range cfg.Skills {
			entries = append(entries, listEntry{
				Kind: "skill", Value: s.Value, Title: s.Title,
				Origin: string(cfg.SkillOrigin(s.Value)), Commands: len(s.Commands),
			})
		}
	}
	return entries
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tVALUE\tTITLE\tORIGIN\tCOMMANDS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", e.Kind, e.Value, e.Title, e.Origin, e.Commands)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
