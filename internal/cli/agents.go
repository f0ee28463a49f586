package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/agents"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported AI assistants and their project folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tTITLE\tFOLDER\tALIASES")
		for _, t := range agents.All() {
			aliases := "-"
			if len(t.Aliases) > 0 {
				aliases = strings.Join(t.Aliases, ", ")
			}
			key := t.Key
			if key == agents.DefaultKey {
				key += " (default)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, t.Title, t.Dir, aliases)
		}
		return w.Flush()
	},
}
