package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(agentInitCmd)
}

var agentInitCmd = &cobra.Command{
	Use:   "agent-init [project-directory]",
	Short: "Create AGENTS.md and the agents-init skill in a project",
	Long: `Write an AGENTS.md file to the project root, plus an agents-init skill and
workflow under the selected assistant's folder. Files that already exist are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAgentInit,
}

func runAgentInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	projectPath, err := projectDirArg(args)
	if err != nil {
		return err
	}

	target, err := a.selectAgent()
	if err != nil {
		return err
	}

	a.out.Info("\nInitializing AGENTS.md in %s...\n", projectPath)

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	report, err := scaffold.Apply(scaffold.AgentInitSet, projectPath, target.Dir, a.merger)
	if report != nil {
		for _, p := range report.Copied {
			a.out.Success("  created %s", p)
		}
		for _, p := range report.Skipped {
			a.out.Warn("  %s already exists, skipping", p)
		}
	}
	if err != nil {
		return fmt.Errorf("writing agent files: %w", err)
	}

	a.out.Plain("\nEdit %s to add your project-specific agent instructions.", filepath.Join(projectPath, "AGENTS.md"))
	return nil
}
