package cli

import (
	"fmt"
	"path/filepath"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/prompt"
	"github.com/spf13/cobra"
)

var applySkillsAll bool

func init() {
	applySkillsCmd.Flags().BoolVar(&applySkillsAll, "all", false, "Install every skill pack without asking")
	rootCmd.AddCommand(applySkillsCmd)
}

var applySkillsCmd = &cobra.Command{
	Use:   "apply-skills [project-directory]",
	Short: "Inject skill packs into a project",
	Long: `Select skill packs from the catalog and install them into a project
(the current directory by default). Generic assistant folders produced by the
installers are renamed to the selected assistant's folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApplySkills,
}

func runApplySkills(cmd *cobra.Command, args []string) error {
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

	a.out.Info("\nInjecting AI skills into %s (%s)...\n", projectPath, target.Dir)

	cfg := a.store.Load()
	var chosen []string
	if applySkillsAll {
		for _, s := range cfg.Skills {
			chosen = append(chosen, s.Value)
		}
	} else {
		chosen, err = a.prompter.MultiSelect("Which skill packs would you like to install?", skillOptions(cfg.Skills), nil)
		if err != nil {
			return err
		}
	}
	if len(chosen) == 0 {
		a.out.Warn("\nNo skills selected. Exiting.")
		return nil
	}

	inst := a.installer()
	for _, value := range chosen {
		skill, ok := cfg.Skill(value)
		if !ok {
			a.out.Warn("Unknown skill %q, skipping", value)
			continue
		}
		a.out.Step("\nInstalling %s...", skill.Title)
		reportResult(a.out, inst.Apply(cmd.Context(), skill.Title, skill.Commands, projectPath, target.Dir))
	}

	a.out.Success("\nSkills injection complete!")
	return nil
}

// projectDirArg resolves the optional project directory argument against the
// working directory.
func projectDirArg(args []string) (string, error) {
	dir := "."
	if len(args) == 1 && args[0] != "" {
		dir = args[0]
	}
	p, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	return p, nil
}

func skillOptions(skills []config.Skill) []prompt.Option {
	options := make([]prompt.Option, 0, len(skills))
	for _, s := range skills {
		options = append(options, prompt.Option{Value: s.Value, Title: s.Title, Description: s.Description})
	}
	return options
}
