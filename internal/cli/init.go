package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/prompt"
	"github.com/spf13/cobra"
)

const defaultProjectName = "my-spec-driven-app"

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [project-directory]",
	Short: "Initialize spec-driven tooling in a project directory",
	Long: `Create (or reuse) a project directory and install the selected spec tools into it.

Without an argument you are asked for the project name. Specs marked as selected in
the catalog are preselected. Files produced by each installer are merged into the
project under the chosen assistant's folder; existing files are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = a.prompter.Input("What is your project/directory named?", defaultProjectName)
		if err != nil {
			return err
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name is required: %w", prompt.ErrCancelled)
	}

	projectPath, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("resolving project path: %w", err)
	}
	if err := ensureProjectDir(a, projectPath); err != nil {
		return err
	}

	target, err := a.selectAgent()
	if err != nil {
		return err
	}

	cfg := a.store.Load()
	chosen, err := a.prompter.MultiSelect("Which spec tools would you like to initialize?", specOptions(cfg.Specs), preselectedSpecs(cfg.Specs))
	if err != nil {
		return err
	}
	if len(chosen) == 0 {
		a.out.Warn("\nNo specs selected. Exiting.")
		return nil
	}

	a.out.Info("\nInitializing spec-driven config in %s for %s...", projectPath, target.Title)

	inst := a.installer()
	for _, value := range chosen {
		spec, ok := cfg.Spec(value)
		if !ok {
			a.out.Warn("Unknown spec %q, skipping", value)
			continue
		}
		reportResult(a.out, inst.Apply(cmd.Context(), spec.Title, spec.Commands, projectPath, target.Dir))
	}

	a.out.Success("\nSetup complete! Spec-driven architecture is ready.")
	a.out.Plain("\nTo start developing, run:\n")
	a.out.Accent("  cd %s\n", name)
	return nil
}

func ensureProjectDir(a *app, projectPath string) error {
	info, err := os.Stat(projectPath)
	switch {
	case err == nil && info.IsDir():
		a.out.Warn("\nUsing existing directory %s", projectPath)
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", projectPath)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking project directory: %w", err)
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	a.out.Success("\nCreated directory %s", projectPath)
	return nil
}

func specOptions(specs []config.Spec) []prompt.Option {
	options := make([]prompt.Option, 0, len(specs))
	for _, s := range specs {
		options = append(options, prompt.Option{Value: s.Value, Title: s.Title, Description: s.Description})
	}
	return options
}

func preselectedSpecs(specs []config.Spec) []string {
	var values []string
	for _, s := range specs {
		if s.Selected {
			values = append(values, s.Value)
		}
	}
	return values
}
