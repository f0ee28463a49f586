package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// entryFlags holds the flags shared by add-spec and add-skill.
type entryFlags struct {
	file        string
	value       string
	title       string
	description string
	selected    bool
	cmds        []string
	globalCmds  []string
	messages    []string
}

var (
	addSpecFlags  entryFlags
	addSkillFlags entryFlags
)

func init() {
	bindEntryFlags(addSpecCmd, &addSpecFlags)
	addSpecCmd.Flags().BoolVar(&addSpecFlags.selected, "selected", false, "Preselect the spec in init")
	bindEntryFlags(addSkillCmd, &addSkillFlags)

	rootCmd.AddCommand(addSpecCmd)
	rootCmd.AddCommand(addSkillCmd)
}

func bindEntryFlags(cmd *cobra.Command, f *entryFlags) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the entry from a YAML or JSON file")
	cmd.Flags().StringVar(&f.value, "value", "", "Unique identifier (e.g. my-tool)")
	cmd.Flags().StringVar(&f.title, "title", "", "Display title")
	cmd.Flags().StringVar(&f.description, "description", "", "Short description")
	cmd.Flags().StringArrayVar(&f.globalCmds, "global-cmd", nil, "Command run directly in the current directory (repeatable)")
	cmd.Flags().StringArrayVar(&f.cmds, "cmd", nil, "Command run in a scratch directory and merged into the project (repeatable)")
	cmd.Flags().StringArrayVar(&f.messages, "message", nil, "Progress message for each command, in order: global commands first (repeatable)")
}

var addSpecCmd = &cobra.Command{
	Use:   "add-spec",
	Short: "Add or replace a spec tool in the user catalog",
	Long: `Add a spec tool to ~/.sdd-skills-ai/config.json. An entry with the same value
replaces the existing one, including built-in entries.

Examples:
  sdd-skills-ai add-spec --value my-spec --title "My Spec" --cmd "npx my-spec init"
  sdd-skills-ai add-spec --file my-spec.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var spec config.Spec
		if addSpecFlags.file != "" {
			if err := decodeEntryFile(addSpecFlags.file, &spec); err != nil {
				return err
			}
		} else {
			f := addSpecFlags
			spec = config.Spec{Value: f.value, Title: f.title, Description: f.description, Selected: f.selected, Commands: f.commands()}
		}

		result, err := config.ValidateSpec(spec)
		if err != nil {
			return err
		}
		if err := requireValid(cmd, "spec", result); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.store.AddSpec(spec); err != nil {
			return err
		}
		a.out.Success("Saved spec %q to %s", spec.Value, a.store.Path())
		return nil
	},
}

var addSkillCmd = &cobra.Command{
	Use:   "add-skill",
	Short: "Add or replace a skill pack in the user catalog",
	Long: `Add a skill pack to ~/.sdd-skills-ai/config.json. An entry with the same value
replaces the existing one, including built-in entries.

Examples:
  sdd-skills-ai add-skill --value my-pack --title "My Pack" --cmd "npx -y my-pack@latest"
  sdd-skills-ai add-skill --file my-pack.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var skill config.Skill
		if addSkillFlags.file != "" {
			if err := decodeEntryFile(addSkillFlags.file, &skill); err != nil {
				return err
			}
		} else {
			f := addSkillFlags
			skill = config.Skill{Value: f.value, Title: f.title, Description: f.description, Commands: f.commands()}
		}

		result, err := config.ValidateSkill(skill)
		if err != nil {
			return err
		}
		if err := requireValid(cmd, "skill", result); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.store.AddSkill(skill); err != nil {
			return err
		}
		a.out.Success("Saved skill %q to %s", skill.Value, a.store.Path())
		return nil
	},
}

// commands builds the command list: global commands first, then project
// commands. Messages pair with commands by position.
func (f entryFlags) commands() []config.Command {
	var out []config.Command
	for _, c := range f.globalCmds {
		out = append(out, config.Command{Cmd: c})
	}
	for _, c := range f.cmds {
		out = append(out, config.Command{Cmd: c, UseProjectDir: true})
	}
	for i := range out {
		if i < len(f.messages) {
			out[i].Message = f.messages[i]
		} else {
			out[i].Message = "Running " + out[i].Cmd + "..."
		}
	}
	return out
}

// decodeEntryFile reads a single entry from YAML or JSON (JSON is valid YAML).
func decodeEntryFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func requireValid(cmd *cobra.Command, kind string, result *config.ValidationResult) error {
	if result.Valid {
		return nil
	}
	out := newPrinter(cmd.ErrOrStderr())
	for _, issue := range result.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		out.Error("  %s: %s", loc, issue.Message)
	}
	return fmt.Errorf("invalid %s: %d issue(s): %s", kind, len(result.Issues), summarize(result.Issues))
}

func summarize(issues []config.ValidationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, i := range issues {
		parts = append(parts, i.Message)
	}
	return strings.Join(parts, "; ")
}
