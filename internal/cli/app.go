package cli

import (
	"fmt"
	"log/slog"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/agents"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/installer"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/logging"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/prompt"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/sandbox"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/ui"
	"github.com/spf13/cobra"
)

// Replaceable in tests.
var (
	configRoot  = config.DefaultRoot
	newPrompter = func() prompt.Prompter { return prompt.NewSurvey() }
	newExecutor = func() sandbox.Executor { return sandbox.NewShellExecutor() }
	newPrinter  = ui.New
)

// app bundles what a command needs: settings, catalog store, output and the
// installer pipeline.
type app struct {
	root     string
	settings *config.Settings
	store    *config.Store
	logger   *slog.Logger
	out      *ui.Printer
	prompter prompt.Prompter
	exec     sandbox.Executor
	merger   *merge.Merger
}

func newApp(cmd *cobra.Command) (*app, error) {
	root, err := configRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	settings, err := config.LoadSettings(root)
	if err != nil {
		return nil, err
	}

	level := settings.Get(config.KeyLogLevel)
	if flagLogLevel != "" {
		if _, err := logging.ParseLevel(flagLogLevel); err != nil {
			return nil, err
		}
		level = flagLogLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	merger := merge.New(logger)
	merger.Excludes = settings.List(config.KeyMergeExclude)
	if err := merge.ValidatePatterns(merger.Excludes); err != nil {
		return nil, fmt.Errorf("setting %s: %w", config.KeyMergeExclude, err)
	}

	var p prompt.Prompter = prompt.Defaults{}
	if !flagYes {
		p = newPrompter()
	}

	return &app{
		root:     root,
		settings: settings,
		store:    config.NewStore(root, logger),
		logger:   logger,
		out:      newPrinter(cmd.OutOrStdout()),
		prompter: p,
		exec:     newExecutor(),
		merger:   merger,
	}, nil
}

// installer wires the executor, sandboxed runner and merger together.
func (a *app) installer() *installer.Installer {
	runner := sandbox.NewRunner(a.exec, a.merger, a.logger)
	return installer.New(a.exec, runner, a.out, a.logger, "")
}

// selectAgent resolves the target assistant from --agent, or asks for it with
// the configured default preselected.
func (a *app) selectAgent() (agents.Target, error) {
	if flagAgent != "" {
		t, ok := agents.Lookup(flagAgent)
		if !ok {
			return agents.Target{}, fmt.Errorf("unknown agent %q (available: %v)", flagAgent, agents.Keys())
		}
		return t, nil
	}

	def := a.settings.Get(config.KeyAgent)
	if _, ok := agents.Lookup(def); !ok {
		a.logger.Warn("configured agent is unknown, using default", "agent", def, "default", agents.DefaultKey)
		def = agents.DefaultKey
	}

	all := agents.All()
	options := make([]prompt.Option, 0, len(all))
	for _, t := range all {
		options = append(options, prompt.Option{Value: t.Key, Title: t.Title, Description: t.Dir})
	}

	key, err := a.prompter.Select("Which AI assistant are you targeting?", options, def)
	if err != nil {
		return agents.Target{}, err
	}
	t, ok := agents.Lookup(key)
	if !ok {
		return agents.Target{}, fmt.Errorf("unknown agent %q", key)
	}
	return t, nil
}

// reportResult prints the failed steps of an install, if any.
func reportResult(out *ui.Printer, res *installer.Result) {
	failed := res.Failed()
	if len(failed) == 0 {
		return
	}
	out.Warn("%s: %d of %d step(s) did not complete", res.Title, len(failed), len(res.Steps))
}
