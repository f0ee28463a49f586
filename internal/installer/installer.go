// Package installer applies catalog entries to a project. Each command of an
// entry runs in order: project-scoped commands go through the sandbox so their
// output is merged under the selected assistant directory, the rest run
// directly. A failing step never stops the ones after it.
package installer

import (
	"context"
	"log/slog"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/sandbox"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/ui"
)

// IsolatedRunner runs a command in a scratch directory and merges its output.
type IsolatedRunner interface {
	RunIsolated(ctx context.Context, command, projectPath, targetDirName string) (*merge.Report, error)
}

// Step is the outcome of one command.
type Step struct {
	Command config.Command
	Report  *merge.Report // nil for direct commands
	Err     error
}

// Result collects the steps of one Apply call.
type Result struct {
	Title string
	Steps []Step
}

// Failed returns the steps that reported an error.
func (r *Result) Failed() []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Installer runs entry commands.
type Installer struct {
	exec    sandbox.Executor
	runner  IsolatedRunner
	out     *ui.Printer
	logger  *slog.Logger
	workDir string
}

// New creates an Installer. Direct commands run in workDir; empty means the
// process's current directory.
func New(exec sandbox.Executor, runner IsolatedRunner, out *ui.Printer, logger *slog.Logger, workDir string) *Installer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Installer{exec: exec, runner: runner, out: out, logger: logger, workDir: workDir}
}

// Apply runs commands in order against projectPath. agentDir is the directory
// name generic assistant folders are remapped to.
func (i *Installer) Apply(ctx context.Context, title string, commands []config.Command, projectPath, agentDir string) *Result {
	res := &Result{Title: title}

	for _, c := range commands {
		if err := ctx.Err(); err != nil {
			res.Steps = append(res.Steps, Step{Command: c, Err: err})
			continue
		}

		msg := c.Message
		if msg == "" {
			msg = "Running " + c.Cmd + "..."
		}
		i.out.Step("\n%s", msg)

		step := Step{Command: c}
		if c.UseProjectDir {
			step.Report, step.Err = i.runner.RunIsolated(ctx, c.Cmd, projectPath, agentDir)
			if step.Report != nil {
				for _, p := range step.Report.Skipped {
					i.out.Dim("  kept existing %s", p)
				}
			}
		} else {
			step.Err = i.exec.Run(ctx, c.Cmd, i.workDir)
		}

		if step.Err != nil {
			i.logger.Warn("install step failed", "entry", title, "cmd", c.Cmd, "error", step.Err)
			i.out.Warn("Note: %q did not complete cleanly, continuing...", c.Cmd)
		}
		res.Steps = append(res.Steps, step)
	}
	return res
}
