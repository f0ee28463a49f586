package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/branding"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
)

// Merger folds a scratch tree into a project tree.
type Merger interface {
	MergeInto(src, dst, targetDirName string) (*merge.Report, error)
}

// Runner executes commands in isolated scratch directories.
type Runner struct {
	exec   Executor
	merger Merger
	logger *slog.Logger

	// TempRoot is the parent of scratch directories. Empty means os.TempDir().
	TempRoot string
}

// NewRunner creates a Runner. A nil logger uses slog.Default().
func NewRunner(exec Executor, merger Merger, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{exec: exec, merger: merger, logger: logger}
}

// RunIsolated runs command in a fresh scratch directory, then merges that
// directory into projectPath, remapping generic assistant folders to
// targetDirName. A failing command is logged and does not stop the merge.
// The scratch directory is removed on every path.
//
// The error return covers allocating the scratch directory and merging;
// command failures are never returned.
func (r *Runner) RunIsolated(ctx context.Context, command, projectPath, targetDirName string) (*merge.Report, error) {
	tmp, release, err := r.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	r.logger.Debug("running isolated command", "cmd", command, "dir", tmp)
	if err := r.exec.Run(ctx, command, tmp); err != nil {
		r.logger.Warn("command failed, merging whatever it produced", "cmd", command, "error", err)
	}

	report, err := r.merger.MergeInto(tmp, projectPath, targetDirName)
	if err != nil {
		return report, fmt.Errorf("merging output of %q into %s: %w", command, projectPath, err)
	}
	return report, nil
}

// acquire creates a uniquely named scratch directory and returns a release
// func that removes it. Removal failures are logged, never returned.
func (r *Runner) acquire() (string, func(), error) {
	tmp, err := os.MkdirTemp(r.TempRoot, branding.CLIName()+"-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	release := func() {
		if err := os.RemoveAll(tmp); err != nil {
			r.logger.Warn("could not remove scratch directory", "dir", tmp, "error", err)
		}
	}
	return tmp, release, nil
}
