package sandbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Executor runs a shell command line with dir as its working directory.
type Executor interface {
	Run(ctx context.Context, command, dir string) error
}

// ExitError reports a command that ran and exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%q exited with status %d", e.Command, e.Code)
}

// ShellExecutor interprets POSIX shell command lines in-process and runs the
// programs they name. Standard streams default to the process's own, so
// installer output and prompts stay visible and interactive.
type ShellExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the environment in KEY=VALUE form. Defaults to os.Environ().
	Env []string
}

// NewShellExecutor returns a ShellExecutor wired to the process's stdio.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{}
}

// Run parses command and executes it in dir. An empty dir means the current
// working directory.
func (e *ShellExecutor) Run(ctx context.Context, command, dir string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("empty command")
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("parsing %q: %w", command, err)
	}

	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}

	env := e.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(e.stdin(), e.stdout(), e.stderr()),
	)
	if err != nil {
		return fmt.Errorf("creating shell runner: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return &ExitError{Command: command, Code: int(status)}
		}
		return fmt.Errorf("running %q: %w", command, err)
	}
	return nil
}

func (e *ShellExecutor) stdin() io.Reader {
	if e.Stdin == nil {
		return os.Stdin
	}
	return e.Stdin
}

func (e *ShellExecutor) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *ShellExecutor) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}
