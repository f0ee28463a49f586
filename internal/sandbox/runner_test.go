package sandbox

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
)

// fakeExecutor writes files into the working directory it is handed and
// remembers that directory so tests can check it was cleaned up.
type fakeExecutor struct {
	files map[string]string
	err   error
	dirs  []string
}

func (f *fakeExecutor) Run(_ context.Context, _ string, dir string) error {
	f.dirs = append(f.dirs, dir)
	for rel, content := range f.files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			return err
		}
	}
	return f.err
}

type failingMerger struct {
	called bool
}

func (m *failingMerger) MergeInto(_, _, _ string) (*merge.Report, error) {
	m.called = true
	return &merge.Report{}, errors.New("disk full")
}

func newTestRunner(t *testing.T, exec Executor, merger Merger) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if merger == nil {
		merger = merge.New(logger)
	}
	r := NewRunner(exec, merger, logger)
	r.TempRoot = t.TempDir()
	return r, &buf
}

func assertGone(t *testing.T, dirs []string) {
	t.Helper()
	if len(dirs) == 0 {
		t.Fatal("executor was never called")
	}
	for _, d := range dirs {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			t.Errorf("scratch directory %s still exists", d)
		}
	}
}

func TestRunIsolatedMergesOutput(t *testing.T) {
	project := t.TempDir()
	exec := &fakeExecutor{files: map[string]string{
		".agent/skills/plan/SKILL.md": "plan",
		"openspec/project.md":         "project",
	}}
	r, _ := newTestRunner(t, exec, nil)

	report, err := r.RunIsolated(context.Background(), "npx -y kit init", project, ".claude")
	if err != nil {
		t.Fatalf("RunIsolated() error: %v", err)
	}

	for _, rel := range []string{".claude/skills/plan/SKILL.md", "openspec/project.md"} {
		if _, err := os.Stat(filepath.Join(project, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s not merged: %v", rel, err)
		}
	}
	if len(report.Copied) != 2 {
		t.Errorf("Copied = %v, want 2 files", report.Copied)
	}
	assertGone(t, exec.dirs)
}

func TestRunIsolatedCommandFailureStillMerges(t *testing.T) {
	project := t.TempDir()
	exec := &fakeExecutor{
		files: map[string]string{"partial.md": "partial"},
		err:   &ExitError{Command: "kit", Code: 1},
	}
	r, logs := newTestRunner(t, exec, nil)

	if _, err := r.RunIsolated(context.Background(), "kit", project, ".agent"); err != nil {
		t.Fatalf("command failure must not propagate, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(project, "partial.md")); err != nil {
		t.Error("output of a failed command should still be merged")
	}
	if !strings.Contains(logs.String(), "command failed") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
	assertGone(t, exec.dirs)
}

func TestRunIsolatedMergeFailureCleansUp(t *testing.T) {
	exec := &fakeExecutor{files: map[string]string{"a.md": "a"}}
	merger := &failingMerger{}
	r, _ := newTestRunner(t, exec, merger)

	_, err := r.RunIsolated(context.Background(), "kit", t.TempDir(), ".agent")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("RunIsolated() error = %v, want merge failure", err)
	}
	if !merger.called {
		t.Error("merge should run")
	}
	assertGone(t, exec.dirs)
}

func TestRunIsolatedUniqueScratchDirs(t *testing.T) {
	exec := &fakeExecutor{}
	r, _ := newTestRunner(t, exec, nil)
	project := t.TempDir()

	for i := 0; i < 3; i++ {
		if _, err := r.RunIsolated(context.Background(), "true", project, ".agent"); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	for _, d := range exec.dirs {
		if seen[d] {
			t.Errorf("scratch directory %s reused", d)
		}
		seen[d] = true
		if !strings.HasPrefix(filepath.Base(d), "sdd-skills-ai-") {
			t.Errorf("scratch directory %s missing prefix", d)
		}
	}
	assertGone(t, exec.dirs)
}

func TestRunIsolatedScratchAllocationFailure(t *testing.T) {
	r, _ := newTestRunner(t, &fakeExecutor{}, nil)
	r.TempRoot = filepath.Join(t.TempDir(), "missing", "root")

	if _, err := r.RunIsolated(context.Background(), "true", t.TempDir(), ".agent"); err == nil {
		t.Error("expected error when the scratch directory cannot be created")
	}
}

func TestRunIsolatedWithShellExecutor(t *testing.T) {
	project := t.TempDir()
	var stdout bytes.Buffer
	exec := &ShellExecutor{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stdout}
	r, _ := newTestRunner(t, exec, nil)

	// Only shell builtins, so the test does not depend on PATH.
	cmd := `echo NEW > out.txt; echo done`
	if _, err := r.RunIsolated(context.Background(), cmd, project, ".agent"); err != nil {
		t.Fatalf("RunIsolated() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(project, "out.txt"))
	if err != nil {
		t.Fatalf("out.txt not merged: %v", err)
	}
	if string(data) != "NEW\n" {
		t.Errorf("out.txt = %q, want NEW", data)
	}
	if !strings.Contains(stdout.String(), "done") {
		t.Errorf("stdout = %q, want it to contain done", stdout.String())
	}

	entries, err := os.ReadDir(r.TempRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp root not empty after run: %v", entries)
	}
}
