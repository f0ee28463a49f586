//go:build integration

package integration_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/installer"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/logging"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/sandbox"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/ui"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // SDD_SKILLS_AI_HOME: config.json and settings.yaml
	ScratchDir string // parent of the runner's scratch directories
	ProjectDir string // A mock project directory
}

// setupTestEnv creates isolated temp directories and points the CLI home at
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ScratchDir: t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("SDD_SKILLS_AI_HOME", env.HomeDir)
	return env
}

// newStore returns a store rooted at the resolved default root.
func newStore(t *testing.T) *config.Store {
	t.Helper()
	root, err := config.DefaultRoot()
	if err != nil {
		t.Fatalf("DefaultRoot: %v", err)
	}
	return config.NewStore(root, logging.New(io.Discard, "error"))
}

// newInstaller wires the real shell executor, runner and merger.
func newInstaller(t *testing.T, env *testEnv) *installer.Installer {
	t.Helper()
	logger := logging.New(io.Discard, "error")

	exec := &sandbox.ShellExecutor{Stdout: io.Discard, Stderr: io.Discard}
	runner := sandbox.NewRunner(exec, merge.New(logger), logger)
	runner.TempRoot = env.ScratchDir

	return installer.New(exec, runner, ui.New(io.Discard), logger, env.ProjectDir)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirEmpty fails the test if dir has any entries.
func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	if len(entries) != 0 {
		t.Errorf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
