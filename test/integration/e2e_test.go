//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/scaffold"
)

// demoSkill writes into generic assistant folders and the project root, the
// way real skill installers do.
var demoSkill = config.Skill{
	Value: "demo-pack",
	Title: "Demo Pack",
	Commands: []config.Command{
		{
			Message:       "Installing demo pack...",
			Cmd:           "mkdir -p .agent/skills/demo .agents/workflows && echo 'installed' > .agent/skills/demo/SKILL.md && echo flow > .agents/workflows/demo.md && echo notes > NOTES.md",
			UseProjectDir: true,
		},
	},
}

// TestFullFlowAddAndApplySkill tests the complete flow:
// add a skill to the user catalog -> load merged catalog -> install into a
// project -> verify remapped output and cleanup.
func TestFullFlowAddAndApplySkill(t *testing.T) {
	env := setupTestEnv(t)

	if err := newStore(t).AddSkill(demoSkill); err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	assertFileExists(t, filepath.Join(env.HomeDir, config.FileName))

	cfg := newStore(t).Load()
	skill, ok := cfg.Skill("demo-pack")
	if !ok {
		t.Fatal("demo-pack not found after reload")
	}
	if cfg.SkillOrigin("demo-pack") != config.OriginUser {
		t.Errorf("origin = %q, want user", cfg.SkillOrigin("demo-pack"))
	}

	res := newInstaller(t, env).Apply(context.Background(), skill.Title, skill.Commands, env.ProjectDir, ".claude")
	if failed := res.Failed(); len(failed) != 0 {
		t.Fatalf("install failed: %v", failed[0].Err)
	}

	assertFileContains(t, filepath.Join(env.ProjectDir, ".claude", "skills", "demo", "SKILL.md"), "installed")
	assertFileContains(t, filepath.Join(env.ProjectDir, ".claude", "workflows", "demo.md"), "flow")
	assertFileContains(t, filepath.Join(env.ProjectDir, "NOTES.md"), "notes")
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".agent"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".agents"))
	assertDirEmpty(t, env.ScratchDir)
}

// TestFullFlowReapplyKeepsEdits verifies a second install never overwrites
// files the user changed after the first one.
func TestFullFlowReapplyKeepsEdits(t *testing.T) {
	env := setupTestEnv(t)
	inst := newInstaller(t, env)

	inst.Apply(context.Background(), demoSkill.Title, demoSkill.Commands, env.ProjectDir, ".cursor")
	skillPath := filepath.Join(env.ProjectDir, ".cursor", "skills", "demo", "SKILL.md")
	writeFile(t, skillPath, "edited by user")

	res := inst.Apply(context.Background(), demoSkill.Title, demoSkill.Commands, env.ProjectDir, ".cursor")
	if len(res.Failed()) != 0 {
		t.Fatalf("reinstall failed: %v", res.Failed()[0].Err)
	}
	assertFileContains(t, skillPath, "edited by user")

	report := res.Steps[0].Report
	if report == nil || len(report.Copied) != 0 || len(report.Skipped) != 3 {
		t.Errorf("report = %+v, want 0 copied and 3 skipped", report)
	}
	assertDirEmpty(t, env.ScratchDir)
}

// TestFullFlowFailingCommandStillMerges verifies a non-zero exit still folds
// whatever the command produced into the project and later steps still run.
func TestFullFlowFailingCommandStillMerges(t *testing.T) {
	env := setupTestEnv(t)

	commands := []config.Command{
		{Cmd: "echo partial > partial.txt; exit 2", UseProjectDir: true},
		{Cmd: "echo after > after.txt", UseProjectDir: true},
	}
	res := newInstaller(t, env).Apply(context.Background(), "flaky", commands, env.ProjectDir, ".gemini")

	if len(res.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(res.Steps))
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "partial.txt"), "partial")
	assertFileContains(t, filepath.Join(env.ProjectDir, "after.txt"), "after")
	assertDirEmpty(t, env.ScratchDir)
}

// TestFullFlowAgentInit renders the agent-init templates into a project.
func TestFullFlowAgentInit(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, "AGENTS.md"), "# existing")

	report, err := scaffold.Apply(scaffold.AgentInitSet, env.ProjectDir, ".kiro", merge.New(nil))
	if err != nil {
		t.Fatalf("scaffold.Apply: %v", err)
	}

	assertFileContains(t, filepath.Join(env.ProjectDir, "AGENTS.md"), "# existing")
	assertFileContains(t, filepath.Join(env.ProjectDir, ".kiro", "skills", "agents-init", "SKILL.md"), "agents-init")
	assertFileExists(t, filepath.Join(env.ProjectDir, ".kiro", "workflows", "agents-init.md"))
	if len(report.Skipped) != 1 {
		t.Errorf("skipped = %v, want only AGENTS.md", report.Skipped)
	}
}
