package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/branding"
	"github.com/eltonjosesouza/sdd-skills-ai/internal/merge"
)

//go:embed all:templates
var templateFS embed.FS

// AgentInitSet is the template set rendered by agent-init.
const AgentInitSet = "agent-init"

// Data holds the variables available to templates.
type Data struct {
	CLIName   string // e.g., "sdd-skills-ai"
	SkillName string // e.g., "sdd-skills-ai.agents-init"
	AgentDir  string // e.g., ".claude"
}

// NewData returns template data for the given assistant directory.
func NewData(agentDir string) *Data {
	return &Data{
		CLIName:   branding.CLIName(),
		SkillName: branding.CLIName() + ".agents-init",
		AgentDir:  agentDir,
	}
}

// Merger folds a rendered tree into a project.
type Merger interface {
	MergeInto(src, dst, targetDirName string) (*merge.Report, error)
}

// Generate renders template set name into outputDir, which must be empty or
// absent. Returned paths are relative to outputDir, slash-separated.
func Generate(name string, data *Data, outputDir string) ([]string, error) {
	root := path.Join("templates", name)
	if _, err := fs.Stat(templateFS, root); err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", name, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if entries, err := os.ReadDir(outputDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty", outputDir)
	}

	var files []string
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		outRel := strings.TrimSuffix(rel, ".tmpl")
		outPath := filepath.Join(outputDir, filepath.FromSlash(outRel))

		content, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		if strings.HasSuffix(rel, ".tmpl") {
			tmpl, err := template.New(rel).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", rel, err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("executing template %s: %w", rel, err)
			}
			content = buf.Bytes()
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		files = append(files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Apply renders template set name in a scratch directory and merges it into
// projectPath under agentDir. Existing project files are kept.
func Apply(name, projectPath, agentDir string, m Merger) (*merge.Report, error) {
	tmp, err := os.MkdirTemp("", branding.CLIName()+"-scaffold-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	if _, err := Generate(name, NewData(agentDir), tmp); err != nil {
		return nil, err
	}
	return m.MergeInto(tmp, projectPath, agentDir)
}
