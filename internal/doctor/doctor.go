package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/config"
)

// MinNodeVersion is the oldest Node.js the npx-based installers support.
const MinNodeVersion = ">= 18.0.0"

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusMiss Status = "MISS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	StatusInfo Status = "INFO"
)

// Check is one line of the doctor report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Binary is an external program the catalog shells out to.
type Binary struct {
	Name     string
	Purpose  string
	Required bool
}

// DefaultBinaries are the programs used by the built-in catalog.
var DefaultBinaries = []Binary{
	{Name: "node", Purpose: "runs npx-based skill installers", Required: true},
	{Name: "npm", Purpose: "installs global spec tooling", Required: true},
	{Name: "npx", Purpose: "runs skill pack installers", Required: true},
	{Name: "uvx", Purpose: "runs spec-kit (install uv)", Required: false},
}

// Doctor runs environment checks.
type Doctor struct {
	Binaries   []Binary
	ConfigPath string

	// LookPath and NodeVersion are replaceable for tests.
	LookPath    func(file string) (string, error)
	NodeVersion func(ctx context.Context, nodePath string) (string, error)
}

// New returns a Doctor for the user catalog at configPath.
func New(configPath string) *Doctor {
	return &Doctor{
		Binaries:    DefaultBinaries,
		ConfigPath:  configPath,
		LookPath:    exec.LookPath,
		NodeVersion: nodeVersion,
	}
}

// Run executes every check and returns them in order.
func (d *Doctor) Run(ctx context.Context) []Check {
	var checks []Check

	for _, b := range d.Binaries {
		p, err := d.LookPath(b.Name)
		if err != nil {
			status := StatusWarn
			if b.Required {
				status = StatusMiss
			}
			checks = append(checks, Check{Name: b.Name, Status: status, Detail: "not found (" + b.Purpose + ")"})
			continue
		}
		checks = append(checks, Check{Name: b.Name, Status: StatusOK, Detail: "found at " + p})

		if b.Name == "node" {
			checks = append(checks, d.checkNodeVersion(ctx, p))
		}
	}

	checks = append(checks, d.checkConfig())
	return checks
}

func (d *Doctor) checkNodeVersion(ctx context.Context, nodePath string) Check {
	c := Check{Name: "node version"}

	raw, err := d.NodeVersion(ctx, nodePath)
	if err != nil {
		c.Status, c.Detail = StatusWarn, fmt.Sprintf("could not determine: %v", err)
		return c
	}

	ok, err := SatisfiesMinimum(raw, MinNodeVersion)
	if err != nil {
		c.Status, c.Detail = StatusWarn, err.Error()
		return c
	}
	if !ok {
		c.Status, c.Detail = StatusFail, fmt.Sprintf("%s does not satisfy %s", raw, MinNodeVersion)
		return c
	}
	c.Status, c.Detail = StatusOK, raw
	return c
}

func (d *Doctor) checkConfig() Check {
	c := Check{Name: "user config"}

	if _, err := os.Stat(d.ConfigPath); errors.Is(err, fs.ErrNotExist) {
		c.Status, c.Detail = StatusInfo, d.ConfigPath+" not present, using built-in catalog"
		return c
	}

	result, err := config.ValidateFile(d.ConfigPath)
	if err != nil {
		c.Status, c.Detail = StatusFail, err.Error()
		return c
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				msgs = append(msgs, issue.Path+": "+issue.Message)
			} else {
				msgs = append(msgs, issue.Message)
			}
		}
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s has %d issue(s): %s", d.ConfigPath, len(result.Issues), strings.Join(msgs, "; "))
		return c
	}
	c.Status, c.Detail = StatusOK, d.ConfigPath+" is valid"
	return c
}

// SatisfiesMinimum reports whether version (with or without a leading "v")
// satisfies constraint.
func SatisfiesMinimum(version, constraint string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

// Print writes checks in the "[ OK ] name: detail" format.
func Print(w io.Writer, checks []Check) {
	for _, c := range checks {
		fmt.Fprintf(w, "  [%-4s] %s: %s\n", c.Status, c.Name, c.Detail)
	}
}

// Healthy reports whether no check failed or is missing.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if c.Status == StatusFail || c.Status == StatusMiss {
			return false
		}
	}
	return true
}

func nodeVersion(ctx context.Context, nodePath string) (string, error) {
	out, err := exec.CommandContext(ctx, nodePath, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
