package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeDoctor(t *testing.T, found map[string]bool, nodeVersion string) *Doctor {
	t.Helper()
	d := New(filepath.Join(t.TempDir(), "config.json"))
	d.LookPath = func(file string) (string, error) {
		if found[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	d.NodeVersion = func(context.Context, string) (string, error) {
		return nodeVersion, nil
	}
	return d
}

func find(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func TestRunAllPresent(t *testing.T) {
	d := fakeDoctor(t, map[string]bool{"node": true, "npm": true, "npx": true, "uvx": true}, "v20.11.1")

	checks := d.Run(context.Background())
	if !Healthy(checks) {
		t.Errorf("expected healthy, got %+v", checks)
	}

	c, ok := find(checks, "node version")
	if !ok || c.Status != StatusOK {
		t.Errorf("node version check = %+v", c)
	}
	c, _ = find(checks, "user config")
	if c.Status != StatusInfo {
		t.Errorf("missing user config should be INFO, got %+v", c)
	}
}

func TestRunMissingBinaries(t *testing.T) {
	d := fakeDoctor(t, map[string]bool{"npm": true, "npx": true}, "")

	checks := d.Run(context.Background())
	if Healthy(checks) {
		t.Error("missing node should make the report unhealthy")
	}

	node, _ := find(checks, "node")
	if node.Status != StatusMiss {
		t.Errorf("node = %+v, want MISS", node)
	}
	uvx, _ := find(checks, "uvx")
	if uvx.Status != StatusWarn {
		t.Errorf("optional uvx = %+v, want WARN", uvx)
	}
	if _, ok := find(checks, "node version"); ok {
		t.Error("node version should not be checked without node")
	}
}

func TestRunOldNode(t *testing.T) {
	d := fakeDoctor(t, map[string]bool{"node": true, "npm": true, "npx": true, "uvx": true}, "v16.20.0")

	checks := d.Run(context.Background())
	c, _ := find(checks, "node version")
	if c.Status != StatusFail {
		t.Errorf("node 16 = %+v, want FAIL", c)
	}
}

func TestRunInvalidUserConfig(t *testing.T) {
	d := fakeDoctor(t, map[string]bool{"node": true, "npm": true, "npx": true, "uvx": true}, "v22.0.0")
	if err := os.WriteFile(d.ConfigPath, []byte(`{"skills": [{"value": "x"}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	checks := d.Run(context.Background())
	c, _ := find(checks, "user config")
	if c.Status != StatusFail {
		t.Errorf("user config = %+v, want FAIL", c)
	}
	if !strings.Contains(c.Detail, "issue(s)") {
		t.Errorf("detail = %q, want issue summary", c.Detail)
	}
}

func TestSatisfiesMinimum(t *testing.T) {
	tests := []struct {
		version string
		want    bool
		wantErr bool
	}{
		{"v18.0.0", true, false},
		{"18.19.1", true, false},
		{"v17.9.1", false, false},
		{"v22.1.0\n", true, false},
		{"not-a-version", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := SatisfiesMinimum(tt.version, MinNodeVersion)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SatisfiesMinimum(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, []Check{{Name: "node", Status: StatusOK, Detail: "found at /usr/bin/node"}})

	if got := buf.String(); got != "  [OK  ] node: found at /usr/bin/node\n" {
		t.Errorf("Print() = %q", got)
	}
}
