package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/branding"
)

const (
	settingsName = "settings"
	settingsType = "yaml"
)

// Setting keys.
const (
	KeyAgent        = "agent"
	KeyLogLevel     = "log_level"
	KeyMergeExclude = "merge_exclude" // comma-separated doublestar patterns
)

var settingDefaults = map[string]string{
	KeyAgent:        "antigravity",
	KeyLogLevel:     "warn",
	KeyMergeExclude: "",
}

// Settings holds user preferences stored at <root>/settings.yaml. Values can
// be overridden with SDD_SKILLS_AI_<KEY> environment variables.
type Settings struct {
	v    *viper.Viper
	path string
}

// LoadSettings reads settings from root. A missing file is not an error.
func LoadSettings(root string) (*Settings, error) {
	path := filepath.Join(root, settingsName+"."+settingsType)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(settingsType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for k, d := range settingDefaults {
		v.SetDefault(k, d)
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	return &Settings{v: v, path: path}, nil
}

// Path returns the settings file path.
func (s *Settings) Path() string {
	return s.path
}

// Get returns a setting by key. Returns empty string if not set.
func (s *Settings) Get(key string) string {
	return s.v.GetString(key)
}

// List returns a comma-separated setting as trimmed, non-empty items.
func (s *Settings) List(key string) []string {
	var out []string
	for _, item := range strings.Split(s.Get(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Set writes a key-value pair and saves the settings file.
func (s *Settings) Set(key, value string) error {
	if _, ok := settingDefaults[key]; !ok {
		return fmt.Errorf("unknown setting %q (known: %v)", key, SettingKeys())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// SettingKeys returns the known setting keys, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingDefaults))
	for k := range settingDefaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
