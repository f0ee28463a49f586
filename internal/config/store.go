package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/eltonjosesouza/sdd-skills-ai/internal/branding"
)

// FileName is the user catalog file inside the config root.
const FileName = "config.json"

//go:embed defaults.json
var defaultsJSON []byte

var (
	builtinOnce sync.Once
	builtin     document
)

// document is the on-disk shape shared by defaults.json and the user file.
type document struct {
	Specs  []Spec  `json:"specs"`
	Skills []Skill `json:"skills"`
}

// Defaults returns a fresh copy of the built-in catalog.
func Defaults() *Config {
	builtinOnce.Do(func() {
		if err := json.Unmarshal(defaultsJSON, &builtin); err != nil {
			panic(fmt.Sprintf("embedded defaults.json is invalid: %v", err))
		}
	})
	return &Config{
		Specs:  cloneEntries(builtin.Specs),
		Skills: cloneEntries(builtin.Skills),
	}
}

// DefaultRoot returns the config root directory. It checks the
// SDD_SKILLS_AI_HOME environment variable first, then falls back to
// ~/.sdd-skills-ai.
func DefaultRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// Store reads and writes the user catalog under a config root.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore creates a Store rooted at root. A nil logger uses slog.Default().
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, logger: logger}
}

// Root returns the config root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the full path of the user catalog file.
func (s *Store) Path() string {
	return filepath.Join(s.root, FileName)
}

// Load returns the built-in catalog merged with the user file. A missing user
// file is not an error; an unreadable or malformed one is logged and ignored.
func (s *Store) Load() *Config {
	cfg := Defaults()
	cfg.userSpecs = make(map[string]bool)
	cfg.userSkills = make(map[string]bool)

	user, err := s.readUser()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("could not parse user config, using defaults only",
				"path", s.Path(), "error", err)
		}
		return cfg
	}

	cfg.Specs = mergeByValue(cfg.Specs, user.Specs)
	cfg.Skills = mergeByValue(cfg.Skills, user.Skills)
	for _, e := range user.Specs {
		cfg.userSpecs[e.Value] = true
	}
	for _, e := range user.Skills {
		cfg.userSkills[e.Value] = true
	}
	return cfg
}

// Upsert merges patch into the user file and rewrites it. The merge is
// against the user file's own entries, never the defaults. Keys the catalog
// does not know, at the top level or inside untouched entries, are written
// back as they were. An unreadable existing file is treated as empty.
func (s *Store) Upsert(patch Patch) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", s.root, err)
	}

	top, err := s.readUserRaw()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("discarding unreadable user config", "path", s.Path(), "error", err)
		}
		top = map[string]json.RawMessage{}
	}

	if err := s.upsertCollection(top, "specs", patch.Specs == nil, func(raw []json.RawMessage) ([]json.RawMessage, error) {
		return upsertRaw(raw, patch.Specs)
	}); err != nil {
		return err
	}
	if err := s.upsertCollection(top, "skills", patch.Skills == nil, func(raw []json.RawMessage) ([]json.RawMessage, error) {
		return upsertRaw(raw, patch.Skills)
	}); err != nil {
		return err
	}

	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling user config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing user config %s: %w", s.Path(), err)
	}
	return nil
}

// upsertCollection applies fn to the entries stored under key. A missing or
// malformed collection starts empty; skip leaves a valid one untouched.
func (s *Store) upsertCollection(top map[string]json.RawMessage, key string, skip bool, fn func([]json.RawMessage) ([]json.RawMessage, error)) error {
	var entries []json.RawMessage
	if raw, ok := top[key]; ok {
		if err := json.Unmarshal(raw, &entries); err != nil {
			s.logger.Debug("discarding malformed collection", "key", key, "error", err)
			entries = nil
		} else if skip {
			return nil
		}
	}

	if !skip {
		var err error
		if entries, err = fn(entries); err != nil {
			return fmt.Errorf("merging %s: %w", key, err)
		}
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	top[key] = out
	return nil
}

// upsertRaw applies patch to raw entries by value, like mergeByValue, but
// leaves the entries it does not replace as they were.
func upsertRaw[T keyed](raw []json.RawMessage, patch []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(raw), len(raw)+len(patch))
	copy(out, raw)

	keys := make([]string, len(raw))
	for i, r := range raw {
		var k struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(r, &k); err == nil {
			keys[i] = k.Value
		}
	}

	for _, p := range patch {
		enc, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		replaced := false
		for i := range out {
			if keys[i] != "" && keys[i] == p.Key() {
				out[i] = enc
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, enc)
			keys = append(keys, p.Key())
		}
	}
	return out, nil
}

// AddSpec upserts a single spec into the user file.
func (s *Store) AddSpec(spec Spec) error {
	return s.Upsert(Patch{Specs: []Spec{spec}})
}

// AddSkill upserts a single skill into the user file.
func (s *Store) AddSkill(skill Skill) error {
	return s.Upsert(Patch{Skills: []Skill{skill}})
}

// readUser reads the user file. The returned error wraps fs.ErrNotExist when
// the file is absent.
func (s *Store) readUser() (*document, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	return &doc, nil
}

// readUserRaw reads the user file as top-level raw JSON values.
func (s *Store) readUserRaw() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	if top == nil {
		top = map[string]json.RawMessage{}
	}
	return top, nil
}

// cloneEntries copies entries so callers cannot reach the built-in slices.
func cloneEntries[T Spec | Skill](in []T) []T {
	out := make([]T, len(in))
	for i, e := range in {
		switch v := any(e).(type) {
		case Spec:
			v.Commands = slices.Clone(v.Commands)
			out[i] = any(v).(T)
		case Skill:
			v.Commands = slices.Clone(v.Commands)
			out[i] = any(v).(T)
		}
	}
	return out
}
