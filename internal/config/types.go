package config

// Command is one shell step belonging to an entry.
type Command struct {
	Message string `json:"message" yaml:"message"`
	Cmd     string `json:"cmd" yaml:"cmd"`

	// UseProjectDir runs the command in a scratch directory whose output is
	// merged into the project. When false the command runs directly.
	UseProjectDir bool `json:"useProjectDir" yaml:"useProjectDir"`
}

// Spec is a spec-driven tool that can be initialized into a project.
type Spec struct {
	Value       string    `json:"value" yaml:"value"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Selected    bool      `json:"selected,omitempty" yaml:"selected,omitempty"`
	Commands    []Command `json:"commands" yaml:"commands"`
}

// Key returns the merge key.
func (s Spec) Key() string { return s.Value }

// Skill is a skill pack that can be injected into a project.
type Skill struct {
	Value       string    `json:"value" yaml:"value"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Commands    []Command `json:"commands" yaml:"commands"`
}

// Key returns the merge key.
func (s Skill) Key() string { return s.Value }

// Config is the merged catalog of specs and skills.
type Config struct {
	Specs  []Spec  `json:"specs"`
	Skills []Skill `json:"skills"`

	userSpecs  map[string]bool
	userSkills map[string]bool
}

// Patch is a partial Config used for upserts. A nil slice leaves that
// collection untouched.
type Patch struct {
	Specs  []Spec
	Skills []Skill
}

// Origin tells where an entry in a loaded Config came from.
type Origin string

const (
	OriginDefault Origin = "default"
	OriginUser    Origin = "user"
)

// Spec returns the spec registered under value.
func (c *Config) Spec(value string) (Spec, bool) {
	for _, s := range c.Specs {
		if s.Value == value {
			return s, true
		}
	}
	return Spec{}, false
}

// Skill returns the skill registered under value.
func (c *Config) Skill(value string) (Skill, bool) {
	for _, s := range c.Skills {
		if s.Value == value {
			return s, true
		}
	}
	return Skill{}, false
}

// SpecOrigin reports whether the spec came from the defaults or the user file.
func (c *Config) SpecOrigin(value string) Origin {
	if c.userSpecs[value] {
		return OriginUser
	}
	return OriginDefault
}

// SkillOrigin reports whether the skill came from the defaults or the user file.
func (c *Config) SkillOrigin(value string) Origin {
	if c.userSkills[value] {
		return OriginUser
	}
	return OriginDefault
}

// keyed is satisfied by Spec and Skill.
type keyed interface {
	Key() string
}

// mergeByValue returns base with every patch entry applied: an entry whose
// key already exists replaces it in place, otherwise it is appended. base is
// never modified.
func mergeByValue[T keyed](base, patch []T) []T {
	out := make([]T, len(base), len(base)+len(patch))
	copy(out, base)
	for _, p := range patch {
		replaced := false
		for i := range out {
			if out[i].Key() == p.Key() {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}
