package agents

import "sort"

// Target describes one supported assistant.
type Target struct {
	Key   string // e.g., "claude"
	Title string // e.g., "Claude Code"
	Dir   string // e.g., ".claude"

	// Aliases are extra folder names some installers write to by convention
	// that should also land in this target's directory.
	Aliases []string
}

// DefaultKey is the target used when none is chosen or the key is unknown.
const DefaultKey = "antigravity"

var targets = []Target{
	{Key: "antigravity", Title: "Antigravity", Dir: ".agent", Aliases: []string{".agents"}},
	{Key: "claude", Title: "Claude Code", Dir: ".claude"},
	{Key: "cursor", Title: "Cursor", Dir: ".cursor"},
	{Key: "gemini", Title: "Gemini CLI", Dir: ".gemini"},
	{Key: "kiro", Title: "Kiro", Dir: ".kiro"},
}

var (
	byKey   = make(map[string]Target, len(targets))
	generic = make(map[string]bool)
)

func init() {
	for _, t := range targets {
		byKey[t.Key] = t
		generic[t.Dir] = true
		for _, a := range t.Aliases {
			generic[a] = true
		}
	}
}

// All returns the supported targets in display order.
func All() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// Keys returns the supported target keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(targets))
	for _, t := range targets {
		keys = append(keys, t.Key)
	}
	return keys
}

// Lookup returns the target registered under key.
func Lookup(key string) (Target, bool) {
	t, ok := byKey[key]
	return t, ok
}

// DirName returns the project directory for key, falling back to the
// default target's directory for unknown keys.
func DirName(key string) string {
	if t, ok := byKey[key]; ok {
		return t.Dir
	}
	return byKey[DefaultKey].Dir
}

// IsGenericFolder reports whether name is a conventional assistant folder
// that installer output should be relocated from.
func IsGenericFolder(name string) bool {
	return generic[name]
}

// GenericFolders returns the generic folder set, sorted.
func GenericFolders() []string {
	names := make([]string, 0, len(generic))
	for name := range generic {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
