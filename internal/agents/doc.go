// Package agents holds the fixed table of supported AI assistants and the
// project directory each one reads its skills, workflows and rules from.
// The generic folder set used when relocating installer output is derived
// from the same table.
package agents
