// Package scaffold renders the static files written by "agent-init": an
// AGENTS.md at the project root plus an agents-init skill and workflow for
// the selected assistant. Templates are embedded and laid out under the
// generic .agent folder; they reach the project through the merge package, so
// they land in the chosen assistant directory and never overwrite a file the
// project already has.
package scaffold
