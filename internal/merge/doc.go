// Package merge folds a source tree into a project tree without ever
// overwriting an existing file. Directories named after a known assistant
// folder (.claude, .cursor, .agent, ...) are relocated, at any depth, to the
// directory of the assistant the user selected.
package merge
