// Package cli defines the Cobra command tree for the sdd-skills-ai CLI. Each
// file registers one top-level command with the root command. Commands resolve
// their collaborators through newApp and delegate the work to the config,
// installer, scaffold and doctor packages.
package cli
