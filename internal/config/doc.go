// Package config manages the layered spec/skill catalog and user settings.
//
// The catalog is the built-in defaults.json merged with an optional user file
// at ~/.sdd-skills-ai/config.json. Entries are keyed by their value field: a
// user entry with the same value replaces the default in place, new values
// are appended. Writes only ever touch the user file.
//
// Settings (default agent, log level) are plain key/value pairs stored with
// viper at ~/.sdd-skills-ai/settings.yaml.
package config
