// Package prompt asks the user questions. Commands depend on the Prompter
// interface so tests can script answers; the survey-backed implementation is
// used at runtime.
package prompt

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user interrupts a prompt or leaves a
// required answer empty.
var ErrCancelled = errors.New("operation cancelled")

// Option is one choice in a Select or MultiSelect prompt.
type Option struct {
	Value       string
	Title       string
	Description string
}

// Prompter asks questions and returns answers.
type Prompter interface {
	Input(message, def string) (string, error)
	Select(message string, options []Option, def string) (string, error)
	MultiSelect(message string, options []Option, defaults []string) ([]string, error)
	Confirm(message string, def bool) (bool, error)
}

// Defaults answers every prompt with its default. Used for --yes runs.
type Defaults struct{}

func (Defaults) Input(_ string, def string) (string, error) { return def, nil }

func (Defaults) Select(_ string, options []Option, def string) (string, error) {
	if def != "" {
		return def, nil
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from")
	}
	return options[0].Value, nil
}

func (Defaults) MultiSelect(_ string, _ []Option, defaults []string) ([]string, error) {
	return append([]string(nil), defaults...), nil
}

func (Defaults) Confirm(_ string, def bool) (bool, error) { return def, nil }

// label renders an option the way it is shown in a list. The value is
// appended so labels stay unique even when titles repeat.
func label(o Option) string {
	if o.Title == "" || o.Title == o.Value {
		return o.Value
	}
	return fmt.Sprintf("%s [%s]", o.Title, o.Value)
}
