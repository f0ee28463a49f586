package prompt

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Survey implements Prompter on top of AlecAivazis/survey.
type Survey struct {
	opts []survey.AskOpt
}

// NewSurvey returns a Survey prompter on the process's terminal.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

func (s *Survey) Input(message, def string) (string, error) {
	var answer string
	q := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.opts...); err != nil {
		return "", mapErr(err)
	}
	return answer, nil
}

func (s *Survey) Select(message string, options []Option, def string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from")
	}

	labels, byLabel := labelsFor(options)
	q := &survey.Select{
		Message: message,
		Options: labels,
		Description: func(_ string, index int) string {
			return options[index].Description
		},
	}
	for _, o := range options {
		if o.Value == def {
			q.Default = label(o)
		}
	}

	var answer string
	if err := survey.AskOne(q, &answer, s.opts...); err != nil {
		return "", mapErr(err)
	}
	return byLabel[answer], nil
}

func (s *Survey) MultiSelect(message string, options []Option, defaults []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}

	labels, byLabel := labelsFor(options)
	selected := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		selected[d] = true
	}
	var defLabels []string
	for _, o := range options {
		if selected[o.Value] {
			defLabels = append(defLabels, label(o))
		}
	}

	q := &survey.MultiSelect{
		Message: message,
		Options: labels,
		Default: defLabels,
		Help:    "Space to select, Enter to submit",
		Description: func(_ string, index int) string {
			return options[index].Description
		},
	}

	var answers []string
	if err := survey.AskOne(q, &answers, s.opts...); err != nil {
		return nil, mapErr(err)
	}

	values := make([]string, 0, len(answers))
	for _, a := range answers {
		values = append(values, byLabel[a])
	}
	return values, nil
}

func (s *Survey) Confirm(message string, def bool) (bool, error) {
	answer := def
	q := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.opts...); err != nil {
		return false, mapErr(err)
	}
	return answer, nil
}

func labelsFor(options []Option) ([]string, map[string]string) {
	labels := make([]string, len(options))
	byLabel := make(map[string]string, len(options))
	for i, o := range options {
		labels[i] = label(o)
		byLabel[labels[i]] = o.Value
	}
	return labels, byLabel
}

func mapErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
