package cli

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for input
type Prompter interface {
	Input(label string, secret bool) (string, error)
	Confirm(label string) (bool, error)
}

// TerminalPrompter prompts on the controlling terminal
type TerminalPrompter struct{}

func (TerminalPrompter) Input(label string, secret bool) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if s == "" {
				return errors.New("required")
			}
			return nil
		},
	}
	if secret {
		p.Mask = '*'
	}
	return p.Run()
}

func (TerminalPrompter) Confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
