package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptAmount asks for an amount in whole units of a currency.
func PromptAmount(message, helpText string, validator func(string) error) (string, error) {
	var amount string

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Placeholder("0.00").
		Value(&amount)
	if validator != nil {
		input.Validate(validator)
	}

	if err := input.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(amount), nil
}

// PromptAddress asks for a destination address. Blank input is rejected
// before validator runs.
func PromptAddress(message string, validator func(string) error) (string, error) {
	var address string

	err := huh.NewInput().
		Title(message).
		Value(&address).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return errors.New("address cannot be empty")
			}
			if validator != nil {
				return validator(s)
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(address), nil
}

func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}
