package prompts

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/hance08/walletsync/internal/ui"
)

// PromptCurrency lets the user pick one of the registered currencies.
func PromptCurrency(names []string) (string, error) {
	if len(names) == 1 {
		return names[0], nil
	}

	var selected string
	prompt := &survey.Select{
		Message: "Currency:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected, ui.AskOptions()...); err != nil {
		return "", err
	}
	return selected, nil
}
