package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type AccountDetails struct {
	GUID string
	Name string
}

// PromptAccountDetails asks for the fields not given on the command line.
func PromptAccountDetails(current AccountDetails, validateGUID, validateName func(string) error) (AccountDetails, error) {
	details := current

	var fields []huh.Field
	if details.GUID == "" {
		fields = append(fields, huh.NewInput().
			Title("Owner GUID:").
			Description("Downstream user that deposits to this address are credited to").
			Value(&details.GUID).
			Validate(validateGUID))
	}
	if details.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Node account name:").
			Description("Wallet account the new address is created under (optional)").
			Value(&details.Name).
			Validate(validateName))
	}
	if len(fields) == 0 {
		return details, nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return AccountDetails{}, fmt.Errorf("input cancelled: %w", err)
	}
	return details, nil
}
