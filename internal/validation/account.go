package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hance08/walletsync/internal/constants"
	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/model"
)

// ValidateGUID accepts any non-empty owner id up to MaxGUIDLen characters.
// Ids that look like UUIDs must parse as one.
func ValidateGUID(guid string) error {
	guid = strings.TrimSpace(guid)

	if guid == "" {
		return fmt.Errorf("owner guid can't be empty")
	}
	if len(guid) > constants.MaxGUIDLen {
		return fmt.Errorf("owner guid too long (max %d characters)", constants.MaxGUIDLen)
	}
	if len(guid) == 36 && strings.Count(guid, "-") == 4 {
		if _, err := uuid.Parse(guid); err != nil {
			return fmt.Errorf("malformed uuid '%s': %w", guid, err)
		}
	}
	return nil
}

// ValidateAccountName checks a node account label. Empty is allowed and
// means the node's default account.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "*" {
		return fmt.Errorf("'*' is reserved for all accounts")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// AmountValidator returns a validator for user-entered amounts of c.
func AmountValidator(c *model.Currency) func(string) error {
	return func(input string) error {
		minor, err := currency.ParseMajor(c, strings.TrimSpace(input))
		if err != nil {
			return err
		}
		if minor == 0 {
			return fmt.Errorf("amount must be greater than zero")
		}
		return nil
	}
}
