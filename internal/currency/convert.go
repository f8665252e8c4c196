package currency

import (
	"fmt"

	"github.com/hance08/walletsync/internal/model"
	"github.com/shopspring/decimal"
)

// ToMinor converts a node-reported amount into the ledger's integer minor units.
func ToMinor(c *model.Currency, amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(c.MinorScale).Round(0).IntPart()
}

// ToMajor converts minor units back into the node's display unit.
func ToMajor(c *model.Currency, minor int64) decimal.Decimal {
	return decimal.New(minor, -c.MinorScale)
}

// EqualMajor reports whether a node balance matches a cached minor-unit balance.
func EqualMajor(c *model.Currency, nodeBalance float64, cachedMinor int64) bool {
	return decimal.NewFromFloat(nodeBalance).Equal(ToMajor(c, cachedMinor))
}

// Format renders minor units with the currency's full precision.
func Format(c *model.Currency, minor int64) string {
	return ToMajor(c, minor).StringFixed(c.MinorScale)
}

// ParseMajor parses a user-entered amount such as "0.05" into minor units.
func ParseMajor(c *model.Currency, amountStr string) (int64, error) {
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount can't be negative: %s", amountStr)
	}
	shifted := d.Shift(c.MinorScale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimals", amountStr, c.MinorScale)
	}
	return shifted.IntPart(), nil
}
