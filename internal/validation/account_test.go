package validation

import (
	"strings"
	"testing"

	"github.com/hance08/walletsync/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateGUID(t *testing.T) {
	assert.NoError(t, ValidateGUID("user-42"))
	assert.NoError(t, ValidateGUID("7f3c1a8e-2b4d-4c6e-9a1f-0e2d3c4b5a69"))
	assert.Error(t, ValidateGUID("  "))
	assert.Error(t, ValidateGUID(strings.Repeat("g", 65)))
	assert.Error(t, ValidateGUID("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"))
}

func TestValidateAccountName(t *testing.T) {
	assert.NoError(t, ValidateAccountName(""))
	assert.NoError(t, ValidateAccountName("user-1"))
	assert.Error(t, ValidateAccountName("*"))
	assert.Error(t, ValidateAccountName(strings.Repeat("n", 101)))
}

func TestAmountValidator(t *testing.T) {
	validate := AmountValidator(&model.Currency{Name: "ltc", MinorScale: 8})

	assert.NoError(t, validate("0.05"))
	assert.NoError(t, validate(" 1 "))
	assert.Error(t, validate("0"))
	assert.Error(t, validate("-1"))
	assert.Error(t, validate("0.000000001"))
	assert.Error(t, validate("abc"))
}
