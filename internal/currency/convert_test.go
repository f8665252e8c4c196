package currency

import (
	"testing"

	"github.com/hance08/walletsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ltc = &model.Currency{ID: 1, Name: "ltc", MinorScale: 8}

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(5_000_000), ToMinor(ltc, 0.05))
	assert.Equal(t, int64(100_000_000), ToMinor(ltc, 1))
	assert.Equal(t, int64(1), ToMinor(ltc, 0.00000001))
	assert.Equal(t, int64(-12_345_678), ToMinor(ltc, -0.12345678))
	assert.Equal(t, int64(0), ToMinor(ltc, 0))
}

func TestToMajorAndEqual(t *testing.T) {
	assert.Equal(t, "0.05", ToMajor(ltc, 5_000_000).String())
	assert.True(t, EqualMajor(ltc, 0.05, 5_000_000))
	assert.False(t, EqualMajor(ltc, 0.05, 5_000_001))
	assert.True(t, EqualMajor(ltc, 0, 0))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.50000000", Format(ltc, 150_000_000))
}

func TestParseMajor(t *testing.T) {
	v, err := ParseMajor(ltc, "0.05")
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), v)

	_, err = ParseMajor(ltc, "abc")
	assert.Error(t, err)

	_, err = ParseMajor(ltc, "-1")
	assert.Error(t, err)

	_, err = ParseMajor(ltc, "0.000000001")
	assert.Error(t, err)
}
