package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/httperr"
)

func TestIsValidTimeFormat(t *testing.T) {
	valid := []string{"00:00", "08:30", "12:00", "23:59"}
	for _, v := range valid {
		assert.True(t, IsValidTimeFormat(v), v)
	}

	invalid := []string{"", "24:00", "12:60", "9:00", "12:5", "12h30", "ab:cd", "12:30:00"}
	for _, v := range invalid {
		assert.False(t, IsValidTimeFormat(v), v)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"01:00", 60},
		{"08:30", 510},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTimeToMinutes_Invalid(t *testing.T) {
	_, err := ParseTimeToMinutes("")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	for _, in := range []string{"24:00", "12:60", "x"} {
		_, err := ParseTimeToMinutes(in)
		require.Error(t, err, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_time_format"), in)
	}
}

func TestValidateTimeRange(t *testing.T) {
	assert.NoError(t, ValidateTimeRange("08:00", "17:00"))
	assert.NoError(t, ValidateTimeRange("08:00", "08:01"))

	err := ValidateTimeRange("17:00", "08:00")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	// início igual ao fim também é inválido
	err = ValidateTimeRange("08:00", "08:00")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	err = ValidateTimeRange("", "17:00")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "missing_time_range"))
}

func TestValidateDayOfWeek(t *testing.T) {
	for day := 0; day <= 6; day++ {
		assert.NoError(t, ValidateDayOfWeek(day))
	}

	for _, day := range []int{-1, 7, 100} {
		err := ValidateDayOfWeek(day)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_day_of_week"))
	}
}

func TestIsTimeWithinRange(t *testing.T) {
	// inclusivo nas duas pontas
	assert.True(t, IsTimeWithinRange("08:00", "08:00", "17:00"))
	assert.True(t, IsTimeWithinRange("17:00", "08:00", "17:00"))
	assert.True(t, IsTimeWithinRange("12:30", "08:00", "17:00"))

	assert.False(t, IsTimeWithinRange("07:59", "08:00", "17:00"))
	assert.False(t, IsTimeWithinRange("17:01", "08:00", "17:00"))

	// entrada malformada nunca está dentro
	assert.False(t, IsTimeWithinRange("25:00", "08:00", "17:00"))
	assert.False(t, IsTimeWithinRange("12:00", "", "17:00"))
}
