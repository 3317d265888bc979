package period_test

import (
	"testing"
	"time"

	"go-hrms/internal/shared/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := period.ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, m.Days())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m.End)

	for _, bad := range []string{"2024-13", "2024-2", "24-02", "2024-02-01", ""} {
		_, err := period.ParseMonth(bad)
		assert.ErrorIs(t, err, period.ErrInvalidMonth, bad)
	}
}

func TestInclusiveDays(t *testing.T) {
	start, _ := period.ParseDate("2026-02-27")
	end, _ := period.ParseDate("2026-03-02")
	assert.Equal(t, 4, period.InclusiveDays(start, end))
	assert.Equal(t, 1, period.InclusiveDays(start, start))
}
