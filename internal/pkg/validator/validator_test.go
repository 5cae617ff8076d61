package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	d, ok := IsValidDate("2025-03-14")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())

	_, ok = IsValidDate("14-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDateTime("2025-03-14T08:30:00Z")
	assert.True(t, ok)

	ts, ok := IsValidDateTime("2025-03-14 08:30:00")
	assert.True(t, ok)
	assert.Equal(t, 8, ts.Hour())

	_, ok = IsValidDateTime("not a timestamp")
	assert.False(t, ok)
}

func TestIsValidYearMonth(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidYearMonth(2025, 1))
	assert.True(t, IsValidYearMonth(2025, 12))
	assert.False(t, IsValidYearMonth(2025, 0))
	assert.False(t, IsValidYearMonth(2025, 13))
	assert.False(t, IsValidYearMonth(1800, 6))
}

func TestIsValidInterval(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	assert.True(t, IsValidInterval(start, end))
	assert.False(t, IsValidInterval(end, start))
	assert.False(t, IsValidInterval(start, start))
	assert.False(t, IsValidInterval(time.Time{}, end))
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "start_time", Message: "is required"},
		{Field: "duration_days", Message: "must be positive"},
	}

	assert.Equal(t, "start_time: is required; duration_days: must be positive", errs.Error())
	assert.Equal(t, map[string]string{
		"start_time":    "is required",
		"duration_days": "must be positive",
	}, errs.ToMap())
}
