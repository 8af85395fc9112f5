package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "Simple month",
			date:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Crosses year",
			date:     time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Clamps month end",
			date:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Clamps leap February",
			date:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Thirty years",
			date:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			months:   360,
			expected: time.Date(2055, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.date, tt.months))
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	from := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, MonthsBetween(from, from))
	assert.Equal(t, 12, MonthsBetween(from, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11, MonthsBetween(from, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
}

func TestPayoffDate(t *testing.T) {
	start := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	got := PayoffDate(start, 18)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "Jan 2027", FormatMonthYear(got))
}

func TestFormatMonths(t *testing.T) {
	cases := map[int]string{
		0:   "0 months",
		1:   "1 month",
		11:  "11 months",
		12:  "1 year",
		13:  "1 year 1 month",
		40:  "3 years 4 months",
		360: "30 years",
		-14: "1 year 2 months",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMonths(in), "FormatMonths(%d)", in)
	}
}
