package visitstats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeForDay(t *testing.T) {
	now := time.Date(2024, 5, 17, 13, 45, 0, 0, time.UTC)
	start, end, err := DateRangeFor(RangeDay, "", "", now)
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-17", start)
	assert.Equal(t, "2024-05-17", end)
}

func TestDateRangeForMonthLastDay(t *testing.T) {
	// every month of a leap and a non-leap year must end on the true last day
	lastDays := map[int][12]int{
		2023: {31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
		2024: {31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	}
	for year, days := range lastDays {
		for m := 1; m <= 12; m++ {
			now := time.Date(year, time.Month(m), 15, 0, 0, 0, 0, time.UTC)
			start, end, err := DateRangeFor(RangeMonth, "", "", now)
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%04d-%02d-01", year, m), start)
			assert.Equal(t, fmt.Sprintf("%04d-%02d-%02d", year, m, days[m-1]), end)
			assert.LessOrEqual(t, start, end)
		}
	}
}

func TestDateRangeForYear(t *testing.T) {
	now := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	start, end, err := DateRangeFor(RangeYear, "", "", now)
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-12-31", end)
}

func TestDateRangeForCustom(t *testing.T) {
	now := time.Now()

	start, end, err := DateRangeFor(RangeCustom, "2024-02-01", "2024-02-29", now)
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	// bounds are passed through verbatim, ordering is the caller's problem
	start, end, err = DateRangeFor(RangeCustom, "2024-03-10", "2024-03-01", now)
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-10", start)
	assert.Equal(t, "2024-03-01", end)

	// a missing bound makes the range undefined
	for _, bounds := range [][2]string{{"", "2024-01-31"}, {"2024-01-01", ""}, {"", ""}} {
		_, _, err = DateRangeFor(RangeCustom, bounds[0], bounds[1], now)
		assert.ErrorIs(t, err, ErrUndefinedRange)
	}
}

func TestParseRangeKind(t *testing.T) {
	for _, valid := range []string{"day", "month", "year", "custom"} {
		kind, err := ParseRangeKind(valid)
		assert.NoError(t, err)
		assert.Equal(t, RangeKind(valid), kind)
	}
	_, err := ParseRangeKind("week")
	assert.Error(t, err)
	_, err = ParseRangeKind("")
	assert.Error(t, err)
}
