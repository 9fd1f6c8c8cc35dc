package workdays_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack-backend/pkg/workdays"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_UTCMidnight(t *testing.T) {
	got, err := workdays.ParseDate("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 3), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := workdays.ParseDate("03/06/2024")
	assert.Error(t, err)
}

func TestNormalize_DropsTimeOfDay(t *testing.T) {
	noisy := time.Date(2024, time.June, 3, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2024, time.June, 3), workdays.Normalize(noisy))
}

func TestWeekdays_FullWeek(t *testing.T) {
	// Mon June 3 through Sun June 9 contains exactly five weekdays.
	days := workdays.Weekdays(date(2024, time.June, 3), date(2024, time.June, 9))
	require.Len(t, days, 5)
	assert.Equal(t, date(2024, time.June, 3), days[0])
	assert.Equal(t, date(2024, time.June, 7), days[4])
}

func TestWeekdays_SingleWeekendDay(t *testing.T) {
	days := workdays.Weekdays(date(2024, time.June, 8), date(2024, time.June, 8))
	assert.Empty(t, days)
}

func TestCountWorkingDays_ExcludesWeekendsAndHolidays(t *testing.T) {
	// June 3-7 2024 is Mon-Fri; June 5 is a holiday.
	holidays := workdays.NewHolidaySet([]time.Time{date(2024, time.June, 5)})
	got := workdays.CountWorkingDays(date(2024, time.June, 3), date(2024, time.June, 9), holidays)
	assert.Equal(t, 4, got)
}

func TestCountWorkingDays_HolidayComparedAtDayGranularity(t *testing.T) {
	// The holiday carries a time-of-day; membership is still by calendar day.
	noon := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	holidays := workdays.NewHolidaySet([]time.Time{noon})
	assert.True(t, holidays.Contains(date(2024, time.June, 5)))
	got := workdays.CountWorkingDays(date(2024, time.June, 5), date(2024, time.June, 5), holidays)
	assert.Equal(t, 0, got)
}

func TestExpandYearly_RecursOnSameMonthDay(t *testing.T) {
	first := date(2020, time.December, 25)
	got, err := workdays.ExpandYearly(first, date(2024, time.January, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, date(2024, time.December, 25), got[0])
	assert.Equal(t, date(2025, time.December, 25), got[1])
}

func TestExpandYearly_FirstOccurrenceAfterRange(t *testing.T) {
	first := date(2026, time.December, 25)
	got, err := workdays.ExpandYearly(first, date(2024, time.January, 1), date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDays_Inclusive(t *testing.T) {
	days := workdays.Days(date(2024, time.June, 1), date(2024, time.June, 3))
	assert.Len(t, days, 3)
}
