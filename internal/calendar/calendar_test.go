// ABOUTME: Tests for the month grid layout
// ABOUTME: Leap years, leading blanks and the today marker

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNew_LeapFebruary(t *testing.T) {
	g := New(time.February, 2024, date(2024, time.February, 15))

	assert.Equal(t, "February 2024", g.Label)
	assert.Equal(t, 4, g.LeadingBlanks(), "2024-02-01 is a Thursday")
	assert.Equal(t, 29, g.Days())
	require.Len(t, g.Cells, 33)

	for _, c := range g.Cells {
		assert.Equal(t, c.Day == 15, c.IsToday, "day %d", c.Day)
	}
}

func TestNew_January2023(t *testing.T) {
	g := New(time.January, 2023, date(2026, time.October, 19))

	assert.Equal(t, 31, g.Days())
	assert.Equal(t, 0, g.LeadingBlanks(), "2023-01-01 is a Sunday")
	for _, c := range g.Cells {
		assert.False(t, c.IsToday)
	}
}

func TestNew_TodayRequiresSameMonthAndYear(t *testing.T) {
	// Same day number, different month
	g := New(time.March, 2024, date(2024, time.February, 15))
	for _, c := range g.Cells {
		assert.False(t, c.IsToday)
	}

	// Same day and month, different year
	g = New(time.February, 2023, date(2024, time.February, 15))
	for _, c := range g.Cells {
		assert.False(t, c.IsToday)
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.February, 2023, 28},
		{time.February, 2024, 29},
		{time.February, 1900, 28},
		{time.February, 2000, 29},
		{time.April, 2026, 30},
		{time.December, 2026, 31},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DaysIn(tc.month, tc.year), "%s %d", tc.month, tc.year)
	}
}

func TestFirstWeekday(t *testing.T) {
	assert.Equal(t, time.Thursday, FirstWeekday(time.February, 2024))
	assert.Equal(t, time.Sunday, FirstWeekday(time.January, 2023))
	assert.Equal(t, time.Thursday, FirstWeekday(time.October, 2026))
}

func TestGrid_Weeks(t *testing.T) {
	g := New(time.October, 2026, date(2026, time.October, 19))

	weeks := g.Weeks()
	require.Len(t, weeks, 5) // 4 blanks + 31 days = 35 cells
	assert.True(t, weeks[0][0].Blank())
	assert.Equal(t, 1, weeks[0][4].Day)
	assert.True(t, weeks[3][1].IsToday)
	assert.Equal(t, 19, weeks[3][1].Day)
}

func TestCurrent(t *testing.T) {
	now := date(2026, time.October, 19)
	g := Current(now)

	assert.Equal(t, "October 2026", g.Label)
	assert.Equal(t, 10, g.Month)
	assert.Equal(t, []string{"S", "M", "T", "W", "T", "F", "S"}, g.Weekdays)
}
