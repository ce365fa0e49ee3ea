// Package calendar lays out the mini month view: leading blanks up to the
// first weekday, then one cell per day, with today highlighted.
package calendar

import (
	"fmt"
	"time"
)

// WeekdayLabels heads the seven columns, Sunday first, in English. Hosts
// that know the reader's language replace them along with Label.
var WeekdayLabels = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Cell is one grid position. Day is zero for a leading blank.
type Cell struct {
	Day     int  `json:"day,omitempty"`
	IsToday bool `json:"isToday,omitempty"`
}

// Blank reports whether the cell is padding before day one.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Grid is a month ready to draw.
type Grid struct {
	Label    string   `json:"label"`
	Month    int      `json:"month"`
	Year     int      `json:"year"`
	Weekdays []string `json:"weekdays"`
	Cells    []Cell   `json:"cells"`
}

// LeadingBlanks is the number of blank cells before day one.
func (g Grid) LeadingBlanks() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Blank() {
			break
		}
		n++
	}
	return n
}

// Days is the number of day cells.
func (g Grid) Days() int {
	return len(g.Cells) - g.LeadingBlanks()
}

// Weeks splits the cells into rows of seven. The last row may be short.
func (g Grid) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i < len(g.Cells); i += 7 {
		end := min(i+7, len(g.Cells))
		weeks = append(weeks, g.Cells[i:end])
	}
	return weeks
}

// FirstWeekday returns the weekday of the first of the month (Sunday = 0).
func FirstWeekday(month time.Month, year int) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// DaysIn returns the number of days in the month: day zero of the next month
// normalizes to the last day of this one.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// New builds the grid for month/year, marking today's cell. Month must be
// 1..12; other values are a caller error and are not normalized.
func New(month time.Month, year int, today time.Time) Grid {
	blanks := int(FirstWeekday(month, year))
	days := DaysIn(month, year)

	cells := make([]Cell, blanks, blanks+days)
	ty, tm, td := today.Date()
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Day:     d,
			IsToday: d == td && month == tm && year == ty,
		})
	}

	return Grid{
		Label:    fmt.Sprintf("%s %d", month, year),
		Month:    int(month),
		Year:     year,
		Weekdays: WeekdayLabels[:],
		Cells:    cells,
	}
}

// Current builds the grid for the month containing now.
func Current(now time.Time) Grid {
	return New(now.Month(), now.Year(), now)
}
