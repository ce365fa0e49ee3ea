package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2389/showcase/internal/calendar"
	"github.com/2389/showcase/internal/clock"
)

// handleCalendar returns the grid for ?month=&year=, defaulting each to the
// current date. Today is always highlighted relative to the server clock.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	month, year := now.Month(), now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			s.sendJSONError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		month = time.Month(m)
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			s.sendJSONError(w, http.StatusBadRequest, "year must be 1-9999")
			return
		}
		year = y
	}

	s.sendJSON(w, http.StatusOK, localizedGrid(calendar.New(month, year, now), s.localeFor(r)))
}

// localizedGrid names the month and weekday columns in the page's language,
// so the calendar reads the same as the date line above it.
func localizedGrid(g calendar.Grid, loc clock.Locale) calendar.Grid {
	g.Label = loc.MonthLabel(time.Month(g.Month), g.Year)
	initials := loc.WeekdayInitials()
	g.Weekdays = initials[:]
	return g
}
