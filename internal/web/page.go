// ABOUTME: Renders the showcase page with the profile's settings already applied
// ABOUTME: Template parsing and the helpers shared by every HTML view

package web

import (
	"bytes"
	"html/template"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/2389/showcase/internal/calendar"
	"github.com/2389/showcase/internal/clock"
	"github.com/2389/showcase/internal/settings"
)

var templateFuncs = template.FuncMap{
	// degrees converts a hand angle for the SVG rotate() transform.
	"degrees": func(rad float64) float64 {
		return math.Round(rad*180/math.Pi*100) / 100
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// rootStyle renders the style variables as an inline declaration list with a
// stable key order.
func rootStyle(st settings.StyleSettings) template.CSS {
	vars := st.CSSVariables()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(vars[k])
		b.WriteString("; ")
	}
	// Values come from validated settings only.
	return template.CSS(strings.TrimSpace(b.String()))
}

// settingsFor loads the requesting profile's effective settings.
func (s *Server) settingsFor(w http.ResponseWriter, r *http.Request) settings.StyleSettings {
	return settings.New(s.kv, s.profileID(w, r)).Load(r.Context())
}

// renderTemplate executes name into a buffer first so a failure yields a
// clean 500 instead of a half-written page.
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Slider ranges on the page. The store accepts any integer; these only bound
// what the controls offer.
const (
	sliderMinFontSize     = 8
	sliderMaxFontSize     = 72
	sliderMinBorderRadius = 0
	sliderMaxBorderRadius = 50
)

type pageLimits struct {
	MinFontSize, MaxFontSize         int
	MinBorderRadius, MaxBorderRadius int
}

type pageData struct {
	Lang      string
	Settings  settings.StyleSettings
	RootStyle template.CSS
	BodyClass string
	Mode      clock.Mode
	Readout   clock.Readout
	Angles    clock.Angles
	Calendar  calendar.Grid
	Moods     []string
	Limits    pageLimits
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	profileID := s.profileID(w, r)
	st := settings.New(s.kv, profileID).Load(r.Context())

	locale := s.localeFor(r)
	widget := s.clocks.widget(profileID)
	widget.SetLocale(locale)
	frame := widget.Frame()

	data := pageData{
		Lang:      locale.String(),
		Settings:  st,
		RootStyle: rootStyle(st),
		BodyClass: st.BodyClass(),
		Mode:      frame.Mode,
		Readout:   clock.DigitalReadout(frame.At, locale),
		Angles:    clock.AnalogAngles(frame.At),
		Calendar:  localizedGrid(calendar.Current(frame.At), locale),
		Moods:     Moods,
		Limits: pageLimits{
			MinFontSize:     sliderMinFontSize,
			MaxFontSize:     sliderMaxFontSize,
			MinBorderRadius: sliderMinBorderRadius,
			MaxBorderRadius: sliderMaxBorderRadius,
		},
	}

	s.renderTemplate(w, "page.html", data)
}
