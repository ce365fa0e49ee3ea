// ABOUTME: Supported display locales and Accept-Language negotiation
// ABOUTME: Month and weekday names are translated with goodsign/monday

package clock

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale describes how one language writes the long date and the time.
type Locale struct {
	Tag        language.Tag
	names      monday.Locale
	DateLayout string
	TimeLayout string
}

// String returns the BCP 47 tag.
func (l Locale) String() string {
	return l.Tag.String()
}

// MonthLabel names a month and year the way the locale writes it, for
// example "February 2024" or "Februar 2024".
func (l Locale) MonthLabel(month time.Month, year int) string {
	return monday.Format(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), "January 2006", l.names)
}

// WeekdayInitials returns one capital letter per weekday, Sunday first.
func (l Locale) WeekdayInitials() [7]string {
	upper := cases.Upper(l.Tag)
	var out [7]string
	// 2024-01-07 is a Sunday.
	sunday := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	for i := range out {
		name := monday.Format(sunday.AddDate(0, 0, i), "Monday", l.names)
		r, _ := utf8.DecodeRuneInString(name)
		out[i] = upper.String(string(r))
	}
	return out
}

var (
	EnUS = Locale{Tag: language.AmericanEnglish, names: monday.LocaleEnUS, DateLayout: "Monday, January 2, 2006", TimeLayout: "03:04:05 PM"}
	EnGB = Locale{Tag: language.BritishEnglish, names: monday.LocaleEnGB, DateLayout: "Monday 2 January 2006", TimeLayout: "15:04:05"}
	DeDE = Locale{Tag: language.MustParse("de-DE"), names: monday.LocaleDeDE, DateLayout: "Monday, 2. January 2006", TimeLayout: "15:04:05"}
	FrFR = Locale{Tag: language.MustParse("fr-FR"), names: monday.LocaleFrFR, DateLayout: "Monday 2 January 2006", TimeLayout: "15:04:05"}
	EsES = Locale{Tag: language.MustParse("es-ES"), names: monday.LocaleEsES, DateLayout: "Monday, 2 de January de 2006", TimeLayout: "15:04:05"}
	NlNL = Locale{Tag: language.MustParse("nl-NL"), names: monday.LocaleNlNL, DateLayout: "Monday 2 January 2006", TimeLayout: "15:04:05"}
)

// Supported lists the locales in preference order. The first is the fallback.
var Supported = []Locale{EnUS, EnGB, DeDE, FrFR, EsES, NlNL}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(Supported))
	for i, l := range Supported {
		tags[i] = l.Tag
	}
	return tags
}

// ParseLocale returns the supported locale closest to a BCP 47 tag such as
// "en-US" or "de". Unparseable tags are an error; unsupported languages fall
// back to EnUS.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, fmt.Errorf("parsing locale %q: %w", s, err)
	}
	_, idx, _ := matcher.Match(tag)
	return Supported[idx], nil
}

// MatchAcceptLanguage picks a locale for an Accept-Language header value,
// returning fallback when the header is empty or malformed.
func MatchAcceptLanguage(header string, fallback Locale) Locale {
	if header == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}
