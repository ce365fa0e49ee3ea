// ABOUTME: StyleSettings, Theme and Color types with their defaults
// ABOUTME: Parsing helpers shared by Load and the setters

package settings

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidValue is returned when a setter receives a value Load would reject.
var ErrInvalidValue = errors.New("invalid value")

// Theme is the page color scheme, applied as the body class.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Color is a normalized CSS hex color.
type Color string

// Defaults
const (
	DefaultPrimaryColor Color = "#4361ee"
	DefaultFontSize           = 16
	DefaultBorderRadius       = 5
	DefaultTheme              = ThemeLight
)

// Storage keys
const (
	KeyPrimaryColor = "primaryColor"
	KeyFontSize     = "fontSize"
	KeyBorderRadius = "borderRadius"
	KeyTheme        = "theme"
)

// StyleSettings holds the effective style preferences.
type StyleSettings struct {
	PrimaryColor   Color `json:"primaryColor"`
	FontSizePx     int   `json:"fontSize"`
	BorderRadiusPx int   `json:"borderRadius"`
	Theme          Theme `json:"theme"`
}

// Defaults returns settings with every field at its default.
func Defaults() StyleSettings {
	return StyleSettings{
		PrimaryColor:   DefaultPrimaryColor,
		FontSizePx:     DefaultFontSize,
		BorderRadiusPx: DefaultBorderRadius,
		Theme:          DefaultTheme,
	}
}

// CSSVariables returns the custom properties the page root applies.
func (s StyleSettings) CSSVariables() map[string]string {
	return map[string]string{
		"--primary":       string(s.PrimaryColor),
		"--font-size":     strconv.Itoa(s.FontSizePx) + "px",
		"--border-radius": strconv.Itoa(s.BorderRadiusPx) + "px",
	}
}

// BodyClass returns the class set on the page body.
func (s StyleSettings) BodyClass() string {
	return string(s.Theme)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseColor validates a #rgb or #rrggbb color and lower-cases it.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexColor.MatchString(s) {
		return "", fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	return Color(strings.ToLower(s)), nil
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.TrimSpace(s)); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: theme %q", ErrInvalidValue, s)
	}
}

// parsePixels reads a stored integer pixel value. Any integer is accepted;
// only a value that does not parse is invalid.
func parsePixels(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, name, s)
	}
	return n, nil
}
