// Package settings persists the page's style preferences.
//
// Four values are stored, each under its own key so every change is a single
// write-through:
//
//	primaryColor  "#4361ee"  CSS hex color
//	fontSize      "16"       pixels, any integer
//	borderRadius  "5"        pixels, any integer
//	theme         "light"    light | dark
//
// Load never fails. A missing, unreadable or invalid entry falls back to the
// default for that field alone, so one corrupt key cannot wipe the others.
//
// Usage:
//
//	s := settings.New(kv, profileID)
//	current := s.Load(ctx)
//	updated, err := s.SetTheme(ctx, settings.ThemeDark)
package settings
