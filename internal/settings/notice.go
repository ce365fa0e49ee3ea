package settings

import "fmt"

// Notice returns the short confirmation shown to the user after a change.
func Notice(key string, s StyleSettings) string {
	switch key {
	case KeyPrimaryColor:
		return fmt.Sprintf("Primary color changed to %s", s.PrimaryColor)
	case KeyFontSize:
		return fmt.Sprintf("Font size changed to %dpx", s.FontSizePx)
	case KeyBorderRadius:
		return fmt.Sprintf("Border radius changed to %dpx", s.BorderRadiusPx)
	case KeyTheme:
		return fmt.Sprintf("Theme changed to %s", s.Theme)
	default:
		return ""
	}
}

// ResetNotice is shown after Reset.
const ResetNotice = "Styles reset to default!"
