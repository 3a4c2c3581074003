package ui

// The Color* helpers read the active theme on every call so that InitTheme
// can run after package initialization.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Paint wraps s in the given escape code followed by a reset. With the
// no-color theme active both codes are empty and s is returned unchanged.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}
