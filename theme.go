package chat

import "strconv"

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	User      int // "You:" header
	Assistant int // "AI:" header
	System    int // "System:" header, spinner
	Error     int // "Error:" header
	Muted     int // Fence lines, hints, status text
	Accent    int // Sidebar titles
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		User:      4,
		Assistant: 2,
		System:    3,
		Error:     1,
		Muted:     8,
		Accent:    6,
	}
}

// ANSIColor converts an ANSI index to a Color. Negative indices mean the
// terminal default.
func ANSIColor(index int) Color {
	if index < 0 {
		return ""
	}
	return Color(strconv.Itoa(index))
}
