package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Session phase colors
const (
	ColorActive    Color = "2"   // Green - accepting turns
	ColorAwaiting  Color = "3"   // Yellow - waiting for the tutor
	ColorEnded     Color = "8"   // Gray - finished
	ColorExtending Color = "141" // Purple - extension offered
)

// Countdown colors
const (
	ColorClock        Color = "250" // Normal countdown
	ColorClockWarning Color = "208" // Orange - five minutes or less
	ColorClockExpired Color = "1"   // Red - time is up
)

// Chat colors
const (
	ColorAI          Color = "86"  // Cyan - tutor bubbles
	ColorProvisional Color = "240" // Dark gray - not yet confirmed
	ColorStudent     Color = "99"  // Purple - student bubbles
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
	ColorWarning   Color = "214" // Amber - non-blocking warnings
)

// Accent colors
const (
	ColorBorder  Color = "238" // Panel borders
	ColorSpinner Color = "205" // Pink
)

// PhaseColor returns the color used to render a session phase label
func PhaseColor(phase string) Color {
	switch phase {
	case "active":
		return ColorActive
	case "awaiting_reply", "terminating":
		return ColorAwaiting
	case "extending":
		return ColorExtending
	default:
		return ColorEnded
	}
}
