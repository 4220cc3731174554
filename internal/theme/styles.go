package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Chat styles
var (
	AISpeakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAI)

	StudentSpeakerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorStudent)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			PaddingLeft(2)

	ProvisionalStyle = lipgloss.NewStyle().
				Foreground(ColorProvisional).
				Italic(true).
				PaddingLeft(2)
)

// Status bar styles
var (
	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorClock).
			Bold(true)

	ClockWarningStyle = lipgloss.NewStyle().
				Foreground(ColorClockWarning).
				Bold(true)

	ClockExpiredStyle = lipgloss.NewStyle().
				Foreground(ColorClockExpired).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)
)

// Panel styles
var (
	DebugPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorMuted).
			Padding(0, 1)

	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Dialogs drawn over the chat
	OverlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorExtending).
			Padding(0, 2)
	DimStyle = lipgloss.NewStyle().Foreground(ColorProvisional)
)

// Key help styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// WarningStyle renders non-blocking warnings such as a failed duration sync
var WarningStyle = lipgloss.NewStyle().
	Foreground(ColorWarning)

// PhaseStyle returns the style for a session phase label
func PhaseStyle(phase string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(PhaseColor(phase)).
		Bold(true)
}
