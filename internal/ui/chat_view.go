package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/services"
	"github.com/renato0307/tutor/internal/theme"
)

// renderMessages renders the message log for the chat viewport
func renderMessages(messages []domain.Message, width int) string {
	if len(messages) == 0 {
		return theme.LabelStyle.Render("Waiting for the tutor...")
	}

	bodyWidth := max(width-2, 10)
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(speakerLabel(msg.Role))
		b.WriteString("\n")

		style := theme.MessageStyle
		if msg.Provisional {
			style = theme.ProvisionalStyle
		}
		b.WriteString(style.Width(bodyWidth).Render(msg.Content))
	}
	return b.String()
}

func speakerLabel(role domain.Role) string {
	if role == domain.RoleStudent {
		return theme.StudentSpeakerStyle.Render("You")
	}
	return theme.AISpeakerStyle.Render("Tutor")
}

// formatClock renders seconds as mm:ss, or h:mm:ss past the hour
func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// renderClock colors the countdown by how much time is left
func renderClock(seconds int) string {
	text := formatClock(seconds)
	switch {
	case seconds <= 0:
		return theme.ClockExpiredStyle.Render(text)
	case seconds <= services.WarningThresholdSeconds:
		return theme.ClockWarningStyle.Render(text)
	default:
		return theme.ClockStyle.Render(text)
	}
}

// renderStatusBar renders course, phase and countdown on one line
func renderStatusBar(session domain.Session, width int) string {
	left := fmt.Sprintf("%s · %s · week %d", session.CourseRef, session.TopicRef, session.CurrentWeek)
	if session.Extensions > 0 {
		left += fmt.Sprintf(" · +%d ext", session.Extensions)
	}
	phase := theme.PhaseStyle(string(session.Phase)).Render(phaseLabel(session.Phase))
	right := phase + "  " + renderClock(session.RemainingSeconds)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return theme.StatusBarStyle.Width(max(width, 1)).Render(left + strings.Repeat(" ", gap) + right)
}

func phaseLabel(phase domain.Phase) string {
	switch phase {
	case domain.PhaseActive:
		return "your turn"
	case domain.PhaseAwaitingReply:
		return "tutor is thinking"
	case domain.PhaseExtending:
		return "extension offered"
	case domain.PhaseTerminating:
		return "saving"
	case domain.PhaseEnded:
		return "ended"
	}
	return "not started"
}

// renderDebugPanel shows the controller's view of the session and the
// opaque engine state of the latest turn
func renderDebugPanel(session domain.Session, inFlight services.RequestKind, generation uint64, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "thread:     %s\n", session.ID)
	fmt.Fprintf(&b, "phase:      %s\n", session.Phase)
	fmt.Fprintf(&b, "next_state: %s\n", session.NextState)
	fmt.Fprintf(&b, "in flight:  %s\n", valueOr(string(inFlight), "-"))
	fmt.Fprintf(&b, "generation: %d\n", generation)
	fmt.Fprintf(&b, "duration:   %d min (%d ext)\n", session.DurationMinutes, session.Extensions)

	if len(session.State) > 0 {
		b.WriteString("\nstate:\n")
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, session.State, "", "  "); err == nil {
			b.Write(pretty.Bytes())
		} else {
			b.Write(session.State)
		}
	}
	return theme.DebugPanelStyle.Width(max(width-2, 10)).Render(b.String())
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
