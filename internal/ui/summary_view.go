package ui

import (
	"strings"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/theme"
)

// renderSummary renders the recap shown once the session has ended
func renderSummary(summary *domain.Summary, width int) string {
	if summary == nil {
		return theme.LabelStyle.Render("No summary available.")
	}

	var b strings.Builder
	b.WriteString(theme.SubtitleStyle.Render(valueOr(summary.Subject, "Session summary")))
	b.WriteString("\n")
	b.WriteString(theme.LabelStyle.Render(summary.StartTime + " - " + summary.EndTime))
	if !summary.FromServer {
		b.WriteString("\n")
		b.WriteString(theme.WarningStyle.Render("The tutor could not save this session; this recap was rebuilt locally."))
	}
	b.WriteString("\n\n")
	b.WriteString(renderMessages(summary.Messages, max(width-4, 10)))

	return theme.SummaryBoxStyle.Width(max(width-2, 10)).Render(b.String())
}
