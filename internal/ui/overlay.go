package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/renato0307/tutor/internal/theme"
)

// compositeOverlay draws box centered over a dimmed copy of background.
// The result is at least height lines tall and every line is padded to width.
func compositeOverlay(background, box string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	for i, line := range bgLines {
		bgLines[i] = padRight(theme.DimStyle.Render(ansi.Strip(line)), width)
	}

	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	left := max((width-boxWidth)/2, 0)
	top := max((len(bgLines)-len(boxLines))/2, 0)

	for i, line := range boxLines {
		y := top + i
		if y >= len(bgLines) {
			break
		}
		right := max(width-left-lipgloss.Width(line), 0)
		bgLines[y] = strings.Repeat(" ", left) + line + strings.Repeat(" ", right)
	}
	return strings.Join(bgLines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
