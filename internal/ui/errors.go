package ui

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/renato0307/tutor/internal/domain"
)

const (
	maxErrorLines  = 2
	errorPrefix    = "Error: "
	warningPrefix  = "Warning: "
	truncationMark = "..."
	minLineWidth   = 10
)

// describeError turns controller failures into text a student can act on
func describeError(err error) string {
	var ve *domain.ValidationError
	var te *domain.TransportError
	var pe *domain.ProtocolError

	switch {
	case errors.Is(err, domain.ErrBusy):
		return "the tutor is still answering, wait for the reply"
	case errors.Is(err, domain.ErrSessionNotActive):
		return "the session is not accepting replies"
	case errors.Is(err, domain.ErrSessionInProgress):
		return "a session is already in progress"
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &te) && te.Retryable():
		return te.Error() + " (try again)"
	case errors.As(err, &pe):
		return "unexpected reply from the tutor: " + pe.Reason
	}
	return err.Error()
}

// formatErrorForDisplay wraps the message to maxWidth and keeps at most
// maxErrorLines lines, ending in "..." when text was cut.
func formatErrorForDisplay(err error, maxWidth int, prefix string) string {
	if err == nil {
		return ""
	}
	message := describeError(err)
	words := strings.Fields(message)
	if len(words) == 0 {
		return prefix + "unknown error"
	}

	width := max(maxWidth, minLineWidth)
	firstWidth := max(maxWidth-utf8.RuneCountInString(prefix), minLineWidth)

	var lines []string
	var line strings.Builder
	limit := firstWidth
	truncated := false
	for _, word := range words {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > limit {
			lines = append(lines, line.String())
			line.Reset()
			if len(lines) == maxErrorLines {
				truncated = true
				break
			}
			limit = width
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, line.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep && keep > 0 {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return prefix + strings.Join(lines, "\n")
}
