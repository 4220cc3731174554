package ui

import (
	"github.com/renato0307/tutor/internal/services"
)

// completionMsg carries the result of a controller request back into the event loop
type completionMsg struct {
	completion services.Completion
}

// clockTickMsg advances the session clock by one second.
// Ticks scheduled for an earlier session are dropped by generation.
type clockTickMsg struct {
	generation uint64
}

// transcriptSavedMsg reports where a downloaded transcript was written
type transcriptSavedMsg struct {
	err  error
	path string
}

// noticeMsg shows a transient informational line in the status area
type noticeMsg struct {
	text string
}
