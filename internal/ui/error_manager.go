package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearErrorMsg is sent after the clear delay. Only the matching generation clears.
type clearErrorMsg struct {
	id int
}

// ErrorManager holds the error or warning shown under the chat and clears it
// after a delay. A newer error is never cleared by an older timer.
type ErrorManager struct {
	current   error
	delay     time.Duration
	id        int
	isWarning bool
}

// NewErrorManager creates an ErrorManager with the given auto-clear delay
func NewErrorManager(delay time.Duration) *ErrorManager {
	return &ErrorManager{delay: delay}
}

// SetError shows a blocking failure
func (em *ErrorManager) SetError(err error) tea.Cmd {
	return em.set(err, false)
}

// SetWarning shows a non-blocking failure, such as a missed duration sync
func (em *ErrorManager) SetWarning(err error) tea.Cmd {
	return em.set(err, true)
}

func (em *ErrorManager) set(err error, warning bool) tea.Cmd {
	if err == nil {
		return nil
	}
	em.current = err
	em.isWarning = warning
	em.id++
	return em.clearAfterDelay(em.id)
}

// Clear removes the current error when id still matches
func (em *ErrorManager) Clear(id int) {
	if id == em.id {
		em.current = nil
		em.isWarning = false
	}
}

// Err returns the current error
func (em *ErrorManager) Err() error {
	return em.current
}

// IsWarning reports whether the current error is a warning
func (em *ErrorManager) IsWarning() bool {
	return em.isWarning
}

func (em *ErrorManager) clearAfterDelay(id int) tea.Cmd {
	if em.delay <= 0 {
		return nil
	}
	return tea.Tick(em.delay, func(time.Time) tea.Msg {
		return clearErrorMsg{id: id}
	})
}
