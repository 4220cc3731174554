package server

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/tutor/internal/logging"
)

// teaHandler creates a tutoring screen with its own controller for each connection.
// The student is the one bound to the authenticated key.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	studentID, _ := sess.Context().Value(studentContextKey).(string)
	connID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())
	if studentID == "" {
		logging.Logger.Error("SSH session without an authenticated student", "conn_id", connID)
		return errorModel{errors.New("this key is not linked to a student")}, nil
	}

	logging.Logger.Info("New SSH session",
		"conn_id", connID,
		"student_id", studentID,
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model, cleanup, err := s.newSession(sess.Context(), studentID)
	if err != nil {
		logging.Logger.Error("Failed to create tutoring session", "conn_id", connID, "error", err)
		return errorModel{err}, nil
	}

	started := time.Now()
	go func() {
		<-sess.Context().Done()
		if cleanup != nil {
			cleanup()
		}
		logging.Logger.Info("SSH session ended", "conn_id", connID, "duration", time.Since(started).String())
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// errorModel shows a setup failure and exits on the first key
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return e, tea.Quit
	}
	return e, nil
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n\nPress any key to disconnect.\n", e.err)
}
