package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	adaptersound "github.com/renato0307/tutor/internal/adapters/sound"
	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ui"
)

// RunCmd starts the tutoring TUI
type RunCmd struct {
	Course          string `help:"Course to study; skips the start form when set" env:"TUTOR_COURSE"`
	Dev             bool   `help:"Enable development mode (shows version info and the state panel)" env:"TUTOR_DEV"`
	Duration        int    `help:"Session length in minutes" env:"TUTOR_DURATION"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" env:"TUTOR_ERROR_CLEAR_DELAY" default:"10"`
	NoSound         bool   `help:"Do not play sounds on the time warning and at the end" env:"TUTOR_NO_SOUND"`
	Student         string `help:"Student identifier (defaults to student_id in settings, then $USER)" env:"TUTOR_STUDENT_ID"`
	Topic           string `help:"Topic within the course" env:"TUTOR_TOPIC" default:"ALL"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings()
	r.applySettings(settings)

	studentID := r.studentID(settings)
	if studentID == "" {
		return fmt.Errorf("no student id: pass --student or set student_id in %s", config.GetSettingsPath())
	}

	logging.Logger.Info("Starting tutor", "student_id", studentID, "course", r.Course, "topic", r.Topic, "duration", r.Duration)

	controller, err := cli.Container.NewController(studentID)
	if err != nil {
		return fmt.Errorf("failed to create session controller: %w", err)
	}
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := cli.Container.ModelOptions(ctx, r.Dev, r.ErrorClearDelay)
	opts.AutoStart = r.Course != ""
	opts.Defaults.CourseRef = r.Course
	opts.Defaults.TopicRef = r.Topic
	if r.Duration > 0 {
		opts.Defaults.DurationMinutes = r.Duration
	}
	if !r.NoSound {
		opts.Sound = adaptersound.NewPlayer()
	}

	p := tea.NewProgram(
		ui.NewModel(controller, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}

// applySettings fills flags still at their defaults from settings.json
func (r *RunCmd) applySettings(settings *config.Settings) {
	applyInt(&r.ErrorClearDelay, config.DefaultErrorClearDelay, "TUTOR_ERROR_CLEAR_DELAY", settings.ErrorClearDelay)
	if r.Duration == 0 && settings.DefaultDurationMinutes != nil {
		r.Duration = *settings.DefaultDurationMinutes
	}
}

func (r *RunCmd) studentID(settings *config.Settings) string {
	if r.Student != "" {
		return r.Student
	}
	if settings.StudentID != "" {
		return settings.StudentID
	}
	return os.Getenv("USER")
}
