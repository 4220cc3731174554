package cmd

import (
	"context"
	"fmt"
	"time"

	adapterstorage "github.com/renato0307/tutor/internal/adapters/storage"
	"github.com/renato0307/tutor/internal/adapters/tutorapi"
	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/services"
	"github.com/renato0307/tutor/internal/ui"
)

// Container holds all dependencies for the application
type Container struct {
	// Adapters
	Archive *adapterstorage.SQLiteArchive
	Engine  *tutorapi.Client

	// Services
	History *services.HistoryService

	requestTimeout time.Duration
	settings       *config.Settings
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(apiURL string, requestTimeoutSeconds int, settings *config.Settings) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}
	if requestTimeoutSeconds <= 0 {
		requestTimeoutSeconds = config.DefaultRequestTimeoutSeconds
	}

	archive, err := adapterstorage.NewSQLiteArchive(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	engine := tutorapi.New(apiURL)

	return &Container{
		Archive:        archive,
		Engine:         engine,
		History:        services.NewHistoryService(archive, engine),
		requestTimeout: time.Duration(requestTimeoutSeconds) * time.Second,
		settings:       settings,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Archive != nil {
		return c.Archive.Close()
	}
	return nil
}

// Settings returns the loaded settings.json, never nil
func (c *Container) Settings() *config.Settings {
	return c.settings
}

// NewController builds a session controller for one student.
// Each controller gets its own transport so sessions never share the in-flight gate.
func (c *Container) NewController(studentID string) (*services.SessionController, error) {
	calendar, err := c.settings.Calendar()
	if err != nil {
		return nil, err
	}

	transport := services.NewTurnTransport(c.Engine, c.requestTimeout)
	return services.NewSessionController(transport, c.Archive, services.ControllerConfig{
		Calendar:      calendar,
		StudentID:     studentID,
		TimeUpMessage: c.settings.TimeUpMessage,
		YesNoState:    c.settings.YesNoState,
	}), nil
}

// ModelOptions returns the UI options derived from settings
func (c *Container) ModelOptions(ctx context.Context, devMode bool, errorClearDelay int) ui.Options {
	defaults := ui.StartFormResult{
		DurationMinutes: config.DefaultDurationMinutes,
		TopicRef:        config.DefaultTopic,
	}
	if c.settings.DefaultDurationMinutes != nil {
		defaults.DurationMinutes = *c.settings.DefaultDurationMinutes
	}

	return ui.Options{
		Context:         ctx,
		Courses:         c.settings.Courses,
		Defaults:        defaults,
		DevMode:         devMode,
		ErrorClearDelay: time.Duration(errorClearDelay) * time.Second,
		TranscriptsDir:  config.GetTranscriptsDir(),
	}
}

// SessionFactory returns the per-connection model builder used by the SSH server
func (c *Container) SessionFactory(devMode bool, errorClearDelay int) func(ctx context.Context, studentID string) (*ui.Model, func(), error) {
	return func(ctx context.Context, studentID string) (*ui.Model, func(), error) {
		controller, err := c.NewController(studentID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create controller: %w", err)
		}
		logging.Logger.Info("Tutoring session created for SSH user", "student_id", studentID)

		model := ui.NewModel(controller, c.ModelOptions(ctx, devMode, errorClearDelay))
		return model, controller.Close, nil
	}
}
