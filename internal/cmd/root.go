package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/logging"
)

const defaultMaxLogFiles = 1000

// CLI represents the command-line interface structure
type CLI struct {
	Version        kong.VersionFlag `help:"Show version information"`
	APIURL         string           `name:"api-url" help:"Base URL of the tutoring engine" env:"TUTOR_API_URL" default:"${api_url}"`
	Debug          bool             `help:"Enable debug logging to file" short:"d" env:"TUTOR_DEBUG"`
	DebugFile      string           `help:"Custom path for debug log file (disables automatic cleanup)" env:"TUTOR_DEBUG_FILE"`
	MaxLogFiles    int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	RequestTimeout int              `help:"Seconds before an engine call times out" env:"TUTOR_REQUEST_TIMEOUT" default:"${request_timeout}"`

	Run       RunCmd       `cmd:"" help:"Start a tutoring session in the terminal (default)" default:"1"`
	Serve     ServeCmd     `cmd:"serve" help:"Serve the tutoring TUI over SSH"`
	Sessions  SessionsCmd  `cmd:"sessions" help:"Browse archived sessions (list, view, download, del)"`
	Settings  SettingsCmd  `cmd:"settings" help:"Show or change settings"`
	DevEngine DevEngineCmd `cmd:"dev-engine" help:"Run the scripted tutoring engine for local development"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// Vars returns the kong variables used as flag defaults
func Vars() kong.Vars {
	return kong.Vars{
		"api_url":         config.DefaultAPIURL,
		"request_timeout": strconv.Itoa(config.DefaultRequestTimeoutSeconds),
	}
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply applies settings.json under flags and environment, initializes
// logging and builds the container.
// Precedence: CLI flags > env vars > settings.json > defaults
func (c *CLI) AfterApply() error {
	if c.settings != nil {
		applyString(&c.APIURL, config.DefaultAPIURL, "TUTOR_API_URL", c.settings.APIURL)
		applyInt(&c.RequestTimeout, config.DefaultRequestTimeoutSeconds, "TUTOR_REQUEST_TIMEOUT", c.settings.RequestTimeoutSeconds)
		applyInt(&c.MaxLogFiles, defaultMaxLogFiles, "TUTOR_MAX_LOG_FILES", c.settings.MaxLogFiles)
		if !c.Debug {
			if _, hasEnv := os.LookupEnv("TUTOR_DEBUG"); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// The container opens the archive, whose gorm logger needs logging ready
	container, err := NewContainer(c.APIURL, c.RequestTimeout, c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	logging.Logger.Debug("CLI initialized", "api_url", c.APIURL, "request_timeout", c.RequestTimeout, "log_file", logFilePath)
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// applyString copies the setting into target when target still holds its
// default and the environment does not set it
func applyString(target *string, def, envVar, setting string) {
	if *target != def || setting == "" {
		return
	}
	if _, hasEnv := os.LookupEnv(envVar); hasEnv {
		return
	}
	*target = setting
}

// applyInt is applyString for optional integer settings
func applyInt(target *int, def int, envVar string, setting *int) {
	if *target != def || setting == nil {
		return
	}
	if _, hasEnv := os.LookupEnv(envVar); hasEnv {
		return
	}
	*target = *setting
}
