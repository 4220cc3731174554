package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/renato0307/tutor/internal/domain"
)

// Defaults applied when neither flags, environment nor settings.json say otherwise
const (
	DefaultAPIURL                = "http://127.0.0.1:5001"
	DefaultDurationMinutes       = 30
	DefaultErrorClearDelay       = 10
	DefaultRequestTimeoutSeconds = 60
	DefaultSemesterStartDate     = "2025-01-08"
	DefaultSSHHost               = "localhost"
	DefaultSSHPort               = "23234"
	DefaultTimeUpMessage         = "Time is up."
	DefaultTopic                 = "ALL"
	DefaultTotalWeeks            = 14
	semesterStartDateLayout      = "2006-01-02"
)

// Settings represents the structure of $TUTOR_HOME/settings.json
type Settings struct {
	APIURL                 string      `json:"api_url,omitempty"`
	Courses                StringArray `json:"courses,omitempty"`
	Debug                  *bool       `json:"debug,omitempty"`
	DefaultDurationMinutes *int        `json:"default_duration_minutes,omitempty"`
	ErrorClearDelay        *int        `json:"error_clear_delay,omitempty"`
	MaxLogFiles            *int        `json:"max_log_files,omitempty"`
	RequestTimeoutSeconds  *int        `json:"request_timeout_seconds,omitempty"`
	SemesterStartDate      string      `json:"semester_start_date,omitempty"`
	SSHHost                string      `json:"ssh_host,omitempty"`
	SSHPort                string      `json:"ssh_port,omitempty"`
	StudentID              string      `json:"student_id,omitempty"`
	TimeUpMessage          string      `json:"time_up_message,omitempty"`
	TotalWeeks             *int        `json:"total_weeks,omitempty"`
	YesNoState             string      `json:"yes_no_state,omitempty"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = ParseCommaSeparated(str)
	return nil
}

// ParseCommaSeparated splits comma-separated string and trims whitespace
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Calendar returns the academic calendar described by the settings
func (s *Settings) Calendar() (domain.AcademicCalendar, error) {
	startDate := DefaultSemesterStartDate
	if s != nil && s.SemesterStartDate != "" {
		startDate = s.SemesterStartDate
	}
	start, err := time.Parse(semesterStartDateLayout, startDate)
	if err != nil {
		return domain.AcademicCalendar{}, fmt.Errorf("invalid semester_start_date %q: %w", startDate, err)
	}

	totalWeeks := DefaultTotalWeeks
	if s != nil && s.TotalWeeks != nil {
		totalWeeks = *s.TotalWeeks
	}

	return domain.AcademicCalendar{SemesterStart: start, TotalWeeks: totalWeeks}, nil
}

// LoadSettings loads settings from $TUTOR_HOME/settings.json.
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// UpdateSettings applies fn to the settings file under an exclusive file lock
func UpdateSettings(fn func(*Settings) error) error {
	return updateSettingsAt(GetSettingsPath(), fn)
}

func updateSettingsAt(path string, fn func(*Settings) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	unlock, err := lockPath(path + ".lock")
	if err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer unlock()

	settings, err := loadSettingsFrom(path)
	if err != nil {
		return err
	}
	if err := fn(settings); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
