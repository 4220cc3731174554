package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := loadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings_ParsesCoursesInBothForms(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"array", `{"courses": ["CS101_intro", "CS202"]}`},
		{"comma separated", `{"courses": "CS101_intro, CS202"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.json), 0644))

			settings, err := loadSettingsFrom(path)

			require.NoError(t, err)
			assert.Equal(t, StringArray{"CS101_intro", "CS202"}, settings.Courses)
		})
	}
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url":`), 0644))

	_, err := loadSettingsFrom(path)

	assert.ErrorContains(t, err, "invalid settings.json")
}

func TestSettingsCalendar(t *testing.T) {
	weeks := 10
	settings := &Settings{SemesterStartDate: "2026-09-01", TotalWeeks: &weeks}

	cal, err := settings.Calendar()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), cal.SemesterStart)
	assert.Equal(t, 10, cal.TotalWeeks)
}

func TestSettingsCalendar_Defaults(t *testing.T) {
	var settings *Settings

	cal, err := settings.Calendar()

	require.NoError(t, err)
	assert.Equal(t, DefaultTotalWeeks, cal.TotalWeeks)
	assert.Equal(t, 2025, cal.SemesterStart.Year())
}

func TestSettingsCalendar_InvalidDate(t *testing.T) {
	settings := &Settings{SemesterStartDate: "01/09/2026"}

	_, err := settings.Calendar()

	assert.ErrorContains(t, err, "semester_start_date")
}

func TestSetValue(t *testing.T) {
	settings := &Settings{}

	require.NoError(t, settings.SetValue("api_url", "http://tutor.example:5001"))
	require.NoError(t, settings.SetValue("request_timeout_seconds", "45"))
	require.NoError(t, settings.SetValue("debug", "true"))
	require.NoError(t, settings.SetValue("courses", "CS101_intro,CS202"))

	assert.Equal(t, "http://tutor.example:5001", settings.APIURL)
	require.NotNil(t, settings.RequestTimeoutSeconds)
	assert.Equal(t, 45, *settings.RequestTimeoutSeconds)
	require.NotNil(t, settings.Debug)
	assert.True(t, *settings.Debug)
	assert.Equal(t, StringArray{"CS101_intro", "CS202"}, settings.Courses)

	require.NoError(t, settings.SetValue("request_timeout_seconds", ""))
	assert.Nil(t, settings.RequestTimeoutSeconds)
}

func TestSetValue_Errors(t *testing.T) {
	settings := &Settings{}

	assert.ErrorContains(t, settings.SetValue("nope", "x"), "unknown setting")
	assert.ErrorContains(t, settings.SetValue("total_weeks", "many"), "expects an integer")
	assert.ErrorContains(t, settings.SetValue("debug", "sometimes"), "expects true or false")
}

func TestUpdateSettings_PersistsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	err := updateSettingsAt(path, func(s *Settings) error {
		s.StudentID = "s42"
		return nil
	})
	require.NoError(t, err)

	settings, err := loadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "s42", settings.StudentID)
}

func TestGetSettingsKeys_IncludesAllFields(t *testing.T) {
	keys := GetSettingsKeys()

	assert.Contains(t, keys, "api_url")
	assert.Contains(t, keys, "yes_no_state")
	assert.Contains(t, keys, "courses")
	assert.IsNonDecreasing(t, keys)
}
