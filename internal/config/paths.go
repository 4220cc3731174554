package config

import (
	"os"
	"path/filepath"
)

// GetTutorHome returns TUTOR_HOME or ~/.tutor default
func GetTutorHome() string {
	tutorHome := os.Getenv("TUTOR_HOME")
	if tutorHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".tutor"
		}
		return filepath.Join(homeDir, ".tutor")
	}
	return ExpandPath(tutorHome)
}

// GetDBPath returns $TUTOR_HOME/archive.db
func GetDBPath() string {
	return filepath.Join(GetTutorHome(), "archive.db")
}

// GetSettingsPath returns $TUTOR_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetTutorHome(), "settings.json")
}

// GetSSHDir returns $TUTOR_HOME/ssh
func GetSSHDir() string {
	return filepath.Join(GetTutorHome(), "ssh")
}

// GetTranscriptsDir returns $TUTOR_HOME/transcripts
func GetTranscriptsDir() string {
	return filepath.Join(GetTutorHome(), "transcripts")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
