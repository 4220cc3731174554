package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads $TUTOR_HOME/.env and ./.env into the process environment.
// Variables already present in the environment are never overridden.
// Returns the files that were actually loaded.
func LoadDotEnv() ([]string, error) {
	candidates := []string{
		filepath.Join(GetTutorHome(), ".env"),
		".env",
	}

	var loaded []string
	for _, path := range candidates {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
