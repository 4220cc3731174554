//go:build darwin

package sound

import (
	"os/exec"

	"github.com/renato0307/tutor/internal/ports"
)

// playForEvent plays sounds on macOS using afplay
func playForEvent(event string) bool {
	var soundFiles []string

	switch event {
	case ports.SoundWarning:
		soundFiles = []string{
			"/System/Library/Sounds/Ping.aiff",
			"/System/Library/Sounds/Tink.aiff",
		}
	case ports.SoundTimeUp:
		soundFiles = []string{
			"/System/Library/Sounds/Submarine.aiff",
			"/System/Library/Sounds/Purr.aiff",
		}
	default:
		soundFiles = []string{"/System/Library/Sounds/Glass.aiff"}
	}

	for _, soundFile := range soundFiles {
		if err := exec.Command("afplay", soundFile).Start(); err == nil {
			return true
		}
	}
	return false
}
