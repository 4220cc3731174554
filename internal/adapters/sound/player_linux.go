//go:build linux

package sound

import (
	"os"
	"os/exec"

	"github.com/renato0307/tutor/internal/ports"
)

const freedesktopSounds = "/usr/share/sounds/freedesktop/stereo/"

// playForEvent plays freedesktop theme sounds through paplay
func playForEvent(event string) bool {
	name := "complete.oga"
	switch event {
	case ports.SoundWarning:
		name = "dialog-warning.oga"
	case ports.SoundTimeUp:
		name = "alarm-clock-elapsed.oga"
	}

	path := freedesktopSounds + name
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return exec.Command("paplay", path).Start() == nil
}
