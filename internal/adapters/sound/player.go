package sound

import (
	"fmt"
	"io"
	"os"
)

// Player implements ports.SoundPlayer
type Player struct {
	bell io.Writer
}

// NewPlayer creates a sound player that rings the terminal bell on stderr
// when no system sound can be played
func NewPlayer() *Player {
	return &Player{bell: os.Stderr}
}

// PlaySoundForEvent plays a sound for the session event.
// Platform-specific implementations are in player_*.go files with build tags.
func (p *Player) PlaySoundForEvent(event string) error {
	if playForEvent(event) {
		return nil
	}
	return p.terminalBell()
}

func (p *Player) terminalBell() error {
	_, err := fmt.Fprint(p.bell, "\a")
	return err
}
