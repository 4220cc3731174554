package ports

// Sound events raised by a tutoring session
const (
	SoundEnded   = "ended"
	SoundTimeUp  = "time_up"
	SoundWarning = "warning"
)

// SoundPlayer plays notification sounds
type SoundPlayer interface {
	// PlaySoundForEvent plays the sound of one of the Sound* events
	PlaySoundForEvent(event string) error
}
