//go:build !darwin && !linux

package sound

// playForEvent has no system sounds on this platform
func playForEvent(event string) bool {
	return false
}
