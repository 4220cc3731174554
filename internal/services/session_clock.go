package services

// WarningThresholdSeconds is the remaining time at which an extension is offered
const WarningThresholdSeconds = 300

// ClockEvent is an edge detected by SessionClock
type ClockEvent int

const (
	// ClockReachedWarning fires when remaining time crosses down to the warning threshold
	ClockReachedWarning ClockEvent = iota
	// ClockReachedZero fires when remaining time crosses from 1 to 0
	ClockReachedZero
)

func (e ClockEvent) String() string {
	switch e {
	case ClockReachedWarning:
		return "reached_warning_threshold"
	case ClockReachedZero:
		return "reached_zero"
	}
	return "unknown"
}

// SessionClock is a countdown driven by external 1 Hz ticks.
// It does not own a timer: the host delivers Tick calls, which keeps it
// deterministic and lets ticks arriving after Disarm be ignored.
//
// The zero edge fires at most once per Start. The warning edge fires once per
// downward crossing; it re-arms whenever Add lifts the remaining time above
// the threshold again.
type SessionClock struct {
	armed        bool
	remaining    int
	threshold    int
	warningArmed bool
	zeroFired    bool
}

// NewSessionClock creates a disarmed clock with the given warning threshold
func NewSessionClock(threshold int) *SessionClock {
	return &SessionClock{threshold: threshold}
}

// Start arms the clock with the given number of seconds
func (c *SessionClock) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.armed = true
	c.remaining = seconds
	c.warningArmed = seconds > c.threshold
	c.zeroFired = false
}

// Tick decrements the remaining time by one second and returns the edges crossed.
// Ticks on a disarmed or expired clock are no-ops.
func (c *SessionClock) Tick() []ClockEvent {
	if !c.armed || c.remaining == 0 {
		return nil
	}

	c.remaining--

	var events []ClockEvent
	if c.remaining == c.threshold && c.warningArmed {
		c.warningArmed = false
		events = append(events, ClockReachedWarning)
	}
	if c.remaining == 0 && !c.zeroFired {
		c.zeroFired = true
		events = append(events, ClockReachedZero)
	}
	return events
}

// Add extends the remaining time. Has no effect once the clock has expired or been disarmed.
func (c *SessionClock) Add(seconds int) {
	if !c.armed || c.zeroFired || seconds <= 0 {
		return
	}
	c.remaining += seconds
	if c.remaining > c.threshold {
		c.warningArmed = true
	}
}

// Disarm stops the clock; subsequent ticks do nothing
func (c *SessionClock) Disarm() {
	c.armed = false
}

// Armed reports whether ticks currently decrement the clock
func (c *SessionClock) Armed() bool {
	return c.armed
}

// Expired reports whether the zero edge has fired
func (c *SessionClock) Expired() bool {
	return c.zeroFired
}

// Remaining returns the remaining seconds
func (c *SessionClock) Remaining() int {
	return c.remaining
}
