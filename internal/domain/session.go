package domain

import (
	"strings"
	"time"
)

// Phase is the lifecycle phase of a tutoring session
type Phase string

const (
	PhaseNotStarted    Phase = "not_started"
	PhaseActive        Phase = "active"
	PhaseAwaitingReply Phase = "awaiting_reply"
	PhaseExtending     Phase = "extending"
	PhaseTerminating   Phase = "terminating"
	PhaseEnded         Phase = "ended"
)

// Live reports whether the session clock runs in this phase
func (p Phase) Live() bool {
	return p == PhaseActive || p == PhaseAwaitingReply || p == PhaseExtending
}

// Role identifies who authored a message
type Role string

const (
	RoleAI      Role = "ai"
	RoleStudent Role = "student"
)

// ParseRole maps a wire role to a Role. Unknown roles are treated as AI output,
// since the engine only ever echoes the student's own turns back as "student".
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student", "user", "human":
		return RoleStudent
	default:
		return RoleAI
	}
}

// Message is one utterance in the message log
type Message struct {
	Content     string
	Provisional bool // Optimistic local entry not yet confirmed by the engine
	Role        Role
	Sequence    int
}

// Session represents one tutoring engagement
type Session struct {
	CourseRef        string
	CurrentWeek      int
	DurationMinutes  int // Total duration including applied extensions
	Extensions       int
	ID               string // Thread id issued by the engine; empty until started
	NextState        NextState
	Phase            Phase
	RemainingSeconds int
	StartedAt        time.Time
	State            []byte // Opaque engine state from the latest turn, for debugging
	StudentID        string
	TopicRef         string
}

// ExtensionChoices is the fixed set of extension amounts in minutes
var ExtensionChoices = []int{5, 15, 30}

// ExtensionRequest is a user-chosen addition of minutes to the session
type ExtensionRequest struct {
	Minutes int
}

// NewExtensionRequest validates minutes against ExtensionChoices
func NewExtensionRequest(minutes int) (ExtensionRequest, error) {
	for _, choice := range ExtensionChoices {
		if minutes == choice {
			return ExtensionRequest{Minutes: minutes}, nil
		}
	}
	return ExtensionRequest{}, NewValidationError("extension", "must be one of 5, 15 or 30 minutes")
}

// Seconds returns the extension length in seconds
func (e ExtensionRequest) Seconds() int {
	return e.Minutes * 60
}

// Summary is the recap of a finished session
type Summary struct {
	EndTime    string
	FromServer bool // False when reconstructed locally after persistence failed
	Messages   []Message
	StartTime  string
	Subject    string
}

// SessionRecord is a finished session kept in the local archive
type SessionRecord struct {
	CourseRef       string
	DurationMinutes int
	EndedAt         time.Time
	Extensions      int
	Messages        []Message
	StartedAt       time.Time
	StudentID       string
	Summary         Summary
	ThreadID        string
	TopicRef        string
}
