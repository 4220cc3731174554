package ports

import (
	"context"
	"time"

	"github.com/renato0307/tutor/internal/domain"
)

// StartTutoringRequest opens a new dialogue on the engine
type StartTutoringRequest struct {
	CurrentWeek     int
	DurationMinutes int
	FolderName      string // Course reference
	StudentID       string
	Topic           string
}

// ContinueTutoringRequest submits one student turn
type ContinueTutoringRequest struct {
	StudentID       string
	StudentResponse string
	ThreadID        string
}

// UpdateDurationRequest advises the engine of a new total session duration
type UpdateDurationRequest struct {
	DurationMinutes int
	ThreadID        string
}

// SessionRef identifies a finished session for save and download
type SessionRef struct {
	StudentID string
	ThreadID  string
	TimeStamp time.Time
	TopicCode string
}

// TurnReply is the engine's authoritative view after a turn
type TurnReply struct {
	Messages  []domain.Message
	NextState string // Empty means the dialogue is complete
	State     []byte // Opaque, kept for debugging only
	ThreadID  string
}

// TutorEngine is the remote workflow engine that drives the dialogue
type TutorEngine interface {
	ContinueTutoring(ctx context.Context, req ContinueTutoringRequest) (*TurnReply, error)
	DownloadSession(ctx context.Context, ref SessionRef) ([]byte, error)
	SaveSession(ctx context.Context, ref SessionRef) (*domain.Summary, error)
	StartTutoring(ctx context.Context, req StartTutoringRequest) (*TurnReply, error)
	UpdateDuration(ctx context.Context, req UpdateDurationRequest) error
}
