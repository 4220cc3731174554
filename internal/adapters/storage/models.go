package storage

import "time"

// SessionRecordModel is the GORM model for the session_records table
type SessionRecordModel struct {
	CourseRef         string    `gorm:"not null;default:''"`
	CreatedAt         time.Time
	DurationMinutes   int       `gorm:"not null;default:0"`
	EndedAt           time.Time `gorm:"not null;index:idx_ended_at"`
	Extensions        int       `gorm:"not null;default:0"`
	StartedAt         time.Time `gorm:"not null"`
	StudentID         string    `gorm:"not null;index:idx_student_id"`
	SummaryEndTime    string    `gorm:"default:''"`
	SummaryFromServer bool      `gorm:"not null;default:false"`
	SummaryStartTime  string    `gorm:"default:''"`
	SummarySubject    string    `gorm:"default:''"`
	ThreadID          string    `gorm:"primaryKey"`
	TopicRef          string    `gorm:"not null;default:'ALL'"`
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (SessionRecordModel) TableName() string { return "session_records" }

// Message kinds stored in session_messages
const (
	messageKindLog     = "log"
	messageKindSummary = "summary"
)

// SessionMessageModel is the GORM model for archived messages.
// Kind separates the final message log from the messages of the summary.
type SessionMessageModel struct {
	Content  string `gorm:"not null;default:''"`
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Kind     string `gorm:"not null;default:'log';check:kind IN ('log','summary')"`
	Role     string `gorm:"not null;check:role IN ('ai','student')"`
	Sequence int    `gorm:"not null"`
	ThreadID string `gorm:"not null;index:idx_thread_id"`
}

// TableName specifies the table name for GORM
func (SessionMessageModel) TableName() string { return "session_messages" }
