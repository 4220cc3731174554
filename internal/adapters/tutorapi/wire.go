package tutorapi

import (
	"encoding/json"
	"time"
)

// Engine routes
const (
	PathContinueTutoring = "/continue-tutoring"
	PathDownloadSession  = "/download-session"
	PathSaveSession      = "/save-session"
	PathStartTutoring    = "/start-tutoring"
	PathUpdateDuration   = "/update-duration"
)

// TimeStampLayout is the wire format of time_stamp
const TimeStampLayout = time.RFC3339

// StartRequest is the body of POST /start-tutoring
type StartRequest struct {
	CurrentWeek int    `json:"current_week"`
	Duration    int    `json:"duration"`
	FolderName  string `json:"folder_name"`
	StudentID   string `json:"student_id"`
	Topic       string `json:"topic"`
}

// ContinueRequest is the body of POST /continue-tutoring
type ContinueRequest struct {
	StudentID       string `json:"student_id"`
	StudentResponse string `json:"student_response"`
	ThreadID        string `json:"thread_id"`
}

// UpdateDurationRequest is the body of PUT /update-duration
type UpdateDurationRequest struct {
	DurationMinutes int    `json:"duration_minutes"`
	ThreadID        string `json:"thread_id"`
}

// SessionRequest is the body of POST /save-session and POST /download-session
type SessionRequest struct {
	StudentID string `json:"student_id"`
	ThreadID  string `json:"thread_id"`
	TimeStamp string `json:"time_stamp"`
	TopicCode string `json:"topic_code"`
}

// Message is one entry of a messages array
type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// TurnResponse is returned by start-tutoring and continue-tutoring.
// NextState is a pointer because the engine may send null.
type TurnResponse struct {
	Messages  []Message       `json:"messages"`
	NextState *string         `json:"next_state"`
	State     json.RawMessage `json:"state,omitempty"`
	ThreadID  string          `json:"thread_id,omitempty"`
}

// Summary is the recap inside a save-session response
type Summary struct {
	EndTime   string    `json:"end_time"`
	Messages  []Message `json:"messages"`
	StartTime string    `json:"start_time"`
	Subject   string    `json:"subject"`
}

// SaveResponse is the body returned by save-session
type SaveResponse struct {
	Summary *Summary `json:"summary"`
}

// ErrorResponse is the body the engine sends with non-2xx statuses
type ErrorResponse struct {
	Error string `json:"error"`
}
