// Package devengine is a scripted stand-in for the remote tutoring engine.
// It speaks the same HTTP protocol and walks a fixed dialogue graph:
// greeting, question, answer, feedback, "any further question?", summary.
package devengine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/renato0307/tutor/internal/adapters/tutorapi"
	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
)

// Dialogue nodes reported as next_state
const (
	NodeStudentAnswer = "student_answer"
	NodeStudentInput  = "student_input"
)

const timeUpReply = "Time is up. We will summarize the session now."

// Config tunes the scripted engine
type Config struct {
	Now           func() time.Time
	TimeUpMessage string // Student text treated as the client's time-up notice
	YesNoState    string
}

type thread struct {
	course          string
	durationMinutes int
	id              string
	messages        []tutorapi.Message
	node            string
	saved           bool
	startedAt       time.Time
	studentID       string
	topic           string
	turns           int
	week            int
}

// Engine holds the scripted threads in memory
type Engine struct {
	config  Config
	mu      sync.Mutex
	threads map[string]*thread
}

// New creates an engine
func New(config Config) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.TimeUpMessage == "" {
		config.TimeUpMessage = "Time is up."
	}
	if config.YesNoState == "" {
		config.YesNoState = domain.DefaultYesNoState
	}
	return &Engine{config: config, threads: make(map[string]*thread)}
}

// Handler returns the HTTP routes of the engine
func (e *Engine) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(requestLogger)

	r.Post(tutorapi.PathStartTutoring, e.startTutoring)
	r.Post(tutorapi.PathContinueTutoring, e.continueTutoring)
	r.Put(tutorapi.PathUpdateDuration, e.updateDuration)
	r.Post(tutorapi.PathSaveSession, e.saveSession)
	r.Post(tutorapi.PathDownloadSession, e.downloadSession)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Logger.Debug("Dev engine request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

func (e *Engine) startTutoring(w http.ResponseWriter, r *http.Request) {
	var req tutorapi.StartRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FolderName) == "" {
		writeError(w, http.StatusBadRequest, "folder_name is required")
		return
	}
	if req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "duration must be positive")
		return
	}
	topic := req.Topic
	if topic == "" {
		topic = "ALL"
	}

	t := &thread{
		course:          req.FolderName,
		durationMinutes: req.Duration,
		id:              uuid.NewString(),
		node:            NodeStudentInput,
		startedAt:       e.config.Now(),
		studentID:       req.StudentID,
		topic:           topic,
		week:            req.CurrentWeek,
	}
	t.say(fmt.Sprintf("Welcome to %s (%s), week %d. What would you like to learn about today?", t.course, topicLabel(topic), t.week))

	e.mu.Lock()
	e.threads[t.id] = t
	resp := t.response(true)
	e.mu.Unlock()

	logging.Logger.Info("Dev engine thread started", "thread_id", t.id, "course", t.course, "topic", topic)
	writeJSON(w, http.StatusOK, resp)
}

func (e *Engine) continueTutoring(w http.ResponseWriter, r *http.Request) {
	var req tutorapi.ContinueRequest
	if !decode(w, r, &req) {
		return
	}
	answer := strings.TrimSpace(req.StudentResponse)
	if answer == "" {
		writeError(w, http.StatusBadRequest, "Please enter your response or question.")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.threads[req.ThreadID]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown thread_id")
		return
	}
	if t.node == "" {
		writeError(w, http.StatusConflict, "dialogue already finished")
		return
	}

	t.messages = append(t.messages, tutorapi.Message{Role: string(domain.RoleStudent), Content: answer})
	t.turns++
	e.advance(t, answer)
	writeJSON(w, http.StatusOK, t.response(false))
}

// advance walks the dialogue graph one step
func (e *Engine) advance(t *thread, answer string) {
	if answer == e.config.TimeUpMessage || e.timedOut(t) {
		t.say(timeUpReply)
		e.finish(t)
		return
	}

	switch t.node {
	case NodeStudentInput:
		t.say(fmt.Sprintf("Let's look at %q. In your own words, how would you explain it to a classmate?", answer))
		t.node = NodeStudentAnswer
	case NodeStudentAnswer:
		t.say("Thanks, that covers the key idea. Remember to connect it back to this week's material.")
		t.say("Do you have any further questions?")
		t.node = e.config.YesNoState
	case e.config.YesNoState:
		if strings.HasPrefix(answer, "Yes") {
			t.say("What is your next question?")
			t.node = NodeStudentInput
			return
		}
		e.finish(t)
	default:
		t.say("Let's continue. What would you like to learn next?")
		t.node = NodeStudentInput
	}
}

func (e *Engine) finish(t *thread) {
	t.say(fmt.Sprintf("Session summary: we worked through %d turns on %s. Well done!", t.turns, topicLabel(t.topic)))
	t.node = ""
}

func (e *Engine) timedOut(t *thread) bool {
	return e.config.Now().Sub(t.startedAt) > time.Duration(t.durationMinutes)*time.Minute
}

func (e *Engine) updateDuration(w http.ResponseWriter, r *http.Request) {
	var req tutorapi.UpdateDurationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.DurationMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "duration_minutes must be positive")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.threads[req.ThreadID]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown thread_id")
		return
	}
	t.durationMinutes = req.DurationMinutes
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "duration_minutes": t.durationMinutes})
}

func (e *Engine) saveSession(w http.ResponseWriter, r *http.Request) {
	t, ok := e.lookupSession(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	t.saved = true
	writeJSON(w, http.StatusOK, tutorapi.SaveResponse{Summary: &tutorapi.Summary{
		EndTime:   e.config.Now().Format(time.DateTime),
		Messages:  append([]tutorapi.Message(nil), t.messages...),
		StartTime: t.startedAt.Format(time.DateTime),
		Subject:   fmt.Sprintf("%s - %s", t.course, topicLabel(t.topic)),
	}})
}

func (e *Engine) downloadSession(w http.ResponseWriter, r *http.Request) {
	t, ok := e.lookupSession(w, r)
	if !ok {
		return
	}

	e.mu.Lock()
	transcript := t.transcript()
	e.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", t.id+".txt"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(transcript))
}

func (e *Engine) lookupSession(w http.ResponseWriter, r *http.Request) (*thread, bool) {
	var req tutorapi.SessionRequest
	if !decode(w, r, &req) {
		return nil, false
	}
	if _, err := time.Parse(tutorapi.TimeStampLayout, req.TimeStamp); err != nil {
		writeError(w, http.StatusBadRequest, "time_stamp must be RFC 3339")
		return nil, false
	}

	e.mu.Lock()
	t, ok := e.threads[req.ThreadID]
	e.mu.Unlock()
	if !ok || t.studentID != req.StudentID {
		writeError(w, http.StatusNotFound, "unknown thread_id")
		return nil, false
	}
	return t, true
}

// Saved reports whether save-session was called for threadID
func (e *Engine) Saved(threadID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.threads[threadID]
	return ok && t.saved
}

// Duration returns the duration the engine holds for threadID
func (e *Engine) Duration(threadID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.threads[threadID]; ok {
		return t.durationMinutes
	}
	return 0
}

func (t *thread) say(content string) {
	t.messages = append(t.messages, tutorapi.Message{Role: string(domain.RoleAI), Content: content})
}

func (t *thread) response(withThread bool) tutorapi.TurnResponse {
	next := t.node
	state, _ := json.Marshal(map[string]any{
		"course":           t.course,
		"duration_minutes": t.durationMinutes,
		"node":             t.node,
		"turns":            t.turns,
		"week":             t.week,
	})
	resp := tutorapi.TurnResponse{
		Messages:  append([]tutorapi.Message(nil), t.messages...),
		NextState: &next,
		State:     state,
	}
	if withThread {
		resp.ThreadID = t.id
	}
	return resp
}

func (t *thread) transcript() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\nTopic: %s\nStarted: %s\n\n", t.course, topicLabel(t.topic), t.startedAt.Format(time.DateTime))
	for _, m := range t.messages {
		label := "AI Tutor"
		if m.Role == string(domain.RoleStudent) {
			label = "Student"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", label, m.Content)
	}
	return b.String()
}

func topicLabel(topic string) string {
	if topic == "" || topic == "ALL" {
		return "all topics"
	}
	return topic
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Error("Failed to encode dev engine response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, tutorapi.ErrorResponse{Error: message})
}
