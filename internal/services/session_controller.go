package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
)

// maxSaveAttempts bounds save-session calls per session: the first try plus one automatic retry
const maxSaveAttempts = 2

// maxTimeUpAttempts bounds time-up turns; once spent the session ends with a local summary
const maxTimeUpAttempts = 3

// summaryTimeLayout formats locally reconstructed summary times
const summaryTimeLayout = time.DateTime

// RequestKind names the work a Request performs
type RequestKind string

const (
	RequestArchive        RequestKind = "archive"
	RequestContinue       RequestKind = "continue-tutoring"
	RequestDownload       RequestKind = "download-session"
	RequestSave           RequestKind = "save-session"
	RequestStart          RequestKind = "start-tutoring"
	RequestUpdateDuration RequestKind = "update-duration"
)

// Request is blocking work the controller hands to its host.
// The host runs Execute off the event loop and feeds the result back through Complete.
type Request struct {
	Kind       RequestKind
	generation uint64
	parent     context.Context
	release    func()
	run        func(ctx context.Context) Completion
}

// Execute performs the request. It returns promptly with an error once the
// session that issued it has been abandoned.
func (r *Request) Execute(ctx context.Context) Completion {
	if err := r.parent.Err(); err != nil {
		if r.release != nil {
			r.release()
		}
		return Completion{Kind: r.Kind, generation: r.generation, Err: &domain.TransportError{Op: string(r.Kind), Cause: err}}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.parent, cancel)
	defer stop()

	completion := r.run(ctx)
	completion.Kind = r.Kind
	completion.generation = r.generation
	return completion
}

// Completion is the result of an executed Request
type Completion struct {
	Err        error
	Kind       RequestKind
	Reply      *ports.TurnReply
	Summary    *domain.Summary
	Transcript []byte
	generation uint64
	start      *pendingStart
	timeUp     bool
}

// TimeUp reports whether the completion is for the synthesized time-up turn
func (c Completion) TimeUp() bool {
	return c.timeUp
}

// EventKind classifies controller notifications
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventTurnApplied
	EventExtensionOffered
	EventTimeUp
	EventDurationSyncFailed
	EventPersistenceFailed
	EventEnded
	EventTranscriptReady
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session_started"
	case EventTurnApplied:
		return "turn_applied"
	case EventExtensionOffered:
		return "extension_offered"
	case EventTimeUp:
		return "time_up"
	case EventDurationSyncFailed:
		return "duration_sync_failed"
	case EventPersistenceFailed:
		return "persistence_failed"
	case EventEnded:
		return "ended"
	case EventTranscriptReady:
		return "transcript_ready"
	}
	return "unknown"
}

// Event is a notification for the presentation layer
type Event struct {
	Err            error // Non-blocking warning carried by failure events
	Kind           EventKind
	Reconciliation Reconciliation
	Transcript     []byte
}

// Outcome is what a controller step produced.
// Err is a failed transition: session state was left untouched.
type Outcome struct {
	Err      error
	Events   []Event
	Requests []*Request
}

// ControllerConfig configures a SessionController
type ControllerConfig struct {
	Calendar      domain.AcademicCalendar
	Now           func() time.Time
	StudentID     string
	TimeUpMessage string
	YesNoState    string
}

type pendingStart struct {
	courseRef       string
	durationMinutes int
	startedAt       time.Time
	topicRef        string
	week            int
}

// SessionController is the state machine driving one tutoring session at a time.
// It is not safe for concurrent use: all methods must be called from the host's
// event loop. Network work leaves the loop as Requests.
type SessionController struct {
	archive    ports.SessionArchiveWriter
	clock      *SessionClock
	config     ControllerConfig
	log        *MessageLog
	negotiator *ExtensionNegotiator
	transport  *TurnTransport

	cancel     context.CancelFunc
	ctx        context.Context
	generation uint64
	inFlight   RequestKind

	durationPending bool
	phase           domain.Phase
	saveAttempts    int
	savePending     bool
	session         domain.Session
	summary         *domain.Summary
	terminating     bool
	timeUpAttempts  int
	timeUpPending   bool
	timeUpSent      bool
	transcript      []byte
}

// NewSessionController creates a controller. archive may be nil.
func NewSessionController(transport *TurnTransport, archive ports.SessionArchiveWriter, config ControllerConfig) *SessionController {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.TimeUpMessage == "" {
		config.TimeUpMessage = "Time is up."
	}
	if config.YesNoState == "" {
		config.YesNoState = domain.DefaultYesNoState
	}

	clock := NewSessionClock(WarningThresholdSeconds)
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionController{
		archive:    archive,
		cancel:     cancel,
		clock:      clock,
		config:     config,
		ctx:        ctx,
		log:        NewMessageLog(),
		negotiator: NewExtensionNegotiator(clock),
		phase:      domain.PhaseNotStarted,
		session:    domain.Session{Phase: domain.PhaseNotStarted, StudentID: config.StudentID},
		transport:  transport,
	}
}

// StartSession validates the selection and issues the start turn.
// Nothing is committed until the start completion succeeds.
func (c *SessionController) StartSession(courseRef, topicRef string, durationMinutes int) (*Request, error) {
	if c.phase != domain.PhaseNotStarted && c.phase != domain.PhaseEnded {
		return nil, domain.ErrSessionInProgress
	}
	if c.inFlight == RequestStart {
		return nil, domain.ErrBusy
	}

	courseRef = strings.TrimSpace(courseRef)
	if courseRef == "" {
		return nil, domain.NewValidationError("course", "select a course")
	}
	if durationMinutes <= 0 {
		return nil, domain.NewValidationError("duration", "must be a positive number of minutes")
	}
	topicRef = strings.TrimSpace(topicRef)
	if topicRef == "" {
		topicRef = "ALL"
	}

	now := c.config.Now()
	start := &pendingStart{
		courseRef:       courseRef,
		durationMinutes: durationMinutes,
		startedAt:       now,
		topicRef:        topicRef,
		week:            c.config.Calendar.CurrentWeek(now),
	}

	call, err := c.transport.Start(ports.StartTutoringRequest{
		CurrentWeek:     start.week,
		DurationMinutes: durationMinutes,
		FolderName:      courseRef,
		StudentID:       c.config.StudentID,
		Topic:           topicRef,
	})
	if err != nil {
		return nil, err
	}

	c.newGeneration()
	c.inFlight = RequestStart
	logging.Logger.Info("Starting tutoring session",
		"course", courseRef, "topic", topicRef, "duration", durationMinutes, "week", start.week)

	return c.engineRequest(RequestStart, call.Release, func(ctx context.Context) Completion {
		reply, err := call.Run(ctx)
		return Completion{Reply: reply, Err: err, start: start}
	}), nil
}

// SubmitTurn sends the student's reply. A provisional entry is appended to the
// message log right away and superseded by the engine's ordering on reply.
func (c *SessionController) SubmitTurn(text string) (*Request, error) {
	switch {
	case c.phase == domain.PhaseAwaitingReply:
		return nil, domain.ErrBusy
	case c.phase != domain.PhaseActive, c.session.NextState.Complete():
		return nil, domain.ErrSessionNotActive
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("reply", "cannot be empty")
	}
	if c.session.NextState.Kind == domain.NextYesNo {
		normalized, err := domain.NormalizeYesNo(text)
		if err != nil {
			return nil, err
		}
		text = normalized
	}

	return c.submit(text, false)
}

// submit is the single path for student turns and the synthesized time-up turn
func (c *SessionController) submit(text string, timeUp bool) (*Request, error) {
	call, err := c.transport.Continue(ports.ContinueTutoringRequest{
		StudentID:       c.config.StudentID,
		StudentResponse: text,
		ThreadID:        c.session.ID,
	})
	if err != nil {
		return nil, err
	}

	if timeUp {
		c.timeUpAttempts++
		c.timeUpPending = false
		c.timeUpSent = true
		c.durationPending = false
	}
	c.log.AppendProvisional(text)
	c.phase = domain.PhaseAwaitingReply
	c.inFlight = RequestContinue
	logging.Logger.Debug("Submitting turn", "thread_id", c.session.ID, "time_up", timeUp)

	return c.engineRequest(RequestContinue, call.Release, func(ctx context.Context) Completion {
		reply, err := call.Run(ctx)
		return Completion{Reply: reply, Err: err, timeUp: timeUp}
	}), nil
}

// Tick advances the session clock by one second
func (c *SessionController) Tick() Outcome {
	if !c.phase.Live() {
		return Outcome{}
	}

	var out Outcome
	for _, edge := range c.clock.Tick() {
		switch edge {
		case ClockReachedWarning:
			c.negotiator.Offer()
			out.Events = append(out.Events, Event{Kind: EventExtensionOffered})
		case ClockReachedZero:
			c.negotiator.Close()
			if !c.timeUpSent {
				c.timeUpPending = true
			}
			logging.Logger.Info("Session time is up", "thread_id", c.session.ID)
			out.Events = append(out.Events, Event{Kind: EventTimeUp})
		}
	}
	c.session.RemainingSeconds = c.clock.Remaining()

	out.Requests = c.flushDeferred()
	return out
}

// Complete applies the result of an executed Request.
// Completions from an abandoned or replaced session are ignored.
func (c *SessionController) Complete(done Completion) Outcome {
	if done.generation != c.generation {
		logging.Logger.Debug("Ignoring stale completion", "kind", done.Kind, "generation", done.generation)
		return Outcome{}
	}

	var out Outcome
	switch done.Kind {
	case RequestStart:
		c.inFlight = ""
		out = c.completeStart(done)
	case RequestContinue:
		c.inFlight = ""
		out = c.completeTurn(done)
	case RequestUpdateDuration:
		c.inFlight = ""
		if done.Err != nil {
			logging.Logger.Warn("Duration update failed", "thread_id", c.session.ID, "error", done.Err)
			out.Events = append(out.Events, Event{Kind: EventDurationSyncFailed, Err: done.Err})
		}
	case RequestSave:
		c.inFlight = ""
		out = c.completeSave(done)
	case RequestDownload:
		c.inFlight = ""
		if done.Err != nil {
			return Outcome{Err: done.Err}
		}
		c.transcript = done.Transcript
		out.Events = append(out.Events, Event{Kind: EventTranscriptReady, Transcript: done.Transcript})
	case RequestArchive:
		if done.Err != nil {
			logging.Logger.Warn("Failed to archive session", "thread_id", c.session.ID, "error", done.Err)
		}
		return Outcome{}
	}

	// Failed calls are retried from the next tick. Once terminating, the save
	// goes out right away since ticks stop.
	if out.Err == nil || c.terminating {
		out.Requests = append(out.Requests, c.flushDeferred()...)
	}
	return out
}

func (c *SessionController) completeStart(done Completion) Outcome {
	if done.Err == nil && (done.Reply == nil || done.Reply.ThreadID == "") {
		done.Err = &domain.ProtocolError{Op: string(RequestStart), Reason: "missing thread_id"}
	}
	if done.Err != nil {
		logging.Logger.Warn("Failed to start session", "error", done.Err)
		return Outcome{Err: done.Err}
	}

	start := done.start
	c.resetSession()
	c.session = domain.Session{
		CourseRef:        start.courseRef,
		CurrentWeek:      start.week,
		DurationMinutes:  start.durationMinutes,
		ID:               done.Reply.ThreadID,
		RemainingSeconds: start.durationMinutes * 60,
		StartedAt:        start.startedAt,
		StudentID:        c.config.StudentID,
		TopicRef:         start.topicRef,
	}
	c.log.Reset(done.Reply.Messages)
	c.applyReply(done.Reply)
	c.phase = domain.PhaseActive
	c.clock.Start(c.session.RemainingSeconds)
	logging.Logger.Info("Session started", "thread_id", c.session.ID, "next_state", c.session.NextState.String())

	if c.session.NextState.Complete() {
		c.enterTerminating()
	}
	return Outcome{Events: []Event{{Kind: EventSessionStarted}}}
}

func (c *SessionController) completeTurn(done Completion) Outcome {
	if done.Err == nil && done.Reply == nil {
		done.Err = &domain.ProtocolError{Op: string(RequestContinue), Reason: "empty reply"}
	}
	if done.Err != nil {
		c.log.DropProvisional()
		c.phase = domain.PhaseActive
		logging.Logger.Warn("Turn failed", "thread_id", c.session.ID, "time_up", done.timeUp, "error", done.Err)
		if done.timeUp {
			c.timeUpSent = false
			if c.timeUpAttempts < maxTimeUpAttempts {
				c.timeUpPending = true
			} else {
				logging.Logger.Error("Time-up turn kept failing, ending session",
					"thread_id", c.session.ID, "attempts", c.timeUpAttempts)
				c.enterTerminating()
			}
		}
		return Outcome{Err: done.Err}
	}

	rec := c.log.Reconcile(done.Reply.Messages)
	if rec.Diverged() {
		logging.Logger.Warn("Engine rewrote confirmed history", "thread_id", c.session.ID, "replaced", rec.Replaced)
	}
	c.applyReply(done.Reply)
	c.phase = domain.PhaseActive

	if c.session.NextState.Complete() {
		c.enterTerminating()
	}
	return Outcome{Events: []Event{{Kind: EventTurnApplied, Reconciliation: rec}}}
}

func (c *SessionController) applyReply(reply *ports.TurnReply) {
	c.session.NextState = domain.ParseNextState(reply.NextState, c.config.YesNoState)
	c.session.State = reply.State
}

// enterTerminating latches termination and schedules the single save-session call
func (c *SessionController) enterTerminating() {
	if c.terminating {
		return
	}
	c.terminating = true
	c.phase = domain.PhaseTerminating
	c.session.RemainingSeconds = c.clock.Remaining()
	c.clock.Disarm()
	c.negotiator.Close()
	c.durationPending = false
	c.timeUpPending = false
	c.savePending = true
	logging.Logger.Info("Terminating, saving session", "thread_id", c.session.ID)
}

func (c *SessionController) completeSave(done Completion) Outcome {
	if done.Err == nil {
		summary := done.Summary
		if summary == nil {
			summary = &domain.Summary{}
		}
		summary.FromServer = true
		return c.end(summary, nil)
	}

	if c.saveAttempts < maxSaveAttempts {
		logging.Logger.Warn("Save failed, retrying", "thread_id", c.session.ID, "attempt", c.saveAttempts, "error", done.Err)
		c.savePending = true
		return Outcome{}
	}

	logging.Logger.Error("Save failed, using local summary", "thread_id", c.session.ID, "error", done.Err)
	return c.end(c.localSummary(), done.Err)
}

func (c *SessionController) end(summary *domain.Summary, saveErr error) Outcome {
	c.summary = summary
	c.phase = domain.PhaseEnded
	c.clock.Disarm()

	var out Outcome
	if saveErr != nil {
		out.Events = append(out.Events, Event{Kind: EventPersistenceFailed, Err: saveErr})
	}
	out.Events = append(out.Events, Event{Kind: EventEnded})
	if req := c.archiveRequest(); req != nil {
		out.Requests = append(out.Requests, req)
	}
	logging.Logger.Info("Session ended", "thread_id", c.session.ID, "from_server", summary.FromServer)
	return out
}

// localSummary reconstructs a summary from the message log
func (c *SessionController) localSummary() *domain.Summary {
	subject := c.session.CourseRef
	if c.session.TopicRef != "" {
		subject = fmt.Sprintf("%s (%s)", c.session.CourseRef, c.session.TopicRef)
	}
	return &domain.Summary{
		EndTime:   c.config.Now().Format(summaryTimeLayout),
		Messages:  c.log.Messages(),
		StartTime: c.session.StartedAt.Format(summaryTimeLayout),
		Subject:   subject,
	}
}

func (c *SessionController) sessionRef() ports.SessionRef {
	return ports.SessionRef{
		StudentID: c.config.StudentID,
		ThreadID:  c.session.ID,
		TimeStamp: c.session.StartedAt,
		TopicCode: c.session.TopicRef,
	}
}

// flushDeferred issues work that had to wait for the transport to become free.
// Save beats the time-up turn, which beats a duration update.
func (c *SessionController) flushDeferred() []*Request {
	if c.inFlight != "" || c.transport.Busy() {
		return nil
	}

	switch {
	case c.savePending:
		call, err := c.transport.Save(c.sessionRef())
		if err != nil {
			return nil
		}
		c.savePending = false
		c.saveAttempts++
		c.inFlight = RequestSave
		return []*Request{c.engineRequest(RequestSave, call.Release, func(ctx context.Context) Completion {
			summary, err := call.Run(ctx)
			return Completion{Summary: summary, Err: err}
		})}

	case c.phase == domain.PhaseActive && c.timeUpPending:
		req, err := c.submit(c.config.TimeUpMessage, true)
		if err != nil {
			return nil
		}
		return []*Request{req}

	case c.phase == domain.PhaseActive && c.durationPending:
		call, err := c.transport.UpdateDuration(ports.UpdateDurationRequest{
			DurationMinutes: c.session.DurationMinutes,
			ThreadID:        c.session.ID,
		})
		if err != nil {
			return nil
		}
		c.durationPending = false
		c.inFlight = RequestUpdateDuration
		return []*Request{c.engineRequest(RequestUpdateDuration, call.Release, func(ctx context.Context) Completion {
			_, err := call.Run(ctx)
			return Completion{Err: err}
		})}
	}
	return nil
}

// SelectExtension records a pending extension choice
func (c *SessionController) SelectExtension(minutes int) error {
	return c.negotiator.Select(minutes)
}

// ApplySelectedExtension adds the pending choice to the session clock
// immediately and advises the engine of the new total duration as soon as the
// transport is free. The returned request is nil when the update had to be deferred.
func (c *SessionController) ApplySelectedExtension() (*Request, error) {
	if !c.phase.Live() {
		return nil, domain.ErrNoExtensionOffer
	}
	req, err := c.negotiator.ApplySelected()
	if err != nil {
		return nil, err
	}
	return c.extended(req), nil
}

func (c *SessionController) extended(req domain.ExtensionRequest) *Request {
	c.session.DurationMinutes += req.Minutes
	c.session.Extensions++
	c.session.RemainingSeconds = c.clock.Remaining()
	c.durationPending = true

	if requests := c.flushDeferred(); len(requests) > 0 {
		return requests[0]
	}
	logging.Logger.Debug("Duration update deferred", "thread_id", c.session.ID, "in_flight", c.inFlight)
	return nil
}

// DismissExtension closes the open offer without extending
func (c *SessionController) DismissExtension() bool {
	return c.negotiator.Dismiss()
}

// DownloadTranscript fetches the transcript of the finished session
func (c *SessionController) DownloadTranscript() (*Request, error) {
	if c.phase != domain.PhaseEnded || c.session.ID == "" {
		return nil, domain.NewValidationError("session", "the transcript is available once the session has ended")
	}
	if c.inFlight != "" {
		return nil, domain.ErrBusy
	}

	call, err := c.transport.Download(c.sessionRef())
	if err != nil {
		return nil, err
	}
	c.inFlight = RequestDownload
	return c.engineRequest(RequestDownload, call.Release, func(ctx context.Context) Completion {
		data, err := call.Run(ctx)
		return Completion{Transcript: data, Err: err}
	}), nil
}

// Abandon tears the session down. Results of requests still in flight are ignored.
func (c *SessionController) Abandon() {
	if c.phase != domain.PhaseNotStarted {
		logging.Logger.Info("Session abandoned", "thread_id", c.session.ID, "phase", c.phase)
	}
	c.newGeneration()
	c.resetSession()
	c.session = domain.Session{Phase: domain.PhaseNotStarted, StudentID: c.config.StudentID}
	c.phase = domain.PhaseNotStarted
}

// Close releases the controller's context
func (c *SessionController) Close() {
	c.cancel()
}

func (c *SessionController) newGeneration() {
	c.cancel()
	c.generation++
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.inFlight = ""
}

func (c *SessionController) resetSession() {
	c.clock.Disarm()
	c.negotiator.Close()
	c.log.Clear()
	c.durationPending = false
	c.saveAttempts = 0
	c.savePending = false
	c.summary = nil
	c.terminating = false
	c.timeUpAttempts = 0
	c.timeUpPending = false
	c.timeUpSent = false
	c.transcript = nil
}

func (c *SessionController) engineRequest(kind RequestKind, release func(), run func(ctx context.Context) Completion) *Request {
	return &Request{
		Kind:       kind,
		generation: c.generation,
		parent:     c.ctx,
		release:    release,
		run:        run,
	}
}

func (c *SessionController) archiveRequest() *Request {
	if c.archive == nil || c.summary == nil {
		return nil
	}
	record := domain.SessionRecord{
		CourseRef:       c.session.CourseRef,
		DurationMinutes: c.session.DurationMinutes,
		EndedAt:         c.config.Now(),
		Extensions:      c.session.Extensions,
		Messages:        c.log.Messages(),
		StartedAt:       c.session.StartedAt,
		StudentID:       c.session.StudentID,
		Summary:         *c.summary,
		ThreadID:        c.session.ID,
		TopicRef:        c.session.TopicRef,
	}
	archive := c.archive
	return &Request{
		Kind:       RequestArchive,
		generation: c.generation,
		parent:     context.Background(),
		run: func(ctx context.Context) Completion {
			return Completion{Err: archive.Record(ctx, record)}
		},
	}
}

// Phase returns the reported phase. An open extension offer shows as
// Extending while no turn is in flight.
func (c *SessionController) Phase() domain.Phase {
	if c.phase == domain.PhaseActive && c.negotiator.Offering() {
		return domain.PhaseExtending
	}
	return c.phase
}

// Session returns a snapshot of the session
func (c *SessionController) Session() domain.Session {
	s := c.session
	s.Phase = c.Phase()
	if c.phase.Live() {
		s.RemainingSeconds = c.clock.Remaining()
	}
	return s
}

// Messages returns the message log, provisional entry included
func (c *SessionController) Messages() []domain.Message {
	return c.log.Messages()
}

// Summary returns the terminal summary, or nil before the session has ended
func (c *SessionController) Summary() *domain.Summary {
	return c.summary
}

// Transcript returns the last downloaded transcript
func (c *SessionController) Transcript() []byte {
	return c.transcript
}

// Busy reports whether a request is in flight
func (c *SessionController) Busy() bool {
	return c.inFlight != ""
}

// InFlight returns the kind of the request in flight, or ""
func (c *SessionController) InFlight() RequestKind {
	return c.inFlight
}

// ExtensionOffered reports whether an extension offer is open
func (c *SessionController) ExtensionOffered() bool {
	return c.negotiator.Offering()
}

// ExtensionChoices returns the minutes an extension can add
func (c *SessionController) ExtensionChoices() []int {
	return c.negotiator.Choices()
}

// PendingExtension returns the selected but not yet applied extension
func (c *SessionController) PendingExtension() (domain.ExtensionRequest, bool) {
	return c.negotiator.Pending()
}

// Generation identifies the current session instance
func (c *SessionController) Generation() uint64 {
	return c.generation
}

// AwaitingYesNo reports whether the next reply must be yes or no
func (c *SessionController) AwaitingYesNo() bool {
	return c.session.NextState.Kind == domain.NextYesNo
}
