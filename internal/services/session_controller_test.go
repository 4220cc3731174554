package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/ports"
	portsmocks "github.com/renato0307/tutor/internal/ports/mocks"
)

var testNow = time.Date(2025, 1, 22, 10, 0, 0, 0, time.UTC)

var greeting = msgs("ai", "Hi! What would you like to review in CS101 this week?")

func newTestController(t *testing.T, archive ports.SessionArchiveWriter) (*SessionController, *portsmocks.MockTutorEngine) {
	engine := portsmocks.NewMockTutorEngine(t)
	controller := NewSessionController(NewTurnTransport(engine, time.Minute), archive, ControllerConfig{
		Calendar:  domain.AcademicCalendar{SemesterStart: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), TotalWeeks: 14},
		Now:       func() time.Time { return testNow },
		StudentID: "s1",
	})
	t.Cleanup(controller.Close)
	return controller, engine
}

func startTestSession(t *testing.T, c *SessionController, engine *portsmocks.MockTutorEngine, minutes int) {
	engine.EXPECT().StartTutoring(mock.Anything, ports.StartTutoringRequest{
		CurrentWeek:     3,
		DurationMinutes: minutes,
		FolderName:      "CS101_intro",
		StudentID:       "s1",
		Topic:           "ALL",
	}).Return(&ports.TurnReply{ThreadID: "thread-1", Messages: greeting, NextState: "ask_question"}, nil).Once()

	req, err := c.StartSession("CS101_intro", "ALL", minutes)
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})
	require.NoError(t, out.Err)
}

func expectTurn(engine *portsmocks.MockTutorEngine, text string, reply *ports.TurnReply, err error) {
	engine.EXPECT().ContinueTutoring(mock.Anything, ports.ContinueTutoringRequest{
		StudentID:       "s1",
		StudentResponse: text,
		ThreadID:        "thread-1",
	}).Return(reply, err).Once()
}

// applyExtension selects minutes and applies the selection, as the extension dialog does
func applyExtension(c *SessionController, minutes int) (*Request, error) {
	if err := c.SelectExtension(minutes); err != nil {
		return nil, err
	}
	return c.ApplySelectedExtension()
}

func testRef() ports.SessionRef {
	return ports.SessionRef{StudentID: "s1", ThreadID: "thread-1", TimeStamp: testNow, TopicCode: "ALL"}
}

// drain executes requests until none are left and merges the outcomes
func drain(c *SessionController, out Outcome) Outcome {
	all := Outcome{Err: out.Err, Events: out.Events}
	queue := out.Requests
	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]
		next := c.Complete(req.Execute(context.Background()))
		all.Events = append(all.Events, next.Events...)
		if next.Err != nil {
			all.Err = next.Err
		}
		queue = append(queue, next.Requests...)
	}
	return all
}

func tickController(c *SessionController, n int) Outcome {
	var all Outcome
	for i := 0; i < n; i++ {
		out := c.Tick()
		all.Events = append(all.Events, out.Events...)
		all.Requests = append(all.Requests, out.Requests...)
	}
	return all
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestStartSession_SetsClockAndMessages(t *testing.T) {
	c, engine := newTestController(t, nil)

	startTestSession(t, c, engine, 30)

	session := c.Session()
	assert.Equal(t, domain.PhaseActive, c.Phase())
	assert.Equal(t, "thread-1", session.ID)
	assert.Equal(t, 1800, session.RemainingSeconds)
	assert.Equal(t, 3, session.CurrentWeek)
	assert.Equal(t, domain.NextContinue, session.NextState.Kind)
	assert.Equal(t, greeting, c.Messages())
}

func TestStartSession_Validation(t *testing.T) {
	c, _ := newTestController(t, nil)

	_, err := c.StartSession("  ", "ALL", 30)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "course", ve.Field)

	_, err = c.StartSession("CS101_intro", "ALL", 0)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "duration", ve.Field)
	assert.Equal(t, domain.PhaseNotStarted, c.Phase())
}

func TestStartSession_DefaultsTopic(t *testing.T) {
	c, engine := newTestController(t, nil)
	engine.EXPECT().StartTutoring(mock.Anything, mock.MatchedBy(func(req ports.StartTutoringRequest) bool {
		return req.Topic == "ALL"
	})).Return(&ports.TurnReply{ThreadID: "thread-1", Messages: greeting, NextState: "ask_question"}, nil).Once()

	req, err := c.StartSession("CS101_intro", "", 30)
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})

	assert.Equal(t, "ALL", c.Session().TopicRef)
}

func TestStartSession_FailureCommitsNothing(t *testing.T) {
	c, engine := newTestController(t, nil)
	engine.EXPECT().StartTutoring(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	req, err := c.StartSession("CS101_intro", "ALL", 30)
	require.NoError(t, err)
	assert.True(t, c.Busy())
	out := drain(c, Outcome{Requests: []*Request{req}})

	assert.True(t, domain.IsRetryable(out.Err))
	assert.Equal(t, domain.PhaseNotStarted, c.Phase())
	assert.Empty(t, c.Session().ID)
	assert.Empty(t, c.Messages())
	assert.False(t, c.Busy())
}

func TestStartSession_MissingThreadIDIsProtocolError(t *testing.T) {
	c, engine := newTestController(t, nil)
	engine.EXPECT().StartTutoring(mock.Anything, mock.Anything).
		Return(&ports.TurnReply{Messages: greeting, NextState: "ask_question"}, nil).Once()

	req, err := c.StartSession("CS101_intro", "ALL", 30)
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	var pe *domain.ProtocolError
	assert.ErrorAs(t, out.Err, &pe)
	assert.Equal(t, domain.PhaseNotStarted, c.Phase())
}

func TestStartSession_RejectedWhileInProgress(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)

	_, err := c.StartSession("CS101_intro", "ALL", 30)

	assert.ErrorIs(t, err, domain.ErrSessionInProgress)
}

func TestTick_DecrementsRemaining(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)

	tickController(c, 250)

	assert.Equal(t, 30*60-250, c.Session().RemainingSeconds)
}

func TestTick_WarningFiresOnceAndOpensOffer(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)

	out := tickController(c, 1500)
	assert.Equal(t, 1, countEvents(out.Events, EventExtensionOffered))
	assert.Equal(t, 300, c.Session().RemainingSeconds)
	assert.Equal(t, domain.PhaseExtending, c.Phase())
	assert.Equal(t, []int{5, 15, 30}, c.ExtensionChoices())

	assert.True(t, c.DismissExtension())
	out = tickController(c, 200)
	assert.Zero(t, countEvents(out.Events, EventExtensionOffered))
	assert.Equal(t, domain.PhaseActive, c.Phase())
}

func TestSubmitTurn_ReplacesLogWithServerOrdering(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	server := msgs("ai", greeting[0].Content, "student", "recursion", "ai", "Great, what is a base case?")
	expectTurn(engine, "recursion", &ports.TurnReply{Messages: server, NextState: "evaluate_answer"}, nil)

	req, err := c.SubmitTurn("  recursion ")
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseAwaitingReply, c.Phase())
	pending := c.Messages()
	require.Len(t, pending, 2)
	assert.True(t, pending[1].Provisional)

	out := drain(c, Outcome{Requests: []*Request{req}})
	require.NoError(t, out.Err)
	assert.Equal(t, []EventKind{EventTurnApplied}, eventKinds(out.Events))
	assert.Equal(t, 1, out.Events[0].Reconciliation.Superseded)
	assert.Equal(t, server, c.Messages())
	assert.Equal(t, domain.PhaseActive, c.Phase())
	assert.Equal(t, "evaluate_answer", c.Session().NextState.Token)
}

func TestSubmitTurn_RejectsOverlap(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)

	_, err := c.SubmitTurn("first")
	require.NoError(t, err)
	before := c.Messages()

	_, err = c.SubmitTurn("second")

	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, before, c.Messages())
	assert.Equal(t, domain.PhaseAwaitingReply, c.Phase())
}

func TestSubmitTurn_RejectedWhileTransportBusy(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	tickController(c, 60)
	update, err := applyExtension(c, 5)
	require.NoError(t, err)
	require.NotNil(t, update)
	before := c.Messages()

	_, err = c.SubmitTurn("question")

	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, before, c.Messages())
	assert.Equal(t, domain.PhaseActive, c.Phase())

	engine.EXPECT().UpdateDuration(mock.Anything, ports.UpdateDurationRequest{DurationMinutes: 11, ThreadID: "thread-1"}).Return(nil).Once()
	drain(c, Outcome{Requests: []*Request{update}})
}

func TestSubmitTurn_FailureRestoresLastGoodState(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	expectTurn(engine, "answer", nil, &domain.ProtocolError{Op: "continue-tutoring", Reason: "missing next_state"})

	req, err := c.SubmitTurn("answer")
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	var pe *domain.ProtocolError
	assert.ErrorAs(t, out.Err, &pe)
	assert.Equal(t, greeting, c.Messages())
	assert.Equal(t, domain.PhaseActive, c.Phase())
	assert.Equal(t, "ask_question", c.Session().NextState.Token)

	expectTurn(engine, "answer", &ports.TurnReply{Messages: greeting, NextState: "ask_question"}, nil)
	req, err = c.SubmitTurn("answer")
	require.NoError(t, err, "same input can be retried")
	drain(c, Outcome{Requests: []*Request{req}})
}

func TestSubmitTurn_Validation(t *testing.T) {
	c, engine := newTestController(t, nil)

	_, err := c.SubmitTurn("hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotActive)

	startTestSession(t, c, engine, 30)
	_, err = c.SubmitTurn("   ")
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSubmitTurn_YesNoState(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	expectTurn(engine, "stacks", &ports.TurnReply{Messages: greeting, NextState: domain.DefaultYesNoState}, nil)
	req, err := c.SubmitTurn("stacks")
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})
	require.True(t, c.AwaitingYesNo())

	_, err = c.SubmitTurn("maybe later")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, c.Messages(), len(greeting))

	expectTurn(engine, "Yes", &ports.TurnReply{Messages: greeting, NextState: "ask_new_question"}, nil)
	req, err = c.SubmitTurn("y")
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})
	assert.False(t, c.AwaitingYesNo())
}

func TestCompletion_EmptyNextStateEndsSessionAndSavesOnce(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	c, engine := newTestController(t, archive)
	startTestSession(t, c, engine, 30)
	final := msgs("ai", greeting[0].Content, "student", "No", "ai", "Here is your summary.")
	expectTurn(engine, "No", &ports.TurnReply{Messages: final, NextState: ""}, nil)
	summary := &domain.Summary{Subject: "CS101_intro", StartTime: "10:00", EndTime: "10:30", Messages: final}
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(summary, nil).Once()
	archive.EXPECT().Record(mock.Anything, mock.MatchedBy(func(r domain.SessionRecord) bool {
		return r.ThreadID == "thread-1" && r.Summary.FromServer && len(r.Messages) == 3
	})).Return(nil).Once()

	req, err := c.SubmitTurn("No")
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	require.NoError(t, out.Err)
	assert.Equal(t, domain.PhaseEnded, c.Phase())
	assert.Equal(t, 1, countEvents(out.Events, EventEnded))
	require.NotNil(t, c.Summary())
	assert.True(t, c.Summary().FromServer)
	assert.Equal(t, "CS101_intro", c.Summary().Subject)

	out = tickController(c, 10)
	assert.Empty(t, out.Requests)
	engine.AssertNumberOfCalls(t, "SaveSession", 1)
}

func TestCompletion_SaveRetriedOnceThenSucceeds(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	expectTurn(engine, "No", &ports.TurnReply{Messages: greeting, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(nil, errors.New("503")).Once()
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{Subject: "CS101_intro"}, nil).Once()

	req, err := c.SubmitTurn("No")
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	assert.NoError(t, out.Err)
	assert.Zero(t, countEvents(out.Events, EventPersistenceFailed))
	assert.True(t, c.Summary().FromServer)
}

func TestCompletion_SaveFailsTwiceFallsBackToLocalSummary(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	final := msgs("ai", greeting[0].Content, "student", "No", "ai", "Bye!")
	expectTurn(engine, "No", &ports.TurnReply{Messages: final, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(nil, errors.New("connection reset")).Twice()

	req, err := c.SubmitTurn("No")
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	assert.NoError(t, out.Err, "persistence failure is a warning, not a failed transition")
	assert.Equal(t, []EventKind{EventTurnApplied, EventPersistenceFailed, EventEnded}, eventKinds(out.Events))
	assert.Equal(t, domain.PhaseEnded, c.Phase())
	summary := c.Summary()
	require.NotNil(t, summary)
	assert.False(t, summary.FromServer)
	assert.Equal(t, final, summary.Messages)
	assert.Equal(t, "CS101_intro (ALL)", summary.Subject)
	assert.Equal(t, "2025-01-22 10:00:00", summary.StartTime)
	engine.AssertNumberOfCalls(t, "SaveSession", 2)
}

func TestTimeUp_SynthesizedTurnFiresOnce(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 1)

	out := tickController(c, 59)
	assert.Empty(t, out.Requests)

	out = tickController(c, 5)
	assert.Equal(t, 1, countEvents(out.Events, EventTimeUp))
	require.Len(t, out.Requests, 1, "extra ticks after expiry must not resend")
	assert.Equal(t, RequestContinue, out.Requests[0].Kind)
	assert.True(t, c.Messages()[len(c.Messages())-1].Provisional)

	timeUp := msgs("ai", greeting[0].Content, "student", "Time is up.", "ai", "Time is up. We will summarize the session now.")
	expectTurn(engine, "Time is up.", &ports.TurnReply{Messages: timeUp, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{Subject: "CS101_intro"}, nil).Once()

	done := drain(c, out)
	require.NoError(t, done.Err)
	assert.Equal(t, domain.PhaseEnded, c.Phase())
	assert.Empty(t, tickController(c, 5).Requests)
	engine.AssertNumberOfCalls(t, "ContinueTutoring", 1)
}

func TestTimeUp_DeferredWhileAwaitingReply(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 1)
	tickController(c, 30)

	turn, err := c.SubmitTurn("what is a heap?")
	require.NoError(t, err)

	out := tickController(c, 40)
	assert.Equal(t, 1, countEvents(out.Events, EventTimeUp))
	assert.Empty(t, out.Requests, "time-up turn waits for the reply in flight")
	assert.Equal(t, 0, c.Session().RemainingSeconds)

	expectTurn(engine, "what is a heap?", &ports.TurnReply{Messages: greeting, NextState: "explain_answer"}, nil)
	next := c.Complete(turn.Execute(context.Background()))
	require.NoError(t, next.Err)
	require.Len(t, next.Requests, 1)
	assert.Equal(t, RequestContinue, next.Requests[0].Kind)

	expectTurn(engine, "Time is up.", &ports.TurnReply{Messages: greeting, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{}, nil).Once()
	drain(c, next)
	assert.Equal(t, domain.PhaseEnded, c.Phase())
}

func TestTimeUp_RetriedOnNextTickAfterFailure(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 1)
	out := tickController(c, 60)
	require.Len(t, out.Requests, 1)

	expectTurn(engine, "Time is up.", nil, errors.New("connection refused"))
	failed := drain(c, out)
	require.Error(t, failed.Err)
	assert.Equal(t, greeting, c.Messages())

	retry := c.Tick()
	require.Len(t, retry.Requests, 1)
	expectTurn(engine, "Time is up.", &ports.TurnReply{Messages: greeting, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{}, nil).Once()
	drain(c, retry)

	assert.Equal(t, domain.PhaseEnded, c.Phase())
}

func TestTimeUp_BoundedRetriesThenLocalSummary(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 1)
	engine.EXPECT().ContinueTutoring(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(nil, errors.New("connection refused")).Twice()

	failures := 0
	var events []Event
	for i := 0; i < 90; i++ {
		out := drain(c, c.Tick())
		if out.Err != nil {
			failures++
		}
		events = append(events, out.Events...)
	}

	engine.AssertNumberOfCalls(t, "ContinueTutoring", maxTimeUpAttempts)
	assert.Equal(t, maxTimeUpAttempts, failures)
	assert.Equal(t, domain.PhaseEnded, c.Phase())
	assert.Equal(t, 1, countEvents(events, EventPersistenceFailed))
	assert.Equal(t, 1, countEvents(events, EventEnded))

	summary := c.Summary()
	require.NotNil(t, summary)
	assert.False(t, summary.FromServer)
	assert.Equal(t, greeting, summary.Messages)
}

func TestExtension_AddsTimeWithoutChangingPhase(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	out := tickController(c, 60)
	require.Equal(t, 1, countEvents(out.Events, EventExtensionOffered))
	require.Equal(t, domain.PhaseExtending, c.Phase())

	req, err := applyExtension(c, 15)
	require.NoError(t, err)

	session := c.Session()
	assert.Equal(t, 300+900, session.RemainingSeconds)
	assert.Equal(t, 21, session.DurationMinutes)
	assert.Equal(t, 1, session.Extensions)
	assert.Equal(t, domain.PhaseActive, c.Phase())
	require.NotNil(t, req)
	assert.Equal(t, RequestUpdateDuration, req.Kind)

	engine.EXPECT().UpdateDuration(mock.Anything, ports.UpdateDurationRequest{DurationMinutes: 21, ThreadID: "thread-1"}).Return(nil).Once()
	done := drain(c, Outcome{Requests: []*Request{req}})
	assert.NoError(t, done.Err)
	assert.Empty(t, done.Events)

	_, err = applyExtension(c, 5)
	assert.ErrorIs(t, err, domain.ErrNoExtensionOffer)
}

func TestExtension_RearmsWarning(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	tickController(c, 60)
	engine.EXPECT().UpdateDuration(mock.Anything, mock.Anything).Return(nil).Once()
	req, err := applyExtension(c, 5)
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})

	out := tickController(c, 300)

	assert.Equal(t, 1, countEvents(out.Events, EventExtensionOffered))
	assert.True(t, c.ExtensionOffered())
}

func TestExtension_DeferredWhileAwaitingReply(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	tickController(c, 60)
	turn, err := c.SubmitTurn("trees")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseAwaitingReply, c.Phase())

	require.NoError(t, c.SelectExtension(30))
	pending, ok := c.PendingExtension()
	require.True(t, ok)
	assert.Equal(t, 30, pending.Minutes)

	update, err := c.ApplySelectedExtension()
	require.NoError(t, err)
	assert.Nil(t, update)
	assert.Equal(t, 300+1800, c.Session().RemainingSeconds)
	assert.Equal(t, domain.PhaseAwaitingReply, c.Phase())

	expectTurn(engine, "trees", &ports.TurnReply{Messages: greeting, NextState: "ask_question"}, nil)
	next := c.Complete(turn.Execute(context.Background()))
	require.Len(t, next.Requests, 1)
	assert.Equal(t, RequestUpdateDuration, next.Requests[0].Kind)

	engine.EXPECT().UpdateDuration(mock.Anything, ports.UpdateDurationRequest{DurationMinutes: 36, ThreadID: "thread-1"}).Return(nil).Once()
	drain(c, next)
}

func TestExtension_RemoteFailureKeepsLocalClock(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	tickController(c, 60)
	engine.EXPECT().UpdateDuration(mock.Anything, mock.Anything).Return(errors.New("502")).Once()

	req, err := applyExtension(c, 5)
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	assert.NoError(t, out.Err)
	assert.Equal(t, []EventKind{EventDurationSyncFailed}, eventKinds(out.Events))
	assert.Equal(t, 600, c.Session().RemainingSeconds)
}

func TestExtension_ClosedAtZero(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 6)
	tickController(c, 60)
	require.True(t, c.ExtensionOffered())

	out := tickController(c, 300)
	require.Len(t, out.Requests, 1)

	assert.False(t, c.ExtensionOffered())
	_, err := applyExtension(c, 5)
	assert.ErrorIs(t, err, domain.ErrNoExtensionOffer)

	expectTurn(engine, "Time is up.", &ports.TurnReply{Messages: greeting, NextState: "ask_question"}, nil)
	drain(c, out)
}

func TestAbandon_IgnoresLateCompletion(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	turn, err := c.SubmitTurn("late")
	require.NoError(t, err)

	c.Abandon()
	out := c.Complete(turn.Execute(context.Background()))

	assert.Equal(t, Outcome{}, out)
	assert.Equal(t, domain.PhaseNotStarted, c.Phase())
	assert.Empty(t, c.Session().ID)
	assert.Empty(t, c.Messages())
	assert.Empty(t, tickController(c, 5).Events)
	engine.AssertNotCalled(t, "ContinueTutoring", mock.Anything, mock.Anything)
}

func TestDownloadTranscript(t *testing.T) {
	c, engine := newTestController(t, nil)
	_, err := c.DownloadTranscript()
	assert.Error(t, err)

	startTestSession(t, c, engine, 30)
	expectTurn(engine, "No", &ports.TurnReply{Messages: greeting, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{}, nil).Once()
	req, err := c.SubmitTurn("No")
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})

	engine.EXPECT().DownloadSession(mock.Anything, testRef()).Return([]byte("AI: hi\n"), nil).Once()
	req, err = c.DownloadTranscript()
	require.NoError(t, err)
	out := drain(c, Outcome{Requests: []*Request{req}})

	require.NoError(t, out.Err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, EventTranscriptReady, out.Events[0].Kind)
	assert.Equal(t, []byte("AI: hi\n"), c.Transcript())
}

func TestStartSession_AfterEndedStartsFresh(t *testing.T) {
	c, engine := newTestController(t, nil)
	startTestSession(t, c, engine, 30)
	expectTurn(engine, "No", &ports.TurnReply{Messages: greeting, NextState: ""}, nil)
	engine.EXPECT().SaveSession(mock.Anything, testRef()).Return(&domain.Summary{}, nil).Once()
	req, err := c.SubmitTurn("No")
	require.NoError(t, err)
	drain(c, Outcome{Requests: []*Request{req}})
	require.Equal(t, domain.PhaseEnded, c.Phase())
	generation := c.Generation()

	startTestSession(t, c, engine, 15)

	assert.Equal(t, domain.PhaseActive, c.Phase())
	assert.Nil(t, c.Summary())
	assert.Equal(t, 900, c.Session().RemainingSeconds)
	assert.Greater(t, c.Generation(), generation)
}
