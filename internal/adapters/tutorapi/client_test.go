package tutorapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/tutor/internal/adapters/devengine"
	"github.com/renato0307/tutor/internal/adapters/tutorapi"
	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/ports"
)

func newDevServer(t *testing.T) (*tutorapi.Client, *devengine.Engine) {
	engine := devengine.New(devengine.Config{})
	srv := httptest.NewServer(engine.Handler())
	t.Cleanup(srv.Close)
	return tutorapi.New(srv.URL+"/", tutorapi.WithHTTPClient(srv.Client())), engine
}

func newStubServer(t *testing.T, status int, body string) *tutorapi.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return tutorapi.New(srv.URL)
}

func TestClient_FullSessionAgainstDevEngine(t *testing.T) {
	client, engine := newDevServer(t)
	ctx := context.Background()

	start, err := client.StartTutoring(ctx, ports.StartTutoringRequest{
		CurrentWeek: 2, DurationMinutes: 30, FolderName: "CS101_intro", StudentID: "s1", Topic: "ALL",
	})
	require.NoError(t, err)
	require.NotEmpty(t, start.ThreadID)
	assert.Equal(t, devengine.NodeStudentInput, start.NextState)
	assert.NotEmpty(t, start.State)
	require.Len(t, start.Messages, 1)
	assert.Equal(t, domain.RoleAI, start.Messages[0].Role)

	turn, err := client.ContinueTutoring(ctx, ports.ContinueTutoringRequest{
		StudentID: "s1", StudentResponse: "Time is up.", ThreadID: start.ThreadID,
	})
	require.NoError(t, err)
	assert.Empty(t, turn.NextState)
	assert.Equal(t, start.ThreadID, turn.ThreadID)
	assert.Equal(t, domain.RoleStudent, turn.Messages[1].Role)

	require.NoError(t, client.UpdateDuration(ctx, ports.UpdateDurationRequest{DurationMinutes: 45, ThreadID: start.ThreadID}))
	assert.Equal(t, 45, engine.Duration(start.ThreadID))

	ref := ports.SessionRef{StudentID: "s1", ThreadID: start.ThreadID, TimeStamp: time.Now(), TopicCode: "ALL"}
	summary, err := client.SaveSession(ctx, ref)
	require.NoError(t, err)
	assert.True(t, summary.FromServer)
	assert.Len(t, summary.Messages, len(turn.Messages))
	assert.True(t, engine.Saved(start.ThreadID))

	transcript, err := client.DownloadSession(ctx, ref)
	require.NoError(t, err)
	assert.Contains(t, string(transcript), "Student: Time is up.")
}

func TestClient_NullNextStateMeansComplete(t *testing.T) {
	client := newStubServer(t, http.StatusOK, `{"messages":[{"role":"ai","content":"bye"}],"next_state":null,"state":null}`)

	reply, err := client.ContinueTutoring(context.Background(), ports.ContinueTutoringRequest{ThreadID: "t1"})

	require.NoError(t, err)
	assert.Empty(t, reply.NextState)
	assert.Nil(t, reply.State)
	assert.Equal(t, "t1", reply.ThreadID)
}

func TestClient_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"not json", `<html>oops</html>`, "invalid JSON"},
		{"missing messages", `{"next_state":"x"}`, "missing messages"},
		{"missing next_state", `{"messages":[]}`, "missing next_state"},
		{"wrong types", `{"messages":"hi","next_state":"x"}`, "unexpected field types"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubServer(t, http.StatusOK, tt.body)

			_, err := client.ContinueTutoring(context.Background(), ports.ContinueTutoringRequest{ThreadID: "t1"})

			var pe *domain.ProtocolError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.reason, pe.Reason)
			assert.True(t, domain.IsRetryable(err))
		})
	}
}

func TestClient_StartWithoutThreadID(t *testing.T) {
	client := newStubServer(t, http.StatusOK, `{"messages":[],"next_state":"student_input"}`)

	_, err := client.StartTutoring(context.Background(), ports.StartTutoringRequest{FolderName: "CS101_intro"})

	var pe *domain.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "missing thread_id", pe.Reason)
}

func TestClient_SaveWithoutSummary(t *testing.T) {
	client := newStubServer(t, http.StatusOK, `{}`)

	_, err := client.SaveSession(context.Background(), ports.SessionRef{ThreadID: "t1"})

	var pe *domain.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "missing summary", pe.Reason)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		message   string
		retryable bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":"graph crashed"}`, "graph crashed", true},
		{"bad gateway text", http.StatusBadGateway, "upstream down", "upstream down", true},
		{"bad request", http.StatusBadRequest, `{"error":"folder_name is required"}`, "folder_name is required", false},
		{"not found empty", http.StatusNotFound, "", "404 Not Found", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubServer(t, tt.status, tt.body)

			err := client.UpdateDuration(context.Background(), ports.UpdateDurationRequest{ThreadID: "t1", DurationMinutes: 10})

			var te *domain.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.status, te.StatusCode)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, tt.retryable, domain.IsRetryable(err))
		})
	}
}

func TestClient_NetworkErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := tutorapi.New(url).StartTutoring(context.Background(), ports.StartTutoringRequest{FolderName: "CS101_intro"})

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
	assert.True(t, domain.IsRetryable(err))
}
