package tutorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
)

// maxErrorBody bounds how much of a failed response is kept in the error
const maxErrorBody = 4 << 10

// Client implements ports.TutorEngine over the engine's JSON HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.TutorEngine = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the engine at baseURL.
// Timeouts come from the caller's context, so the default http.Client has none.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartTutoring implements ports.TutorEngine
func (c *Client) StartTutoring(ctx context.Context, req ports.StartTutoringRequest) (*ports.TurnReply, error) {
	body := StartRequest{
		CurrentWeek: req.CurrentWeek,
		Duration:    req.DurationMinutes,
		FolderName:  req.FolderName,
		StudentID:   req.StudentID,
		Topic:       req.Topic,
	}
	reply, err := c.turn(ctx, "start-tutoring", PathStartTutoring, body)
	if err != nil {
		return nil, err
	}
	if reply.ThreadID == "" {
		return nil, &domain.ProtocolError{Op: "start-tutoring", Reason: "missing thread_id"}
	}
	return reply, nil
}

// ContinueTutoring implements ports.TutorEngine
func (c *Client) ContinueTutoring(ctx context.Context, req ports.ContinueTutoringRequest) (*ports.TurnReply, error) {
	reply, err := c.turn(ctx, "continue-tutoring", PathContinueTutoring, ContinueRequest{
		StudentID:       req.StudentID,
		StudentResponse: req.StudentResponse,
		ThreadID:        req.ThreadID,
	})
	if err != nil {
		return nil, err
	}
	if reply.ThreadID == "" {
		reply.ThreadID = req.ThreadID
	}
	return reply, nil
}

// UpdateDuration implements ports.TutorEngine. The response body is ignored.
func (c *Client) UpdateDuration(ctx context.Context, req ports.UpdateDurationRequest) error {
	_, err := c.do(ctx, "update-duration", http.MethodPut, PathUpdateDuration, UpdateDurationRequest{
		DurationMinutes: req.DurationMinutes,
		ThreadID:        req.ThreadID,
	})
	return err
}

// SaveSession implements ports.TutorEngine
func (c *Client) SaveSession(ctx context.Context, ref ports.SessionRef) (*domain.Summary, error) {
	const op = "save-session"
	data, err := c.do(ctx, op, http.MethodPost, PathSaveSession, sessionRequest(ref))
	if err != nil {
		return nil, err
	}

	var resp SaveResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &domain.ProtocolError{Op: op, Reason: "invalid JSON", Cause: err}
	}
	if resp.Summary == nil {
		return nil, &domain.ProtocolError{Op: op, Reason: "missing summary"}
	}

	return &domain.Summary{
		EndTime:    resp.Summary.EndTime,
		FromServer: true,
		Messages:   toDomainMessages(resp.Summary.Messages),
		StartTime:  resp.Summary.StartTime,
		Subject:    resp.Summary.Subject,
	}, nil
}

// DownloadSession implements ports.TutorEngine and returns the raw transcript
func (c *Client) DownloadSession(ctx context.Context, ref ports.SessionRef) ([]byte, error) {
	return c.do(ctx, "download-session", http.MethodPost, PathDownloadSession, sessionRequest(ref))
}

func (c *Client) turn(ctx context.Context, op, path string, body any) (*ports.TurnReply, error) {
	data, err := c.do(ctx, op, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return decodeTurn(op, data)
}

// decodeTurn validates a turn response: messages and next_state must be present,
// and a null next_state means the dialogue is complete.
func decodeTurn(op string, data []byte) (*ports.TurnReply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &domain.ProtocolError{Op: op, Reason: "invalid JSON", Cause: err}
	}
	for _, key := range []string{"messages", "next_state"} {
		if _, ok := fields[key]; !ok {
			return nil, &domain.ProtocolError{Op: op, Reason: "missing " + key}
		}
	}

	var resp TurnResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &domain.ProtocolError{Op: op, Reason: "unexpected field types", Cause: err}
	}

	reply := &ports.TurnReply{
		Messages: toDomainMessages(resp.Messages),
		ThreadID: resp.ThreadID,
	}
	if resp.NextState != nil {
		reply.NextState = *resp.NextState
	}
	if len(resp.State) > 0 && string(resp.State) != "null" {
		reply.State = []byte(resp.State)
	}
	return reply, nil
}

// do sends one JSON request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.TransportError{Op: op, Cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logging.Logger.Debug("Calling engine", "op", op, "method", method, "url", req.URL.String(), "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Cause: errorFromBody(resp.Status, snippet)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Cause: fmt.Errorf("reading response: %w", err)}
	}
	return data, nil
}

func errorFromBody(status string, body []byte) error {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return errors.New(resp.Error)
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return errors.New(text)
	}
	return errors.New(status)
}

func sessionRequest(ref ports.SessionRef) SessionRequest {
	return SessionRequest{
		StudentID: ref.StudentID,
		ThreadID:  ref.ThreadID,
		TimeStamp: ref.TimeStamp.UTC().Format(TimeStampLayout),
		TopicCode: ref.TopicCode,
	}
}

func toDomainMessages(messages []Message) []domain.Message {
	out := make([]domain.Message, len(messages))
	for i, m := range messages {
		out[i] = domain.Message{Content: m.Content, Role: domain.ParseRole(m.Role), Sequence: i}
	}
	return out
}
