package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
)

// TurnTransport serializes every call to the tutoring engine.
// A call reserves the single slot when it is created, so a second call made
// while one is pending fails immediately with domain.ErrBusy instead of queueing.
type TurnTransport struct {
	engine  ports.TutorEngine
	gate    *semaphore.Weighted
	timeout time.Duration
}

// NewTurnTransport creates a transport. A non-positive timeout disables the bound.
func NewTurnTransport(engine ports.TutorEngine, timeout time.Duration) *TurnTransport {
	return &TurnTransport{
		engine:  engine,
		gate:    semaphore.NewWeighted(1),
		timeout: timeout,
	}
}

// Call is a reserved engine call. Run executes it exactly once and frees the
// slot; Release frees the slot of a call that will never run.
type Call[T any] struct {
	fn        func(ctx context.Context) (T, error)
	op        string
	releaseMu sync.Once
	transport *TurnTransport
}

// Op returns the engine operation name
func (c *Call[T]) Op() string {
	return c.op
}

// Run executes the call under the transport timeout. Every failure, panics
// included, comes back as a typed domain error.
func (c *Call[T]) Run(ctx context.Context) (result T, err error) {
	defer c.Release()

	if c.transport.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.transport.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Engine call panicked", "op", c.op, "panic", r)
			var zero T
			result = zero
			err = &domain.TransportError{Op: c.op, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	start := time.Now()
	result, err = c.fn(ctx)
	if err != nil {
		err = c.transport.classify(c.op, ctx, err)
		logging.Logger.Warn("Engine call failed", "op", c.op, "duration", time.Since(start), "error", err)
		var zero T
		return zero, err
	}
	logging.Logger.Debug("Engine call completed", "op", c.op, "duration", time.Since(start))
	return result, nil
}

// Release frees the transport slot. Safe to call more than once.
func (c *Call[T]) Release() {
	c.releaseMu.Do(func() {
		c.transport.gate.Release(1)
	})
}

// Busy reports whether a call currently holds the slot
func (t *TurnTransport) Busy() bool {
	if t.gate.TryAcquire(1) {
		t.gate.Release(1)
		return false
	}
	return true
}

// Start reserves a start-tutoring call
func (t *TurnTransport) Start(req ports.StartTutoringRequest) (*Call[*ports.TurnReply], error) {
	return reserve(t, "start-tutoring", func(ctx context.Context) (*ports.TurnReply, error) {
		return t.engine.StartTutoring(ctx, req)
	})
}

// Continue reserves a continue-tutoring call
func (t *TurnTransport) Continue(req ports.ContinueTutoringRequest) (*Call[*ports.TurnReply], error) {
	return reserve(t, "continue-tutoring", func(ctx context.Context) (*ports.TurnReply, error) {
		return t.engine.ContinueTutoring(ctx, req)
	})
}

// UpdateDuration reserves an update-duration call
func (t *TurnTransport) UpdateDuration(req ports.UpdateDurationRequest) (*Call[struct{}], error) {
	return reserve(t, "update-duration", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, t.engine.UpdateDuration(ctx, req)
	})
}

// Save reserves a save-session call
func (t *TurnTransport) Save(ref ports.SessionRef) (*Call[*domain.Summary], error) {
	return reserve(t, "save-session", func(ctx context.Context) (*domain.Summary, error) {
		return t.engine.SaveSession(ctx, ref)
	})
}

// Download reserves a download-session call
func (t *TurnTransport) Download(ref ports.SessionRef) (*Call[[]byte], error) {
	return reserve(t, "download-session", func(ctx context.Context) ([]byte, error) {
		return t.engine.DownloadSession(ctx, ref)
	})
}

func reserve[T any](t *TurnTransport, op string, fn func(ctx context.Context) (T, error)) (*Call[T], error) {
	if !t.gate.TryAcquire(1) {
		logging.Logger.Debug("Engine call rejected, transport busy", "op", op)
		return nil, domain.ErrBusy
	}
	return &Call[T]{fn: fn, op: op, transport: t}, nil
}

// classify converts engine failures into typed errors.
// Errors that are already typed pass through untouched.
func (t *TurnTransport) classify(op string, ctx context.Context, err error) error {
	var te *domain.TransportError
	var pe *domain.ProtocolError
	var ve *domain.ValidationError
	if errors.As(err, &te) || errors.As(err, &pe) || errors.As(err, &ve) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.TransportError{Op: op, Cause: fmt.Errorf("timed out after %s: %w", t.timeout, context.DeadlineExceeded)}
	}
	return &domain.TransportError{Op: op, Cause: err}
}
