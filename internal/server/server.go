package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// SessionFactory builds the tutoring screen for one SSH connection.
// The returned cleanup runs when the connection closes.
type SessionFactory func(ctx context.Context, studentID string) (*ui.Model, func(), error)

// Config holds the listener and key locations
type Config struct {
	AuthorizedKeysPath string
	Host               string
	HostKeyPath        string
	Port               string
}

// Server serves the tutoring TUI over SSH. The SSH user is the student id.
type Server struct {
	addr       string
	newSession SessionFactory
	wishServer *ssh.Server
}

// NewServer creates the SSH server
func NewServer(cfg Config, newSession SessionFactory) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	s := &Server{
		addr:       net.JoinHostPort(cfg.Host, cfg.Port),
		newSession: newSession,
	}

	// Middleware runs last to first
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.addr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithPublicKeyAuth(publicKeyHandler(cfg.AuthorizedKeysPath)),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Starting SSH server", "address", s.addr)
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSH server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}
	logging.Logger.Info("SSH server stopped")
	return nil
}
