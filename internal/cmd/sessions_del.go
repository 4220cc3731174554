package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
)

// SessionsDelCmd deletes an archived session
type SessionsDelCmd struct {
	Force    bool   `help:"Force deletion without confirmation" short:"f"`
	ThreadID string `arg:"" help:"Thread id of the session to delete"`
}

// Run executes the del command
func (s *SessionsDelCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing sessions del command", "thread_id", s.ThreadID, "force", s.Force)

	ctx := cliContext()
	record, err := s.validateSession(ctx, cli.Container)
	if err != nil {
		return err
	}

	if !s.Force {
		if !s.confirmDeletion(record) {
			return nil
		}
	}

	if err := cli.Container.History.Delete(ctx, s.ThreadID); err != nil {
		logging.Logger.Error("Failed to delete session", "thread_id", s.ThreadID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("Session '%s' deleted from the local archive\n", s.ThreadID)
	return nil
}

func (s *SessionsDelCmd) validateSession(ctx context.Context, container *Container) (*domain.SessionRecord, error) {
	record, err := container.History.Get(ctx, s.ThreadID)
	if err != nil {
		logging.Logger.Error("Session not found", "thread_id", s.ThreadID, "error", err)
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return record, nil
}

func (s *SessionsDelCmd) confirmDeletion(record *domain.SessionRecord) bool {
	fmt.Printf("WARNING: This will delete session '%s' (%s, %s)\n",
		s.ThreadID, record.CourseRef, record.StartedAt.Local().Format("2006-01-02 15:04"))
	fmt.Println("  - The engine's copy is not affected")
	fmt.Print("\nContinue? (y/N): ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		logging.Logger.Info("User cancelled session deletion", "thread_id", s.ThreadID)
		fmt.Println("Cancelled")
		return false
	}
	logging.Logger.Info("User confirmed session deletion", "thread_id", s.ThreadID)
	return true
}
