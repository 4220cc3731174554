package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
)

// maxParallelDownloads bounds concurrent transcript downloads
const maxParallelDownloads = 4

// HistoryService reads and exports finished sessions from the local archive
type HistoryService struct {
	archive ports.SessionArchive
	engine  ports.TutorEngine
}

// NewHistoryService creates a HistoryService. engine may be nil, in which case
// transcripts are always rendered from the archive.
func NewHistoryService(archive ports.SessionArchive, engine ports.TutorEngine) *HistoryService {
	return &HistoryService{archive: archive, engine: engine}
}

// List returns finished sessions, newest first
func (s *HistoryService) List(ctx context.Context, studentID string, limit int) ([]domain.SessionRecord, error) {
	return s.archive.List(ctx, studentID, limit)
}

// Get returns one finished session with its messages
func (s *HistoryService) Get(ctx context.Context, threadID string) (*domain.SessionRecord, error) {
	return s.archive.Get(ctx, threadID)
}

// Delete removes a session from the archive. The engine's copy is untouched.
func (s *HistoryService) Delete(ctx context.Context, threadID string) error {
	if err := s.archive.Delete(ctx, threadID); err != nil {
		return err
	}
	logging.Logger.Info("Archived session deleted", "thread_id", threadID)
	return nil
}

// Transcript fetches the engine's transcript of a session, falling back to a
// rendering of the archived message log when the engine cannot serve it.
// The boolean reports whether the engine's copy was used.
func (s *HistoryService) Transcript(ctx context.Context, threadID string) ([]byte, bool, error) {
	record, err := s.archive.Get(ctx, threadID)
	if err != nil {
		return nil, false, err
	}

	if s.engine != nil {
		data, err := s.engine.DownloadSession(ctx, ports.SessionRef{
			StudentID: record.StudentID,
			ThreadID:  record.ThreadID,
			TimeStamp: record.StartedAt,
			TopicCode: record.TopicRef,
		})
		if err == nil {
			return data, true, nil
		}
		logging.Logger.Warn("Engine transcript unavailable, rendering locally", "thread_id", threadID, "error", err)
	}

	return RenderTranscript(*record), false, nil
}

// DownloadAll writes the transcript of every archived session of studentID to dir.
// It returns the written paths in archive order.
func (s *HistoryService) DownloadAll(ctx context.Context, studentID, dir string) ([]string, error) {
	records, err := s.archive.List(ctx, studentID, 0)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcripts directory: %w", err)
	}

	// Each goroutine writes only its own index
	paths := make([]string, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)
	for i, record := range records {
		g.Go(func() error {
			data, _, err := s.Transcript(gctx, record.ThreadID)
			if err != nil {
				return fmt.Errorf("transcript %s: %w", record.ThreadID, err)
			}
			path := filepath.Join(dir, TranscriptFileName(record))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Logger.Info("Transcripts downloaded", "count", len(paths), "dir", dir)
	return paths, nil
}

// TranscriptFileName names the transcript file of a session
func TranscriptFileName(record domain.SessionRecord) string {
	course := strings.NewReplacer("/", "_", " ", "_").Replace(record.CourseRef)
	return fmt.Sprintf("%s_%s_%s.txt", course, record.StartedAt.Format("20060102-150405"), shortID(record.ThreadID))
}

// RenderTranscript renders a plain-text transcript from an archived session
func RenderTranscript(record domain.SessionRecord) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\nTopic: %s\nStarted: %s\nEnded: %s\n\n",
		record.CourseRef, record.TopicRef,
		record.StartedAt.Format(time.DateTime), record.EndedAt.Format(time.DateTime))

	for _, m := range record.Messages {
		fmt.Fprintf(&b, "%s: %s\n\n", speaker(m.Role), m.Content)
	}

	if len(record.Summary.Messages) > 0 || record.Summary.Subject != "" {
		fmt.Fprintf(&b, "--- Summary: %s ---\n\n", record.Summary.Subject)
		for _, m := range record.Summary.Messages {
			fmt.Fprintf(&b, "%s: %s\n\n", speaker(m.Role), m.Content)
		}
	}
	return []byte(b.String())
}

func speaker(role domain.Role) string {
	if role == domain.RoleStudent {
		return "Student"
	}
	return "AI Tutor"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
