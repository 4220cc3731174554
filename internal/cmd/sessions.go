package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/services"
)

// SessionsCmd browses the local archive of finished sessions
type SessionsCmd struct {
	Del      SessionsDelCmd      `cmd:"del" help:"Delete an archived session"`
	Download SessionsDownloadCmd `cmd:"download" help:"Download session transcripts"`
	List     SessionsListCmd     `cmd:"list" help:"List archived sessions" default:"1"`
	View     SessionsViewCmd     `cmd:"view" help:"View an archived session"`
}

// SessionsListCmd lists archived sessions
type SessionsListCmd struct {
	All     bool   `help:"List sessions of every student" short:"a"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit   int    `help:"Maximum number of sessions to show (0 = all)" default:"20"`
	Student string `help:"Student whose sessions to list (defaults to student_id in settings)" env:"TUTOR_STUDENT_ID"`
}

// sessionListItem is the JSON shape of one listed session
type sessionListItem struct {
	CourseRef       string    `json:"course"`
	DurationMinutes int       `json:"duration_minutes"`
	EndedAt         time.Time `json:"ended_at"`
	Extensions      int       `json:"extensions"`
	Messages        int       `json:"messages"`
	StartedAt       time.Time `json:"started_at"`
	StudentID       string    `json:"student_id"`
	Subject         string    `json:"subject"`
	ThreadID        string    `json:"thread_id"`
	TopicRef        string    `json:"topic"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	studentID := s.Student
	if studentID == "" && !s.All {
		studentID = cli.Container.Settings().StudentID
	}
	if s.All {
		studentID = ""
	}

	records, err := cli.Container.History.List(cliContext(), studentID, s.Limit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == "json" {
		return s.printJSON(records)
	}
	return s.printTable(records)
}

func (s *SessionsListCmd) printJSON(records []domain.SessionRecord) error {
	items := make([]sessionListItem, 0, len(records))
	for _, r := range records {
		items = append(items, sessionListItem{
			CourseRef:       r.CourseRef,
			DurationMinutes: r.DurationMinutes,
			EndedAt:         r.EndedAt,
			Extensions:      r.Extensions,
			Messages:        len(r.Messages),
			StartedAt:       r.StartedAt,
			StudentID:       r.StudentID,
			Subject:         r.Summary.Subject,
			ThreadID:        r.ThreadID,
			TopicRef:        r.TopicRef,
		})
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (s *SessionsListCmd) printTable(records []domain.SessionRecord) error {
	if len(records) == 0 {
		fmt.Println("No archived sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THREAD\tSTARTED\tCOURSE\tTOPIC\tMINUTES\tSUBJECT")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ThreadID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.CourseRef,
			r.TopicRef,
			r.DurationMinutes,
			r.Summary.Subject,
		)
	}
	return w.Flush()
}

// SessionsViewCmd shows one archived session
type SessionsViewCmd struct {
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ThreadID string `arg:"" help:"Thread id of the session to view"`
}

// Run executes the view command
func (s *SessionsViewCmd) Run(cli *CLI) error {
	record, err := cli.Container.History.Get(cliContext(), s.ThreadID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if s.Format == "json" {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Thread: %s\n", record.ThreadID)
	fmt.Printf("Student: %s\n", record.StudentID)
	fmt.Printf("Course: %s\n", record.CourseRef)
	fmt.Printf("Topic: %s\n", record.TopicRef)
	fmt.Printf("Started: %s\n", record.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Ended: %s\n", record.EndedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %d minutes (%d extensions)\n", record.DurationMinutes, record.Extensions)
	if !record.Summary.FromServer {
		fmt.Println("Summary: rebuilt locally, the engine did not save this session")
	}
	fmt.Println()
	fmt.Print(string(services.RenderTranscript(*record)))
	return nil
}

// SessionsDownloadCmd writes transcripts to disk
type SessionsDownloadCmd struct {
	All      bool   `help:"Download every archived session of the student" short:"a"`
	Dir      string `help:"Directory to write transcripts to (defaults to $TUTOR_HOME/transcripts)" type:"path"`
	Student  string `help:"Student whose sessions to download with --all" env:"TUTOR_STUDENT_ID"`
	ThreadID string `arg:"" optional:"" help:"Thread id of the session to download"`
}

// Run executes the download command
func (s *SessionsDownloadCmd) Run(cli *CLI) error {
	dir := s.Dir
	if dir == "" {
		dir = config.GetTranscriptsDir()
	}
	ctx := cliContext()

	if s.All {
		studentID := s.Student
		if studentID == "" {
			studentID = cli.Container.Settings().StudentID
		}
		paths, err := cli.Container.History.DownloadAll(ctx, studentID, dir)
		if err != nil {
			return fmt.Errorf("failed to download transcripts: %w", err)
		}
		for _, path := range paths {
			fmt.Println(path)
		}
		fmt.Printf("%d transcript(s) written to %s\n", len(paths), dir)
		return nil
	}

	if s.ThreadID == "" {
		return fmt.Errorf("pass a thread id or --all")
	}

	data, fromEngine, err := cli.Container.History.Transcript(ctx, s.ThreadID)
	if err != nil {
		return fmt.Errorf("failed to download transcript: %w", err)
	}
	record, err := cli.Container.History.Get(ctx, s.ThreadID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	path, err := writeTranscript(dir, *record, data)
	if err != nil {
		return err
	}
	if !fromEngine {
		fmt.Println("The engine could not serve the transcript; rendered from the local archive.")
	}
	fmt.Println(path)
	return nil
}

// cliContext is the context of one-shot CLI commands
func cliContext() context.Context {
	return context.Background()
}

func writeTranscript(dir string, record domain.SessionRecord, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create transcripts directory: %w", err)
	}
	path := filepath.Join(dir, services.TranscriptFileName(record))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	logging.Logger.Info("Transcript written", "thread_id", record.ThreadID, "path", path)
	return path, nil
}
