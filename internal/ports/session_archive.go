package ports

import (
	"context"

	"github.com/renato0307/tutor/internal/domain"
)

// SessionArchiveReader reads finished sessions
type SessionArchiveReader interface {
	Get(ctx context.Context, threadID string) (*domain.SessionRecord, error)
	List(ctx context.Context, studentID string, limit int) ([]domain.SessionRecord, error)
}

// SessionArchiveWriter records and removes finished sessions
type SessionArchiveWriter interface {
	Delete(ctx context.Context, threadID string) error
	Record(ctx context.Context, record domain.SessionRecord) error
}

// SessionArchive is the composite interface
type SessionArchive interface {
	SessionArchiveReader
	SessionArchiveWriter
	Close() error
}
