package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
	"github.com/renato0307/tutor/internal/ports"
)

// SQLiteArchive implements ports.SessionArchive using GORM
type SQLiteArchive struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionArchive = (*SQLiteArchive)(nil)

// gormLogger wraps the tutor logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TUTOR_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteArchive opens (creating if needed) the archive database at dbPath
func NewSQLiteArchive(dbPath string) (*SQLiteArchive, error) {
	if strings.HasPrefix(dbPath, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      newGormLogger(),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the CLI read the archive while an SSH session is writing it
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&SessionRecordModel{}, &SessionMessageModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
		}
	}

	logging.Logger.Debug("Session archive opened", "path", dbPath)
	return &SQLiteArchive{db: db}, nil
}

// Close closes the database connection
func (a *SQLiteArchive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record implements SessionArchiveWriter.Record. Recording the same thread twice replaces it.
func (a *SQLiteArchive) Record(ctx context.Context, record domain.SessionRecord) error {
	if record.ThreadID == "" {
		return domain.NewValidationError("thread_id", "cannot be empty")
	}

	return withRetry(func() error {
		return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToRecordModel(record)
			if err := tx.Save(&model).Error; err != nil {
				return fmt.Errorf("failed to save session record: %w", err)
			}

			if err := tx.Where("thread_id = ?", record.ThreadID).Delete(&SessionMessageModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear archived messages: %w", err)
			}
			messages := domainToMessageModels(record)
			if len(messages) == 0 {
				return nil
			}
			if err := tx.CreateInBatches(&messages, 100).Error; err != nil {
				return fmt.Errorf("failed to archive messages: %w", err)
			}
			return nil
		})
	}, 3)
}

// Get implements SessionArchiveReader.Get
func (a *SQLiteArchive) Get(ctx context.Context, threadID string) (*domain.SessionRecord, error) {
	var model SessionRecordModel
	var messages []SessionMessageModel

	err := withRetry(func() error {
		return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("thread_id = ?", threadID).First(&model).Error; err != nil {
				return err
			}
			return tx.Where("thread_id = ?", threadID).Order("kind, sequence").Find(&messages).Error
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", threadID, domain.ErrRecordNotFound)
		}
		return nil, err
	}

	record := recordModelToDomain(model, messages)
	return &record, nil
}

// List implements SessionArchiveReader.List.
// Records come newest first without messages; an empty studentID lists everyone.
func (a *SQLiteArchive) List(ctx context.Context, studentID string, limit int) ([]domain.SessionRecord, error) {
	var models []SessionRecordModel

	err := withRetry(func() error {
		query := a.db.WithContext(ctx).Order("ended_at DESC")
		if studentID != "" {
			query = query.Where("student_id = ?", studentID)
		}
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	result := make([]domain.SessionRecord, len(models))
	for i, m := range models {
		result[i] = recordModelToDomain(m, nil)
	}
	return result, nil
}

// Delete implements SessionArchiveWriter.Delete
func (a *SQLiteArchive) Delete(ctx context.Context, threadID string) error {
	return withRetry(func() error {
		return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("thread_id = ?", threadID).Delete(&SessionMessageModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("thread_id = ?", threadID).Delete(&SessionRecordModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("session %s: %w", threadID, domain.ErrRecordNotFound)
			}
			return nil
		})
	}, 3)
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
