package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/ports"
	portsmocks "github.com/renato0307/tutor/internal/ports/mocks"
)

func archivedRecord(threadID string) domain.SessionRecord {
	return domain.SessionRecord{
		CourseRef: "CS101_intro",
		EndedAt:   testNow.Add(30 * time.Minute),
		Messages:  msgs("ai", "What is a queue?", "student", "FIFO"),
		StartedAt: testNow,
		StudentID: "s1",
		Summary:   domain.Summary{Subject: "CS101_intro", Messages: msgs("ai", "You covered queues.")},
		ThreadID:  threadID,
		TopicRef:  "ALL",
	}
}

func TestHistoryTranscript_UsesEngineCopy(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	engine := portsmocks.NewMockTutorEngine(t)
	record := archivedRecord("thread-1")
	archive.EXPECT().Get(mock.Anything, "thread-1").Return(&record, nil)
	engine.EXPECT().DownloadSession(mock.Anything, ports.SessionRef{
		StudentID: "s1", ThreadID: "thread-1", TimeStamp: testNow, TopicCode: "ALL",
	}).Return([]byte("engine transcript"), nil)

	data, fromEngine, err := NewHistoryService(archive, engine).Transcript(context.Background(), "thread-1")

	require.NoError(t, err)
	assert.True(t, fromEngine)
	assert.Equal(t, "engine transcript", string(data))
}

func TestHistoryTranscript_FallsBackToArchive(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	engine := portsmocks.NewMockTutorEngine(t)
	record := archivedRecord("thread-1")
	archive.EXPECT().Get(mock.Anything, "thread-1").Return(&record, nil)
	engine.EXPECT().DownloadSession(mock.Anything, mock.Anything).Return(nil, errors.New("engine offline"))

	data, fromEngine, err := NewHistoryService(archive, engine).Transcript(context.Background(), "thread-1")

	require.NoError(t, err)
	assert.False(t, fromEngine)
	assert.Contains(t, string(data), "Student: FIFO")
	assert.Contains(t, string(data), "--- Summary: CS101_intro ---")
}

func TestHistoryTranscript_UnknownSession(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	archive.EXPECT().Get(mock.Anything, "nope").Return(nil, domain.ErrRecordNotFound)

	_, _, err := NewHistoryService(archive, nil).Transcript(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestHistoryDownloadAll(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	first, second := archivedRecord("aaaaaaaa-1111"), archivedRecord("bbbbbbbb-2222")
	second.StartedAt = testNow.Add(time.Hour)
	archive.EXPECT().List(mock.Anything, "s1", 0).Return([]domain.SessionRecord{first, second}, nil)
	archive.EXPECT().Get(mock.Anything, first.ThreadID).Return(&first, nil)
	archive.EXPECT().Get(mock.Anything, second.ThreadID).Return(&second, nil)
	dir := filepath.Join(t.TempDir(), "transcripts")

	paths, err := NewHistoryService(archive, nil).DownloadAll(context.Background(), "s1", dir)

	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "CS101_intro_20250122-100000_aaaaaaaa.txt"), paths[0])
	assert.Equal(t, filepath.Join(dir, "CS101_intro_20250122-110000_bbbbbbbb.txt"), paths[1])
	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "AI Tutor: What is a queue?")
}

func TestHistoryDelete(t *testing.T) {
	archive := portsmocks.NewMockSessionArchive(t)
	archive.EXPECT().Delete(mock.Anything, "thread-1").Return(nil).Once()
	archive.EXPECT().Delete(mock.Anything, "thread-2").Return(domain.ErrRecordNotFound).Once()
	service := NewHistoryService(archive, nil)

	assert.NoError(t, service.Delete(context.Background(), "thread-1"))
	assert.ErrorIs(t, service.Delete(context.Background(), "thread-2"), domain.ErrRecordNotFound)
}
