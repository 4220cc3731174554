package storage

import (
	"github.com/renato0307/tutor/internal/domain"
)

// recordModelToDomain converts a SessionRecordModel (GORM) and its messages to domain.SessionRecord
func recordModelToDomain(m SessionRecordModel, messages []SessionMessageModel) domain.SessionRecord {
	record := domain.SessionRecord{
		CourseRef:       m.CourseRef,
		DurationMinutes: m.DurationMinutes,
		EndedAt:         m.EndedAt,
		Extensions:      m.Extensions,
		StartedAt:       m.StartedAt,
		StudentID:       m.StudentID,
		Summary: domain.Summary{
			EndTime:    m.SummaryEndTime,
			FromServer: m.SummaryFromServer,
			StartTime:  m.SummaryStartTime,
			Subject:    m.SummarySubject,
		},
		ThreadID: m.ThreadID,
		TopicRef: m.TopicRef,
	}

	for _, msg := range messages {
		converted := domain.Message{
			Content:  msg.Content,
			Role:     domain.Role(msg.Role),
			Sequence: msg.Sequence,
		}
		if msg.Kind == messageKindSummary {
			record.Summary.Messages = append(record.Summary.Messages, converted)
		} else {
			record.Messages = append(record.Messages, converted)
		}
	}
	return record
}

// domainToRecordModel converts a domain.SessionRecord to SessionRecordModel (GORM)
func domainToRecordModel(r domain.SessionRecord) SessionRecordModel {
	return SessionRecordModel{
		CourseRef:         r.CourseRef,
		DurationMinutes:   r.DurationMinutes,
		EndedAt:           r.EndedAt.UTC(),
		Extensions:        r.Extensions,
		StartedAt:         r.StartedAt.UTC(),
		StudentID:         r.StudentID,
		SummaryEndTime:    r.Summary.EndTime,
		SummaryFromServer: r.Summary.FromServer,
		SummaryStartTime:  r.Summary.StartTime,
		SummarySubject:    r.Summary.Subject,
		ThreadID:          r.ThreadID,
		TopicRef:          r.TopicRef,
	}
}

// domainToMessageModels flattens the message log and summary messages of r
func domainToMessageModels(r domain.SessionRecord) []SessionMessageModel {
	models := make([]SessionMessageModel, 0, len(r.Messages)+len(r.Summary.Messages))
	add := func(kind string, messages []domain.Message) {
		for i, m := range messages {
			models = append(models, SessionMessageModel{
				Content:  m.Content,
				Kind:     kind,
				Role:     string(m.Role),
				Sequence: i,
				ThreadID: r.ThreadID,
			})
		}
	}
	add(messageKindLog, r.Messages)
	add(messageKindSummary, r.Summary.Messages)
	return models
}
