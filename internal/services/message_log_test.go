package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/tutor/internal/domain"
)

func msgs(pairs ...string) []domain.Message {
	out := make([]domain.Message, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Message{Role: domain.Role(pairs[i]), Content: pairs[i+1], Sequence: i / 2})
	}
	return out
}

func TestMessageLog_ReconcileSupersedesProvisional(t *testing.T) {
	log := NewMessageLog()
	log.Reset(msgs("ai", "Hello, what do you know about stacks?"))
	log.AppendProvisional("LIFO")
	assert.True(t, log.HasProvisional())

	server := msgs("ai", "Hello, what do you know about stacks?", "student", "LIFO", "ai", "Right. And queues?")
	result := log.Reconcile(server)

	assert.Equal(t, Reconciliation{Added: 2, Kept: 1, Superseded: 1}, result)
	assert.False(t, result.Diverged())
	assert.Equal(t, server, log.Messages())
	assert.False(t, log.HasProvisional())
}

func TestMessageLog_ReconcileAdoptsRewrittenHistory(t *testing.T) {
	log := NewMessageLog()
	log.Reset(msgs("ai", "first", "student", "answer"))

	server := msgs("ai", "first (edited)", "student", "answer", "ai", "next")
	result := log.Reconcile(server)

	assert.True(t, result.Diverged())
	assert.Equal(t, 0, result.Kept)
	assert.Equal(t, 2, result.Replaced)
	assert.Equal(t, server, log.Messages())
}

func TestMessageLog_OrderEqualsLatestServerOrdering(t *testing.T) {
	log := NewMessageLog()
	responses := [][]domain.Message{
		msgs("ai", "q1"),
		msgs("ai", "q1", "student", "a1", "ai", "q2"),
		msgs("ai", "q1", "student", "a1", "ai", "q2", "student", "a2", "ai", "q3"),
	}

	for i, response := range responses {
		if i > 0 {
			log.AppendProvisional("draft")
		}
		log.Reconcile(response)
		assert.Equal(t, response, log.Messages())
	}
}

func TestMessageLog_DropProvisional(t *testing.T) {
	log := NewMessageLog()
	log.Reset(msgs("ai", "q1"))
	log.AppendProvisional("a1")
	assert.Equal(t, 2, log.Len())

	assert.True(t, log.DropProvisional())
	assert.False(t, log.DropProvisional())
	assert.Equal(t, msgs("ai", "q1"), log.Messages())
}

func TestMessageLog_AppendProvisionalReplacesPrevious(t *testing.T) {
	log := NewMessageLog()
	log.AppendProvisional("one")
	log.AppendProvisional("two")

	got := log.Messages()
	assert.Len(t, got, 1)
	assert.Equal(t, "two", got[0].Content)
	assert.Equal(t, domain.RoleStudent, got[0].Role)
}

func TestMessageLog_MessagesReturnsCopy(t *testing.T) {
	log := NewMessageLog()
	log.Reset(msgs("ai", "q1"))

	got := log.Messages()
	got[0].Content = "mutated"

	assert.Equal(t, "q1", log.Messages()[0].Content)
	log.Clear()
	assert.Zero(t, log.Len())
}
