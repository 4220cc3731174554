package services

import "github.com/renato0307/tutor/internal/domain"

// Reconciliation describes how the engine's ordering differs from the local log
type Reconciliation struct {
	Added      int // Entries present only in the engine's ordering
	Kept       int // Leading entries identical on both sides
	Replaced   int // Confirmed local entries that differ from the engine's ordering
	Superseded int // Provisional entries dropped in favour of the engine's ordering
}

// Diverged reports whether the engine rewrote confirmed history
func (r Reconciliation) Diverged() bool {
	return r.Replaced > 0
}

// MessageLog is the ordered sequence of dialogue turns.
// Confirmed entries always equal the latest ordering returned by the engine;
// at most one provisional student entry trails them while a turn is in flight.
type MessageLog struct {
	entries []domain.Message
}

// NewMessageLog creates an empty log
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Reset replaces the log with the engine's ordering, discarding everything else
func (l *MessageLog) Reset(messages []domain.Message) {
	l.entries = renumber(messages)
}

// AppendProvisional adds an optimistic student entry at the end of the log
func (l *MessageLog) AppendProvisional(content string) {
	l.DropProvisional()
	l.entries = append(l.entries, domain.Message{
		Content:     content,
		Provisional: true,
		Role:        domain.RoleStudent,
		Sequence:    len(l.entries),
	})
}

// DropProvisional removes the optimistic entry, if any
func (l *MessageLog) DropProvisional() bool {
	n := len(l.entries)
	if n > 0 && l.entries[n-1].Provisional {
		l.entries = l.entries[:n-1]
		return true
	}
	return false
}

// Reconcile diffs the local log against the engine's ordering and then adopts
// the engine's ordering wholesale. Provisional entries are superseded, never merged.
func (l *MessageLog) Reconcile(server []domain.Message) Reconciliation {
	var result Reconciliation
	confirmed := l.entries
	if n := len(confirmed); n > 0 && confirmed[n-1].Provisional {
		result.Superseded = 1
		confirmed = confirmed[:n-1]
	}

	for result.Kept < len(confirmed) && result.Kept < len(server) &&
		sameMessage(confirmed[result.Kept], server[result.Kept]) {
		result.Kept++
	}
	result.Replaced = len(confirmed) - result.Kept
	result.Added = len(server) - result.Kept

	l.entries = renumber(server)
	return result
}

// Messages returns a copy of the log in conversation order
func (l *MessageLog) Messages() []domain.Message {
	out := make([]domain.Message, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries, provisional included
func (l *MessageLog) Len() int {
	return len(l.entries)
}

// HasProvisional reports whether an optimistic entry is pending
func (l *MessageLog) HasProvisional() bool {
	n := len(l.entries)
	return n > 0 && l.entries[n-1].Provisional
}

// Clear empties the log
func (l *MessageLog) Clear() {
	l.entries = nil
}

func sameMessage(a, b domain.Message) bool {
	return a.Role == b.Role && a.Content == b.Content
}

func renumber(messages []domain.Message) []domain.Message {
	out := make([]domain.Message, len(messages))
	for i, m := range messages {
		out[i] = domain.Message{Content: m.Content, Role: m.Role, Sequence: i}
	}
	return out
}
