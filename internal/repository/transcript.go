package repository

import (
	"context"
	"sync"

	"loanportal/internal/model"
)

// TranscriptStore keeps append-only chat transcripts per session
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg model.ChatMessage) error
	List(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryTranscriptStore is an in-process TranscriptStore. Transcripts are
// unbounded and live until Delete.
type MemoryTranscriptStore struct {
	mu       sync.RWMutex
	sessions map[string][]model.ChatMessage
}

// NewMemoryTranscriptStore creates an empty in-memory store
func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{
		sessions: make(map[string][]model.ChatMessage),
	}
}

// Append adds msg to the end of the session transcript
func (m *MemoryTranscriptStore) Append(_ context.Context, sessionID string, msg model.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	return nil
}

// List returns a copy of the session transcript
func (m *MemoryTranscriptStore) List(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sessions[sessionID]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Delete drops the whole transcript of a session
func (m *MemoryTranscriptStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
