package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"loanportal/internal/config"
	"loanportal/internal/model"
	"loanportal/internal/repository"
)

// ChatSession is one chat widget: a draft, a busy flag and an append-only
// transcript kept in a TranscriptStore
type ChatSession struct {
	id     string
	sender ChatSender
	store  repository.TranscriptStore

	mu    sync.Mutex
	draft string
	busy  bool
}

// NewChatSession opens the transcript for id, seeding the greeting when it is empty.
// A nil store keeps the transcript in memory.
func NewChatSession(ctx context.Context, id string, sender ChatSender, store repository.TranscriptStore, greeting string) (*ChatSession, error) {
	if store == nil {
		store = repository.NewMemoryTranscriptStore()
	}
	if greeting == "" {
		greeting = config.DefaultGreeting
	}

	existing, err := store.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	if len(existing) == 0 {
		seed := model.ChatMessage{Role: model.RoleAssistant, Content: greeting}
		if err := store.Append(ctx, id, seed); err != nil {
			return nil, fmt.Errorf("failed to seed transcript: %w", err)
		}
	}

	return &ChatSession{
		id:     id,
		sender: sender,
		store:  store,
	}, nil
}

// ID returns the session identifier
func (s *ChatSession) ID() string {
	return s.id
}

// SetDraft replaces the current input
func (s *ChatSession) SetDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// Draft returns the current input
func (s *ChatSession) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Busy reports whether a chat call is in flight
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Transcript returns every message exchanged so far, oldest first
func (s *ChatSession) Transcript(ctx context.Context) ([]model.ChatMessage, error) {
	return s.store.List(ctx, s.id)
}

// Send sends the trimmed draft. It does nothing and returns false when the
// draft is blank or a call is already in flight. A failed chat call appends
// the fallback assistant message instead of returning an error; the returned
// error only reports transcript store failures.
func (s *ChatSession) Send(ctx context.Context) (bool, error) {
	s.mu.Lock()
	text, ok := s.beginLocked()
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, s.exchange(ctx, text)
}

// Ask sets the draft to message and sends it in one step. While a call is in
// flight it returns false and leaves the current draft untouched.
func (s *ChatSession) Ask(ctx context.Context, message string) (bool, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false, nil
	}
	s.draft = message
	text, ok := s.beginLocked()
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, s.exchange(ctx, text)
}

// beginLocked claims the busy flag and consumes the draft
func (s *ChatSession) beginLocked() (string, bool) {
	text := strings.TrimSpace(s.draft)
	if text == "" || s.busy {
		return "", false
	}
	s.draft = ""
	s.busy = true
	return text, true
}

func (s *ChatSession) exchange(ctx context.Context, text string) error {
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := s.store.Append(ctx, s.id, model.ChatMessage{Role: model.RoleUser, Content: text}); err != nil {
		return fmt.Errorf("failed to record user message: %w", err)
	}

	reply, err := s.sender.SubmitChatMessage(ctx, text)
	if err != nil {
		log.WithError(err).WithField("session", s.id).Warn("chat call failed, appending fallback reply")
		reply = model.ChatFailureMessage
	}

	if err := s.store.Append(ctx, s.id, model.ChatMessage{Role: model.RoleAssistant, Content: reply}); err != nil {
		return fmt.Errorf("failed to record assistant message: %w", err)
	}
	return nil
}
