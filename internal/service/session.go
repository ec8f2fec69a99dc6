package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"loanportal/internal/repository"
)

const sessionCleanupInterval = 5 * time.Minute

// Session pairs one applicant's form with their chat widget
type Session struct {
	ID        string
	CreatedAt time.Time
	Form      *FormController
	Chat      *ChatSession

	lastSeen time.Time
}

// SessionManager owns every live portal session. Idle sessions are evicted
// after the configured TTL by a background janitor.
type SessionManager struct {
	predictor Predictor
	sender    ChatSender
	store     repository.TranscriptStore
	history   *HistoryService
	greeting  string
	ttl       time.Duration
	interval  time.Duration

	// transcripts in the in-process store die with their session
	purgeOnEvict bool

	mu       sync.Mutex
	sessions map[string]*Session
	opening  map[string]chan struct{} // ids whose transcript is being opened
	stop     chan struct{}
	stopOnce sync.Once
}

// SessionOption is a functional option for configuring the manager
type SessionOption func(*SessionManager)

// WithTranscriptStore keeps transcripts in store instead of memory
func WithTranscriptStore(store repository.TranscriptStore) SessionOption {
	return func(m *SessionManager) {
		m.store = store
	}
}

// WithHistory records successful predictions of every session
func WithHistory(history *HistoryService) SessionOption {
	return func(m *SessionManager) {
		m.history = history
	}
}

// WithGreeting sets the first assistant message of new transcripts
func WithGreeting(greeting string) SessionOption {
	return func(m *SessionManager) {
		m.greeting = greeting
	}
}

// WithSessionTTL evicts sessions idle for longer than ttl; 0 keeps them forever
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.ttl = ttl
	}
}

// WithCleanupInterval sets how often the janitor looks for idle sessions
func WithCleanupInterval(interval time.Duration) SessionOption {
	return func(m *SessionManager) {
		m.interval = interval
	}
}

// NewSessionManager creates a manager whose sessions call predictor and sender
func NewSessionManager(predictor Predictor, sender ChatSender, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		predictor: predictor,
		sender:    sender,
		interval:  sessionCleanupInterval,
		sessions:  make(map[string]*Session),
		opening:   make(map[string]chan struct{}),
		stop:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = repository.NewMemoryTranscriptStore()
		m.purgeOnEvict = true
	}

	if m.ttl > 0 {
		go m.cleanupLoop()
	}

	return m
}

// Create opens a new session with a fresh identifier
func (m *SessionManager) Create(ctx context.Context) (*Session, error) {
	return m.open(ctx, uuid.NewString())
}

// Get returns a live session and marks it as used
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = time.Now()
	}
	return s, ok
}

// GetOrCreate returns the session for id. An unknown but well-formed id is
// reopened so a persisted transcript can be resumed; an empty or malformed id
// gets a new session. created reports whether a session was opened.
func (m *SessionManager) GetOrCreate(ctx context.Context, id string) (s *Session, created bool, err error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s, err = m.open(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// open registers a session for id. Only one caller at a time opens a given id;
// the others wait and then share its session.
func (m *SessionManager) open(ctx context.Context, id string) (*Session, error) {
	for {
		m.mu.Lock()
		if existing, ok := m.sessions[id]; ok {
			existing.lastSeen = time.Now()
			m.mu.Unlock()
			return existing, nil
		}
		wait, busy := m.opening[id]
		if !busy {
			break
		}
		m.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	done := make(chan struct{})
	m.opening[id] = done
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.opening, id)
		m.mu.Unlock()
		close(done)
	}()

	predictor := m.predictor
	if m.history != nil {
		predictor = m.history.Recorder(predictor, id)
	}

	chat, err := NewChatSession(ctx, id, m.sender, m.store, m.greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %s: %w", id, err)
	}

	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		Form:      NewFormController(predictor),
		Chat:      chat,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	log.WithField("session", id).Debug("session opened")
	return s, nil
}

// Len returns the number of live sessions
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop halts the janitor
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle(time.Now())
		case <-m.stop:
			return
		}
	}
}

// evictIdle drops sessions unused since now-ttl
func (m *SessionManager) evictIdle(now time.Time) int {
	m.mu.Lock()
	var evicted []string
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	if m.purgeOnEvict {
		for _, id := range evicted {
			if err := m.store.Delete(context.Background(), id); err != nil {
				log.WithError(err).WithField("session", id).Warn("failed to delete transcript")
			}
		}
	}

	if len(evicted) > 0 {
		log.WithField("count", len(evicted)).Debug("evicted idle sessions")
	}
	return len(evicted)
}
