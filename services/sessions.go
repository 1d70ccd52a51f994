package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"legaldoc/models"
)

// seedSystemPrompt is the instruction every new session starts with
const seedSystemPrompt = "You are a helpful legal assistant analyzing documents and answering user queries."

// Session store defaults
const (
	// DefaultPreviewLimit caps how much uploaded document text is injected
	// into a chat session.
	DefaultPreviewLimit = 5000

	// DefaultMaxSessions caps how many sessions the store keeps before the
	// least recently used one is evicted.
	DefaultMaxSessions = 1000
)

// Session holds the ordered conversation turns for one session id. Turns are
// append-only; the mutex serializes each read-modify-append sequence.
type Session struct {
	ID string

	mu         sync.Mutex
	turns      []models.ChatMessage
	lastActive time.Time
}

func (sess *Session) append(turn models.ChatMessage) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = append(sess.turns, turn)
	sess.lastActive = time.Now()
}

func (sess *Session) touch() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()
}

// SessionStore keeps process-lifetime chat sessions keyed by session id.
// It is constructed once at startup and injected into the analyzer.
type SessionStore struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	previewLimit int
	maxSessions  int
}

// NewSessionStore creates an empty session store
func NewSessionStore(previewLimit, maxSessions int) *SessionStore {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions:     make(map[string]*Session),
		previewLimit: previewLimit,
		maxSessions:  maxSessions,
	}
}

// GetOrCreate returns the session for id, creating and seeding it with the
// system instruction on first use. Idempotent for an existing id.
func (s *SessionStore) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.touch()
		return sess
	}

	if len(s.sessions) >= s.maxSessions {
		s.evictOldest()
	}

	sess := &Session{
		ID:         id,
		turns:      []models.ChatMessage{{Role: models.RoleSystem, Content: seedSystemPrompt}},
		lastActive: time.Now(),
	}
	s.sessions[id] = sess
	return sess
}

// AppendTurn appends one conversation turn to an existing session
func (s *SessionStore) AppendTurn(id, role, content string) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}
	sess.append(models.ChatMessage{Role: role, Content: content})
	return nil
}

// AppendDocumentPreview injects a truncated document preview as a system turn
// so an uploaded file can ground the rest of the conversation without
// unbounded context growth.
func (s *SessionStore) AppendDocumentPreview(id, filename, fullText string) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}

	preview := fullText
	if len(preview) > s.previewLimit {
		preview = preview[:s.previewLimit] + "..."
	}

	sess.append(models.ChatMessage{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf("Document '%s' uploaded. Content preview:\n%s", filename, preview),
	})
	return nil
}

// History returns a copy of all turns in arrival order, system turns included
func (s *SessionStore) History(id string) ([]models.ChatMessage, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	turns := make([]models.ChatMessage, len(sess.turns))
	copy(turns, sess.turns)
	return turns, nil
}

// VisibleHistory returns the user and assistant turns in arrival order. This
// is the conversation view exposed to clients.
func (s *SessionStore) VisibleHistory(id string) ([]models.ChatMessage, error) {
	turns, err := s.History(id)
	if err != nil {
		return nil, err
	}

	visible := make([]models.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == models.RoleSystem {
			continue
		}
		visible = append(visible, turn)
	}
	return visible, nil
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return sess, nil
}

// evictOldest removes the least recently active session. The caller holds the
// store write lock.
func (s *SessionStore) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		sess.mu.Lock()
		last := sess.lastActive
		sess.mu.Unlock()
		if oldestID == "" || last.Before(oldest) {
			oldestID = id
			oldest = last
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		log.Printf("Evicted session %s to stay under the %d session cap", oldestID, s.maxSessions)
	}
}
