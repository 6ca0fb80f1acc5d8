// Package session tracks uploaded workbooks and their validation
// results between requests. Each upload gets a UUID session that owns
// the temp file on disk; deleting the session removes the file.
package session

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"camcheck/internal/engine"
	"camcheck/internal/errors"
)

// Session holds the state of one validated upload
type Session struct {
	ID            string
	Filename      string
	UploadPath    string
	AnnotatedPath string
	ValidatorType engine.ValidatorType
	Results       []engine.Result
	CreatedAt     time.Time
}

// Store is an in-memory session registry guarded by a mutex
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a session store. Sessions older than ttl are
// eligible for cleanup via Sweep.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session for an uploaded workbook
func (s *Store) Create(filename, uploadPath string, vt engine.ValidatorType, results []engine.Result) *Session {
	sess := &Session{
		ID:            uuid.New().String(),
		Filename:      filename,
		UploadPath:    uploadPath,
		ValidatorType: vt,
		Results:       results,
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	log.Printf("[Session] created %s for %s (%d results)", sess.ID, filename, len(results))
	return sess
}

// Get returns the session for the given ID
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.NotFound("session " + id)
	}
	return sess, nil
}

// SetAnnotatedPath records the annotated copy written for a session
func (s *Store) SetAnnotatedPath(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return errors.NotFound("session " + id)
	}
	sess.AnnotatedPath = path
	return nil
}

// Delete removes a session and its files from disk
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return errors.NotFound("session " + id)
	}

	removeFiles(sess)
	log.Printf("[Session] deleted %s", id)
	return nil
}

// Sweep removes sessions older than the store TTL and returns the
// number removed
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		removeFiles(sess)
	}
	if len(expired) > 0 {
		log.Printf("[Session] swept %d expired session(s)", len(expired))
	}
	return len(expired)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func removeFiles(sess *Session) {
	for _, path := range []string{sess.UploadPath, sess.AnnotatedPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[Session] failed to remove %s: %v", path, err)
		}
	}
}
