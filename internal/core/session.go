package core

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"staffcast/internal/csvio"
)

// batchSession holds one upload->process->download cycle in memory.
// Nothing is persisted; when the session expires the rows are gone.
type batchSession struct {
	fileName  string
	doc       csvio.Document
	results   *ResultSet
	flagged   int
	createdAt time.Time
	expiresAt time.Time
}

// sessionStore keeps batch sessions keyed by an opaque token, with a TTL so
// abandoned uploads do not pile up. Expired entries are purged lazily on
// every access.
type sessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]*batchSession
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:   ttl,
		items: make(map[string]*batchSession),
	}
}

// create registers a new session for a parsed document and returns its token.
func (s *sessionStore) create(fileName string, doc csvio.Document) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token := uuid.New().String()
	now := time.Now()
	s.items[token] = &batchSession{
		fileName:  fileName,
		doc:       doc,
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	return token
}

// get returns the live session for a token, or false if it expired or never
// existed. The returned pointer must only be used under the store mutex, so
// callers go through the Service methods instead.
func (s *sessionStore) get(token string) (*batchSession, bool) {
	v, ok := s.items[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return nil, false
	}
	return v, true
}

func (s *sessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

// len reports the number of live sessions (expired entries excluded).
func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked(time.Now())
	return len(s.items)
}
