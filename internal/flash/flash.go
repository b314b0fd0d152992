package flash

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-records/internal/session"
)

// Kind is category of flash message
type Kind string

const (
	// KindInfo is informational message
	KindInfo Kind = "info"
	// KindError is error message
	KindError Kind = "error"
)

// Store keeps flash messages per session until they are popped
type Store interface {
	Push(ctx context.Context, sessionID string, kind Kind, text string) error
	Pop(ctx context.Context, sessionID string, kind Kind) ([]string, error)
}

// Flasher binds flash store to session of the request
type Flasher struct {
	store Store
}

// NewFlasher builds new Flasher
func NewFlasher(store Store) *Flasher {
	return &Flasher{store: store}
}

// Add queues message for the next rendered page
func (f *Flasher) Add(c echo.Context, kind Kind, text string) error {
	return f.store.Push(c.Request().Context(), session.ID(c), kind, text)
}

// Drain returns and removes all queued messages of kind
func (f *Flasher) Drain(c echo.Context, kind Kind) ([]string, error) {
	return f.store.Pop(c.Request().Context(), session.ID(c), kind)
}

type memoryEntry struct {
	texts     []string
	expiresAt time.Time
}

// MemoryStore is in-process flash store
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

// NewMemoryStore builds MemoryStore, queued messages expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

// Push appends message
func (s *MemoryStore) Push(_ context.Context, sessionID string, kind Kind, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	k := Key(sessionID, kind)
	e, ok := s.entries[k]
	if !ok {
		e = &memoryEntry{}
		s.entries[k] = e
	}
	e.texts = append(e.texts, text)
	e.expiresAt = now.Add(s.ttl)
	return nil
}

// Pop returns and removes messages
func (s *MemoryStore) Pop(_ context.Context, sessionID string, kind Kind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired(s.now())

	k := Key(sessionID, kind)
	e, ok := s.entries[k]
	if !ok {
		return make([]string, 0), nil
	}
	delete(s.entries, k)
	return e.texts, nil
}

func (s *MemoryStore) evictExpired(now time.Time) {
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Key builds storage key for session and kind
func Key(sessionID string, kind Kind) string {
	return "flash:" + sessionID + ":" + string(kind)
}
