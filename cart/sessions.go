package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultIdleTTL is how long an untouched session stays in memory.
const DefaultIdleTTL = 30 * time.Minute

type session struct {
	store    *Store
	lastUsed time.Time
}

// Sessions owns one Store per visitor session. Stores left idle longer than the
// idle TTL are dropped by Sweep; their snapshot stays in storage and is reloaded
// on the next Open.
type Sessions struct {
	storage Storage
	log     *zap.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu     sync.Mutex
	stores map[string]*session
}

func NewSessions(storage Storage, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{
		storage: storage,
		log:     log,
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
		stores:  make(map[string]*session),
	}
}

// WithIdleTTL sets how long an unused session is kept. Zero or less keeps the default.
func (s *Sessions) WithIdleTTL(d time.Duration) *Sessions {
	if d > 0 {
		s.idleTTL = d
	}
	return s
}

// Key is the storage key of a session's snapshot.
func Key(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// Open returns the session's store, loading its snapshot on first use.
func (s *Sessions) Open(ctx context.Context, sessionID string) *Store {
	s.mu.Lock()
	sess, ok := s.stores[sessionID]
	if !ok {
		sess = &session{store: NewStore(s.storage, Key(sessionID), s.log.With(zap.String("cart_session", sessionID)))}
		s.stores[sessionID] = sess
	}
	sess.lastUsed = s.now()
	st := sess.store
	s.mu.Unlock()

	st.Initialize(ctx)
	return st
}

// Existing returns the session's store only when the session has a live store or
// a stored snapshot. A session that never put anything in its cart gets false and
// nothing is kept in memory for it.
func (s *Sessions) Existing(ctx context.Context, sessionID string) (*Store, bool) {
	s.mu.Lock()
	_, live := s.stores[sessionID]
	s.mu.Unlock()
	if live {
		return s.Open(ctx, sessionID), true
	}

	_, err := s.storage.Load(ctx, Key(sessionID))
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	// Any other failure goes through Open so it surfaces in the store's Err.
	return s.Open(ctx, sessionID), true
}

// Len is the number of sessions held in memory.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// Sweep drops sessions unused for the idle TTL and returns how many went.
// Sessions with live subscribers or a save in flight are kept.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, sess := range s.stores {
		if sess.lastUsed.After(cutoff) || sess.store.busy() {
			continue
		}
		delete(s.stores, id)
		evicted++
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("idle cart sessions evicted", zap.Int("evicted", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}
