package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prakoso/catalog-manager-be/internal/cache"
	"github.com/prakoso/catalog-manager-be/internal/catalog"
	"github.com/prakoso/catalog-manager-be/internal/storage"
)

// Session is the explicit per-browser context: its id names the storage
// slot (catalog:<id>) and owns the cached catalog bound to that slot.
// Nothing about a session lives in package-level state.
type Session struct {
	ID        string
	CreatedAt time.Time
	LastSeen  time.Time
	Catalog   *cache.Catalog
}

// Registry creates, looks up and expires sessions. Expiry only drops the
// in-memory context; the storage slot stays, so a client returning with a
// still-valid cookie gets its catalog back.
type Registry struct {
	slot storage.Slot
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(slot storage.Slot, ttl time.Duration) *Registry {
	return &Registry{
		slot:     slot,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// SlotKey names the storage slot for one session's catalog.
func SlotKey(sessionID string) string {
	return "catalog:" + sessionID
}

// New creates a session with a fresh id.
func (r *Registry) New() *Session {
	return r.Materialize(uuid.NewString())
}

// Materialize returns the live session for id, building its context if the
// registry has none (first request, or server restarted since the cookie
// was issued).
func (r *Registry) Materialize(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		sess.LastSeen = time.Now()
		return sess
	}

	now := time.Now()
	sess := &Session{
		ID:        id,
		CreatedAt: now,
		LastSeen:  now,
		Catalog:   cache.New(catalog.NewStore(r.slot, SlotKey(id))),
	}
	r.sessions[id] = sess
	return sess
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep tears down sessions idle past the TTL.
func (r *Registry) Sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sess := range r.sessions {
		if now.Sub(sess.LastSeen) > r.ttl {
			delete(r.sessions, id)
			log.Printf("session %s expired after %s idle", id, r.ttl)
		}
	}
}

// Run sweeps periodically until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
