package session

import (
	"time"

	"github.com/mmynk/weekgoal/internal/cache"
	"github.com/mmynk/weekgoal/internal/metrics"
	"github.com/mmynk/weekgoal/internal/storage"
)

// Registry keeps one live Session per user. Idle sessions expire and are
// rebuilt from storage on the next request.
type Registry struct {
	store    storage.WeekStore
	opts     Options
	sessions *cache.LRUCache[*Session]
}

// NewRegistry holds at most size sessions, each expiring after idle.
func NewRegistry(store storage.WeekStore, opts Options, size int, idle time.Duration) *Registry {
	return &Registry{
		store: store,
		opts:  opts,
		sessions: cache.NewLRUCache[*Session](size, idle,
			cache.WithEvictHook(func(string, *Session) { metrics.ActiveSessions.Dec() }),
		),
	}
}

// Get returns the session of userID, creating it if needed.
func (r *Registry) Get(userID string) (*Session, error) {
	return r.sessions.GetOrCreate(userID, func() (*Session, error) {
		s, err := New(userID, r.store, r.opts)
		if err != nil {
			return nil, err
		}
		metrics.ActiveSessions.Inc()
		return s, nil
	})
}

// Drop forgets the session of userID.
func (r *Registry) Drop(userID string) {
	r.sessions.Delete(userID)
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	return r.sessions.PurgeExpired()
}

// Len returns the number of sessions held.
func (r *Registry) Len() int {
	return r.sessions.Len()
}
