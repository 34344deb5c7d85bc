package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps one Store per visitor session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Store
	opts     Options
	newID    func() string
}

// NewRegistry creates an empty registry; every store it creates uses opts.
func NewRegistry(opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		sessions: map[string]*Store{},
		opts:     opts,
		newID:    uuid.NewString,
	}
}

// Get returns the store for id and marks it active.
func (r *Registry) Get(id string) (*Store, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

// Create allocates a store under a fresh random id.
func (r *Registry) Create() *Store {
	s := NewStore(r.newID(), r.opts)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// GetOrCreate returns the store for id, creating a new session when id is unknown.
// created reports whether a new session was allocated.
func (r *Registry) GetOrCreate(id string) (s *Store, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// Evict drops sessions idle for longer than idle and returns how many were removed.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.opts.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
