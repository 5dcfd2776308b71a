package game

import (
	"sort"
	"sync"
)

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{
		sessions: make(map[string]*Session),
	}
}

func (r *MemorySessionRepo) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *MemorySessionRepo) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

func (r *MemorySessionRepo) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// List returns the sessions sorted by ID.
func (r *MemorySessionRepo) List() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// GetOrCreate returns the session with id, building it with create when it
// does not exist yet.
func (r *MemorySessionRepo) GetOrCreate(id string, create func(id string) *Session) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok = r.sessions[id]; ok {
		return s
	}
	s = create(id)
	r.sessions[id] = s
	return s
}
