package listview

import (
	"sync"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// InflightSet tracks running per-item actions across concurrent requests.
type InflightSet struct {
	mu  sync.Mutex
	ids map[entity.ID]struct{}
}

// NewInflightSet returns an empty set.
func NewInflightSet() *InflightSet {
	return &InflightSet{ids: make(map[entity.ID]struct{})}
}

// TryStart marks id as running. It reports false when id already is.
func (s *InflightSet) TryStart(id entity.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Done clears id.
func (s *InflightSet) Done(id entity.ID) {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}

// Has reports whether id is running.
func (s *InflightSet) Has(id entity.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Snapshot returns the running ids as a set usable in a Model.
func (s *InflightSet) Snapshot() map[entity.ID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[entity.ID]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}
