package canvas

import (
	"sync"

	"github.com/screenloom/screenloom/internal/domain/geometry"
	"github.com/screenloom/screenloom/internal/domain/layout"
)

// Status is a screen's generation lifecycle state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusLoading || s == StatusReady || s == StatusError
}

// Screen is one artifact placed on the canvas.
type Screen struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Status   Status         `json:"status"`
	HTML     string         `json:"html"`
	Position geometry.Point `json:"position"`
	Class    layout.Class   `json:"class"`
}

// Patch carries the optional fields of a partial update. Nil fields are
// left untouched on the target screen.
type Patch struct {
	Status *Status
	HTML   *string
	Class  *layout.Class
}

// Store is the canonical screen collection. Exactly one screen exists per
// id; discovery order is preserved for default layout, while position stays
// authoritative for display.
type Store struct {
	mu      sync.RWMutex
	order   []string
	screens map[string]Screen
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{screens: make(map[string]Screen)}
}

// Add inserts a screen. An existing screen with the same id is replaced in
// place, keeping its discovery position.
func (s *Store) Add(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.screens[screen.ID]; !ok {
		s.order = append(s.order, screen.ID)
	}
	s.screens[screen.ID] = screen
}

// AddBatch inserts several screens in order.
func (s *Store) AddBatch(screens []Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, screen := range screens {
		if _, ok := s.screens[screen.ID]; !ok {
			s.order = append(s.order, screen.ID)
		}
		s.screens[screen.ID] = screen
	}
}

// Update applies a partial patch to the screen with the given id. It
// returns false if no such screen exists. Applying the same patch twice
// yields the same final state as applying it once.
func (s *Store) Update(id string, patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.screens[id]
	if !ok {
		return false
	}

	if patch.Status != nil {
		screen.Status = *patch.Status
	}
	if patch.HTML != nil {
		screen.HTML = *patch.HTML
	}
	if patch.Class != nil {
		screen.Class = *patch.Class
	}
	s.screens[id] = screen
	return true
}

// SetPosition moves a screen to a new world-space position.
func (s *Store) SetPosition(id string, pt geometry.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.screens[id]
	if !ok {
		return false
	}
	screen.Position = pt
	s.screens[id] = screen
	return true
}

// Remove deletes a screen. Removal is the only way a screen leaves the
// store; a failed generation stays visible in its error state.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.screens[id]; !ok {
		return false
	}
	delete(s.screens, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the screen with the given id.
func (s *Store) Get(id string) (Screen, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	screen, ok := s.screens[id]
	return screen, ok
}

// List returns copies of all screens in discovery order.
func (s *Store) List() []Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Screen, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.screens[id])
	}
	return out
}

// Len returns the number of screens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.screens)
}
