package backend

import (
	"sync"

	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/scene"
)

// Transform names a display rotation/flip, kept as a string enum the
// way configuration values usually arrive from a YAML file rather than
// requiring the core to model every rotation matrix.
type Transform string

const (
	TransformNormal  Transform = "normal"
	Transform90      Transform = "90"
	Transform180     Transform = "180"
	Transform270     Transform = "270"
	TransformFlipped Transform = "flipped"
)

// PersistentOutputState is keyed by stable output identity and survives
// disconnect/reconnect (spec.md §3).
type PersistentOutputState struct {
	mu        sync.Mutex
	Position  geom.Point
	Transform Transform
	Scale     float64
}

// SetPosition updates the persisted position.
func (p *PersistentOutputState) SetPosition(pt geom.Point) {
	p.mu.Lock()
	p.Position = pt
	p.mu.Unlock()
}

// GetPosition returns the persisted position.
func (p *PersistentOutputState) GetPosition() geom.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Position
}

// PersistentStateStore maps a stable OutputIdentity to its persisted
// state, surviving across connect/disconnect cycles for the life of the
// compositor process.
type PersistentStateStore struct {
	mu     sync.Mutex
	states map[scene.OutputIdentity]*PersistentOutputState
}

// NewPersistentStateStore returns an empty store.
func NewPersistentStateStore() *PersistentStateStore {
	return &PersistentStateStore{states: make(map[scene.OutputIdentity]*PersistentOutputState)}
}

// Get returns the persisted state for id if one exists.
func (s *PersistentStateStore) Get(id scene.OutputIdentity) (*PersistentOutputState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// GetOrCreate returns the persisted state for id, creating it with pos
// as its initial position if none exists yet — the "look up or create,
// placing the new output to the right of the existing rightmost one"
// rule from spec.md §4.7.
func (s *PersistentStateStore) GetOrCreate(id scene.OutputIdentity, pos geom.Point) *PersistentOutputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[id]; ok {
		return st
	}
	st := &PersistentOutputState{Position: pos, Transform: TransformNormal, Scale: 1}
	s.states[id] = st
	return st
}
