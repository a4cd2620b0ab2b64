package scene

import (
	"sync"

	"github.com/jaywm/jayd/internal/geom"
)

// Seat is a pointer+keyboard focus carrier positioned somewhere in the
// scene (spec.md's "reposition every seat to the output's center" is a
// write to Seat.Position). A full wl_seat implementation lives in
// internal/ifaces; this is the subset the tree and the connector
// lifecycle need to drive focus.
type Seat struct {
	mu sync.Mutex

	Name     string
	Position geom.Point

	output        *OutputNode
	pointerFocus  Node
	keyboardFocus Node
	cursor        string
}

// NewSeat returns a seat positioned at the origin with no focus.
func NewSeat(name string) *Seat {
	return &Seat{Name: name}
}

// SetPosition moves the seat's pointer to an absolute position.
func (s *Seat) SetPosition(p geom.Point) {
	s.mu.Lock()
	s.Position = p
	s.mu.Unlock()
}

// GetPosition returns the seat's current pointer position.
func (s *Seat) GetPosition() geom.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Position
}

// SetOutput records which output currently hosts this seat, used by
// the connector lifecycle to find seats that need repositioning when
// their output disappears.
func (s *Seat) SetOutput(o *OutputNode) {
	s.mu.Lock()
	s.output = o
	s.mu.Unlock()
}

// Output returns the output this seat currently resides on, or nil.
func (s *Seat) Output() *OutputNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// SetPointerFocus records n as the node currently receiving pointer
// events from this seat.
func (s *Seat) SetPointerFocus(n Node) {
	s.mu.Lock()
	s.pointerFocus = n
	s.mu.Unlock()
}

// PointerFocus returns the node currently focused, or nil.
func (s *Seat) PointerFocus() Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerFocus
}

// SetKnownCursor records the seat's current cursor image name; nodes
// call this from PointerFocus (e.g. WorkspaceNode sets "default").
func (s *Seat) SetKnownCursor(name string) {
	s.mu.Lock()
	s.cursor = name
	s.mu.Unlock()
}

// KnownCursor returns the seat's current cursor image name.
func (s *Seat) KnownCursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// clearFocusIfFocused drops the seat's pointer/keyboard focus if it
// currently points at n, used when n becomes invisible or is destroyed.
func (s *Seat) clearFocusIfFocused(n Node) {
	s.mu.Lock()
	if s.pointerFocus == n {
		s.pointerFocus = nil
	}
	if s.keyboardFocus == n {
		s.keyboardFocus = nil
	}
	s.mu.Unlock()
}

// SeatState tracks, per node, which seats currently have it focused so
// that visibility changes and node destruction can retract focus
// cleanly. Grounded on the Rust NodeSeatState pattern referenced by
// tree/workspace.rs (set_visible/destroy_node both delegate to it).
type SeatState struct {
	mu    sync.Mutex
	seats map[*Seat]bool
}

// Enter records that seat now focuses the owning node.
func (s *SeatState) Enter(seat *Seat) {
	s.mu.Lock()
	if s.seats == nil {
		s.seats = make(map[*Seat]bool)
	}
	s.seats[seat] = true
	s.mu.Unlock()
}

// SetVisible propagates a visibility change to every seat that
// currently focuses n: becoming invisible retracts focus from every
// tracking seat (a hidden node cannot remain the focus target).
func (s *SeatState) SetVisible(n Node, visible bool) {
	if visible {
		return
	}
	s.mu.Lock()
	seats := make([]*Seat, 0, len(s.seats))
	for seat := range s.seats {
		seats = append(seats, seat)
	}
	s.mu.Unlock()
	for _, seat := range seats {
		seat.clearFocusIfFocused(n)
	}
}

// DestroyNode retracts focus from every seat tracking n and releases
// the bookkeeping, called from DestroyNode(detach).
func (s *SeatState) DestroyNode(n Node) {
	s.mu.Lock()
	seats := make([]*Seat, 0, len(s.seats))
	for seat := range s.seats {
		seats = append(seats, seat)
	}
	s.seats = nil
	s.mu.Unlock()
	for _, seat := range seats {
		seat.clearFocusIfFocused(n)
	}
}
