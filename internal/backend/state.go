package backend

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jaywm/jayd/internal/async"
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/scene"
)

// Configurator is the hot-swappable policy hook spec.md §6 describes:
// the core calls it, it never interprets policy. A nil Configurator
// (the default — no config file loaded) means these calls are simply
// skipped.
type Configurator interface {
	NewConnector(id ConnectorID)
	DelConnector(id ConnectorID)
	ConnectorConnected(id ConnectorID)
	ConnectorDisconnected(id ConnectorID)
}

// ConnectorData is the per-connector bookkeeping the handler task and
// the rest of the compositor share, grounded on the Rust ConnectorData
// struct in tasks/connector.rs.
type ConnectorData struct {
	Connector Connector
	Name      string
	Connected bool

	// signal is the Go-idiomatic stand-in for the Rust original's
	// AsyncEvent: a capacity-1 channel the OnChange callback sends to
	// (coalescing concurrent triggers) and the handler goroutine
	// receives from to wake up, edge-triggered with no polling.
	signal chan struct{}
}

// OutputData records which scene node (if any) and monitor info a live
// connector currently corresponds to. Non-desktop connectors have a nil
// Node.
type OutputData struct {
	Connector   Connector
	MonitorInfo MonitorInfo
	Node        *scene.OutputNode
}

// State is the explicit context threaded into every task and handler.
// It is shared by pointer and carries no reference count; no hidden
// process-wide singleton stands in for it (spec.md §9).
type State struct {
	Engine      *async.Engine
	Globals     *globals.Registry
	Root        *scene.DisplayNode
	Persistent  *PersistentStateStore
	DummyOutput *scene.OutputNode

	// Config is read with Config() under mu so a live reload
	// (internal/config) can swap it out without the lifecycle handler
	// observing a torn value mid-read.
	mu       sync.RWMutex
	config   Configurator
	seats    map[string]*scene.Seat
	outputs  map[ConnectorID]*OutputData
	connData map[ConnectorID]*ConnectorData

	outputScalesMu sync.Mutex
	outputScales   map[float64]int

	// OnDamage is invoked whenever a change requires a repaint; cmd/jayd
	// wires it at startup to render the scene through the selected
	// internal/render renderer. Nil is a legal no-op default for
	// tests that only exercise the lifecycle logic.
	OnDamage func()

	// Log is the process-wide structured logger, threaded explicitly
	// rather than reached for as a package-level global anywhere but
	// its own default construction (spec.md §9: "no hidden
	// process-wide singletons except the logger").
	Log zerolog.Logger
}

// NewState returns a State whose dummy output exists but is not
// attached to the scene root — it is a staging parent for workspaces
// that have no connector yet, never part of the rendered tree, mirroring
// the Rust original's dummy_output living outside root.outputs.
func NewState(engine *async.Engine, reg *globals.Registry) *State {
	root := scene.NewDisplay()
	dummy := scene.NewDummyOutputNode()

	return &State{
		Engine:       engine,
		Globals:      reg,
		Root:         root,
		Persistent:   NewPersistentStateStore(),
		DummyOutput:  dummy,
		seats:        make(map[string]*scene.Seat),
		outputs:      make(map[ConnectorID]*OutputData),
		connData:     make(map[ConnectorID]*ConnectorData),
		outputScales: make(map[float64]int),
		Log:          zerolog.New(io.Discard).With().Timestamp().Logger(),
	}
}

// SetConfig installs the active Configurator, replacing any previous
// one; passing nil disables config callbacks.
func (s *State) SetConfig(c Configurator) {
	s.mu.Lock()
	s.config = c
	s.mu.Unlock()
}

// Config returns the currently installed Configurator, or nil.
func (s *State) Config() Configurator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// AddSeat registers a seat by name.
func (s *State) AddSeat(seat *scene.Seat) {
	s.mu.Lock()
	s.seats[seat.Name] = seat
	s.mu.Unlock()
}

// Seats returns a snapshot of every registered seat.
func (s *State) Seats() []*scene.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*scene.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		out = append(out, seat)
	}
	return out
}

// SetOutputData records the live connector/output association under
// id, or clears it when data is nil.
func (s *State) SetOutputData(id ConnectorID, data *OutputData) {
	s.mu.Lock()
	if data == nil {
		delete(s.outputs, id)
	} else {
		s.outputs[id] = data
	}
	s.mu.Unlock()
}

// OutputDataFor returns the output data registered for id, if any.
func (s *State) OutputDataFor(id ConnectorID) (*OutputData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.outputs[id]
	return d, ok
}

// SetConnectorData records per-connector handler bookkeeping, or clears
// it when data is nil.
func (s *State) SetConnectorData(id ConnectorID, data *ConnectorData) {
	s.mu.Lock()
	if data == nil {
		delete(s.connData, id)
	} else {
		s.connData[id] = data
	}
	s.mu.Unlock()
}

// AddOutputScale records that a live output is now rendering at scale,
// for the render backend's atlas-sizing decisions. RemoveOutputScale
// undoes it at teardown. Scoped to a simple refcount per distinct scale
// value, enough for the render boundary to know which scales are in
// use without the scene tree itself needing to expose every output's
// scale.
func (s *State) AddOutputScale(scale float64) {
	s.outputScalesMu.Lock()
	s.outputScales[scale]++
	s.outputScalesMu.Unlock()
}

// RemoveOutputScale is the inverse of AddOutputScale.
func (s *State) RemoveOutputScale(scale float64) {
	s.outputScalesMu.Lock()
	if s.outputScales[scale] > 0 {
		s.outputScales[scale]--
		if s.outputScales[scale] == 0 {
			delete(s.outputScales, scale)
		}
	}
	s.outputScalesMu.Unlock()
}

// TreeChanged signals a scene-tree structural change (output add/remove,
// workspace migration), which the render backend uses to schedule a
// repaint.
func (s *State) TreeChanged() {
	s.Root.TreeChanged()
}

// Damage schedules a repaint without any structural tree change (e.g.
// hardware-cursor swap).
func (s *State) Damage() {
	if s.OnDamage != nil {
		s.OnDamage()
	}
}
