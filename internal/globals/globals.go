// Package globals implements the server side of wl_registry: the
// monotonically-named global advertisement table every client's
// wl_registry object binds against, plus singleton-once-bind
// enforcement for globals like xdg_wm_base that may only be bound once
// per client.
//
// Inverted from the client-side Registry in
// gogpu-gogpu/internal/platform/wayland/registry.go: that type receives
// global/global_remove events and issues bind requests; this type is
// the other end of the same wire protocol, issuing global/global_remove
// events and validating incoming bind requests.
package globals

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jaywm/jayd/internal/wire"
)

var (
	// ErrUnknownGlobal is returned when a client tries to bind a name
	// that was never advertised or has since been removed.
	ErrUnknownGlobal = errors.New("globals: no global registered under that name")
	// ErrInterfaceMismatch is returned when the bind request's interface
	// does not match the global's advertised interface.
	ErrInterfaceMismatch = errors.New("globals: interface does not match the advertised global")
	// ErrVersionTooHigh is returned when the bind request asks for a
	// version greater than the global currently advertises.
	ErrVersionTooHigh = errors.New("globals: requested version exceeds advertised version")
	// ErrAlreadyBound is returned when a client attempts to bind a
	// singleton global (e.g. xdg_wm_base) a second time.
	ErrAlreadyBound = errors.New("globals: singleton global already bound by this client")
)

// Global is one entry in the registry: a name, an interface, and the
// highest version the compositor currently supports for it.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
	// Singleton marks globals that a well-behaved client binds at most
	// once (xdg_wm_base, wl_compositor, wl_shm, the seat and
	// primary-selection device managers).
	Singleton bool
}

// BroadcastFunc is invoked once per connected client whenever a global
// is inserted (broadcast) or removed, to emit the corresponding
// wl_registry.global / global_remove event.
type BroadcastFunc func(g *Global, removed bool)

// Registry is the compositor-wide table of advertised globals. One
// Registry is shared by every client; per-client bind bookkeeping lives
// in bound.
type Registry struct {
	mu        sync.Mutex
	nextName  uint32
	globals   map[uint32]*Global
	broadcast BroadcastFunc

	// bound tracks, per client identity, which singleton
	// interface names have already been bound, to reject a second bind.
	singletonMu sync.Mutex
	bound       map[clientKey]map[string]bool
}

// clientKey identifies a client for singleton-bind bookkeeping without
// the globals package depending on the object package (which would
// create an import cycle, since handlers in object-hosted interfaces
// call back into globals to bind).
type clientKey = uintptr

// New returns an empty Registry. broadcast is called for every insert
// and removal once a client has connected; it may be nil for tests that
// only exercise Bind/Insert directly.
func New(broadcast BroadcastFunc) *Registry {
	return &Registry{
		nextName: 1,
		globals:  make(map[uint32]*Global),
		bound:    make(map[clientKey]map[string]bool),
		broadcast: broadcast,
	}
}

// Insert allocates a new monotonic name, registers the global, and
// broadcasts a wl_registry.global event to every connected client.
func (r *Registry) Insert(iface string, version uint32, singleton bool) *Global {
	return r.insert(iface, version, singleton, true)
}

// InsertNoBroadcast registers a global without announcing it to already
// connected clients, used during initial compositor startup before any
// client has connected (there is nothing to broadcast to yet, and doing
// so would be a wasted allocation on the hot path).
func (r *Registry) InsertNoBroadcast(iface string, version uint32, singleton bool) *Global {
	return r.insert(iface, version, singleton, false)
}

func (r *Registry) insert(iface string, version uint32, singleton, doBroadcast bool) *Global {
	r.mu.Lock()
	name := r.nextName
	r.nextName++
	g := &Global{Name: name, Interface: iface, Version: version, Singleton: singleton}
	r.globals[name] = g
	r.mu.Unlock()

	if doBroadcast && r.broadcast != nil {
		r.broadcast(g, false)
	}
	return g
}

// Remove drops a global by name and broadcasts wl_registry.global_remove.
func (r *Registry) Remove(name uint32) {
	r.mu.Lock()
	g, ok := r.globals[name]
	if ok {
		delete(r.globals, name)
	}
	r.mu.Unlock()
	if ok && r.broadcast != nil {
		r.broadcast(g, true)
	}
}

// Snapshot returns every currently live global, for replaying
// wl_registry.global to a newly connected client.
func (r *Registry) Snapshot() []*Global {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Global, 0, len(r.globals))
	for _, g := range r.globals {
		out = append(out, g)
	}
	return out
}

// Bind validates a wl_registry.bind request: the name must exist, the
// requested interface must match, the requested version must not exceed
// what is advertised, and a singleton global must not already be bound
// by this client.
func (r *Registry) Bind(client clientKey, name uint32, iface string, version uint32) (*Global, error) {
	r.mu.Lock()
	g, ok := r.globals[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: name %d", ErrUnknownGlobal, name)
	}
	if g.Interface != iface {
		return nil, fmt.Errorf("%w: global %d is %s, not %s", ErrInterfaceMismatch, name, g.Interface, iface)
	}
	if version > g.Version {
		return nil, fmt.Errorf("%w: global %d supports up to %d, requested %d", ErrVersionTooHigh, name, g.Version, version)
	}
	if g.Singleton {
		r.singletonMu.Lock()
		set, ok := r.bound[client]
		if !ok {
			set = make(map[string]bool)
			r.bound[client] = set
		}
		if set[iface] {
			r.singletonMu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrAlreadyBound, iface)
		}
		set[iface] = true
		r.singletonMu.Unlock()
	}
	return g, nil
}

// ForgetClient drops a client's singleton-bind bookkeeping at
// disconnect, so the map does not grow unboundedly over the
// compositor's lifetime.
func (r *Registry) ForgetClient(client clientKey) {
	r.singletonMu.Lock()
	delete(r.bound, client)
	r.singletonMu.Unlock()
}

// EncodeGlobalEvent serializes a wl_registry.global event's arguments.
func EncodeGlobalEvent(g *Global) []byte {
	enc := wire.NewEncoder(32)
	enc.PutUint32(g.Name)
	enc.PutString(g.Interface)
	enc.PutUint32(g.Version)
	return enc.Bytes()
}

// EncodeGlobalRemoveEvent serializes a wl_registry.global_remove event's
// arguments.
func EncodeGlobalRemoveEvent(name uint32) []byte {
	enc := wire.NewEncoder(8)
	enc.PutUint32(name)
	return enc.Bytes()
}
