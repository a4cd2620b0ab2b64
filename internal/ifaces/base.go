// Package ifaces is the home for every concrete protocol interface the
// dispatch core (internal/object) hosts: wl_display, wl_registry,
// wl_compositor, wl_shm, xdg-shell, the primary-selection globals,
// wl_seat, wl_output. Each sub-package registers its InterfaceTable in
// an init() and is otherwise independent of its siblings — the way
// spec.md §4.4 describes interface registration as declarative and
// name-agnostic at the core.
//
// Base provides the id/interface/version bookkeeping every concrete
// object needs so individual interfaces only implement their own
// requests and BreakLoops.
package ifaces

import (
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

// Base is embedded by every concrete protocol object in this tree.
type Base struct {
	id      wire.ObjectID
	iface   string
	version uint32
}

// NewBase returns a Base for a freshly bound object.
func NewBase(id wire.ObjectID, iface string, version uint32) Base {
	return Base{id: id, iface: iface, version: version}
}

func (b *Base) ID() wire.ObjectID { return b.id }
func (b *Base) Interface() string { return b.iface }
func (b *Base) Version() uint32   { return b.version }

// SendEvent encodes and enqueues one outgoing event addressed to id,
// preserving the handler-enqueue order the dispatch core promises
// (spec.md §4.4 "events ... emitted strictly in the order the handlers
// enqueue them").
func SendEvent(client *object.Client, id wire.ObjectID, opcode wire.Opcode, args []byte) {
	raw, err := wire.Encode(id, opcode, args)
	if err != nil {
		return
	}
	client.Enqueue(raw)
}

// FactoryFunc constructs a bound protocol object for a wl_registry.bind
// request, for an interface that advertises a Global. The returned
// object is not yet inserted into client's table; the registry handler
// does that uniformly for every interface.
type FactoryFunc func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error)

var factories = map[string]FactoryFunc{}

// RegisterFactory associates iface with the constructor used to
// instantiate the target object when a client's wl_registry.bind
// request for that interface is validated (spec.md §4.5 "the global's
// factory instantiates the target object into the client's object
// table"). Called from each interface package's init().
func RegisterFactory(iface string, fn FactoryFunc) {
	factories[iface] = fn
}

// Factory returns the registered constructor for iface, if any.
func Factory(iface string) (FactoryFunc, bool) {
	fn, ok := factories[iface]
	return fn, ok
}
