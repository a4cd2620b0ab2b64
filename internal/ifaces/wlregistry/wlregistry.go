// Package wlregistry implements wl_registry: one per client, created by
// wl_display.get_registry, advertising every global in the shared
// globals.Registry and validating bind requests against it (spec.md
// §4.5's bind flow).
package wlregistry

import (
	"unsafe"

	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
	"github.com/jaywm/jayd/internal/wlerrors"
)

const InterfaceName = "wl_registry"

const (
	RequestBind wire.Opcode = 0

	EventGlobal       wire.Opcode = 0
	EventGlobalRemove wire.Opcode = 1
)

// Registry is the server-side counterpart to every client's
// wl_registry object.
type Registry struct {
	ifaces.Base
	globals *globals.Registry
	owner   uintptr
}

// clientKey derives a stable identity for singleton-bind bookkeeping
// from the client's own pointer, avoiding a dependency from
// internal/globals on internal/object (see globals.clientKey's doc).
func clientKey(client *object.Client) uintptr {
	return uintptr(unsafe.Pointer(client))
}

// Bind constructs a wl_registry object at id, inserts it into client's
// table, and replays every currently live global as a wl_registry.global
// event — the same sequence a newly connected client would see if the
// registry had broadcast each insert before it connected.
func Bind(client *object.Client, reg *globals.Registry, id wire.ObjectID) error {
	r := &Registry{Base: ifaces.NewBase(id, InterfaceName, 1), globals: reg, owner: clientKey(client)}
	if err := client.AddClientObj(r); err != nil {
		return err
	}
	for _, g := range reg.Snapshot() {
		ifaces.SendEvent(client, id, EventGlobal, globals.EncodeGlobalEvent(g))
	}
	return nil
}

func (r *Registry) NumRequests() uint32 { return 1 }

// BreakLoops forgets this client's singleton-bind bookkeeping so the
// registry's per-client map does not grow unboundedly over the
// compositor's lifetime (spec.md §4.4 break_loops discipline — this
// object owns no reference-counted handles, only this bookkeeping
// entry, so clearing it is the whole of its break_loops contribution).
func (r *Registry) BreakLoops() {
	r.globals.ForgetClient(r.owner)
}

func init() {
	object.Register(&object.InterfaceTable{
		Name: InterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			RequestBind: handleBind,
		},
	})
}

func handleBind(obj object.Object, client *object.Client, args *wire.Decoder) error {
	r := obj.(*Registry)
	name, err := args.Uint32()
	if err != nil {
		return err
	}
	iface, err := args.String()
	if err != nil {
		return err
	}
	version, err := args.Uint32()
	if err != nil {
		return err
	}
	newID, err := args.NewID()
	if err != nil {
		return err
	}

	g, err := r.globals.Bind(r.owner, name, iface, version)
	if err != nil {
		client.ProtocolError(r.ID(), 0, err.Error())
		return err
	}
	factory, ok := ifaces.Factory(g.Interface)
	if !ok {
		client.ProtocolError(r.ID(), 0, "no factory registered for "+g.Interface)
		return &wlerrors.ProtocolError{ObjectID: uint32(r.ID()), Code: 0, Description: "no factory registered for " + g.Interface}
	}
	target, err := factory(client, newID, version)
	if err != nil {
		return err
	}
	return client.AddClientObj(target)
}
