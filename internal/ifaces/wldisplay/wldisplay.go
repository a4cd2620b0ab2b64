// Package wldisplay implements wl_display, the one object every client
// has bound at id 1 before it sends a single byte: it is never reached
// through wl_registry.bind (spec.md §4.5's factory flow does not apply
// here), so internal/transport constructs it directly on accept.
package wldisplay

import (
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/ifaces/wlregistry"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

const (
	RequestSync        wire.Opcode = 0
	RequestGetRegistry wire.Opcode = 1

	// EventError and EventDeleteID are wl_display's own events; Error is
	// also what internal/object.Client.ProtocolError encodes directly
	// (it has no Display value to call through, so it duplicates this
	// opcode constant — see object.displayEventError).
	EventError    wire.Opcode = 0
	EventDeleteID wire.Opcode = 1
)

const InterfaceName = "wl_display"

// callbackEventDone is wl_callback's only event.
const callbackEventDone wire.Opcode = 0

// ObjectID is always 1: wl_display is the one object whose id is fixed
// by the protocol rather than allocated by the client.
const ObjectID wire.ObjectID = 1

// Display is the root object of every client's object table.
type Display struct {
	ifaces.Base
	globals *globals.Registry
}

// Bind constructs object id 1 on client's table and returns it.
func Bind(client *object.Client, reg *globals.Registry) (*Display, error) {
	d := &Display{Base: ifaces.NewBase(ObjectID, InterfaceName, 1), globals: reg}
	if err := client.AddClientObj(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Display) NumRequests() uint32 { return 2 }
func (d *Display) BreakLoops()         {}

func init() {
	object.Register(&object.InterfaceTable{
		Name: InterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			RequestSync:        handleSync,
			RequestGetRegistry: handleGetRegistry,
		},
	})
}

func handleSync(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	enc := wire.NewEncoder(4)
	enc.PutUint32(0) // serial, unused by this compositor
	ifaces.SendEvent(client, newID, callbackEventDone, enc.Bytes())
	return nil
}

func handleGetRegistry(obj object.Object, client *object.Client, args *wire.Decoder) error {
	d := obj.(*Display)
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return wlregistry.Bind(client, d.globals, newID)
}
