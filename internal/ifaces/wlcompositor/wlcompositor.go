// Package wlcompositor implements wl_compositor (the factory for
// wl_surface and wl_region) and wl_surface itself: the thin client-
// facing object every scene.SurfaceNode sits behind. Buffer attach and
// damage tracking are bookkeeping only — the actual pixel compositing
// they drive is internal/render's black-box job, not this package's
// (spec.md §1 Non-goals).
package wlcompositor

import (
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/scene"
	"github.com/jaywm/jayd/internal/wire"
)

const (
	CompositorInterfaceName = "wl_compositor"
	SurfaceInterfaceName    = "wl_surface"
	RegionInterfaceName     = "wl_region"
)

const (
	CompositorRequestCreateSurface wire.Opcode = 0
	CompositorRequestCreateRegion  wire.Opcode = 1

	SurfaceRequestDestroy             wire.Opcode = 0
	SurfaceRequestAttach              wire.Opcode = 1
	SurfaceRequestDamage              wire.Opcode = 2
	SurfaceRequestFrame               wire.Opcode = 3
	SurfaceRequestSetOpaqueRegion     wire.Opcode = 4
	SurfaceRequestSetInputRegion      wire.Opcode = 5
	SurfaceRequestCommit              wire.Opcode = 6

	RegionRequestDestroy   wire.Opcode = 0
	RegionRequestAdd       wire.Opcode = 1
	RegionRequestSubtract  wire.Opcode = 2

	surfaceEventEnter wire.Opcode = 0
	surfaceEventLeave wire.Opcode = 1
	callbackEventDone wire.Opcode = 0
)

// Compositor is the wl_compositor global object, one per client.
type Compositor struct {
	ifaces.Base
}

func (c *Compositor) NumRequests() uint32 { return 2 }
func (c *Compositor) BreakLoops()         {}

// Surface wraps a scene.SurfaceNode with the client-facing wl_surface
// protocol object. Attach/damage only stage the pending buffer state;
// Commit is where it would become visible to a real renderer.
type Surface struct {
	ifaces.Base
	Node *scene.SurfaceNode

	pendingBufferSet bool
	pendingX, pendingY int32
}

func (s *Surface) NumRequests() uint32 { return 7 }
func (s *Surface) BreakLoops()         {}

// Region is the wl_region accumulator: a client builds up a clip/input
// region from rectangles before handing it to set_opaque_region /
// set_input_region. The actual clip shape is out of scope here; only
// request bookkeeping is implemented.
type Region struct {
	ifaces.Base
}

func (r *Region) NumRequests() uint32 { return 3 }
func (r *Region) BreakLoops()         {}

func init() {
	object.Register(&object.InterfaceTable{
		Name: CompositorInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			CompositorRequestCreateSurface: handleCreateSurface,
			CompositorRequestCreateRegion:  handleCreateRegion,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: SurfaceInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			SurfaceRequestDestroy:         handleSurfaceDestroy,
			SurfaceRequestAttach:          handleSurfaceAttach,
			SurfaceRequestDamage:          handleSurfaceNoop,
			SurfaceRequestFrame:           handleSurfaceFrame,
			SurfaceRequestSetOpaqueRegion: handleSurfaceNoop,
			SurfaceRequestSetInputRegion:  handleSurfaceNoop,
			SurfaceRequestCommit:          handleSurfaceCommit,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: RegionInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			RegionRequestDestroy:  handleRegionDestroy,
			RegionRequestAdd:      handleRegionNoop,
			RegionRequestSubtract: handleRegionNoop,
		},
	})
	ifaces.RegisterFactory(CompositorInterfaceName, func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error) {
		return &Compositor{Base: ifaces.NewBase(id, CompositorInterfaceName, version)}, nil
	})
}

func handleCreateSurface(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	surf := &Surface{Base: ifaces.NewBase(newID, SurfaceInterfaceName, obj.Version()), Node: scene.NewSurface()}
	return client.AddClientObj(surf)
}

func handleCreateRegion(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Region{Base: ifaces.NewBase(newID, RegionInterfaceName, obj.Version())})
}

func handleSurfaceDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	s.Node.DestroyNode(true)
	return client.RemoveObj(s)
}

func handleSurfaceAttach(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	// buffer is a nullable object-id; x, y are signed integers.
	if _, err := args.Object(); err != nil {
		return err
	}
	x, err := args.Int32()
	if err != nil {
		return err
	}
	y, err := args.Int32()
	if err != nil {
		return err
	}
	s.pendingBufferSet = true
	s.pendingX, s.pendingY = x, y
	return nil
}

func handleSurfaceFrame(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	enc := wire.NewEncoder(4)
	enc.PutUint32(0)
	ifaces.SendEvent(client, newID, callbackEventDone, enc.Bytes())
	return nil
}

func handleSurfaceCommit(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	s.pendingBufferSet = false
	return nil
}

func handleSurfaceNoop(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return nil
}

func handleRegionDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleRegionNoop(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return nil
}
