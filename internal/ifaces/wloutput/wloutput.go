// Package wloutput implements wl_output: the per-connector global
// clients bind to learn geometry/mode/scale. The connector lifecycle
// state machine in internal/backend owns the underlying
// scene.OutputNode this wraps; this package only turns its current
// state into the wl_output event burst a newly-bound client expects.
package wloutput

import (
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/scene"
	"github.com/jaywm/jayd/internal/wire"
)

const InterfaceName = "wl_output"

const (
	RequestRelease wire.Opcode = 0

	eventGeometry wire.Opcode = 0
	eventMode     wire.Opcode = 1
	eventDone     wire.Opcode = 2
	eventScale    wire.Opcode = 3
)

// ModeCurrent mirrors wl_output.mode's "current" flag bit.
const ModeCurrent uint32 = 0x1

// SubpixelUnknown and TransformNormal are the only subpixel/transform
// values this compositor core ever reports.
const (
	SubpixelUnknown uint32 = 0
	TransformNormal uint32 = 0
)

// Output is a client's handle on one scene.OutputNode.
type Output struct {
	ifaces.Base
	Node *scene.OutputNode
}

func (o *Output) NumRequests() uint32 { return 1 }
func (o *Output) BreakLoops()         { o.Node = nil }

// Info carries the hardware-description fields wl_output.geometry and
// wl_output.mode report, sourced from the connector's
// backend.MonitorInfo by the caller (internal/backend owns that type;
// this package stays free of a dependency on it).
type Info struct {
	WidthMM, HeightMM int32
	Make, Model       string
	ModeWidth         int32
	ModeHeight        int32
	RefreshMilliHz    int32
	Scale             int32
}

func init() {
	object.Register(&object.InterfaceTable{
		Name: InterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			RequestRelease: handleRelease,
		},
	})
}

// Bind constructs a wl_output object for node at id, sends it the
// geometry/mode/scale/done burst describing node's current state, and
// adds it to client's object table. No wl_registry factory is
// registered for wl_output: internal/backend inserts one wl_output
// global per connector but registers no factory for it, so a client's
// wl_registry.bind of that global fails and Bind is reached only by
// direct calls.
func Bind(client *object.Client, node *scene.OutputNode, id wire.ObjectID, version uint32, info Info) (*Output, error) {
	o := &Output{Base: ifaces.NewBase(id, InterfaceName, version), Node: node}
	rect := node.AbsolutePosition()

	geom := wire.NewEncoder(32)
	geom.PutInt32(int32(rect.X))
	geom.PutInt32(int32(rect.Y))
	geom.PutInt32(info.WidthMM)
	geom.PutInt32(info.HeightMM)
	geom.PutInt32(int32(SubpixelUnknown))
	geom.PutString(info.Make)
	geom.PutString(info.Model)
	geom.PutInt32(int32(TransformNormal))
	ifaces.SendEvent(client, id, eventGeometry, geom.Bytes())

	mode := wire.NewEncoder(16)
	mode.PutUint32(ModeCurrent)
	mode.PutInt32(info.ModeWidth)
	mode.PutInt32(info.ModeHeight)
	mode.PutInt32(info.RefreshMilliHz)
	ifaces.SendEvent(client, id, eventMode, mode.Bytes())

	scale := wire.NewEncoder(4)
	scale.PutInt32(info.Scale)
	ifaces.SendEvent(client, id, eventScale, scale.Bytes())

	ifaces.SendEvent(client, id, eventDone, nil)
	return o, client.AddClientObj(o)
}

func handleRelease(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}
