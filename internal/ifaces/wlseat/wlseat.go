// Package wlseat implements wl_seat: the global a client binds to get
// at pointer/keyboard/touch input objects. Input routing itself lives
// in the scene/backend layers (spec.md §4.7's seat repositioning); this
// package only hands out the three capability objects wl_seat.
package wlseat

import (
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

const (
	SeatInterfaceName     = "wl_seat"
	PointerInterfaceName  = "wl_pointer"
	KeyboardInterfaceName = "wl_keyboard"
	TouchInterfaceName    = "wl_touch"
)

const (
	SeatRequestGetPointer  wire.Opcode = 0
	SeatRequestGetKeyboard wire.Opcode = 1
	SeatRequestGetTouch    wire.Opcode = 2
	SeatRequestRelease     wire.Opcode = 3

	PointerRequestSetCursor wire.Opcode = 0
	PointerRequestRelease   wire.Opcode = 1

	KeyboardRequestRelease wire.Opcode = 0
	TouchRequestRelease    wire.Opcode = 0

	seatEventCapabilities wire.Opcode = 0
	seatEventName         wire.Opcode = 1
)

// CapabilityPointer, CapabilityKeyboard, and CapabilityTouch mirror
// wl_seat.capability's bitmask values.
const (
	CapabilityPointer  uint32 = 1
	CapabilityKeyboard uint32 = 2
	CapabilityTouch    uint32 = 4
)

// Seat is a client's handle on the one input seat this compositor
// exposes; it always advertises pointer and keyboard capabilities.
type Seat struct {
	ifaces.Base
}

func (s *Seat) NumRequests() uint32 { return 4 }
func (s *Seat) BreakLoops()         {}

type Pointer struct{ ifaces.Base }

func (p *Pointer) NumRequests() uint32 { return 2 }
func (p *Pointer) BreakLoops()         {}

type Keyboard struct{ ifaces.Base }

func (k *Keyboard) NumRequests() uint32 { return 1 }
func (k *Keyboard) BreakLoops()         {}

type Touch struct{ ifaces.Base }

func (t *Touch) NumRequests() uint32 { return 1 }
func (t *Touch) BreakLoops()         {}

func init() {
	object.Register(&object.InterfaceTable{
		Name: SeatInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			SeatRequestGetPointer:  handleGetPointer,
			SeatRequestGetKeyboard: handleGetKeyboard,
			SeatRequestGetTouch:    handleGetTouch,
			SeatRequestRelease:     handleSeatRelease,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: PointerInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			PointerRequestSetCursor: handleNoop,
			PointerRequestRelease:   handleRelease,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: KeyboardInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			KeyboardRequestRelease: handleRelease,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: TouchInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			TouchRequestRelease: handleRelease,
		},
	})
	ifaces.RegisterFactory(SeatInterfaceName, func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error) {
		seat := &Seat{Base: ifaces.NewBase(id, SeatInterfaceName, version)}
		enc := wire.NewEncoder(4)
		enc.PutUint32(CapabilityPointer | CapabilityKeyboard)
		ifaces.SendEvent(client, id, seatEventCapabilities, enc.Bytes())
		enc2 := wire.NewEncoder(16)
		enc2.PutString("seat0")
		ifaces.SendEvent(client, id, seatEventName, enc2.Bytes())
		return seat, nil
	})
}

func handleGetPointer(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Pointer{Base: ifaces.NewBase(newID, PointerInterfaceName, obj.Version())})
}

func handleGetKeyboard(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Keyboard{Base: ifaces.NewBase(newID, KeyboardInterfaceName, obj.Version())})
}

func handleGetTouch(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Touch{Base: ifaces.NewBase(newID, TouchInterfaceName, obj.Version())})
}

func handleSeatRelease(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleRelease(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleNoop(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return nil
}
