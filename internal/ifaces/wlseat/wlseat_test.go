package wlseat

import (
	"testing"

	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

func bindSeat(t *testing.T, client *object.Client, id wire.ObjectID) *Seat {
	t.Helper()
	factory, ok := ifaces.Factory(SeatInterfaceName)
	if !ok {
		t.Fatal("no factory registered for wl_seat")
	}
	obj, err := factory(client, id, 7)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if err := client.AddClientObj(obj); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}
	return obj.(*Seat)
}

func TestBindAdvertisesPointerAndKeyboardCapabilities(t *testing.T) {
	client := object.NewClient()
	bindSeat(t, client, 2)

	queue := client.DrainQueue()
	if len(queue) != 2 {
		t.Fatalf("expected capabilities+name events, got %d", len(queue))
	}
}

func TestGetPointerAddsPointerObject(t *testing.T) {
	client := object.NewClient()
	seat := bindSeat(t, client, 2)
	client.DrainQueue()

	enc := wire.NewEncoder(4)
	enc.PutNewID(3)
	msg := &wire.Message{ObjectID: seat.ID(), Opcode: SeatRequestGetPointer, Args: enc.Bytes()}
	if err := client.Parse(seat, msg); err != nil {
		t.Fatalf("Parse(get_pointer): %v", err)
	}

	got, err := client.Lookup(3, PointerInterfaceName)
	if err != nil {
		t.Fatalf("Lookup(pointer): %v", err)
	}
	if got.Version() != seat.Version() {
		t.Fatalf("expected pointer to inherit seat version, got %d", got.Version())
	}
}

func TestPointerReleaseRemovesObject(t *testing.T) {
	client := object.NewClient()
	pointer := &Pointer{Base: ifaces.NewBase(5, PointerInterfaceName, 7)}
	if err := client.AddClientObj(pointer); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}

	msg := &wire.Message{ObjectID: 5, Opcode: PointerRequestRelease}
	if err := client.Parse(pointer, msg); err != nil {
		t.Fatalf("Parse(release): %v", err)
	}
	if _, err := client.Lookup(5, PointerInterfaceName); err == nil {
		t.Fatal("expected pointer object to be removed")
	}
}
