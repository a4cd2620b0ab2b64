package primaryselection

import (
	"testing"

	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

func newManager(t *testing.T, client *object.Client) *Manager {
	t.Helper()
	m := &Manager{Base: ifaces.NewBase(1, ManagerInterfaceName, 1)}
	if err := client.AddClientObj(m); err != nil {
		t.Fatalf("AddClientObj(manager): %v", err)
	}
	return m
}

func createSource(t *testing.T, client *object.Client, m *Manager, id wire.ObjectID) *Source {
	t.Helper()
	enc := wire.NewEncoder(4)
	enc.PutNewID(id)
	msg := &wire.Message{ObjectID: m.ID(), Opcode: ManagerRequestCreateSource, Args: enc.Bytes()}
	if err := client.Parse(m, msg); err != nil {
		t.Fatalf("Parse(create_source): %v", err)
	}
	obj, err := client.Lookup(id, SourceInterfaceName)
	if err != nil {
		t.Fatalf("Lookup(source): %v", err)
	}
	return obj.(*Source)
}

func getDevice(t *testing.T, client *object.Client, m *Manager, id wire.ObjectID) *Device {
	t.Helper()
	enc := wire.NewEncoder(8)
	enc.PutNewID(id)
	enc.PutObject(99) // seat, unused by this package
	msg := &wire.Message{ObjectID: m.ID(), Opcode: ManagerRequestGetDevice, Args: enc.Bytes()}
	if err := client.Parse(m, msg); err != nil {
		t.Fatalf("Parse(get_device): %v", err)
	}
	obj, err := client.Lookup(id, DeviceInterfaceName)
	if err != nil {
		t.Fatalf("Lookup(device): %v", err)
	}
	return obj.(*Device)
}

func setSelection(t *testing.T, client *object.Client, d *Device, srcID wire.ObjectID) {
	t.Helper()
	enc := wire.NewEncoder(8)
	enc.PutObject(srcID)
	enc.PutUint32(1) // serial
	msg := &wire.Message{ObjectID: d.ID(), Opcode: DeviceRequestSetSelection, Args: enc.Bytes()}
	if err := client.Parse(d, msg); err != nil {
		t.Fatalf("Parse(set_selection): %v", err)
	}
}

func TestSetSelectionReplacesActiveSourceAndCancelsPrevious(t *testing.T) {
	client := object.NewClient()
	m := newManager(t, client)
	src1 := createSource(t, client, m, 2)
	src2 := createSource(t, client, m, 3)
	dev := getDevice(t, client, m, 4)
	client.DrainQueue()

	setSelection(t, client, dev, src1.ID())
	if dev.active != src1 {
		t.Fatal("expected src1 to become the active selection")
	}
	events := client.DrainQueue()
	if len(events) != 1 {
		t.Fatalf("expected one selection event, got %d", len(events))
	}

	setSelection(t, client, dev, src2.ID())
	if dev.active != src2 {
		t.Fatal("expected src2 to become the active selection")
	}
	if src1.device != nil {
		t.Fatal("expected src1's device back-reference cleared on replacement")
	}
	events = client.DrainQueue()
	if len(events) != 2 {
		t.Fatalf("expected cancelled(src1)+selection(dev), got %d", len(events))
	}
}

func TestBreakLoopsClearsDeviceAndSourceCycle(t *testing.T) {
	client := object.NewClient()
	m := newManager(t, client)
	src := createSource(t, client, m, 2)
	dev := getDevice(t, client, m, 3)
	setSelection(t, client, dev, src.ID())
	client.DrainQueue()

	dev.BreakLoops()
	if dev.active != nil {
		t.Fatal("expected BreakLoops to clear the device's active source")
	}

	src.BreakLoops()
	if src.device != nil {
		t.Fatal("expected BreakLoops to clear the source's device back-reference")
	}
}

func TestDestroyRemovesSourceObject(t *testing.T) {
	client := object.NewClient()
	m := newManager(t, client)
	src := createSource(t, client, m, 2)

	msg := &wire.Message{ObjectID: src.ID(), Opcode: SourceRequestDestroy}
	if err := client.Parse(src, msg); err != nil {
		t.Fatalf("Parse(destroy): %v", err)
	}
	if _, err := client.Lookup(2, SourceInterfaceName); err == nil {
		t.Fatal("expected source object to be removed")
	}
}
