// Package primaryselection implements zwp_primary_selection_device_manager_v1,
// zwp_primary_selection_device_v1, and zwp_primary_selection_source_v1:
// the clipboard-like selection-offer protocol named in SPEC_FULL.md §10
// as a supplemented feature. It is the dispatch core's second worked
// example of a singleton global with its own break_loops discipline,
// structurally different from xdg_wm_base/xdg_surface: here the cycle
// is one-directional (Device strongly refs the active Source) and the
// interesting edge case is destroy-while-offered rather than
// destroy-while-children-alive.
package primaryselection

import (
	"sync"

	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
)

const (
	ManagerInterfaceName = "zwp_primary_selection_device_manager_v1"
	DeviceInterfaceName  = "zwp_primary_selection_device_v1"
	SourceInterfaceName  = "zwp_primary_selection_source_v1"
)

const (
	ManagerRequestCreateSource wire.Opcode = 0
	ManagerRequestGetDevice    wire.Opcode = 1
	ManagerRequestDestroy      wire.Opcode = 2

	DeviceRequestSetSelection wire.Opcode = 0
	DeviceRequestDestroy      wire.Opcode = 1

	SourceRequestOffer   wire.Opcode = 0
	SourceRequestDestroy wire.Opcode = 1

	deviceEventSelection wire.Opcode = 1
	sourceEventCancelled wire.Opcode = 1
)

// Manager is the global factory for Device and Source objects.
type Manager struct {
	ifaces.Base
}

func (m *Manager) NumRequests() uint32 { return 3 }
func (m *Manager) BreakLoops()         {}

// Device is one client's view of the primary selection. set_selection
// installs a Source as the active offer; a second call, or the active
// Source being destroyed first, both replace/clear it.
type Device struct {
	ifaces.Base

	mu     sync.Mutex
	active *Source
}

func (d *Device) NumRequests() uint32 { return 2 }

// BreakLoops drops the strong reference to the active source, the
// device half of this package's reference-cycle pair (spec.md §4.4).
func (d *Device) BreakLoops() {
	d.mu.Lock()
	d.active = nil
	d.mu.Unlock()
}

// Source is one client-offered selection: a set of MIME types the
// client is willing to serve, plus the device that currently has it
// active (if any), so destroying the source while it is the active
// selection can clear the device's reference instead of leaving a
// dangling pointer.
type Source struct {
	ifaces.Base

	mu        sync.Mutex
	mimeTypes []string
	device    *Device
}

func (s *Source) NumRequests() uint32 { return 2 }

// BreakLoops clears the back-reference to the owning device, mirroring
// Device.BreakLoops on the other side of the pair.
func (s *Source) BreakLoops() {
	s.mu.Lock()
	s.device = nil
	s.mu.Unlock()
}

func init() {
	object.Register(&object.InterfaceTable{
		Name: ManagerInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			ManagerRequestCreateSource: handleCreateSource,
			ManagerRequestGetDevice:    handleGetDevice,
			ManagerRequestDestroy:      handleManagerDestroy,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: DeviceInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			DeviceRequestSetSelection: handleSetSelection,
			DeviceRequestDestroy:      handleDeviceDestroy,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: SourceInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			SourceRequestOffer:   handleOffer,
			SourceRequestDestroy: handleSourceDestroy,
		},
	})
	ifaces.RegisterFactory(ManagerInterfaceName, func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error) {
		return &Manager{Base: ifaces.NewBase(id, ManagerInterfaceName, version)}, nil
	})
}

func handleCreateSource(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Source{Base: ifaces.NewBase(newID, SourceInterfaceName, obj.Version())})
}

func handleGetDevice(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	if _, err := args.Object(); err != nil { // seat
		return err
	}
	return client.AddClientObj(&Device{Base: ifaces.NewBase(newID, DeviceInterfaceName, obj.Version())})
}

func handleManagerDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

// handleSetSelection installs the given source (or clears the
// selection if the argument is the null object id) as d's active
// offer, cancelling whatever source previously held it.
func handleSetSelection(obj object.Object, client *object.Client, args *wire.Decoder) error {
	d := obj.(*Device)
	srcID, err := args.Object()
	if err != nil {
		return err
	}
	if _, err := args.Uint32(); err != nil { // serial
		return err
	}

	var src *Source
	if srcID != 0 {
		srcObj, err := client.Lookup(srcID, SourceInterfaceName)
		if err != nil {
			return err
		}
		src = srcObj.(*Source)
	}

	d.mu.Lock()
	prev := d.active
	d.active = src
	d.mu.Unlock()
	if src != nil {
		src.mu.Lock()
		src.device = d
		src.mu.Unlock()
	}
	if prev != nil && prev != src {
		cancelSource(client, prev)
	}
	// Real zwp_primary_selection offers a fresh data_offer object here
	// so the client can pull MIME types and request the data; this
	// compositor core tracks offer/selection state but never performs
	// the data transfer itself (spec.md §1 Non-goals), so selection is
	// announced directly without a data_offer round-trip.
	ifaces.SendEvent(client, d.ID(), deviceEventSelection, nil)
	return nil
}

// cancelSource sends zwp_primary_selection_source_v1.cancelled and
// clears the source's back-reference to its former device; called when
// a later set_selection replaces the source as the active offer.
func cancelSource(client *object.Client, s *Source) {
	s.mu.Lock()
	s.device = nil
	s.mu.Unlock()
	ifaces.SendEvent(client, s.ID(), sourceEventCancelled, nil)
}

func handleDeviceDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleOffer(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Source)
	mime, err := args.String()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mimeTypes = append(s.mimeTypes, mime)
	s.mu.Unlock()
	return nil
}

// handleSourceDestroy removes s from the client's table. If s is the
// active selection on a device, that device's reference to it is cleared
// too, so the device never keeps a destroyed source as its offer.
func handleSourceDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Source)
	s.mu.Lock()
	d := s.device
	s.device = nil
	s.mu.Unlock()
	if d != nil {
		d.mu.Lock()
		if d.active == s {
			d.active = nil
		}
		d.mu.Unlock()
	}
	return client.RemoveObj(obj)
}
