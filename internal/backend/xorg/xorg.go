// Package xorg implements the one backend.Connector wired at startup
// by cmd/jayd: a connector that reports a single always-connected
// monitor, with no hotplug support, the nested-X11 development story
// real Wayland compositors use before a DRM/KMS backend exists.
//
// Grounded on original_source/src/main.rs's XorgBackend::new(&state):
// a single connector reported once at startup and never disconnected.
// spec.md §1 treats the concrete X11/DRM byte-level transport as a
// black box, so this package does not open a real X11 socket; it is
// the thin stand-in Connector used to exercise internal/backend end to
// end (in cmd/jayd and in integration tests), sized the same way
// gogpu-gogpu/internal/platform/x11's Connection struct sizes a real
// connection's state (identity, geometry, one reported mode) without
// this package's idea of "X11" ever touching the wire.
package xorg

import "github.com/jaywm/jayd/internal/backend"

// Connector is a single always-present backend.Connector: one monitor,
// reported connected the moment Event is first polled, never
// disconnected or reconfigured for the lifetime of the process.
type Connector struct {
	id       backend.ConnectorID
	kernelID string
	monitor  backend.MonitorInfo

	reported bool
	cb       func()
}

// New returns a Connector describing the nested display this backend
// stands in for: a single 1920x1080 monitor, matching the mode a fresh
// Xephy/Xnest window opens with by default.
func New() *Connector {
	return &Connector{
		id:       1,
		kernelID: "XORG-1",
		monitor: backend.MonitorInfo{
			Manufacturer: "Xorg",
			Product:      "nested display",
			Modes:        []backend.Mode{{Width: 1920, Height: 1080, Refresh: 60000}},
			InitialMode:  backend.Mode{Width: 1920, Height: 1080, Refresh: 60000},
			WidthMM:      510,
			HeightMM:     287,
		},
	}
}

// NewHeadless returns a Connector reporting the same single synthetic
// monitor as New, for integration tests and CI runs where no nested
// display is meaningful at all — the two constructors differ only in
// the kernel id and product string they report, so logs can tell which
// backend a given run used.
func NewHeadless() *Connector {
	c := New()
	c.kernelID = "HEADLESS-1"
	c.monitor.Product = "headless"
	return c
}

func (c *Connector) ID() backend.ConnectorID { return c.id }
func (c *Connector) KernelID() string        { return c.kernelID }

// DRMDev never applies to this backend: there is no DRM device behind
// a nested display connection or a synthetic headless monitor.
func (c *Connector) DRMDev() (string, bool) { return "", false }

// Event reports EventConnected exactly once, then an empty queue
// forever — this backend has no hotplug source to poll.
func (c *Connector) Event() (backend.ConnectorEvent, bool) {
	if c.reported {
		return backend.ConnectorEvent{}, false
	}
	c.reported = true
	return backend.ConnectorEvent{Kind: backend.EventConnected, Monitor: c.monitor}, true
}

// OnChange records cb and invokes it once immediately, since Event
// already has its one event ready the first time it's polled.
func (c *Connector) OnChange(cb func()) {
	c.cb = cb
	if cb != nil {
		cb()
	}
}
