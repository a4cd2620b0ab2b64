package xorg

import (
	"testing"

	"github.com/jaywm/jayd/internal/backend"
)

func TestConnectorReportsConnectedOnce(t *testing.T) {
	c := New()

	ev, ok := c.Event()
	if !ok {
		t.Fatal("expected one queued event")
	}
	if ev.Kind != backend.EventConnected {
		t.Fatalf("expected EventConnected, got %v", ev.Kind)
	}
	if ev.Monitor.InitialMode.Width != 1920 || ev.Monitor.InitialMode.Height != 1080 {
		t.Fatalf("unexpected initial mode: %+v", ev.Monitor.InitialMode)
	}

	if _, ok := c.Event(); ok {
		t.Fatal("expected no further events")
	}
}

func TestOnChangeFiresImmediately(t *testing.T) {
	c := New()
	called := false
	c.OnChange(func() { called = true })
	if !called {
		t.Fatal("expected OnChange to invoke its callback immediately")
	}
}

func TestHeadlessHasDistinctKernelID(t *testing.T) {
	c := NewHeadless()
	if c.KernelID() != "HEADLESS-1" {
		t.Fatalf("unexpected kernel id: %s", c.KernelID())
	}
	if _, ok := c.DRMDev(); ok {
		t.Fatal("headless connector should never report a DRM device")
	}
}
