package globals

import (
	"errors"
	"testing"
)

func TestInsertAllocatesMonotonicNames(t *testing.T) {
	r := New(nil)
	g1 := r.InsertNoBroadcast("wl_compositor", 5, true)
	g2 := r.InsertNoBroadcast("wl_shm", 1, true)
	if g1.Name == g2.Name {
		t.Fatalf("expected distinct names, got %d and %d", g1.Name, g2.Name)
	}
	if g2.Name != g1.Name+1 {
		t.Fatalf("expected monotonic allocation, got %d then %d", g1.Name, g2.Name)
	}
}

func TestInsertBroadcastsToConnectedClients(t *testing.T) {
	var seen []*Global
	r := New(func(g *Global, removed bool) {
		if !removed {
			seen = append(seen, g)
		}
	})
	r.Insert("xdg_wm_base", 3, true)
	if len(seen) != 1 || seen[0].Interface != "xdg_wm_base" {
		t.Fatalf("expected broadcast on Insert, got %+v", seen)
	}
}

func TestBindUnknownName(t *testing.T) {
	r := New(nil)
	if _, err := r.Bind(1, 99, "wl_compositor", 1); !errors.Is(err, ErrUnknownGlobal) {
		t.Fatalf("expected ErrUnknownGlobal, got %v", err)
	}
}

func TestBindInterfaceMismatch(t *testing.T) {
	r := New(nil)
	g := r.InsertNoBroadcast("wl_compositor", 5, false)
	if _, err := r.Bind(1, g.Name, "wl_shm", 1); !errors.Is(err, ErrInterfaceMismatch) {
		t.Fatalf("expected ErrInterfaceMismatch, got %v", err)
	}
}

func TestBindVersionTooHigh(t *testing.T) {
	r := New(nil)
	g := r.InsertNoBroadcast("wl_compositor", 4, false)
	if _, err := r.Bind(1, g.Name, "wl_compositor", 5); !errors.Is(err, ErrVersionTooHigh) {
		t.Fatalf("expected ErrVersionTooHigh, got %v", err)
	}
}

func TestBindSingletonRejectsSecondBindFromSameClient(t *testing.T) {
	r := New(nil)
	g := r.InsertNoBroadcast("xdg_wm_base", 3, true)
	if _, err := r.Bind(1, g.Name, "xdg_wm_base", 3); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if _, err := r.Bind(1, g.Name, "xdg_wm_base", 3); !errors.Is(err, ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
}

func TestBindSingletonAllowsDifferentClients(t *testing.T) {
	r := New(nil)
	g := r.InsertNoBroadcast("xdg_wm_base", 3, true)
	if _, err := r.Bind(1, g.Name, "xdg_wm_base", 3); err != nil {
		t.Fatalf("client 1 bind: %v", err)
	}
	if _, err := r.Bind(2, g.Name, "xdg_wm_base", 3); err != nil {
		t.Fatalf("client 2 bind should succeed independently: %v", err)
	}
}

func TestRemoveBroadcastsRemoval(t *testing.T) {
	var removedNames []uint32
	r := New(func(g *Global, removed bool) {
		if removed {
			removedNames = append(removedNames, g.Name)
		}
	})
	g := r.Insert("wl_output", 1, false)
	r.Remove(g.Name)
	if len(removedNames) != 1 || removedNames[0] != g.Name {
		t.Fatalf("expected removal broadcast for name %d, got %v", g.Name, removedNames)
	}
}

func TestForgetClientClearsSingletonBookkeeping(t *testing.T) {
	r := New(nil)
	g := r.InsertNoBroadcast("xdg_wm_base", 3, true)
	if _, err := r.Bind(1, g.Name, "xdg_wm_base", 3); err != nil {
		t.Fatalf("bind: %v", err)
	}
	r.ForgetClient(1)
	if _, err := r.Bind(1, g.Name, "xdg_wm_base", 3); err != nil {
		t.Fatalf("expected rebind to succeed after ForgetClient, got %v", err)
	}
}

func TestSnapshotReflectsLiveGlobals(t *testing.T) {
	r := New(nil)
	r.InsertNoBroadcast("wl_compositor", 5, true)
	r.InsertNoBroadcast("wl_shm", 1, true)
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 globals, got %d", len(snap))
	}
}
