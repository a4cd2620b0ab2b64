package wloutput

import (
	"testing"

	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/scene"
	"github.com/jaywm/jayd/internal/wire"
)

func TestBindSendsGeometryModeScaleDoneBurst(t *testing.T) {
	client := object.NewClient()
	node := scene.NewOutputNode(scene.OutputIdentity{Connector: "DP-1"})
	node.ChangeExtents(geom.NewRect(100, 0, 1920, 1080))

	info := Info{
		WidthMM: 600, HeightMM: 340,
		Make: "jayd", Model: "virtual",
		ModeWidth: 1920, ModeHeight: 1080, RefreshMilliHz: 60000,
		Scale: 1,
	}

	out, err := Bind(client, node, 2, 4, info)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if out.Node != node {
		t.Fatal("expected Output to wrap the given node")
	}

	queue := client.DrainQueue()
	if len(queue) != 4 {
		t.Fatalf("expected geometry+mode+scale+done, got %d events", len(queue))
	}
}

func TestReleaseRemovesObject(t *testing.T) {
	client := object.NewClient()
	node := scene.NewOutputNode(scene.OutputIdentity{Connector: "DP-1"})
	out, err := Bind(client, node, 2, 4, Info{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	client.DrainQueue()

	msg := &wire.Message{ObjectID: 2, Opcode: RequestRelease}
	if err := client.Parse(out, msg); err != nil {
		t.Fatalf("Parse(release): %v", err)
	}
	if _, err := client.Lookup(2, InterfaceName); err == nil {
		t.Fatal("expected wl_output object to be removed")
	}
}
