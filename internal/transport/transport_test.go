//go:build linux

package transport

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaywm/jayd/internal/async"
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/ifaces/wlregistry"
	_ "github.com/jaywm/jayd/internal/ifaces/wlcompositor"
	"github.com/jaywm/jayd/internal/wire"
)

// TestGetRegistryReceivesBoundGlobal exercises the end-to-end path a
// real client takes on connect: wl_display is bound automatically,
// wl_display.get_registry is answered with wl_registry.global for
// every global already inserted, entirely through a real Unix socket.
func TestGetRegistryReceivesBoundGlobal(t *testing.T) {
	engine := async.New(256)
	reg := globals.New(func(*globals.Global, bool) {})
	reg.InsertNoBroadcast("wl_compositor", 4, true)

	sockPath := filepath.Join(t.TempDir(), "jayd-test.sock")
	a := &Acceptor{SocketPath: sockPath, Engine: engine, Globals: reg, Log: zerolog.Nop()}
	if err := a.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)
	go a.Serve(ctx)

	conn, err := net.Dial("unix", sockPath)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	enc := wire.NewEncoder(4)
	enc.PutNewID(2) // registry object id
	req, err := wire.Encode(1, 1, enc.Bytes())
	if err != nil {
		t.Fatalf("Encode(get_registry): %v", err)
	}
	if _, err := conn.Write(req); err != nil {
		t.Fatalf("Write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	dec := wire.NewDecoder(buf[:n])
	id, opcode, _, err := dec.DecodeHeader()
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if id != 2 || opcode != wlregistry.EventGlobal {
		t.Fatalf("expected wl_registry(2).global, got id=%d opcode=%d", id, opcode)
	}
}
