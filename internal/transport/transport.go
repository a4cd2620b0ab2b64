//go:build linux

// Package transport implements the Unix socket acceptor that turns
// accepted connections into internal/object.Client instances driven by
// internal/ifaces. It is the server-side mirror of gogpu-gogpu's
// internal/platform/wayland/display.go: the same
// Sendmsg/Recvmsg/ParseSocketControlMessage/UnixRights sequence for
// SCM_RIGHTS file-descriptor passing, inverted from "dial out to a
// compositor" to "accept a client and keep reading until it hangs up or
// a protocol error latches."
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/jaywm/jayd/internal/async"
	"github.com/jaywm/jayd/internal/globals"
	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/ifaces/wldisplay"
	"github.com/jaywm/jayd/internal/ifaces/wlregistry"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
	"github.com/jaywm/jayd/internal/wlerrors"
)

const (
	maxMessageBytes = 64 * 1024
	oobBufferBytes  = 512
)

// Acceptor listens on a Unix socket and spawns one reader goroutine per
// accepted client, each of which hands every protocol mutation to
// Engine via Engine.Do so state is only ever touched from the single
// dispatch goroutine (spec.md §5).
type Acceptor struct {
	SocketPath string
	Engine     *async.Engine
	Globals    *globals.Registry
	Log        zerolog.Logger

	// OnClientClosed, if set, is invoked on the engine's goroutine after
	// a client disconnects and its break_loops pass has run.
	OnClientClosed func(*object.Client)

	listener *net.UnixListener

	clientsMu sync.Mutex
	clients   map[*object.Client]int
}

// Listen binds the Unix socket at a.SocketPath, removing a stale socket
// file left behind by a previous crashed run first (the same
// bind-after-unlink idiom any long-running Unix-domain server uses).
func (a *Acceptor) Listen() error {
	_ = os.Remove(a.SocketPath)
	addr, err := net.ResolveUnixAddr("unix", a.SocketPath)
	if err != nil {
		return fmt.Errorf("transport: resolve %s: %w", a.SocketPath, err)
	}
	l, err := net.ListenUnix("unix", addr)
	if err != nil {
		return fmt.Errorf("transport: listen %s: %w", a.SocketPath, err)
	}
	a.listener = l
	return nil
}

// Close stops accepting new connections and removes the socket file.
func (a *Acceptor) Close() error {
	if a.listener == nil {
		return nil
	}
	err := a.listener.Close()
	_ = os.Remove(a.SocketPath)
	return err
}

// Serve accepts connections until ctx is canceled or the listener is
// closed. Each accepted connection runs its own blocking read loop on a
// dedicated goroutine; Serve itself never blocks on a client.
func (a *Acceptor) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = a.Close()
	}()

	for {
		conn, err := a.listener.AcceptUnix()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("transport: accept: %w", err)
		}
		go a.serveConn(conn)
	}
}

// serveConn owns one client connection end to end: it decodes the wire
// stream, dispatches each parsed message on the engine, and flushes
// queued events back out after every engine round-trip.
func (a *Acceptor) serveConn(conn *net.UnixConn) {
	file, err := conn.File()
	if err != nil {
		a.Log.Error().Err(err).Msg("transport: failed to get socket file")
		_ = conn.Close()
		return
	}
	fd := int(file.Fd())

	client := object.NewClient()
	client.OnProtocolError = func(pe *wlerrors.ProtocolError) {
		a.Log.Warn().Str("error", pe.Error()).Msg("transport: protocol error, closing client")
	}

	a.Engine.Do(func() {
		if _, err := wldisplay.Bind(client, a.Globals); err != nil {
			a.Log.Error().Err(err).Msg("transport: failed to bind wl_display")
		}
	})

	a.trackClient(client, fd)
	defer a.untrackClient(client)

	readBuf := make([]byte, 0, maxMessageBytes)
	chunk := make([]byte, maxMessageBytes)

	defer func() {
		a.Engine.Do(func() {
			client.Destroy()
			if a.OnClientClosed != nil {
				a.OnClientClosed(client)
			}
		})
		_ = file.Close()
		_ = conn.Close()
	}()

	for {
		oob := make([]byte, oobBufferBytes)
		n, oobn, _, _, err := unix.Recvmsg(fd, chunk, oob, 0)
		if err != nil {
			if !errors.Is(err, unix.EINTR) {
				return
			}
			continue
		}
		if n == 0 {
			return
		}

		fds, err := parseFileDescriptors(oob[:oobn])
		if err != nil {
			a.Log.Warn().Err(err).Msg("transport: failed to parse ancillary fds")
			return
		}

		readBuf = append(readBuf, chunk[:n]...)
		readBuf = a.drainMessages(client, readBuf, fds)
		a.flush(fd, client)

		if client.Destroyed() {
			return
		}
	}
}

// drainMessages decodes and dispatches every complete message currently
// buffered, returning whatever trailing partial message remains for
// the next read.
func (a *Acceptor) drainMessages(client *object.Client, buf []byte, fds []int) []byte {
	for {
		if len(buf) < 8 {
			return buf
		}
		dec := wire.NewDecoder(buf)
		id, opcode, size, err := dec.DecodeHeader()
		if err != nil {
			a.Log.Warn().Err(err).Msg("transport: malformed message header")
			a.Engine.Do(func() {
				client.ProtocolError(id, 0, err.Error())
			})
			return nil
		}
		if len(buf) < size {
			return buf
		}

		msg := &wire.Message{ObjectID: id, Opcode: opcode, Args: buf[8:size], FDs: fds}
		fds = nil // each recvmsg's fds belong to the first message that consumes them
		buf = buf[size:]

		a.Engine.Do(func() {
			a.dispatch(client, msg)
		})
		if client.Destroyed() {
			return nil
		}
	}
}

// dispatch looks up the target object and routes the message through
// Client.Parse, converting an unknown object id into the same
// invalid_object protocol error a real compositor reports.
func (a *Acceptor) dispatch(client *object.Client, msg *wire.Message) {
	obj, err := client.LookupAny(msg.ObjectID)
	if err != nil {
		client.ProtocolError(msg.ObjectID, 0, fmt.Sprintf("no such object %d", msg.ObjectID))
		return
	}
	if err := client.Parse(obj, msg); err != nil {
		a.Log.Debug().Err(err).Uint32("object", uint32(msg.ObjectID)).Msg("transport: request handler error")
	}
}

// flush writes every event queued by the handlers just run back out to
// the client, via Sendmsg so a future handler that queues outgoing fds
// (e.g. a data transfer completion) is already plumbed through.
func (a *Acceptor) flush(fd int, client *object.Client) {
	for _, raw := range client.DrainQueue() {
		if err := unix.Sendmsg(fd, raw, nil, nil, 0); err != nil {
			a.Log.Warn().Err(err).Msg("transport: sendmsg failed")
			return
		}
	}
}

func (a *Acceptor) trackClient(client *object.Client, fd int) {
	a.clientsMu.Lock()
	if a.clients == nil {
		a.clients = make(map[*object.Client]int)
	}
	a.clients[client] = fd
	a.clientsMu.Unlock()
}

func (a *Acceptor) untrackClient(client *object.Client) {
	a.clientsMu.Lock()
	delete(a.clients, client)
	a.clientsMu.Unlock()
}

// Broadcast sends a wl_registry.global or wl_registry.global_remove
// event to every connected client's wl_registry object, mirroring
// globals.BroadcastFunc's contract. Pass Broadcast to globals.New so
// hotplugged globals (wl_output, inserted/removed by internal/backend's
// connector handler) reach clients that bound their registry before
// the connector appeared.
func (a *Acceptor) Broadcast(g *globals.Global, removed bool) {
	a.clientsMu.Lock()
	snapshot := make(map[*object.Client]int, len(a.clients))
	for c, fd := range a.clients {
		snapshot[c] = fd
	}
	a.clientsMu.Unlock()

	for client, fd := range snapshot {
		a.Engine.Do(func() {
			for _, obj := range client.InterfaceObjects(wlregistry.InterfaceName) {
				reg := obj.(*wlregistry.Registry)
				if removed {
					ifaces.SendEvent(client, reg.ID(), wlregistry.EventGlobalRemove, globals.EncodeGlobalRemoveEvent(g.Name))
				} else {
					ifaces.SendEvent(client, reg.ID(), wlregistry.EventGlobal, globals.EncodeGlobalEvent(g))
				}
			}
		})
		a.flush(fd, client)
	}
}

// parseFileDescriptors extracts file descriptors carried via SCM_RIGHTS
// ancillary data, the server-side mirror of gogpu-gogpu's
// wayland.parseFileDescriptors.
func parseFileDescriptors(oob []byte) ([]int, error) {
	if len(oob) == 0 {
		return nil, nil
	}
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, fmt.Errorf("transport: parse control message: %w", err)
	}
	var fds []int
	for _, scm := range scms {
		if scm.Header.Level != unix.SOL_SOCKET || scm.Header.Type != unix.SCM_RIGHTS {
			continue
		}
		got, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return nil, fmt.Errorf("transport: parse unix rights: %w", err)
		}
		fds = append(fds, got...)
	}
	return fds, nil
}
