// Package object implements the per-client object table, opcode
// dispatch, lifetime discipline, and break_loops reference-cycle
// disposal that every protocol interface (wl_compositor, wl_shm,
// xdg-shell, wl_seat, wl_output, zwp_primary_selection, ...) is hosted
// on top of.
//
// Interface registration is declarative: each interface registers an
// InterfaceTable mapping opcode to handler once, at program init, via
// Register. The dispatch core never special-cases an interface by name.
//
// Grounded on gogpu-gogpu's internal/platform/wayland Display/Registry
// dispatch (a hand-written switch per object kind), generalized into a
// table the way honnef.co/go/libwayland (dominikh-go-libwayland, passed
// over as teacher — see DESIGN.md) keys its reflect-based dispatcher by
// a (type, name) pair: here by (interface, opcode) instead.
package object

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jaywm/jayd/internal/idmap"
	"github.com/jaywm/jayd/internal/wire"
	"github.com/jaywm/jayd/internal/wlerrors"
)

// Sentinel errors returned by the dispatch core's operations (spec.md
// §4.4).
var (
	ErrIdInUse          = errors.New("object: id already in use")
	ErrClientGone       = errors.New("object: client has been torn down")
	ErrUnknownObject    = errors.New("object: unknown object id")
	ErrInterfaceMismatch = errors.New("object: object exists but has a different interface")
	ErrUnknownInterface = errors.New("object: no interface registered under that name")
)

// Object is the atom of protocol state: every bound protocol object
// implements this.
type Object interface {
	ID() wire.ObjectID
	Interface() string
	Version() uint32
	// NumRequests returns the opcode upper bound used to reject
	// malformed opcodes before dispatch.
	NumRequests() uint32
	// BreakLoops clears any owned containers that might hold reference
	// cycles with other objects. Invoked exactly once, in unspecified
	// order, on every object still in the client's table at client
	// teardown; an object removed earlier via RemoveObj does not get it.
	BreakLoops()
}

// HandlerFunc processes one parsed request against obj on behalf of
// client. Parse failures, protocol violations, and client faults are all
// reported through the returned error; the dispatcher classifies it.
type HandlerFunc func(obj Object, client *Client, args *wire.Decoder) error

// InterfaceTable is the declarative opcode→handler schema for one
// protocol interface.
type InterfaceTable struct {
	Name     string
	Handlers map[wire.Opcode]HandlerFunc
	// The table has no teardown hook of its own: Client.Destroy calls
	// each live Object's BreakLoops directly.
}

// NumRequests returns one more than the highest opcode registered in
// Handlers (0 for an empty table). Client.Parse bounds opcodes by the
// Object's own NumRequests, not by this value.
func (t *InterfaceTable) NumRequests() uint32 {
	var max wire.Opcode
	for op := range t.Handlers {
		if op > max {
			max = op
		}
	}
	if len(t.Handlers) == 0 {
		return 0
	}
	return uint32(max) + 1
}

var (
	schemaMu sync.RWMutex
	schema   = map[string]*InterfaceTable{}
)

// Register adds an interface's opcode table to the global schema. Called
// from each interface package's init(). Panics on duplicate
// registration: that is a programming error, not a runtime condition.
func Register(table *InterfaceTable) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if _, exists := schema[table.Name]; exists {
		panic(fmt.Sprintf("object: interface %q registered twice", table.Name))
	}
	schema[table.Name] = table
}

// Lookup returns the registered InterfaceTable for name.
func Lookup(name string) (*InterfaceTable, bool) {
	schemaMu.RLock()
	defer schemaMu.RUnlock()
	t, ok := schema[name]
	return t, ok
}

// Client owns a per-client id→object table, a per-interface secondary
// index, a write queue of outgoing event bytes, and a protocol-error
// latch.
type Client struct {
	mu          sync.Mutex
	objects     *idmap.Map[wire.ObjectID, Object]
	byInterface map[string]*idmap.Map[wire.ObjectID, Object]
	latch       wlerrors.Latch
	destroyed   bool

	// outQueue holds encoded events awaiting flush, in the order
	// handlers enqueued them (spec.md §4.4 dispatch ordering).
	outQueue [][]byte

	// OnProtocolError is invoked synchronously the first time
	// ProtocolError latches an error for this client; the caller (the
	// async engine's per-client task) is expected to flush outQueue and
	// then tear the client down at the next yield.
	OnProtocolError func(*wlerrors.ProtocolError)
}

// NewClient returns a freshly connected, empty client.
func NewClient() *Client {
	return &Client{
		objects:     idmap.New[wire.ObjectID, Object](),
		byInterface: make(map[string]*idmap.Map[wire.ObjectID, Object]),
	}
}

func (c *Client) interfaceIndex(iface string) *idmap.Map[wire.ObjectID, Object] {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.byInterface[iface]
	if !ok {
		idx = idmap.New[wire.ObjectID, Object]()
		c.byInterface[iface] = idx
	}
	return idx
}

// AddClientObj inserts obj into the primary and per-interface tables.
func (c *Client) AddClientObj(obj Object) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrClientGone
	}
	c.mu.Unlock()

	prev, had := c.objects.Set(obj.ID(), obj)
	if had {
		// The id was already bound; restore the previous binding so the
		// primary table and per-interface index stay in sync instead of
		// leaving the rejected obj installed in one but not the other.
		c.objects.Set(obj.ID(), prev)
		return ErrIdInUse
	}
	c.interfaceIndex(obj.Interface()).Set(obj.ID(), obj)
	return nil
}

// RemoveObj removes obj from both tables, dropping the object's strong
// reference from the client. Any residual references elsewhere remain
// valid until break_loops runs them down at teardown.
func (c *Client) RemoveObj(obj Object) error {
	c.objects.Remove(obj.ID())
	c.interfaceIndex(obj.Interface()).Remove(obj.ID())
	return nil
}

// Lookup returns the object bound to id, failing UnknownObject if absent
// or InterfaceMismatch if bound to a different interface than iface.
func (c *Client) Lookup(id wire.ObjectID, iface string) (Object, error) {
	obj, ok := c.objects.Get(id)
	if !ok {
		return nil, ErrUnknownObject
	}
	if obj.Interface() != iface {
		return nil, ErrInterfaceMismatch
	}
	return obj, nil
}

// LookupAny returns the object bound to id regardless of interface.
func (c *Client) LookupAny(id wire.ObjectID) (Object, error) {
	obj, ok := c.objects.Get(id)
	if !ok {
		return nil, ErrUnknownObject
	}
	return obj, nil
}

// InterfaceObjects returns a snapshot of every live object of the given
// interface, e.g. to enumerate all xdg_surface objects for configure and
// commit semantics.
func (c *Client) InterfaceObjects(iface string) []Object {
	return c.interfaceIndex(iface).Values()
}

// Parse routes a parsed message's opcode to the handler declared by
// obj's interface, enforcing the opcode upper bound before dispatch.
func (c *Client) Parse(obj Object, msg *wire.Message) error {
	table, ok := Lookup(obj.Interface())
	if !ok {
		return ErrUnknownInterface
	}
	if uint32(msg.Opcode) >= obj.NumRequests() {
		c.ProtocolError(obj.ID(), wlerrors.CodeInvalidMethod,
			fmt.Sprintf("invalid opcode %d for interface %s", msg.Opcode, obj.Interface()))
		return &wlerrors.ParseError{Interface: obj.Interface(), Opcode: uint16(msg.Opcode),
			Cause: fmt.Errorf("opcode exceeds num_requests")}
	}
	handler, ok := table.Handlers[msg.Opcode]
	if !ok {
		c.ProtocolError(obj.ID(), wlerrors.CodeInvalidMethod,
			fmt.Sprintf("no handler registered for %s opcode %d", obj.Interface(), msg.Opcode))
		return &wlerrors.ParseError{Interface: obj.Interface(), Opcode: uint16(msg.Opcode),
			Cause: fmt.Errorf("unregistered opcode")}
	}
	dec := wire.NewDecoder(msg.Args)
	dec.Reset(msg.Args, msg.FDs)
	if err := handler(obj, c, dec); err != nil {
		return &wlerrors.HandlerError{Interface: obj.Interface(), Request: fmt.Sprintf("opcode %d", msg.Opcode), Cause: err}
	}
	return nil
}

// ProtocolError enqueues a protocol error event addressed to the display
// singleton (object id 1) and latches the error. Idempotent: only the
// first call has any effect.
func (c *Client) ProtocolError(objID wire.ObjectID, code uint32, description string) {
	pe := &wlerrors.ProtocolError{ObjectID: uint32(objID), Code: code, Description: description}
	if !c.latch.Raise(pe) {
		return
	}
	enc := wire.NewEncoder(64)
	enc.PutObject(wire.ObjectID(objID))
	enc.PutUint32(code)
	enc.PutString(description)
	if raw, err := wire.Encode(1, displayEventError, enc.Bytes()); err == nil {
		c.Enqueue(raw)
	}
	if c.OnProtocolError != nil {
		c.OnProtocolError(pe)
	}
}

// displayEventError is wl_display.error's event opcode.
const displayEventError wire.Opcode = 0

// Enqueue appends encoded event bytes to the client's write queue, in
// the order handlers enqueue them.
func (c *Client) Enqueue(raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outQueue = append(c.outQueue, raw)
}

// DrainQueue returns and clears all queued outgoing event bytes, in
// enqueue order.
func (c *Client) DrainQueue() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.outQueue
	c.outQueue = nil
	return q
}

// Latch returns the client's protocol-error latch.
func (c *Client) Latch() *wlerrors.Latch { return &c.latch }

// Destroyed reports whether Destroy has run.
func (c *Client) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Destroy runs break_loops on every live object exactly once, then drops
// the primary table so ordinary reference counting reclaims storage.
// Called on disconnect, protocol error, or fatal I/O error.
func (c *Client) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.mu.Unlock()

	for _, obj := range c.objects.Clear() {
		obj.BreakLoops()
	}
	c.mu.Lock()
	c.byInterface = make(map[string]*idmap.Map[wire.ObjectID, Object])
	c.mu.Unlock()
}
