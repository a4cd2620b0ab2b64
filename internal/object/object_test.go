package object

import (
	"errors"
	"sync"
	"testing"

	"github.com/jaywm/jayd/internal/wire"
	"github.com/jaywm/jayd/internal/wlerrors"
)

// fakeObject is a minimal Object used to exercise the dispatch core
// without depending on any real protocol interface.
type fakeObject struct {
	id           wire.ObjectID
	iface        string
	version      uint32
	broken       bool
	liveSurfaces int // simulates xdg_wm_base's "surfaces still alive" count
}

func (f *fakeObject) ID() wire.ObjectID      { return f.id }
func (f *fakeObject) Interface() string      { return f.iface }
func (f *fakeObject) Version() uint32        { return f.version }
func (f *fakeObject) NumRequests() uint32    { return 1 }
func (f *fakeObject) BreakLoops()            { f.broken = true }

const fakeIfaceName = "test_fake_base"

var registerFakeOnce sync.Once

func registerFakeInterface() {
	registerFakeOnce.Do(func() {
		Register(&InterfaceTable{
			Name: fakeIfaceName,
			Handlers: map[wire.Opcode]HandlerFunc{
				0: func(obj Object, client *Client, args *wire.Decoder) error {
					fo := obj.(*fakeObject)
					if fo.liveSurfaces > 0 {
						client.ProtocolError(fo.ID(), wlerrors.CodeInvalidMethod,
							"defunct_surfaces")
						return nil
					}
					return client.RemoveObj(fo)
				},
			},
		})
	})
}

func TestBindAndDestroyClean(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	obj := &fakeObject{id: 2, iface: fakeIfaceName, version: 1}
	live := &fakeObject{id: 3, iface: fakeIfaceName, version: 1}

	if err := c.AddClientObj(obj); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}
	if err := c.AddClientObj(live); err != nil {
		t.Fatalf("AddClientObj(live): %v", err)
	}
	got, err := c.Lookup(2, fakeIfaceName)
	if err != nil || got != obj {
		t.Fatalf("Lookup failed: %v", err)
	}

	msg := &wire.Message{ObjectID: 2, Opcode: 0}
	if err := c.Parse(obj, msg); err != nil {
		t.Fatalf("Parse(destroy): %v", err)
	}
	if _, err := c.Lookup(2, fakeIfaceName); !errors.Is(err, ErrUnknownObject) {
		t.Fatalf("expected object removed, got %v", err)
	}

	// The destroyed object left the table before teardown; BreakLoops
	// runs on the object that is still live.
	c.Destroy()
	if !live.broken {
		t.Fatalf("expected BreakLoops to run on clean destroy")
	}
	if c.Latch().Latched() {
		t.Fatalf("expected no protocol error on clean teardown")
	}
}

func TestDestroyWithLiveSurfacesRaisesProtocolError(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	obj := &fakeObject{id: 3, iface: fakeIfaceName, version: 1, liveSurfaces: 2}
	if err := c.AddClientObj(obj); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}

	var reported *wlerrors.ProtocolError
	c.OnProtocolError = func(pe *wlerrors.ProtocolError) { reported = pe }

	msg := &wire.Message{ObjectID: 3, Opcode: 0}
	if err := c.Parse(obj, msg); err != nil {
		t.Fatalf("Parse should not itself error, handler reports via ProtocolError: %v", err)
	}
	if reported == nil {
		t.Fatalf("expected OnProtocolError to fire")
	}
	if reported.Code != wlerrors.CodeInvalidMethod {
		t.Fatalf("unexpected code: %d", reported.Code)
	}
	if reported.Description != "defunct_surfaces" {
		t.Fatalf("unexpected description: %s", reported.Description)
	}
	if !c.Latch().Latched() {
		t.Fatalf("expected latch to record the error")
	}
	queue := c.DrainQueue()
	if len(queue) != 1 {
		t.Fatalf("expected one queued wl_display.error event, got %d", len(queue))
	}
}

func TestMalformedOpcodeBeyondNumRequestsDisconnects(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	obj := &fakeObject{id: 4, iface: fakeIfaceName, version: 1}
	if err := c.AddClientObj(obj); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}

	var reported *wlerrors.ProtocolError
	c.OnProtocolError = func(pe *wlerrors.ProtocolError) { reported = pe }

	msg := &wire.Message{ObjectID: 4, Opcode: 99} // NumRequests() == 1
	err := c.Parse(obj, msg)
	if err == nil {
		t.Fatalf("expected Parse to report an error for an out-of-range opcode")
	}
	var pe *wlerrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a *wlerrors.ParseError, got %T: %v", err, err)
	}
	if reported == nil || reported.Code != wlerrors.CodeInvalidMethod {
		t.Fatalf("expected invalid_method protocol error, got %+v", reported)
	}

	c.Destroy()
	if !c.Destroyed() {
		t.Fatalf("expected client to be torn down")
	}
}

func TestAddClientObjRejectsDuplicateID(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	obj1 := &fakeObject{id: 5, iface: fakeIfaceName, version: 1}
	// obj2 uses a different interface than obj1 so a corrupted primary
	// table (overwritten with obj2 while the per-interface index still
	// points at obj1) would be caught by the interface-mismatch check
	// below, rather than masked by both objects sharing one interface.
	obj2 := &fakeObject{id: 5, iface: "test_fake_other", version: 1}

	if err := c.AddClientObj(obj1); err != nil {
		t.Fatalf("first AddClientObj: %v", err)
	}
	if err := c.AddClientObj(obj2); !errors.Is(err, ErrIdInUse) {
		t.Fatalf("expected ErrIdInUse, got %v", err)
	}

	got, err := c.Lookup(5, fakeIfaceName)
	if err != nil {
		t.Fatalf("Lookup after rejected add: %v", err)
	}
	if got != obj1 {
		t.Fatalf("expected the original object to survive the rejected add, got %v", got)
	}
	if _, err := c.Lookup(5, "test_fake_other"); !errors.Is(err, ErrInterfaceMismatch) {
		t.Fatalf("expected obj2's interface to never have been installed, got %v", err)
	}
}

func TestAddClientObjRejectsOnGoneClient(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	c.Destroy()
	obj := &fakeObject{id: 6, iface: fakeIfaceName, version: 1}
	if err := c.AddClientObj(obj); !errors.Is(err, ErrClientGone) {
		t.Fatalf("expected ErrClientGone, got %v", err)
	}
}

func TestLookupInterfaceMismatch(t *testing.T) {
	registerFakeInterface()
	c := NewClient()
	obj := &fakeObject{id: 7, iface: fakeIfaceName, version: 1}
	if err := c.AddClientObj(obj); err != nil {
		t.Fatalf("AddClientObj: %v", err)
	}
	if _, err := c.Lookup(7, "wl_surface"); !errors.Is(err, ErrInterfaceMismatch) {
		t.Fatalf("expected ErrInterfaceMismatch, got %v", err)
	}
}
