// Package xdgshell implements xdg_wm_base, xdg_positioner, xdg_surface,
// xdg_toplevel, and xdg_popup: the window-management shell every modern
// client uses in place of the deprecated wl_shell. This is the
// dispatch core's worked example for spec.md §8 scenarios 1-3 (bind +
// destroy clean, destroy with live surfaces, malformed message) and for
// the break_loops discipline spec.md §4.4/§9 calls out by name
// (xdg_wm_base ↔ xdg_surface is the textbook reference-cycle pair).
package xdgshell

import (
	"sync"

	"github.com/jaywm/jayd/internal/ifaces"
	"github.com/jaywm/jayd/internal/ifaces/wlcompositor"
	"github.com/jaywm/jayd/internal/object"
	"github.com/jaywm/jayd/internal/wire"
	"github.com/jaywm/jayd/internal/wlerrors"
)

const (
	WmBaseInterfaceName     = "xdg_wm_base"
	PositionerInterfaceName = "xdg_positioner"
	SurfaceInterfaceName    = "xdg_surface"
	ToplevelInterfaceName   = "xdg_toplevel"
	PopupInterfaceName      = "xdg_popup"
)

const (
	WmBaseRequestDestroy         wire.Opcode = 0
	WmBaseRequestCreatePositioner wire.Opcode = 1
	WmBaseRequestGetXdgSurface   wire.Opcode = 2
	WmBaseRequestPong            wire.Opcode = 3

	PositionerRequestDestroy wire.Opcode = 0

	SurfaceRequestDestroy           wire.Opcode = 0
	SurfaceRequestGetToplevel       wire.Opcode = 1
	SurfaceRequestGetPopup          wire.Opcode = 2
	SurfaceRequestSetWindowGeometry wire.Opcode = 3
	SurfaceRequestAckConfigure      wire.Opcode = 4

	ToplevelRequestDestroy       wire.Opcode = 0
	ToplevelRequestSetTitle      wire.Opcode = 2
	ToplevelRequestSetAppID      wire.Opcode = 3
	ToplevelRequestSetMaximized  wire.Opcode = 11
	ToplevelRequestUnsetMaximized wire.Opcode = 12
	ToplevelRequestSetFullscreen  wire.Opcode = 13
	ToplevelRequestUnsetFullscreen wire.Opcode = 14

	PopupRequestDestroy wire.Opcode = 0
	PopupRequestGrab    wire.Opcode = 1

	surfaceEventConfigure wire.Opcode = 0
	toplevelEventClose    wire.Opcode = 1
)

// CodeDefunctSurfaces is xdg_wm_base's error.defunct_surfaces code:
// destroy was requested while one or more xdg_surface objects derived
// from it are still alive (spec.md §8 scenario 2).
const CodeDefunctSurfaces uint32 = 1

// WmBase is the xdg_wm_base global, one per binding client.
type WmBase struct {
	ifaces.Base

	mu       sync.Mutex
	surfaces map[wire.ObjectID]*Surface
}

func (w *WmBase) NumRequests() uint32 { return 4 }

// BreakLoops clears every strong reference this wm_base holds on its
// child xdg_surface objects, the far side of the cycle spec.md §9
// names ("xdg_wm_base ↔ xdg_surface"). Each Surface's own BreakLoops
// (invoked in the same teardown pass, unspecified order) clears the
// back-reference.
func (w *WmBase) BreakLoops() {
	w.mu.Lock()
	w.surfaces = nil
	w.mu.Unlock()
}

func (w *WmBase) addSurface(s *Surface) {
	w.mu.Lock()
	if w.surfaces == nil {
		w.surfaces = make(map[wire.ObjectID]*Surface)
	}
	w.surfaces[s.ID()] = s
	w.mu.Unlock()
}

func (w *WmBase) removeSurface(s *Surface) {
	w.mu.Lock()
	delete(w.surfaces, s.ID())
	w.mu.Unlock()
}

func (w *WmBase) liveSurfaceCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.surfaces)
}

// Positioner accumulates popup placement hints. The placement algorithm
// itself is a renderer concern (spec.md §1 Non-goals); only the request
// bookkeeping lives here.
type Positioner struct {
	ifaces.Base
}

func (p *Positioner) NumRequests() uint32 { return 1 }
func (p *Positioner) BreakLoops()         {}

// Surface is xdg_surface: the shell role attached to a wl_surface. It
// holds the far side of the wm_base cycle as a strong back-reference.
type Surface struct {
	ifaces.Base
	WmBase    *WmBase
	WlSurface *wlcompositor.Surface
}

func (s *Surface) NumRequests() uint32 { return 5 }

// BreakLoops clears the back-reference to WmBase; see WmBase.BreakLoops
// for the other side of the same pair.
func (s *Surface) BreakLoops() { s.WmBase = nil }

// Toplevel is xdg_toplevel: the "normal window" role.
type Toplevel struct {
	ifaces.Base
	Surface *Surface
	Title   string
	AppID   string
}

func (t *Toplevel) NumRequests() uint32 { return 15 }
func (t *Toplevel) BreakLoops()         { t.Surface = nil }

// Popup is xdg_popup: the transient, auto-dismissing role.
type Popup struct {
	ifaces.Base
	Surface *Surface
	Parent  *Surface
}

func (p *Popup) NumRequests() uint32 { return 2 }
func (p *Popup) BreakLoops()         { p.Surface, p.Parent = nil, nil }

func init() {
	object.Register(&object.InterfaceTable{
		Name: WmBaseInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			WmBaseRequestDestroy:          handleWmBaseDestroy,
			WmBaseRequestCreatePositioner: handleCreatePositioner,
			WmBaseRequestGetXdgSurface:    handleGetXdgSurface,
			WmBaseRequestPong:             handlePong,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: PositionerInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			PositionerRequestDestroy: handlePositionerDestroy,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: SurfaceInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			SurfaceRequestDestroy:           handleSurfaceDestroy,
			SurfaceRequestGetToplevel:       handleGetToplevel,
			SurfaceRequestGetPopup:          handleGetPopup,
			SurfaceRequestSetWindowGeometry: handleSetWindowGeometry,
			SurfaceRequestAckConfigure:      handleAckConfigure,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: ToplevelInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			ToplevelRequestDestroy:        handleToplevelDestroy,
			ToplevelRequestSetTitle:       handleSetTitle,
			ToplevelRequestSetAppID:       handleSetAppID,
			ToplevelRequestSetMaximized:   handleToplevelNoop,
			ToplevelRequestUnsetMaximized: handleToplevelNoop,
			ToplevelRequestSetFullscreen:  handleSetFullscreen,
			ToplevelRequestUnsetFullscreen: handleToplevelNoop,
		},
	})
	object.Register(&object.InterfaceTable{
		Name: PopupInterfaceName,
		Handlers: map[wire.Opcode]object.HandlerFunc{
			PopupRequestDestroy: handlePopupDestroy,
			PopupRequestGrab:    handlePopupNoop,
		},
	})
	ifaces.RegisterFactory(WmBaseInterfaceName, func(client *object.Client, id wire.ObjectID, version uint32) (object.Object, error) {
		return &WmBase{Base: ifaces.NewBase(id, WmBaseInterfaceName, version)}, nil
	})
}

func handleWmBaseDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	w := obj.(*WmBase)
	if n := w.liveSurfaceCount(); n > 0 {
		client.ProtocolError(w.ID(), CodeDefunctSurfaces, "xdg_wm_base destroyed while xdg_surface objects are still alive")
		return &wlerrors.ProtocolError{ObjectID: uint32(w.ID()), Code: CodeDefunctSurfaces, Description: "defunct_surfaces"}
	}
	return client.RemoveObj(w)
}

func handleCreatePositioner(obj object.Object, client *object.Client, args *wire.Decoder) error {
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	return client.AddClientObj(&Positioner{Base: ifaces.NewBase(newID, PositionerInterfaceName, obj.Version())})
}

func handleGetXdgSurface(obj object.Object, client *object.Client, args *wire.Decoder) error {
	w := obj.(*WmBase)
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	surfaceID, err := args.Object()
	if err != nil {
		return err
	}
	wlSurfObj, err := client.Lookup(surfaceID, wlcompositor.SurfaceInterfaceName)
	if err != nil {
		return err
	}
	s := &Surface{
		Base:    ifaces.NewBase(newID, SurfaceInterfaceName, obj.Version()),
		WmBase:  w,
		WlSurface: wlSurfObj.(*wlcompositor.Surface),
	}
	w.addSurface(s)
	return client.AddClientObj(s)
}

func handlePong(obj object.Object, client *object.Client, args *wire.Decoder) error {
	_, err := args.Uint32()
	return err
}

func handlePositionerDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleSurfaceDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	if s.WmBase != nil {
		s.WmBase.removeSurface(s)
	}
	return client.RemoveObj(s)
}

func handleGetToplevel(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	t := &Toplevel{Base: ifaces.NewBase(newID, ToplevelInterfaceName, obj.Version()), Surface: s}
	return client.AddClientObj(t)
}

func handleGetPopup(obj object.Object, client *object.Client, args *wire.Decoder) error {
	s := obj.(*Surface)
	newID, err := args.NewID()
	if err != nil {
		return err
	}
	parentID, err := args.Object()
	if err != nil {
		return err
	}
	var parent *Surface
	if parentID != 0 {
		parentObj, err := client.Lookup(parentID, SurfaceInterfaceName)
		if err != nil {
			return err
		}
		parent = parentObj.(*Surface)
	}
	if _, err := args.Object(); err != nil { // positioner
		return err
	}
	if s.WlSurface != nil {
		s.WlSurface.Node.IsPopupRole = true
	}
	return client.AddClientObj(&Popup{Base: ifaces.NewBase(newID, PopupInterfaceName, obj.Version()), Surface: s, Parent: parent})
}

func handleSetWindowGeometry(obj object.Object, client *object.Client, args *wire.Decoder) error {
	for i := 0; i < 4; i++ {
		if _, err := args.Int32(); err != nil {
			return err
		}
	}
	return nil
}

func handleAckConfigure(obj object.Object, client *object.Client, args *wire.Decoder) error {
	_, err := args.Uint32()
	return err
}

func handleToplevelDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return client.RemoveObj(obj)
}

func handleSetTitle(obj object.Object, client *object.Client, args *wire.Decoder) error {
	t := obj.(*Toplevel)
	title, err := args.String()
	if err != nil {
		return err
	}
	t.Title = title
	if t.Surface != nil && t.Surface.WlSurface != nil {
		t.Surface.WlSurface.Node.Title = title
	}
	return nil
}

func handleSetAppID(obj object.Object, client *object.Client, args *wire.Decoder) error {
	t := obj.(*Toplevel)
	appID, err := args.String()
	if err != nil {
		return err
	}
	t.AppID = appID
	if t.Surface != nil && t.Surface.WlSurface != nil {
		t.Surface.WlSurface.Node.AppID = appID
	}
	return nil
}

func handleSetFullscreen(obj object.Object, client *object.Client, args *wire.Decoder) error {
	_, err := args.Object() // output, nullable
	return err
}

func handleToplevelNoop(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return nil
}

func handlePopupDestroy(obj object.Object, client *object.Client, args *wire.Decoder) error {
	p := obj.(*Popup)
	if p.Surface != nil && p.Surface.WlSurface != nil {
		p.Surface.WlSurface.Node.IsPopupRole = false
	}
	return client.RemoveObj(p)
}

func handlePopupNoop(obj object.Object, client *object.Client, args *wire.Decoder) error {
	return nil
}
