package scene

import (
	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/list"
)

// WorkspaceNode is a named virtual desktop anchored to one output but
// migratable to another on connector hotplug (spec.md §3, §4.7).
type WorkspaceNode struct {
	base

	Name string

	output *OutputNode
	// DesiredOutput is the identity-stable output this workspace wants
	// to live on once that output reconnects; empty means "no
	// preference". Set by configuration, read by the connector
	// lifecycle's migration logic.
	DesiredOutput OutputIdentity
	// VisibleOnDesiredOutput remembers whether this workspace was
	// visible the last time it resided on its desired output, so a
	// disconnect-then-reconnect cycle can restore visibility (spec.md
	// §4.7 Disconnected transition).
	VisibleOnDesiredOutput bool
	// IsDummyWorkspace marks placeholder workspaces living on the dummy
	// output that must never migrate onto a real connector (mirrors the
	// Rust `ws.is_dummy` guard in the migration loops).
	IsDummyWorkspace bool

	container *ContainerNode
	stacked   *list.List[Node]
}

// NewWorkspace returns an unattached workspace with no container yet.
func NewWorkspace(name string) *WorkspaceNode {
	w := &WorkspaceNode{base: newBase(), Name: name}
	w.stacked = list.New[Node]()
	return w
}

// Output returns the output this workspace currently resides on, or
// nil if unattached.
func (w *WorkspaceNode) Output() *OutputNode { return w.output }

// SetOutput reparents w onto o without touching visibility; callers
// (the migration logic in internal/backend) decide visibility
// separately via Output.SetVisibleWorkspace.
func (w *WorkspaceNode) SetOutput(o *OutputNode) {
	w.output = o
}

// SetContainer attaches container as this workspace's sole tiling
// child, sizing it to the workspace's current extents and matching its
// visibility — mirrors the Rust WorkspaceNode::set_container.
func (w *WorkspaceNode) SetContainer(c *ContainerNode) {
	c.ChangeExtents(w.position)
	c.workspace = w
	c.SetVisible(w.visible)
	w.container = c
}

// Container returns the workspace's tiling child, or nil.
func (w *WorkspaceNode) Container() *ContainerNode { return w.container }

// PushStacked adds a stacked overlay node (e.g. a fullscreen popup) on
// top of the workspace.
func (w *WorkspaceNode) PushStacked(n Node) list.Ref[Node] {
	return w.stacked.PushBack(n)
}

func (w *WorkspaceNode) Visit(v Visitor) { v.VisitWorkspace(w) }

func (w *WorkspaceNode) VisitChildren(v Visitor) {
	if w.container != nil {
		v.VisitContainer(w.container)
	}
}

func (w *WorkspaceNode) SetVisible(visible bool) {
	w.visible = visible
	if w.container != nil {
		w.container.SetVisible(visible)
	}
	w.seatState.SetVisible(w, visible)
}

func (w *WorkspaceNode) ChangeExtents(r geom.Rect) {
	w.position = r
	if w.container != nil {
		w.container.ChangeExtents(r)
	}
}

func (w *WorkspaceNode) FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult {
	if w.container == nil {
		return AcceptsInput
	}
	*out = append(*out, FoundNode{Node: w.container, X: x, Y: y})
	w.container.FindTreeAt(x, y, out)
	return AcceptsInput
}

func (w *WorkspaceNode) RemoveChild(child Node) {
	w.container = nil
}

func (w *WorkspaceNode) PointerFocus(seat *Seat) {
	seat.SetKnownCursor("default")
	defaultPointerFocus(w, seat)
}

func (w *WorkspaceNode) Render(r Renderer, x, y int) {
	r.RenderWorkspace(w, x, y)
	if w.container != nil {
		w.container.Render(r, x, y)
	}
}

func (w *WorkspaceNode) AcceptsChild(n Node) bool { return n.IsContainer() }

func (w *WorkspaceNode) DestroyNode(detach bool) {
	if detach && w.output != nil {
		w.output.RemoveWorkspace(w)
	}
	if w.container != nil {
		w.container.DestroyNode(false)
		w.container = nil
	}
	w.seatState.DestroyNode(w)
}

func (w *WorkspaceNode) IsDisplay() bool   { return false }
func (w *WorkspaceNode) IsOutput() bool    { return false }
func (w *WorkspaceNode) IsWorkspace() bool { return true }
func (w *WorkspaceNode) IsContainer() bool { return false }
func (w *WorkspaceNode) IsSurface() bool   { return false }
