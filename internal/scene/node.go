// Package scene implements the compositor's scene tree (spec.md §4.6,
// component C8): the node graph rooted at a DisplayNode, through
// OutputNode, WorkspaceNode, and ContainerNode, down to SurfaceNode
// leaves. Visibility and extents propagate downward; focus tracking
// propagates visibility changes out to seats.
//
// The closed variant set (Display, Output, Workspace, Container,
// Surface) is modeled as a capability interface implemented by five
// concrete struct types, the way gogpu-gogpu's math package exposes one
// method set across its vector types rather than a tagged union: a
// tagged union with exhaustive switches is the documented alternative
// (spec.md §9) but Go's dynamic dispatch on an interface is the more
// idiomatic fit for a tree walked polymorphically by renderers, damage
// trackers, and focus scans.
package scene

import (
	"sync/atomic"

	"github.com/jaywm/jayd/internal/geom"
)

// ID identifies a scene node for the lifetime of the compositor
// process. Never reused.
type ID uint64

var nextID atomic.Uint64

// NextID allocates a fresh node id.
func NextID() ID {
	return ID(nextID.Add(1))
}

// FindTreeResult reports whether a find-tree-at walk should continue
// accepting input at the point it reached, or stop because nothing
// beneath this node takes it.
type FindTreeResult int

const (
	// AcceptsInput means the walk found a node willing to receive the
	// point and should stop descending.
	AcceptsInput FindTreeResult = iota
	// DeniesInput means nothing at this point accepts input; the caller
	// should continue probing siblings or ancestors.
	DeniesInput
)

// FoundNode is one entry pushed by FindTreeAt: the node found plus the
// point translated into that node's local coordinate space.
type FoundNode struct {
	Node Node
	X, Y int
}

// Visitor lets a pass (render, damage, focus scan) walk the tree
// without switching on concrete node type.
type Visitor interface {
	VisitDisplay(n *DisplayNode)
	VisitOutput(n *OutputNode)
	VisitWorkspace(n *WorkspaceNode)
	VisitContainer(n *ContainerNode)
	VisitSurface(n *SurfaceNode)
}

// Renderer is the black-box pixel compositor invoked at each node's
// render call site (spec.md §1 Non-goals: no rendering algorithm is
// specified here, only this hook). internal/render provides concrete
// implementations.
type Renderer interface {
	RenderOutput(n *OutputNode, x, y int)
	RenderWorkspace(n *WorkspaceNode, x, y int)
	RenderContainer(n *ContainerNode, x, y int)
	RenderSurface(n *SurfaceNode, x, y int)
}

// Node is the uniform capability set every scene node implements
// (spec.md §4.6).
type Node interface {
	ID() ID
	SeatState() *SeatState
	Visible() bool
	SetVisible(visible bool)
	Visit(v Visitor)
	VisitChildren(v Visitor)
	AbsolutePosition() geom.Rect
	ChangeExtents(r geom.Rect)
	FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult
	RemoveChild(child Node)
	PointerFocus(seat *Seat)
	Render(r Renderer, x, y int)
	AcceptsChild(n Node) bool
	DestroyNode(detach bool)

	IsDisplay() bool
	IsOutput() bool
	IsWorkspace() bool
	IsContainer() bool
	IsSurface() bool
}

// base holds the fields every node variant carries: its id, the shared
// seat-focus bookkeeping, and the node's own visibility flag. Embedded
// rather than duplicated five times, the same way the teacher's GPU
// handle types share a common refcounted-handle field set
// (gpu/types/handles.go).
type base struct {
	id        ID
	seatState SeatState
	visible   bool
	position  geom.Rect
}

func newBase() base {
	return base{id: NextID()}
}

func (b *base) ID() ID                  { return b.id }
func (b *base) SeatState() *SeatState   { return &b.seatState }
func (b *base) Visible() bool           { return b.visible }
func (b *base) AbsolutePosition() geom.Rect { return b.position }

// defaultPointerFocus is shared by node kinds that have no
// variant-specific cursor behavior: it simply records the focus so
// SeatState bookkeeping stays consistent.
func defaultPointerFocus(n Node, seat *Seat) {
	seat.SetPointerFocus(n)
}
