package scene

import (
	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/list"
)

// OutputIdentity is the stable key persistent output state is keyed by:
// manufacturer/product/serial plus the connector's kernel name. Defined
// here (rather than in internal/backend) so scene.OutputNode can carry
// it without creating an import cycle between scene and backend.
type OutputIdentity struct {
	Connector    string
	Manufacturer string
	Product      string
	Serial       string
}

// OutputNode wraps a connector's scene presence: spec.md's "Output"
// data-model entity, minus the global advertisement and render-data
// bookkeeping that live in internal/backend and internal/render
// respectively (this package stays a pure graph, per SPEC_FULL.md's
// package split).
type OutputNode struct {
	base

	parent *DisplayNode

	// Identity is this output's stable persistence key, empty for the
	// dummy output (which is never persisted).
	Identity OutputIdentity
	// IsDummy marks the bootstrap output every workspace starts on
	// before any connector is connected (spec.md §4.7's "dummy
	// output").
	IsDummy bool
	// GlobalName is the wl_output global name currently advertising
	// this output, 0 if none (non-desktop connectors and the dummy
	// output never get one).
	GlobalName uint32

	workspaces     *list.List[*WorkspaceNode]
	workspaceLinks map[ID]list.Ref[*WorkspaceNode]
	visibleWS      *WorkspaceNode
}

// NewOutputNode returns an output with no workspaces attached yet.
func NewOutputNode(identity OutputIdentity) *OutputNode {
	o := &OutputNode{base: newBase(), Identity: identity}
	o.visible = true
	o.workspaces = list.New[*WorkspaceNode]()
	o.workspaceLinks = make(map[ID]list.Ref[*WorkspaceNode])
	return o
}

// NewDummyOutputNode returns the bootstrap output new workspaces are
// created on before any connector has connected.
func NewDummyOutputNode() *OutputNode {
	o := NewOutputNode(OutputIdentity{})
	o.IsDummy = true
	return o
}

// Parent returns the display root this output is attached to, or nil.
func (o *OutputNode) Parent() *DisplayNode { return o.parent }

// AddWorkspace attaches ws as a child of this output. Does not change
// visibility; callers decide whether the moved workspace should become
// the visible one.
func (o *OutputNode) AddWorkspace(ws *WorkspaceNode) {
	ref := o.workspaces.PushBack(ws)
	o.workspaceLinks[ws.ID()] = ref
	ws.output = o
}

// RemoveWorkspace detaches ws from this output.
func (o *OutputNode) RemoveWorkspace(ws *WorkspaceNode) {
	if ref, ok := o.workspaceLinks[ws.ID()]; ok {
		ref.Remove()
		delete(o.workspaceLinks, ws.ID())
	}
	if o.visibleWS == ws {
		o.visibleWS = nil
	}
}

// Workspaces returns a snapshot of this output's attached workspaces.
func (o *OutputNode) Workspaces() []*WorkspaceNode {
	var out []*WorkspaceNode
	o.workspaces.Each(func(r list.Ref[*WorkspaceNode]) bool {
		out = append(out, r.Value())
		return true
	})
	return out
}

// VisibleWorkspace returns the output's currently visible workspace, or
// nil (invariant: at most one per output, spec.md §3/§8).
func (o *OutputNode) VisibleWorkspace() *WorkspaceNode { return o.visibleWS }

// SetVisibleWorkspace makes ws the output's sole visible workspace,
// hiding whichever workspace previously held that slot. ws must already
// be a child of o.
func (o *OutputNode) SetVisibleWorkspace(ws *WorkspaceNode) {
	if o.visibleWS == ws {
		return
	}
	if o.visibleWS != nil {
		o.visibleWS.SetVisible(false)
	}
	o.visibleWS = ws
	if ws != nil {
		ws.SetVisible(true)
	}
}

func (o *OutputNode) Visit(v Visitor) { v.VisitOutput(o) }

func (o *OutputNode) VisitChildren(v Visitor) {
	o.workspaces.Each(func(r list.Ref[*WorkspaceNode]) bool {
		v.VisitWorkspace(r.Value())
		return true
	})
}

func (o *OutputNode) SetVisible(visible bool) {
	o.visible = visible
	o.workspaces.Each(func(r list.Ref[*WorkspaceNode]) bool {
		r.Value().SetVisible(visible && r.Value() == o.visibleWS)
		return true
	})
	o.seatState.SetVisible(o, visible)
}

func (o *OutputNode) ChangeExtents(r geom.Rect) {
	o.position = r
	o.workspaces.Each(func(ref list.Ref[*WorkspaceNode]) bool {
		ref.Value().ChangeExtents(r)
		return true
	})
}

func (o *OutputNode) FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult {
	if o.visibleWS == nil {
		return DeniesInput
	}
	*out = append(*out, FoundNode{Node: o.visibleWS, X: x, Y: y})
	return o.visibleWS.FindTreeAt(x, y, out)
}

func (o *OutputNode) RemoveChild(child Node) {
	if ws, ok := child.(*WorkspaceNode); ok {
		o.RemoveWorkspace(ws)
	}
}

func (o *OutputNode) PointerFocus(seat *Seat) { defaultPointerFocus(o, seat) }

func (o *OutputNode) Render(r Renderer, x, y int) {
	r.RenderOutput(o, x, y)
	if o.visibleWS != nil {
		o.visibleWS.Render(r, x, y)
	}
}

func (o *OutputNode) AcceptsChild(n Node) bool { return n.IsWorkspace() }

func (o *OutputNode) DestroyNode(detach bool) {
	if detach && o.parent != nil {
		o.parent.RemoveOutput(o)
	}
	o.workspaces.Each(func(ref list.Ref[*WorkspaceNode]) bool {
		ref.Value().DestroyNode(false)
		return true
	})
	o.seatState.DestroyNode(o)
}

func (o *OutputNode) IsDisplay() bool   { return false }
func (o *OutputNode) IsOutput() bool    { return true }
func (o *OutputNode) IsWorkspace() bool { return false }
func (o *OutputNode) IsContainer() bool { return false }
func (o *OutputNode) IsSurface() bool   { return false }
