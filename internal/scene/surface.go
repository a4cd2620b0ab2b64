package scene

import (
	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/list"
)

// SurfaceNode is a client-provided drawable rectangle, the tree's leaf.
// IsSubsurfaceRole/IsPopupRole distinguish the two specializations
// spec.md §3 names without needing separate node types: both behave
// like ordinary surfaces for tree-walk purposes, differing only in how
// internal/ifaces positions and destroys them.
type SurfaceNode struct {
	base

	parent Node

	IsSubsurfaceRole bool
	IsPopupRole      bool

	children *list.List[*SurfaceNode]
	links    map[ID]list.Ref[*SurfaceNode]

	// Title and AppID are carried here (rather than only in the xdg
	// interface layer) because the rest of the tree — focus scans,
	// status text — reads them polymorphically off any SurfaceNode.
	Title string
	AppID string
}

// NewSurface returns a surface with no parent and no children.
func NewSurface() *SurfaceNode {
	s := &SurfaceNode{base: newBase()}
	s.children = list.New[*SurfaceNode]()
	s.links = make(map[ID]list.Ref[*SurfaceNode])
	return s
}

// Parent returns the node this surface is tiled or stacked beneath.
func (s *SurfaceNode) Parent() Node { return s.parent }

// SetParent reparents s; used when a container places it or a popup
// attaches to its anchor surface.
func (s *SurfaceNode) SetParent(n Node) { s.parent = n }

// AddChild attaches a subsurface or popup on top of s.
func (s *SurfaceNode) AddChild(child *SurfaceNode) {
	ref := s.children.PushBack(child)
	s.links[child.ID()] = ref
	child.parent = s
}

// Children returns a snapshot of s's subsurfaces/popups.
func (s *SurfaceNode) Children() []*SurfaceNode {
	var out []*SurfaceNode
	s.children.Each(func(r list.Ref[*SurfaceNode]) bool {
		out = append(out, r.Value())
		return true
	})
	return out
}

func (s *SurfaceNode) Visit(v Visitor) { v.VisitSurface(s) }

func (s *SurfaceNode) VisitChildren(v Visitor) {
	s.children.Each(func(r list.Ref[*SurfaceNode]) bool {
		v.VisitSurface(r.Value())
		return true
	})
}

func (s *SurfaceNode) SetVisible(visible bool) {
	s.visible = visible
	s.children.Each(func(r list.Ref[*SurfaceNode]) bool {
		r.Value().SetVisible(visible)
		return true
	})
	s.seatState.SetVisible(s, visible)
}

func (s *SurfaceNode) ChangeExtents(r geom.Rect) {
	s.position = r
}

func (s *SurfaceNode) FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult {
	result := AcceptsInput
	s.children.Each(func(ref list.Ref[*SurfaceNode]) bool {
		child := ref.Value()
		pos := child.AbsolutePosition()
		if !pos.Contains(geom.Point{X: x, Y: y}) {
			return true
		}
		*out = append(*out, FoundNode{Node: child, X: x - pos.X1(), Y: y - pos.Y1()})
		child.FindTreeAt(x-pos.X1(), y-pos.Y1(), out)
		return false
	})
	return result
}

func (s *SurfaceNode) RemoveChild(child Node) {
	sn, ok := child.(*SurfaceNode)
	if !ok {
		return
	}
	if ref, ok := s.links[sn.ID()]; ok {
		ref.Remove()
		delete(s.links, sn.ID())
	}
}

func (s *SurfaceNode) PointerFocus(seat *Seat) { defaultPointerFocus(s, seat) }

func (s *SurfaceNode) Render(r Renderer, x, y int) {
	r.RenderSurface(s, x, y)
	s.children.Each(func(ref list.Ref[*SurfaceNode]) bool {
		child := ref.Value()
		pos := child.AbsolutePosition()
		child.Render(r, x+pos.X1()-s.position.X1(), y+pos.Y1()-s.position.Y1())
		return true
	})
}

func (s *SurfaceNode) AcceptsChild(n Node) bool { return n.IsSurface() }

func (s *SurfaceNode) DestroyNode(detach bool) {
	if detach && s.parent != nil {
		s.parent.RemoveChild(s)
	}
	s.children.Each(func(ref list.Ref[*SurfaceNode]) bool {
		ref.Value().DestroyNode(false)
		return true
	})
	s.seatState.DestroyNode(s)
}

func (s *SurfaceNode) IsDisplay() bool   { return false }
func (s *SurfaceNode) IsOutput() bool    { return false }
func (s *SurfaceNode) IsWorkspace() bool { return false }
func (s *SurfaceNode) IsContainer() bool { return false }
func (s *SurfaceNode) IsSurface() bool   { return true }
