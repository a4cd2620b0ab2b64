package scene

import (
	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/list"
)

// ContainerNode is a tiling arrangement of child surfaces within a
// workspace (spec.md §3). Layout itself is a policy concern out of
// scope for this core (spec.md §1 Non-goals exclude the compositing
// algorithm); ContainerNode implements the one layout spec.md does
// require an invariant for — an even horizontal split — so
// ChangeExtents has somewhere concrete to propagate to, the minimum
// needed to satisfy "extents propagate from parent to children on any
// change" (spec.md §3).
type ContainerNode struct {
	base

	workspace *WorkspaceNode
	children  *list.List[Node]
	links     map[ID]list.Ref[Node]
}

// NewContainer returns an empty container.
func NewContainer() *ContainerNode {
	c := &ContainerNode{base: newBase()}
	c.children = list.New[Node]()
	c.links = make(map[ID]list.Ref[Node])
	return c
}

// Workspace returns the workspace this container tiles within, or nil.
func (c *ContainerNode) Workspace() *WorkspaceNode { return c.workspace }

// AddChild appends a child surface to the tiling order.
func (c *ContainerNode) AddChild(n Node) {
	ref := c.children.PushBack(n)
	c.links[n.ID()] = ref
	c.layout()
}

// Children returns a snapshot of the container's children in tiling
// order.
func (c *ContainerNode) Children() []Node {
	var out []Node
	c.children.Each(func(r list.Ref[Node]) bool {
		out = append(out, r.Value())
		return true
	})
	return out
}

// layout divides the container's current extents evenly among its
// children left to right and re-propagates.
func (c *ContainerNode) layout() {
	children := c.Children()
	if len(children) == 0 {
		return
	}
	w := c.position.W / len(children)
	x := c.position.X
	for i, child := range children {
		cw := w
		if i == len(children)-1 {
			cw = c.position.X2() - x
		}
		child.ChangeExtents(geom.NewRect(x, c.position.Y, cw, c.position.H))
		x += cw
	}
}

func (c *ContainerNode) Visit(v Visitor) { v.VisitContainer(c) }

func (c *ContainerNode) VisitChildren(v Visitor) {
	c.children.Each(func(r list.Ref[Node]) bool {
		r.Value().Visit(v)
		return true
	})
}

func (c *ContainerNode) SetVisible(visible bool) {
	c.visible = visible
	c.children.Each(func(r list.Ref[Node]) bool {
		r.Value().SetVisible(visible)
		return true
	})
	c.seatState.SetVisible(c, visible)
}

func (c *ContainerNode) ChangeExtents(r geom.Rect) {
	c.position = r
	c.layout()
}

func (c *ContainerNode) FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult {
	result := DeniesInput
	c.children.Each(func(ref list.Ref[Node]) bool {
		child := ref.Value()
		pos := child.AbsolutePosition()
		if !pos.Contains(geom.Point{X: x, Y: y}) {
			return true
		}
		*out = append(*out, FoundNode{Node: child, X: x - pos.X1(), Y: y - pos.Y1()})
		if child.FindTreeAt(x-pos.X1(), y-pos.Y1(), out) == AcceptsInput {
			result = AcceptsInput
			return false
		}
		return true
	})
	return result
}

func (c *ContainerNode) RemoveChild(child Node) {
	if ref, ok := c.links[child.ID()]; ok {
		ref.Remove()
		delete(c.links, child.ID())
		c.layout()
	}
}

func (c *ContainerNode) PointerFocus(seat *Seat) { defaultPointerFocus(c, seat) }

func (c *ContainerNode) Render(r Renderer, x, y int) {
	r.RenderContainer(c, x, y)
	c.children.Each(func(ref list.Ref[Node]) bool {
		child := ref.Value()
		pos := child.AbsolutePosition()
		child.Render(r, x+pos.X1()-c.position.X1(), y+pos.Y1()-c.position.Y1())
		return true
	})
}

func (c *ContainerNode) AcceptsChild(n Node) bool { return n.IsSurface() || n.IsContainer() }

func (c *ContainerNode) DestroyNode(detach bool) {
	if detach && c.workspace != nil {
		c.workspace.RemoveChild(c)
	}
	c.children.Each(func(ref list.Ref[Node]) bool {
		ref.Value().DestroyNode(false)
		return true
	})
	c.seatState.DestroyNode(c)
}

func (c *ContainerNode) IsDisplay() bool   { return false }
func (c *ContainerNode) IsOutput() bool    { return false }
func (c *ContainerNode) IsWorkspace() bool { return false }
func (c *ContainerNode) IsContainer() bool { return true }
func (c *ContainerNode) IsSurface() bool   { return false }
