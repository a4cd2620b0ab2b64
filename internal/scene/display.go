package scene

import (
	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/list"
)

// DisplayNode is the scene tree's root: the only node with no parent.
// Its children are OutputNodes, ordered left-to-right by insertion
// (the connector lifecycle inserts new outputs to the right of the
// existing rightmost one, per spec.md §4.7).
type DisplayNode struct {
	base

	outputs *list.List[*OutputNode]
	// outputLinks lets RemoveOutput find and unlink an output's list
	// element in O(1) without a linear scan.
	outputLinks map[ID]list.Ref[*OutputNode]

	// OnTreeChanged, if set, is invoked whenever the output set or any
	// workspace's visibility changes, the compositor's signal to
	// schedule a repaint. Grounded on spec.md §4.7's "signal a tree
	// change" call sites.
	OnTreeChanged func()
}

// NewDisplay returns an empty display root.
func NewDisplay() *DisplayNode {
	d := &DisplayNode{base: newBase()}
	d.visible = true
	d.outputs = list.New[*OutputNode]()
	d.outputLinks = make(map[ID]list.Ref[*OutputNode])
	return d
}

// AddOutput appends o as the rightmost output.
func (d *DisplayNode) AddOutput(o *OutputNode) {
	ref := d.outputs.PushBack(o)
	d.outputLinks[o.ID()] = ref
	o.parent = d
	d.UpdateExtents()
}

// RemoveOutput detaches o from the display root.
func (d *DisplayNode) RemoveOutput(o *OutputNode) {
	if ref, ok := d.outputLinks[o.ID()]; ok {
		ref.Remove()
		delete(d.outputLinks, o.ID())
	}
	o.parent = nil
	d.UpdateExtents()
}

// Outputs returns a snapshot of the currently attached outputs,
// left-to-right.
func (d *DisplayNode) Outputs() []*OutputNode {
	var out []*OutputNode
	d.outputs.Each(func(r list.Ref[*OutputNode]) bool {
		out = append(out, r.Value())
		return true
	})
	return out
}

// RightmostX2 returns the right edge of the rightmost output's extents,
// or 0 if there are none — the placement rule a freshly connected
// desktop output without a persisted position uses (spec.md §4.7).
func (d *DisplayNode) RightmostX2() int {
	max := 0
	d.outputs.Each(func(r list.Ref[*OutputNode]) bool {
		if x2 := r.Value().AbsolutePosition().X2(); x2 > max {
			max = x2
		}
		return true
	})
	return max
}

// UpdateExtents recomputes nothing for the display itself (it has no
// rectangle of its own) but signals that the tree changed, matching the
// Rust root.update_extents() call sites that exist purely to trigger a
// repaint after the output set changes.
func (d *DisplayNode) UpdateExtents() {
	d.TreeChanged()
}

// TreeChanged invokes OnTreeChanged if set.
func (d *DisplayNode) TreeChanged() {
	if d.OnTreeChanged != nil {
		d.OnTreeChanged()
	}
}

func (d *DisplayNode) Visit(v Visitor) { v.VisitDisplay(d) }

func (d *DisplayNode) VisitChildren(v Visitor) {
	d.outputs.Each(func(r list.Ref[*OutputNode]) bool {
		v.VisitOutput(r.Value())
		return true
	})
}

func (d *DisplayNode) SetVisible(visible bool) {
	d.visible = visible
	d.outputs.Each(func(r list.Ref[*OutputNode]) bool {
		r.Value().SetVisible(visible)
		return true
	})
	d.seatState.SetVisible(d, visible)
}

func (d *DisplayNode) ChangeExtents(r geom.Rect) {
	d.position = r
}

func (d *DisplayNode) FindTreeAt(x, y int, out *[]FoundNode) FindTreeResult {
	result := DeniesInput
	d.outputs.Each(func(ref list.Ref[*OutputNode]) bool {
		o := ref.Value()
		pos := o.AbsolutePosition()
		if !pos.Contains(geom.Point{X: x, Y: y}) {
			return true
		}
		*out = append(*out, FoundNode{Node: o, X: x - pos.X1(), Y: y - pos.Y1()})
		if o.FindTreeAt(x-pos.X1(), y-pos.Y1(), out) == AcceptsInput {
			result = AcceptsInput
		}
		return result == DeniesInput
	})
	return result
}

func (d *DisplayNode) RemoveChild(child Node) {
	if o, ok := child.(*OutputNode); ok {
		d.RemoveOutput(o)
	}
}

func (d *DisplayNode) PointerFocus(seat *Seat) { defaultPointerFocus(d, seat) }

func (d *DisplayNode) Render(r Renderer, x, y int) {
	d.outputs.Each(func(ref list.Ref[*OutputNode]) bool {
		o := ref.Value()
		pos := o.AbsolutePosition()
		o.Render(r, x+pos.X1(), y+pos.Y1())
		return true
	})
}

func (d *DisplayNode) AcceptsChild(n Node) bool { return n.IsOutput() }

func (d *DisplayNode) DestroyNode(detach bool) {
	d.outputs.Each(func(ref list.Ref[*OutputNode]) bool {
		ref.Value().DestroyNode(false)
		return true
	})
}

func (d *DisplayNode) IsDisplay() bool   { return true }
func (d *DisplayNode) IsOutput() bool    { return false }
func (d *DisplayNode) IsWorkspace() bool { return false }
func (d *DisplayNode) IsContainer() bool { return false }
func (d *DisplayNode) IsSurface() bool   { return false }
