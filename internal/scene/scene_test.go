package scene_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaywm/jayd/internal/geom"
	"github.com/jaywm/jayd/internal/scene"
)

type countingRenderer struct {
	outputs, workspaces, containers, surfaces int
}

func (r *countingRenderer) RenderOutput(n *scene.OutputNode, x, y int)       { r.outputs++ }
func (r *countingRenderer) RenderWorkspace(n *scene.WorkspaceNode, x, y int) { r.workspaces++ }
func (r *countingRenderer) RenderContainer(n *scene.ContainerNode, x, y int) { r.containers++ }
func (r *countingRenderer) RenderSurface(n *scene.SurfaceNode, x, y int)     { r.surfaces++ }

func buildTree(t *testing.T) (*scene.DisplayNode, *scene.OutputNode, *scene.WorkspaceNode, *scene.ContainerNode, *scene.SurfaceNode) {
	t.Helper()
	d := scene.NewDisplay()
	o := scene.NewOutputNode(scene.OutputIdentity{Connector: "DP-1"})
	d.AddOutput(o)
	o.ChangeExtents(geom.NewRect(0, 0, 1920, 1080))

	ws := scene.NewWorkspace("1")
	o.AddWorkspace(ws)
	o.SetVisibleWorkspace(ws)

	c := scene.NewContainer()
	ws.SetContainer(c)

	s := scene.NewSurface()
	c.AddChild(s)

	return d, o, ws, c, s
}

func TestVisibilityPropagatesToDescendants(t *testing.T) {
	d, o, ws, c, s := buildTree(t)
	require.True(t, ws.Visible())
	require.True(t, c.Visible())
	require.True(t, s.Visible())

	o.SetVisible(false)
	require.False(t, ws.Visible())
	require.False(t, c.Visible())
	require.False(t, s.Visible())
	_ = d
}

func TestAtMostOneVisibleWorkspacePerOutput(t *testing.T) {
	_, o, ws1, _, _ := buildTree(t)
	ws2 := scene.NewWorkspace("2")
	o.AddWorkspace(ws2)

	require.True(t, ws1.Visible())
	require.False(t, ws2.Visible())

	o.SetVisibleWorkspace(ws2)
	require.False(t, ws1.Visible())
	require.True(t, ws2.Visible())
	require.Equal(t, ws2, o.VisibleWorkspace())
}

func TestChangeExtentsPropagatesToLeaves(t *testing.T) {
	_, o, _, _, s := buildTree(t)
	o.ChangeExtents(geom.NewRect(100, 50, 800, 600))
	pos := s.AbsolutePosition()
	require.True(t, geom.NewRect(100, 50, 800, 600).Contains(pos.Position()),
		"leaf position %v must fall within the new root extents", pos)
}

func TestFindTreeAtReachesLeafSurface(t *testing.T) {
	d, _, _, _, s := buildTree(t)
	var found []scene.FoundNode
	result := d.FindTreeAt(10, 10, &found)
	require.Equal(t, scene.AcceptsInput, result)
	require.NotEmpty(t, found)
	require.Equal(t, s, found[len(found)-1].Node)
}

func TestRenderWalksEntireVisibleSubtree(t *testing.T) {
	d, _, _, _, _ := buildTree(t)
	r := &countingRenderer{}
	d.Render(r, 0, 0)
	require.Equal(t, 1, r.outputs)
	require.Equal(t, 1, r.workspaces)
	require.Equal(t, 1, r.containers)
	require.Equal(t, 1, r.surfaces)
}

func TestDestroyNodeDetachesFromParent(t *testing.T) {
	_, o, ws, _, _ := buildTree(t)
	ws.DestroyNode(true)
	require.Empty(t, o.Workspaces())
	require.Nil(t, o.VisibleWorkspace())
}

func TestSeatFocusRetractedWhenNodeHidden(t *testing.T) {
	_, _, _, _, s := buildTree(t)
	seat := scene.NewSeat("seat0")
	s.PointerFocus(seat)
	s.SeatState().Enter(seat)
	require.Equal(t, scene.Node(s), seat.PointerFocus())

	s.SetVisible(false)
	require.Nil(t, seat.PointerFocus())
}
