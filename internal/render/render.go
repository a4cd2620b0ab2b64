// Package render wires the scene tree's black-box rendering hook
// (spec.md §1 Non-goals: "no specification of the rendering algorithm")
// to a concrete GPU backend. The scene tree only ever sees
// scene.Renderer; this package, and its internal/render/webgpu
// subpackage, are the one place that boundary is crossed for real.
package render

import "github.com/jaywm/jayd/internal/scene"

// NopRenderer discards every call. Used by tests and by cmd/jayd when
// started with --backend=headless and no display attached: the scene
// tree still walks and damage still gets acknowledged, nothing is drawn.
type NopRenderer struct{}

func (NopRenderer) RenderOutput(n *scene.OutputNode, x, y int)       {}
func (NopRenderer) RenderWorkspace(n *scene.WorkspaceNode, x, y int) {}
func (NopRenderer) RenderContainer(n *scene.ContainerNode, x, y int) {}
func (NopRenderer) RenderSurface(n *scene.SurfaceNode, x, y int)     {}

var _ scene.Renderer = NopRenderer{}
