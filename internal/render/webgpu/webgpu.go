// Package webgpu provides the one concrete, intentionally-thin
// scene.Renderer implementation: it walks the visible subtree the scene
// tree already computed and clears each output's current surface
// texture to a flat color per frame. spec.md §1 explicitly places "the
// pixel compositor/renderer" out of scope, so this package stops
// exactly at the black-box boundary scene.Renderer defines — it
// exercises gogpu's gpu.Backend abstraction (go-webgpu/webgpu via
// gpu/backend/rust) without specifying a compositing algorithm.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/jaywm/jayd/gpu"
	gomath "github.com/jaywm/jayd/math"

	"github.com/jaywm/jayd/internal/scene"
)

// SurfaceProvider resolves an OutputNode to the native window handle
// its surface should be created against. The concrete backend
// (headless, X11, DRM) supplies this; internal/render never interprets
// it, matching spec.md §1's "concrete X11/DRM backend byte-level
// transport ... deliberately out of scope".
type SurfaceProvider func(o *scene.OutputNode) (gpu.SurfaceHandle, bool)

// Renderer clears each visible output to ClearColor using the
// gpu.Backend passed to New or, if that was nil, the one
// gpu.SelectBestBackend returns when the renderer first initializes.
type Renderer struct {
	backend     gpu.Backend
	surfaces    SurfaceProvider
	ClearColor  gomath.Color
	instance    gpu.Instance
	device      gpu.Device
	queue       gpu.Queue

	mu       sync.Mutex
	perOut   map[*scene.OutputNode]gpu.Surface
	initOnce sync.Once
	initErr  error
}

// New returns a Renderer backed by backend (nil selects the best
// available one via gpu.SelectBestBackend). surfaces may be nil, in
// which case every RenderOutput call is a harmless no-op — useful when
// driving the scene tree under test without a real window system.
func New(backend gpu.Backend, surfaces SurfaceProvider) *Renderer {
	return &Renderer{
		backend:    backend,
		surfaces:   surfaces,
		ClearColor: gomath.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
		perOut:     make(map[*scene.OutputNode]gpu.Surface),
	}
}

func (r *Renderer) ensureInit() error {
	r.initOnce.Do(func() {
		if r.backend == nil {
			r.backend = gpu.SelectBestBackend()
		}
		if r.backend == nil {
			r.initErr = gpu.ErrNoBackendRegistered
			return
		}
		if err := r.backend.Init(); err != nil {
			r.initErr = fmt.Errorf("webgpu renderer: init backend: %w", err)
			return
		}
		inst, err := r.backend.CreateInstance()
		if err != nil {
			r.initErr = fmt.Errorf("webgpu renderer: create instance: %w", err)
			return
		}
		adapter, err := r.backend.RequestAdapter(inst, &gpu.AdapterOptions{PowerPreference: gpu.PowerPreferenceHighPerformance})
		if err != nil {
			r.initErr = fmt.Errorf("webgpu renderer: request adapter: %w", err)
			return
		}
		dev, err := r.backend.RequestDevice(adapter, &gpu.DeviceOptions{Label: "jayd-compositor"})
		if err != nil {
			r.initErr = fmt.Errorf("webgpu renderer: request device: %w", err)
			return
		}
		r.instance = inst
		r.device = dev
		r.queue = r.backend.GetQueue(dev)
	})
	return r.initErr
}

func (r *Renderer) surfaceFor(o *scene.OutputNode) (gpu.Surface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if surf, ok := r.perOut[o]; ok {
		return surf, true
	}
	if r.surfaces == nil {
		return 0, false
	}
	handle, ok := r.surfaces(o)
	if !ok {
		return 0, false
	}
	surf, err := r.backend.CreateSurface(r.instance, handle)
	if err != nil {
		return 0, false
	}
	pos := o.AbsolutePosition()
	r.backend.ConfigureSurface(surf, r.device, &gpu.SurfaceConfig{
		Format:      gpu.TextureFormatBGRA8Unorm,
		Usage:       gpu.TextureUsageRenderAttachment,
		Width:       uint32(pos.W),
		Height:      uint32(pos.H),
		PresentMode: gpu.PresentModeFifo,
		AlphaMode:   gpu.AlphaModeOpaque,
	})
	r.perOut[o] = surf
	return surf, true
}

// RenderOutput clears o's current surface texture to ClearColor. Every
// other Render* hook is a no-op: child workspaces/containers/surfaces
// are walked by the scene tree for focus and damage purposes, but
// actually compositing their pixel contents is exactly the "rendering
// algorithm" spec.md §1 places out of scope.
func (r *Renderer) RenderOutput(o *scene.OutputNode, x, y int) {
	if err := r.ensureInit(); err != nil {
		return
	}
	surf, ok := r.surfaceFor(o)
	if !ok {
		return
	}
	tex, err := r.backend.GetCurrentTexture(surf)
	if err != nil || tex.Status != gpu.SurfaceStatusSuccess {
		return
	}
	view := r.backend.CreateTextureView(tex.Texture, &gpu.TextureViewDescriptor{Format: gpu.TextureFormatBGRA8Unorm})
	defer r.backend.ReleaseTextureView(view)

	enc := r.backend.CreateCommandEncoder(r.device)
	defer r.backend.ReleaseCommandEncoder(enc)
	pass := r.backend.BeginRenderPass(enc, &gpu.RenderPassDescriptor{
		ColorAttachments: []gpu.ColorAttachment{{
			View:       view,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearColor: gpu.Color{R: float64(r.ClearColor.R), G: float64(r.ClearColor.G), B: float64(r.ClearColor.B), A: float64(r.ClearColor.A)},
		}},
	})
	r.backend.EndRenderPass(pass)
	defer r.backend.ReleaseRenderPass(pass)

	buf := r.backend.FinishEncoder(enc)
	defer r.backend.ReleaseCommandBuffer(buf)
	r.backend.Submit(r.queue, buf)
	r.backend.Present(surf)
}

func (r *Renderer) RenderWorkspace(n *scene.WorkspaceNode, x, y int) {}
func (r *Renderer) RenderContainer(n *scene.ContainerNode, x, y int) {}
func (r *Renderer) RenderSurface(n *scene.SurfaceNode, x, y int)     {}

var _ scene.Renderer = (*Renderer)(nil)
