// Package gpu provides the backend abstraction layer for the renderer.
//
// This package defines the Backend interface that abstracts over different
// WebGPU implementations. The only implementation in this module is the
// Rust backend (wgpu-native, gpu/backend/rust); no pure Go backend is
// present.
//
// # Backend Selection
//
// SelectBestBackend picks the highest-priority registered backend; a
// backend can also be created by its registered name:
//
//	// Auto-select (default)
//	b := gpu.SelectBestBackend()
//
//	// Explicit Rust backend
//	b := gpu.CreateBackend("rust")
//
//	gpu.SetBackend(b)
//
// # Architecture
//
// The gpu package defines:
//
//   - Backend: Interface for WebGPU operations
//   - BackendType: Enum for backend selection (Auto, Rust, Go)
//   - Handle types: Opaque references to GPU objects (Instance, Device, etc.)
//   - Configuration types: Options for adapters, devices, surfaces, pipelines
//
// # Handle Types
//
// GPU objects are represented as opaque handles (uintptr). This allows
// efficient backend switching without exposing implementation details:
//
//	type Instance uintptr
//	type Adapter uintptr
//	type Device uintptr
//	type Queue uintptr
//	type Surface uintptr
//	type Texture uintptr
//	type ShaderModule uintptr
//	type RenderPipeline uintptr
//
// # Subpackages
//
//   - gpu/backend/rust: Rust backend using go-webgpu/webgpu
//
// # WebGPU Compatibility
//
// This package follows the WebGPU specification where applicable.
// Types and methods are named to match WebGPU conventions while
// following Go naming conventions.
package gpu
