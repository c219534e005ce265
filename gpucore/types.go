// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each Device implementation
// maintains a mapping between IDs and actual backend resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// TextureViewID is an opaque handle to a view of a GPU texture.
type TextureViewID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// Fixed binding slots shared by every gx shader.
const (
	// SlotResources is the bind group index for per-primitive resources
	// (an image's texture and sampler).
	SlotResources uint32 = 0

	// SlotGlobals is the bind group index for per-frame globals
	// (the camera's view-projection uniform).
	SlotGlobals uint32 = 1

	// VertexBufferSlot is the vertex buffer slot used by every primitive.
	VertexBufferSlot uint32 = 0
)

// BufferDescriptor describes a buffer created from initial contents.
//
// Buffers are sized to len(Contents) and hold a byte-exact copy of it once
// CreateBuffer returns.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Usage specifies how the buffer will be used.
	Usage gputypes.BufferUsage

	// Contents is uploaded verbatim at creation.
	Contents []byte
}

// TextureDescriptor describes a 2D texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Size is the texture extent. DepthOrArrayLayers is 1 for 2D textures.
	Size gputypes.Extent3D

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	Label string

	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode

	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// BindGroupLayoutDescriptor describes a bind group layout.
type BindGroupLayoutDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Entries defines the bindings in this layout.
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupEntry describes a single binding in a bind group.
// Exactly one of Buffer, TextureView or Sampler is set.
type BindGroupEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Buffer is the buffer to bind (for buffer bindings).
	Buffer BufferID

	// Offset is the offset into the buffer.
	Offset uint64

	// Size is the size of the buffer range to bind.
	// Use 0 to bind the entire buffer from offset.
	Size uint64

	// TextureView is the view to bind (for texture bindings).
	TextureView TextureViewID

	// Sampler is the sampler to bind (for sampler bindings).
	Sampler SamplerID
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Layout is the bind group layout.
	Layout BindGroupLayoutID

	// Entries are the resource bindings.
	Entries []BindGroupEntry
}

// TextureDataLayout describes how texel data is laid out in a byte slice.
type TextureDataLayout struct {
	Offset       uint64
	BytesPerRow  uint32
	RowsPerImage uint32
}
