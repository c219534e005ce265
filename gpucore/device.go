// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "github.com/gogpu/gputypes"

// Device allocates GPU resources.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - IDs become invalid after destruction and must not be reused
//
// A failed Create* call allocates nothing.
type Device interface {
	// CreateBuffer creates a buffer holding desc.Contents.
	CreateBuffer(desc *BufferDescriptor) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// CreateTexture creates a GPU texture.
	CreateTexture(desc *TextureDescriptor) (TextureID, error)

	// DestroyTexture releases a GPU texture.
	DestroyTexture(id TextureID)

	// CreateTextureView creates a full-resource 2D view of a texture.
	CreateTextureView(texture TextureID, label string) (TextureViewID, error)

	// DestroyTextureView releases a texture view.
	DestroyTextureView(id TextureViewID)

	// CreateSampler creates a texture sampler.
	CreateSampler(desc *SamplerDescriptor) (SamplerID, error)

	// DestroySampler releases a sampler.
	DestroySampler(id SamplerID)

	// CreateBindGroupLayout creates a bind group layout.
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayoutID, error)

	// DestroyBindGroupLayout releases a bind group layout.
	DestroyBindGroupLayout(id BindGroupLayoutID)

	// CreateBindGroup binds actual resources to a bind group layout.
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroupID, error)

	// DestroyBindGroup releases a bind group.
	DestroyBindGroup(id BindGroupID)
}

// Queue uploads data to existing GPU resources.
type Queue interface {
	// WriteBuffer writes data into a buffer at the given byte offset.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// WriteTexture writes texel data into mip level 0 of a texture.
	WriteTexture(id TextureID, data []byte, layout TextureDataLayout, size gputypes.Extent3D)
}

// RenderPass records binding and draw commands.
//
// A render pass is a transient, exclusively borrowed resource: binding
// calls happen in strict sequence from a single goroutine.
type RenderPass interface {
	// SetVertexBuffer binds a vertex buffer to a slot.
	SetVertexBuffer(slot uint32, buffer BufferID)

	// SetIndexBuffer binds the index buffer for indexed draws.
	SetIndexBuffer(buffer BufferID, format gputypes.IndexFormat)

	// SetBindGroup binds a bind group at the given index.
	SetBindGroup(index uint32, group BindGroupID)

	// Draw issues a non-indexed draw call.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed issues an indexed draw call.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// Context is the device and queue pair supplied by the rendering driver.
type Context struct {
	Device Device
	Queue  Queue
}

// Valid reports whether both the device and the queue are set.
func (c Context) Valid() bool {
	return c.Device != nil && c.Queue != nil
}

// Bindable is a resource that attaches itself to a render pass slot.
type Bindable interface {
	Bind(pass RenderPass)
}

// Drawable binds all of its resources and issues exactly one draw call.
type Drawable interface {
	Draw(pass RenderPass)
}
