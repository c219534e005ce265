// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package buffer provides immutable GPU vertex and index buffers.
//
// A buffer owns a fixed-length CPU copy of its records together with the
// GPU buffer created once from that copy's raw bytes. There is no partial
// update: create a new buffer to change the data.
package buffer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/vertex"
)

// Buffer errors.
var (
	// ErrEmpty is returned when creating a buffer from zero records.
	ErrEmpty = errors.New("buffer: no data")

	// ErrInvalidContext is returned when the context has no device or queue.
	ErrInvalidContext = errors.New("buffer: context has no device or queue")
)

// IndexFormat is the index width used by every IndexBuffer.
const IndexFormat = gputypes.IndexFormatUint16

// create uploads contents into a new GPU buffer.
func create(ctx gpucore.Context, label string, usage gputypes.BufferUsage, contents []byte) (gpucore.BufferID, error) {
	if !ctx.Valid() {
		return gpucore.InvalidID, ErrInvalidContext
	}
	if len(contents) == 0 {
		return gpucore.InvalidID, fmt.Errorf("%s: %w", label, ErrEmpty)
	}
	id, err := ctx.Device.CreateBuffer(&gpucore.BufferDescriptor{
		Label:    label,
		Usage:    usage,
		Contents: contents,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("buffer: create %q: %w: %w", label, gx.ErrResourceAllocation, err)
	}
	gx.Logger().Debug("buffer created", "label", label, "size", len(contents))
	return id, nil
}

// VertexBuffer is an immutable sequence of vertex records and its GPU copy.
type VertexBuffer[T vertex.Vertex] struct {
	vertices []T
	data     []byte
	id       gpucore.BufferID
	device   gpucore.Device
}

// NewVertexBuffer copies vertices and uploads their memory image to a new
// GPU buffer tagged with BufferUsageVertex. The length is fixed for the
// lifetime of the buffer.
func NewVertexBuffer[T vertex.Vertex](ctx gpucore.Context, label string, vertices []T) (*VertexBuffer[T], error) {
	if label == "" {
		label = "vertex_buffer"
	}
	data := vertex.Bytes(vertices)
	id, err := create(ctx, label, gputypes.BufferUsageVertex, data)
	if err != nil {
		return nil, err
	}
	return &VertexBuffer[T]{
		vertices: slices.Clone(vertices),
		data:     data,
		id:       id,
		device:   ctx.Device,
	}, nil
}

// Bind attaches the buffer to vertex slot 0. It must precede any draw call
// that reads vertex data.
func (b *VertexBuffer[T]) Bind(pass gpucore.RenderPass) {
	pass.SetVertexBuffer(gpucore.VertexBufferSlot, b.id)
}

// Len returns the number of vertices.
func (b *VertexBuffer[T]) Len() int { return len(b.vertices) }

// Size returns the GPU buffer size in bytes.
func (b *VertexBuffer[T]) Size() uint64 { return uint64(len(b.data)) }

// ID returns the GPU buffer handle.
func (b *VertexBuffer[T]) ID() gpucore.BufferID { return b.id }

// Layout returns the attribute layout of T.
func (b *VertexBuffer[T]) Layout() vertex.Layout { return vertex.LayoutOf[T]() }

// Vertices returns a copy of the vertices.
func (b *VertexBuffer[T]) Vertices() []T { return slices.Clone(b.vertices) }

// Bytes returns a copy of the bytes uploaded at creation.
func (b *VertexBuffer[T]) Bytes() []byte { return slices.Clone(b.data) }

// Destroy releases the GPU buffer. Safe to call multiple times.
func (b *VertexBuffer[T]) Destroy() {
	if b.id == gpucore.InvalidID {
		return
	}
	b.device.DestroyBuffer(b.id)
	b.id = gpucore.InvalidID
}

// IndexBuffer is an immutable sequence of 16-bit indices and its GPU copy.
//
// Every index must be less than the vertex count of the buffer it indexes.
// That is the caller's contract and is not checked here.
type IndexBuffer struct {
	indices []uint16
	data    []byte
	id      gpucore.BufferID
	device  gpucore.Device
}

// NewIndexBuffer copies indices and uploads them to a new GPU buffer tagged
// with BufferUsageIndex.
func NewIndexBuffer(ctx gpucore.Context, label string, indices []uint16) (*IndexBuffer, error) {
	if label == "" {
		label = "index_buffer"
	}
	data := vertex.Bytes(indices)
	id, err := create(ctx, label, gputypes.BufferUsageIndex, data)
	if err != nil {
		return nil, err
	}
	return &IndexBuffer{
		indices: slices.Clone(indices),
		data:    data,
		id:      id,
		device:  ctx.Device,
	}, nil
}

// Bind attaches the buffer to the index slot with a 16-bit index format.
func (b *IndexBuffer) Bind(pass gpucore.RenderPass) {
	pass.SetIndexBuffer(b.id, IndexFormat)
}

// Len returns the number of indices.
func (b *IndexBuffer) Len() int { return len(b.indices) }

// Size returns the GPU buffer size in bytes.
func (b *IndexBuffer) Size() uint64 { return uint64(len(b.data)) }

// ID returns the GPU buffer handle.
func (b *IndexBuffer) ID() gpucore.BufferID { return b.id }

// Indices returns a copy of the indices.
func (b *IndexBuffer) Indices() []uint16 { return slices.Clone(b.indices) }

// Bytes returns a copy of the bytes uploaded at creation.
func (b *IndexBuffer) Bytes() []byte { return slices.Clone(b.data) }

// Destroy releases the GPU buffer. Safe to call multiple times.
func (b *IndexBuffer) Destroy() {
	if b.id == gpucore.InvalidID {
		return
	}
	b.device.DestroyBuffer(b.id)
	b.id = gpucore.InvalidID
}

var (
	_ gpucore.Bindable = (*VertexBuffer[vertex.Colored])(nil)
	_ gpucore.Bindable = (*IndexBuffer)(nil)
)
