// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"github.com/gogpu/gx/buffer"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/vertex"
)

// Triangle is a single non-indexed triangle.
type Triangle[T vertex.Vertex] struct {
	vertices *buffer.VertexBuffer[T]
}

// NewTriangle uploads three vertices.
func NewTriangle[T vertex.Vertex](ctx gpucore.Context, label string, vertices [3]T) (*Triangle[T], error) {
	vb, err := buffer.NewVertexBuffer(ctx, label, vertices[:])
	if err != nil {
		return nil, err
	}
	return &Triangle[T]{vertices: vb}, nil
}

// Draw binds the vertex buffer and issues Draw(3, 1, 0, 0).
func (t *Triangle[T]) Draw(pass gpucore.RenderPass) {
	t.vertices.Bind(pass)
	pass.Draw(3, 1, 0, 0)
}

// Vertices returns the three vertices.
func (t *Triangle[T]) Vertices() [3]T {
	return [3]T(t.vertices.Vertices())
}

// VertexBuffer returns the underlying vertex buffer.
func (t *Triangle[T]) VertexBuffer() *buffer.VertexBuffer[T] { return t.vertices }

// Destroy releases the GPU buffer.
func (t *Triangle[T]) Destroy() {
	t.vertices.Destroy()
}

var _ gpucore.Drawable = (*Triangle[vertex.Colored])(nil)
