// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"fmt"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/buffer"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/vertex"
)

// quadIndices splits the quad along the bottom-left/top-right diagonal
// into two counter-clockwise triangles.
var quadIndices = [6]uint16{0, 3, 2, 0, 1, 3}

// QuadIndices returns the index list shared by every quad.
func QuadIndices() [6]uint16 { return quadIndices }

// Quad is an indexed quadrilateral of four vertices in the order
// bottom-left, bottom-right, top-left, top-right.
type Quad[T vertex.Vertex] struct {
	vertices *buffer.VertexBuffer[T]
	indices  *buffer.IndexBuffer
}

// NewQuad uploads four vertices and the six quad indices.
func NewQuad[T vertex.Vertex](ctx gpucore.Context, label string, vertices [4]T) (*Quad[T], error) {
	vb, err := buffer.NewVertexBuffer(ctx, label+"-vertices", vertices[:])
	if err != nil {
		return nil, err
	}
	idx := quadIndices
	ib, err := buffer.NewIndexBuffer(ctx, label+"-indices", idx[:])
	if err != nil {
		vb.Destroy()
		return nil, err
	}
	return &Quad[T]{vertices: vb, indices: ib}, nil
}

// ColoredQuad builds a quad covering r with a uniform color at z = 0.
func ColoredQuad(ctx gpucore.Context, label string, r gx.Rect, color [3]float32) (*Quad[vertex.Colored], error) {
	if r.Empty() {
		return nil, fmt.Errorf("shape: quad %q: %w", label, ErrEmptyRect)
	}
	var vs [4]vertex.Colored
	for i, c := range r.Corners() {
		vs[i] = vertex.Colored{Position: [3]float32{c.X(), c.Y(), 0}, Color: color}
	}
	return NewQuad(ctx, label, vs)
}

// Draw binds the vertex then index buffer and issues DrawIndexed(6, 1, 0, 0, 0).
func (q *Quad[T]) Draw(pass gpucore.RenderPass) {
	q.vertices.Bind(pass)
	q.indices.Bind(pass)
	pass.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
}

// Vertices returns the four vertices.
func (q *Quad[T]) Vertices() [4]T {
	return [4]T(q.vertices.Vertices())
}

// VertexBuffer returns the underlying vertex buffer.
func (q *Quad[T]) VertexBuffer() *buffer.VertexBuffer[T] { return q.vertices }

// IndexBuffer returns the underlying index buffer.
func (q *Quad[T]) IndexBuffer() *buffer.IndexBuffer { return q.indices }

// Destroy releases both GPU buffers.
func (q *Quad[T]) Destroy() {
	q.indices.Destroy()
	q.vertices.Destroy()
}

var _ gpucore.Drawable = (*Quad[vertex.Textured])(nil)
