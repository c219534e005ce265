// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vertex defines vertex records and the attribute layouts that tell
// the GPU how to read them.
//
// Every layout is computed from the Go struct itself (unsafe.Sizeof and
// unsafe.Offsetof), so shader inputs always match CPU-side packing.
package vertex

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// Attribute describes one shader input read from a vertex record.
type Attribute struct {
	// Offset is the byte offset of the field within the record.
	Offset uint64

	// ShaderLocation is the @location index in the vertex shader.
	ShaderLocation uint32

	// Format is the numeric format of the field.
	Format gputypes.VertexFormat

	// Components is the number of scalar components (3 for vec3<f32>).
	Components int
}

// Layout describes a vertex record: its byte stride and its attributes in
// increasing offset order.
type Layout struct {
	Stride     uint64
	Attributes []Attribute
}

// BufferLayout converts the layout to the descriptor used when building a
// render pipeline. Records are stepped per vertex.
func (l Layout) BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         a.Offset,
			ShaderLocation: a.ShaderLocation,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: l.Stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// Vertex is implemented by every vertex record type. Layout must be a pure
// function of the type.
type Vertex interface {
	comparable
	Layout() Layout
}

// Colored is a vertex with a position and an RGB color.
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
type Colored struct {
	Position [3]float32
	Color    [3]float32
}

// Layout returns the attribute layout of Colored.
func (Colored) Layout() Layout {
	var v Colored
	return Layout{
		Stride: uint64(unsafe.Sizeof(v)),
		Attributes: []Attribute{
			{Offset: uint64(unsafe.Offsetof(v.Position)), ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Components: 3},
			{Offset: uint64(unsafe.Offsetof(v.Color)), ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x3, Components: 3},
		},
	}
}

// Textured is a vertex with a position and a texture coordinate.
//
//	position  (vec3<f32>) = 12 bytes (location 0)
//	tex_coord (vec2<f32>) =  8 bytes (location 1)
type Textured struct {
	Position [3]float32
	TexCoord [2]float32
}

// Layout returns the attribute layout of Textured.
func (Textured) Layout() Layout {
	var v Textured
	return Layout{
		Stride: uint64(unsafe.Sizeof(v)),
		Attributes: []Attribute{
			{Offset: uint64(unsafe.Offsetof(v.Position)), ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Components: 3},
			{Offset: uint64(unsafe.Offsetof(v.TexCoord)), ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Components: 2},
		},
	}
}

// LayoutOf returns the layout of T without needing a value.
func LayoutOf[T Vertex]() Layout {
	var zero T
	return zero.Layout()
}

// Bytes returns a copy of the in-memory representation of s.
// The result has length len(s) * unsafe.Sizeof(T).
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(s[0])) * len(s)
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size))
	return out
}
