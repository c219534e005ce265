// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColoredLayout(t *testing.T) {
	l := Colored{}.Layout()
	if l.Stride != 24 {
		t.Errorf("Stride = %d, want 24", l.Stride)
	}
	want := []Attribute{
		{Offset: 0, ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Components: 3},
		{Offset: 12, ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x3, Components: 3},
	}
	assertAttributes(t, l.Attributes, want)
}

func TestTexturedLayout(t *testing.T) {
	l := Textured{}.Layout()
	if l.Stride != 20 {
		t.Errorf("Stride = %d, want 20", l.Stride)
	}
	want := []Attribute{
		{Offset: 0, ShaderLocation: 0, Format: gputypes.VertexFormatFloat32x3, Components: 3},
		{Offset: 12, ShaderLocation: 1, Format: gputypes.VertexFormatFloat32x2, Components: 2},
	}
	assertAttributes(t, l.Attributes, want)
}

func assertAttributes(t *testing.T, got, want []Attribute) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLayoutInvariants(t *testing.T) {
	for name, l := range map[string]Layout{
		"Colored":  LayoutOf[Colored](),
		"Textured": LayoutOf[Textured](),
	} {
		t.Run(name, func(t *testing.T) {
			var end uint64
			for i, a := range l.Attributes {
				if i > 0 && a.Offset <= l.Attributes[i-1].Offset {
					t.Errorf("attribute %d offset %d not increasing", i, a.Offset)
				}
				end = a.Offset + uint64(a.Components)*4
			}
			if end != l.Stride {
				t.Errorf("last attribute ends at %d, stride is %d", end, l.Stride)
			}
		})
	}
}

func TestLayoutIsPure(t *testing.T) {
	a, b := LayoutOf[Colored](), LayoutOf[Colored]()
	a.Attributes[0].Offset = 99
	if b.Attributes[0].Offset != 0 {
		t.Error("Layout() results share attribute storage")
	}
}

func TestBufferLayout(t *testing.T) {
	bl := LayoutOf[Textured]().BufferLayout()
	if bl.ArrayStride != 20 {
		t.Errorf("ArrayStride = %d, want 20", bl.ArrayStride)
	}
	if bl.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want vertex", bl.StepMode)
	}
	if len(bl.Attributes) != 2 || bl.Attributes[1].Offset != 12 || bl.Attributes[1].ShaderLocation != 1 {
		t.Errorf("Attributes = %+v", bl.Attributes)
	}
}

func TestBytesMemoryImage(t *testing.T) {
	verts := []Colored{
		{Position: [3]float32{1, 2, 3}, Color: [3]float32{0.5, 0.25, 1}},
		{Position: [3]float32{-1, 0, 4}, Color: [3]float32{0, 0, 0}},
	}
	b := Bytes(verts)
	if len(b) != 2*24 {
		t.Fatalf("len = %d, want 48", len(b))
	}
	want := []float32{1, 2, 3, 0.5, 0.25, 1, -1, 0, 4, 0, 0, 0}
	for i, f := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != f {
			t.Errorf("float %d = %v, want %v", i, got, f)
		}
	}
}

func TestBytesIsCopy(t *testing.T) {
	verts := []Textured{{Position: [3]float32{1, 1, 1}}}
	b := Bytes(verts)
	verts[0].Position[0] = 7
	if math.Float32frombits(binary.LittleEndian.Uint32(b)) != 1 {
		t.Error("Bytes aliases the input slice")
	}
}

func TestBytesEmpty(t *testing.T) {
	if b := Bytes[uint16](nil); b != nil {
		t.Errorf("Bytes(nil) = %v, want nil", b)
	}
}

func TestBytesIndices(t *testing.T) {
	b := Bytes([]uint16{0, 3, 2, 0, 1, 3})
	if len(b) != 12 {
		t.Fatalf("len = %d, want 12", len(b))
	}
	for i, want := range []uint16{0, 3, 2, 0, 1, 3} {
		if got := binary.LittleEndian.Uint16(b[i*2:]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}
