// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"
	"testing"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/camera"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/internal/gputest"
	"github.com/gogpu/gx/shape"
	"github.com/gogpu/gx/vertex"
)

func TestFrameRecordOrder(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := dev.Context()

	cam, err := camera.New(ctx)
	if err != nil {
		t.Fatalf("camera.New: %v", err)
	}
	defer cam.Destroy()

	tri, err := shape.NewTriangle(ctx, "tri", [3]vertex.Colored{})
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	defer tri.Destroy()

	quad, err := shape.ColoredQuad(ctx, "quad", gx.NewRect(0, 0, 1, 1), [3]float32{0, 0, 1})
	if err != nil {
		t.Fatalf("ColoredQuad: %v", err)
	}
	defer quad.Destroy()

	frame := NewFrame(cam, tri)
	frame.Add(quad)
	if frame.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", frame.Len())
	}

	var pass gputest.Pass
	frame.Record(&pass)

	want := []string{
		"SetBindGroup",
		"SetVertexBuffer", "Draw",
		"SetVertexBuffer", "SetIndexBuffer", "DrawIndexed",
	}
	if got := pass.Ops(); !slices.Equal(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if c := pass.Calls[0]; c.Slot != gpucore.SlotGlobals {
		t.Errorf("camera bound at slot %d, want %d", c.Slot, gpucore.SlotGlobals)
	}
	if c := pass.Calls[1]; c.Buffer != tri.VertexBuffer().ID() {
		t.Errorf("first draw uses buffer %d, want triangle %d", c.Buffer, tri.VertexBuffer().ID())
	}
}

type countingDrawable struct{ draws *int }

func (d countingDrawable) Draw(pass gpucore.RenderPass) {
	*d.draws++
	pass.Draw(3, 1, 0, 0)
}

func TestFrameWithoutCamera(t *testing.T) {
	var draws int
	frame := NewFrame(nil, countingDrawable{&draws}, countingDrawable{&draws})

	var pass gputest.Pass
	frame.Record(&pass)

	if draws != 2 {
		t.Errorf("draws = %d, want 2", draws)
	}
	if got, want := pass.Ops(), []string{"Draw", "Draw"}; !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestFrameReset(t *testing.T) {
	var draws int
	frame := NewFrame(nil, countingDrawable{&draws})
	frame.Reset()
	if frame.Len() != 0 {
		t.Fatalf("Len() = %d after Reset", frame.Len())
	}

	var pass gputest.Pass
	frame.Record(&pass)
	if draws != 0 || len(pass.Calls) != 0 {
		t.Errorf("reset frame recorded %v", pass.Calls)
	}

	frame.Add(countingDrawable{&draws})
	frame.Record(&pass)
	if draws != 1 {
		t.Errorf("draws = %d, want 1", draws)
	}
}

func TestFrameSetCamera(t *testing.T) {
	dev := gputest.NewDevice()
	cam, err := camera.New(dev.Context())
	if err != nil {
		t.Fatalf("camera.New: %v", err)
	}
	defer cam.Destroy()

	frame := NewFrame(nil)
	frame.SetCamera(cam)

	var pass gputest.Pass
	frame.Record(&pass)
	if got, want := pass.Ops(), []string{"SetBindGroup"}; !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}
