// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/internal/gputest"
)

const eps = 1e-5

func newCamera(t *testing.T, opts ...Option) (*Camera, *gputest.Device) {
	t.Helper()
	dev := gputest.NewDevice()
	cam, err := New(dev.Context(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(cam.Destroy)
	return cam, dev
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func TestDepthRemap(t *testing.T) {
	tests := []struct {
		name string
		in   mgl32.Vec4
		want mgl32.Vec4
	}{
		{"near", mgl32.Vec4{0, 0, -1, 1}, mgl32.Vec4{0, 0, 0, 1}},
		{"mid", mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec4{0, 0, 0.5, 1}},
		{"far", mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec4{0, 0, 1, 1}},
		{"xy passthrough", mgl32.Vec4{0.25, -0.75, 0, 1}, mgl32.Vec4{0.25, -0.75, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DepthRemap().Mul4x1(tt.in)
			for i := range 4 {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("DepthRemap * %v = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
	if a, b := DepthRemap(), DepthRemap(); a != b {
		t.Error("DepthRemap is not constant")
	}
}

func TestNewUploadsDerivedMatrix(t *testing.T) {
	cam, dev := newCamera(t)

	if cam.ViewProjection() == mgl32.Ident4() {
		t.Error("matrix is identity, want derived view-projection")
	}
	buf := dev.Buffers[cam.Buffer()]
	if buf == nil {
		t.Fatal("uniform buffer not created")
	}
	if len(buf.Data) != UniformSize {
		t.Fatalf("uniform size = %d, want %d", len(buf.Data), UniformSize)
	}
	if buf.Usage&gputypes.BufferUsageUniform == 0 || buf.Usage&gputypes.BufferUsageCopyDst == 0 {
		t.Errorf("usage %v lacks Uniform|CopyDst", buf.Usage)
	}
	if want := matrixBytes(cam.ViewProjection()); !bytes.Equal(buf.Data, want) {
		t.Error("uniform contents differ from ViewProjection")
	}

	layout := dev.Layouts[cam.BindGroupLayout()].Desc.(gpucore.BindGroupLayoutDescriptor)
	if len(layout.Entries) != 1 {
		t.Fatalf("layout entries = %d, want 1", len(layout.Entries))
	}
	e := layout.Entries[0]
	if e.Binding != 0 || e.Visibility != gputypes.ShaderStageVertex || e.Buffer == nil ||
		e.Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Errorf("layout entry = %+v", e)
	}
}

func TestViewCentreMapsToClipCentre(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
		rect gx.Rect
		near float32
		far  float32
	}{
		{"default", mgl32.Vec3{}, gx.NewRect(-0.5, -0.5, 1, 1), 0.1, 100},
		{"translated", mgl32.Vec3{3, -2, 5}, gx.NewRect(-0.5, -0.5, 1, 1), 0.1, 100},
		{"wide rect", mgl32.Vec3{1, 1, 0}, gx.NewRect(-8, -4.5, 16, 9), 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam, _ := newCamera(t, WithRect(tt.rect), WithClip(tt.near, tt.far))
			cam.Translate(tt.pos)

			c := tt.rect.Center()
			p := mgl32.Vec4{
				tt.pos.X() + c.X(),
				tt.pos.Y() + c.Y(),
				tt.pos.Z() - (tt.near+tt.far)/2,
				1,
			}
			clip := cam.ViewProjection().Mul4x1(p)
			if !approx(clip.X(), 0) || !approx(clip.Y(), 0) || !approx(clip.Z(), 0.5) || !approx(clip.W(), 1) {
				t.Errorf("centre maps to %v, want (0, 0, 0.5, 1)", clip)
			}
		})
	}
}

func TestRectCornersMapToClipCorners(t *testing.T) {
	cam, _ := newCamera(t)
	clip := cam.ViewProjection().Mul4x1(mgl32.Vec4{0.5, 0.5, -1, 1})
	if !approx(clip.X(), 1) || !approx(clip.Y(), 1) {
		t.Errorf("top-right maps to %v, want x=y=1", clip)
	}
	clip = cam.ViewProjection().Mul4x1(mgl32.Vec4{-0.5, -0.5, -1, 1})
	if !approx(clip.X(), -1) || !approx(clip.Y(), -1) {
		t.Errorf("bottom-left maps to %v, want x=y=-1", clip)
	}
}

func TestTranslateDeterministic(t *testing.T) {
	cam, dev := newCamera(t)
	p := mgl32.Vec3{1.5, -2.25, 3}

	cam.Translate(p)
	first := cam.ViewProjection()
	cam.Translate(mgl32.Vec3{9, 9, 9})
	cam.Translate(p)
	second := cam.ViewProjection()

	if first != second {
		t.Errorf("matrices differ:\n%v\n%v", first, second)
	}
	if !bytes.Equal(dev.Buffers[cam.Buffer()].Data, matrixBytes(second)) {
		t.Error("uploaded matrix differs from ViewProjection")
	}
}

func TestTranslateUploadsImmediately(t *testing.T) {
	cam, dev := newCamera(t)
	buf := dev.Buffers[cam.Buffer()]

	cam.Translate(mgl32.Vec3{2, 0, 0})
	if buf.Writes != 1 {
		t.Fatalf("writes after Translate = %d, want 1", buf.Writes)
	}
	if cam.Position() != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("Position() = %v", cam.Position())
	}
	if !bytes.Equal(buf.Data, matrixBytes(cam.ViewProjection())) {
		t.Error("GPU matrix lags the camera fields")
	}
}

func TestSetRectAndClip(t *testing.T) {
	cam, dev := newCamera(t)
	buf := dev.Buffers[cam.Buffer()]
	before := cam.ViewProjection()

	if err := cam.SetRect(gx.NewRect(-2, -1, 4, 2)); err != nil {
		t.Fatalf("SetRect: %v", err)
	}
	if cam.ViewProjection() == before {
		t.Error("SetRect did not re-derive the matrix")
	}
	if err := cam.SetClip(1, 50); err != nil {
		t.Fatalf("SetClip: %v", err)
	}
	if buf.Writes != 2 {
		t.Errorf("writes = %d, want 2", buf.Writes)
	}
	if !bytes.Equal(buf.Data, matrixBytes(cam.ViewProjection())) {
		t.Error("GPU matrix lags the camera fields")
	}

	if err := cam.SetRect(gx.Rect{}); !errors.Is(err, ErrEmptyRect) {
		t.Errorf("SetRect(empty) err = %v, want ErrEmptyRect", err)
	}
	if err := cam.SetClip(5, 5); !errors.Is(err, ErrInvalidClip) {
		t.Errorf("SetClip(5, 5) err = %v, want ErrInvalidClip", err)
	}
	if buf.Writes != 2 {
		t.Errorf("rejected mutation uploaded: writes = %d", buf.Writes)
	}
}

func TestBindSlot(t *testing.T) {
	cam, _ := newCamera(t)
	var pass gputest.Pass
	cam.Bind(&pass)

	if len(pass.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(pass.Calls))
	}
	c := pass.Calls[0]
	if c.Op != "SetBindGroup" || c.Slot != 1 {
		t.Errorf("Bind recorded %v, want SetBindGroup at slot 1", c)
	}
}

func TestNewAllocationFailure(t *testing.T) {
	for _, op := range []string{"CreateBuffer", "CreateBindGroupLayout", "CreateBindGroup"} {
		t.Run(op, func(t *testing.T) {
			dev := gputest.NewDevice()
			dev.FailOn(op)

			_, err := New(dev.Context())
			if !errors.Is(err, gx.ErrResourceAllocation) {
				t.Fatalf("err = %v, want ErrResourceAllocation", err)
			}
			if dev.Live() != 0 {
				t.Errorf("%d resources leaked", dev.Live())
			}
		})
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	dev := gputest.NewDevice()
	if _, err := New(dev.Context(), WithClip(10, 1)); !errors.Is(err, ErrInvalidClip) {
		t.Errorf("err = %v, want ErrInvalidClip", err)
	}
	if _, err := New(dev.Context(), WithRect(gx.NewRect(0, 0, 0, 1))); !errors.Is(err, ErrEmptyRect) {
		t.Errorf("err = %v, want ErrEmptyRect", err)
	}
	if _, err := New(gpucore.Context{}); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("err = %v, want ErrInvalidContext", err)
	}
	if dev.Allocations() != 0 {
		t.Errorf("allocations = %d, want 0", dev.Allocations())
	}
}

func TestDefaults(t *testing.T) {
	cam, _ := newCamera(t)
	if cam.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v", cam.Up())
	}
	if cam.Rect() != gx.NewRect(-0.5, -0.5, 1, 1) {
		t.Errorf("Rect() = %v", cam.Rect())
	}
	if n, f := cam.Clip(); n != 0.1 || f != 100 {
		t.Errorf("Clip() = %v, %v", n, f)
	}
}

func TestDestroy(t *testing.T) {
	dev := gputest.NewDevice()
	cam, err := New(dev.Context(), WithLabel("main"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if dev.Buffers[cam.Buffer()].Label != "main-buffer" {
		t.Errorf("label = %q", dev.Buffers[cam.Buffer()].Label)
	}
	cam.Destroy()
	cam.Destroy()
	if dev.Live() != 0 {
		t.Errorf("live = %d after Destroy", dev.Live())
	}
}
