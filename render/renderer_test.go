// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/backend/native"
	"github.com/gogpu/gx/camera"
	"github.com/gogpu/gx/document"
	"github.com/gogpu/gx/shape"
	"github.com/gogpu/gx/vertex"
)

func redPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestNewRendererRejectsHandles(t *testing.T) {
	if _, err := NewRenderer(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("nil handle err = %v, want ErrNilProvider", err)
	}
	if _, err := NewRenderer(NullDeviceHandle{}); !errors.Is(err, native.ErrNotHALProvider) {
		t.Errorf("null handle err = %v, want ErrNotHALProvider", err)
	}
}

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil || handle.Queue() != nil || handle.Adapter() != nil {
		t.Error("NullDeviceHandle should return nil device, queue and adapter")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
	if got := handle.AdapterInfo().Type.String(); got != "Unknown" {
		t.Errorf("AdapterInfo().Type = %s, want Unknown", got)
	}
}

func TestRenderIntoLayer(t *testing.T) {
	r, err := NewHeadlessRenderer(native.WithLabelPrefix("render-test/"))
	if err != nil {
		t.Fatalf("NewHeadlessRenderer: %v", err)
	}
	defer r.Close()
	ctx := r.Context()

	doc, err := document.NewDocument(64, 32)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	layer, err := doc.NewImageBuffer().NewLayer(ctx, "background")
	if err != nil {
		t.Fatalf("NewLayer: %v", err)
	}

	cam, err := camera.New(ctx, camera.WithRect(gx.NewRect(0, 0, 64, 32)))
	if err != nil {
		t.Fatalf("camera.New: %v", err)
	}
	defer cam.Destroy()

	tri, err := shape.NewTriangle(ctx, "tri", [3]vertex.Colored{
		{Position: [3]float32{0, 0, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{32, 0, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{16, 32, 0}, Color: [3]float32{0, 0, 1}},
	})
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	defer tri.Destroy()

	img, err := shape.NewImage(ctx, redPNG(t), "sprite", gx.NewRect(40, 8, 16, 16))
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	defer img.Destroy()

	frame := NewFrame(cam, tri, img)
	target := native.PassTarget{View: layer.View(), Clear: &gputypes.Color{A: 1}}
	if err := r.Render(target, nil, frame); err != nil {
		t.Fatalf("Render: %v", err)
	}

	tri.Destroy()
	if err := r.Render(target, nil, frame); !errors.Is(err, native.ErrUnknownID) {
		t.Errorf("Render with destroyed triangle err = %v, want ErrUnknownID", err)
	}

	img.Destroy()
	cam.Destroy()
	doc.Destroy()
	if live := r.Adapter().Live(); live != 0 {
		t.Errorf("Live() = %d after releasing everything, want 0", live)
	}
}
