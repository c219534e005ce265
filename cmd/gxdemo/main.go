// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command gxdemo records a camera, a triangle, a quad and an image into a
// document layer and reports what was allocated.
//
// gxdemo builds no render pipeline, so its draws are only valid on the
// headless backend, which accepts and discards them. Drawing on a real
// backend needs a host-built pipeline set on the pass, as
// render.Renderer.Render does.
package main

import (
	"bytes"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/backend"
	"github.com/gogpu/gx/backend/native"
	"github.com/gogpu/gx/camera"
	"github.com/gogpu/gx/document"
	"github.com/gogpu/gx/render"
	"github.com/gogpu/gx/shape"
	"github.com/gogpu/gx/vertex"
)

func main() {
	var (
		width   = flag.Uint("width", 800, "document width")
		height  = flag.Uint("height", 600, "document height")
		input   = flag.String("image", "", "image file to draw (a generated checkerboard when empty)")
		name    = flag.String("backend", backend.BackendHeadless, "backend to open: "+strings.Join(backend.Available(), ", ")+" or auto (draws need a pipeline on anything but headless)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		gx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	data, err := loadImage(*input)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	if err := demo(*name, uint32(*width), uint32(*height), data); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func demo(name string, width, height uint32, imageData []byte) error {
	a, err := openAdapter(name)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := run(a, width, height, imageData); err != nil {
		return err
	}
	log.Printf("Rendered %dx%d document, %d resources live before release\n", width, height, a.Live())
	return nil
}

func openAdapter(name string) (*native.Adapter, error) {
	if name == "auto" {
		return backend.Default(native.WithLabelPrefix("gxdemo/"))
	}
	return backend.Open(name, native.WithLabelPrefix("gxdemo/"))
}

func run(a *native.Adapter, width, height uint32, imageData []byte) error {
	ctx := a.Context()

	doc, err := document.NewDocument(width, height)
	if err != nil {
		return err
	}
	layer, err := doc.NewImageBuffer().NewLayer(ctx, "scene")
	if err != nil {
		return err
	}

	w, h := float32(width), float32(height)
	cam, err := camera.New(ctx, camera.WithRect(gx.NewRect(0, 0, w, h)), camera.WithLabel("demo-camera"))
	if err != nil {
		return err
	}

	tri, err := shape.NewTriangle(ctx, "triangle", [3]vertex.Colored{
		{Position: [3]float32{w * 0.1, h * 0.1, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{w * 0.4, h * 0.1, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{w * 0.25, h * 0.5, 0}, Color: [3]float32{0, 0, 1}},
	})
	if err != nil {
		return err
	}

	quad, err := shape.ColoredQuad(ctx, "quad", gx.NewRect(w*0.5, h*0.1, w*0.4, h*0.3), [3]float32{1, 0.8, 0})
	if err != nil {
		return err
	}

	img, err := shape.NewImage(ctx, imageData, "image", gx.NewRect(w*0.3, h*0.55, w*0.4, h*0.4))
	if err != nil {
		return err
	}
	log.Printf("Image %dx%d uploaded as %v\n", img.Size().Width, img.Size().Height, img.Format())

	frame := render.NewFrame(cam, tri, quad, img)
	target := native.PassTarget{
		Label: "demo-pass",
		View:  layer.View(),
		Clear: &gputypes.Color{R: 0.1, G: 0.2, B: 0.4, A: 1},
	}
	if err := a.RecordPass(target, func(p *native.RenderPass) { frame.Record(p) }); err != nil {
		return err
	}

	// Pan one quarter to the right and record again.
	cam.Translate(cam.Position().Add(mgl32.Vec3{w * 0.25, 0, 0}))
	target.Clear = nil
	return a.RecordPass(target, func(p *native.RenderPass) { frame.Record(p) })
}

func loadImage(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
