// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render drives gx primitives through a render pass.
//
// # Key Principle
//
// gx RECEIVES a GPU device from the host application. NewRenderer wraps the
// host's DeviceHandle; NewHeadlessRenderer opens the noop HAL device for
// tests and tools.
//
// # Frames
//
// A Frame binds a camera into the globals slot, then asks each drawable to
// bind its own resources and issue exactly one draw call:
//
//	r, _ := render.NewRenderer(gc.DeviceHandle())
//	cam, _ := camera.New(r.Context())
//	tri, _ := shape.NewTriangle(r.Context(), "tri", verts)
//
//	frame := render.NewFrame(cam, tri)
//	err := r.Render(native.PassTarget{Surface: view}, pipeline, frame)
//
// Pipelines, shaders and layer compositing are the host's concern.
package render
