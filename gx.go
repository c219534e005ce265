// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gx is a minimal 2D rendering toolkit layered over the gogpu
// WebGPU HAL.
//
// # Overview
//
// gx maps typed CPU data directly onto GPU bindings. It does not own a
// window, an event loop, shaders or pipelines: a host application (the
// rendering driver) supplies a device and queue, begins a render pass with
// its own pipeline, and asks gx objects to bind themselves and draw.
//
//	adapter, _ := native.OpenHeadless()
//	ctx := adapter.Context()
//
//	cam, _ := camera.New(ctx, camera.WithRect(gx.NewRect(0, 0, 800, 600)))
//	img, _ := shape.NewImage(ctx, pngBytes, "logo", gx.NewRect(10, 10, 128, 128))
//
//	frame := render.NewFrame(cam, img)
//	target := native.PassTarget{Surface: swapchainView}
//	_ = adapter.RecordPass(target, func(pass *native.RenderPass) {
//	    pass.SetPipeline(texturedPipeline)
//	    frame.Record(pass)
//	})
//
// # Packages
//
//   - gpucore: resource IDs, descriptors, Device/Queue/RenderPass contracts
//   - vertex: vertex records and their attribute layouts
//   - buffer: immutable GPU vertex and index buffers
//   - camera: 2D orthographic camera with a uniform bind group
//   - shape: Triangle, Quad and Image primitives
//   - document: document of image buffers whose layers own textures
//   - render: frame recording helper and host device integration
//   - backend/native: gpucore implementation over gogpu/wgpu hal
//
// # Coordinate System
//
// World units are defined by the camera's view rectangle. Y increases up,
// the camera looks down -Z, and clip-space depth uses the WebGPU [0, 1]
// range.
//
// # Errors
//
// Construction is the only fallible step. GPU allocation failures wrap
// [ErrResourceAllocation]; invalid image bytes wrap [ErrImageDecode]. Draw
// and bind calls never fail.
package gx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
