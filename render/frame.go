// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gx/gpucore"

// Frame is the ordered content of one render pass: a camera bound once,
// followed by drawables recorded in insertion order.
//
// A Frame holds no GPU resources. The camera and drawables stay owned by
// the caller.
type Frame struct {
	camera    gpucore.Bindable
	drawables []gpucore.Drawable
}

// NewFrame creates a frame. camera may be nil when the pipeline has no
// globals slot.
func NewFrame(camera gpucore.Bindable, drawables ...gpucore.Drawable) *Frame {
	return &Frame{camera: camera, drawables: drawables}
}

// Add appends drawables to the frame.
func (f *Frame) Add(drawables ...gpucore.Drawable) {
	f.drawables = append(f.drawables, drawables...)
}

// SetCamera replaces the camera bound at the start of the frame.
func (f *Frame) SetCamera(camera gpucore.Bindable) { f.camera = camera }

// Len returns the number of drawables.
func (f *Frame) Len() int { return len(f.drawables) }

// Reset removes all drawables and keeps the camera.
func (f *Frame) Reset() {
	clear(f.drawables)
	f.drawables = f.drawables[:0]
}

// Record binds the camera, then draws every drawable in order.
func (f *Frame) Record(pass gpucore.RenderPass) {
	if f.camera != nil {
		f.camera.Bind(pass)
	}
	for _, d := range f.drawables {
		d.Draw(pass)
	}
}
