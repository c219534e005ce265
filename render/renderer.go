// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/backend/native"
	"github.com/gogpu/gx/gpucore"
)

// ErrNilProvider is returned when NewRenderer receives a nil DeviceHandle.
var ErrNilProvider = errors.New("render: nil device handle")

// Renderer records frames into render targets.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
type Renderer struct {
	adapter *native.Adapter
}

// NewRenderer creates a renderer on the host's GPU device.
//
// The host keeps ownership of the device; Close only releases resources
// created through the renderer's context.
func NewRenderer(h DeviceHandle, opts ...native.Option) (*Renderer, error) {
	if h == nil {
		return nil, ErrNilProvider
	}
	a, err := native.FromProvider(h, opts...)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	gx.Logger().Debug("render: renderer on host device", "adapter", h.AdapterInfo().Name)
	return &Renderer{adapter: a}, nil
}

// NewHeadlessRenderer creates a renderer on the noop HAL device. Commands
// are validated and discarded; buffer contents stay readable.
func NewHeadlessRenderer(opts ...native.Option) (*Renderer, error) {
	a, err := native.OpenHeadless(opts...)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Renderer{adapter: a}, nil
}

// Context returns the device and queue for camera, shape and document
// constructors.
func (r *Renderer) Context() gpucore.Context { return r.adapter.Context() }

// Adapter returns the underlying native adapter.
func (r *Renderer) Adapter() *native.Adapter { return r.adapter }

// Render records frame into target with pipeline set first. A nil pipeline
// leaves pipeline selection to the frame's drawables.
func (r *Renderer) Render(target native.PassTarget, pipeline hal.RenderPipeline, frame *Frame) error {
	err := r.adapter.RecordPass(target, func(p *native.RenderPass) {
		if pipeline != nil {
			p.SetPipeline(pipeline)
		}
		frame.Record(p)
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Close releases everything created through the renderer's context.
func (r *Renderer) Close() { r.adapter.Close() }
