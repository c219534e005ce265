// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera implements a 2D orthographic camera whose view-projection
// matrix lives in a GPU uniform buffer.
//
// The camera looks down -Z. Its matrix is rebuilt and uploaded as part of
// every mutation, so the GPU copy never lags the fields it is derived from.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/vertex"
)

// Camera errors.
var (
	// ErrInvalidClip is returned when near >= far.
	ErrInvalidClip = errors.New("camera: near plane must be closer than far plane")

	// ErrEmptyRect is returned for a view rectangle with zero width or height.
	ErrEmptyRect = errors.New("camera: empty view rectangle")

	// ErrInvalidContext is returned when the context has no device or queue.
	ErrInvalidContext = errors.New("camera: context has no device or queue")
)

// UniformSize is the byte size of the camera uniform: one column-major mat4x4<f32>.
const UniformSize = 64

// forward is the fixed viewing direction.
var forward = mgl32.Vec3{0, 0, -1}

// DepthRemap returns the matrix mapping clip-space depth from [-1, 1]
// to the [0, 1] range WebGPU expects. x, y and w are unchanged.
func DepthRemap() mgl32.Mat4 {
	return mgl32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0,
		0, 0, 0.5, 1,
	}
}

// Camera is a 2D orthographic camera.
type Camera struct {
	position mgl32.Vec3
	up       mgl32.Vec3
	rect     gx.Rect
	znear    float32
	zfar     float32
	viewProj mgl32.Mat4

	ctx       gpucore.Context
	buffer    gpucore.BufferID
	layout    gpucore.BindGroupLayoutID
	bindGroup gpucore.BindGroupID
}

// New creates a camera, its uniform buffer and its bind group. The buffer
// holds the matrix derived from the initial fields before New returns.
func New(ctx gpucore.Context, opts ...Option) (*Camera, error) {
	if !ctx.Valid() {
		return nil, ErrInvalidContext
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(o.rect, o.znear, o.zfar); err != nil {
		return nil, err
	}

	c := &Camera{
		position: o.position,
		up:       o.up,
		rect:     o.rect,
		znear:    o.znear,
		zfar:     o.zfar,
		ctx:      ctx,
	}
	c.viewProj = c.derive()

	if err := c.createResources(o.label); err != nil {
		c.Destroy()
		return nil, err
	}
	gx.Logger().Debug("camera created", "label", o.label, "position", c.position)
	return c, nil
}

func (c *Camera) createResources(label string) error {
	var err error
	c.buffer, err = c.ctx.Device.CreateBuffer(&gpucore.BufferDescriptor{
		Label:    label + "-buffer",
		Usage:    gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		Contents: matrixBytes(c.viewProj),
	})
	if err != nil {
		return fmt.Errorf("camera: create uniform buffer: %w: %w", gx.ErrResourceAllocation, err)
	}

	c.layout, err = c.ctx.Device.CreateBindGroupLayout(&gpucore.BindGroupLayoutDescriptor{
		Label: label + "-bind-group-layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("camera: create bind group layout: %w: %w", gx.ErrResourceAllocation, err)
	}

	c.bindGroup, err = c.ctx.Device.CreateBindGroup(&gpucore.BindGroupDescriptor{
		Label:  label + "-bind-group",
		Layout: c.layout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Buffer: c.buffer, Size: UniformSize},
		},
	})
	if err != nil {
		return fmt.Errorf("camera: create bind group: %w: %w", gx.ErrResourceAllocation, err)
	}
	return nil
}

func validate(r gx.Rect, znear, zfar float32) error {
	if r.Empty() {
		return ErrEmptyRect
	}
	if znear >= zfar {
		return fmt.Errorf("%w: near=%v far=%v", ErrInvalidClip, znear, zfar)
	}
	return nil
}

// derive computes DepthRemap * Ortho * LookAt from the current fields.
func (c *Camera) derive() mgl32.Mat4 {
	view := mgl32.LookAtV(c.position, c.position.Add(forward), c.up)
	proj := mgl32.Ortho(c.rect.Min.X(), c.rect.Max.X(), c.rect.Min.Y(), c.rect.Max.Y(), c.znear, c.zfar)
	return DepthRemap().Mul4(proj).Mul4(view)
}

// update re-derives the matrix and uploads it.
func (c *Camera) update() {
	c.viewProj = c.derive()
	if c.buffer == gpucore.InvalidID {
		return
	}
	c.ctx.Queue.WriteBuffer(c.buffer, 0, matrixBytes(c.viewProj))
}

// Translate moves the eye to pos and uploads the new matrix immediately.
func (c *Camera) Translate(pos mgl32.Vec3) {
	c.position = pos
	c.update()
}

// SetRect replaces the view rectangle and uploads the new matrix.
func (c *Camera) SetRect(r gx.Rect) error {
	if r.Empty() {
		return ErrEmptyRect
	}
	c.rect = r
	c.update()
	return nil
}

// SetClip replaces the clip distances and uploads the new matrix.
func (c *Camera) SetClip(znear, zfar float32) error {
	if err := validate(c.rect, znear, zfar); err != nil {
		return err
	}
	c.znear, c.zfar = znear, zfar
	c.update()
	return nil
}

// Bind sets the camera bind group at gpucore.SlotGlobals.
func (c *Camera) Bind(pass gpucore.RenderPass) {
	pass.SetBindGroup(gpucore.SlotGlobals, c.bindGroup)
}

// ViewProjection returns the current matrix.
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.viewProj }

// Position returns the eye position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Up returns the up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Rect returns the view rectangle.
func (c *Camera) Rect() gx.Rect { return c.rect }

// Clip returns the near and far clip distances.
func (c *Camera) Clip() (znear, zfar float32) { return c.znear, c.zfar }

// Buffer returns the uniform buffer handle.
func (c *Camera) Buffer() gpucore.BufferID { return c.buffer }

// BindGroupLayout returns the layout pipelines must declare at slot 1.
func (c *Camera) BindGroupLayout() gpucore.BindGroupLayoutID { return c.layout }

// Destroy releases the camera's GPU resources. Safe to call multiple times.
func (c *Camera) Destroy() {
	d := c.ctx.Device
	if c.bindGroup != gpucore.InvalidID {
		d.DestroyBindGroup(c.bindGroup)
		c.bindGroup = gpucore.InvalidID
	}
	if c.layout != gpucore.InvalidID {
		d.DestroyBindGroupLayout(c.layout)
		c.layout = gpucore.InvalidID
	}
	if c.buffer != gpucore.InvalidID {
		d.DestroyBuffer(c.buffer)
		c.buffer = gpucore.InvalidID
	}
}

func matrixBytes(m mgl32.Mat4) []byte {
	return vertex.Bytes(m[:])
}

var _ gpucore.Bindable = (*Camera)(nil)
