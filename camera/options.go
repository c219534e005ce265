// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gx"
)

// Option configures a Camera.
type Option func(*options)

type options struct {
	position mgl32.Vec3
	up       mgl32.Vec3
	rect     gx.Rect
	znear    float32
	zfar     float32
	label    string
}

func defaultOptions() options {
	return options{
		up:    mgl32.Vec3{0, 1, 0},
		rect:  gx.NewRect(-0.5, -0.5, 1, 1),
		znear: 0.1,
		zfar:  100,
		label: "camera",
	}
}

// WithPosition sets the initial eye position.
func WithPosition(p mgl32.Vec3) Option {
	return func(o *options) {
		o.position = p
	}
}

// WithUp sets the up vector. It must not be parallel to -Z.
func WithUp(up mgl32.Vec3) Option {
	return func(o *options) {
		o.up = up
	}
}

// WithRect sets the visible view rectangle in view space.
func WithRect(r gx.Rect) Option {
	return func(o *options) {
		o.rect = r
	}
}

// WithClip sets the near and far clip distances.
func WithClip(znear, zfar float32) Option {
	return func(o *options) {
		o.znear = znear
		o.zfar = zfar
	}
}

// WithLabel sets the debug label prefix of the camera's GPU resources.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
