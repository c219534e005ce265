// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// NewRect creates a rectangle from its minimum corner and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{
		Min: mgl32.Vec2{x, y},
		Max: mgl32.Vec2{x + w, y + h},
	}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() float32 { return r.Max.X() - r.Min.X() }

// Height returns Max.Y - Min.Y.
func (r Rect) Height() float32 { return r.Max.Y() - r.Min.Y() }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Corners returns the four corners in quad vertex order:
// bottom-left, bottom-right, top-left, top-right.
func (r Rect) Corners() [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		{r.Min.X(), r.Min.Y()},
		{r.Max.X(), r.Min.Y()},
		{r.Min.X(), r.Max.Y()},
		{r.Max.X(), r.Max.Y()},
	}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Max.X() <= r.Min.X() || r.Max.Y() <= r.Min.Y()
}
