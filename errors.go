// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gx

import "errors"

// Error kinds shared by all gx packages. Sub-packages wrap these with
// context via fmt.Errorf("...: %w", ...); test with errors.Is.
var (
	// ErrResourceAllocation is returned when a GPU buffer, texture, view,
	// sampler or bind group cannot be created (device lost, out of memory).
	// It is fatal for the object being constructed and is never retried.
	ErrResourceAllocation = errors.New("gx: GPU resource allocation failed")

	// ErrImageDecode is returned when bytes are not a valid encoded raster image.
	ErrImageDecode = errors.New("gx: image decode failed")
)
