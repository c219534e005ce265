// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects the GPU device gx opens when no host supplies one.
//
// # Backend Registration
//
// Backends are registered by name. The built-in set is registered on
// import: "gpu" (best hardware adapter), "vulkan", "metal", "dx12", "gl"
// and "headless" (the noop HAL device).
//
// # Backend Selection
//
// Use Default() to open the best available backend, or Open() to request
// a specific backend by name:
//
//	a, err := backend.Default(native.WithLabelPrefix("app/"))
//
//	// Or request a specific backend
//	a, err := backend.Open("headless")
//
// Default tries "gpu" first and falls back to "headless" when no adapter
// can be opened.
package backend
