// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/gx/backend/native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or no registered backend could be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Registered backend names.
const (
	// BackendGPU picks the best hardware adapter of any HAL backend.
	BackendGPU = "gpu"

	// BackendVulkan, BackendMetal, BackendDX12 and BackendGL force one
	// HAL backend.
	BackendVulkan = "vulkan"
	BackendMetal  = "metal"
	BackendDX12   = "dx12"
	BackendGL     = "gl"

	// BackendHeadless is the noop HAL device. It is always available.
	BackendHeadless = "headless"
)

// Factory opens a native adapter. Options from the caller are forwarded.
type Factory func(opts ...native.Option) (*native.Adapter, error)
