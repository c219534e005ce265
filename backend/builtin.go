// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx/backend/native"
)

func init() {
	Register(BackendGPU, native.Open)
	Register(BackendHeadless, native.OpenHeadless)
	Register(BackendVulkan, forced(gputypes.BackendVulkan))
	Register(BackendMetal, forced(gputypes.BackendMetal))
	Register(BackendDX12, forced(gputypes.BackendDX12))
	Register(BackendGL, forced(gputypes.BackendGL))
}

// forced opens the given HAL backend only.
func forced(b gputypes.Backend) Factory {
	return func(opts ...native.Option) (*native.Adapter, error) {
		return native.Open(append(slices.Clip(opts), native.WithBackend(b))...)
	}
}
