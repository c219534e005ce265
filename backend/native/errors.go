// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrUnknownID is returned when a resource ID is not tracked by the adapter.
	ErrUnknownID = errors.New("native: unknown resource id")

	// ErrEmptyBinding is returned for a bind group entry that names no resource.
	ErrEmptyBinding = errors.New("native: bind group entry has no resource")

	// ErrNotHALProvider is returned when a device provider does not expose
	// HAL device and queue accessors.
	ErrNotHALProvider = errors.New("native: provider does not expose HAL device and queue")

	// ErrClosed is returned when using a closed adapter.
	ErrClosed = errors.New("native: adapter closed")
)
