// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore defines the GPU contract between gx and a rendering driver.
//
// gx never creates a device of its own. The driver supplies a [Context]
// (a [Device] for allocation and a [Queue] for uploads) and, each frame,
// a [RenderPass] into which gx objects bind resources and issue draws.
//
// # Architecture
//
//	               +-----------------+
//	               |  buffer/camera  |
//	               |  shape/document |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |     gpucore     |
//	               | Device / Queue  |
//	               |   RenderPass    |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/native  |          |  test doubles   |
//	|  (hal.Device)   |          | (recording)     |
//	+-----------------+          +-----------------+
//
// Resources are referenced by opaque IDs ([BufferID], [TextureID], ...).
// Each Device implementation maps IDs to backend handles.
//
// # Capabilities
//
// [Bindable] attaches a resource to a pass slot; [Drawable] binds every
// resource it owns and issues one draw call. Bind group slot 0
// ([SlotResources]) carries per-primitive resources and slot 1
// ([SlotGlobals]) carries the camera.
package gpucore
