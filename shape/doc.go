// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shape provides the drawable primitives: Triangle, Quad and Image.
//
// Every primitive owns its GPU resources and records into a render pass in
// the same order: vertex buffer, index buffer (if any), bind group (if any),
// then exactly one draw call with one instance. The pipeline and the camera
// bind group are set by the caller beforehand.
//
//	tri, err := shape.NewTriangle(ctx, "tri", [3]vertex.Colored{...})
//	quad, err := shape.NewQuad(ctx, "quad", [4]vertex.Colored{...})
//	img, err := shape.NewImage(ctx, pngBytes, "logo", gx.NewRect(-0.5, -0.5, 1, 1))
//
//	cam.Bind(pass)
//	tri.Draw(pass)
//	img.Draw(pass)
//
// Quad vertices are ordered bottom-left, bottom-right, top-left, top-right
// and indexed by QuadIndices.
package shape
