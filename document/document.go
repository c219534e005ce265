// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package document organizes GPU textures as a document of image buffers,
// each holding an ordered stack of layers.
//
// A Document fixes its pixel extent at creation. The extent is shared by
// handle with every ImageBuffer and Layer created from it, and layers can
// only be created through an ImageBuffer, so every layer texture has
// exactly the document's size.
//
//	doc, err := document.NewDocument(1920, 1080)
//	buf := doc.NewImageBuffer()
//	bg, err := buf.NewLayer(ctx, "background")
//	err = bg.Write(pixels)
//
// Documents are append-only: buffers and layers are never reordered or
// removed. How layers are composited onto a surface is up to the caller.
package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
)

// Document errors.
var (
	// ErrInvalidExtent is returned for a zero width or height.
	ErrInvalidExtent = errors.New("document: width and height must be positive")

	// ErrPixelSize is returned when written pixel data does not cover the extent.
	ErrPixelSize = errors.New("document: pixel data does not match extent")

	// ErrDestroyed is returned when using a destroyed document.
	ErrDestroyed = errors.New("document: destroyed")

	// ErrInvalidContext is returned when the context has no device or queue.
	ErrInvalidContext = errors.New("document: context has no device or queue")
)

// LayerFormat is the texel format of every layer texture.
const LayerFormat = gputypes.TextureFormatRGBA8Unorm

// LayerUsage is the usage of every layer texture: sampled when compositing,
// written by uploads and rendered into.
const LayerUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageRenderAttachment

// Extent is the immutable pixel size of a document. Only NewDocument
// creates extents.
type Extent struct {
	width  uint32
	height uint32
}

// Width returns the width in pixels.
func (e *Extent) Width() uint32 { return e.width }

// Height returns the height in pixels.
func (e *Extent) Height() uint32 { return e.height }

// Size returns the extent as a single-layer 3D extent.
func (e *Extent) Size() gputypes.Extent3D {
	return gputypes.Extent3D{Width: e.width, Height: e.height, DepthOrArrayLayers: 1}
}

// BytesPerRow returns the row pitch of tightly packed RGBA8 pixels.
func (e *Extent) BytesPerRow() uint32 { return 4 * e.width }

// PixelBytes returns the byte size of one full RGBA8 frame.
func (e *Extent) PixelBytes() int { return int(e.BytesPerRow()) * int(e.height) }

func (e *Extent) String() string { return fmt.Sprintf("%dx%d", e.width, e.height) }

// lifetime is shared by a document and everything created from it.
type lifetime struct {
	destroyed bool
}

// Document is an ordered list of image buffers sharing one extent.
type Document struct {
	extent  *Extent
	life    *lifetime
	buffers []*ImageBuffer
}

// NewDocument creates an empty document of the given pixel size.
func NewDocument(width, height uint32) (*Document, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidExtent, width, height)
	}
	return &Document{
		extent: &Extent{width: width, height: height},
		life:   &lifetime{},
	}, nil
}

// Extent returns the document extent.
func (d *Document) Extent() *Extent { return d.extent }

// NewImageBuffer appends an empty image buffer and returns it.
func (d *Document) NewImageBuffer() *ImageBuffer {
	b := &ImageBuffer{extent: d.extent, life: d.life}
	d.buffers = append(d.buffers, b)
	return b
}

// Buffers returns the image buffers in creation order.
func (d *Document) Buffers() []*ImageBuffer { return slices.Clone(d.buffers) }

// Destroy releases every layer texture in the document. Layers cannot be
// added afterwards. Safe to call multiple times.
func (d *Document) Destroy() {
	if d.life.destroyed {
		return
	}
	d.life.destroyed = true
	n := 0
	for _, b := range d.buffers {
		for _, l := range b.layers {
			l.release()
			n++
		}
	}
	gx.Logger().Debug("document destroyed", "extent", d.extent.String(), "layers", n)
}

// ImageBuffer is an ordered stack of layers.
type ImageBuffer struct {
	extent *Extent
	life   *lifetime
	layers []*Layer
}

// Extent returns the shared document extent.
func (b *ImageBuffer) Extent() *Extent { return b.extent }

// Layers returns the layers in creation order.
func (b *ImageBuffer) Layers() []*Layer { return slices.Clone(b.layers) }

// NewLayer allocates a texture of exactly the document extent plus a view
// of it, appends the layer and returns it. On failure nothing is appended
// and nothing stays allocated.
func (b *ImageBuffer) NewLayer(ctx gpucore.Context, label string) (*Layer, error) {
	if b.life.destroyed {
		return nil, ErrDestroyed
	}
	if !ctx.Valid() {
		return nil, ErrInvalidContext
	}
	if label == "" {
		label = fmt.Sprintf("layer-%d", len(b.layers))
	}

	tex, err := ctx.Device.CreateTexture(&gpucore.TextureDescriptor{
		Label:  label + "-texture",
		Size:   b.extent.Size(),
		Format: LayerFormat,
		Usage:  LayerUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("document: layer %q: create texture: %w: %w", label, gx.ErrResourceAllocation, err)
	}
	view, err := ctx.Device.CreateTextureView(tex, label+"-view")
	if err != nil {
		ctx.Device.DestroyTexture(tex)
		return nil, fmt.Errorf("document: layer %q: create view: %w: %w", label, gx.ErrResourceAllocation, err)
	}

	l := &Layer{
		label:   label,
		extent:  b.extent,
		ctx:     ctx,
		texture: tex,
		view:    view,
	}
	b.layers = append(b.layers, l)
	gx.Logger().Debug("layer created", "label", label, "extent", b.extent.String())
	return l, nil
}

// Layer owns one texture the size of its document.
type Layer struct {
	label   string
	extent  *Extent
	ctx     gpucore.Context
	texture gpucore.TextureID
	view    gpucore.TextureViewID
}

// Label returns the layer label.
func (l *Layer) Label() string { return l.label }

// Extent returns the shared document extent.
func (l *Layer) Extent() *Extent { return l.extent }

// Texture returns the layer texture handle.
func (l *Layer) Texture() gpucore.TextureID { return l.texture }

// View returns a view of the whole layer texture, for binding or as a
// render attachment.
func (l *Layer) View() gpucore.TextureViewID { return l.view }

// Write uploads a full frame of tightly packed, row-major RGBA8 pixels.
func (l *Layer) Write(pixels []byte) error {
	if l.texture == gpucore.InvalidID {
		return ErrDestroyed
	}
	if len(pixels) != l.extent.PixelBytes() {
		return fmt.Errorf("%w: got %d bytes, want %d for %s",
			ErrPixelSize, len(pixels), l.extent.PixelBytes(), l.extent)
	}
	l.ctx.Queue.WriteTexture(l.texture, pixels, gpucore.TextureDataLayout{
		BytesPerRow:  l.extent.BytesPerRow(),
		RowsPerImage: l.extent.height,
	}, l.extent.Size())
	return nil
}

func (l *Layer) release() {
	if l.view != gpucore.InvalidID {
		l.ctx.Device.DestroyTextureView(l.view)
		l.view = gpucore.InvalidID
	}
	if l.texture != gpucore.InvalidID {
		l.ctx.Device.DestroyTexture(l.texture)
		l.texture = gpucore.InvalidID
	}
}
