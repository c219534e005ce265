// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
	"github.com/gogpu/gx/internal/imageio"
	"github.com/gogpu/gx/vertex"
)

// Shape errors.
var (
	// ErrEmptyRect is returned when a primitive is placed in a rectangle
	// with no area.
	ErrEmptyRect = errors.New("shape: empty rectangle")

	// ErrInvalidContext is returned when the context has no device or queue.
	ErrInvalidContext = errors.New("shape: context has no device or queue")
)

// DefaultTextureFormat is the texel format used for decoded images.
// Encoded rasters carry sRGB color, so sampling decodes them to linear.
const DefaultTextureFormat = gputypes.TextureFormatRGBA8UnormSrgb

// imageTexCoords maps the quad corners (BL, BR, TL, TR) to texture space,
// whose origin is the top-left texel.
var imageTexCoords = [4][2]float32{
	{0, 1},
	{1, 1},
	{0, 0},
	{1, 0},
}

// ImageOption configures NewImage.
type ImageOption func(*imageOptions)

type imageOptions struct {
	format    gputypes.TextureFormat
	magFilter gputypes.FilterMode
	minFilter gputypes.FilterMode
}

// WithTextureFormat sets the texel format of the image texture. The format
// must be a 4-byte RGBA layout matching the decoded pixels.
func WithTextureFormat(f gputypes.TextureFormat) ImageOption {
	return func(o *imageOptions) {
		o.format = f
	}
}

// WithFilter sets the magnification and minification filters.
func WithFilter(magFilter, minFilter gputypes.FilterMode) ImageOption {
	return func(o *imageOptions) {
		o.magFilter = magFilter
		o.minFilter = minFilter
	}
}

// ImageBindGroupLayout is the layout of every image bind group: a float 2D
// texture at binding 0 and a filtering sampler at binding 1, both visible to
// the fragment stage.
func ImageBindGroupLayout(label string) *gpucore.BindGroupLayoutDescriptor {
	return &gpucore.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// Image is a textured quad showing a decoded raster.
type Image struct {
	quad   *Quad[vertex.Textured]
	device gpucore.Device

	texture   gpucore.TextureID
	view      gpucore.TextureViewID
	sampler   gpucore.SamplerID
	layout    gpucore.BindGroupLayoutID
	bindGroup gpucore.BindGroupID

	size   gputypes.Extent3D
	format gputypes.TextureFormat
	pixels []byte
}

// NewImage decodes data, uploads it to a texture sized to the decoded
// pixels and builds a quad covering rect that samples it.
//
// Decoding happens first: malformed data returns an error wrapping
// gx.ErrImageDecode without touching the device. If any later allocation
// fails, everything created so far is released.
func NewImage(ctx gpucore.Context, data []byte, label string, rect gx.Rect, opts ...ImageOption) (*Image, error) {
	if !ctx.Valid() {
		return nil, ErrInvalidContext
	}
	if rect.Empty() {
		return nil, fmt.Errorf("shape: image %q: %w", label, ErrEmptyRect)
	}
	decoded, err := imageio.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("shape: image %q: %w: %w", label, gx.ErrImageDecode, err)
	}

	o := imageOptions{
		format:    DefaultTextureFormat,
		magFilter: gputypes.FilterModeLinear,
		minFilter: gputypes.FilterModeNearest,
	}
	for _, opt := range opts {
		opt(&o)
	}

	img := &Image{
		device: ctx.Device,
		size: gputypes.Extent3D{
			Width:              decoded.Width,
			Height:             decoded.Height,
			DepthOrArrayLayers: 1,
		},
		format: o.format,
		pixels: decoded.Pixels,
	}
	if err := img.createResources(ctx, label, rect, o); err != nil {
		img.Destroy()
		return nil, err
	}
	gx.Logger().Debug("image created",
		"label", label,
		"format", decoded.Format,
		"width", decoded.Width,
		"height", decoded.Height)
	return img, nil
}

func (img *Image) createResources(ctx gpucore.Context, label string, rect gx.Rect, o imageOptions) error {
	dev := ctx.Device
	var err error

	img.texture, err = dev.CreateTexture(&gpucore.TextureDescriptor{
		Label:  label + "-texture",
		Size:   img.size,
		Format: o.format,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return allocErr(label, "texture", err)
	}
	ctx.Queue.WriteTexture(img.texture, img.pixels, gpucore.TextureDataLayout{
		BytesPerRow:  4 * img.size.Width,
		RowsPerImage: img.size.Height,
	}, img.size)

	if img.view, err = dev.CreateTextureView(img.texture, label+"-texture-view"); err != nil {
		return allocErr(label, "texture view", err)
	}

	img.sampler, err = dev.CreateSampler(&gpucore.SamplerDescriptor{
		Label:        label + "-sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    o.magFilter,
		MinFilter:    o.minFilter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return allocErr(label, "sampler", err)
	}

	if img.layout, err = dev.CreateBindGroupLayout(ImageBindGroupLayout(label + "-bind-group-layout")); err != nil {
		return allocErr(label, "bind group layout", err)
	}

	img.bindGroup, err = dev.CreateBindGroup(&gpucore.BindGroupDescriptor{
		Label:  label + "-bind-group",
		Layout: img.layout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, TextureView: img.view},
			{Binding: 1, Sampler: img.sampler},
		},
	})
	if err != nil {
		return allocErr(label, "bind group", err)
	}

	img.quad, err = NewQuad(ctx, label, imageVertices(rect))
	return err
}

func allocErr(label, what string, err error) error {
	return fmt.Errorf("shape: image %q: create %s: %w: %w", label, what, gx.ErrResourceAllocation, err)
}

// imageVertices places the rect corners at z = 0 with their texture coordinates.
func imageVertices(r gx.Rect) [4]vertex.Textured {
	var vs [4]vertex.Textured
	for i, c := range r.Corners() {
		vs[i] = vertex.Textured{
			Position: [3]float32{c.X(), c.Y(), 0},
			TexCoord: imageTexCoords[i],
		}
	}
	return vs
}

// Draw sets the image bind group at gpucore.SlotResources and draws the quad.
func (img *Image) Draw(pass gpucore.RenderPass) {
	pass.SetBindGroup(gpucore.SlotResources, img.bindGroup)
	img.quad.Draw(pass)
}

// Size returns the texture extent.
func (img *Image) Size() gputypes.Extent3D { return img.size }

// Format returns the texel format.
func (img *Image) Format() gputypes.TextureFormat { return img.format }

// Pixels returns a copy of the uploaded RGBA8 texels.
func (img *Image) Pixels() []byte { return slices.Clone(img.pixels) }

// Vertices returns the quad vertices.
func (img *Image) Vertices() [4]vertex.Textured { return img.quad.Vertices() }

// Texture returns the texture handle.
func (img *Image) Texture() gpucore.TextureID { return img.texture }

// BindGroupLayout returns the layout pipelines must declare at slot 0.
func (img *Image) BindGroupLayout() gpucore.BindGroupLayoutID { return img.layout }

// Destroy releases every GPU resource the image owns. Safe to call
// multiple times.
func (img *Image) Destroy() {
	if img.quad != nil {
		img.quad.Destroy()
	}
	d := img.device
	if img.bindGroup != gpucore.InvalidID {
		d.DestroyBindGroup(img.bindGroup)
		img.bindGroup = gpucore.InvalidID
	}
	if img.layout != gpucore.InvalidID {
		d.DestroyBindGroupLayout(img.layout)
		img.layout = gpucore.InvalidID
	}
	if img.sampler != gpucore.InvalidID {
		d.DestroySampler(img.sampler)
		img.sampler = gpucore.InvalidID
	}
	if img.view != gpucore.InvalidID {
		d.DestroyTextureView(img.view)
		img.view = gpucore.InvalidID
	}
	if img.texture != gpucore.InvalidID {
		d.DestroyTexture(img.texture)
		img.texture = gpucore.InvalidID
	}
}

var _ gpucore.Drawable = (*Image)(nil)
