// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imageio decodes encoded raster images into tightly packed RGBA8
// pixels ready for texture upload. Pixels use straight (non-premultiplied)
// alpha.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Decode errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrEmptyImage is returned for an image with zero width or height.
	ErrEmptyImage = errors.New("imageio: image has no pixels")
)

// Decoded is a decoded raster in straight-alpha RGBA8 layout.
type Decoded struct {
	// Pixels holds Width*Height*4 bytes, row-major, no row padding.
	Pixels []byte
	Width  uint32
	Height uint32
	// Format is the registered name of the source format ("png", "jpeg", ...).
	Format string
}

// BytesPerRow returns the row pitch of Pixels.
func (d *Decoded) BytesPerRow() uint32 { return 4 * d.Width }

// DecodeBytes decodes data, auto-detecting the format.
func DecodeBytes(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Decoded, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("imageio: decode %s: %w", format, ErrEmptyImage)
	}
	nrgba := ToNRGBA(img)
	return &Decoded{
		Pixels: nrgba.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Format: format,
	}, nil
}

// ToNRGBA converts img to an *image.NRGBA anchored at the origin with a
// stride of exactly 4*width. Such images are returned as is. Color
// channels are never multiplied by alpha.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.NRGBA:
		if b.Min == (image.Point{}) && src.Stride == 4*b.Dx() {
			return src
		}
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[off:off+4*b.Dx()])
		}
	case *image.NRGBA64:
		// Keep the high byte of each 16-bit channel.
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := dst.Pix[y*dst.Stride : (y+1)*dst.Stride]
			for i := range row {
				row[i] = src.Pix[off+2*i]
			}
		}
	default:
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return dst
}
