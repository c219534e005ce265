// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gputest provides recording test doubles for the gpucore contracts.
package gputest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx/gpucore"
)

// ErrInjected is returned by Create* calls selected with FailOn.
var ErrInjected = errors.New("gputest: injected allocation failure")

// Buffer is the recorded state of a created buffer.
type Buffer struct {
	Label     string
	Usage     gputypes.BufferUsage
	Data      []byte
	Writes    int
	Destroyed bool
}

// Texture is the recorded state of a created texture.
type Texture struct {
	Desc      gpucore.TextureDescriptor
	Data      []byte
	Layout    gpucore.TextureDataLayout
	WriteSize gputypes.Extent3D
	Writes    int
	Destroyed bool
}

// Resource is the recorded state of a view, sampler, layout or bind group.
type Resource struct {
	Label     string
	Desc      any
	Destroyed bool
}

// Device records every allocation and upload. It implements both
// gpucore.Device and gpucore.Queue.
type Device struct {
	nextID uint64
	failOn map[string]int
	calls  map[string]int

	Buffers    map[gpucore.BufferID]*Buffer
	Textures   map[gpucore.TextureID]*Texture
	Views      map[gpucore.TextureViewID]*Resource
	Samplers   map[gpucore.SamplerID]*Resource
	Layouts    map[gpucore.BindGroupLayoutID]*Resource
	BindGroups map[gpucore.BindGroupID]*Resource

	// Ops lists every Create*/Destroy*/Write* call in order.
	Ops []string
}

var (
	_ gpucore.Device = (*Device)(nil)
	_ gpucore.Queue  = (*Device)(nil)
)

// NewDevice creates an empty recording device.
func NewDevice() *Device {
	return &Device{
		nextID:     1,
		failOn:     make(map[string]int),
		calls:      make(map[string]int),
		Buffers:    make(map[gpucore.BufferID]*Buffer),
		Textures:   make(map[gpucore.TextureID]*Texture),
		Views:      make(map[gpucore.TextureViewID]*Resource),
		Samplers:   make(map[gpucore.SamplerID]*Resource),
		Layouts:    make(map[gpucore.BindGroupLayoutID]*Resource),
		BindGroups: make(map[gpucore.BindGroupID]*Resource),
	}
}

// Context returns a gpucore.Context backed by d for both device and queue.
func (d *Device) Context() gpucore.Context {
	return gpucore.Context{Device: d, Queue: d}
}

// FailOn makes every call of the named Create* method (e.g. "CreateTexture") fail.
func (d *Device) FailOn(op string) {
	d.FailAfter(op, 0)
}

// FailAfter lets the first n calls of the named Create* method succeed and
// fails every later one.
func (d *Device) FailAfter(op string, n int) {
	d.failOn[op] = n + 1
}

// Allocations returns the number of successful Create* calls.
func (d *Device) Allocations() int {
	return len(d.Buffers) + len(d.Textures) + len(d.Views) +
		len(d.Samplers) + len(d.Layouts) + len(d.BindGroups)
}

// Live returns the number of created resources not yet destroyed.
func (d *Device) Live() int {
	n := 0
	for _, b := range d.Buffers {
		if !b.Destroyed {
			n++
		}
	}
	for _, t := range d.Textures {
		if !t.Destroyed {
			n++
		}
	}
	n += liveResources(d.Views) + liveResources(d.Samplers) +
		liveResources(d.Layouts) + liveResources(d.BindGroups)
	return n
}

func liveResources[K comparable](m map[K]*Resource) int {
	n := 0
	for _, r := range m {
		if !r.Destroyed {
			n++
		}
	}
	return n
}

func (d *Device) alloc(op string) (uint64, error) {
	d.calls[op]++
	if at, ok := d.failOn[op]; ok && d.calls[op] >= at {
		d.Ops = append(d.Ops, op+"!")
		return gpucore.InvalidID, fmt.Errorf("%s: %w", op, ErrInjected)
	}
	d.Ops = append(d.Ops, op)
	id := d.nextID
	d.nextID++
	return id, nil
}

// CreateBuffer records a buffer and a copy of its contents.
func (d *Device) CreateBuffer(desc *gpucore.BufferDescriptor) (gpucore.BufferID, error) {
	id, err := d.alloc("CreateBuffer")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.Buffers[gpucore.BufferID(id)] = &Buffer{
		Label: desc.Label,
		Usage: desc.Usage,
		Data:  slices.Clone(desc.Contents),
	}
	return gpucore.BufferID(id), nil
}

// DestroyBuffer marks a buffer destroyed.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.Ops = append(d.Ops, "DestroyBuffer")
	if b, ok := d.Buffers[id]; ok {
		b.Destroyed = true
	}
}

// CreateTexture records a texture.
func (d *Device) CreateTexture(desc *gpucore.TextureDescriptor) (gpucore.TextureID, error) {
	id, err := d.alloc("CreateTexture")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.Textures[gpucore.TextureID(id)] = &Texture{Desc: *desc}
	return gpucore.TextureID(id), nil
}

// DestroyTexture marks a texture destroyed.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.Ops = append(d.Ops, "DestroyTexture")
	if t, ok := d.Textures[id]; ok {
		t.Destroyed = true
	}
}

// CreateTextureView records a view.
func (d *Device) CreateTextureView(texture gpucore.TextureID, label string) (gpucore.TextureViewID, error) {
	id, err := d.alloc("CreateTextureView")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.Views[gpucore.TextureViewID(id)] = &Resource{Label: label, Desc: texture}
	return gpucore.TextureViewID(id), nil
}

// DestroyTextureView marks a view destroyed.
func (d *Device) DestroyTextureView(id gpucore.TextureViewID) {
	d.Ops = append(d.Ops, "DestroyTextureView")
	if r, ok := d.Views[id]; ok {
		r.Destroyed = true
	}
}

// CreateSampler records a sampler and its descriptor.
func (d *Device) CreateSampler(desc *gpucore.SamplerDescriptor) (gpucore.SamplerID, error) {
	id, err := d.alloc("CreateSampler")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.Samplers[gpucore.SamplerID(id)] = &Resource{Label: desc.Label, Desc: *desc}
	return gpucore.SamplerID(id), nil
}

// DestroySampler marks a sampler destroyed.
func (d *Device) DestroySampler(id gpucore.SamplerID) {
	d.Ops = append(d.Ops, "DestroySampler")
	if r, ok := d.Samplers[id]; ok {
		r.Destroyed = true
	}
}

// CreateBindGroupLayout records a bind group layout.
func (d *Device) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDescriptor) (gpucore.BindGroupLayoutID, error) {
	id, err := d.alloc("CreateBindGroupLayout")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.Layouts[gpucore.BindGroupLayoutID(id)] = &Resource{Label: desc.Label, Desc: *desc}
	return gpucore.BindGroupLayoutID(id), nil
}

// DestroyBindGroupLayout marks a layout destroyed.
func (d *Device) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	d.Ops = append(d.Ops, "DestroyBindGroupLayout")
	if r, ok := d.Layouts[id]; ok {
		r.Destroyed = true
	}
}

// CreateBindGroup records a bind group.
func (d *Device) CreateBindGroup(desc *gpucore.BindGroupDescriptor) (gpucore.BindGroupID, error) {
	id, err := d.alloc("CreateBindGroup")
	if err != nil {
		return gpucore.InvalidID, err
	}
	d.BindGroups[gpucore.BindGroupID(id)] = &Resource{Label: desc.Label, Desc: *desc}
	return gpucore.BindGroupID(id), nil
}

// DestroyBindGroup marks a bind group destroyed.
func (d *Device) DestroyBindGroup(id gpucore.BindGroupID) {
	d.Ops = append(d.Ops, "DestroyBindGroup")
	if r, ok := d.BindGroups[id]; ok {
		r.Destroyed = true
	}
}

// WriteBuffer copies data into the recorded buffer contents.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	d.Ops = append(d.Ops, "WriteBuffer")
	b, ok := d.Buffers[id]
	if !ok {
		return
	}
	end := offset + uint64(len(data))
	if end > uint64(len(b.Data)) {
		b.Data = append(b.Data, make([]byte, end-uint64(len(b.Data)))...)
	}
	copy(b.Data[offset:end], data)
	b.Writes++
}

// WriteTexture records the last upload into a texture.
func (d *Device) WriteTexture(id gpucore.TextureID, data []byte, layout gpucore.TextureDataLayout, size gputypes.Extent3D) {
	d.Ops = append(d.Ops, "WriteTexture")
	t, ok := d.Textures[id]
	if !ok {
		return
	}
	t.Data = slices.Clone(data)
	t.Layout = layout
	t.WriteSize = size
	t.Writes++
}
