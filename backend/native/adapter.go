// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements the gx device contracts on top of the
// gogpu/wgpu HAL.
//
// An Adapter maps the opaque gpucore IDs handed to gx code onto hal
// resources. It can wrap a device owned by a host application (New,
// FromProvider) or open its own (Open, OpenHeadless).
package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/gpucore"
)

// copyAlignment is the required size alignment of buffer copies.
const copyAlignment = 4

type textureEntry struct {
	texture hal.Texture
	format  gputypes.TextureFormat
}

// Adapter implements gpucore.Device and gpucore.Queue using hal directly.
//
// Thread Safety: Adapter is safe for concurrent use from multiple goroutines.
// All resource tracking is protected by a mutex.
type Adapter struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	labelPrefix string

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal resources
	buffers          map[gpucore.BufferID]hal.Buffer
	textures         map[gpucore.TextureID]textureEntry
	views            map[gpucore.TextureViewID]hal.TextureView
	samplers         map[gpucore.SamplerID]hal.Sampler
	bindGroupLayouts map[gpucore.BindGroupLayoutID]hal.BindGroupLayout
	bindGroups       map[gpucore.BindGroupID]hal.BindGroup

	// release tears down a device opened by this package.
	release func()
	closed  bool
}

var (
	_ gpucore.Device = (*Adapter)(nil)
	_ gpucore.Queue  = (*Adapter)(nil)
)

// New wraps a device and queue owned by the caller. Close releases the
// resources created through the adapter but leaves the device alive.
func New(device hal.Device, queue hal.Queue, opts ...Option) *Adapter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newAdapter(device, queue, o)
}

func newAdapter(device hal.Device, queue hal.Queue, o options) *Adapter {
	a := &Adapter{
		device:           device,
		queue:            queue,
		labelPrefix:      o.labelPrefix,
		buffers:          make(map[gpucore.BufferID]hal.Buffer),
		textures:         make(map[gpucore.TextureID]textureEntry),
		views:            make(map[gpucore.TextureViewID]hal.TextureView),
		samplers:         make(map[gpucore.SamplerID]hal.Sampler),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]hal.BindGroupLayout),
		bindGroups:       make(map[gpucore.BindGroupID]hal.BindGroup),
	}

	// Start ID generation at 1 (0 is invalid)
	a.nextID.Store(1)
	return a
}

// newID generates a unique resource ID.
func (a *Adapter) newID() uint64 {
	return a.nextID.Add(1) - 1
}

func (a *Adapter) label(l string) string {
	return a.labelPrefix + l
}

// Context returns a gpucore.Context backed by the adapter.
func (a *Adapter) Context() gpucore.Context {
	return gpucore.Context{Device: a, Queue: a}
}

// HalDevice returns the wrapped device.
func (a *Adapter) HalDevice() hal.Device { return a.device }

// HalQueue returns the wrapped queue.
func (a *Adapter) HalQueue() hal.Queue { return a.queue }

// === Buffers ===

// CreateBuffer creates a buffer and uploads desc.Contents into it. The
// buffer size is rounded up to the copy alignment and CopyDst is added to
// the usage.
func (a *Adapter) CreateBuffer(desc *gpucore.BufferDescriptor) (gpucore.BufferID, error) {
	if len(desc.Contents) == 0 {
		return gpucore.InvalidID, fmt.Errorf("native: buffer %q: size must be positive", desc.Label)
	}
	size := alignUp(uint64(len(desc.Contents)), copyAlignment)

	buffer, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: a.label(desc.Label),
		Size:  size,
		Usage: desc.Usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}

	data := desc.Contents
	if uint64(len(data)) != size {
		data = make([]byte, size)
		copy(data, desc.Contents)
	}
	if err := a.queue.WriteBuffer(buffer, 0, data); err != nil {
		a.device.DestroyBuffer(buffer)
		return gpucore.InvalidID, fmt.Errorf("native: upload buffer %q: %w", desc.Label, err)
	}

	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = buffer
	a.mu.Unlock()

	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer writes data to a buffer. Failures are logged; the queue
// contract has no error path.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	a.mu.RLock()
	buffer, ok := a.buffers[id]
	a.mu.RUnlock()

	if !ok {
		gx.Logger().Warn("native: write to unknown buffer", "id", id)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := a.queue.WriteBuffer(buffer, offset, data); err != nil {
		gx.Logger().Warn("native: write buffer failed", "id", id, "err", err)
	}
}

// HalBuffer returns the hal buffer behind id.
func (a *Adapter) HalBuffer(id gpucore.BufferID) (hal.Buffer, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.buffers[id]
	return b, ok
}

// === Textures ===

// CreateTexture creates a single-mip, single-sample 2D texture.
func (a *Adapter) CreateTexture(desc *gpucore.TextureDescriptor) (gpucore.TextureID, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return gpucore.InvalidID, fmt.Errorf("native: texture %q: empty extent", desc.Label)
	}
	depth := desc.Size.DepthOrArrayLayers
	if depth == 0 {
		depth = 1
	}

	texture, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label: a.label(desc.Label),
		Size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: depth,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}

	id := gpucore.TextureID(a.newID())

	a.mu.Lock()
	a.textures[id] = textureEntry{texture: texture, format: desc.Format}
	a.mu.Unlock()

	return id, nil
}

// DestroyTexture releases a GPU texture.
func (a *Adapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	entry, ok := a.textures[id]
	if ok {
		delete(a.textures, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyTexture(entry.texture)
	}
}

// WriteTexture uploads texels to mip level 0 at the origin.
func (a *Adapter) WriteTexture(id gpucore.TextureID, data []byte, layout gpucore.TextureDataLayout, size gputypes.Extent3D) {
	a.mu.RLock()
	entry, ok := a.textures[id]
	a.mu.RUnlock()

	if !ok {
		gx.Logger().Warn("native: write to unknown texture", "id", id)
		return
	}
	if len(data) == 0 {
		return
	}

	dst := &hal.ImageCopyTexture{
		Texture:  entry.texture,
		MipLevel: 0,
		Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
		Aspect:   gputypes.TextureAspectAll,
	}
	halLayout := &hal.ImageDataLayout{
		Offset:       layout.Offset,
		BytesPerRow:  layout.BytesPerRow,
		RowsPerImage: layout.RowsPerImage,
	}
	extent := &hal.Extent3D{
		Width:              size.Width,
		Height:             size.Height,
		DepthOrArrayLayers: max(size.DepthOrArrayLayers, 1),
	}
	if err := a.queue.WriteTexture(dst, data, halLayout, extent); err != nil {
		gx.Logger().Warn("native: write texture failed", "id", id, "err", err)
	}
}

// CreateTextureView creates a full-resource 2D view in the texture's format.
func (a *Adapter) CreateTextureView(texture gpucore.TextureID, label string) (gpucore.TextureViewID, error) {
	a.mu.RLock()
	entry, ok := a.textures[texture]
	a.mu.RUnlock()

	if !ok {
		return gpucore.InvalidID, fmt.Errorf("native: view %q: texture %d: %w", label, texture, ErrUnknownID)
	}

	view, err := a.device.CreateTextureView(entry.texture, &hal.TextureViewDescriptor{
		Label:           a.label(label),
		Format:          entry.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create view %q: %w", label, err)
	}

	id := gpucore.TextureViewID(a.newID())

	a.mu.Lock()
	a.views[id] = view
	a.mu.Unlock()

	return id, nil
}

// DestroyTextureView releases a texture view.
func (a *Adapter) DestroyTextureView(id gpucore.TextureViewID) {
	a.mu.Lock()
	view, ok := a.views[id]
	if ok {
		delete(a.views, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyTextureView(view)
	}
}

// HalTextureView returns the hal view behind id, e.g. to use a document
// layer as a render target.
func (a *Adapter) HalTextureView(id gpucore.TextureViewID) (hal.TextureView, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.views[id]
	return v, ok
}

// === Samplers ===

// CreateSampler creates a texture sampler.
func (a *Adapter) CreateSampler(desc *gpucore.SamplerDescriptor) (gpucore.SamplerID, error) {
	sampler, err := a.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        a.label(desc.Label),
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
		LodMinClamp:  0,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create sampler %q: %w", desc.Label, err)
	}

	id := gpucore.SamplerID(a.newID())

	a.mu.Lock()
	a.samplers[id] = sampler
	a.mu.Unlock()

	return id, nil
}

// DestroySampler releases a sampler.
func (a *Adapter) DestroySampler(id gpucore.SamplerID) {
	a.mu.Lock()
	sampler, ok := a.samplers[id]
	if ok {
		delete(a.samplers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroySampler(sampler)
	}
}

// === Bind groups ===

// CreateBindGroupLayout creates a bind group layout.
func (a *Adapter) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDescriptor) (gpucore.BindGroupLayoutID, error) {
	layout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   a.label(desc.Label),
		Entries: desc.Entries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create bind group layout %q: %w", desc.Label, err)
	}

	id := gpucore.BindGroupLayoutID(a.newID())

	a.mu.Lock()
	a.bindGroupLayouts[id] = layout
	a.mu.Unlock()

	return id, nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (a *Adapter) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	a.mu.Lock()
	layout, ok := a.bindGroupLayouts[id]
	if ok {
		delete(a.bindGroupLayouts, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBindGroupLayout(layout)
	}
}

// HalBindGroupLayout returns the hal layout behind id, for building
// pipeline layouts.
func (a *Adapter) HalBindGroupLayout(id gpucore.BindGroupLayoutID) (hal.BindGroupLayout, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	l, ok := a.bindGroupLayouts[id]
	return l, ok
}

// CreateBindGroup creates a bind group.
func (a *Adapter) CreateBindGroup(desc *gpucore.BindGroupDescriptor) (gpucore.BindGroupID, error) {
	a.mu.RLock()
	halLayout, ok := a.bindGroupLayouts[desc.Layout]
	if !ok {
		a.mu.RUnlock()
		return gpucore.InvalidID, fmt.Errorf("native: bind group %q: layout %d: %w", desc.Label, desc.Layout, ErrUnknownID)
	}

	halEntries := make([]gputypes.BindGroupEntry, len(desc.Entries))
	for i, entry := range desc.Entries {
		halEntry, err := a.convertBindGroupEntry(entry)
		if err != nil {
			a.mu.RUnlock()
			return gpucore.InvalidID, fmt.Errorf("native: bind group %q: binding %d: %w", desc.Label, entry.Binding, err)
		}
		halEntries[i] = halEntry
	}
	a.mu.RUnlock()

	bindGroup, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   a.label(desc.Label),
		Layout:  halLayout,
		Entries: halEntries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create bind group %q: %w", desc.Label, err)
	}

	id := gpucore.BindGroupID(a.newID())

	a.mu.Lock()
	a.bindGroups[id] = bindGroup
	a.mu.Unlock()

	return id, nil
}

// DestroyBindGroup releases a bind group.
func (a *Adapter) DestroyBindGroup(id gpucore.BindGroupID) {
	a.mu.Lock()
	group, ok := a.bindGroups[id]
	if ok {
		delete(a.bindGroups, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBindGroup(group)
	}
}

// convertBindGroupEntry resolves the entry's resource to its native handle.
// Must be called with mu.RLock held.
func (a *Adapter) convertBindGroupEntry(entry gpucore.BindGroupEntry) (gputypes.BindGroupEntry, error) {
	result := gputypes.BindGroupEntry{Binding: entry.Binding}

	switch {
	case entry.Buffer != gpucore.InvalidID:
		buffer, ok := a.buffers[entry.Buffer]
		if !ok {
			return result, fmt.Errorf("buffer %d: %w", entry.Buffer, ErrUnknownID)
		}
		result.Resource = gputypes.BufferBinding{
			Buffer: buffer.NativeHandle(),
			Offset: entry.Offset,
			Size:   entry.Size,
		}
	case entry.TextureView != gpucore.InvalidID:
		view, ok := a.views[entry.TextureView]
		if !ok {
			return result, fmt.Errorf("texture view %d: %w", entry.TextureView, ErrUnknownID)
		}
		result.Resource = gputypes.TextureViewBinding{TextureView: view.NativeHandle()}
	case entry.Sampler != gpucore.InvalidID:
		sampler, ok := a.samplers[entry.Sampler]
		if !ok {
			return result, fmt.Errorf("sampler %d: %w", entry.Sampler, ErrUnknownID)
		}
		result.Resource = gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}
	default:
		return result, ErrEmptyBinding
	}
	return result, nil
}

// === Lifecycle ===

// Live returns the number of resources currently tracked by the adapter.
func (a *Adapter) Live() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers) + len(a.textures) + len(a.views) +
		len(a.samplers) + len(a.bindGroupLayouts) + len(a.bindGroups)
}

// Close destroys every resource still tracked by the adapter and, for
// adapters returned by Open or OpenHeadless, the device itself. Safe to
// call multiple times.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	leaked := len(a.buffers) + len(a.textures) + len(a.views) +
		len(a.samplers) + len(a.bindGroupLayouts) + len(a.bindGroups)

	for id, g := range a.bindGroups {
		a.device.DestroyBindGroup(g)
		delete(a.bindGroups, id)
	}
	for id, l := range a.bindGroupLayouts {
		a.device.DestroyBindGroupLayout(l)
		delete(a.bindGroupLayouts, id)
	}
	for id, s := range a.samplers {
		a.device.DestroySampler(s)
		delete(a.samplers, id)
	}
	for id, v := range a.views {
		a.device.DestroyTextureView(v)
		delete(a.views, id)
	}
	for id, t := range a.textures {
		a.device.DestroyTexture(t.texture)
		delete(a.textures, id)
	}
	for id, b := range a.buffers {
		a.device.DestroyBuffer(b)
		delete(a.buffers, id)
	}
	release := a.release
	a.mu.Unlock()

	if leaked > 0 {
		gx.Logger().Warn("native: adapter closed with live resources", "count", leaked)
	}
	if release != nil {
		release()
	}
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
