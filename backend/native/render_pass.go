// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gx/gpucore"
)

// RenderPass implements gpucore.RenderPass on a hal render pass encoder.
//
// IDs are resolved through the adapter. An unknown ID skips the command
// and is reported by Err and by RecordPass. Once an error is recorded no
// further draws are encoded.
type RenderPass struct {
	adapter *Adapter
	pass    hal.RenderPassEncoder
	err     error
	draws   int
}

var _ gpucore.RenderPass = (*RenderPass)(nil)

// Raw returns the underlying encoder, for commands gx does not wrap
// (viewport, scissor, stencil reference).
func (p *RenderPass) Raw() hal.RenderPassEncoder { return p.pass }

// Err returns the first error recorded during the pass.
func (p *RenderPass) Err() error { return p.err }

func (p *RenderPass) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// SetPipeline sets the active render pipeline. Pipelines are built by the
// caller against the layouts exposed by the camera and the primitives.
func (p *RenderPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.pass.SetPipeline(pipeline)
}

// SetVertexBuffer binds a vertex buffer to slot.
func (p *RenderPass) SetVertexBuffer(slot uint32, buffer gpucore.BufferID) {
	b, ok := p.adapter.HalBuffer(buffer)
	if !ok {
		p.fail(fmt.Errorf("native: vertex buffer %d: %w", buffer, ErrUnknownID))
		return
	}
	p.pass.SetVertexBuffer(slot, b, 0)
}

// SetIndexBuffer binds the index buffer.
func (p *RenderPass) SetIndexBuffer(buffer gpucore.BufferID, format gputypes.IndexFormat) {
	b, ok := p.adapter.HalBuffer(buffer)
	if !ok {
		p.fail(fmt.Errorf("native: index buffer %d: %w", buffer, ErrUnknownID))
		return
	}
	p.pass.SetIndexBuffer(b, format, 0)
}

// SetBindGroup sets a bind group at the specified index.
func (p *RenderPass) SetBindGroup(index uint32, group gpucore.BindGroupID) {
	p.adapter.mu.RLock()
	g, ok := p.adapter.bindGroups[group]
	p.adapter.mu.RUnlock()

	if !ok {
		p.fail(fmt.Errorf("native: bind group %d: %w", group, ErrUnknownID))
		return
	}
	p.pass.SetBindGroup(index, g, nil)
}

// Draws returns the number of draw calls encoded so far.
func (p *RenderPass) Draws() int { return p.draws }

// Draw issues a non-indexed draw.
func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.err != nil {
		return
	}
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
	p.draws++
}

// DrawIndexed issues an indexed draw.
func (p *RenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	if p.err != nil {
		return
	}
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
	p.draws++
}

// PassTarget describes the color attachment of a recorded pass.
type PassTarget struct {
	// Label is an optional debug label.
	Label string

	// View is a view created through the adapter, such as a document layer.
	View gpucore.TextureViewID

	// Surface is used when View is InvalidID, typically a swapchain view
	// owned by the host.
	Surface hal.TextureView

	// Clear clears the attachment first. Nil keeps its contents.
	Clear *gputypes.Color
}

// RecordPass encodes one render pass into target, submits it and waits for
// the GPU to finish.
func (a *Adapter) RecordPass(target PassTarget, record func(*RenderPass)) error {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	view := target.Surface
	if target.View != gpucore.InvalidID {
		v, ok := a.HalTextureView(target.View)
		if !ok {
			return fmt.Errorf("native: pass target view %d: %w", target.View, ErrUnknownID)
		}
		view = v
	}
	if view == nil {
		return errors.New("native: pass has no target view")
	}

	label := target.Label
	if label == "" {
		label = "gx-pass"
	}
	label = a.label(label)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	defer encoder.Destroy()

	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	attachment := hal.RenderPassColorAttachment{
		View:    view,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if target.Clear != nil {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = *target.Clear
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            label,
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	pass := &RenderPass{adapter: a, pass: rp}
	record(pass)
	rp.End()

	cmdBuffer, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuffer)

	if _, err := a.queue.Submit([]hal.CommandBuffer{cmdBuffer}); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	if err := a.device.WaitIdle(); err != nil {
		return fmt.Errorf("native: wait idle: %w", err)
	}
	return pass.err
}
