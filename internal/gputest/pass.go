// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gputest

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gx/gpucore"
)

// Call is one recorded render pass command.
type Call struct {
	Op        string
	Slot      uint32
	Buffer    gpucore.BufferID
	Group     gpucore.BindGroupID
	Format    gputypes.IndexFormat
	Count     uint32
	Instances uint32
	First     uint32
}

// String renders the call compactly, e.g. "SetVertexBuffer(0, 3)".
func (c Call) String() string {
	switch c.Op {
	case "SetVertexBuffer":
		return fmt.Sprintf("SetVertexBuffer(%d, %d)", c.Slot, c.Buffer)
	case "SetIndexBuffer":
		return fmt.Sprintf("SetIndexBuffer(%d)", c.Buffer)
	case "SetBindGroup":
		return fmt.Sprintf("SetBindGroup(%d, %d)", c.Slot, c.Group)
	default:
		return fmt.Sprintf("%s(%d, %d)", c.Op, c.Count, c.Instances)
	}
}

// Pass records every command issued into it.
type Pass struct {
	Calls []Call
}

var _ gpucore.RenderPass = (*Pass)(nil)

// Ops returns the recorded operation names in order.
func (p *Pass) Ops() []string {
	ops := make([]string, len(p.Calls))
	for i, c := range p.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset clears the recording.
func (p *Pass) Reset() { p.Calls = p.Calls[:0] }

func (p *Pass) SetVertexBuffer(slot uint32, buffer gpucore.BufferID) {
	p.Calls = append(p.Calls, Call{Op: "SetVertexBuffer", Slot: slot, Buffer: buffer})
}

func (p *Pass) SetIndexBuffer(buffer gpucore.BufferID, format gputypes.IndexFormat) {
	p.Calls = append(p.Calls, Call{Op: "SetIndexBuffer", Buffer: buffer, Format: format})
}

func (p *Pass) SetBindGroup(index uint32, group gpucore.BindGroupID) {
	p.Calls = append(p.Calls, Call{Op: "SetBindGroup", Slot: index, Group: group})
}

func (p *Pass) Draw(vertexCount, instanceCount, firstVertex, _ uint32) {
	p.Calls = append(p.Calls, Call{Op: "Draw", Count: vertexCount, Instances: instanceCount, First: firstVertex})
}

func (p *Pass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, _ int32, _ uint32) {
	p.Calls = append(p.Calls, Call{Op: "DrawIndexed", Count: indexCount, Instances: instanceCount, First: firstIndex})
}
