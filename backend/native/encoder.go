// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/present"
	"github.com/gogpu/wgpu/hal"
)

// EncoderState is the state of a CommandEncoder.
type EncoderState int

const (
	// EncoderStateRecording accepts new passes.
	EncoderStateRecording EncoderState = iota
	// EncoderStateInPass has an open render pass.
	EncoderStateInPass
	// EncoderStateFinished produced its command buffer.
	EncoderStateFinished
	// EncoderStateReleased was released.
	EncoderStateReleased
)

func (s EncoderState) String() string {
	switch s {
	case EncoderStateRecording:
		return "Recording"
	case EncoderStateInPass:
		return "InPass"
	case EncoderStateFinished:
		return "Finished"
	case EncoderStateReleased:
		return "Released"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// CommandEncoder wraps a hal.CommandEncoder.
//
//	Recording -> BeginRenderPass -> InPass -> End -> Recording
//	Recording -> Finish -> Finished
type CommandEncoder struct {
	device *Device
	hal    hal.CommandEncoder
	label  string
	state  EncoderState
}

// State returns the encoder state.
func (e *CommandEncoder) State() EncoderState { return e.state }

// BeginRenderPass implements present.CommandEncoder.
func (e *CommandEncoder) BeginRenderPass(desc *present.RenderPassDescriptor) (present.RenderPass, error) {
	switch e.state {
	case EncoderStateInPass:
		return nil, ErrPassOpen
	case EncoderStateFinished:
		return nil, ErrEncoderFinished
	case EncoderStateReleased:
		return nil, ErrReleased
	}

	attachments := make([]hal.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		view, ok := a.View.(*TextureView)
		if !ok || view == nil {
			return nil, fmt.Errorf("%w: color attachment %d view %T", present.ErrForeignObject, i, a.View)
		}
		if view.released {
			return nil, fmt.Errorf("native: color attachment %d: %w", i, ErrReleased)
		}
		attachments[i] = hal.RenderPassColorAttachment{
			View:       view.hal,
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: a.ClearValue,
		}
	}

	pass := e.hal.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: attachments,
	})
	e.state = EncoderStateInPass
	return &RenderPass{encoder: e, hal: pass}, nil
}

// Finish implements present.CommandEncoder.
func (e *CommandEncoder) Finish() (present.CommandBuffer, error) {
	switch e.state {
	case EncoderStateInPass:
		return nil, ErrPassOpen
	case EncoderStateFinished:
		return nil, ErrEncoderFinished
	case EncoderStateReleased:
		return nil, ErrReleased
	}
	buf, err := e.hal.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("native: end encoding %q: %w", e.label, err)
	}
	e.state = EncoderStateFinished
	return &CommandBuffer{device: e.device, hal: buf}, nil
}

// Release implements present.CommandEncoder. An unfinished recording is
// discarded. The HAL encoder is destroyed once its work completes.
func (e *CommandEncoder) Release() {
	if e.state == EncoderStateReleased {
		return
	}
	if e.state != EncoderStateFinished {
		e.hal.DiscardEncoding()
	}
	e.state = EncoderStateReleased
	enc := e.hal
	e.device.retire(enc.Destroy)
}

// RenderPass wraps a hal.RenderPassEncoder.
type RenderPass struct {
	encoder *CommandEncoder
	hal     hal.RenderPassEncoder
	ended   bool
}

// End implements present.RenderPass.
func (p *RenderPass) End() error {
	if p.ended {
		return fmt.Errorf("native: render pass already ended")
	}
	p.hal.End()
	p.ended = true
	p.encoder.state = EncoderStateRecording
	return nil
}

// CommandBuffer wraps a hal.CommandBuffer.
type CommandBuffer struct {
	device    *Device
	hal       hal.CommandBuffer
	submitted bool
	released  bool
}

// Release implements present.CommandBuffer.
func (b *CommandBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	d, buf := b.device, b.hal
	d.retire(func() { d.hal.FreeCommandBuffer(buf) })
}

// TextureView wraps a hal.TextureView.
type TextureView struct {
	device   *Device
	hal      hal.TextureView
	released bool
}

// Release implements present.TextureView.
func (v *TextureView) Release() {
	if v.released {
		return
	}
	v.released = true
	d, view := v.device, v.hal
	d.retire(func() { d.hal.DestroyTextureView(view) })
}

var (
	_ present.CommandEncoder = (*CommandEncoder)(nil)
	_ present.RenderPass     = (*RenderPass)(nil)
	_ present.CommandBuffer  = (*CommandBuffer)(nil)
	_ present.TextureView    = (*TextureView)(nil)
)
