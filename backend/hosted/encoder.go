// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hosted

import (
	"errors"
	"fmt"

	"github.com/gogpu/present"
	"github.com/gogpu/wgpu"
)

// CommandEncoder wraps a wgpu.CommandEncoder.
type CommandEncoder struct {
	device *Device
	wgpu   *wgpu.CommandEncoder
	label  string

	pass     *RenderPass
	finished bool
	released bool
}

// BeginRenderPass implements present.CommandEncoder. Color attachments
// must be views of this package's surface textures.
func (e *CommandEncoder) BeginRenderPass(desc *present.RenderPassDescriptor) (present.RenderPass, error) {
	switch {
	case e.released:
		return nil, ErrReleased
	case e.finished:
		return nil, ErrEncoderFinished
	case e.pass != nil:
		return nil, ErrPassOpen
	}

	attachments := make([]wgpu.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		view, ok := a.View.(*TextureView)
		if !ok || view == nil {
			return nil, fmt.Errorf("%w: color attachment %d view %T", present.ErrForeignObject, i, a.View)
		}
		if view.released {
			return nil, fmt.Errorf("hosted: color attachment %d: %w", i, ErrReleased)
		}
		attachments[i] = wgpu.RenderPassColorAttachment{
			View:       view.wgpu,
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: a.ClearValue,
		}
	}

	rp, err := e.wgpu.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: attachments,
	})
	if err != nil {
		return nil, fmt.Errorf("hosted: begin render pass %q: %w", desc.Label, err)
	}
	e.pass = &RenderPass{encoder: e, wgpu: rp}
	return e.pass, nil
}

// Finish implements present.CommandEncoder.
func (e *CommandEncoder) Finish() (present.CommandBuffer, error) {
	switch {
	case e.released:
		return nil, ErrReleased
	case e.finished:
		return nil, ErrEncoderFinished
	case e.pass != nil:
		return nil, ErrPassOpen
	}
	// wgpu consumes the encoder even when Finish fails.
	e.finished = true
	buf, err := e.wgpu.Finish()
	if err != nil {
		return nil, fmt.Errorf("hosted: finish %q: %w", e.label, err)
	}
	return &CommandBuffer{device: e.device, wgpu: buf}, nil
}

// Release implements present.CommandEncoder. An unfinished recording is
// discarded.
func (e *CommandEncoder) Release() {
	if e.released {
		return
	}
	e.released = true
	if !e.finished {
		e.wgpu.DiscardEncoding()
	}
}

// RenderPass wraps a wgpu.RenderPassEncoder.
type RenderPass struct {
	encoder *CommandEncoder
	wgpu    *wgpu.RenderPassEncoder
	ended   bool
}

var errPassEnded = errors.New("hosted: render pass already ended")

// End implements present.RenderPass.
func (p *RenderPass) End() error {
	if p.ended {
		return errPassEnded
	}
	p.ended = true
	p.encoder.pass = nil
	if err := p.wgpu.End(); err != nil {
		return fmt.Errorf("hosted: end render pass: %w", err)
	}
	return nil
}

// CommandBuffer wraps a wgpu.CommandBuffer.
type CommandBuffer struct {
	device    *Device
	wgpu      *wgpu.CommandBuffer
	submitted bool
	released  bool
}

// Release implements present.CommandBuffer. A submitted buffer is freed by
// its Device once the GPU is done with it.
func (b *CommandBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	if !b.submitted {
		b.wgpu.Release()
	}
}

var (
	_ present.CommandEncoder = (*CommandEncoder)(nil)
	_ present.RenderPass     = (*RenderPass)(nil)
	_ present.CommandBuffer  = (*CommandBuffer)(nil)
)
