// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Blue is the default clear color.
var Blue = gputypes.Color{R: 0, G: 0, B: 1, A: 1}

// Target is the frame a Recorder draws into.
type Target struct {
	View   TextureView
	Size   Size
	Format gputypes.TextureFormat
}

// Recorder records the commands for one frame.
type Recorder interface {
	Record(enc CommandEncoder, target Target) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(enc CommandEncoder, target Target) error

// Record calls f.
func (f RecorderFunc) Record(enc CommandEncoder, target Target) error {
	return f(enc, target)
}

// ClearPass records a single render pass that clears the target to Color
// and stores the result.
type ClearPass struct {
	Color gputypes.Color
	Label string
}

// Record implements Recorder.
func (p ClearPass) Record(enc CommandEncoder, target Target) error {
	pass, err := enc.BeginRenderPass(&RenderPassDescriptor{
		Label: p.Label,
		ColorAttachments: []ColorAttachment{{
			View:       target.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: p.Color,
		}},
	})
	if err != nil {
		return fmt.Errorf("present: begin clear pass: %w", err)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("present: end clear pass: %w", err)
	}
	return nil
}

var _ Recorder = ClearPass{}
