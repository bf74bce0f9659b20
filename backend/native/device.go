// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/present"
	"github.com/gogpu/wgpu/hal"
)

// retired is a HAL object waiting for the submission that used it.
type retired struct {
	index   uint64
	destroy func()
}

// Device wraps a hal.Device and its queue.
//
// Device is not safe for concurrent use.
type Device struct {
	hal   hal.Device
	queue hal.Queue
	label string

	lastSubmit uint64
	retired    []retired
	destroyed  bool
}

// CreateCommandEncoder implements present.Device.
func (d *Device) CreateCommandEncoder(label string) (present.CommandEncoder, error) {
	if d.destroyed {
		return nil, ErrReleased
	}
	d.maintain(d.queue.PollCompleted())

	enc, err := d.hal.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		enc.Destroy()
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}
	return &CommandEncoder{device: d, hal: enc, label: label}, nil
}

// Poll destroys retired objects whose submissions completed. With wait it
// first blocks until the device is idle.
func (d *Device) Poll(wait bool) {
	if d.destroyed {
		return
	}
	if wait {
		if err := d.hal.WaitIdle(); err != nil {
			present.Logger().Warn("native: wait idle failed", "device", d.label, "err", err)
		}
		d.maintain(^uint64(0))
		return
	}
	d.maintain(d.queue.PollCompleted())
}

// Destroy waits for the GPU, frees retired objects and destroys the device.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	d.Poll(true)
	d.destroyed = true
	d.hal.Destroy()
}

// Pending returns the number of objects waiting for their submission.
func (d *Device) Pending() int { return len(d.retired) }

// retire schedules destroy for after the latest submission completes.
func (d *Device) retire(destroy func()) {
	if d.destroyed {
		return
	}
	d.retired = append(d.retired, retired{index: d.lastSubmit, destroy: destroy})
}

func (d *Device) maintain(completed uint64) {
	n := 0
	for _, r := range d.retired {
		if r.index <= completed {
			r.destroy()
			continue
		}
		d.retired[n] = r
		n++
	}
	clear(d.retired[n:])
	d.retired = d.retired[:n]
}

// Queue submits command buffers to a Device's HAL queue.
type Queue struct {
	device *Device
}

// Submit implements present.Queue.
func (q *Queue) Submit(buffers ...present.CommandBuffer) error {
	d := q.device
	if d.destroyed {
		return ErrReleased
	}
	bufs := make([]*CommandBuffer, len(buffers))
	halBufs := make([]hal.CommandBuffer, len(buffers))
	for i, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok || cb == nil {
			return fmt.Errorf("%w: command buffer %T", present.ErrForeignObject, b)
		}
		if cb.submitted {
			return ErrAlreadySubmitted
		}
		bufs[i] = cb
		halBufs[i] = cb.hal
	}

	index, err := d.queue.Submit(halBufs)
	if err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	for _, cb := range bufs {
		cb.submitted = true
	}
	d.lastSubmit = index
	d.maintain(d.queue.PollCompleted())
	return nil
}

var (
	_ present.Device = (*Device)(nil)
	_ present.Queue  = (*Queue)(nil)
)
