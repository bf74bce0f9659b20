// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hosted

import (
	"fmt"
	"math"

	"github.com/gogpu/present"
	"github.com/gogpu/wgpu"
)

// submission is a set of command buffers waiting for the GPU.
type submission struct {
	index   uint64
	buffers []*wgpu.CommandBuffer
}

// Device records into the host's wgpu.Device.
//
// Device is not safe for concurrent use. Drive it from the host's render
// thread.
type Device struct {
	adapter *Adapter
	wgpu    *wgpu.Device
	queue   *wgpu.Queue
	label   string

	inflight  []submission
	destroyed bool
}

// CreateCommandEncoder implements present.Device.
func (d *Device) CreateCommandEncoder(label string) (present.CommandEncoder, error) {
	if d.destroyed {
		return nil, ErrReleased
	}
	enc, err := d.wgpu.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("hosted: create command encoder: %w", err)
	}
	return &CommandEncoder{device: d, wgpu: enc, label: label}, nil
}

// Poll frees command buffers whose submissions completed. With wait it
// first blocks until the device is idle.
func (d *Device) Poll(wait bool) {
	if d.destroyed {
		return
	}
	if wait {
		if err := d.wgpu.WaitIdle(); err != nil {
			present.Logger().Warn("hosted: wait idle failed", "device", d.label, "err", err)
		}
		d.triage(math.MaxUint64)
		return
	}
	d.triage(d.queue.Poll())
}

// Destroy waits for the GPU and frees what is still in flight. The host's
// device stays open.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	d.Poll(true)
	d.destroyed = true
}

// Pending returns the number of submissions not yet known to be complete.
func (d *Device) Pending() int { return len(d.inflight) }

func (d *Device) triage(completed uint64) {
	n := 0
	for _, s := range d.inflight {
		if s.index <= completed {
			for _, cb := range s.buffers {
				d.wgpu.FreeCommandBuffer(cb)
			}
			continue
		}
		d.inflight[n] = s
		n++
	}
	clear(d.inflight[n:])
	d.inflight = d.inflight[:n]
}

// Queue submits command buffers to the host's queue.
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
	raw := make([]*wgpu.CommandBuffer, len(buffers))
	for i, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok || cb == nil || cb.device != d {
			return fmt.Errorf("%w: command buffer %T", present.ErrForeignObject, b)
		}
		if cb.submitted {
			return ErrAlreadySubmitted
		}
		bufs[i] = cb
		raw[i] = cb.wgpu
	}

	index, err := d.queue.Submit(raw...)
	if err != nil {
		return fmt.Errorf("hosted: submit: %w", err)
	}
	for _, cb := range bufs {
		cb.submitted = true
	}
	d.inflight = append(d.inflight, submission{index: index, buffers: raw})
	d.triage(d.queue.Poll())
	return nil
}

var (
	_ present.Device = (*Device)(nil)
	_ present.Queue  = (*Queue)(nil)
)
