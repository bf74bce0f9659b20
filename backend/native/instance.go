// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/wgpu/hal"
)

// Instance wraps a hal.Instance.
type Instance struct {
	variant  gputypes.Backend
	hal      hal.Instance
	released bool
}

// NewInstance creates an instance of backend.
func NewInstance(backend hal.Backend) (*Instance, error) {
	inst, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create %v instance: %w", backend.Variant(), err)
	}
	return &Instance{variant: backend.Variant(), hal: inst}, nil
}

// Open creates an instance of a backend registered with the HAL registry.
func Open(variant gputypes.Backend) (*Instance, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("native: backend %v not registered", variant)
	}
	return NewInstance(backend)
}

// CreateSurface creates a surface for a native window. See
// hal.Instance.CreateSurface for the meaning of the handles per platform.
// The software backend accepts zero handles and renders into memory.
func (i *Instance) CreateSurface(displayHandle, windowHandle uintptr) (*Surface, error) {
	if i.released {
		return nil, ErrReleased
	}
	s, err := i.hal.CreateSurface(displayHandle, windowHandle)
	if err != nil {
		return nil, fmt.Errorf("native: create surface: %w", err)
	}
	return &Surface{instance: i, hal: s}, nil
}

// Adapters enumerates the instance's adapters. surface, if non-nil, is
// passed to the backend as a hint.
func (i *Instance) Adapters(surface *Surface) []*Adapter {
	var hint hal.Surface
	if surface != nil {
		hint = surface.hal
	}
	exposed := i.hal.EnumerateAdapters(hint)
	adapters := make([]*Adapter, len(exposed))
	for n := range exposed {
		adapters[n] = &Adapter{instance: i, exposed: exposed[n]}
	}
	return adapters
}

// RequestAdapter implements present.Instance.
func (i *Instance) RequestAdapter(opts *present.AdapterOptions) (present.Adapter, error) {
	if i.released {
		return nil, ErrReleased
	}
	var surface *Surface
	if opts != nil && opts.CompatibleSurface != nil {
		s, ok := opts.CompatibleSurface.(*Surface)
		if !ok {
			return nil, fmt.Errorf("%w: surface %T", present.ErrForeignObject, opts.CompatibleSurface)
		}
		surface = s
	}

	adapters := i.Adapters(surface)
	candidates := make([]present.Adapter, len(adapters))
	for n, a := range adapters {
		candidates[n] = a
	}
	a, err := present.SelectAdapter(candidates, opts)
	if err != nil {
		return nil, fmt.Errorf("native: %v: %w", i.variant, err)
	}
	return a, nil
}

// Release destroys the HAL instance.
func (i *Instance) Release() {
	if i.released {
		return
	}
	i.released = true
	i.hal.Destroy()
}

var _ present.Instance = (*Instance)(nil)
