// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/present"
	"github.com/gogpu/present/backend/native"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/wgpu/hal/software"
	"github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	Register(Vulkan, nativeFactory(Vulkan, vulkan.Backend{}))
	Register(Software, nativeFactory(Software, software.API{}))
	Register(Noop, nativeFactory(Noop, noop.API{}))
}

func nativeFactory(name string, b hal.Backend) Factory {
	return func() (Instance, error) {
		inst, err := native.NewInstance(b)
		if err != nil {
			return nil, err
		}
		return &nativeInstance{Instance: inst, name: name}, nil
	}
}

// nativeInstance adapts *native.Instance to Instance.
type nativeInstance struct {
	*native.Instance
	name string
}

func (i *nativeInstance) Name() string { return i.name }

func (i *nativeInstance) CreateSurface(display, window uintptr) (present.Surface, error) {
	s, err := i.Instance.CreateSurface(display, window)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Native returns the backend/native instance behind inst, if any. It
// gives access to native-only features such as Surface.Snapshot.
func Native(inst Instance) (*native.Instance, bool) {
	ni, ok := inst.(*nativeInstance)
	if !ok {
		return nil, false
	}
	return ni.Instance, true
}
