// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/wgpu/hal"
)

// Surface wraps a hal.Surface.
type Surface struct {
	instance *Instance
	hal      hal.Surface

	device     *Device
	config     gputypes.SurfaceConfiguration
	configured bool
	acquired   *SurfaceTexture
	presented  uint64
	released   bool
}

// Capabilities implements present.Surface. Adapters from another instance
// or backend cannot present here and get empty capabilities.
func (s *Surface) Capabilities(a present.Adapter) gputypes.SurfaceCapabilities {
	na, ok := a.(*Adapter)
	if !ok || na.instance != s.instance {
		return gputypes.SurfaceCapabilities{}
	}
	caps := na.exposed.Adapter.SurfaceCapabilities(s.hal)
	if caps == nil {
		return gputypes.SurfaceCapabilities{}
	}
	return gputypes.SurfaceCapabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}
}

// Configure implements present.Surface.
func (s *Surface) Configure(a present.Adapter, d present.Device, cfg *gputypes.SurfaceConfiguration) error {
	if s.released {
		return ErrReleased
	}
	if _, ok := a.(*Adapter); !ok {
		return fmt.Errorf("%w: adapter %T", present.ErrForeignObject, a)
	}
	nd, ok := d.(*Device)
	if !ok || nd == nil {
		return fmt.Errorf("%w: device %T", present.ErrForeignObject, d)
	}
	if s.acquired != nil {
		return ErrTextureInFlight
	}

	if s.configured && s.device != nd {
		s.hal.Unconfigure(s.device.hal)
		s.configured = false
	}
	err := s.hal.Configure(nd.hal, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if errors.Is(err, hal.ErrZeroArea) {
		return fmt.Errorf("%w: %w", present.ErrInvalidSize, err)
	}
	if err != nil {
		return err
	}

	s.device = nd
	s.config = *cfg
	s.configured = true
	return nil
}

// AcquireTexture implements present.Surface. Lost and outdated surfaces are
// reported as present.ErrSurfaceLost.
func (s *Surface) AcquireTexture() (present.SurfaceTexture, error) {
	switch {
	case s.released:
		return nil, ErrReleased
	case !s.configured:
		return nil, ErrNotConfigured
	case s.acquired != nil:
		return nil, ErrTextureInFlight
	}

	acq, err := s.hal.AcquireTexture(nil)
	if err != nil {
		if errors.Is(err, hal.ErrSurfaceLost) || errors.Is(err, hal.ErrSurfaceOutdated) {
			return nil, fmt.Errorf("%w: %w", present.ErrSurfaceLost, err)
		}
		return nil, err
	}
	if acq.Suboptimal {
		present.Logger().Debug("native: suboptimal surface texture",
			"width", s.config.Width, "height", s.config.Height)
	}

	st := &SurfaceTexture{surface: s, hal: acq.Texture}
	s.acquired = st
	return st, nil
}

// Config returns the last applied configuration.
func (s *Surface) Config() (gputypes.SurfaceConfiguration, bool) {
	return s.config, s.configured
}

// Presented returns the number of textures presented.
func (s *Surface) Presented() uint64 { return s.presented }

// framebufferReader is implemented by HAL surfaces that render into memory,
// such as the software backend's.
type framebufferReader interface {
	GetFramebuffer() []byte
}

// Snapshot returns the surface contents as RGBA. Only memory-backed
// surfaces support it; others return ErrNoReadback.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	fb, ok := s.hal.(framebufferReader)
	if !ok {
		return nil, ErrNoReadback
	}
	if !s.configured {
		return nil, ErrNotConfigured
	}
	w, h := int(s.config.Width), int(s.config.Height)
	pix := fb.GetFramebuffer()
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("native: framebuffer holds %d bytes, want %d for %dx%d", len(pix), w*h*4, w, h)
	}
	return &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}

// Release implements present.Surface.
func (s *Surface) Release() {
	if s.released {
		return
	}
	if s.acquired != nil {
		s.acquired.Discard()
	}
	if s.configured && !s.device.destroyed {
		s.hal.Unconfigure(s.device.hal)
	}
	s.released = true
	s.configured = false
	s.hal.Destroy()
}

// SurfaceTexture wraps an acquired hal.SurfaceTexture.
type SurfaceTexture struct {
	surface *Surface
	hal     hal.SurfaceTexture
	done    bool
}

// CreateView implements present.SurfaceTexture.
func (t *SurfaceTexture) CreateView() (present.TextureView, error) {
	if t.done {
		return nil, ErrReleased
	}
	d := t.surface.device
	view, err := d.hal.CreateTextureView(t.hal, &hal.TextureViewDescriptor{
		Label:         "surface view",
		Format:        t.surface.config.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create surface view: %w", err)
	}
	return &TextureView{device: d, hal: view}, nil
}

// Present implements present.SurfaceTexture.
func (t *SurfaceTexture) Present() error {
	if t.done {
		return ErrReleased
	}
	t.done = true
	s := t.surface
	s.acquired = nil
	if err := s.device.queue.Present(s.hal, t.hal, nil); err != nil {
		if errors.Is(err, hal.ErrSurfaceLost) || errors.Is(err, hal.ErrSurfaceOutdated) {
			return fmt.Errorf("%w: %w", present.ErrSurfaceLost, err)
		}
		return fmt.Errorf("native: present: %w", err)
	}
	s.presented++
	return nil
}

// Discard implements present.SurfaceTexture.
func (t *SurfaceTexture) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.surface.acquired = nil
	t.surface.hal.DiscardTexture(t.hal)
}

var (
	_ present.Surface        = (*Surface)(nil)
	_ present.SurfaceTexture = (*SurfaceTexture)(nil)
)
