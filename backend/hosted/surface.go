// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hosted

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/wgpu"
)

// Frame is the host's frame in progress. *gogpu.Context implements it.
type Frame interface {
	// SurfaceView acquires the swap chain texture on first use and
	// returns its view, or nil if the host could not acquire one.
	SurfaceView() *wgpu.TextureView

	// SurfaceSize returns the host surface size in pixels.
	SurfaceSize() (width, height uint32)
}

// Surface is the host's window surface. The host acquires and presents;
// the surface lends the current frame's view to the renderer between Begin
// and End.
type Surface struct {
	instance *Instance
	format   gputypes.TextureFormat
	mode     gputypes.PresentMode

	config     gputypes.SurfaceConfiguration
	configured bool

	frame     Frame
	taken     bool
	acquired  *SurfaceTexture
	presented uint64
	released  bool
}

// Capabilities implements present.Surface. The host configured the
// surface, so exactly its format and present mode are reported.
func (s *Surface) Capabilities(a present.Adapter) gputypes.SurfaceCapabilities {
	if a != present.Adapter(s.instance.adapter) {
		return gputypes.SurfaceCapabilities{}
	}
	return gputypes.SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{s.format},
		PresentModes: []gputypes.PresentMode{s.mode},
		AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
	}
}

// Configure implements present.Surface. The host owns the swap chain, so
// Configure only checks cfg against it and records the size the renderer
// expects.
func (s *Surface) Configure(a present.Adapter, d present.Device, cfg *gputypes.SurfaceConfiguration) error {
	if s.released {
		return ErrReleased
	}
	dev, ok := d.(*Device)
	if a != present.Adapter(s.instance.adapter) || !ok || dev.adapter != s.instance.adapter {
		return fmt.Errorf("%w: adapter %T, device %T", present.ErrForeignObject, a, d)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: %dx%d", present.ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if cfg.Format != s.format {
		return fmt.Errorf("%w: %v, host uses %v", present.ErrUnsupportedFormat, cfg.Format, s.format)
	}
	if cfg.PresentMode != s.mode {
		return fmt.Errorf("%w: %v, host uses %v", present.ErrUnsupportedPresentMode, cfg.PresentMode, s.mode)
	}
	s.config = *cfg
	s.configured = true
	return nil
}

// Config returns the last configuration and whether there is one.
func (s *Surface) Config() (gputypes.SurfaceConfiguration, bool) {
	return s.config, s.configured
}

// Begin lends f to the surface until End.
func (s *Surface) Begin(f Frame) {
	s.frame = f
	s.taken = false
	s.acquired = nil
}

// End takes the frame back. A texture still acquired counts as discarded.
func (s *Surface) End() {
	if s.acquired != nil {
		s.acquired.done = true
	}
	s.frame = nil
	s.acquired = nil
}

// AcquireTexture implements present.Surface. Each frame yields at most one
// texture. A frame the host could not acquire, or one whose size differs
// from the configured size, is reported as present.ErrSurfaceLost.
func (s *Surface) AcquireTexture() (present.SurfaceTexture, error) {
	switch {
	case s.released:
		return nil, ErrReleased
	case !s.configured:
		return nil, ErrNotConfigured
	case s.frame == nil:
		return nil, ErrNoFrame
	case s.taken:
		return nil, ErrTextureInFlight
	}
	s.taken = true

	view := s.frame.SurfaceView()
	if view == nil {
		return nil, fmt.Errorf("%w: host could not acquire a frame", present.ErrSurfaceLost)
	}
	if w, h := s.frame.SurfaceSize(); w != s.config.Width || h != s.config.Height {
		return nil, fmt.Errorf("%w: host surface is %dx%d, configured %dx%d",
			present.ErrSurfaceLost, w, h, s.config.Width, s.config.Height)
	}

	st := &SurfaceTexture{surface: s, view: view}
	s.acquired = st
	return st, nil
}

// Presented returns the number of textures marked for presentation.
func (s *Surface) Presented() uint64 { return s.presented }

// Release implements present.Surface. The host's surface stays alive.
func (s *Surface) Release() {
	s.released = true
	s.frame = nil
	s.acquired = nil
}

// SurfaceTexture is the host's current swap chain texture.
type SurfaceTexture struct {
	surface *Surface
	view    *wgpu.TextureView
	done    bool
}

// CreateView implements present.SurfaceTexture. The view belongs to the
// host.
func (t *SurfaceTexture) CreateView() (present.TextureView, error) {
	if t.done {
		return nil, ErrReleased
	}
	return &TextureView{wgpu: t.view}, nil
}

// Present implements present.SurfaceTexture. The host presents the
// texture after the frame ends.
func (t *SurfaceTexture) Present() error {
	if t.done {
		return ErrReleased
	}
	t.done = true
	t.surface.acquired = nil
	t.surface.presented++
	return nil
}

// Discard implements present.SurfaceTexture. The host still presents the
// texture, with whatever it holds.
func (t *SurfaceTexture) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.surface.acquired = nil
}

// TextureView is a borrowed view of the host's swap chain texture.
type TextureView struct {
	wgpu     *wgpu.TextureView
	released bool
}

// Release implements present.TextureView. The host releases the view.
func (v *TextureView) Release() { v.released = true }

var (
	_ present.Surface        = (*Surface)(nil)
	_ present.SurfaceTexture = (*SurfaceTexture)(nil)
	_ present.TextureView    = (*TextureView)(nil)
)
