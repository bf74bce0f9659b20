// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window opens a desktop window with gogpu and presents into it
// through a present.Renderer.
//
// gogpu owns the window, the device and the swap chain. Each frame it
// hands out is lent to a hosted.Surface, and an app.Loop resizes and
// presents the renderer from it. gogpu is pure Go, so programs using this
// package build with CGO_ENABLED=0.
package window

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/app"
	"github.com/gogpu/present/backend/hosted"
)

// ErrUnsupportedBackend is returned by New for a backend that cannot drive
// a window.
var ErrUnsupportedBackend = errors.New("window: backend cannot drive a window")

// Config describes the window to open.
type Config struct {
	Title string

	// Width and Height are the requested client size in screen
	// coordinates. Zero picks 800x600.
	Width  int
	Height int

	// Fixed disables user resizing.
	Fixed bool

	// Backend is "vulkan", "software" or empty for the best available.
	Backend string

	// PresentMode is the mode asked of the host. Fifo and FifoRelaxed
	// turn vertical sync on.
	PresentMode gputypes.PresentMode

	PowerPreference gputypes.PowerPreference
}

const (
	defaultWidth  = 800
	defaultHeight = 600
)

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Title == "" {
		c.Title = "present"
	}
	if c.PresentMode == gputypes.PresentModeUndefined {
		c.PresentMode = gputypes.PresentModeFifo
	}
	return c
}

// graphicsAPI maps a backend name to the API gogpu should open.
func graphicsAPI(backend string) (types.GraphicsAPI, error) {
	switch backend {
	case "":
		return types.GraphicsAPIAuto, nil
	case "vulkan":
		return types.GraphicsAPIVulkan, nil
	case "software":
		return types.GraphicsAPISoftware, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
}

func vsync(mode gputypes.PresentMode) bool {
	return mode == gputypes.PresentModeFifo || mode == gputypes.PresentModeFifoRelaxed
}

// hostConfig converts c to the gogpu settings. Frames are drawn on demand;
// the loop asks for more when it wants them.
func (c Config) hostConfig() (gogpu.Config, error) {
	api, err := graphicsAPI(c.Backend)
	if err != nil {
		return gogpu.Config{}, err
	}
	hc := gogpu.DefaultConfig().
		WithTitle(c.Title).
		WithSize(c.Width, c.Height).
		WithBackend(types.BackendNative).
		WithGraphicsAPI(api).
		WithVSync(vsync(c.PresentMode)).
		WithContinuousRender(false).
		WithPowerPreference(c.PowerPreference)
	hc.Resizable = !c.Fixed
	return hc, nil
}

// Window is a gogpu window presenting through a present.Renderer. It
// implements gpucontext.WindowProvider.
type Window struct {
	cfg  Config
	host *gogpu.App
}

// New prepares a window. Nothing is opened until Run.
func New(cfg Config) (*Window, error) {
	cfg = cfg.withDefaults()
	hc, err := cfg.hostConfig()
	if err != nil {
		return nil, err
	}
	return &Window{cfg: cfg, host: gogpu.NewApp(hc)}, nil
}

// Run opens the window and presents until it is closed, the loop's frame
// limit is reached or presenting fails. opts configure the renderer; the
// host's adapter and present mode are added to them. Run must be called
// from the main goroutine.
func (w *Window) Run(opts []present.Option, loopOpts ...app.Option) (app.Stats, error) {
	d := &driver{
		host:     w.host,
		loopOpts: loopOpts,
		open: func(f frame) (session, error) {
			return w.open(f, opts)
		},
	}
	w.host.OnDraw(func(ctx *gogpu.Context) { d.draw(ctx) })
	w.host.OnClose(d.close)

	present.Logger().Info("window: opening", "title", w.cfg.Title,
		"size", fmt.Sprintf("%dx%d", w.cfg.Width, w.cfg.Height), "backend", w.cfg.Backend)
	if err := w.host.Run(); err != nil {
		return d.stats(), fmt.Errorf("window: %w", err)
	}
	return d.stats(), d.err
}

// open builds the renderer on the host's device for the first frame.
func (w *Window) open(f frame, opts []present.Option) (session, error) {
	inst, err := hosted.FromProvider(w.host.GPUContextProvider(), f.Format(), w.cfg.PresentMode)
	if err != nil {
		return session{}, err
	}
	all := append(slices.Clone(opts), inst.Options()...)
	all = append(all, present.WithPresentMode(w.cfg.PresentMode))

	r, err := present.New(inst, frameSize(f), inst.Surface(), all...)
	if err != nil {
		inst.Release()
		return session{}, err
	}
	present.Logger().Info("window: presenting",
		"adapter", r.Info().String(), "format", r.SurfaceFormat(), "size", r.Size())
	return session{
		presenter: r,
		surface:   inst.Surface(),
		release: func() {
			r.Release()
			inst.Release()
		},
	}, nil
}

// Size implements gpucontext.WindowProvider with the logical size. Before
// Run it is the configured size.
func (w *Window) Size() (width, height int) { return w.host.Size() }

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 {
	if s := w.host.ScaleFactor(); s > 0 {
		return s
	}
	return 1
}

// RequestRedraw implements gpucontext.WindowProvider. It may be called from
// any goroutine.
func (w *Window) RequestRedraw() { w.host.RequestRedraw() }

// Close asks a running window to close.
func (w *Window) Close() { w.host.Quit() }

var _ gpucontext.WindowProvider = (*Window)(nil)
