// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/app"
	"github.com/gogpu/present/backend/hosted"
)

// frame is the host's frame in progress. *gogpu.Context implements it.
type frame interface {
	hosted.Frame
	Format() gputypes.TextureFormat
}

// host is the part of *gogpu.App the driver calls back into.
type host interface {
	Quit()
	RequestRedraw()
}

// lender lends the host's frames to a renderer.
type lender interface {
	Begin(f hosted.Frame)
	End()
}

// session is a renderer opened on the host's device.
type session struct {
	presenter app.Presenter
	surface   lender
	release   func()
}

// driver turns the host's draw callbacks into app events. The renderer is
// opened on the first frame, when the host's device exists. A frame whose
// size differs from the last one is delivered as a Resized event before
// the redraw.
type driver struct {
	host     host
	open     func(f frame) (session, error)
	loopOpts []app.Option

	s    session
	loop *app.Loop
	last present.Size
	done bool
	err  error
}

func frameSize(f frame) present.Size {
	w, h := f.SurfaceSize()
	return present.Size{Width: w, Height: h}
}

func (d *driver) draw(f frame) {
	if d.done {
		return
	}
	size := frameSize(f)
	if d.loop == nil {
		s, err := d.open(f)
		if err != nil {
			d.stop(err)
			return
		}
		d.s = s
		d.loop = app.NewLoop(s.presenter, d.host.RequestRedraw, d.loopOpts...)
		d.last = size
	}
	if size != d.last {
		d.last = size
		if d.handle(app.Resized(size)) {
			return
		}
	}

	d.s.surface.Begin(f)
	defer d.s.surface.End()
	d.handle(app.Event{Kind: app.EventRedrawRequested})
}

// handle reports whether the loop stopped.
func (d *driver) handle(ev app.Event) bool {
	done, err := d.loop.Handle(ev)
	if done || err != nil {
		d.stop(err)
		return true
	}
	return false
}

func (d *driver) stop(err error) {
	d.done = true
	d.err = err
	d.host.Quit()
}

// close releases the renderer. The host calls it before destroying its
// device.
func (d *driver) close() {
	if d.s.release != nil {
		d.s.release()
		d.s.release = nil
	}
}

func (d *driver) stats() app.Stats {
	if d.loop == nil {
		return app.Stats{}
	}
	return d.loop.Stats()
}
