// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package app drives a present.Renderer from window events.
//
// Run is the event loop of a window that only shows a cleared frame: it
// resizes the renderer when the window changes, presents on every redraw
// request and returns when the window is closed.
package app

import (
	"errors"
	"fmt"

	"github.com/gogpu/present"
)

// Presenter is the part of *present.Renderer that Run needs.
type Presenter interface {
	Resize(size present.Size) error
	Present() error
}

var _ Presenter = (*present.Renderer)(nil)

// Option configures Run.
type Option func(*config)

type config struct {
	maxFrames  uint64
	continuous bool
}

// WithMaxFrames stops the loop after n presented frames. Zero means no
// limit.
func WithMaxFrames(n uint64) Option {
	return func(c *config) {
		c.maxFrames = n
	}
}

// WithContinuousRedraw requests a new frame after each one is presented,
// instead of redrawing only when the window asks.
func WithContinuousRedraw(on bool) Option {
	return func(c *config) {
		c.continuous = on
	}
}

// Stats summarizes a finished Run.
type Stats struct {
	Frames  uint64
	Skipped uint64
	Resizes uint64
}

// Loop applies window events to a Presenter. Run drives one from an
// EventSource; hosts that own their event loop call Handle directly.
type Loop struct {
	p         Presenter
	redraw    func()
	c         config
	stats     Stats
	minimized bool
}

// NewLoop returns a Loop presenting to p. redraw is called when the loop
// wants another frame; it may be nil.
func NewLoop(p Presenter, redraw func(), opts ...Option) *Loop {
	l := &Loop{p: p, redraw: redraw}
	for _, opt := range opts {
		opt(&l.c)
	}
	return l
}

// Stats returns the counters so far.
func (l *Loop) Stats() Stats { return l.stats }

// Handle applies ev. It reports done when the window asked to close or
// the frame limit was reached, and returns the first error that should
// stop the loop.
//
// A Resized event with an empty size marks the window minimized: p is not
// resized and redraws are skipped until a non-empty size arrives. A frame
// whose swap chain texture cannot be acquired, or whose surface was lost
// while presenting, is skipped and logged.
func (l *Loop) Handle(ev Event) (done bool, err error) {
	switch ev.Kind {
	case EventResized:
		if ev.Size.Empty() {
			present.Logger().Debug("app: window minimized")
			l.minimized = true
			return false, nil
		}
		l.minimized = false
		if err := l.p.Resize(ev.Size); err != nil {
			return true, fmt.Errorf("app: resize to %s: %w", ev.Size, err)
		}
		l.stats.Resizes++
		l.requestRedraw()

	case EventRedrawRequested:
		if l.minimized {
			l.stats.Skipped++
			return false, nil
		}
		err := l.p.Present()
		if errors.Is(err, present.ErrAcquireTexture) || errors.Is(err, present.ErrSurfaceLost) {
			present.Logger().Warn("app: frame skipped", "err", err)
			l.stats.Skipped++
			return false, nil
		}
		if err != nil {
			return true, err
		}
		l.stats.Frames++
		if l.c.maxFrames > 0 && l.stats.Frames >= l.c.maxFrames {
			return true, nil
		}
		if l.c.continuous {
			l.requestRedraw()
		}

	case EventCloseRequested:
		return true, nil

	default:
		present.Logger().Debug("app: ignoring event", "kind", ev.Kind)
	}
	return false, nil
}

func (l *Loop) requestRedraw() {
	if l.redraw != nil {
		l.redraw()
	}
}

// Run dispatches events from src to p until the window is closed, src is
// exhausted or a frame limit is reached. See Loop.Handle for how each
// event is treated.
func Run(src EventSource, p Presenter, opts ...Option) (Stats, error) {
	l := NewLoop(p, src.RequestRedraw, opts...)
	for {
		ev, ok := src.Next()
		if !ok {
			return l.stats, nil
		}
		if done, err := l.Handle(ev); done || err != nil {
			return l.stats, err
		}
	}
}
