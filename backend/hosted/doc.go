// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hosted implements the present backend interfaces on a device and
// window surface owned by a host, such as a github.com/gogpu/gogpu App.
//
// The host opens the window, picks the adapter, creates the device and
// acquires and presents every swap chain texture. An Instance borrows the
// host's device and exposes its single surface. The host hands each frame
// to the surface with Begin and takes it back with End:
//
//	app.OnDraw(func(ctx *gogpu.Context) {
//		surface.Begin(ctx)
//		defer surface.End()
//		err := r.Present()
//		...
//	})
//
// Nothing the host owns is released here. Command buffers submitted
// through the Queue are freed once the host's queue reports them complete.
package hosted
