// Package present opens a GPU device for a window surface and presents
// frames to it.
//
// # Overview
//
// Create selects an adapter that can drive a surface and opens a device and
// queue on it. New does the same and also configures the surface, returning
// a Renderer that owns the result. Each Renderer.Present acquires the next
// swap chain texture, records a frame into it, submits and presents. The
// default frame is a single render pass that clears to opaque blue.
//
//	inst, err := native.NewInstance(software.API{})
//	if err != nil {
//	    return err
//	}
//	defer inst.Release()
//	surface, err := inst.CreateSurface(0, 0)
//	if err != nil {
//	    return err
//	}
//	r, err := present.New(inst, present.Size{Width: 800, Height: 600}, surface,
//	    present.WithForceFallbackAdapter(true))
//	if err != nil {
//	    surface.Release()
//	    return err
//	}
//	defer r.Release()
//	return r.Present()
//
// # Backends
//
// The package talks to GPUs through the small Instance/Adapter/Device/Surface
// interfaces in backend.go. backend/native implements them on the pure Go
// HAL of github.com/gogpu/wgpu, so any HAL backend works: Vulkan for real
// windows, the software rasterizer for headless rendering and tests, and
// noop for lifecycle checks. The backend package maps names to them.
//
// # Resizing
//
// The Renderer does not watch the window. Call Resize whenever the window's
// framebuffer size changes, or pass WithSizeSource / WithWindow to have
// Present check the size before every frame. The app package wires window
// events to these calls.
//
// # Sharing the device
//
// Renderer implements gpucontext.DeviceProvider so other gogpu libraries can
// draw with the same device.
//
// # Logging
//
// Logging is silent by default. See SetLogger.
package present
