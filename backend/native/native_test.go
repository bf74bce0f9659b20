// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/present"
	"github.com/gogpu/present/backend/native"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/wgpu/hal/software"
)

func newSoftware(t *testing.T) (*native.Instance, *native.Surface) {
	t.Helper()
	inst, err := native.NewInstance(software.API{})
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	t.Cleanup(inst.Release)
	surface, err := inst.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	return inst, surface
}

func newRenderer(t *testing.T, size present.Size, opts ...present.Option) (*present.Renderer, *native.Surface) {
	t.Helper()
	inst, surface := newSoftware(t)
	opts = append([]present.Option{present.WithForceFallbackAdapter(true)}, opts...)
	r, err := present.New(inst, size, surface, opts...)
	if err != nil {
		t.Fatalf("present.New: %v", err)
	}
	t.Cleanup(r.Release)
	return r, surface
}

func snapshot(t *testing.T, s *native.Surface) *image.RGBA {
	t.Helper()
	img, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return img
}

func assertFilled(t *testing.T, img *image.RGBA, want color.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

var opaqueBlue = color.RGBA{R: 0, G: 0, B: 255, A: 255}

func TestPresentClearsToBlue(t *testing.T) {
	r, surface := newRenderer(t, present.Size{Width: 64, Height: 48})

	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	img := snapshot(t, surface)
	if got := img.Bounds().Size(); got != image.Pt(64, 48) {
		t.Fatalf("snapshot size = %v, want 64x48", got)
	}
	assertFilled(t, img, opaqueBlue)
	if r.Frames() != 1 || surface.Presented() != 1 {
		t.Errorf("Frames() = %d, Presented() = %d, want 1 and 1", r.Frames(), surface.Presented())
	}
}

func TestPresentFormats(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.TextureFormat
	}{
		{"bgra", gputypes.TextureFormatBGRA8Unorm},
		{"rgba", gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, surface := newRenderer(t, present.Size{Width: 8, Height: 8},
				present.WithFormat(tt.format),
				present.WithClearColor(gputypes.Color{R: 1, G: 0, B: 0, A: 1}),
			)
			if got := r.SurfaceFormat(); got != tt.format {
				t.Fatalf("SurfaceFormat() = %v, want %v", got, tt.format)
			}
			if err := r.Present(); err != nil {
				t.Fatalf("Present: %v", err)
			}
			assertFilled(t, snapshot(t, surface), color.RGBA{R: 255, A: 255})
		})
	}
}

func TestDefaultFormatIsPreferred(t *testing.T) {
	r, _ := newRenderer(t, present.Size{Width: 4, Height: 4})
	caps := r.Capabilities()
	if len(caps.Formats) == 0 {
		t.Fatal("no formats reported")
	}
	if got := r.Config().Format; got != caps.Formats[0] {
		t.Errorf("format = %v, want preferred %v", got, caps.Formats[0])
	}
	if got := r.Config().PresentMode; got != gputypes.PresentModeFifo {
		t.Errorf("present mode = %v, want Fifo", got)
	}
}

func TestResizeThenPresent(t *testing.T) {
	r, surface := newRenderer(t, present.Size{Width: 32, Height: 32})
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if err := r.Resize(present.Size{Width: 80, Height: 20}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	cfg, ok := surface.Config()
	if !ok || cfg.Width != 80 || cfg.Height != 20 {
		t.Fatalf("surface config = %dx%d (configured %v), want 80x20", cfg.Width, cfg.Height, ok)
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present after resize: %v", err)
	}

	img := snapshot(t, surface)
	if got := img.Bounds().Size(); got != image.Pt(80, 20) {
		t.Fatalf("snapshot size = %v, want 80x20", got)
	}
	assertFilled(t, img, opaqueBlue)
}

func TestSizeSourceReconfigures(t *testing.T) {
	size := present.Size{Width: 16, Height: 16}
	r, surface := newRenderer(t, size, present.WithSizeSource(func() present.Size { return size }))

	size = present.Size{Width: 24, Height: 12}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if r.Size() != size {
		t.Errorf("Size() = %v, want %v", r.Size(), size)
	}
	if got := snapshot(t, surface).Bounds().Size(); got != image.Pt(24, 12) {
		t.Errorf("snapshot size = %v, want 24x12", got)
	}
}

func TestSoftwareAdapterIsFallback(t *testing.T) {
	r, _ := newRenderer(t, present.Size{Width: 4, Height: 4})
	info := r.Info()
	if !info.Fallback {
		t.Error("software adapter should be reported as fallback")
	}
	if info.DeviceType != gputypes.DeviceTypeCPU {
		t.Errorf("DeviceType = %v, want CPU", info.DeviceType)
	}
}

func TestSoftwareNeedsForcedFallback(t *testing.T) {
	inst, surface := newSoftware(t)
	_, _, _, err := present.Create(inst, surface)
	if !errors.Is(err, present.ErrNoAdapter) {
		t.Errorf("Create without forced fallback = %v, want ErrNoAdapter", err)
	}
}

func TestForceFallbackSelectsSoftware(t *testing.T) {
	inst, surface := newSoftware(t)
	device, adapter, _, err := present.Create(inst, surface, present.WithForceFallbackAdapter(true))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer adapter.Release()
	defer device.Destroy()
	if !adapter.Info().Fallback {
		t.Error("forced fallback returned a non-fallback adapter")
	}
}

func TestRetiredObjectsDrainOnPoll(t *testing.T) {
	r, _ := newRenderer(t, present.Size{Width: 4, Height: 4})
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	d, ok := r.Device().(*native.Device)
	if !ok {
		t.Fatalf("Device() = %T, want *native.Device", r.Device())
	}
	if d.Pending() == 0 {
		t.Fatal("expected view, encoder and command buffer to be retired after Present")
	}
	d.Poll(false)
	if n := d.Pending(); n != 0 {
		t.Errorf("Pending() after Poll = %d, want 0", n)
	}
}

func createDevice(t *testing.T) (*native.Instance, *native.Surface, present.Device, present.Adapter, present.Queue) {
	t.Helper()
	inst, surface := newSoftware(t)
	device, adapter, queue, err := present.Create(inst, surface, present.WithForceFallbackAdapter(true))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		device.Destroy()
		adapter.Release()
	})
	return inst, surface, device, adapter, queue
}

func configure(t *testing.T, surface *native.Surface, adapter present.Adapter, device present.Device, w, h uint32) {
	t.Helper()
	err := surface.Configure(adapter, device, &gputypes.SurfaceConfiguration{
		Usage:       gputypes.TextureUsageRenderAttachment,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Width:       w,
		Height:      h,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
}

func TestConfigureZeroArea(t *testing.T) {
	_, surface, device, adapter, _ := createDevice(t)
	err := surface.Configure(adapter, device, &gputypes.SurfaceConfiguration{
		Format: gputypes.TextureFormatRGBA8Unorm,
		Width:  0,
		Height: 10,
	})
	if !errors.Is(err, present.ErrInvalidSize) {
		t.Errorf("Configure(0x10) = %v, want ErrInvalidSize", err)
	}
}

func TestAcquireRules(t *testing.T) {
	_, surface, device, adapter, _ := createDevice(t)

	if _, err := surface.AcquireTexture(); !errors.Is(err, native.ErrNotConfigured) {
		t.Fatalf("AcquireTexture before Configure = %v, want ErrNotConfigured", err)
	}

	configure(t, surface, adapter, device, 4, 4)
	tex, err := surface.AcquireTexture()
	if err != nil {
		t.Fatalf("AcquireTexture: %v", err)
	}
	if _, err := surface.AcquireTexture(); !errors.Is(err, native.ErrTextureInFlight) {
		t.Errorf("second AcquireTexture = %v, want ErrTextureInFlight", err)
	}
	tex.Discard()
	if _, err := surface.AcquireTexture(); err != nil {
		t.Errorf("AcquireTexture after Discard: %v", err)
	}
}

func TestEncoderStateMachine(t *testing.T) {
	_, surface, device, adapter, queue := createDevice(t)
	configure(t, surface, adapter, device, 4, 4)

	tex, err := surface.AcquireTexture()
	if err != nil {
		t.Fatalf("AcquireTexture: %v", err)
	}
	defer tex.Discard()
	view, err := tex.CreateView()
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	defer view.Release()

	enc, err := device.CreateCommandEncoder("test")
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	defer enc.Release()
	ne := enc.(*native.CommandEncoder)

	desc := &present.RenderPassDescriptor{ColorAttachments: []present.ColorAttachment{{
		View:    view,
		LoadOp:  gputypes.LoadOpClear,
		StoreOp: gputypes.StoreOpStore,
	}}}
	pass, err := enc.BeginRenderPass(desc)
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}
	if ne.State() != native.EncoderStateInPass {
		t.Errorf("state = %v, want InPass", ne.State())
	}
	if _, err := enc.BeginRenderPass(desc); !errors.Is(err, native.ErrPassOpen) {
		t.Errorf("nested BeginRenderPass = %v, want ErrPassOpen", err)
	}
	if _, err := enc.Finish(); !errors.Is(err, native.ErrPassOpen) {
		t.Errorf("Finish with open pass = %v, want ErrPassOpen", err)
	}
	if err := pass.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := pass.End(); err == nil {
		t.Error("second End should fail")
	}

	buf, err := enc.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	defer buf.Release()
	if _, err := enc.Finish(); !errors.Is(err, native.ErrEncoderFinished) {
		t.Errorf("second Finish = %v, want ErrEncoderFinished", err)
	}

	if err := queue.Submit(buf); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := queue.Submit(buf); !errors.Is(err, native.ErrAlreadySubmitted) {
		t.Errorf("second Submit = %v, want ErrAlreadySubmitted", err)
	}
}

type foreignView struct{}

func (foreignView) Release() {}

func TestForeignViewRejected(t *testing.T) {
	_, _, device, _, _ := createDevice(t)
	enc, err := device.CreateCommandEncoder("foreign")
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	defer enc.Release()
	_, err = enc.BeginRenderPass(&present.RenderPassDescriptor{
		ColorAttachments: []present.ColorAttachment{{View: foreignView{}}},
	})
	if !errors.Is(err, present.ErrForeignObject) {
		t.Errorf("BeginRenderPass(foreign view) = %v, want ErrForeignObject", err)
	}
}

func TestCapabilitiesForForeignAdapter(t *testing.T) {
	_, surfaceA := newSoftware(t)
	instB, _ := newSoftware(t)
	adapters := instB.Adapters(nil)
	if len(adapters) == 0 {
		t.Fatal("software instance exposes no adapters")
	}
	if caps := surfaceA.Capabilities(adapters[0]); len(caps.Formats) != 0 {
		t.Errorf("capabilities across instances = %v, want none", caps.Formats)
	}
}

func TestNoopLifecycle(t *testing.T) {
	inst, err := native.NewInstance(noop.API{})
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer inst.Release()
	surface, err := inst.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}

	r, err := present.New(inst, present.Size{Width: 640, Height: 480}, surface)
	if err != nil {
		t.Fatalf("present.New: %v", err)
	}
	defer r.Release()

	for i := 0; i < 3; i++ {
		if err := r.Present(); err != nil {
			t.Fatalf("Present #%d: %v", i, err)
		}
	}
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}
	if r.Info().Fallback {
		t.Error("noop adapter should not be a fallback adapter")
	}
	if _, err := surface.Snapshot(); !errors.Is(err, native.ErrNoReadback) {
		t.Errorf("Snapshot on noop = %v, want ErrNoReadback", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	inst, surface := newSoftware(t)
	r, err := present.New(inst, present.Size{Width: 4, Height: 4}, surface, present.WithForceFallbackAdapter(true))
	if err != nil {
		t.Fatalf("present.New: %v", err)
	}
	r.Release()
	r.Release()
	if err := r.Present(); !errors.Is(err, present.ErrReleased) {
		t.Errorf("Present after Release = %v, want ErrReleased", err)
	}
}

func TestOpenUnregistered(t *testing.T) {
	// The metal HAL package is never imported by this test binary.
	inst, err := native.Open(gputypes.BackendMetal)
	if err == nil {
		inst.Release()
		t.Fatal("Open(metal) succeeded without the backend linked in")
	}
}
