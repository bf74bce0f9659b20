package present

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Fakes implementing the backend interfaces in memory. They record what
// the package asked of them so tests can check ordering and cleanup.

var errFake = errors.New("fake failure")

type fakeInstance struct {
	adapters []Adapter
	err      error
	opts     *AdapterOptions
}

func (i *fakeInstance) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	i.opts = opts
	if i.err != nil {
		return nil, i.err
	}
	return SelectAdapter(i.adapters, opts)
}

func (i *fakeInstance) Release() {}

type fakeAdapter struct {
	info      AdapterInfo
	limits    gputypes.Limits
	deviceErr error

	desc     *DeviceDescriptor
	device   *fakeDevice
	queue    *fakeQueue
	released int
}

func newFakeAdapter(name string, t gputypes.DeviceType) *fakeAdapter {
	a := &fakeAdapter{limits: gputypes.DefaultLimits()}
	a.info.Name = name
	a.info.DeviceType = t
	a.info.Fallback = t == gputypes.DeviceTypeCPU
	return a
}

func (a *fakeAdapter) Info() AdapterInfo        { return a.info }
func (a *fakeAdapter) Limits() gputypes.Limits { return a.limits }
func (a *fakeAdapter) Release()                 { a.released++ }

func (a *fakeAdapter) RequestDevice(desc *DeviceDescriptor) (Device, Queue, error) {
	a.desc = desc
	if a.deviceErr != nil {
		return nil, nil, a.deviceErr
	}
	a.device = &fakeDevice{}
	a.queue = &fakeQueue{}
	return a.device, a.queue, nil
}

type fakeDevice struct {
	encErr    error
	passErr   error
	finishErr error

	encoders  []*fakeEncoder
	polls     int
	waits     int
	destroyed bool
}

func (d *fakeDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	if d.encErr != nil {
		return nil, d.encErr
	}
	e := &fakeEncoder{label: label, passErr: d.passErr, finishErr: d.finishErr}
	d.encoders = append(d.encoders, e)
	return e, nil
}

func (d *fakeDevice) Poll(wait bool) {
	d.polls++
	if wait {
		d.waits++
	}
}

func (d *fakeDevice) Destroy() { d.destroyed = true }

type fakeQueue struct {
	err       error
	submitted []CommandBuffer
}

func (q *fakeQueue) Submit(buffers ...CommandBuffer) error {
	if q.err != nil {
		return q.err
	}
	q.submitted = append(q.submitted, buffers...)
	return nil
}

type fakeEncoder struct {
	label     string
	passErr   error
	finishErr error

	passes   []*RenderPassDescriptor
	finished bool
	released bool
}

func (e *fakeEncoder) BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error) {
	if e.passErr != nil {
		return nil, e.passErr
	}
	e.passes = append(e.passes, desc)
	return &fakePass{}, nil
}

func (e *fakeEncoder) Finish() (CommandBuffer, error) {
	if e.finishErr != nil {
		return nil, e.finishErr
	}
	e.finished = true
	return &fakeBuffer{}, nil
}

func (e *fakeEncoder) Release() { e.released = true }

type fakePass struct{ ended bool }

func (p *fakePass) End() error {
	p.ended = true
	return nil
}

type fakeBuffer struct{ released bool }

func (b *fakeBuffer) Release() { b.released = true }

type fakeView struct{ released bool }

func (v *fakeView) Release() { v.released = true }

type fakeSurface struct {
	caps        gputypes.SurfaceCapabilities
	configErr   error
	acquireErrs []error
	presentErr  error

	configs  []gputypes.SurfaceConfiguration
	textures []*fakeTexture
	released bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{caps: gputypes.SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatRGBA8Unorm},
		PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo, gputypes.PresentModeMailbox},
		AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
	}}
}

func (s *fakeSurface) Capabilities(Adapter) gputypes.SurfaceCapabilities { return s.caps }

func (s *fakeSurface) Configure(_ Adapter, _ Device, cfg *gputypes.SurfaceConfiguration) error {
	if s.configErr != nil {
		return s.configErr
	}
	s.configs = append(s.configs, *cfg)
	return nil
}

func (s *fakeSurface) AcquireTexture() (SurfaceTexture, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	t := &fakeTexture{presentErr: s.presentErr}
	s.textures = append(s.textures, t)
	return t, nil
}

func (s *fakeSurface) Release() { s.released = true }

type fakeTexture struct {
	presentErr error

	view      *fakeView
	presented bool
	discarded bool
}

func (t *fakeTexture) CreateView() (TextureView, error) {
	t.view = &fakeView{}
	return t.view, nil
}

func (t *fakeTexture) Present() error {
	t.presented = true
	return t.presentErr
}

func (t *fakeTexture) Discard() { t.discarded = true }

// newFakeSetup returns an instance with a single discrete adapter and a
// surface supporting it.
func newFakeSetup() (*fakeInstance, *fakeAdapter, *fakeSurface) {
	a := newFakeAdapter("gpu", gputypes.DeviceTypeDiscreteGPU)
	return &fakeInstance{adapters: []Adapter{a}}, a, newFakeSurface()
}
