package present

import (
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Option configures Create and New.
//
// Example:
//
//	r, err := present.New(inst, size, surface,
//	    present.WithPresentMode(gputypes.PresentModeMailbox),
//	    present.WithPowerPreference(gputypes.PowerPreferenceHighPerformance),
//	)
type Option func(*options)

type options struct {
	powerPreference gputypes.PowerPreference
	forceFallback   bool
	format          gputypes.TextureFormat
	presentMode     gputypes.PresentMode
	alphaMode       gputypes.CompositeAlphaMode
	alphaModeSet    bool
	recorder        Recorder
	sizeSource      func() Size
	label           string
}

func defaultOptions() options {
	return options{
		presentMode: gputypes.PresentModeFifo,
		recorder:    ClearPass{Color: Blue, Label: "clear"},
		label:       "present",
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPowerPreference hints which adapter to prefer.
func WithPowerPreference(p gputypes.PowerPreference) Option {
	return func(o *options) {
		o.powerPreference = p
	}
}

// WithForceFallbackAdapter restricts selection to fallback (software)
// adapters. Without it they are never chosen.
func WithForceFallbackAdapter(force bool) Option {
	return func(o *options) {
		o.forceFallback = force
	}
}

// WithFormat requests a surface format. The default is the surface's
// preferred format, the first one it reports.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithPresentMode requests a present mode. The default is Fifo, which
// every surface supports.
func WithPresentMode(m gputypes.PresentMode) Option {
	return func(o *options) {
		if m != gputypes.PresentModeUndefined {
			o.presentMode = m
		}
	}
}

// WithAlphaMode requests a composite alpha mode. The default is the first
// mode the surface reports.
func WithAlphaMode(m gputypes.CompositeAlphaMode) Option {
	return func(o *options) {
		o.alphaMode = m
		o.alphaModeSet = true
	}
}

// WithRecorder replaces the frame recorder. The default clears to Blue.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithClearColor keeps the clear-only recorder but changes its color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.recorder = ClearPass{Color: c, Label: "clear"}
	}
}

// WithSizeSource makes Present compare the window size against the
// configured size before every frame and reconfigure on a mismatch.
// Without it, callers must call Resize when the window changes.
func WithSizeSource(fn func() Size) Option {
	return func(o *options) {
		o.sizeSource = fn
	}
}

// WithWindow is WithSizeSource for a gpucontext.WindowProvider. The
// provider reports logical points, so the size is scaled by ScaleFactor
// and rounded to physical pixels. A scale factor that is not positive
// counts as 1, and negative sizes as zero.
func WithWindow(w gpucontext.WindowProvider) Option {
	return WithSizeSource(func() Size {
		width, height := w.Size()
		scale := w.ScaleFactor()
		if scale <= 0 {
			scale = 1
		}
		return Size{Width: physical(width, scale), Height: physical(height, scale)}
	})
}

func physical(points int, scale float64) uint32 {
	if points <= 0 {
		return 0
	}
	return uint32(math.Round(float64(points) * scale))
}

// WithLabel sets the debug label used for the device and command encoders.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
