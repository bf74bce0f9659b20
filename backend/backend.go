package backend

import (
	"errors"

	"github.com/gogpu/present"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend could
	// be opened, or the requested one is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Names of the backends registered by this package.
const (
	// Vulkan drives real GPUs through the pure Go Vulkan HAL.
	Vulkan = "vulkan"

	// Software rasterizes on the CPU. It presents to X11 and Win32
	// windows when given their handles and renders into memory otherwise.
	Software = "software"

	// Noop accepts every call and draws nothing.
	Noop = "noop"
)

// Instance is a present.Instance that can also create window surfaces.
//
// The handles are platform specific: on X11 display is the Display*
// and window the Window id; on Windows display is zero and window the
// HWND. Zero handles yield an offscreen surface where the backend
// supports it.
type Instance interface {
	present.Instance

	// Name returns the backend name the instance was opened with.
	Name() string

	// CreateSurface creates a surface for a native window.
	CreateSurface(display, window uintptr) (present.Surface, error)
}
