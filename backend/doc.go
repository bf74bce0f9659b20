// Package backend selects a GPU backend for present by name.
//
// # Backend Registration
//
// Importing the package registers three backends, all built on
// backend/native:
//
//	vulkan    real GPUs through the Vulkan HAL
//	software  CPU rasterizer; presents to X11/Win32 windows or to memory
//	noop      accepts every call and draws nothing
//
// Other packages may Register additional factories.
//
// # Backend Selection
//
// Use Default to open the best backend that works on this machine, or Open
// to request one by name:
//
//	// Vulkan if a loader is installed, software otherwise
//	inst, err := backend.Default()
//
//	// Or request a specific backend
//	inst, err := backend.Open(backend.Software)
//
// # Usage with Renderer
//
//	inst, err := backend.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Release()
//
//	surface, err := inst.CreateSurface(display, window)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := present.New(inst, size, surface, backend.Options(inst)...)
package backend
