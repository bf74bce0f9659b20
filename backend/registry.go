package backend

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/present"
)

// Factory opens a new backend instance.
type Factory func() (Instance, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for Default (first that opens wins). Noop never
	// takes part: it draws nothing.
	backendPriority = []string{Vulkan, Software}
)

// Register makes a backend available under name, replacing any factory
// already registered there. Backend packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes name from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := backends[name]
	return f, ok
}

// Open opens the named backend.
func Open(name string) (Instance, error) {
	factory, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	inst, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	return inst, nil
}

// Default opens the best available backend based on priority.
// Priority order: vulkan > software.
// A backend that fails to open (no Vulkan loader, for example) is logged
// and skipped.
func Default() (Instance, error) {
	for _, name := range backendPriority {
		if !IsRegistered(name) {
			continue
		}
		inst, err := Open(name)
		if err == nil {
			return inst, nil
		}
		present.Logger().Debug("backend: skipping unavailable backend", "name", name, "err", err)
	}
	return nil, ErrBackendNotAvailable
}

// Options returns the selection options inst needs. The software backend
// exposes only a fallback adapter, which is never picked unless forced.
func Options(inst Instance) []present.Option {
	if inst.Name() == Software {
		return []present.Option{present.WithForceFallbackAdapter(true)}
	}
	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() Instance {
	inst, err := Default()
	if err != nil {
		panic(err)
	}
	return inst
}
