// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gx"
	"github.com/gogpu/gx/backend/native"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first that opens wins).
	// Hardware first, headless is the fallback.
	backendPriority = []string{BackendGPU, BackendHeadless}
)

// Register registers a backend factory with the given name.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open opens the named backend.
func Open(name string, opts ...native.Option) (*native.Adapter, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	a, err := factory(opts...)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return a, nil
}

// Default opens the best available backend based on priority, then any
// other registered backend. Backends that fail to open are skipped.
func Default(opts ...native.Option) (*native.Adapter, error) {
	names := Available()
	slices.SortStableFunc(names, func(a, b string) int {
		return priority(a) - priority(b)
	})

	for _, name := range names {
		a, err := Open(name, opts...)
		if err == nil {
			gx.Logger().Debug("backend: selected", "name", name)
			return a, nil
		}
		gx.Logger().Debug("backend: skipped", "name", name, "err", err)
	}
	return nil, ErrBackendNotAvailable
}

func priority(name string) int {
	if i := slices.Index(backendPriority, name); i >= 0 {
		return i
	}
	return len(backendPriority)
}
