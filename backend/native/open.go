// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends" // register platform backends
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gx"
)

// OpenHeadless opens a device on the noop HAL backend. Commands are
// accepted and discarded; buffer contents are kept in memory. Intended
// for tests and for exercising gx without a GPU.
func OpenHeadless(opts ...Option) (*Adapter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return open(noop.API{}, o)
}

// Open opens a device on a real GPU. The backend chosen by WithBackend is
// used when set, otherwise the most capable registered backend. Discrete
// GPUs are preferred over integrated ones.
func Open(opts ...Option) (*Adapter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		backend hal.Backend
		err     error
	)
	if o.backend != gputypes.BackendEmpty {
		var ok bool
		if backend, ok = hal.GetBackend(o.backend); !ok {
			backend, err = hal.CreateBackend(o.backend)
		}
	} else {
		backend, err = hal.SelectBestBackend()
	}
	if err != nil {
		return nil, fmt.Errorf("native: select backend: %w", err)
	}
	return open(backend, o)
}

func open(backend hal.Backend, o options) (*Adapter, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	selected := selectAdapter(adapters)

	openDev, err := selected.Adapter.Open(0, o.limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device on %q: %w", selected.Info.Name, err)
	}

	a := newAdapter(openDev.Device, openDev.Queue, o)
	a.release = func() {
		if err := openDev.Device.WaitIdle(); err != nil {
			gx.Logger().Warn("native: wait idle on close", "err", err)
		}
		openDev.Device.Destroy()
		instance.Destroy()
	}
	gx.Logger().Info("native: device opened",
		"adapter", selected.Info.Name,
		"backend", selected.Info.Backend.String())
	return a, nil
}

// selectAdapter prefers a discrete GPU, then an integrated one, then the
// first adapter listed.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// FromProvider wraps the device of a host application. The provider must
// also implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue, as gogpu's context does. The host keeps ownership of the
// device.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Adapter, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNotHALProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNotHALProvider, hp.HalQueue())
	}
	return New(device, queue, opts...), nil
}
