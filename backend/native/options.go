// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "github.com/gogpu/gputypes"

// Option configures an Adapter.
type Option func(*options)

type options struct {
	labelPrefix string
	backend     gputypes.Backend
	limits      gputypes.Limits
}

func defaultOptions() options {
	return options{
		backend: gputypes.BackendEmpty,
		limits:  gputypes.DefaultLimits(),
	}
}

// WithLabelPrefix prefixes every GPU debug label, e.g. "editor/".
func WithLabelPrefix(prefix string) Option {
	return func(o *options) {
		o.labelPrefix = prefix
	}
}

// WithBackend selects the HAL backend used by Open. The default picks the
// most capable registered backend.
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLimits sets the device limits requested by Open and OpenHeadless.
func WithLimits(l gputypes.Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}
