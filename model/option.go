// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
)

// Option is a function that modifies the [Registry].
type Option interface {
	apply(r *Registry)
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(r *Registry) {
	r.logger = o.Logger
}

// WithLogger sets the logger for the [Registry].
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}
