// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that every workflow
// (artifact sync, endpoint lifecycle, inference) logs through the same configured handler.
//
// # Basic Usage
//
// Building a logger from configuration:
//
//	logger, err := logging.New(os.Stderr, "info", "json")
//	if err != nil {
//		return err
//	}
//	ctx := logging.NewContext(ctx, logger)
//
// Retrieving the logger from context:
//
//	logger := logging.FromContext(ctx)
//	logger.InfoContext(ctx, "uploaded blob", slog.String("bucket", bucket), slog.String("key", key))
//
// # Default Behavior
//
// When no logger is found in the context, FromContext returns a default JSON logger
// that writes to stderr with INFO level logging.
//
// # Thread Safety
//
// The logging package is safe for concurrent use.
package logging
