// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError is returned when a required configuration value is missing or invalid.
// It is fatal: the CLI reports it before any workflow runs.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("configuration error: %s is not set", e.Key)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Key, e.Message)
}

// NotFoundError is returned when a bucket, blob, endpoint, deployment or model does not exist.
type NotFoundError struct {
	// Kind is the resource kind, e.g. "bucket", "endpoint", "model".
	Kind string
	// Name is the identifier the lookup used (display name, resource name or key).
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// InvalidArgumentError is returned when a required parameter is missing or malformed.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Message)
}

// RemoteError wraps a failure from the remote system (transport or API).
type RemoteError struct {
	// Op names the remote operation, e.g. "endpoint.delete".
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ResponseShapeError is returned when a prediction payload does not match the chat completion schema.
type ResponseShapeError struct {
	// Raw is the JSON rendering of the predictions.
	Raw string
}

func (e *ResponseShapeError) Error() string {
	raw := e.Raw
	if len(raw) > 256 {
		raw = raw[:256] + "..."
	}
	return fmt.Sprintf("unexpected prediction shape: %s", raw)
}

// IsNotFound reports whether any error in err's chain is a [*NotFoundError].
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// MissingError joins one [*ConfigurationError] per missing key, or returns nil when keys is empty.
func MissingError(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, &ConfigurationError{Key: k})
	}
	return errors.Join(errs...)
}

// RequireNonEmpty returns an [*InvalidArgumentError] for field when value is blank.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InvalidArgumentError{Field: field, Message: "must not be empty"}
	}
	return nil
}
