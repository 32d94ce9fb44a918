// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigurationError
		want string
	}{
		{
			name: "missing",
			err:  &ConfigurationError{Key: "PROJECT_ID"},
			want: "configuration error: PROJECT_ID is not set",
		},
		{
			name: "with message",
			err:  &ConfigurationError{Key: "STORE_BACKEND", Message: `unknown backend "ftp"`},
			want: `configuration error for STORE_BACKEND: unknown backend "ftp"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ConfigurationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "endpoint", Name: "e1"}

	expected := "endpoint not found: e1"
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %v, want %v", err.Error(), expected)
	}

	wrapped := fmt.Errorf("deploy: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false, want true")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("IsNotFound(plain) = true, want false")
	}
}

func TestRemoteError(t *testing.T) {
	cause := errors.New("endpoint has deployed models")
	err := &RemoteError{Op: "endpoint.delete", Err: cause}

	expected := "endpoint.delete: endpoint has deployed models"
	if err.Error() != expected {
		t.Errorf("RemoteError.Error() = %v, want %v", err.Error(), expected)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(RemoteError, cause) = false, want true")
	}
}

func TestResponseShapeError(t *testing.T) {
	short := &ResponseShapeError{Raw: `{"foo":1}`}
	if got, want := short.Error(), `unexpected prediction shape: {"foo":1}`; got != want {
		t.Errorf("ResponseShapeError.Error() = %v, want %v", got, want)
	}

	long := &ResponseShapeError{Raw: strings.Repeat("x", 300)}
	got := long.Error()
	if !strings.HasSuffix(got, "...") {
		t.Errorf("ResponseShapeError.Error() = %v, want truncated suffix", got)
	}
	if len(got) != len("unexpected prediction shape: ")+256+3 {
		t.Errorf("len(ResponseShapeError.Error()) = %d", len(got))
	}
}

func TestMissingError(t *testing.T) {
	if err := MissingError(); err != nil {
		t.Fatalf("MissingError() = %v, want nil", err)
	}

	err := MissingError("PROJECT_ID", "BUCKET_NAME")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("MissingError() = %T, want *ConfigurationError in chain", err)
	}
	for _, key := range []string{"PROJECT_ID", "BUCKET_NAME"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("MissingError().Error() = %q, want it to mention %s", err.Error(), key)
		}
	}
}

func TestRequireNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "set", value: "m1", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "blank", value: "  \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireNonEmpty("model_id", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireNonEmpty() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var argErr *InvalidArgumentError
			if !errors.As(err, &argErr) || argErr.Field != "model_id" {
				t.Errorf("RequireNonEmpty() = %#v, want InvalidArgumentError for model_id", err)
			}
		})
	}
}
