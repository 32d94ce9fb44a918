// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-a2a/vertexops/types"
)

// mapError converts an API error into the error taxonomy of package types.
// kind and name identify the resource the call addressed.
func mapError(op, kind, name string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return &types.NotFoundError{Kind: kind, Name: name}
	}
	return &types.RemoteError{Op: op, Err: err}
}
