// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types provides the collaborator interfaces and the error taxonomy shared by the
// vertexops workflows.
//
// The workflows in [github.com/go-a2a/vertexops/artifact], [github.com/go-a2a/vertexops/endpoint],
// [github.com/go-a2a/vertexops/model] and [github.com/go-a2a/vertexops/inference] never talk to a
// cloud SDK directly. They depend on the small interfaces defined here:
//
//   - BlobStore: buckets and blobs (Cloud Storage, S3-compatible stores, in-memory)
//   - EndpointService: serving endpoints and the models deployed to them
//   - ModelService: registered models
//   - PredictionService: online prediction against an endpoint
//
// Production bindings live in internal/vertexai and in the artifact package. In-memory
// implementations are used by tests and by the CLI's --dry-run mode.
//
// # Errors
//
// Every failure surfaced by a workflow is one of the error types in this package, so callers
// can branch with [errors.As]:
//
//	var nf *types.NotFoundError
//	if errors.As(err, &nf) {
//		// nf.Kind, nf.Name
//	}
//
// [RemoteError] wraps the underlying SDK error unchanged; nothing in this module retries.
package types
