// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package vertexops operates LLM deployments on Google Cloud Vertex AI: it syncs model
// artifacts with object storage, manages endpoint lifecycles and sends chat completion
// requests to deployed models.
package vertexops

// Version is the version of vertexops.
var Version = "v0.0.0"
