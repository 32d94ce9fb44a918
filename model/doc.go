// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model registers model artifacts with the serving platform and manages the
// registered models.
//
// A [Registry] wraps a [types.ModelService]. Registration points the platform at a gs://
// prefix holding the model weights and at the serving container image:
//
//	registry := model.NewRegistry(client.Models(), model.WithLogger(logger))
//	m, err := registry.Register(ctx, model.RegisterRequest{
//		DisplayName:       "llama-3-1-8b-instruct",
//		ArtifactURI:       "gs://my-bucket/llama-3-1-8b-instruct",
//		ContainerImageURI: "us-docker.pkg.dev/vertex-ai/vertex-vision-model-garden-dockers/pytorch-vllm-serve:latest",
//	})
//
// The returned model ID is what [endpoint.Lifecycle.DeployRegisteredModel] takes.
//
// Model IDs may be given either as the short numeric ID or as the full resource name.
package model
