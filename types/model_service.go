// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"
)

// Model is a model registered with the serving platform.
type Model struct {
	// Name is the full resource name, projects/{p}/locations/{l}/models/{id}.
	Name              string    `json:"name"`
	ID                string    `json:"id"`
	DisplayName       string    `json:"display_name"`
	Description       string    `json:"description,omitempty"`
	ArtifactURI       string    `json:"artifact_uri,omitempty"`
	ContainerImageURI string    `json:"container_image_uri,omitempty"`
	CreateTime        time.Time `json:"create_time,omitzero"`
}

// ModelUpload describes a model to register.
type ModelUpload struct {
	DisplayName string
	// ArtifactURI is the gs:// prefix holding the model weights.
	ArtifactURI string
	// ContainerImageURI is the serving container image.
	ContainerImageURI string
	Description       string
}

// ModelService manages registered models.
type ModelService interface {
	// UploadModel registers a model and waits for the operation to finish.
	UploadModel(ctx context.Context, upload *ModelUpload) (*Model, error)

	// GetModel returns the model with the given resource name or ID.
	GetModel(ctx context.Context, name string) (*Model, error)

	// ListModels lists every registered model.
	ListModels(ctx context.Context) ([]*Model, error)

	// DeleteModel deletes the model. The remote system refuses while the model is deployed.
	DeleteModel(ctx context.Context, name string) error
}
