// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-a2a/vertexops/pkg/logging"
	"github.com/go-a2a/vertexops/types"
)

// RegisterRequest describes a model to register.
type RegisterRequest struct {
	DisplayName string
	// ArtifactURI is the gs:// prefix holding the model weights.
	ArtifactURI string
	// ContainerImageURI is the serving container image.
	ContainerImageURI string
	Description       string
}

func (r RegisterRequest) validate() error {
	if err := types.RequireNonEmpty("display_name", r.DisplayName); err != nil {
		return err
	}
	if err := types.RequireNonEmpty("artifact_uri", r.ArtifactURI); err != nil {
		return err
	}
	if !strings.HasPrefix(r.ArtifactURI, "gs://") {
		return &types.InvalidArgumentError{
			Field:   "artifact_uri",
			Message: fmt.Sprintf("%q is not a gs:// URI", r.ArtifactURI),
		}
	}
	return types.RequireNonEmpty("container_image_uri", r.ContainerImageURI)
}

// Registry registers and manages models through a [types.ModelService].
type Registry struct {
	models types.ModelService
	logger *slog.Logger
}

// NewRegistry creates a new [Registry].
func NewRegistry(models types.ModelService, opts ...Option) *Registry {
	r := &Registry{
		models: models,
	}
	for _, opt := range opts {
		opt.apply(r)
	}
	return r
}

func (r *Registry) log(ctx context.Context) *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// Register uploads req to the model registry and waits for the registration to finish.
func (r *Registry) Register(ctx context.Context, req RegisterRequest) (*types.Model, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	r.log(ctx).InfoContext(ctx, "registering model",
		slog.String("display_name", req.DisplayName),
		slog.String("artifact_uri", req.ArtifactURI),
		slog.String("container_image_uri", req.ContainerImageURI),
	)
	m, err := r.models.UploadModel(ctx, &types.ModelUpload{
		DisplayName:       req.DisplayName,
		ArtifactURI:       req.ArtifactURI,
		ContainerImageURI: req.ContainerImageURI,
		Description:       req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("register model %q: %w", req.DisplayName, err)
	}
	r.log(ctx).InfoContext(ctx, "registered model",
		slog.String("resource_name", m.Name),
		slog.String("model_id", m.ID),
	)

	return m, nil
}

// Get returns the model with the given ID or resource name.
func (r *Registry) Get(ctx context.Context, id string) (*types.Model, error) {
	if err := types.RequireNonEmpty("model_id", id); err != nil {
		return nil, err
	}
	m, err := r.models.GetModel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get model %s: %w", id, err)
	}
	return m, nil
}

// List returns every registered model.
func (r *Registry) List(ctx context.Context) ([]*types.Model, error) {
	models, err := r.models.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// Delete deletes the model with the given ID or resource name.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := types.RequireNonEmpty("model_id", id); err != nil {
		return err
	}
	if err := r.models.DeleteModel(ctx, id); err != nil {
		return fmt.Errorf("delete model %s: %w", id, err)
	}
	r.log(ctx).InfoContext(ctx, "deleted model", slog.String("model_id", id))
	return nil
}
