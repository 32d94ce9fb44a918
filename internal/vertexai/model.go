// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"context"
	"errors"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/iterator"

	"github.com/go-a2a/vertexops/types"
)

// ModelService implements [types.ModelService] on the Vertex AI model registry.
type ModelService struct {
	client *aiplatform.ModelClient
	names  ResourceNames
	logger *slog.Logger
}

var _ types.ModelService = (*ModelService)(nil)

// UploadModel implements [types.ModelService].
func (s *ModelService) UploadModel(ctx context.Context, upload *types.ModelUpload) (*types.Model, error) {
	op, err := s.client.UploadModel(ctx, &aiplatformpb.UploadModelRequest{
		Parent: s.names.Parent(),
		Model: &aiplatformpb.Model{
			DisplayName: upload.DisplayName,
			Description: upload.Description,
			ArtifactUri: upload.ArtifactURI,
			ContainerSpec: &aiplatformpb.ModelContainerSpec{
				ImageUri: upload.ContainerImageURI,
			},
		},
	})
	if err != nil {
		return nil, mapError("model.upload", "location", s.names.Parent(), err)
	}

	s.logger.DebugContext(ctx, "waiting for model upload", slog.String("operation", op.Name()))
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, mapError("model.upload", "location", s.names.Parent(), err)
	}

	return s.GetModel(ctx, resp.GetModel())
}

// GetModel implements [types.ModelService].
func (s *ModelService) GetModel(ctx context.Context, name string) (*types.Model, error) {
	pb, err := s.client.GetModel(ctx, &aiplatformpb.GetModelRequest{
		Name: s.names.Model(name),
	})
	if err != nil {
		return nil, mapError("model.get", "model", name, err)
	}
	return modelFromProto(pb), nil
}

// ListModels implements [types.ModelService].
func (s *ModelService) ListModels(ctx context.Context) ([]*types.Model, error) {
	req := &aiplatformpb.ListModelsRequest{
		Parent:  s.names.Parent(),
		OrderBy: "create_time",
	}

	var models []*types.Model
	it := s.client.ListModels(ctx, req)
	for {
		pb, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, mapError("model.list", "location", req.Parent, err)
		}
		models = append(models, modelFromProto(pb))
	}

	return models, nil
}

// DeleteModel implements [types.ModelService].
func (s *ModelService) DeleteModel(ctx context.Context, name string) error {
	op, err := s.client.DeleteModel(ctx, &aiplatformpb.DeleteModelRequest{
		Name: s.names.Model(name),
	})
	if err != nil {
		return mapError("model.delete", "model", name, err)
	}

	s.logger.DebugContext(ctx, "waiting for model deletion", slog.String("operation", op.Name()))
	if err := op.Wait(ctx); err != nil {
		return mapError("model.delete", "model", name, err)
	}
	return nil
}
