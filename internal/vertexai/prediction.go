// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"context"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/types"
)

// PredictionService implements [types.PredictionService] on the Vertex AI prediction API.
type PredictionService struct {
	client *aiplatform.PredictionClient
	names  ResourceNames
	logger *slog.Logger
}

var _ types.PredictionService = (*PredictionService)(nil)

// Predict implements [types.PredictionService].
func (s *PredictionService) Predict(ctx context.Context, endpoint string, instances []*structpb.Value) ([]*structpb.Value, error) {
	resp, err := s.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  s.names.Endpoint(endpoint),
		Instances: instances,
	})
	if err != nil {
		return nil, mapError("endpoint.predict", "endpoint", endpoint, err)
	}

	s.logger.DebugContext(ctx, "prediction received",
		slog.String("endpoint", endpoint),
		slog.String("deployed_model_id", resp.GetDeployedModelId()),
		slog.Int("predictions", len(resp.GetPredictions())),
	)

	return resp.GetPredictions(), nil
}
