// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/types"
)

// EchoService is a [types.PredictionService] that answers every chat request with the
// content of its last message, prefixed by "echo: ".
type EchoService struct{}

var _ types.PredictionService = EchoService{}

// Predict implements [types.PredictionService].
func (EchoService) Predict(ctx context.Context, endpoint string, instances []*structpb.Value) ([]*structpb.Value, error) {
	out := make([]*structpb.Value, 0, len(instances))
	for i, inst := range instances {
		req, err := decodeInstance(inst)
		if err != nil {
			return nil, &types.RemoteError{Op: "endpoint.predict", Err: fmt.Errorf("instance %d: %w", i, err)}
		}
		if req.RequestFormat != RequestFormat || len(req.Messages) == 0 {
			return nil, &types.RemoteError{Op: "endpoint.predict", Err: fmt.Errorf("instance %d: not a chat request", i)}
		}

		pred, err := NewChoicePrediction("echo: " + req.Messages[len(req.Messages)-1].Content)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, nil
}
