// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

// PredictionService sends online prediction requests to an endpoint.
type PredictionService interface {
	// Predict sends instances to the endpoint identified by its resource name and returns the raw predictions.
	Predict(ctx context.Context, endpoint string, instances []*structpb.Value) ([]*structpb.Value, error)
}
