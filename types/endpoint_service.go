// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Endpoint is a provisioned serving target.
type Endpoint struct {
	// Name is the full resource name, projects/{p}/locations/{l}/endpoints/{id}.
	Name string `json:"name"`
	// ID is the last segment of Name.
	ID string `json:"id"`
	// DisplayName is the human-chosen label. It is not unique.
	DisplayName    string          `json:"display_name"`
	DeployedModels []DeployedModel `json:"deployed_models,omitempty"`
	// TrafficSplit maps deployed model IDs to their percentage of traffic.
	TrafficSplit map[string]int32 `json:"traffic_split,omitempty"`
	CreateTime   time.Time        `json:"create_time,omitzero"`
}

// TrafficSplitWithout returns the traffic split left after deployedModelID is undeployed.
//
// The share of the removed model is spread over the remaining models in proportion to their
// current share, so the result sums to 100. The result is nil when no model remains, or when
// the removed model serves no traffic and the endpoint has no split. It is an
// [*InvalidArgumentError] to remove the only model serving traffic while others remain.
func (e *Endpoint) TrafficSplitWithout(deployedModelID string) (map[string]int32, error) {
	var remaining []string
	for _, dm := range e.DeployedModels {
		if dm.ID != deployedModelID {
			remaining = append(remaining, dm.ID)
		}
	}
	if len(remaining) == 0 {
		return nil, nil
	}

	var left int32
	for _, id := range remaining {
		left += e.TrafficSplit[id]
	}

	if e.TrafficSplit[deployedModelID] == 0 {
		if left == 0 {
			return nil, nil
		}
		split := make(map[string]int32, len(remaining))
		for _, id := range remaining {
			if v := e.TrafficSplit[id]; v > 0 {
				split[id] = v
			}
		}
		return split, nil
	}
	if left == 0 {
		msg := fmt.Sprintf("deployed model %s serves all traffic of endpoint %s; undeploy the other %d models first",
			deployedModelID, e.ID, len(remaining))
		return nil, &InvalidArgumentError{Field: "deployed_model_id", Message: msg}
	}

	split := make(map[string]int32, len(remaining))
	var total int32
	for _, id := range remaining {
		v := e.TrafficSplit[id]
		if v == 0 {
			continue
		}
		v = int32(math.Round(float64(v) * 100 / float64(left)))
		split[id] = v
		total += v
	}
	// rounding drift goes to the models in deployment order
	for i := 0; total != 100; i = (i + 1) % len(remaining) {
		id := remaining[i]
		v, ok := split[id]
		switch {
		case !ok:
		case total < 100:
			split[id] = v + 1
			total++
		case v > 0:
			split[id] = v - 1
			total--
		}
	}
	return split, nil
}

// DeployedModel binds a registered model to an endpoint.
type DeployedModel struct {
	// ID is the deployment-scoped identifier, distinct from the model's own ID.
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	// Model is the resource name of the deployed model.
	Model string `json:"model"`
}

// EndpointOrder is the ordering applied to endpoint listings.
type EndpointOrder string

const (
	// EndpointOrderCreateTime orders endpoints oldest first.
	EndpointOrderCreateTime EndpointOrder = "create_time"

	// EndpointOrderDisplayName orders endpoints by display name.
	EndpointOrderDisplayName EndpointOrder = "display_name"
)

// EndpointFilter narrows an endpoint listing.
type EndpointFilter struct {
	// DisplayName, when set, selects endpoints whose display name matches exactly.
	DisplayName string
	OrderBy     EndpointOrder
}

// DeploySpec describes how a model is bound to an endpoint.
type DeploySpec struct {
	// Model is the resource name of the registered model.
	Model            string
	DisplayName      string
	MachineType      string
	AcceleratorType  string
	AcceleratorCount int32
	MinReplicaCount  int32
	MaxReplicaCount  int32
}

// EndpointService manages serving endpoints and their deployed models.
type EndpointService interface {
	// ListEndpoints lists endpoints matching filter.
	ListEndpoints(ctx context.Context, filter EndpointFilter) ([]*Endpoint, error)

	// GetEndpoint returns the endpoint with the given resource name or ID, including its deployed models.
	GetEndpoint(ctx context.Context, name string) (*Endpoint, error)

	// CreateEndpoint creates an empty endpoint and waits for it to become available.
	CreateEndpoint(ctx context.Context, displayName string) (*Endpoint, error)

	// DeleteEndpoint deletes the endpoint. The remote system may refuse while models are deployed.
	DeleteEndpoint(ctx context.Context, name string) error

	// DeployModel deploys spec to the endpoint and returns the deployed model ID.
	DeployModel(ctx context.Context, endpoint string, spec *DeploySpec) (string, error)

	// UndeployModel removes the deployed model from the endpoint.
	UndeployModel(ctx context.Context, endpoint, deployedModelID string) error
}
