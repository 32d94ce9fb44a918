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

// EndpointService implements [types.EndpointService] on the Vertex AI endpoint API.
type EndpointService struct {
	client *aiplatform.EndpointClient
	names  ResourceNames
	logger *slog.Logger
}

var _ types.EndpointService = (*EndpointService)(nil)

// ListEndpoints implements [types.EndpointService].
func (s *EndpointService) ListEndpoints(ctx context.Context, filter types.EndpointFilter) ([]*types.Endpoint, error) {
	req := &aiplatformpb.ListEndpointsRequest{
		Parent:  s.names.Parent(),
		Filter:  DisplayNameFilter(filter.DisplayName),
		OrderBy: OrderBy(filter.OrderBy),
	}
	s.logger.DebugContext(ctx, "listing endpoints",
		slog.String("filter", req.Filter),
		slog.String("order_by", req.OrderBy),
	)

	var endpoints []*types.Endpoint
	it := s.client.ListEndpoints(ctx, req)
	for {
		pb, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, mapError("endpoint.list", "location", req.Parent, err)
		}
		endpoints = append(endpoints, endpointFromProto(pb))
	}

	return endpoints, nil
}

// GetEndpoint implements [types.EndpointService].
func (s *EndpointService) GetEndpoint(ctx context.Context, name string) (*types.Endpoint, error) {
	pb, err := s.client.GetEndpoint(ctx, &aiplatformpb.GetEndpointRequest{
		Name: s.names.Endpoint(name),
	})
	if err != nil {
		return nil, mapError("endpoint.get", "endpoint", name, err)
	}
	return endpointFromProto(pb), nil
}

// CreateEndpoint implements [types.EndpointService].
func (s *EndpointService) CreateEndpoint(ctx context.Context, displayName string) (*types.Endpoint, error) {
	op, err := s.client.CreateEndpoint(ctx, &aiplatformpb.CreateEndpointRequest{
		Parent: s.names.Parent(),
		Endpoint: &aiplatformpb.Endpoint{
			DisplayName: displayName,
		},
	})
	if err != nil {
		return nil, mapError("endpoint.create", "location", s.names.Parent(), err)
	}

	s.logger.DebugContext(ctx, "waiting for endpoint creation", slog.String("operation", op.Name()))
	pb, err := op.Wait(ctx)
	if err != nil {
		return nil, mapError("endpoint.create", "location", s.names.Parent(), err)
	}

	return endpointFromProto(pb), nil
}

// DeleteEndpoint implements [types.EndpointService].
func (s *EndpointService) DeleteEndpoint(ctx context.Context, name string) error {
	op, err := s.client.DeleteEndpoint(ctx, &aiplatformpb.DeleteEndpointRequest{
		Name: s.names.Endpoint(name),
	})
	if err != nil {
		return mapError("endpoint.delete", "endpoint", name, err)
	}

	s.logger.DebugContext(ctx, "waiting for endpoint deletion", slog.String("operation", op.Name()))
	if err := op.Wait(ctx); err != nil {
		return mapError("endpoint.delete", "endpoint", name, err)
	}
	return nil
}

// DeployModel implements [types.EndpointService].
func (s *EndpointService) DeployModel(ctx context.Context, endpoint string, spec *types.DeploySpec) (string, error) {
	deployed, err := deployedModelToProto(spec)
	if err != nil {
		return "", err
	}

	op, err := s.client.DeployModel(ctx, &aiplatformpb.DeployModelRequest{
		Endpoint:      s.names.Endpoint(endpoint),
		DeployedModel: deployed,
		TrafficSplit:  map[string]int32{"0": 100},
	})
	if err != nil {
		return "", mapError("endpoint.deploy", "endpoint", endpoint, err)
	}

	s.logger.DebugContext(ctx, "waiting for model deployment",
		slog.String("operation", op.Name()),
		slog.String("model", spec.Model),
	)
	resp, err := op.Wait(ctx)
	if err != nil {
		return "", mapError("endpoint.deploy", "endpoint", endpoint, err)
	}

	return resp.GetDeployedModel().GetId(), nil
}

// UndeployModel implements [types.EndpointService].
//
// The traffic of the undeployed model is handed to the remaining models in proportion to
// their current share, see [types.Endpoint.TrafficSplitWithout].
func (s *EndpointService) UndeployModel(ctx context.Context, endpoint, deployedModelID string) error {
	pb, err := s.client.GetEndpoint(ctx, &aiplatformpb.GetEndpointRequest{
		Name: s.names.Endpoint(endpoint),
	})
	if err != nil {
		return mapError("endpoint.get", "endpoint", endpoint, err)
	}
	split, err := endpointFromProto(pb).TrafficSplitWithout(deployedModelID)
	if err != nil {
		return err
	}

	op, err := s.client.UndeployModel(ctx, &aiplatformpb.UndeployModelRequest{
		Endpoint:        pb.GetName(),
		DeployedModelId: deployedModelID,
		TrafficSplit:    split,
	})
	if err != nil {
		return mapError("endpoint.undeploy", "deployed model", deployedModelID, err)
	}

	s.logger.DebugContext(ctx, "waiting for model undeployment",
		slog.String("operation", op.Name()),
		slog.Any("traffic_split", split),
	)
	if _, err := op.Wait(ctx); err != nil {
		return mapError("endpoint.undeploy", "deployed model", deployedModelID, err)
	}
	return nil
}
