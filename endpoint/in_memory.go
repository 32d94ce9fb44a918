// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-a2a/vertexops/internal/vertexai"
	"github.com/go-a2a/vertexops/types"
)

// InMemoryService represents an in-memory implementation of [types.EndpointService].
//
// Like the remote service it refuses to delete an endpoint that still has deployed models.
// Creation times advance by one second per endpoint so ordering is deterministic.
type InMemoryService struct {
	mu        sync.Mutex
	parent    string
	endpoints []*types.Endpoint
	nextID    int64
	clock     time.Time
}

var _ types.EndpointService = (*InMemoryService)(nil)

// NewInMemoryService creates a new instance of [InMemoryService] whose resource names live under parent,
// e.g. "projects/p/locations/us-central1".
func NewInMemoryService(parent string) *InMemoryService {
	return &InMemoryService{
		parent: parent,
		nextID: 1000,
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *InMemoryService) find(name string) (int, bool) {
	i := slices.IndexFunc(s.endpoints, func(e *types.Endpoint) bool {
		return e.Name == name || e.ID == name
	})
	return i, i >= 0
}

func cloneEndpoint(ep *types.Endpoint) *types.Endpoint {
	out := *ep
	out.DeployedModels = nil
	out.TrafficSplit = maps.Clone(ep.TrafficSplit)
	if err := deepcopy.Copy(&out.DeployedModels, ep.DeployedModels); err != nil {
		panic(fmt.Sprintf("endpoint: copy deployed models: %v", err))
	}
	return &out
}

// ListEndpoints implements [types.EndpointService].
func (s *InMemoryService) ListEndpoints(ctx context.Context, filter types.EndpointFilter) ([]*types.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*types.Endpoint
	for _, ep := range s.endpoints {
		if filter.DisplayName != "" && ep.DisplayName != filter.DisplayName {
			continue
		}
		out = append(out, cloneEndpoint(ep))
	}

	switch filter.OrderBy {
	case types.EndpointOrderCreateTime:
		slices.SortStableFunc(out, func(a, b *types.Endpoint) int {
			return a.CreateTime.Compare(b.CreateTime)
		})
	case types.EndpointOrderDisplayName:
		slices.SortStableFunc(out, func(a, b *types.Endpoint) int {
			return strings.Compare(a.DisplayName, b.DisplayName)
		})
	}
	return out, nil
}

// GetEndpoint implements [types.EndpointService].
func (s *InMemoryService) GetEndpoint(ctx context.Context, name string) (*types.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(name)
	if !ok {
		return nil, &types.NotFoundError{Kind: "endpoint", Name: name}
	}
	return cloneEndpoint(s.endpoints[i]), nil
}

// CreateEndpoint implements [types.EndpointService].
func (s *InMemoryService) CreateEndpoint(ctx context.Context, displayName string) (*types.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.clock = s.clock.Add(time.Second)
	id := strconv.FormatInt(s.nextID, 10)
	ep := &types.Endpoint{
		Name:        s.parent + "/endpoints/" + id,
		ID:          id,
		DisplayName: displayName,
		CreateTime:  s.clock,
	}
	s.endpoints = append(s.endpoints, ep)

	return cloneEndpoint(ep), nil
}

// DeleteEndpoint implements [types.EndpointService].
func (s *InMemoryService) DeleteEndpoint(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(name)
	if !ok {
		return &types.NotFoundError{Kind: "endpoint", Name: name}
	}
	if n := len(s.endpoints[i].DeployedModels); n > 0 {
		return &types.RemoteError{
			Op:  "endpoint.delete",
			Err: status.Errorf(codes.FailedPrecondition, "endpoint %s has %d deployed models", s.endpoints[i].ID, n),
		}
	}
	s.endpoints = slices.Delete(s.endpoints, i, i+1)
	return nil
}

// DeployModel implements [types.EndpointService].
func (s *InMemoryService) DeployModel(ctx context.Context, endpoint string, spec *types.DeploySpec) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(endpoint)
	if !ok {
		return "", &types.NotFoundError{Kind: "endpoint", Name: endpoint}
	}
	if spec.Model == "" {
		return "", &types.RemoteError{Op: "endpoint.deploy", Err: status.Error(codes.InvalidArgument, "model is required")}
	}

	if _, err := vertexai.AcceleratorType(spec.AcceleratorType); err != nil {
		return "", &types.RemoteError{Op: "endpoint.deploy", Err: status.Error(codes.InvalidArgument, err.Error())}
	}

	s.nextID++
	id := strconv.FormatInt(s.nextID, 10)
	ep := s.endpoints[i]
	ep.DeployedModels = append(ep.DeployedModels, types.DeployedModel{
		ID:          id,
		DisplayName: spec.DisplayName,
		Model:       spec.Model,
	})
	ep.TrafficSplit = map[string]int32{id: 100}
	return id, nil
}

// UndeployModel implements [types.EndpointService].
func (s *InMemoryService) UndeployModel(ctx context.Context, endpoint, deployedModelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(endpoint)
	if !ok {
		return &types.NotFoundError{Kind: "endpoint", Name: endpoint}
	}
	ep := s.endpoints[i]
	j := slices.IndexFunc(ep.DeployedModels, func(dm types.DeployedModel) bool {
		return dm.ID == deployedModelID
	})
	if j < 0 {
		return &types.NotFoundError{Kind: "deployed model", Name: deployedModelID}
	}
	split, err := ep.TrafficSplitWithout(deployedModelID)
	if err != nil {
		return &types.RemoteError{Op: "endpoint.undeploy", Err: status.Error(codes.FailedPrecondition, err.Error())}
	}
	ep.DeployedModels = slices.Delete(ep.DeployedModels, j, j+1)
	ep.TrafficSplit = split
	return nil
}

// SetTrafficSplit replaces the traffic split of endpoint.
//
// Every key must name a deployed model and the shares must sum to 100.
func (s *InMemoryService) SetTrafficSplit(endpoint string, split map[string]int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.find(endpoint)
	if !ok {
		return &types.NotFoundError{Kind: "endpoint", Name: endpoint}
	}
	ep := s.endpoints[i]
	var total int32
	for id, v := range split {
		if !slices.ContainsFunc(ep.DeployedModels, func(dm types.DeployedModel) bool { return dm.ID == id }) {
			return &types.InvalidArgumentError{Field: "traffic_split", Message: "unknown deployed model " + id}
		}
		total += v
	}
	if total != 100 {
		return &types.InvalidArgumentError{Field: "traffic_split", Message: fmt.Sprintf("shares sum to %d, want 100", total)}
	}
	ep.TrafficSplit = maps.Clone(split)
	return nil
}
