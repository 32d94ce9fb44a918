// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-a2a/vertexops/internal/vertexai"
	"github.com/go-a2a/vertexops/pkg/logging"
	"github.com/go-a2a/vertexops/types"
)

// Result is the outcome of an undeploy or delete operation.
type Result int

const (
	// ResultUnknown is returned alongside an error; the outcome of the operation is not known.
	ResultUnknown Result = iota

	// ResultApplied means the change was made.
	ResultApplied

	// ResultEndpointNotFound means no endpoint carries the requested display name.
	ResultEndpointNotFound

	// ResultDeploymentNotFound means the endpoint exists but holds no matching deployed model.
	ResultDeploymentNotFound
)

// String implements [fmt.Stringer].
func (r Result) String() string {
	switch r {
	case ResultUnknown:
		return "unknown"
	case ResultApplied:
		return "applied"
	case ResultEndpointNotFound:
		return "endpoint_not_found"
	case ResultDeploymentNotFound:
		return "deployment_not_found"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DeployConfig holds the serving resources for a deployment.
type DeployConfig struct {
	// DeployedDisplayName names the deployed model. Empty means "<endpoint>-deploy".
	DeployedDisplayName string
	MachineType         string
	AcceleratorType     string
	AcceleratorCount    int32
	MinReplicaCount     int32
	MaxReplicaCount     int32
}

// DefaultDeployConfig returns a single-replica g2-standard-12 with one NVIDIA L4.
func DefaultDeployConfig() DeployConfig {
	return DeployConfig{
		MachineType:      "g2-standard-12",
		AcceleratorType:  "NVIDIA_L4",
		AcceleratorCount: 1,
		MinReplicaCount:  1,
		MaxReplicaCount:  1,
	}
}

func (c DeployConfig) validate() error {
	if c.MinReplicaCount < 1 {
		return &types.InvalidArgumentError{Field: "min_replica_count", Message: "must be at least 1"}
	}
	if c.MaxReplicaCount < c.MinReplicaCount {
		return &types.InvalidArgumentError{
			Field:   "max_replica_count",
			Message: fmt.Sprintf("must be >= min_replica_count (%d)", c.MinReplicaCount),
		}
	}
	if _, err := vertexai.AcceleratorType(c.AcceleratorType); err != nil {
		return err
	}
	return types.RequireNonEmpty("machine_type", c.MachineType)
}

// Deployment describes a model deployed by [Lifecycle.DeployRegisteredModel].
type Deployment struct {
	Endpoint        *types.Endpoint `json:"endpoint"`
	DeployedModelID string          `json:"deployed_model_id"`
	Model           *types.Model    `json:"model"`
}

// Lifecycle runs endpoint workflows against an [types.EndpointService] and [types.ModelService].
//
// It holds no resource IDs between calls; every operation resolves endpoints by display name.
type Lifecycle struct {
	endpoints types.EndpointService
	models    types.ModelService
	logger    *slog.Logger
}

// Option configures a [Lifecycle].
type Option func(*Lifecycle)

// WithLogger sets the logger of the [Lifecycle]. Without it the logger is taken from the context.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) {
		l.logger = logger
	}
}

// NewLifecycle creates a new [Lifecycle].
func NewLifecycle(endpoints types.EndpointService, models types.ModelService, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		endpoints: endpoints,
		models:    models,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lifecycle) log(ctx context.Context) *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.FromContext(ctx)
}

// FindEndpointByName returns the oldest endpoint whose display name equals displayName.
// ok is false when none exists.
func (l *Lifecycle) FindEndpointByName(ctx context.Context, displayName string) (ep *types.Endpoint, ok bool, err error) {
	if err := types.RequireNonEmpty("endpoint_display_name", displayName); err != nil {
		return nil, false, err
	}

	listed, err := l.endpoints.ListEndpoints(ctx, types.EndpointFilter{
		DisplayName: displayName,
		OrderBy:     types.EndpointOrderCreateTime,
	})
	if err != nil {
		return nil, false, fmt.Errorf("list endpoints named %q: %w", displayName, err)
	}

	matches := slices.DeleteFunc(listed, func(e *types.Endpoint) bool {
		return e.DisplayName != displayName
	})
	if len(matches) == 0 {
		return nil, false, nil
	}
	slices.SortStableFunc(matches, func(a, b *types.Endpoint) int {
		return a.CreateTime.Compare(b.CreateTime)
	})

	if len(matches) > 1 {
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		l.log(ctx).WarnContext(ctx, "multiple endpoints share display name, using the oldest",
			slog.String("display_name", displayName),
			slog.Int("count", len(matches)),
			slog.Any("endpoint_ids", ids),
			slog.String("selected", matches[0].ID),
		)
	}

	return matches[0], true, nil
}

// ListEndpoints lists every endpoint, oldest first.
func (l *Lifecycle) ListEndpoints(ctx context.Context) ([]*types.Endpoint, error) {
	eps, err := l.endpoints.ListEndpoints(ctx, types.EndpointFilter{OrderBy: types.EndpointOrderCreateTime})
	if err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	return eps, nil
}

// GetEndpoint returns the endpoint with the given ID or resource name.
func (l *Lifecycle) GetEndpoint(ctx context.Context, id string) (*types.Endpoint, error) {
	if err := types.RequireNonEmpty("endpoint_id", id); err != nil {
		return nil, err
	}
	ep, err := l.endpoints.GetEndpoint(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get endpoint %s: %w", id, err)
	}
	return ep, nil
}

// CreateEndpoint creates an empty endpoint named displayName.
//
// It does not check for existing endpoints with the same name.
func (l *Lifecycle) CreateEndpoint(ctx context.Context, displayName string) (*types.Endpoint, error) {
	if err := types.RequireNonEmpty("endpoint_display_name", displayName); err != nil {
		return nil, err
	}

	l.log(ctx).InfoContext(ctx, "creating endpoint", slog.String("display_name", displayName))
	ep, err := l.endpoints.CreateEndpoint(ctx, displayName)
	if err != nil {
		return nil, fmt.Errorf("create endpoint %q: %w", displayName, err)
	}
	l.log(ctx).InfoContext(ctx, "created endpoint",
		slog.String("display_name", displayName),
		slog.String("endpoint_id", ep.ID),
		slog.String("resource_name", ep.Name),
	)

	return ep, nil
}

// DeployRegisteredModel creates a new endpoint named endpointDisplayName and deploys the
// registered model modelID to it.
//
// A new endpoint is created on every call.
func (l *Lifecycle) DeployRegisteredModel(ctx context.Context, modelID, endpointDisplayName string, cfg DeployConfig) (*Deployment, error) {
	if err := types.RequireNonEmpty("model_id", modelID); err != nil {
		return nil, err
	}
	if err := types.RequireNonEmpty("endpoint_display_name", endpointDisplayName); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	model, err := l.models.GetModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("resolve model %s: %w", modelID, err)
	}

	ep, err := l.CreateEndpoint(ctx, endpointDisplayName)
	if err != nil {
		return nil, err
	}

	spec := &types.DeploySpec{
		Model:            model.Name,
		DisplayName:      cmp.Or(cfg.DeployedDisplayName, endpointDisplayName+"-deploy"),
		MachineType:      cfg.MachineType,
		AcceleratorType:  cfg.AcceleratorType,
		AcceleratorCount: cfg.AcceleratorCount,
		MinReplicaCount:  cfg.MinReplicaCount,
		MaxReplicaCount:  cfg.MaxReplicaCount,
	}
	l.log(ctx).InfoContext(ctx, "deploying model",
		slog.String("model", model.Name),
		slog.String("endpoint_id", ep.ID),
		slog.String("deployed_display_name", spec.DisplayName),
		slog.String("machine_type", spec.MachineType),
		slog.String("accelerator_type", spec.AcceleratorType),
		slog.Int("accelerator_count", int(spec.AcceleratorCount)),
	)

	deployedID, err := l.endpoints.DeployModel(ctx, ep.Name, spec)
	if err != nil {
		l.log(ctx).ErrorContext(ctx, "deployment failed, endpoint left in place",
			slog.String("endpoint_id", ep.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("deploy model %s to endpoint %s: %w", model.ID, ep.ID, err)
	}
	ep.DeployedModels = append(ep.DeployedModels, types.DeployedModel{
		ID:          deployedID,
		DisplayName: spec.DisplayName,
		Model:       model.Name,
	})
	ep.TrafficSplit = map[string]int32{deployedID: 100}

	l.log(ctx).InfoContext(ctx, "deployed model",
		slog.String("endpoint_id", ep.ID),
		slog.String("deployed_model_id", deployedID),
	)

	return &Deployment{
		Endpoint:        ep,
		DeployedModelID: deployedID,
		Model:           model,
	}, nil
}

// lookup finds the endpoint named displayName and reloads it with its deployed models.
func (l *Lifecycle) lookup(ctx context.Context, displayName string) (*types.Endpoint, bool, error) {
	ep, ok, err := l.FindEndpointByName(ctx, displayName)
	if err != nil || !ok {
		return nil, ok, err
	}

	fresh, err := l.endpoints.GetEndpoint(ctx, ep.Name)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get endpoint %s: %w", ep.ID, err)
	}
	return fresh, true, nil
}

// ListDeployments returns the models deployed to the endpoint named endpointDisplayName.
func (l *Lifecycle) ListDeployments(ctx context.Context, endpointDisplayName string) ([]types.DeployedModel, Result, error) {
	ep, ok, err := l.lookup(ctx, endpointDisplayName)
	if err != nil {
		return nil, ResultUnknown, err
	}
	if !ok {
		l.logEndpointNotFound(ctx, endpointDisplayName)
		return nil, ResultEndpointNotFound, nil
	}
	return ep.DeployedModels, ResultApplied, nil
}

// UndeployByDeploymentID undeploys deployedModelID from the endpoint named endpointDisplayName.
func (l *Lifecycle) UndeployByDeploymentID(ctx context.Context, endpointDisplayName, deployedModelID string) (Result, error) {
	if err := types.RequireNonEmpty("deployed_model_id", deployedModelID); err != nil {
		return ResultUnknown, err
	}

	ep, ok, err := l.FindEndpointByName(ctx, endpointDisplayName)
	if err != nil {
		return ResultUnknown, err
	}
	if !ok {
		l.logEndpointNotFound(ctx, endpointDisplayName)
		return ResultEndpointNotFound, nil
	}

	return l.undeploy(ctx, ep, deployedModelID)
}

// UndeployByDisplayName undeploys the first deployed model named modelDisplayName from the
// endpoint named endpointDisplayName.
func (l *Lifecycle) UndeployByDisplayName(ctx context.Context, endpointDisplayName, modelDisplayName string) (Result, error) {
	if err := types.RequireNonEmpty("model_display_name", modelDisplayName); err != nil {
		return ResultUnknown, err
	}

	ep, ok, err := l.lookup(ctx, endpointDisplayName)
	if err != nil {
		return ResultUnknown, err
	}
	if !ok {
		l.logEndpointNotFound(ctx, endpointDisplayName)
		return ResultEndpointNotFound, nil
	}

	i := slices.IndexFunc(ep.DeployedModels, func(dm types.DeployedModel) bool {
		return dm.DisplayName == modelDisplayName
	})
	if i < 0 {
		l.log(ctx).InfoContext(ctx, "no deployed model with display name",
			slog.String("endpoint_display_name", endpointDisplayName),
			slog.String("model_display_name", modelDisplayName),
		)
		return ResultDeploymentNotFound, nil
	}

	return l.undeploy(ctx, ep, ep.DeployedModels[i].ID)
}

// undeploy removes deployedModelID from ep and updates ep to match.
//
// The traffic of the removed model moves to the remaining models, see
// [types.Endpoint.TrafficSplitWithout].
func (l *Lifecycle) undeploy(ctx context.Context, ep *types.Endpoint, deployedModelID string) (Result, error) {
	split, err := ep.TrafficSplitWithout(deployedModelID)
	if err != nil {
		return ResultUnknown, fmt.Errorf("undeploy %s from endpoint %s: %w", deployedModelID, ep.ID, err)
	}

	l.log(ctx).InfoContext(ctx, "undeploying model",
		slog.String("endpoint_id", ep.ID),
		slog.String("deployed_model_id", deployedModelID),
		slog.Any("traffic_split", split),
	)
	if err := l.endpoints.UndeployModel(ctx, ep.Name, deployedModelID); err != nil {
		if types.IsNotFound(err) {
			l.log(ctx).InfoContext(ctx, "deployed model not found",
				slog.String("endpoint_id", ep.ID),
				slog.String("deployed_model_id", deployedModelID),
			)
			return ResultDeploymentNotFound, nil
		}
		return ResultUnknown, fmt.Errorf("undeploy %s from endpoint %s: %w", deployedModelID, ep.ID, err)
	}
	ep.DeployedModels = slices.DeleteFunc(ep.DeployedModels, func(dm types.DeployedModel) bool {
		return dm.ID == deployedModelID
	})
	ep.TrafficSplit = split

	l.log(ctx).InfoContext(ctx, "undeployed model",
		slog.String("endpoint_id", ep.ID),
		slog.String("deployed_model_id", deployedModelID),
	)
	return ResultApplied, nil
}

// DeleteEndpoint deletes the endpoint named endpointDisplayName.
//
// Deployed models are not undeployed first. If the endpoint still serves models the remote
// rejection is returned as is.
func (l *Lifecycle) DeleteEndpoint(ctx context.Context, endpointDisplayName string) (Result, error) {
	ep, ok, err := l.FindEndpointByName(ctx, endpointDisplayName)
	if err != nil {
		return ResultUnknown, err
	}
	if !ok {
		l.logEndpointNotFound(ctx, endpointDisplayName)
		return ResultEndpointNotFound, nil
	}

	return l.deleteEndpoint(ctx, ep)
}

func (l *Lifecycle) deleteEndpoint(ctx context.Context, ep *types.Endpoint) (Result, error) {
	l.log(ctx).InfoContext(ctx, "deleting endpoint",
		slog.String("display_name", ep.DisplayName),
		slog.String("endpoint_id", ep.ID),
	)
	if err := l.endpoints.DeleteEndpoint(ctx, ep.Name); err != nil {
		return ResultUnknown, fmt.Errorf("delete endpoint %s: %w", ep.ID, err)
	}
	l.log(ctx).InfoContext(ctx, "deleted endpoint", slog.String("endpoint_id", ep.ID))
	return ResultApplied, nil
}

// Teardown undeploys every model from the endpoint named endpointDisplayName and then deletes it.
//
// Models are undeployed in ascending order of their traffic share, so the model serving the
// most traffic goes last.
func (l *Lifecycle) Teardown(ctx context.Context, endpointDisplayName string) (Result, error) {
	ep, ok, err := l.lookup(ctx, endpointDisplayName)
	if err != nil {
		return ResultUnknown, err
	}
	if !ok {
		l.logEndpointNotFound(ctx, endpointDisplayName)
		return ResultEndpointNotFound, nil
	}

	order := slices.Clone(ep.DeployedModels)
	slices.SortStableFunc(order, func(a, b types.DeployedModel) int {
		return cmp.Compare(ep.TrafficSplit[a.ID], ep.TrafficSplit[b.ID])
	})
	for _, dm := range order {
		if _, err := l.undeploy(ctx, ep, dm.ID); err != nil {
			return ResultUnknown, err
		}
	}

	return l.deleteEndpoint(ctx, ep)
}

func (l *Lifecycle) logEndpointNotFound(ctx context.Context, displayName string) {
	l.log(ctx).InfoContext(ctx, "endpoint not found", slog.String("display_name", displayName))
}
