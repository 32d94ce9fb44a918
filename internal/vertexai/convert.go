// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"maps"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"

	"github.com/go-a2a/vertexops/types"
)

func endpointFromProto(pb *aiplatformpb.Endpoint) *types.Endpoint {
	ep := &types.Endpoint{
		Name:         pb.GetName(),
		ID:           LastSegment(pb.GetName()),
		DisplayName:  pb.GetDisplayName(),
		TrafficSplit: maps.Clone(pb.GetTrafficSplit()),
	}
	if ts := pb.GetCreateTime(); ts != nil {
		ep.CreateTime = ts.AsTime()
	}
	for _, dm := range pb.GetDeployedModels() {
		ep.DeployedModels = append(ep.DeployedModels, types.DeployedModel{
			ID:          dm.GetId(),
			DisplayName: dm.GetDisplayName(),
			Model:       dm.GetModel(),
		})
	}
	return ep
}

func modelFromProto(pb *aiplatformpb.Model) *types.Model {
	m := &types.Model{
		Name:              pb.GetName(),
		ID:                LastSegment(pb.GetName()),
		DisplayName:       pb.GetDisplayName(),
		Description:       pb.GetDescription(),
		ArtifactURI:       pb.GetArtifactUri(),
		ContainerImageURI: pb.GetContainerSpec().GetImageUri(),
	}
	if ts := pb.GetCreateTime(); ts != nil {
		m.CreateTime = ts.AsTime()
	}
	return m
}

// deployedModelToProto builds the deploy request payload for spec.
func deployedModelToProto(spec *types.DeploySpec) (*aiplatformpb.DeployedModel, error) {
	accel, err := AcceleratorType(spec.AcceleratorType)
	if err != nil {
		return nil, err
	}

	machine := &aiplatformpb.MachineSpec{
		MachineType: spec.MachineType,
	}
	if accel != aiplatformpb.AcceleratorType_ACCELERATOR_TYPE_UNSPECIFIED {
		machine.AcceleratorType = accel
		machine.AcceleratorCount = max(spec.AcceleratorCount, 1)
	}

	return &aiplatformpb.DeployedModel{
		Model:       spec.Model,
		DisplayName: spec.DisplayName,
		PredictionResources: &aiplatformpb.DeployedModel_DedicatedResources{
			DedicatedResources: &aiplatformpb.DedicatedResources{
				MachineSpec:     machine,
				MinReplicaCount: spec.MinReplicaCount,
				MaxReplicaCount: spec.MaxReplicaCount,
			},
		},
	}, nil
}
