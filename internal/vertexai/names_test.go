// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/go-a2a/vertexops/types"
)

func TestResourceNames(t *testing.T) {
	names := ResourceNames{ProjectID: "p", Location: "us-central1"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "parent", got: names.Parent(), want: "projects/p/locations/us-central1"},
		{name: "endpoint id", got: names.Endpoint("123"), want: "projects/p/locations/us-central1/endpoints/123"},
		{name: "endpoint full", got: names.Endpoint("projects/q/locations/europe-west4/endpoints/9"), want: "projects/q/locations/europe-west4/endpoints/9"},
		{name: "model id", got: names.Model("456"), want: "projects/p/locations/us-central1/models/456"},
		{name: "last segment", got: LastSegment("projects/p/locations/l/models/456"), want: "456"},
		{name: "last segment bare", got: LastSegment("456"), want: "456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDisplayNameFilter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "llama-3-1-8b-instruct-mg-one-click-deploy", want: `display_name="llama-3-1-8b-instruct-mg-one-click-deploy"`},
		{in: `a"b`, want: `display_name="a\"b"`},
		{in: `a\b`, want: `display_name="a\\b"`},
	}

	for _, tt := range tests {
		if got := DisplayNameFilter(tt.in); got != tt.want {
			t.Errorf("DisplayNameFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrderBy(t *testing.T) {
	if got := OrderBy(types.EndpointOrderCreateTime); got != "create_time" {
		t.Errorf("OrderBy(create_time) = %q", got)
	}
	if got := OrderBy(types.EndpointOrderDisplayName); got != "display_name" {
		t.Errorf("OrderBy(display_name) = %q", got)
	}
	if got := OrderBy(""); got != "" {
		t.Errorf("OrderBy(\"\") = %q", got)
	}
}

func TestAcceleratorType(t *testing.T) {
	tests := []struct {
		in      string
		want    aiplatformpb.AcceleratorType
		wantErr bool
	}{
		{in: "NVIDIA_L4", want: aiplatformpb.AcceleratorType_NVIDIA_L4},
		{in: " nvidia_tesla_t4 ", want: aiplatformpb.AcceleratorType_NVIDIA_TESLA_T4},
		{in: "", want: aiplatformpb.AcceleratorType_ACCELERATOR_TYPE_UNSPECIFIED},
		{in: "QUANTUM_9000", wantErr: true},
	}

	for _, tt := range tests {
		got, err := AcceleratorType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("AcceleratorType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			var argErr *types.InvalidArgumentError
			if !errors.As(err, &argErr) {
				t.Errorf("AcceleratorType(%q) error = %T, want *types.InvalidArgumentError", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("AcceleratorType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEndpointFromProto(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pb := &aiplatformpb.Endpoint{
		Name:        "projects/p/locations/l/endpoints/111",
		DisplayName: "e1",
		CreateTime:  timestamppb.New(created),
		DeployedModels: []*aiplatformpb.DeployedModel{
			{Id: "999", DisplayName: "e1-deploy", Model: "projects/p/locations/l/models/m1"},
		},
		TrafficSplit: map[string]int32{"999": 100},
	}

	want := &types.Endpoint{
		Name:        "projects/p/locations/l/endpoints/111",
		ID:          "111",
		DisplayName: "e1",
		CreateTime:  created,
		DeployedModels: []types.DeployedModel{
			{ID: "999", DisplayName: "e1-deploy", Model: "projects/p/locations/l/models/m1"},
		},
		TrafficSplit: map[string]int32{"999": 100},
	}
	if diff := cmp.Diff(want, endpointFromProto(pb)); diff != "" {
		t.Errorf("endpointFromProto() mismatch (-want +got):\n%s", diff)
	}
}

func TestModelFromProto(t *testing.T) {
	pb := &aiplatformpb.Model{
		Name:          "projects/p/locations/l/models/m1",
		DisplayName:   "llama",
		ArtifactUri:   "gs://b/llama",
		ContainerSpec: &aiplatformpb.ModelContainerSpec{ImageUri: "us-docker.pkg.dev/vllm:latest"},
	}

	want := &types.Model{
		Name:              "projects/p/locations/l/models/m1",
		ID:                "m1",
		DisplayName:       "llama",
		ArtifactURI:       "gs://b/llama",
		ContainerImageURI: "us-docker.pkg.dev/vllm:latest",
	}
	if diff := cmp.Diff(want, modelFromProto(pb)); diff != "" {
		t.Errorf("modelFromProto() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeployedModelToProto(t *testing.T) {
	spec := &types.DeploySpec{
		Model:            "projects/p/locations/l/models/m1",
		DisplayName:      "e1-deploy",
		MachineType:      "g2-standard-12",
		AcceleratorType:  "NVIDIA_L4",
		AcceleratorCount: 1,
		MinReplicaCount:  1,
		MaxReplicaCount:  2,
	}

	got, err := deployedModelToProto(spec)
	if err != nil {
		t.Fatalf("deployedModelToProto() error = %v", err)
	}

	want := &aiplatformpb.DeployedModel{
		Model:       "projects/p/locations/l/models/m1",
		DisplayName: "e1-deploy",
		PredictionResources: &aiplatformpb.DeployedModel_DedicatedResources{
			DedicatedResources: &aiplatformpb.DedicatedResources{
				MachineSpec: &aiplatformpb.MachineSpec{
					MachineType:      "g2-standard-12",
					AcceleratorType:  aiplatformpb.AcceleratorType_NVIDIA_L4,
					AcceleratorCount: 1,
				},
				MinReplicaCount: 1,
				MaxReplicaCount: 2,
			},
		},
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("deployedModelToProto() mismatch (-want +got):\n%s", diff)
	}

	cpu := *spec
	cpu.AcceleratorType = ""
	got, err = deployedModelToProto(&cpu)
	if err != nil {
		t.Fatalf("deployedModelToProto(cpu) error = %v", err)
	}
	if c := got.GetDedicatedResources().GetMachineSpec().GetAcceleratorCount(); c != 0 {
		t.Errorf("cpu AcceleratorCount = %d, want 0", c)
	}

	bad := *spec
	bad.AcceleratorType = "NOPE"
	if _, err := deployedModelToProto(&bad); err == nil {
		t.Error("deployedModelToProto() with unknown accelerator succeeded")
	}
}
