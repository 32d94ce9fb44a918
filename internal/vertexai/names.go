// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"fmt"
	"strings"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"

	"github.com/go-a2a/vertexops/types"
)

// ResourceNames builds fully-qualified resource names for one project and location.
type ResourceNames struct {
	ProjectID string
	Location  string
}

// Parent returns projects/{project}/locations/{location}.
func (n ResourceNames) Parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", n.ProjectID, n.Location)
}

// Endpoint expands an endpoint ID to its resource name. Resource names pass through unchanged.
func (n ResourceNames) Endpoint(id string) string {
	return n.qualify("endpoints", id)
}

// Model expands a model ID to its resource name. Resource names pass through unchanged.
func (n ResourceNames) Model(id string) string {
	return n.qualify("models", id)
}

func (n ResourceNames) qualify(collection, id string) string {
	if strings.HasPrefix(id, "projects/") {
		return id
	}
	return n.Parent() + "/" + collection + "/" + id
}

// LastSegment returns the ID part of a resource name.
func LastSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// DisplayNameFilter returns the list filter selecting resources whose display name equals name.
func DisplayNameFilter(name string) string {
	if name == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `display_name="` + r.Replace(name) + `"`
}

// OrderBy returns the list order_by clause for order.
func OrderBy(order types.EndpointOrder) string {
	switch order {
	case types.EndpointOrderCreateTime:
		return "create_time"
	case types.EndpointOrderDisplayName:
		return "display_name"
	default:
		return ""
	}
}

// AcceleratorType maps an accelerator name such as "NVIDIA_L4" to its enum value.
// An empty name means no accelerator.
func AcceleratorType(name string) (aiplatformpb.AcceleratorType, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return aiplatformpb.AcceleratorType_ACCELERATOR_TYPE_UNSPECIFIED, nil
	}
	v, ok := aiplatformpb.AcceleratorType_value[name]
	if !ok {
		return aiplatformpb.AcceleratorType_ACCELERATOR_TYPE_UNSPECIFIED, &types.InvalidArgumentError{
			Field:   "accelerator_type",
			Message: fmt.Sprintf("unknown accelerator %q", name),
		}
	}
	return aiplatformpb.AcceleratorType(v), nil
}
