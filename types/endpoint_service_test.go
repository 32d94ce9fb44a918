// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func deployed(ids ...string) []DeployedModel {
	out := make([]DeployedModel, len(ids))
	for i, id := range ids {
		out[i] = DeployedModel{ID: id}
	}
	return out
}

func TestEndpointTrafficSplitWithout(t *testing.T) {
	tests := []struct {
		name    string
		ep      *Endpoint
		remove  string
		want    map[string]int32
		wantErr bool
	}{
		{
			name:   "last model",
			ep:     &Endpoint{DeployedModels: deployed("a"), TrafficSplit: map[string]int32{"a": 100}},
			remove: "a",
			want:   nil,
		},
		{
			name:   "proportional",
			ep:     &Endpoint{DeployedModels: deployed("a", "b", "c"), TrafficSplit: map[string]int32{"a": 50, "b": 30, "c": 20}},
			remove: "a",
			want:   map[string]int32{"b": 60, "c": 40},
		},
		{
			name:   "rounding drift",
			ep:     &Endpoint{DeployedModels: deployed("a", "b", "c", "d"), TrafficSplit: map[string]int32{"a": 1, "b": 33, "c": 33, "d": 33}},
			remove: "a",
			want:   map[string]int32{"b": 34, "c": 33, "d": 33},
		},
		{
			name:   "zero traffic model",
			ep:     &Endpoint{DeployedModels: deployed("a", "b", "c"), TrafficSplit: map[string]int32{"b": 40, "c": 60}},
			remove: "a",
			want:   map[string]int32{"b": 40, "c": 60},
		},
		{
			name:   "zero traffic everywhere",
			ep:     &Endpoint{DeployedModels: deployed("a", "b")},
			remove: "a",
			want:   nil,
		},
		{
			name:   "idle models stay at zero",
			ep:     &Endpoint{DeployedModels: deployed("a", "b", "c"), TrafficSplit: map[string]int32{"a": 50, "b": 50}},
			remove: "a",
			want:   map[string]int32{"b": 100},
		},
		{
			name:    "stranded traffic",
			ep:      &Endpoint{ID: "7", DeployedModels: deployed("a", "b"), TrafficSplit: map[string]int32{"a": 100}},
			remove:  "a",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ep.TrafficSplitWithout(tt.remove)
			if tt.wantErr {
				var argErr *InvalidArgumentError
				if !errors.As(err, &argErr) || argErr.Field != "deployed_model_id" {
					t.Fatalf("TrafficSplitWithout() error = %v, want InvalidArgumentError for deployed_model_id", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TrafficSplitWithout() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TrafficSplitWithout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
