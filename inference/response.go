// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"github.com/go-json-experiment/json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/types"
)

// choice is one generated alternative.
type choice struct {
	Message *Message `json:"message"`
}

// ExtractContent returns the content of the first choice in predictions.
//
// Accepted shapes are [[{"message":{...}}, ...]] and [{"message":{...}}, ...]. Any other
// shape returns an empty string and a [*types.ResponseShapeError].
func ExtractContent(predictions []*structpb.Value) (string, error) {
	raw, err := protojson.Marshal(&structpb.ListValue{Values: predictions})
	if err != nil {
		return "", &types.ResponseShapeError{Raw: err.Error()}
	}
	shapeErr := &types.ResponseShapeError{Raw: string(raw)}

	var nested [][]choice
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 || nested[0][0].Message == nil {
			return "", shapeErr
		}
		return nested[0][0].Message.Content, nil
	}

	var flat []choice
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 || flat[0].Message == nil {
			return "", shapeErr
		}
		return flat[0].Message.Content, nil
	}

	return "", shapeErr
}

// NewChoicePrediction builds a nested-list prediction carrying content, as returned by
// chatCompletions serving containers.
func NewChoicePrediction(content string) (*structpb.Value, error) {
	data, err := json.Marshal([]choice{{Message: &Message{Role: RoleAssistant, Content: content}}})
	if err != nil {
		return nil, err
	}
	var v structpb.Value
	if err := protojson.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
