// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/types"
)

// RequestFormat is the serving envelope discriminator.
const RequestFormat = "chatCompletions"

// Role is the author of a chat message.
type Role = string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ParseMessage parses "role=content". A string without "=" is a user message.
func ParseMessage(s string) (Message, error) {
	role, content, ok := strings.Cut(s, "=")
	if !ok {
		return Message{Role: RoleUser, Content: s}, nil
	}
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return Message{Role: role, Content: content}, nil
	default:
		return Message{}, &types.InvalidArgumentError{
			Field:   "message",
			Message: fmt.Sprintf("unknown role %q in %q", role, s),
		}
	}
}

// Sampling holds generation parameters.
type Sampling struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultChatSampling returns the sampling used for chat completions.
func DefaultChatSampling() Sampling {
	return Sampling{
		MaxTokens:   512,
		Temperature: 0.2,
		TopP:        0.9,
	}
}

// DefaultTextSampling returns the sampling used for single-prompt text prediction.
func DefaultTextSampling() Sampling {
	return Sampling{
		MaxTokens:   200,
		Temperature: 0.2,
		TopP:        0.9,
	}
}

func (s Sampling) validate() error {
	if s.MaxTokens < 1 {
		return &types.InvalidArgumentError{Field: "max_tokens", Message: "must be at least 1"}
	}
	if s.Temperature < 0 {
		return &types.InvalidArgumentError{Field: "temperature", Message: "must not be negative"}
	}
	if s.TopP <= 0 || s.TopP > 1 {
		return &types.InvalidArgumentError{Field: "top_p", Message: "must be in (0, 1]"}
	}
	return nil
}

// chatRequest is the serving envelope of a chat completion.
type chatRequest struct {
	RequestFormat string    `json:"@requestFormat"`
	Messages      []Message `json:"messages"`
	MaxTokens     int       `json:"max_tokens"`
	Temperature   float64   `json:"temperature"`
	TopP          float64   `json:"top_p"`
}

// NewInstance builds the prediction instance for messages.
func NewInstance(messages []Message, s Sampling) (*structpb.Value, error) {
	data, err := json.Marshal(chatRequest{
		RequestFormat: RequestFormat,
		Messages:      messages,
		MaxTokens:     s.MaxTokens,
		Temperature:   s.Temperature,
		TopP:          s.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	var v structpb.Value
	if err := protojson.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("convert chat request: %w", err)
	}
	return &v, nil
}

// decodeInstance is the inverse of [NewInstance].
func decodeInstance(v *structpb.Value) (*chatRequest, error) {
	data, err := protojson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
