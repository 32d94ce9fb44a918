// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package inference

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-a2a/vertexops/endpoint"
	"github.com/go-a2a/vertexops/pkg/logging"
	"github.com/go-a2a/vertexops/types"
)

// Client sends chat completion requests to endpoints addressed by display name.
type Client struct {
	predictions types.PredictionService
	lifecycle   *endpoint.Lifecycle
	logger      *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithLogger sets the logger of the [Client]. Without it the logger is taken from the context.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new [Client]. lifecycle resolves endpoint display names.
func NewClient(predictions types.PredictionService, lifecycle *endpoint.Lifecycle, opts ...Option) *Client {
	c := &Client{
		predictions: predictions,
		lifecycle:   lifecycle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}

// ChatCompletion sends messages to the endpoint named endpointDisplayName and returns the
// generated content.
//
// A missing endpoint is reported as [*types.NotFoundError].
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, endpointDisplayName string, s Sampling) (string, error) {
	if len(messages) == 0 {
		return "", &types.InvalidArgumentError{Field: "messages", Message: "must not be empty"}
	}
	if err := s.validate(); err != nil {
		return "", err
	}

	ep, ok, err := c.lifecycle.FindEndpointByName(ctx, endpointDisplayName)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &types.NotFoundError{Kind: "endpoint", Name: endpointDisplayName}
	}

	instance, err := NewInstance(messages, s)
	if err != nil {
		return "", err
	}

	c.log(ctx).InfoContext(ctx, "sending chat completion",
		slog.String("endpoint_id", ep.ID),
		slog.Int("messages", len(messages)),
		slog.Int("max_tokens", s.MaxTokens),
	)
	predictions, err := c.predictions.Predict(ctx, ep.Name, []*structpb.Value{instance})
	if err != nil {
		return "", fmt.Errorf("predict on endpoint %s: %w", ep.ID, err)
	}
	c.log(ctx).InfoContext(ctx, "chat completion received",
		slog.String("endpoint_id", ep.ID),
		slog.Int("predictions", len(predictions)),
	)

	return ExtractContent(predictions)
}

// PredictText sends prompt as a single user message to the endpoint named endpointDisplayName.
func (c *Client) PredictText(ctx context.Context, prompt, endpointDisplayName string, s Sampling) (string, error) {
	if err := types.RequireNonEmpty("prompt", prompt); err != nil {
		return "", err
	}
	return c.ChatCompletion(ctx, []Message{{Role: RoleUser, Content: prompt}}, endpointDisplayName, s)
}
