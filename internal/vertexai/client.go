// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package vertexai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"google.golang.org/api/option"
)

// Client provides unified access to the Vertex AI endpoint, model and prediction APIs
// of one project and location.
type Client struct {
	projectID string
	location  string
	logger    *slog.Logger

	credentialsFile string
	clientOpts      []option.ClientOption

	endpoints   *EndpointService
	models      *ModelService
	predictions *PredictionService
}

// ClientOption is a functional option for configuring the [Client].
type ClientOption func(*Client)

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCredentialsFile loads service account credentials from path instead of Application Default Credentials.
func WithCredentialsFile(path string) ClientOption {
	return func(c *Client) {
		c.credentialsFile = path
	}
}

// WithClientOptions appends raw client options. When any are given, credential detection is skipped.
func WithClientOptions(opts ...option.ClientOption) ClientOption {
	return func(c *Client) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// RegionalEndpoint returns the regional API host for location.
func RegionalEndpoint(location string) string {
	return location + "-aiplatform.googleapis.com:443"
}

// NewClient creates a new Vertex AI client for projectID and location.
func NewClient(ctx context.Context, projectID, location string, opts ...ClientOption) (*Client, error) {
	if projectID == "" {
		return nil, errors.New("projectID is required")
	}
	if location == "" {
		return nil, errors.New("location is required")
	}

	client := &Client{
		projectID: projectID,
		location:  location,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}

	clientOpts := client.clientOpts
	if len(clientOpts) == 0 {
		creds, err := DetectCredentials(client.credentialsFile, CloudPlatformScope)
		if err != nil {
			return nil, err
		}
		clientOpts = []option.ClientOption{
			option.WithAuthCredentials(creds),
			option.WithEndpoint(RegionalEndpoint(location)),
		}
	}

	names := ResourceNames{ProjectID: projectID, Location: location}

	endpointClient, err := aiplatform.NewEndpointClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create endpoint client: %w", err)
	}
	client.endpoints = &EndpointService{client: endpointClient, names: names, logger: client.logger}

	modelClient, err := aiplatform.NewModelClient(ctx, clientOpts...)
	if err != nil {
		endpointClient.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	client.models = &ModelService{client: modelClient, names: names, logger: client.logger}

	predictionClient, err := aiplatform.NewPredictionClient(ctx, clientOpts...)
	if err != nil {
		endpointClient.Close()
		modelClient.Close()
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}
	client.predictions = &PredictionService{client: predictionClient, names: names, logger: client.logger}

	client.logger.DebugContext(ctx, "Vertex AI client initialized",
		slog.String("project_id", projectID),
		slog.String("location", location),
	)

	return client, nil
}

// Endpoints returns the endpoint service.
func (c *Client) Endpoints() *EndpointService { return c.endpoints }

// Models returns the model service.
func (c *Client) Models() *ModelService { return c.models }

// Predictions returns the prediction service.
func (c *Client) Predictions() *PredictionService { return c.predictions }

// GetProjectID returns the project ID.
func (c *Client) GetProjectID() string { return c.projectID }

// GetLocation returns the location.
func (c *Client) GetLocation() string { return c.location }

// Close closes every underlying connection.
func (c *Client) Close() error {
	var errs []error
	if err := c.endpoints.client.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close endpoint client: %w", err))
	}
	if err := c.models.client.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close model client: %w", err))
	}
	if err := c.predictions.client.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close prediction client: %w", err))
	}
	return errors.Join(errs...)
}
