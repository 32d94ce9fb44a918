// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/go-a2a/vertexops/artifact"
	"github.com/go-a2a/vertexops/endpoint"
	"github.com/go-a2a/vertexops/inference"
	"github.com/go-a2a/vertexops/internal/config"
	"github.com/go-a2a/vertexops/internal/vertexai"
	"github.com/go-a2a/vertexops/model"
	"github.com/go-a2a/vertexops/pkg/logging"
	"github.com/go-a2a/vertexops/types"
)

// app holds the state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	envFile string
	output  string
	dryRun  bool

	cfg    *config.Config
	logger *slog.Logger

	store       types.BlobStore
	endpoints   types.EndpointService
	models      types.ModelService
	predictions types.PredictionService

	closers []io.Closer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
	}
}

// setup loads the configuration, checks the required keys and installs the run logger on
// the command context. It is run by every command group before any remote call.
func (a *app) setup(cmd *cobra.Command, required ...string) error {
	switch a.output {
	case outputTable, outputJSON:
	default:
		return &types.InvalidArgumentError{
			Field:   "output",
			Message: fmt.Sprintf("want %q or %q, got %q", outputTable, outputJSON, a.output),
		}
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if err := cfg.Require(required...); err != nil {
		return err
	}
	if err := cfg.ExportCredentials(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return &types.ConfigurationError{Key: config.KeyLogLevel, Message: err.Error()}
	}
	a.logger = logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("command", cmd.CommandPath()),
	)
	if a.dryRun {
		a.logger = a.logger.With(slog.Bool("dry_run", true))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, a.logger))

	return nil
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// blobStore returns the store selected by STORE_BACKEND. --dry-run always selects memory.
func (a *app) blobStore(ctx context.Context) (types.BlobStore, error) {
	if a.store != nil {
		return a.store, nil
	}

	backend := a.cfg.StoreBackend
	if a.dryRun {
		backend = config.BackendMemory
	}

	switch backend {
	case config.BackendGCS:
		if err := a.cfg.Require(config.KeyProjectID); err != nil {
			return nil, err
		}
		store, err := artifact.NewGCSStore(ctx, a.cfg.ProjectID,
			artifact.WithCredentialsFile(a.cfg.CredentialsFile),
			artifact.WithGCSLogger(a.logger),
		)
		if err != nil {
			return nil, err
		}
		a.store = store
	case config.BackendS3:
		store, err := artifact.NewS3Store(artifact.S3Config{
			Endpoint:  a.cfg.S3Endpoint,
			AccessKey: a.cfg.S3AccessKey,
			SecretKey: a.cfg.S3SecretKey,
			Region:    a.cfg.S3Region,
			UseSSL:    a.cfg.S3UseSSL,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.store = store
	default:
		a.store = artifact.NewInMemoryStore()
	}
	a.closers = append(a.closers, a.store)

	return a.store, nil
}

func (a *app) syncer(ctx context.Context) (*artifact.Syncer, error) {
	store, err := a.blobStore(ctx)
	if err != nil {
		return nil, err
	}
	return artifact.NewSyncer(store,
		artifact.WithLogger(a.logger),
		artifact.WithConcurrency(a.cfg.TransferConcurrency),
	), nil
}

// vertex wires the Vertex AI services, or in-memory fakes under --dry-run.
func (a *app) vertex(ctx context.Context) error {
	if a.endpoints != nil && a.models != nil && a.predictions != nil {
		return nil
	}

	if a.dryRun {
		parent := vertexai.ResourceNames{ProjectID: a.cfg.ProjectID, Location: a.cfg.Location}.Parent()
		a.endpoints = endpoint.NewInMemoryService(parent)
		a.models = model.NewInMemoryService(parent)
		a.predictions = inference.EchoService{}
		return nil
	}

	client, err := vertexai.NewClient(ctx, a.cfg.ProjectID, a.cfg.Location,
		vertexai.WithLogger(a.logger),
		vertexai.WithCredentialsFile(a.cfg.CredentialsFile),
	)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, client)
	a.endpoints = client.Endpoints()
	a.models = client.Models()
	a.predictions = client.Predictions()

	return nil
}

func (a *app) lifecycle(ctx context.Context) (*endpoint.Lifecycle, error) {
	if err := a.vertex(ctx); err != nil {
		return nil, err
	}
	return endpoint.NewLifecycle(a.endpoints, a.models, endpoint.WithLogger(a.logger)), nil
}

func (a *app) registry(ctx context.Context) (*model.Registry, error) {
	if err := a.vertex(ctx); err != nil {
		return nil, err
	}
	return model.NewRegistry(a.models, model.WithLogger(a.logger)), nil
}

func (a *app) inference(ctx context.Context) (*inference.Client, error) {
	lc, err := a.lifecycle(ctx)
	if err != nil {
		return nil, err
	}
	return inference.NewClient(a.predictions, lc, inference.WithLogger(a.logger)), nil
}
