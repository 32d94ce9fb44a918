// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-a2a/vertexops/artifact"
	"github.com/go-a2a/vertexops/internal/config"
	"github.com/go-a2a/vertexops/model"
	"github.com/go-a2a/vertexops/types"
)

var modelHeaders = []string{"ID", "Display Name", "Artifact URI", "Container Image", "Created"}

func modelRow(m *types.Model) []string {
	return []string{m.ID, m.DisplayName, m.ArtifactURI, m.ContainerImageURI, formatTime(m.CreateTime)}
}

func (a *app) modelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage models in the Vertex AI Model Registry",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, config.KeyProjectID, config.KeyLocation)
		},
	}

	cmd.AddCommand(
		a.modelRegisterCommand(),
		a.modelGetCommand(),
		a.modelListCommand(),
		a.modelDeleteCommand(),
	)

	return cmd
}

// defaultArtifactURI is the location written by "bucket upload" for MODEL_DIR.
func defaultArtifactURI(cfg *config.Config) string {
	if cfg.BucketName == "" || cfg.ModelDir == "" {
		return ""
	}
	return artifact.URL(cfg.BucketName, filepath.Base(cfg.ModelDir))
}

func (a *app) modelRegisterCommand() *cobra.Command {
	var req model.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register model weights with a serving container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.registry(ctx)
			if err != nil {
				return err
			}
			req.DisplayName = cmp.Or(req.DisplayName, a.cfg.ModelDisplayName)
			req.ArtifactURI = cmp.Or(req.ArtifactURI, defaultArtifactURI(a.cfg))
			req.ContainerImageURI = cmp.Or(req.ContainerImageURI, a.cfg.ServingImage)

			m, err := r.Register(ctx, req)
			if err != nil {
				return err
			}
			return a.render(m, modelHeaders, modelRow(m))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.DisplayName, "display-name", "", "model display name (default $MODEL_DISPLAY_NAME)")
	flags.StringVar(&req.ArtifactURI, "artifact-uri", "", "gs:// directory holding the weights (default gs://$BUCKET_NAME/<base of $MODEL_DIR>)")
	flags.StringVar(&req.ContainerImageURI, "image", "", "serving container image (default $SERVING_CONTAINER_IMAGE_URI)")
	flags.StringVar(&req.Description, "description", "", "model description")

	return cmd
}

func (a *app) modelGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [model-id]",
		Short: "Show a registered model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.registry(ctx)
			if err != nil {
				return err
			}
			id := a.cfg.ModelID
			if len(args) > 0 {
				id = args[0]
			}
			m, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.render(m, modelHeaders, modelRow(m))
		},
	}
}

func (a *app) modelListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered models",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.registry(ctx)
			if err != nil {
				return err
			}
			models, err := r.List(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(models))
			for _, m := range models {
				rows = append(rows, modelRow(m))
			}
			return a.render(models, modelHeaders, rows...)
		},
	}
}

func (a *app) modelDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <model-id>",
		Short: "Delete a registered model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.registry(ctx)
			if err != nil {
				return err
			}
			if err := r.Delete(ctx, args[0]); err != nil {
				return err
			}
			out := struct {
				ID      string `json:"id"`
				Deleted bool   `json:"deleted"`
			}{args[0], true}
			return a.render(out, []string{"ID", "Deleted"}, []string{args[0], "true"})
		},
	}
}
