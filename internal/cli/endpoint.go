// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/vertexops/endpoint"
	"github.com/go-a2a/vertexops/internal/config"
	"github.com/go-a2a/vertexops/types"
)

var endpointHeaders = []string{"ID", "Display Name", "Deployed Models", "Created"}

func endpointRow(ep *types.Endpoint) []string {
	return []string{ep.ID, ep.DisplayName, strconv.Itoa(len(ep.DeployedModels)), formatTime(ep.CreateTime)}
}

// displayName returns the first argument, or ENDPOINT_DISPLAY_NAME.
func (a *app) displayName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.EndpointDisplayName
}

func (a *app) renderResult(endpointName string, res endpoint.Result) error {
	out := struct {
		Endpoint string          `json:"endpoint"`
		Result   endpoint.Result `json:"result"`
	}{endpointName, res}
	return a.render(out, []string{"Endpoint", "Result"}, []string{endpointName, res.String()})
}

func (a *app) endpointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage Vertex AI endpoints and deployments",
		Long: heredoc.Doc(`
			Endpoints are addressed by display name. When several endpoints share a
			display name the oldest one is used and a warning is logged.

			Commands that take [name] default to ENDPOINT_DISPLAY_NAME.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, config.KeyProjectID, config.KeyLocation)
		},
	}

	cmd.AddCommand(
		a.endpointListCommand(),
		a.endpointGetCommand(),
		a.endpointFindCommand(),
		a.endpointCreateCommand(),
		a.endpointDeployCommand(),
		a.endpointDeploymentsCommand(),
		a.endpointUndeployCommand(),
		a.endpointDeleteCommand(),
		a.endpointTeardownCommand(),
	)

	return cmd
}

func (a *app) endpointListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List endpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			eps, err := lc.ListEndpoints(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(eps))
			for _, ep := range eps {
				rows = append(rows, endpointRow(ep))
			}
			return a.render(eps, endpointHeaders, rows...)
		},
	}
}

func (a *app) endpointGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <endpoint-id>",
		Short: "Show an endpoint by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			ep, err := lc.GetEndpoint(ctx, args[0])
			if err != nil {
				return err
			}
			return a.render(ep, endpointHeaders, endpointRow(ep))
		},
	}
}

func (a *app) endpointFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find [name]",
		Short: "Find an endpoint by display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			name := a.displayName(args)
			ep, ok, err := lc.FindEndpointByName(ctx, name)
			if err != nil {
				return err
			}
			if !ok {
				return &types.NotFoundError{Kind: "endpoint", Name: name}
			}
			return a.render(ep, endpointHeaders, endpointRow(ep))
		},
	}
}

func (a *app) endpointCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create an empty endpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			ep, err := lc.CreateEndpoint(ctx, a.displayName(args))
			if err != nil {
				return err
			}
			return a.render(ep, endpointHeaders, endpointRow(ep))
		},
	}
}

func (a *app) endpointDeployCommand() *cobra.Command {
	var (
		modelID string
		cfg     endpoint.DeployConfig
	)
	cmd := &cobra.Command{
		Use:   "deploy [name]",
		Short: "Create an endpoint and deploy a registered model to it",
		Long: heredoc.Doc(`
			Create a new endpoint named [name] and deploy the registered model to it.
			A new endpoint is created on every call, even when one with the same
			display name exists.

			Serving resources default to MACHINE_TYPE, ACCELERATOR_TYPE,
			ACCELERATOR_COUNT, MIN_REPLICA_COUNT and MAX_REPLICA_COUNT.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			cfg.MachineType = cmp.Or(cfg.MachineType, a.cfg.MachineType)
			cfg.AcceleratorType = cmp.Or(cfg.AcceleratorType, a.cfg.AcceleratorType)
			if !flags.Changed("accelerator-count") {
				cfg.AcceleratorCount = a.cfg.AcceleratorCount
			}
			if !flags.Changed("min-replicas") {
				cfg.MinReplicaCount = a.cfg.MinReplicaCount
			}
			if !flags.Changed("max-replicas") {
				cfg.MaxReplicaCount = a.cfg.MaxReplicaCount
			}

			d, err := lc.DeployRegisteredModel(ctx, cmp.Or(modelID, a.cfg.ModelID), a.displayName(args), cfg)
			if err != nil {
				return err
			}
			return a.render(d,
				[]string{"Endpoint ID", "Endpoint", "Deployed Model ID", "Model"},
				[]string{d.Endpoint.ID, d.Endpoint.DisplayName, d.DeployedModelID, d.Model.DisplayName},
			)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&modelID, "model-id", "", "registered model ID (default $MODEL_ID)")
	flags.StringVar(&cfg.DeployedDisplayName, "deployed-name", "", "deployed model display name (default \"<name>-deploy\")")
	flags.StringVar(&cfg.MachineType, "machine-type", "", "machine type (default $MACHINE_TYPE)")
	flags.StringVar(&cfg.AcceleratorType, "accelerator-type", "", "accelerator type (default $ACCELERATOR_TYPE)")
	flags.Int32Var(&cfg.AcceleratorCount, "accelerator-count", 0, "accelerators per replica (default $ACCELERATOR_COUNT)")
	flags.Int32Var(&cfg.MinReplicaCount, "min-replicas", 0, "minimum replicas (default $MIN_REPLICA_COUNT)")
	flags.Int32Var(&cfg.MaxReplicaCount, "max-replicas", 0, "maximum replicas (default $MAX_REPLICA_COUNT)")

	return cmd
}

func (a *app) endpointDeploymentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deployments [name]",
		Short: "List the models deployed to an endpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			name := a.displayName(args)
			deployed, res, err := lc.ListDeployments(ctx, name)
			if err != nil {
				return err
			}
			if res != endpoint.ResultApplied {
				return a.renderResult(name, res)
			}
			rows := make([][]string, 0, len(deployed))
			for _, dm := range deployed {
				rows = append(rows, []string{dm.ID, dm.DisplayName, dm.Model})
			}
			return a.render(deployed, []string{"Deployed Model ID", "Display Name", "Model"}, rows...)
		},
	}
}

func (a *app) endpointUndeployCommand() *cobra.Command {
	var deployedID, deployedName string
	cmd := &cobra.Command{
		Use:   "undeploy [name] (--id <deployed-model-id> | --name <display-name>)",
		Short: "Undeploy a model from an endpoint",
		Long: heredoc.Doc(`
			Undeploy a model from the endpoint named [name], selecting the deployment
			by its ID or by its display name. A missing endpoint or deployment is
			reported, not treated as an error.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			name := a.displayName(args)

			var res endpoint.Result
			if deployedID != "" {
				res, err = lc.UndeployByDeploymentID(ctx, name, deployedID)
			} else {
				res, err = lc.UndeployByDisplayName(ctx, name, deployedName)
			}
			if err != nil {
				return err
			}
			return a.renderResult(name, res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&deployedID, "id", "", "deployed model ID")
	flags.StringVar(&deployedName, "name", "", "deployed model display name")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
	cmd.MarkFlagsOneRequired("id", "name")

	return cmd
}

func (a *app) endpointDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete an endpoint with no deployed models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			name := a.displayName(args)
			res, err := lc.DeleteEndpoint(ctx, name)
			if err != nil {
				return err
			}
			return a.renderResult(name, res)
		},
	}
}

func (a *app) endpointTeardownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "teardown [name]",
		Short: "Undeploy every model from an endpoint, then delete it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lc, err := a.lifecycle(ctx)
			if err != nil {
				return err
			}
			name := a.displayName(args)
			res, err := lc.Teardown(ctx, name)
			if err != nil {
				return err
			}
			return a.renderResult(name, res)
		},
	}
}
