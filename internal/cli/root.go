// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/vertexops"
)

// Execute runs the vertexops command line with os.Args.
func Execute(ctx context.Context) error {
	return Run(ctx, os.Stdout, os.Stderr)
}

// Run runs the vertexops command line with os.Args, writing results to stdout and logs to stderr.
func Run(ctx context.Context, stdout, stderr io.Writer) error {
	a := newApp(stdout, stderr)
	return a.execute(ctx, a.rootCommand())
}

// execute runs cmd and closes the clients opened by its subcommand, whether or not it fails.
// cobra skips the post-run hooks of a failed command.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, a.close())
	}()
	return cmd.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vertexops",
		Short: "Operate LLM deployments on Google Cloud Vertex AI",
		Long: heredoc.Doc(`
			vertexops moves model weights between a local directory and a bucket,
			registers models, manages Vertex AI endpoints and sends chat completion
			requests to deployed models.

			Settings are read from the environment and from a .env file in the
			working directory. Process environment values take precedence.
		`),
		Version:       vertexops.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default \".env\" when present)")
	flags.StringVarP(&a.output, "output", "o", outputTable, "output format: table or json")
	flags.BoolVar(&a.dryRun, "dry-run", false, "use in-memory backends instead of Google Cloud")

	cmd.AddCommand(
		a.bucketCommand(),
		a.modelCommand(),
		a.endpointCommand(),
		a.predictCommand(),
	)

	return cmd
}
