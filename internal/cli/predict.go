// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-a2a/vertexops/inference"
	"github.com/go-a2a/vertexops/internal/config"
)

type predictFlags struct {
	endpoint string
	sampling inference.Sampling
}

func (f *predictFlags) register(flags *pflag.FlagSet, defaults inference.Sampling) {
	f.sampling = defaults
	flags.StringVarP(&f.endpoint, "endpoint", "e", "", "endpoint display name (default $ENDPOINT_DISPLAY_NAME)")
	flags.IntVar(&f.sampling.MaxTokens, "max-tokens", defaults.MaxTokens, "maximum tokens to generate")
	flags.Float64Var(&f.sampling.Temperature, "temperature", defaults.Temperature, "sampling temperature")
	flags.Float64Var(&f.sampling.TopP, "top-p", defaults.TopP, "nucleus sampling probability")
}

func (a *app) renderCompletion(endpointName, content string) error {
	if a.output == outputJSON {
		out := struct {
			Endpoint string `json:"endpoint"`
			Content  string `json:"content"`
		}{endpointName, content}
		return a.render(out, nil)
	}
	_, err := a.stdout.Write([]byte(content + "\n"))
	return err
}

func (a *app) predictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Send chat completion requests to a deployed model",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, config.KeyProjectID, config.KeyLocation)
		},
	}

	cmd.AddCommand(
		a.predictTextCommand(),
		a.predictChatCommand(),
	)

	return cmd
}

func (a *app) predictTextCommand() *cobra.Command {
	f := &predictFlags{}
	cmd := &cobra.Command{
		Use:   "text <prompt>...",
		Short: "Send a single prompt as a user message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.inference(ctx)
			if err != nil {
				return err
			}
			name := cmp.Or(f.endpoint, a.cfg.EndpointDisplayName)
			content, err := c.PredictText(ctx, strings.Join(args, " "), name, f.sampling)
			if err != nil {
				return err
			}
			return a.renderCompletion(name, content)
		},
	}
	f.register(cmd.Flags(), inference.DefaultTextSampling())
	return cmd
}

func (a *app) predictChatCommand() *cobra.Command {
	var messages []string
	f := &predictFlags{}
	cmd := &cobra.Command{
		Use:   "chat --message role=content...",
		Short: "Send a conversation",
		Long: heredoc.Doc(`
			Send a conversation to the endpoint. Each --message is "role=content"
			with role one of system, user or assistant. A message without "=" is
			sent as a user message.
		`),
		Example: heredoc.Doc(`
			vertexops predict chat \
			  --message "system=You are a concise assistant." \
			  --message "user=What is Vertex AI?"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs := make([]inference.Message, 0, len(messages))
			for _, s := range messages {
				m, err := inference.ParseMessage(s)
				if err != nil {
					return err
				}
				msgs = append(msgs, m)
			}

			ctx := cmd.Context()
			c, err := a.inference(ctx)
			if err != nil {
				return err
			}
			name := cmp.Or(f.endpoint, a.cfg.EndpointDisplayName)
			content, err := c.ChatCompletion(ctx, msgs, name, f.sampling)
			if err != nil {
				return err
			}
			return a.renderCompletion(name, content)
		},
	}
	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "message as role=content, repeatable")
	_ = cmd.MarkFlagRequired("message")
	f.register(cmd.Flags(), inference.DefaultChatSampling())
	return cmd
}
