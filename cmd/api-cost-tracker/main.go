// api-cost-tracker - monthly API spend, projections and budget alerts.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/scriptkit/internal/cli"
	"github.com/jeranaias/scriptkit/internal/config"
	"github.com/jeranaias/scriptkit/internal/pricing"
	"github.com/jeranaias/scriptkit/internal/tracker"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		jsonOutput    bool
		timeout       time.Duration
		fetchInterval time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "api-cost-tracker",
		Short: "Track monthly API spend against budgets",
		Long: `Track month-to-date API spend per project and provider.

Reads usage, pricing and budgets from a config file, scrapes live prices
where configured, projects month-end spend from the recent run-rate, and
flags budgets at 90% or more.

The first run writes a starter config and exits. Edit it, then run again.

Config location: --config, else $API_COST_TRACKER_CONFIG, else
~/.config/api-cost-tracker/config.json (.toml and .yaml also accepted).`,
		Version: Version + " (" + GitCommit + ")",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return cli.WithExitCode(cli.ExitUsageError, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(configPath)
			if err != nil {
				return cli.WithExitCode(cli.ExitConfigError, err)
			}

			fetcher := pricing.NewHTTPFetcher()
			fetcher.Timeout = timeout

			logger := cli.NewLogger(cmd.ErrOrStderr(), verbose)
			logger.Debug("resolved config path", "path", path)

			return tracker.Run(cmd.Context(), tracker.Options{
				ConfigPath:       path,
				JSON:             jsonOutput,
				Styled:           cli.ColorsEnabled(),
				MinFetchInterval: fetchInterval,
				Fetcher:          fetcher,
				Stdout:           cmd.OutOrStdout(),
				Stderr:           cmd.ErrOrStderr(),
				Logger:           logger,
			})
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.WithExitCode(cli.ExitUsageError, err)
	})

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", pricing.DefaultTimeout, "Timeout for each pricing page fetch")
	cmd.Flags().DurationVar(&fetchInterval, "fetch-interval", 0, "Minimum delay between pricing page fetches")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	return cmd
}
