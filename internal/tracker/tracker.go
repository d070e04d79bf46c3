// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tracker runs the api-cost-tracker command: bootstrap or load the
// config, resolve prices, build the report and print it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jeranaias/scriptkit/internal/cli"
	"github.com/jeranaias/scriptkit/internal/config"
	"github.com/jeranaias/scriptkit/internal/cost"
	"github.com/jeranaias/scriptkit/internal/pricing"
	"github.com/jeranaias/scriptkit/internal/report"
)

// CommandName is used in JSON output and error messages.
const CommandName = "api-cost-tracker"

// Options configures a tracker run.
type Options struct {
	// ConfigPath is the resolved config file location
	ConfigPath string

	// JSON switches output to the JSONResponse envelope
	JSON bool

	// Styled decorates text output with terminal styles
	Styled bool

	// MinFetchInterval spaces pricing page fetches; zero disables pacing
	MinFetchInterval time.Duration

	// Fetcher retrieves pricing pages (default: HTTP with DefaultTimeout)
	Fetcher pricing.Fetcher

	// Now supplies the current time (default: time.Now)
	Now func() time.Time

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run executes one tracker invocation. When the config did not exist it
// writes the starter config, prints a notice and returns nil without
// producing a report. With JSON set, failures are also reported as the JSON
// error envelope on stdout.
func Run(ctx context.Context, opts Options) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Fetcher == nil {
		opts.Fetcher = pricing.NewHTTPFetcher()
	}
	if opts.Logger == nil {
		opts.Logger = cli.DiscardLogger()
	}

	if opts.JSON {
		return cli.OutputJSON(opts.Stdout, CommandName, func() (interface{}, error) {
			rep, err := prepare(ctx, opts, opts.Stderr)
			if err != nil {
				return nil, err
			}
			if rep == nil {
				return BootstrapResult{ConfigCreated: opts.ConfigPath}, nil
			}
			return rep, nil
		})
	}

	rep, err := prepare(ctx, opts, opts.Stdout)
	if err != nil || rep == nil {
		return err
	}

	var style func(report.LineKind, string) string
	if opts.Styled {
		style = styleLine
	}
	return rep.WriteText(opts.Stdout, style)
}

// BootstrapResult is the JSON data of a run that only wrote the starter
// config.
type BootstrapResult struct {
	ConfigCreated string `json:"configCreated"`
}

// prepare loads the config and builds the report. It returns a nil report
// after writing the bootstrap notice to notice.
func prepare(ctx context.Context, opts Options, notice io.Writer) (*report.Report, error) {
	created, err := config.EnsureExists(opts.ConfigPath)
	if err != nil {
		return nil, cli.WithExitCode(cli.ExitConfigError, err)
	}
	if created {
		fmt.Fprintf(notice, "Created a starter config at %s.\n", opts.ConfigPath)
		fmt.Fprintln(notice, "Edit it to match your providers, pricing, and usage before re-running the command.")
		return nil, nil
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, cli.WithExitCode(cli.ExitConfigError, err)
	}
	opts.Logger.Debug("loaded config", "path", opts.ConfigPath, "providers", len(cfg.Providers), "projects", len(cfg.Projects))

	if err := cfg.Validate(); err != nil {
		var verrs config.ValidateErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				fmt.Fprintf(opts.Stderr, "Warning: config: %s\n", v.Error())
			}
		}
	}

	resolver := pricing.NewResolver(opts.Fetcher).
		WithLogger(opts.Logger).
		WithMinInterval(opts.MinFetchInterval)
	prices := resolver.ResolveAll(ctx, cfg.Providers)

	return report.Build(cfg, prices, cost.CalendarFor(opts.Now())), nil
}

// styleLine maps report line kinds onto the shared CLI styles.
func styleLine(kind report.LineKind, text string) string {
	switch kind {
	case report.KindTitle:
		return cli.RenderConditional(cli.TitleStyle, text)
	case report.KindSection:
		return cli.RenderConditional(cli.SectionStyle, text)
	case report.KindPace:
		return cli.RenderConditional(cli.DimStyle, text)
	case report.KindAlert, report.KindMissing:
		return cli.RenderConditional(cli.WarningStyle, text)
	case report.KindSuggestion:
		return cli.RenderConditional(cli.HighlightStyle, text)
	default:
		return text
	}
}
