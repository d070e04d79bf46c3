// learning-snippets - save, search and insert personal code snippets.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/scriptkit/internal/cli"
	"github.com/jeranaias/scriptkit/internal/clipboard"
	"github.com/jeranaias/scriptkit/internal/export"
	"github.com/jeranaias/scriptkit/internal/snippet"
	"github.com/jeranaias/scriptkit/internal/storage"
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
		dir      string
		notebook string
		plain    bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "learning-snippets [action] [input] [extra]",
		Short: "Save, search, and insert personal learning snippets",
		Long: snippet.Usage + `

Actions:
  save    [input='Title | tags | language | notes'] [extra=tags]
  search  [input=query]
  insert  [input=query] [extra='var=value, var2=value2']

An unknown or missing action searches. Flags go before the action; everything
after it is taken literally, so queries may start with "-".`,
		Version: Version + " (" + GitCommit + ")",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(3)(cmd, args); err != nil {
				return cli.WithExitCode(cli.ExitUsageError, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			action, input, extra := arg(args, 0), arg(args, 1), arg(args, 2)
			logger := cli.NewLogger(cmd.ErrOrStderr(), verbose)

			storeDir, err := storage.Locate(storage.DefaultDirs(dir)...)
			if err != nil {
				logger.Debug("no storage directory", "error", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "Unable to create a storage directory for snippets.")
				return cli.SilentExit(cli.ExitGeneralError)
			}
			logger.Debug("using storage directory", "dir", storeDir)

			m := &snippet.Manager{
				Store:     storage.NewSnippetStore(storeDir),
				Clipboard: clipboard.System{},
				Notebook:  export.NewNotebook(export.NotebookPath(notebook)),
				Stdout:    cmd.OutOrStdout(),
				Stderr:    cmd.ErrOrStderr(),
				Logger:    logger,
			}
			if !plain && cli.ColorsEnabled() {
				m.Render = cli.RenderMarkdown
			}
			return m.Run(action, input, extra)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.WithExitCode(cli.ExitUsageError, err)
	})

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&dir, "dir", "", "Snippet storage directory (default: $LEARNING_SNIPPETS_DIR or the user config dir)")
	cmd.Flags().StringVar(&notebook, "notebook", "", "Markdown notebook file or folder (default: $LEARNING_SNIPPET_NOTEBOOK)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text instead of rendered Markdown")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	return cmd
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
