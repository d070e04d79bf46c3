// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli holds the terminal plumbing shared by the api-cost-tracker and
// learning-snippets commands.
//
// # Key Types
//
//   - ExitError: An error that carries the process exit code
//   - CommandError: A failed command action with its reason
//   - JSONResponse: The envelope used by --json output
//
// # Usage
//
//	logger := cli.NewLogger(os.Stderr, verbose)
//	if err := run(ctx, logger); err != nil {
//	    cli.DisplayError(os.Stderr, err)
//	    os.Exit(cli.ExitCode(err))
//	}
//
// Styled output is produced only when stdout is a terminal; see
// ColorsEnabled for the NO_COLOR and FORCE_COLOR rules.
package cli
