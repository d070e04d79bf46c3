// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnvVar turns on debug logging for every command when set to 1/true.
const DebugEnvVar = "SCRIPTKIT_DEBUG"

// NewLogger returns a text logger writing to w. Diagnostics stay at WARN
// unless verbose is set or DebugEnvVar is enabled.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose || debugFromEnv() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DiscardLogger returns a logger that drops everything. Used by tests and as
// the zero value for optional loggers.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func debugFromEnv() bool {
	v := strings.ToLower(os.Getenv(DebugEnvVar))
	return v == "1" || v == "true"
}
