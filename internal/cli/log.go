// Package cli implements the region-hierarchy command-line interface.
//
// The binary doubles as an MCP server: run without a subcommand (or with
// "serve") it speaks JSON-RPC on stdin and stdout. The build subcommand runs
// the same pipeline once on a file and prints the forest.
//
// # Commands
//
//   - serve: Run the MCP server over stdio (the default)
//   - build: Build the containment forest of one image
//   - presets: List the named threshold presets
//
// # Logging
//
// Logs go to stderr so they never mix with protocol traffic. The level comes
// from log_level in the config file or REGION_HIERARCHY_LOG_LEVEL, and
// --verbose (-v) forces debug. The logger and the loaded config travel to
// subcommands through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/region-hierarchy/internal/config"
)

// newLogger creates a logger writing to w at the given level, with
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Built forest of 12 regions (4ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns a copy of the attached config, or
// config.Default(). Commands may modify the copy freely.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		c := *cfg
		return &c
	}
	return config.Default()
}
