// Package cli implements the causeview command-line interface.
//
// Every command that reads a causality tree follows the same path: load
// causeview.toml (see pkg/config), let explicitly set flags override it, read
// the tree named by the positional argument or [input] path, and hand the
// resulting state to a driver. serve exposes that driver over HTTP, tui over
// the keyboard, render once to a file.
//
// # Commands
//
//   - serve: Start the browser viewer and JSON/SVG API
//   - hello: Serve only the hello-world landing page
//   - tui: Scrub through steps in the terminal
//   - render: Write one step as SVG, JSON or DOT
//   - inspect: Print graph statistics and cluster colours
//   - export: Rewrite the input as normalized JSON or YAML
//
// # Logging
//
// --verbose (-v) enables debug output such as per-frame layout timings and
// cache hits. The logger rides on the command's context; frame-level lines
// carry a step field so output from scrubbing can be followed step by step.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger writing to w at level.
// Timestamps use centiseconds ("14:32:01.45") so consecutive frame renders
// are distinguishable.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// withStep returns a child logger that tags every line with the step threshold.
func withStep(l *log.Logger, step int) *log.Logger {
	return l.With("step", step)
}

// progress times one loading stage, such as reading the input tree.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to milliseconds, plus any
// structured fields:
//
//	14:32:01.45 INFO Loaded causality_tree.json (12ms) nodes=8 edges=8
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg+" ("+elapsed.String()+")", keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the command's handlers.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default when a
// handler runs outside the root command (as in tests).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
