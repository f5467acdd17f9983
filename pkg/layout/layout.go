package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/causeview/pkg/causal"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

// Engine names accepted by [New].
const (
	EngineDot    = "dot"
	EngineSpring = "spring"
)

// Position is a node centre in layout coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node IDs to their centres.
type Positions map[string]Position

// Strategy computes positions for every node of a graph.
type Strategy interface {
	// Name identifies the algorithm in logs, metrics and frames.
	Name() string
	// Layout returns one position per node of g.
	Layout(ctx context.Context, g *causal.Graph) (Positions, error)
}

// Result is the outcome of a [Fallback] layout.
type Result struct {
	Positions Positions
	Strategy  string        // Name of the strategy that produced Positions
	Degraded  bool          // True when the secondary strategy was used
	Warning   error         // LAYOUT_UNAVAILABLE error describing the primary failure
	Duration  time.Duration // Wall time spent across all attempts
}

// Fallback runs Primary and falls back to Secondary when Primary is nil or
// fails. The primary is attempted once per call; there are no retries.
type Fallback struct {
	Primary   Strategy
	Secondary Strategy
	Logger    *log.Logger
}

// Layout computes positions for g.
//
// A primary failure is recovered when a secondary strategy exists: the
// returned error is nil and Result.Warning carries the failure. Only a
// secondary failure (or a primary failure with no secondary) is returned as
// an error.
func (f Fallback) Layout(ctx context.Context, g *causal.Graph) (Result, error) {
	start := time.Now()
	logger := f.Logger
	if logger == nil {
		logger = log.Default()
	}

	var warning error
	if f.Primary != nil {
		pos, err := f.Primary.Layout(ctx, g)
		if err == nil {
			return Result{Positions: pos, Strategy: f.Primary.Name(), Duration: time.Since(start)}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		warning = cverrors.Wrap(cverrors.ErrCodeLayoutUnavailable, err, "%s layout failed", f.Primary.Name())
	} else {
		warning = cverrors.New(cverrors.ErrCodeLayoutUnavailable, "no primary layout configured")
	}

	if f.Secondary == nil {
		return Result{}, warning
	}

	logger.Debug("falling back to secondary layout", "strategy", f.Secondary.Name(), "reason", warning)
	pos, err := f.Secondary.Layout(ctx, g)
	if err != nil {
		return Result{}, fmt.Errorf("%s layout: %w", f.Secondary.Name(), err)
	}
	return Result{
		Positions: pos,
		Strategy:  f.Secondary.Name(),
		Degraded:  true,
		Warning:   warning,
		Duration:  time.Since(start),
	}, nil
}

// Options selects and tunes the layout strategies built by [New].
type Options struct {
	Engine     string // EngineDot (default) or EngineSpring
	RankDir    RankDir
	Seed       uint64
	Iterations int
	Logger     *log.Logger
}

// New builds the layout selector for opts.
//
// With EngineDot the selector tries Graphviz first and falls back to the
// seeded spring layout. With EngineSpring Graphviz is never used and no
// warning is produced.
func New(opts Options) (Fallback, error) {
	spring := NewForceDirected(opts.Seed)
	if opts.Iterations > 0 {
		spring.Iterations = opts.Iterations
	}

	switch opts.Engine {
	case "", EngineDot:
		return Fallback{Primary: NewHierarchical(opts.RankDir), Secondary: spring, Logger: opts.Logger}, nil
	case EngineSpring:
		return Fallback{Primary: spring, Logger: opts.Logger}, nil
	default:
		return Fallback{}, cverrors.New(cverrors.ErrCodeInvalidConfig, "unknown layout engine %q (want %s or %s)", opts.Engine, EngineDot, EngineSpring)
	}
}
