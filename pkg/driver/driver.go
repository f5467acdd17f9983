package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/causeview/pkg/cache"
	"github.com/matzehuels/causeview/pkg/causal"
	"github.com/matzehuels/causeview/pkg/layout"
	"github.com/matzehuels/causeview/pkg/observability"
	"github.com/matzehuels/causeview/pkg/scene"
)

// Status is the logical state of a driver.
type Status int32

const (
	StatusIdle Status = iota
	StatusRendering
)

func (s Status) String() string {
	if s == StatusRendering {
		return "rendering"
	}
	return "idle"
}

// Frame is one rendered step.
type Frame struct {
	ID       uuid.UUID     `json:"id"`
	Step     int           `json:"step"`
	Title    string        `json:"title"`
	Scene    scene.Scene   `json:"scene"`
	Strategy string        `json:"strategy"`
	Warning  string        `json:"warning,omitempty"`
	Nodes    int           `json:"nodes"`
	Edges    int           `json:"edges"`
	Duration time.Duration `json:"duration_ns"`
	Cached   bool          `json:"cached"`
}

// Title formats the frame heading for step.
func Title(step int) string {
	return fmt.Sprintf("Causality tree (step ≤ %d)", step)
}

// Options configures a [Driver].
type Options struct {
	Layout layout.Fallback
	Scene  scene.Options
	// Cache memoises frames per step. Nil disables memoisation.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *log.Logger
}

// Driver owns the current step and renders frames on demand.
type Driver struct {
	state  AppState
	opts   Options
	logger *log.Logger

	mu     sync.Mutex // serialises renders
	step   int
	status atomic.Int32
}

// New creates a driver positioned at state.MinStep. No frame is rendered
// until [Driver.Render] or [Driver.SetStep] is called.
func New(state AppState, opts Options) *Driver {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Layout.Logger == nil {
		opts.Layout.Logger = logger
	}
	if opts.Cache != nil {
		opts.Cache = cache.NewInstrumented(opts.Cache, "frame")
	}
	return &Driver{state: state, opts: opts, logger: logger, step: state.MinStep}
}

// State returns the shared application state.
func (d *Driver) State() AppState { return d.state }

// Step returns the current step.
func (d *Driver) Step() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// Range returns the inclusive step bounds.
func (d *Driver) Range() (min, max int) { return d.state.MinStep, d.state.MaxStep }

// Status reports whether a render is in progress.
func (d *Driver) Status() Status { return Status(d.status.Load()) }

// SetStep clamps step into range, makes it current and renders it.
func (d *Driver) SetStep(ctx context.Context, step int) (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.step = d.state.Clamp(step)
	return d.render(ctx, d.step)
}

// RenderStep renders step clamped into range without changing the current
// step. Concurrent viewers use it so they do not move each other's slider.
func (d *Driver) RenderStep(ctx context.Context, step int) (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render(ctx, d.state.Clamp(step))
}

// Render re-renders the current step.
func (d *Driver) Render(ctx context.Context) (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render(ctx, d.step)
}

// render must be called with d.mu held.
func (d *Driver) render(ctx context.Context, step int) (frame *Frame, err error) {
	d.status.Store(int32(StatusRendering))
	defer d.status.Store(int32(StatusIdle))

	start := time.Now()
	defer func() {
		observability.Driver().OnRenderComplete(ctx, step, time.Since(start), err)
	}()

	key := d.cacheKey(step)
	if f, ok := d.cached(ctx, key); ok {
		f.ID = uuid.New()
		f.Cached = true
		d.logger.Debug("frame from cache", "step", step)
		return f, nil
	}

	sub := causal.Filter(d.state.Graph, step)
	observability.Driver().OnFilter(ctx, step, sub.NodeCount(), sub.EdgeCount())

	res, err := d.opts.Layout.Layout(ctx, sub)
	observability.Driver().OnLayoutComplete(ctx, res.Strategy, res.Degraded, res.Duration, err)
	if err != nil {
		return nil, fmt.Errorf("layout step %d: %w", step, err)
	}

	frame = &Frame{
		ID:       uuid.New(),
		Step:     step,
		Title:    Title(step),
		Scene:    scene.Build(sub, res.Positions, d.state.Colors, d.opts.Scene),
		Strategy: res.Strategy,
		Nodes:    sub.NodeCount(),
		Edges:    sub.EdgeCount(),
	}
	if res.Warning != nil {
		frame.Warning = res.Warning.Error()
		d.logger.Warn("layout degraded", "step", step, "strategy", res.Strategy, "err", res.Warning)
	}
	frame.Duration = time.Since(start)

	d.logger.Debug("rendered frame", "step", step, "nodes", frame.Nodes, "edges", frame.Edges, "strategy", frame.Strategy, "duration", frame.Duration)
	d.store(ctx, key, frame)
	return frame, nil
}

func (d *Driver) cacheKey(step int) string {
	primary := ""
	if d.opts.Layout.Primary != nil {
		primary = d.opts.Layout.Primary.Name()
	}
	return cache.Key("frame", d.state.Fingerprint, step, primary, d.opts.Scene)
}

func (d *Driver) cached(ctx context.Context, key string) (*Frame, bool) {
	if d.opts.Cache == nil {
		return nil, false
	}
	data, hit, err := d.opts.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		_ = d.opts.Cache.Delete(ctx, key)
		return nil, false
	}
	return &f, true
}

func (d *Driver) store(ctx context.Context, key string, f *Frame) {
	if d.opts.Cache == nil {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := d.opts.Cache.Set(ctx, key, data, d.opts.CacheTTL); err != nil {
		d.logger.Debug("frame cache write failed", "err", err)
	}
}
