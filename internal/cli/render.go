package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/causal"
	"github.com/matzehuels/causeview/pkg/driver"
	cverrors "github.com/matzehuels/causeview/pkg/errors"
	"github.com/matzehuels/causeview/pkg/layout"
	"github.com/matzehuels/causeview/pkg/scene"
)

// Output formats for the render command.
const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatDOT  = "dot"
)

var renderFormats = []string{formatSVG, formatJSON, formatDOT}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path; empty writes to stdout
	format string // svg, json or dot
	step   int    // step threshold; unset selects the minimum step
	height int    // SVG height in pixels
	layout layoutFlags
}

// renderCommand creates the render command for writing a single frame.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render one step of a causality tree",
		Long: `Render the causality tree filtered at --step and write it as SVG, as the
frame JSON served to the browser viewer, or as the Graphviz DOT source used
for the hierarchical layout.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: completeInputFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if err := opts.layout.apply(cmd, &cfg); err != nil {
				return err
			}
			if !cmd.Flags().Changed("height") {
				opts.height = cfg.Server.Height
			}

			rt, err := newRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			step := rt.state.MinStep
			if cmd.Flags().Changed("step") {
				step = opts.step
			}
			return runRender(cmd.Context(), rt, step, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), json, dot")
	cmd.Flags().IntVar(&opts.step, "step", 0, "step threshold (default: lowest step in the input)")
	cmd.Flags().IntVar(&opts.height, "height", 800, "SVG height in pixels")
	opts.layout.register(cmd)

	return cmd
}

// validateFormat checks that format is a supported output format.
func validateFormat(format string) error {
	if !slices.Contains(renderFormats, format) {
		return cverrors.New(cverrors.ErrCodeInvalidInput, "invalid format: %s (must be svg, json, or dot)", format)
	}
	return nil
}

func runRender(ctx context.Context, rt *runtime, step int, opts *renderOpts) error {
	var data []byte
	if opts.format == formatDOT {
		clamped := rt.state.Clamp(step)
		dot, _ := layout.ToDOT(causal.Filter(rt.state.Graph, clamped), layout.RankDir(rt.cfg.Layout.RankDir))
		data = []byte(dot)
	} else {
		spinner := newSpinnerWithContext(ctx, "Laying out...")
		if opts.output != "" {
			spinner.Start()
		}
		frame, err := rt.driver.SetStep(ctx, step)
		if err != nil {
			if opts.output != "" {
				spinner.StopWithError("Layout failed")
			}
			return err
		}
		withStep(loggerFromContext(ctx), frame.Step).Debug("frame ready",
			"strategy", frame.Strategy, "cached", frame.Cached, "duration", frame.Duration)
		if opts.output != "" {
			spinner.StopWithSuccess(fmt.Sprintf("Rendered step %d (%s layout)", frame.Step, frame.Strategy))
		}
		if data, err = encodeFrame(frame, opts); err != nil {
			return err
		}
		if opts.output != "" {
			printStats(frame.Nodes, frame.Edges, frame.Cached)
		}
	}

	return writeOutput(opts.output, data)
}

func encodeFrame(frame *driver.Frame, opts *renderOpts) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(frame); err != nil {
			return nil, err
		}
	default:
		if err := scene.RenderSVG(&buf, frame.Scene, scene.SVGOptions{Title: frame.Title, Height: opts.height}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := io.Copy(os.Stdout, bytes.NewReader(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
