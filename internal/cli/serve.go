package cli

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/observability/prom"
	"github.com/matzehuels/causeview/pkg/server"
)

type serveOpts struct {
	addr    string
	title   string
	height  int
	metrics bool
	layout  layoutFlags
}

// serveCommand creates the serve command that runs the browser viewer.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{metrics: true}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interactive causality tree viewer",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: completeInputFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("title") {
				cfg.Server.Title = opts.title
			}
			if cmd.Flags().Changed("height") {
				cfg.Server.Height = opts.height
			}
			if err := opts.layout.apply(cmd, &cfg); err != nil {
				return err
			}

			rt, err := newRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			srvOpts := server.Options{
				Title:  cfg.Server.Title,
				Height: cfg.Server.Height,
				Cache:  rt.cache,
				Logger: logger,
			}
			if opts.metrics {
				srvOpts.Metrics = registerMetrics()
			}

			// Render the first frame up front so layout problems show at startup.
			frame, err := rt.driver.Render(ctx)
			if err != nil {
				return err
			}
			withStep(logger, frame.Step).Debug("first frame", "strategy", frame.Strategy, "duration", frame.Duration)
			if frame.Warning != "" {
				printWarning("Hierarchical layout unavailable, using spring layout")
				printDetail("%s", frame.Warning)
			}

			printSuccess("Loaded %d nodes, %d edges (steps %d..%d)",
				rt.state.Graph.NodeCount(), rt.state.Graph.EdgeCount(), rt.state.MinStep, rt.state.MaxStep)
			printNextStep("Open the viewer", StyleLink.Render(viewURL(cfg.Server.Addr)))

			return server.ListenAndServe(ctx, cfg.Server.Addr, server.New(rt.driver, srvOpts).Handler(), logger)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "0.0.0.0:8080", "listen address")
	cmd.Flags().StringVar(&opts.title, "title", "Causality tree", "viewer page title")
	cmd.Flags().IntVar(&opts.height, "height", 800, "plot height in pixels")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics on /metrics")
	opts.layout.register(cmd)

	return cmd
}

// registerMetrics installs Prometheus hooks and returns the /metrics handler.
func registerMetrics() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom.New(reg).Register()
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// viewURL turns a listen address into a browsable viewer URL.
func viewURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/view"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/view"
}
