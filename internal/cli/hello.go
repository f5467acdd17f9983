package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/config"
	"github.com/matzehuels/causeview/pkg/server"
)

// helloCommand serves only the landing page. It needs no input file.
func (c *CLI) helloCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Serve the hello-world landing page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(c.configPath, c.Logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			printInfo("Serving hello page on %s", cfg.Server.Addr)
			return server.ListenAndServe(ctx, cfg.Server.Addr, server.HelloHandler(loggerFromContext(ctx)), loggerFromContext(ctx))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8080", "listen address")
	return cmd
}
