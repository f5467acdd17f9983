package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/driver"
	"github.com/matzehuels/causeview/pkg/graph"
	"github.com/matzehuels/causeview/pkg/palette"
)

// inspectCommand prints a summary of the input without laying it out.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print graph statistics and cluster colours",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: completeInputFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			g, err := graph.ReadFile(cfg.Input.Path)
			if err != nil {
				return err
			}
			state := driver.NewAppState(g, palette.Tab20)
			state.Colors = state.Colors.WithNeutral(cfg.Scene.NeutralColor)

			fmt.Println(StyleTitle.Render(cfg.Input.Path))
			printKeyValue("nodes", strconv.Itoa(g.NodeCount()))
			printKeyValue("edges", strconv.Itoa(g.EdgeCount()))
			printKeyValue("roots", strconv.Itoa(len(g.Sources())))
			printKeyValue("steps", fmt.Sprintf("%d..%d", state.MinStep, state.MaxStep))
			printKeyValue("clusters", strconv.Itoa(state.Colors.Len()))
			printNewline()
			printClusters(state.Colors.Map(), state.Colors.Clusters())
			return nil
		},
	}
	return cmd
}
