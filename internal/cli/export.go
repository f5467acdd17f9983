package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/causeview/pkg/graph"
)

// exportCommand rewrites the input with every default made explicit.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Rewrite the input as normalized JSON or YAML",
		Long: `Read the causality tree, apply defaults (step 1, count 1) and write it back
with nodes and edges in input order. The output format follows the file
extension of --output, or --format when writing to stdout.`,
		Args: cobra.MaximumNArgs(1),
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
			if output == "" {
				return graph.Write(g, os.Stdout, graph.Format(format))
			}
			if err := graph.WriteFile(g, output); err != nil {
				return err
			}
			printSuccess("Exported %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml or .yml; default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(graph.FormatJSON), "stdout format: json, yaml")
	return cmd
}
