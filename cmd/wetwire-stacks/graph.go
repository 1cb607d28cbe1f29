package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-stacks-go/graph"
	"github.com/lex00/wetwire-stacks-go/manifest"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat     string
		clusterByService bool
	)

	cmd := &cobra.Command{
		Use:   "graph <manifest>",
		Short: "Generate a dependency graph of the stack",
		Long: `Generate a DOT or Mermaid graph showing resource dependencies.

The output can be rendered with Graphviz:
    wetwire-stacks graph stack.yaml | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    wetwire-stacks graph stack.yaml -f mermaid

Examples:
    wetwire-stacks graph stack.yaml
    wetwire-stacks graph stack.yaml -c            # cluster by service
    wetwire-stacks graph stack.yaml -f mermaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], outputFormat, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(manifestPath, format string, cluster bool) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	s, err := manifest.Build(m)
	if err != nil {
		return err
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
	}

	return gen.Generate(s, os.Stdout)
}
