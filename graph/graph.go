// Package graph renders a stack's dependency graph in DOT or Mermaid format.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/lex00/wetwire-stacks-go/stack"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from built stacks.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the stack's dependency graph to w.
func (g *Generator) Generate(s *stack.Stack, w io.Writer) error {
	graph := g.buildGraph(s)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(s *stack.Stack) (string, error) {
	var sb strings.Builder
	if err := g.Generate(s, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(s *stack.Stack) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := s.Resources()

	if g.ClusterByService {
		g.addClusteredNodes(graph, s, names)
	} else {
		for _, name := range names {
			n := graph.Node(name)
			n.Label(name + "\\n[" + s.ResourceType(name) + "]")
		}
	}

	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	for _, name := range names {
		for _, dep := range s.Dependencies(name) {
			// Parameters and pseudo references have no node.
			if !known[dep] {
				continue
			}
			graph.Edge(graph.Node(name), graph.Node(dep))
		}
	}

	return graph
}

// addClusteredNodes groups resources by AWS service, one cluster per service
// that has more than one resource.
func (g *Generator) addClusteredNodes(graph *dot.Graph, s *stack.Stack, names []string) {
	serviceResources := make(map[string][]string)
	var services []string

	for _, name := range names {
		service := extractService(s.ResourceType(name))
		if _, seen := serviceResources[service]; !seen {
			services = append(services, service)
		}
		serviceResources[service] = append(serviceResources[service], name)
	}

	for _, service := range services {
		resNames := serviceResources[service]
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + s.ResourceType(name) + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + s.ResourceType(name) + "]")
			}
		}
	}
}

// extractService pulls the service segment out of a CloudFormation type.
// e.g. "AWS::EC2::VPC" -> "EC2".
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
