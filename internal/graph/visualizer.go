package graph

import (
	"fmt"
	"io"
	"strings"
)

// Visualizer provides methods to visualize the dependency graph
type Visualizer struct {
	graph *Graph
}

// NewVisualizer creates a new graph visualizer
func NewVisualizer(graph *Graph) *Visualizer {
	return &Visualizer{graph: graph}
}

// WriteDOT writes the graph in Graphviz DOT format
func (v *Visualizer) WriteDOT(w io.Writer) error {
	var b strings.Builder

	b.WriteString("digraph beans {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	for _, name := range v.graph.order {
		node := v.graph.nodes[name]
		fmt.Fprintf(&b, "  %q [label=\"%s\", fillcolor=\"%s\", style=filled];\n",
			name, v.formatNodeLabel(node), nodeColor(node.Kind))
	}

	for _, name := range v.graph.order {
		for _, dep := range v.graph.nodes[name].Dependencies {
			fmt.Fprintf(&b, "  %q -> %q;\n", name, dep)
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText writes a text representation of the graph
func (v *Visualizer) WriteText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Bean Graph:\n")
	b.WriteString("===========\n\n")

	for _, name := range v.graph.order {
		v.writeNodeDetails(&b, v.graph.nodes[name], "  ")
	}

	b.WriteString("\n")
	v.writeStatistics(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

// formatNodeLabel creates a label for a node
func (v *Visualizer) formatNodeLabel(node *Node) string {
	if node.Kind == "" {
		return node.Name
	}
	return fmt.Sprintf("%s\\n(%s)", node.Name, node.Kind)
}

// nodeColor picks a fill colour by bean kind
func nodeColor(kind string) string {
	switch strings.ToLower(kind) {
	case "singleton":
		return "lightblue"
	case "prototype":
		return "lightyellow"
	default:
		return "white"
	}
}

// writeNodeDetails writes detailed information about a node
func (v *Visualizer) writeNodeDetails(b *strings.Builder, node *Node, indent string) {
	if node.Kind != "" {
		fmt.Fprintf(b, "%s%s (%s)\n", indent, node.Name, node.Kind)
	} else {
		fmt.Fprintf(b, "%s%s\n", indent, node.Name)
	}

	if len(node.Dependencies) > 0 {
		fmt.Fprintf(b, "%s  Dependencies: [%s]\n", indent, strings.Join(node.Dependencies, ", "))
	}

	if dependents := v.graph.Dependents(node.Name); len(dependents) > 0 {
		fmt.Fprintf(b, "%s  Dependents: [%s]\n", indent, strings.Join(dependents, ", "))
	}
}

// writeStatistics writes graph statistics
func (v *Visualizer) writeStatistics(b *strings.Builder) {
	b.WriteString("Statistics:\n")
	b.WriteString("-----------\n")
	fmt.Fprintf(b, "  Total nodes: %d\n", v.graph.Size())
	fmt.Fprintf(b, "  Total edges: %d\n", v.graph.EdgeCount())

	if v.graph.IsAcyclic() {
		b.WriteString("  Cycles: None (graph is acyclic)\n")
	} else {
		b.WriteString("  Cycles: DETECTED (graph contains circular dependencies)\n")
	}
}
