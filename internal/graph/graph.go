package graph

import (
	"slices"
)

// Node is a bean in the dependency graph.
type Node struct {
	// Name is the unique bean name.
	Name string

	// Kind is a free-form label rendered by the visualizer (the bean scope).
	Kind string

	// Dependencies are the bean names this node depends on, in slot order.
	Dependencies []string
}

// Graph is a directed graph over bean names with an edge from every bean to
// each of its dependencies. Nodes keep their insertion order so traversal and
// error reporting are reproducible for a given input.
//
// A Graph is built once and is not safe for concurrent mutation.
type Graph struct {
	order []string
	nodes map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode adds a node, replacing any node with the same name while keeping
// its original position.
func (g *Graph) AddNode(node Node) {
	n := &Node{
		Name:         node.Name,
		Kind:         node.Kind,
		Dependencies: slices.Clone(node.Dependencies),
	}

	if _, exists := g.nodes[node.Name]; !exists {
		g.order = append(g.order, node.Name)
	}
	g.nodes[node.Name] = n
}

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}
	return Node{Name: n.Name, Kind: n.Kind, Dependencies: slices.Clone(n.Dependencies)}, true
}

// Dependencies returns the direct dependencies of a node.
func (g *Graph) Dependencies(name string) []string {
	if n, ok := g.nodes[name]; ok {
		return slices.Clone(n.Dependencies)
	}
	return nil
}

// Dependents returns the nodes that depend directly on name, in insertion order.
func (g *Graph) Dependents(name string) []string {
	var dependents []string
	for _, from := range g.order {
		if slices.Contains(g.nodes[from].Dependencies, name) {
			dependents = append(dependents, from)
		}
	}
	return dependents
}

// Size returns the number of nodes.
func (g *Graph) Size() int {
	return len(g.order)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.Dependencies)
	}
	return count
}

// Validate checks that every edge points at a known node and that the graph
// is acyclic. The first problem found is returned as a MissingNodeError or a
// CycleError. Traversal state lives only for the duration of the call.
func (g *Graph) Validate() error {
	for _, name := range g.order {
		for _, dep := range g.nodes[name].Dependencies {
			if _, ok := g.nodes[dep]; !ok {
				return &MissingNodeError{From: name, To: dep}
			}
		}
	}

	return g.detectCycles()
}

// IsAcyclic reports whether Validate finds no cycle.
func (g *Graph) IsAcyclic() bool {
	return g.detectCycles() == nil
}

// detectCycles is a depth-first traversal with three colours: unvisited,
// active (on the stack) and done.
func (g *Graph) detectCycles() error {
	var (
		stack  []string
		active = make(map[string]bool)
		done   = make(map[string]bool)
	)

	var visit func(name string) error
	visit = func(name string) error {
		if active[name] {
			start := slices.Index(stack, name)
			path := append(slices.Clone(stack[start:]), name)
			return &CycleError{Node: name, Path: path}
		}
		if done[name] {
			return nil
		}

		n, ok := g.nodes[name]
		if !ok {
			// Unknown targets are reported by Validate before traversal.
			done[name] = true
			return nil
		}

		active[name] = true
		stack = append(stack, name)

		for _, dep := range n.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(active, name)
		done[name] = true
		return nil
	}

	for _, name := range g.order {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}
