package beans

import (
	"errors"

	"github.com/junioryono/beans/internal/graph"
)

// dependencyGraph builds the bean graph from the current definitions.
// Nodes follow registration order, edges follow slot order.
func (c *Context) dependencyGraph() *graph.Graph {
	g := graph.New()
	for _, d := range c.descriptors {
		g.AddNode(graph.Node{
			Name:         d.name,
			Kind:         d.scope.String(),
			Dependencies: c.dependencies[d.name],
		})
	}
	return g
}

// validate checks that every slot target is defined and that the graph is
// acyclic. It only reads the definitions.
func (c *Context) validate() error {
	err := c.dependencyGraph().Validate()

	var missing *graph.MissingNodeError
	if errors.As(err, &missing) {
		return MissingDependencyError{Bean: missing.From, Dependency: missing.To}
	}

	return err
}
