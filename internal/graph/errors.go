package graph

import (
	"fmt"
	"strings"
)

// CycleError reports a cycle in the bean graph. Node is the bean that was
// reached a second time while still on the traversal stack.
type CycleError struct {
	Node string
	Path []string
}

func (e CycleError) Error() string {
	var b strings.Builder
	b.WriteString("dependency graph is cyclic, the cycle contains bean: ")
	b.WriteString(e.Node)

	if len(e.Path) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Path, " -> "))
		b.WriteString(")")
	}

	return b.String()
}

// MissingNodeError reports an edge whose target was never added to the graph.
type MissingNodeError struct {
	From string
	To   string
}

func (e MissingNodeError) Error() string {
	return fmt.Sprintf("bean %q depends on undefined bean %q", e.From, e.To)
}
