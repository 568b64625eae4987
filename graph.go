package beans

import (
	"fmt"
	"io"

	"github.com/junioryono/beans/internal/graph"
)

// GraphFormat selects the rendering of WriteGraph.
type GraphFormat int

const (
	// GraphText renders a human readable listing with statistics.
	GraphText GraphFormat = iota

	// GraphDOT renders Graphviz DOT.
	GraphDOT
)

func (f GraphFormat) String() string {
	switch f {
	case GraphText:
		return "text"
	case GraphDOT:
		return "dot"
	default:
		return fmt.Sprintf("GraphFormat(%d)", int(f))
	}
}

// WriteGraph renders the bean dependency graph to w. It reads definitions
// only and works before Start, which makes it useful for inspecting a graph
// that failed validation.
func (c *Context) WriteGraph(w io.Writer, format GraphFormat) error {
	v := graph.NewVisualizer(c.dependencyGraph())

	switch format {
	case GraphText:
		return v.WriteText(w)
	case GraphDOT:
		return v.WriteDOT(w)
	default:
		return fmt.Errorf("unknown graph format %s", format)
	}
}
