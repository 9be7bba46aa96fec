package tabula

import (
	"fmt"
	"strings"
)

const (
	// debugMaxTreeDepth is the render tree depth above which a warning is
	// logged in debug mode.
	debugMaxTreeDepth = 32

	// debugMaxChildCount is the child count above which a warning is logged.
	debugMaxChildCount = 1000
)

// debugCheckNode warns about suspicious render trees once n has been
// attached. Only active in debug mode.
func (s *Scene) debugCheckNode(n *RenderNode) {
	if !s.debug {
		return
	}
	if depth := nodeDepth(n) + subtreeHeight(n) - 1; depth > debugMaxTreeDepth {
		s.logger.Warn("render tree too deep", "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
	if p := n.Parent; p != nil && len(p.children) > debugMaxChildCount {
		s.logger.Warn("too many children", "node", p.Name, "children", len(p.children), "threshold", debugMaxChildCount)
	}
}

// nodeDepth counts n and its ancestors.
func nodeDepth(n *RenderNode) int {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// subtreeHeight counts the nodes on the longest path from n down.
func subtreeHeight(n *RenderNode) int {
	h := 0
	for _, c := range n.children {
		h = max(h, subtreeHeight(c))
	}
	return h + 1
}

// DebugTree returns an indented dump of the render tree, one node per line.
func (s *Scene) DebugTree() string {
	var b strings.Builder
	var walk func(n *RenderNode, depth int)
	walk = func(n *RenderNode, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name)
		if c, ok := s.owners[n]; ok {
			fmt.Fprintf(&b, " [%s]", componentName(c))
		}
		if !n.Visible {
			b.WriteString(" hidden")
		}
		if n.Disabled {
			b.WriteString(" disabled")
		}
		b.WriteByte('\n')
		for _, child := range n.children {
			walk(child, depth+1)
		}
	}
	walk(s.root, 0)
	return b.String()
}
