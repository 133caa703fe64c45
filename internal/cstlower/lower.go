// Package cstlower walks a concrete syntax tree down into a flat list of
// three-address pseudocode lines.
package cstlower

import (
	"fmt"
	"strings"

	"github.com/tinylangtools/tinytool/internal/cst"
)

// Lower returns tree's three-address pseudocode: every single-child node
// is collapsed into its child before emission; each surviving interior
// node is assigned a fresh temporary t_k and contributes two lines -- a
// binding "label = t_k" followed by an assignment
// "t_k(label) := child1 child2 ..." built from its children's labels or
// their own temporaries -- with a node's pair of lines always preceding
// its children's.
//
// Collapsing only one level of single-child wrapping per recursive call,
// rather than the whole vertical chain, would for a chain deeper than two
// hops leave a line referencing a temporary that was never bound. This
// collapses the full chain up front instead, so every temporary this
// emits is always bound by an earlier line in the same output.
func Lower(tree *cst.Node) []string {
	collapsed := collapse(tree)
	if collapsed == nil || len(collapsed.Children) == 0 {
		return nil
	}

	var lines []string
	counter := 1
	emit(collapsed, &counter, &lines)
	return lines
}

// collapse replaces every node with exactly one child by that child,
// recursively, so a chain of single-child reductions disappears entirely
// before emission.
func collapse(n *cst.Node) *cst.Node {
	if n == nil {
		return nil
	}
	if len(n.Children) == 1 {
		return collapse(n.Children[0])
	}
	if len(n.Children) == 0 {
		return n
	}

	children := make([]*cst.Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = collapse(c)
	}
	return cst.New(n.Label, children...)
}

// emit appends n's own two lines (if n is interior) ahead of its
// children's, and returns the symbol a parent should reference for n:
// n's label for a leaf, or n's freshly allocated temporary for an
// interior node.
func emit(n *cst.Node, counter *int, lines *[]string) string {
	if len(n.Children) == 0 {
		return n.Label
	}

	temp := fmt.Sprintf("t%d", *counter)
	*counter++

	*lines = append(*lines, fmt.Sprintf("%s = %s", n.Label, temp))
	assignIndex := len(*lines)
	*lines = append(*lines, "")

	childRefs := make([]string, len(n.Children))
	for i, c := range n.Children {
		childRefs[i] = emit(c, counter, lines)
	}

	(*lines)[assignIndex] = fmt.Sprintf("%s(%s) := %s", temp, n.Label, strings.Join(childRefs, " "))

	return temp
}
