// Package cst defines the concrete syntax tree node the parser driver
// builds and the three-address lowering consumes.
package cst

import (
	"fmt"
	"strings"
)

// Node is one CST node: a label plus an ordered list of children, owned
// by their parent. The tree is finite and acyclic.
type Node struct {
	Label    string
	Children []*Node
}

// Leaf returns a childless Node labeled label -- a shifted terminal,
// labeled per the parser's lexeme-formatting rule.
func Leaf(label string) *Node {
	return &Node{Label: label}
}

// New returns a Node labeled label with the given children, in order --
// the result of a reduction.
func New(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Yield returns the labels of every leaf in the tree, left to right.
// Every successful parse yields a CST whose yield equals the input
// token sequence.
func (n *Node) Yield() []string {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 {
		return []string{n.Label}
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Yield()...)
	}
	return out
}

// String renders a prettified, line-by-line representation of the tree,
// suitable for use in test comparisons. A full textual pretty-printer is
// an external collaborator, but tests still need a deterministic way to
// assert tree shape, so this follows the same indented-branch layout as
// ParseTree.leveledStr.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, "", "")
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, firstPrefix, contPrefix string) {
	sb.WriteString(firstPrefix)
	sb.WriteString(fmt.Sprintf("( %s )", n.Label))
	sb.WriteString("\n")

	for i, c := range n.Children {
		last := i == len(n.Children)-1
		childFirst := contPrefix + "  |-- "
		childCont := contPrefix + "  |   "
		if last {
			childFirst = contPrefix + `  \-- `
			childCont = contPrefix + "      "
		}
		c.write(sb, childFirst, childCont)
	}
}
