package cstlower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylangtools/tinytool/internal/cst"
)

func Test_Lower_flatBinaryOp(t *testing.T) {
	// Shape a driver-built tree takes for "identifier + identifier" under
	// the E/T/F grammar: program -> E -> (E, +, T), with the left and
	// right operands themselves single-child chains down to a leaf.
	tree := cst.New("program",
		cst.New("E",
			cst.New("E", cst.New("T", cst.New("F", cst.Leaf("identifier -> x")))),
			cst.Leaf("+"),
			cst.New("T", cst.New("F", cst.Leaf("identifier -> y"))),
		),
	)

	lines := Lower(tree)
	assert.Equal(t, []string{
		"E = t1",
		"t1(E) := identifier -> x + identifier -> y",
	}, lines)
}

func Test_Lower_nestedInteriorNodes(t *testing.T) {
	tree := cst.New("root",
		cst.New("A",
			cst.New("B", cst.Leaf("leaf1"), cst.Leaf("leaf2")),
			cst.Leaf("leaf3"),
		),
	)

	lines := Lower(tree)
	assert.Equal(t, []string{
		"A = t1",
		"t1(A) := t2 leaf3",
		"B = t2",
		"t2(B) := leaf1 leaf2",
	}, lines)
}

func Test_Lower_singleLeafCollapsesToNoLines(t *testing.T) {
	tree := cst.New("program", cst.New("S", cst.Leaf("identifier -> x")))
	assert.Nil(t, Lower(tree))
}

func Test_Lower_deepChainCollapsesFully(t *testing.T) {
	tree := cst.New("program",
		cst.New("E", cst.New("T", cst.New("F", cst.Leaf("identifier -> z")))),
	)
	assert.Nil(t, Lower(tree))
}

func Test_collapse_preservesMultiChildNodes(t *testing.T) {
	tree := cst.New("program",
		cst.New("A", cst.Leaf("x"), cst.Leaf("y")),
	)
	collapsed := collapse(tree)
	assert.Equal(t, "A", collapsed.Label)
	assert.Len(t, collapsed.Children, 2)
}
