package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

func exprAutomaton(t *testing.T) *Automaton {
	t.Helper()
	g, err := grammar.ParseRules(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | identifier
	`, []string{"+", "*", "(", ")", "identifier"}, "")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	a, err := BuildAutomaton(g.Augmented())
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return a
}

func Test_CheckValidity_exprGrammar_isOK(t *testing.T) {
	a := exprAutomaton(t)
	v, detail := CheckValidity(a)
	assert.Equal(t, OK, v, detail)
}

// S -> S S | a is not SLR(1): the state reached on S S holds the reduce
// item S -> S S . alongside shift items on S and a, and a is in
// FOLLOW(S) = {a, $}, so reducing and shifting compete on the same
// lookahead.
func Test_CheckValidity_SSSorA_isShiftReduce(t *testing.T) {
	g, err := grammar.ParseRules(`S -> S S | a`, []string{"a"}, "")
	if !assert.NoError(t, err) {
		return
	}
	a, err := BuildAutomaton(g.Augmented())
	if !assert.NoError(t, err) {
		return
	}

	v, detail := CheckValidity(a)
	assert.Equal(t, ShiftReduce, v, detail)
}

// S -> A | B with A -> a and B -> a puts two distinct reduce items in
// the same state (both reducible on "a"), and FOLLOW(A) and FOLLOW(B)
// both equal FOLLOW(S) -- a genuine reduce-reduce conflict, independent
// of the shift-reduce rule.
func Test_CheckValidity_ambiguousAlternatives_isReduceReduce(t *testing.T) {
	g := grammar.New([]string{"a"}, "S")
	assert.NoError(t, g.AddProduction("S", []string{"A"}))
	assert.NoError(t, g.AddProduction("S", []string{"B"}))
	assert.NoError(t, g.AddProduction("A", []string{"a"}))
	assert.NoError(t, g.AddProduction("B", []string{"a"}))

	a, err := BuildAutomaton(g.Augmented())
	if !assert.NoError(t, err) {
		return
	}

	v, _ := CheckValidity(a)
	assert.Equal(t, ReduceReduce, v)
}

func Test_Parse_identifierPlusIdentifier(t *testing.T) {
	a := exprAutomaton(t)
	if err := BuildSLR1(a); !assert.NoError(t, err) {
		return
	}

	tokens := []Token{
		{Kind: "identifier", Lexeme: "x"},
		{Kind: "+", Lexeme: ""},
		{Kind: "identifier", Lexeme: "y"},
	}

	tree, err := Parse(a, tokens)
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, rootLabel, tree.Label)
	if !assert.Len(t, tree.Children, 1) {
		return
	}
	e := tree.Children[0]
	assert.Equal(t, "E", e.Label)
	if !assert.Len(t, e.Children, 3) {
		return
	}
	assert.Equal(t, "E", e.Children[0].Label)
	assert.Equal(t, "+", e.Children[1].Label)
	assert.Equal(t, "T", e.Children[2].Label)

	assert.Equal(t, []string{"identifier -> x", "+", "identifier -> y"}, tree.Yield())
}

func Test_Parse_invalidInput(t *testing.T) {
	a := exprAutomaton(t)
	if err := BuildSLR1(a); !assert.NoError(t, err) {
		return
	}

	tokens := []Token{
		{Kind: "+", Lexeme: ""},
	}

	_, err := Parse(a, tokens)
	assert.Error(t, err)
}

// For every reachable item set and every grammar symbol, a non-empty
// goto must have a recorded transition pointing at the interned index of
// exactly that item set.
func Test_BuildAutomaton_transitionsMatchGoto(t *testing.T) {
	a := exprAutomaton(t)
	g := a.Grammar

	prods, err := buildSingleProductions(g)
	if !assert.NoError(t, err) {
		return
	}

	for _, is := range a.States {
		for _, x := range g.AllSymbols() {
			next := gotoSet(is, x, g, prods)
			j, ok := a.Goto(is.Index, x)
			if len(next.Items) == 0 {
				assert.Falsef(t, ok, "state %d has a transition on %q but goto is empty", is.Index, x)
				continue
			}
			if !assert.Truef(t, ok, "state %d has no transition on %q but goto is non-empty", is.Index, x) {
				continue
			}
			assert.Equal(t, a.States[j].coreKey(), next.coreKey(), "state %d on %q", is.Index, x)
		}
	}
}

func Test_BuildAutomaton_duplicateProduction(t *testing.T) {
	g := grammar.New([]string{"a"}, "S")
	assert.NoError(t, g.AddProduction("S", []string{"a"}))
	assert.NoError(t, g.AddProduction("S", []string{"a"}))

	_, err := BuildAutomaton(g.Augmented())
	assert.Error(t, err)
}
