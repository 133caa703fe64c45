package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylangtools/tinytool/internal/util"
)

func exprGrammarTerminals() []string {
	return []string{"+", "*", "(", ")", "identifier"}
}

func mustExprGrammar(t *testing.T) *Grammar {
	t.Helper()
	g, err := ParseRules(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | identifier
	`, exprGrammarTerminals(), "")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return g
}

func Test_ParseRules(t *testing.T) {
	g := mustExprGrammar(t)

	assert.Equal(t, "E", g.Start)
	assert.True(t, g.IsNonTerminal("E"))
	assert.True(t, g.IsNonTerminal("T"))
	assert.True(t, g.IsNonTerminal("F"))
	assert.True(t, g.IsTerminal("identifier"))
	assert.True(t, g.IsTerminal(EndMarker))

	eProd, ok := g.ProductionFor("E")
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, [][]string{{"E", "+", "T"}, {"T"}}, eProd.Rhs)
}

func Test_ParseRules_unknownSymbol(t *testing.T) {
	_, err := ParseRules(`E -> E + zzz`, exprGrammarTerminals(), "")
	assert.Error(t, err)
}

func Test_FIRST_FOLLOW(t *testing.T) {
	g := mustExprGrammar(t)

	assert.Equal(t, util.NewSetOf("(", "identifier"), g.FIRST("E"))
	assert.Equal(t, util.NewSetOf("(", "identifier"), g.FIRST("T"))
	assert.Equal(t, util.NewSetOf("(", "identifier"), g.FIRST("F"))

	assert.Equal(t, util.NewSetOf("$", "+", ")"), g.FOLLOW("E"))
	assert.Equal(t, util.NewSetOf("$", "+", "*", ")"), g.FOLLOW("T"))
	assert.Equal(t, util.NewSetOf("$", "+", "*", ")"), g.FOLLOW("F"))
}

func Test_FIRST_FOLLOW_fixedPoint(t *testing.T) {
	g := mustExprGrammar(t)
	g.ensureFirstFollow()

	before := map[string]int{}
	for nt, s := range g.first {
		before[nt] = s.Len()
	}
	followBefore := map[string]int{}
	for nt, s := range g.follow {
		followBefore[nt] = s.Len()
	}

	again := g.computeFirstSets()
	for nt, s := range again {
		assert.Equal(t, before[nt], s.Len(), "FIRST(%s) changed on a redundant pass", nt)
	}
	followAgain := g.computeFollowSets()
	for nt, s := range followAgain {
		assert.Equal(t, followBefore[nt], s.Len(), "FOLLOW(%s) changed on a redundant pass", nt)
	}
}

func Test_Augmented(t *testing.T) {
	g := mustExprGrammar(t)
	ag := g.Augmented()

	assert.Equal(t, AugmentedStart, ag.Start)
	assert.True(t, ag.IsNonTerminal(AugmentedStart))

	startItem := ag.StartItem()
	assert.Equal(t, AugmentedStart, startItem.Lhs)
	assert.Equal(t, []string{"E"}, startItem.Rhs)
	assert.Equal(t, 0, startItem.Dot)

	acceptItem := ag.AcceptItem()
	assert.True(t, acceptItem.IsReduce())
}
