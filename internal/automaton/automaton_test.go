package automaton

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tinylangtools/tinytool/internal/regexast"
)

// nfaAccepts directly simulates the ε-NFA over s, independent of subset
// construction, so round-trip tests have a ground truth to compare
// against.
func nfaAccepts(n *NFA, s string) bool {
	cur := n.EpsilonClosure([]int{n.Start})
	for _, r := range s {
		moved := n.Move(cur, r)
		if len(moved) == 0 {
			return false
		}
		cur = n.EpsilonClosure(moved)
	}
	for id := range cur {
		if st := n.stateAt(id); st != nil && st.Accept {
			return true
		}
	}
	return false
}

// enumerateStrings returns every string over alphabet of length 0..maxLen.
func enumerateStrings(alphabet []rune, maxLen int) []string {
	var out []string
	var gen func(prefix []rune, remaining int)
	gen = func(prefix []rune, remaining int) {
		out = append(out, string(prefix))
		if remaining == 0 {
			return
		}
		for _, r := range alphabet {
			gen(append(append([]rune{}, prefix...), r), remaining-1)
		}
	}
	gen(nil, maxLen)
	return out
}

func Test_RegexRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
	}{
		{name: "literal", pattern: "a"},
		{name: "concat", pattern: "ab"},
		{name: "union", pattern: "a|b"},
		{name: "star", pattern: "a*"},
		{name: "plus", pattern: "a+"},
		{name: "ques", pattern: "a?"},
		{name: "grouped union then star", pattern: "(a|b)*"},
		{name: "identifier-like", pattern: "a(a|b)*"},
		{name: "mixed", pattern: "(ab)+|c?"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ast, err := regexast.Parse(tc.pattern)
			if !assert.NoError(t, err) {
				return
			}

			b := NewBuilder()
			nfa := b.FromRegex(ast)
			nfa.SetAcceptTag("tok")

			dfa := nfa.ToDFA().Minimize()

			alpha := nfa.Alphabet()
			runes := make([]rune, 0, len(alpha))
			for r := range alpha {
				runes = append(runes, r)
			}
			sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

			for _, s := range enumerateStrings(runes, 5) {
				expected := nfaAccepts(&nfa, s)
				actual := dfa.Accept(s).Accepted
				assert.Equalf(t, expected, actual, "string %q: nfa=%v dfa=%v", s, expected, actual)
			}
		})
	}
}

func Test_DFA_determinism(t *testing.T) {
	ast, err := regexast.Parse("a(b|c)*d")
	if !assert.NoError(t, err) {
		return
	}
	b := NewBuilder()
	nfa := b.FromRegex(ast)
	nfa.SetAcceptTag("tok")
	dfa := nfa.ToDFA()

	reachable := map[int]bool{dfa.Start: true}
	queue := []int{dfa.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		st := dfa.States[cur]
		if st == nil {
			continue
		}
		seenSym := map[rune]bool{}
		for sym, to := range st.Trans {
			assert.Falsef(t, seenSym[sym], "more than one transition for symbol %q from state %d", sym, cur)
			seenSym[sym] = true
			if !reachable[to] {
				reachable[to] = true
				queue = append(queue, to)
			}
		}
		_, hasEps := st.Trans[Eps]
		assert.False(t, hasEps, "dfa state %d has an epsilon transition", cur)
	}

	for id := range dfa.States {
		assert.True(t, reachable[id], "state %d is not reachable from start", id)
	}
}

func Test_Minimize_idempotent(t *testing.T) {
	ast, err := regexast.Parse("a(b|c)*d|ab")
	if !assert.NoError(t, err) {
		return
	}
	b := NewBuilder()
	nfa := b.FromRegex(ast)
	nfa.SetAcceptTag("tok")

	dfa := nfa.ToDFA()
	min1 := dfa.Minimize()
	min2 := min1.Minimize()

	assert.LessOrEqual(t, len(min1.States), len(dfa.States))
	assert.Equal(t, len(min1.States), len(min2.States))
}

func Test_Minimize_acceptTagPreservation(t *testing.T) {
	// Two indistinguishable tagged-id states and one tagged-num state:
	// build two tiny NFAs for the same single-char class "x" and "y" both
	// tagged id, unioned with a third NFA for "1" tagged num.
	b := NewBuilder()

	idX := b.Literal('x')
	idX.SetAcceptTag("id")
	idY := b.Literal('y')
	idY.SetAcceptTag("id")
	num1 := b.Literal('1')
	num1.SetAcceptTag("num")

	master := b.UnionAll([]NFA{idX, idY, num1})
	dfa := master.ToDFA()
	min := dfa.Minimize()

	// the two id states are indistinguishable and merge; the num state
	// stays its own block, leaving start + id + num.
	assert.Len(t, min.States, 3)

	for _, s := range []string{"x", "y", "1"} {
		before := dfa.Accept(s)
		after := min.Accept(s)
		assert.True(t, before.Accepted)
		assert.True(t, after.Accepted)
		assert.Equal(t, before.Tag, after.Tag)
	}
}

func Test_Star_literal_minimizesToOneAcceptingState(t *testing.T) {
	ast, err := regexast.Parse("a*")
	if !assert.NoError(t, err) {
		return
	}
	b := NewBuilder()
	nfa := b.FromRegex(ast)
	nfa.SetAcceptTag("tok")

	min := nfa.ToDFA().Minimize()

	assert.Len(t, min.States, 1)
	st := min.States[min.Start]
	assert.True(t, st.Accept)
}
