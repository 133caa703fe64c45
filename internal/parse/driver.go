package parse

import (
	"sort"

	"github.com/tinylangtools/tinytool/internal/cst"
	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

// Token is one (kind, lexeme) pair arriving from the external tokenizer.
type Token struct {
	Kind   string
	Lexeme string
}

// stackEntry is one (state, cst-node) pair on the parser driver's stack.
type stackEntry struct {
	state int
	node  *cst.Node
}

// formatLexeme implements the lexeme-formatting-on-shift rule: if the
// incoming token has an empty lexeme, store the kind; else store
// "kind -> lexeme".
func formatLexeme(t Token) string {
	if t.Lexeme == "" {
		return t.Kind
	}
	return t.Kind + " -> " + t.Lexeme
}

// Parse drives a's ACTION/GOTO-derived shift/reduce parser over tokens.
// The initial stack is (0, node(program-label)); the synthetic token
// ($, "") is appended once the input is exhausted. rootLabel is the fixed
// label the tree's outermost node carries ("program"), independent of the
// underlying grammar's own start-symbol name.
const rootLabel = "program"

// Termination: success iff the stack reduces to size 2 -- (0, the
// placeholder root) and (goto(0, g.Start), the start symbol's reduction)
// -- after consuming $; the returned tree wraps that reduction in a fresh
// node labeled rootLabel.
func Parse(a *Automaton, tokens []Token) (*cst.Node, error) {
	stack := []stackEntry{{state: 0, node: cst.New(rootLabel)}}

	input := append(append([]Token{}, tokens...), Token{Kind: grammar.EndMarker, Lexeme: ""})
	pos := 0

	for {
		top := stack[len(stack)-1]
		t := input[pos]

		if next, ok := a.Goto(top.state, t.Kind); ok {
			stack = append(stack, stackEntry{state: next, node: cst.Leaf(formatLexeme(t))})
			pos++
			continue
		}

		is := a.States[top.state]
		r, found := pickReduceItem(a, is, t.Kind)
		if !found {
			return nil, ferrors.InvalidInput("no shift or reduce action for state %d on token %q (lexeme %q)", top.state, t.Kind, t.Lexeme)
		}

		if r.Equal(a.Grammar.AcceptItem()) {
			if len(stack) != 2 {
				return nil, ferrors.InvalidInput("accept reached with unexpected stack depth %d", len(stack))
			}
			return cst.New(rootLabel, stack[1].node), nil
		}

		n := len(r.Rhs)
		if len(stack) < n+1 {
			return nil, ferrors.InvalidInput("reduce by %q underflows parser stack", r.String())
		}

		children := make([]*cst.Node, n)
		for i := 0; i < n; i++ {
			children[i] = stack[len(stack)-n+i].node
		}
		stack = stack[:len(stack)-n]

		newNode := cst.New(r.Lhs, children...)
		newTop := stack[len(stack)-1]
		gotoState, ok := a.Goto(newTop.state, r.Lhs)
		if !ok {
			return nil, ferrors.InvalidInput("no GOTO entry for state %d on non-terminal %q", newTop.state, r.Lhs)
		}
		stack = append(stack, stackEntry{state: gotoState, node: newNode})
	}
}

// pickReduceItem finds the reduce item in is applicable given lookahead.
// When more than one reduce item is present (a state an SLR(1)-valid
// grammar can still produce, so long as their FOLLOW sets are disjoint),
// the one whose left-hand side's FOLLOW set contains lookahead is
// preferred; the accept item is preferred over all others since it ends
// the parse outright; ties fall back to the lexicographically-first item
// string for determinism.
func pickReduceItem(a *Automaton, is ItemSet, lookahead string) (grammar.Item, bool) {
	var candidates []grammar.Item
	for _, item := range is.Items {
		if item.IsReduce() {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return grammar.Item{}, false
	}

	accept := a.Grammar.AcceptItem()
	for _, c := range candidates {
		if c.Equal(accept) {
			return c, true
		}
	}

	var matching []grammar.Item
	for _, c := range candidates {
		if a.Grammar.FOLLOW(c.Lhs).Has(lookahead) {
			matching = append(matching, c)
		}
	}
	if len(matching) > 0 {
		candidates = matching
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].String() < candidates[j].String() })
	return candidates[0], true
}
