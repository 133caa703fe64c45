// Package parse builds LR(0) item sets (closure, goto, canonical
// collection, ACTION/GOTO assembly), performs SLR(1) conflict analysis
// using FIRST/FOLLOW, and drives the shift/reduce parser that builds a
// concrete syntax tree.
package parse

import (
	"sort"

	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

// ItemSet is one LR(0) state: an integer index (a label, not part of
// equality) plus the set of items it contains.
type ItemSet struct {
	Index int
	Items map[string]grammar.Item
}

func newItemSet(index int) ItemSet {
	return ItemSet{Index: index, Items: map[string]grammar.Item{}}
}

func (is *ItemSet) add(item grammar.Item) bool {
	k := item.Key()
	if _, ok := is.Items[k]; ok {
		return false
	}
	is.Items[k] = item
	return true
}

// coreKey returns a canonical, order-independent key for the item set's
// contents, used to intern item sets by item-set equality.
func (is ItemSet) coreKey() string {
	keys := make([]string, 0, len(is.Items))
	for k := range is.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "\x00"
	}
	return out
}

// buildSingleProductions flattens every alternative of every production in
// g into an individually-addressable (lhs, rhs) pair, rejecting exact
// duplicates with ferrors.DuplicateProduction.
func buildSingleProductions(g *grammar.Grammar) ([]grammar.Item, error) {
	seen := map[string]bool{}
	var out []grammar.Item
	for _, p := range g.Productions() {
		for _, alt := range p.Rhs {
			item := grammar.Item{Lhs: p.Lhs, Rhs: alt, Dot: 0}
			key := item.Lhs + " -> "
			for _, s := range alt {
				key += s + " "
			}
			if seen[key] {
				return nil, ferrors.DuplicateProduction("production %q declared more than once", p.String())
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out, nil
}

// Automaton is the canonical collection of LR(0) item sets together with
// the goto-derived transition table.
type Automaton struct {
	Grammar     *grammar.Grammar // the augmented grammar
	States      []ItemSet
	Transitions map[int]map[string]int
	AcceptState map[int]bool
}

// closure computes closure(I): while any item A -> alpha . B beta with B
// a non-terminal admits new items B -> . gamma for each alternative gamma
// of B, add them.
func closure(seed []grammar.Item, g *grammar.Grammar, prods []grammar.Item) ItemSet {
	is := newItemSet(-1)
	for _, item := range seed {
		is.add(item)
	}

	byLhs := map[string][]grammar.Item{}
	for _, p := range prods {
		byLhs[p.Lhs] = append(byLhs[p.Lhs], p)
	}

	changed := true
	for changed {
		changed = false
		for _, item := range copyItems(is) {
			sym, ok := item.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}
			for _, prod := range byLhs[sym] {
				if is.add(grammar.Item{Lhs: prod.Lhs, Rhs: prod.Rhs, Dot: 0}) {
					changed = true
				}
			}
		}
	}

	return is
}

func copyItems(is ItemSet) []grammar.Item {
	out := make([]grammar.Item, 0, len(is.Items))
	for _, item := range is.Items {
		out = append(out, item)
	}
	return out
}

// gotoSet computes goto(I, X): {[A -> alphaX . beta] |
// [A -> alpha . Xbeta] in I}, followed by closure.
func gotoSet(is ItemSet, x string, g *grammar.Grammar, prods []grammar.Item) ItemSet {
	var seed []grammar.Item
	for _, item := range is.Items {
		sym, ok := item.NextSymbol()
		if ok && sym == x {
			seed = append(seed, item.Advance())
		}
	}
	return closure(seed, g, prods)
}

// BuildAutomaton builds the canonical collection of LR(0) item sets for g
// (which must already be augmented, i.e. the result of g.Augmented()):
// start from closure({AugmentedStart -> . Start}), then a worklist over
// each item set and each grammar symbol, interning by item-set equality
// and recording transitions[i][X] = j. Any reachable state containing the
// accept item AugmentedStart -> Start . is flagged accept.
func BuildAutomaton(g *grammar.Grammar) (*Automaton, error) {
	prods, err := buildSingleProductions(g)
	if err != nil {
		return nil, err
	}

	startSet := closure([]grammar.Item{g.StartItem()}, g, prods)

	byKey := map[string]int{}
	var states []ItemSet
	transitions := map[int]map[string]int{}

	startSet.Index = 0
	states = append(states, startSet)
	byKey[startSet.coreKey()] = 0

	symbols := g.AllSymbols()

	worklist := []int{0}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		transitions[i] = map[string]int{}

		for _, x := range symbols {
			next := gotoSet(states[i], x, g, prods)
			if len(next.Items) == 0 {
				continue
			}

			key := next.coreKey()
			j, ok := byKey[key]
			if !ok {
				j = len(states)
				next.Index = j
				states = append(states, next)
				byKey[key] = j
				worklist = append(worklist, j)
			}

			transitions[i][x] = j
		}
	}

	accept := g.AcceptItem()
	acceptStates := map[int]bool{}
	for _, is := range states {
		if _, ok := is.Items[accept.Key()]; ok {
			acceptStates[is.Index] = true
		}
	}

	return &Automaton{
		Grammar:     g,
		States:      states,
		Transitions: transitions,
		AcceptState: acceptStates,
	}, nil
}

// Goto returns transitions[state][symbol] and whether it is defined.
func (a *Automaton) Goto(state int, symbol string) (int, bool) {
	row, ok := a.Transitions[state]
	if !ok {
		return 0, false
	}
	j, ok := row[symbol]
	return j, ok
}
