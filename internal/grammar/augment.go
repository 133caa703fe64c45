package grammar

// AugmentedStart is the synthetic start symbol introduced when building
// the LR(0) automaton: Start -> program.
const AugmentedStart = "Start"

// Augmented returns a new grammar identical to g but with a fresh
// production AugmentedStart -> g.Start prepended. The returned grammar
// shares no mutable state with g.
func (g *Grammar) Augmented() *Grammar {
	ag := New(g.Terminals.Elements(), AugmentedStart)
	ag.NonTerminals = g.NonTerminals.Copy()
	ag.NonTerminals.Add(AugmentedStart)

	// AddProduction would treat AugmentedStart as a non-terminal
	// automatically; register it first so the ordering below is exact.
	ag.prods = append(ag.prods, Production{Lhs: AugmentedStart, Rhs: [][]string{{g.Start}}})
	ag.lhsIndex[AugmentedStart] = 0

	for _, p := range g.prods {
		ag.lhsIndex[p.Lhs] = len(ag.prods)
		ag.prods = append(ag.prods, p)
	}

	return ag
}

// StartItem returns the single LR(0) item AugmentedStart -> . g.Start,
// the seed of the canonical collection's initial item set.
// g must already be an augmented grammar (i.e. the receiver of this call
// is the return value of Augmented()).
func (g *Grammar) StartItem() Item {
	p, _ := g.ProductionFor(AugmentedStart)
	return Item{Lhs: p.Lhs, Rhs: p.Rhs[0], Dot: 0}
}

// AcceptItem returns the accept item AugmentedStart -> g.Start . ; any
// reachable state containing it is flagged accept.
func (g *Grammar) AcceptItem() Item {
	p, _ := g.ProductionFor(AugmentedStart)
	return Item{Lhs: p.Lhs, Rhs: p.Rhs[0], Dot: len(p.Rhs[0])}
}
