package grammar

import "github.com/tinylangtools/tinytool/internal/util"

// FIRST returns FIRST(X): for a terminal, the singleton {X}; for a
// non-terminal, the fixed-point union of FIRST(Y1) over every production
// X -> Y1 ... Yn. Epsilon is not modeled (no production has an empty
// right-hand side), so a non-terminal's FIRST set is always exactly the
// union of its alternatives' leading symbols' FIRST sets.
func (g *Grammar) FIRST(x string) util.StringSet {
	g.ensureFirstFollow()
	if g.Terminals.Has(x) {
		return util.NewSetOf(x)
	}
	if s, ok := g.first[x]; ok {
		return s
	}
	return util.NewSet[string]()
}

// FOLLOW returns FOLLOW(A).
func (g *Grammar) FOLLOW(a string) util.StringSet {
	g.ensureFirstFollow()
	if s, ok := g.follow[a]; ok {
		return s
	}
	return util.NewSet[string]()
}

// ensureFirstFollow computes FIRST and FOLLOW once, lazily, and caches the
// result; Grammar values are read-only once their productions are fully
// registered, so this cache is never
// invalidated after first use.
func (g *Grammar) ensureFirstFollow() {
	if g.first != nil && g.follow != nil {
		return
	}
	g.first = g.computeFirstSets()
	g.follow = g.computeFollowSets()
}

func (g *Grammar) computeFirstSets() map[string]util.StringSet {
	first := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals.Elements() {
		first[nt] = util.NewSet[string]()
	}

	firstOfTerminalOrNonTerminal := func(sym string) util.StringSet {
		if g.Terminals.Has(sym) {
			return util.NewSetOf(sym)
		}
		return first[sym]
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.prods {
			for _, alt := range p.Rhs {
				if len(alt) == 0 {
					continue
				}
				before := first[p.Lhs].Len()
				first[p.Lhs].AddAll(firstOfTerminalOrNonTerminal(alt[0]))
				if first[p.Lhs].Len() != before {
					changed = true
				}
			}
		}
	}

	return first
}

func (g *Grammar) computeFollowSets() map[string]util.StringSet {
	follow := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals.Elements() {
		follow[nt] = util.NewSet[string]()
	}
	if g.Start != "" {
		follow[g.Start] = util.NewSetOf(EndMarker)
	}

	// FIRST of a symbol sequence beta: FIRST(beta[0]) if beta is
	// non-empty; epsilon is not modeled so a non-empty beta always
	// contributes exactly FIRST(beta[0]) with no further lookahead needed.
	firstOfSeq := func(beta []string) util.StringSet {
		if len(beta) == 0 {
			return nil
		}
		first := beta[0]
		if g.Terminals.Has(first) {
			return util.NewSetOf(first)
		}
		return g.first[first]
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.prods {
			for _, alt := range p.Rhs {
				for i, sym := range alt {
					if !g.NonTerminals.Has(sym) {
						continue
					}
					beta := alt[i+1:]
					before := follow[sym].Len()

					if len(beta) > 0 {
						follow[sym].AddAll(firstOfSeq(beta))
					} else {
						follow[sym].AddAll(follow[p.Lhs])
					}

					if follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}

	return follow
}
