// Package grammar models a context-free grammar: productions,
// terminal/non-terminal sets, and FIRST/FOLLOW set computation.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/util"
)

// EndMarker is the reserved end-of-input terminal, "$".
const EndMarker = "$"

// Production is one grammar rule: a left-hand non-terminal and an ordered
// list of alternatives, each an ordered sequence of symbols. Productions
// with no RHS symbols (epsilon productions) are disallowed; optional
// constructs must be expressed via explicit alternatives.
type Production struct {
	Lhs string
	Rhs [][]string
}

// Grammar is the set of terminals and non-terminals (disjoint except for
// the reserved end-marker), an ordered list of productions, and the
// FIRST/FOLLOW maps computed over them.
type Grammar struct {
	Terminals    util.StringSet
	NonTerminals util.StringSet
	Start        string

	// prods preserves declaration order; lhsIndex maps a non-terminal to
	// its index in prods so duplicate lhs lines accumulate alternatives.
	prods    []Production
	lhsIndex map[string]int

	first  map[string]util.StringSet
	follow map[string]util.StringSet
}

// New returns an empty grammar seeded with the given terminal vocabulary
// (e.g. the lexer's keyword/symbol set plus identifier/number) and the
// reserved end-marker.
func New(terminals []string, start string) *Grammar {
	terms := util.NewSetOf(terminals...)
	terms.Add(EndMarker)
	return &Grammar{
		Terminals:    terms,
		NonTerminals: util.NewSet[string](),
		Start:        start,
		lhsIndex:     map[string]int{},
	}
}

// IsTerminal reports whether sym is in the grammar's terminal vocabulary.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.Terminals.Has(sym)
}

// IsNonTerminal reports whether sym is in the grammar's non-terminal
// vocabulary.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.NonTerminals.Has(sym)
}

// AddProduction registers one alternative alt for non-terminal lhs.
// Duplicate lhs accumulate alternatives. lhs and every symbol in alt that
// is not a known terminal are registered as non-terminals, so
// self-reference and forward reference are both legal; AddProduction does
// not report unknown symbols itself. Validate reports, with
// ferrors.UnknownSymbol, any such symbol that never appears as an lhs.
func (g *Grammar) AddProduction(lhs string, alt []string) error {
	if len(alt) == 0 {
		return ferrors.PatternParse("production %q has an empty right-hand side, which this grammar does not model", lhs)
	}
	if !g.Terminals.Has(lhs) {
		g.NonTerminals.Add(lhs)
	}

	for _, sym := range alt {
		if !g.Terminals.Has(sym) && sym != lhs {
			// allow forward reference to a non-terminal declared by a
			// later lhs line; validated fully in Validate().
			g.NonTerminals.Add(sym)
		}
	}

	if idx, ok := g.lhsIndex[lhs]; ok {
		g.prods[idx].Rhs = append(g.prods[idx].Rhs, alt)
		return nil
	}

	g.lhsIndex[lhs] = len(g.prods)
	g.prods = append(g.prods, Production{Lhs: lhs, Rhs: [][]string{alt}})
	return nil
}

// Productions returns the grammar's productions in declaration order.
func (g *Grammar) Productions() []Production {
	return g.prods
}

// ProductionFor returns the Production for lhs, if any.
func (g *Grammar) ProductionFor(lhs string) (Production, bool) {
	idx, ok := g.lhsIndex[lhs]
	if !ok {
		return Production{}, false
	}
	return g.prods[idx], true
}

// Validate checks that every symbol used in every alternative is either a
// known terminal or a declared non-terminal (one that appears as some
// production's lhs). An unknown token fails with ferrors.UnknownSymbol.
func (g *Grammar) Validate() error {
	declared := util.NewSet[string]()
	for _, p := range g.prods {
		declared.Add(p.Lhs)
	}

	var unknown []string
	seen := util.NewSet[string]()
	for _, p := range g.prods {
		for _, alt := range p.Rhs {
			for _, sym := range alt {
				if g.Terminals.Has(sym) || declared.Has(sym) {
					continue
				}
				if !seen.Has(sym) {
					seen.Add(sym)
					unknown = append(unknown, sym)
				}
			}
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ferrors.UnknownSymbol("undeclared symbol(s) referenced in grammar: %s", util.MakeTextList(unknown))
	}
	return nil
}

// AllSymbols returns every terminal and non-terminal symbol in the
// grammar, for iteration during LR(0)/SLR(1) table construction.
func (g *Grammar) AllSymbols() []string {
	syms := append(g.Terminals.Elements(), g.NonTerminals.Elements()...)
	sort.Strings(syms)
	return syms
}

func (p Production) String() string {
	alts := make([]string, len(p.Rhs))
	for i, alt := range p.Rhs {
		alts[i] = strings.Join(alt, " ")
	}
	return fmt.Sprintf("%s -> %s", p.Lhs, strings.Join(alts, " | "))
}
