package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

// String renders a's ACTION/GOTO table as a fixed-width text table, one
// row per state, terminal columns on the left of a divider and
// non-terminal (goto) columns on the right -- the same row/column shape
// the canonical LR(0)/SLR(1) table construction produces, laid out with
// rosed.InsertTableOpts rather than hand-rolled column padding.
func (a *Automaton) String() string {
	g := a.Grammar
	terms := g.Terminals.Elements()
	nonTerms := g.NonTerminals.Elements()
	sort.Strings(terms)
	sort.Strings(nonTerms)

	header := []string{"state", "|"}
	header = append(header, terms...)
	header = append(header, "|")
	header = append(header, nonTerms...)

	data := [][]string{header}

	for _, is := range a.States {
		row := []string{fmt.Sprintf("%d", is.Index), "|"}

		for _, t := range terms {
			row = append(row, a.actionCell(is, t))
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := a.Goto(is.Index, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// actionCell computes the single ACTION-table cell for (is, t): "acc" if
// is is an accept state and t is the end marker, "s<j>" if t shifts to
// state j, or "r<production>" for the first reduce item whose lhs has t
// in its FOLLOW set. Blank means error/no action.
func (a *Automaton) actionCell(is ItemSet, t string) string {
	if a.AcceptState[is.Index] && t == grammar.EndMarker {
		return "acc"
	}
	if j, ok := a.Goto(is.Index, t); ok {
		return fmt.Sprintf("s%d", j)
	}
	for _, item := range reduceItemsOf(is) {
		if a.Grammar.FOLLOW(item.Lhs).Has(t) {
			p := grammar.Production{Lhs: item.Lhs, Rhs: [][]string{item.Rhs}}
			return "r" + p.String()
		}
	}
	return ""
}
