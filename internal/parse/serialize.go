package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"
	"github.com/tinylangtools/tinytool/internal/binenc"
	"github.com/tinylangtools/tinytool/internal/ferrors"
	"github.com/tinylangtools/tinytool/internal/grammar"
)

// storedAutomaton is the serializable rendering of an Automaton: both
// Automaton and grammar.Grammar carry map-valued fields (and
// grammar.Grammar keeps unexported FIRST/FOLLOW caches that are cheap to
// recompute), so SaveTable flattens the automaton to its productions,
// item sets, and transition table, and LoadTable rebuilds the grammar
// (and its FIRST/FOLLOW sets) from the flattened productions rather than
// serializing the caches.
type storedAutomaton struct {
	Terminals    []string
	NonTerminals []string
	Start        string
	Productions  []storedProduction
	States       []storedItemSet
	Transitions  []storedTransition
	AcceptStates []int
}

type storedProduction struct {
	Lhs string
	Rhs [][]string
}

type storedItemSet struct {
	Index int
	Items []storedItem
}

type storedItem struct {
	Lhs string
	Rhs []string
	Dot int
}

type storedTransition struct {
	From   int
	Symbol string
	To     int
}

func (p storedProduction) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncString(p.Lhs)...)
	data = append(data, binenc.EncInt(len(p.Rhs))...)
	for _, alt := range p.Rhs {
		data = append(data, binenc.EncStrings(alt)...)
	}
	return data, nil
}

func (p *storedProduction) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	p.Lhs, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	p.Rhs = nil
	for i := 0; i < count; i++ {
		alt, n, err := binenc.DecStrings(data)
		if err != nil {
			return err
		}
		data = data[n:]
		p.Rhs = append(p.Rhs, alt)
	}
	return nil
}

func (item storedItem) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncString(item.Lhs)...)
	data = append(data, binenc.EncStrings(item.Rhs)...)
	data = append(data, binenc.EncInt(item.Dot)...)
	return data, nil
}

func (item *storedItem) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	item.Lhs, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	item.Rhs, n, err = binenc.DecStrings(data)
	if err != nil {
		return err
	}
	data = data[n:]

	item.Dot, _, err = binenc.DecInt(data)
	return err
}

func (is storedItemSet) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncInt(is.Index)...)
	data = append(data, binenc.EncInt(len(is.Items))...)
	for _, item := range is.Items {
		enc, err := binenc.Enc(item)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}
	return data, nil
}

func (is *storedItemSet) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	is.Index, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	is.Items = nil
	for i := 0; i < count; i++ {
		var item storedItem
		n, err = binenc.Dec(data, &item)
		if err != nil {
			return err
		}
		data = data[n:]
		is.Items = append(is.Items, item)
	}
	return nil
}

func (t storedTransition) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncInt(t.From)...)
	data = append(data, binenc.EncString(t.Symbol)...)
	data = append(data, binenc.EncInt(t.To)...)
	return data, nil
}

func (t *storedTransition) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	t.From, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	t.Symbol, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	t.To, _, err = binenc.DecInt(data)
	return err
}

func (a storedAutomaton) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncStrings(a.Terminals)...)
	data = append(data, binenc.EncStrings(a.NonTerminals)...)
	data = append(data, binenc.EncString(a.Start)...)

	data = append(data, binenc.EncInt(len(a.Productions))...)
	for _, p := range a.Productions {
		enc, err := binenc.Enc(p)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}

	data = append(data, binenc.EncInt(len(a.States))...)
	for _, is := range a.States {
		enc, err := binenc.Enc(is)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}

	data = append(data, binenc.EncInt(len(a.Transitions))...)
	for _, t := range a.Transitions {
		enc, err := binenc.Enc(t)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}

	data = append(data, binenc.EncInt(len(a.AcceptStates))...)
	for _, s := range a.AcceptStates {
		data = append(data, binenc.EncInt(s)...)
	}

	return data, nil
}

func (a *storedAutomaton) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	a.Terminals, n, err = binenc.DecStrings(data)
	if err != nil {
		return err
	}
	data = data[n:]

	a.NonTerminals, n, err = binenc.DecStrings(data)
	if err != nil {
		return err
	}
	data = data[n:]

	a.Start, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	a.Productions = nil
	for i := 0; i < count; i++ {
		var p storedProduction
		n, err = binenc.Dec(data, &p)
		if err != nil {
			return fmt.Errorf("production %d: %w", i, err)
		}
		data = data[n:]
		a.Productions = append(a.Productions, p)
	}

	count, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	a.States = nil
	for i := 0; i < count; i++ {
		var is storedItemSet
		n, err = binenc.Dec(data, &is)
		if err != nil {
			return fmt.Errorf("item set %d: %w", i, err)
		}
		data = data[n:]
		a.States = append(a.States, is)
	}

	count, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	a.Transitions = nil
	for i := 0; i < count; i++ {
		var t storedTransition
		n, err = binenc.Dec(data, &t)
		if err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
		data = data[n:]
		a.Transitions = append(a.Transitions, t)
	}

	count, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]
	a.AcceptStates = nil
	for i := 0; i < count; i++ {
		s, n, err := binenc.DecInt(data)
		if err != nil {
			return err
		}
		data = data[n:]
		a.AcceptStates = append(a.AcceptStates, s)
	}

	return nil
}

// SaveTable encodes a's augmented grammar, canonical item-set collection,
// and ACTION/GOTO transition table to a binary artifact, so a built
// parser can be persisted and reloaded without rebuilding from a grammar
// file. Map-ordered fields are flattened in sorted order so a given
// automaton always serializes to the same bytes.
func SaveTable(a *Automaton) ([]byte, error) {
	g := a.Grammar

	terms := g.Terminals.Elements()
	nonTerms := g.NonTerminals.Elements()
	sort.Strings(terms)
	sort.Strings(nonTerms)

	stored := storedAutomaton{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Start:        g.Start,
	}
	for _, p := range g.Productions() {
		stored.Productions = append(stored.Productions, storedProduction{Lhs: p.Lhs, Rhs: p.Rhs})
	}
	for _, is := range a.States {
		row := storedItemSet{Index: is.Index}
		keys := make([]string, 0, len(is.Items))
		for k := range is.Items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			item := is.Items[k]
			row.Items = append(row.Items, storedItem{Lhs: item.Lhs, Rhs: item.Rhs, Dot: item.Dot})
		}
		stored.States = append(stored.States, row)
	}
	froms := make([]int, 0, len(a.Transitions))
	for from := range a.Transitions {
		froms = append(froms, from)
	}
	sort.Ints(froms)
	for _, from := range froms {
		row := a.Transitions[from]
		syms := make([]string, 0, len(row))
		for sym := range row {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			stored.Transitions = append(stored.Transitions, storedTransition{From: from, Symbol: sym, To: row[sym]})
		}
	}
	for state := range a.AcceptState {
		stored.AcceptStates = append(stored.AcceptStates, state)
	}
	sort.Ints(stored.AcceptStates)

	return rezi.EncBinary(stored), nil
}

// LoadTable decodes an Automaton previously written by SaveTable, ready
// to drive Parse. The stored productions reconstruct the augmented
// grammar itself (the Start -> program production is stored verbatim, so
// Augmented is not called again); FIRST/FOLLOW sets are recomputed
// lazily on first use exactly as they would be for a freshly built
// grammar.
func LoadTable(data []byte) (*Automaton, error) {
	var stored storedAutomaton
	if _, err := rezi.DecBinary(data, &stored); err != nil {
		return nil, ferrors.IO(err, "decoding parse table")
	}

	terminals := make([]string, 0, len(stored.Terminals))
	for _, t := range stored.Terminals {
		if t != grammar.EndMarker {
			terminals = append(terminals, t)
		}
	}
	g := grammar.New(terminals, stored.Start)
	for _, nt := range stored.NonTerminals {
		g.NonTerminals.Add(nt)
	}
	for _, p := range stored.Productions {
		for _, alt := range p.Rhs {
			if err := g.AddProduction(p.Lhs, alt); err != nil {
				return nil, ferrors.IO(err, "reconstructing grammar from saved table")
			}
		}
	}

	a := &Automaton{
		Grammar:     g,
		Transitions: map[int]map[string]int{},
		AcceptState: map[int]bool{},
	}
	for _, row := range stored.States {
		is := newItemSet(row.Index)
		for _, item := range row.Items {
			is.add(grammar.Item{Lhs: item.Lhs, Rhs: item.Rhs, Dot: item.Dot})
		}
		if row.Index >= len(a.States) {
			grown := make([]ItemSet, row.Index+1)
			copy(grown, a.States)
			a.States = grown
		}
		a.States[row.Index] = is
	}
	for _, t := range stored.Transitions {
		if a.Transitions[t.From] == nil {
			a.Transitions[t.From] = map[string]int{}
		}
		a.Transitions[t.From][t.Symbol] = t.To
	}
	for _, state := range stored.AcceptStates {
		a.AcceptState[state] = true
	}

	return a, nil
}
