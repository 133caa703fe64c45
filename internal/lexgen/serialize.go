package lexgen

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"
	"github.com/tinylangtools/tinytool/internal/automaton"
	"github.com/tinylangtools/tinytool/internal/binenc"
	"github.com/tinylangtools/tinytool/internal/ferrors"
)

// storedDFA is the serializable rendering of a Recognizer: automaton.DFA
// carries pointer-valued states and rune-keyed maps, so SaveDFA/LoadDFA
// flatten it to value-typed slices first, in sorted state order so a
// given recognizer always serializes to the same bytes.
type storedDFA struct {
	BuildID string
	Start   int
	States  []storedDFAState
}

type storedDFAState struct {
	ID        int
	Accept    bool
	AcceptTag string
	Symbols   []int32
	Targets   []int
}

func (s storedDFAState) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncInt(s.ID)...)
	data = append(data, binenc.EncBool(s.Accept)...)
	data = append(data, binenc.EncString(s.AcceptTag)...)
	data = append(data, binenc.EncInt(len(s.Symbols))...)
	for i := range s.Symbols {
		data = append(data, binenc.EncInt(int(s.Symbols[i]))...)
		data = append(data, binenc.EncInt(s.Targets[i])...)
	}
	return data, nil
}

func (s *storedDFAState) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	s.ID, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	s.Accept, n, err = binenc.DecBool(data)
	if err != nil {
		return err
	}
	data = data[n:]

	s.AcceptTag, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	s.Symbols = nil
	s.Targets = nil
	for i := 0; i < count; i++ {
		sym, n, err := binenc.DecInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		target, n, err := binenc.DecInt(data)
		if err != nil {
			return err
		}
		data = data[n:]

		s.Symbols = append(s.Symbols, int32(sym))
		s.Targets = append(s.Targets, target)
	}
	return nil
}

func (d storedDFA) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, binenc.EncString(d.BuildID)...)
	data = append(data, binenc.EncInt(d.Start)...)
	data = append(data, binenc.EncInt(len(d.States))...)
	for _, st := range d.States {
		enc, err := binenc.Enc(st)
		if err != nil {
			return nil, err
		}
		data = append(data, enc...)
	}
	return data, nil
}

func (d *storedDFA) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	d.BuildID, n, err = binenc.DecString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	d.Start, n, err = binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := binenc.DecInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	d.States = nil
	for i := 0; i < count; i++ {
		var st storedDFAState
		n, err = binenc.Dec(data, &st)
		if err != nil {
			return fmt.Errorf("state %d: %w", i, err)
		}
		data = data[n:]
		d.States = append(d.States, st)
	}
	return nil
}

// SaveDFA encodes r's minimized DFA to a binary artifact, stamped with
// r.BuildID so a later LoadDFA call can be matched back against the
// Recognizer it was saved from.
func SaveDFA(r *Recognizer) ([]byte, error) {
	stored := storedDFA{
		BuildID: r.BuildID.String(),
		Start:   r.DFA.Start,
	}

	ids := make([]int, 0, len(r.DFA.States))
	for id := range r.DFA.States {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		st := r.DFA.States[id]
		row := storedDFAState{ID: id, Accept: st.Accept, AcceptTag: st.AcceptTag}

		syms := make([]rune, 0, len(st.Trans))
		for sym := range st.Trans {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			row.Symbols = append(row.Symbols, int32(sym))
			row.Targets = append(row.Targets, st.Trans[sym])
		}

		stored.States = append(stored.States, row)
	}

	return rezi.EncBinary(stored), nil
}

// LoadDFA decodes a DFA previously written by SaveDFA into an
// automaton.DFA ready for Recognizer.Accept, along with the build id it
// was stamped with.
func LoadDFA(data []byte) (*automaton.DFA, string, error) {
	var stored storedDFA
	if _, err := rezi.DecBinary(data, &stored); err != nil {
		return nil, "", ferrors.IO(err, "decoding DFA")
	}

	dfa := &automaton.DFA{
		Start:  stored.Start,
		States: map[int]*automaton.DFAState{},
	}
	for _, row := range stored.States {
		st := &automaton.DFAState{
			ID:        row.ID,
			Accept:    row.Accept,
			AcceptTag: row.AcceptTag,
			Trans:     map[rune]int{},
		}
		for i, sym := range row.Symbols {
			st.Trans[rune(sym)] = row.Targets[i]
		}
		dfa.States[row.ID] = st
	}

	return dfa, stored.BuildID, nil
}
