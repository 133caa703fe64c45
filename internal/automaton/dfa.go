package automaton

import (
	"sort"
)

// DFAState is one state of a DFA: a unique id, an accept flag and tag, and
// a transition map that is total-on-demand (an absent entry denotes the
// trap state).
type DFAState struct {
	ID        int
	Accept    bool
	AcceptTag string
	Trans     map[rune]int
}

// DFA is a start state plus a set of states reachable from it, with at
// most one transition per symbol per state and no ε transitions.
type DFA struct {
	Start  int
	States map[int]*DFAState
}

// Step returns the state reached from state by consuming symbol c, and
// whether such a transition exists (false denotes the trap state).
func (d *DFA) Step(state int, c rune) (int, bool) {
	st, ok := d.States[state]
	if !ok {
		return 0, false
	}
	to, ok := st.Trans[c]
	return to, ok
}

// AcceptResult is the outcome of running a DFA over a complete string: it
// either rejects, or accepts and names the token-kind tag of the state the
// string lands on.
type AcceptResult struct {
	Accepted bool
	Tag      string
}

// Accept runs d over the full string s and reports whether it lands on an
// accepting state: the full string is consumed and no longest-match scan
// is performed at this layer.
func (d *DFA) Accept(s string) AcceptResult {
	cur := d.Start
	for _, r := range s {
		next, ok := d.Step(cur, r)
		if !ok {
			return AcceptResult{Accepted: false}
		}
		cur = next
	}
	st, ok := d.States[cur]
	if !ok || !st.Accept {
		return AcceptResult{Accepted: false}
	}
	return AcceptResult{Accepted: true, Tag: st.AcceptTag}
}

// acceptTagBeats realizes the accept-tag precedence rule:
// "any non-id tag beats id; within the non-id group, the first
// encountered tag wins." Returns true if candidate should replace
// current.
func acceptTagBeats(candidate, current string, currentSet bool) bool {
	if !currentSet {
		return true
	}
	if current == candidate {
		return false
	}
	if current != "id" && candidate == "id" {
		return false
	}
	if current == "id" && candidate != "id" {
		return true
	}
	// both id, or both non-id and distinct: first encountered wins, i.e.
	// the one already recorded stays.
	return false
}

// subsetKey produces a canonical, order-independent string key for a set
// of NFA state ids, used to intern DFA states by NFA-state-set equality.
func subsetKey(ids map[int]struct{}) string {
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*4)
	for i, id := range sorted {
		if i > 0 {
			key = append(key, ',')
		}
		key = appendInt(key, id)
	}
	return string(key)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	neg := n < 0
	if neg {
		n = -n
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// ToDFA performs subset construction, the classical
// NFA-to-DFA algorithm (purple dragon book algorithm 3.20): the DFA's
// start state is ε-closure({n.Start}); for each unexplored DFA state D and
// each symbol c in the alphabet, T = ε-closure(move(D, c)) becomes (or is
// interned as) a new DFA state with a transition D--c-->T. A DFA state is
// accepting iff any of its member NFA states is accepting, with its tag
// chosen by the precedence rule in acceptTagBeats.
//
// If the NFA's alphabet is empty and its start state is non-accepting,
// the resulting DFA rejects all non-empty strings -- this is documented
// behavior, not an error.
func (n *NFA) ToDFA() *DFA {
	alphabet := n.Alphabet()

	startSet := n.EpsilonClosure([]int{n.Start})
	startKey := subsetKey(startSet)

	type pending struct {
		key string
		set map[int]struct{}
	}

	idOf := map[string]int{}
	setOf := map[string]map[int]struct{}{}
	nextID := 0

	idOf[startKey] = nextID
	setOf[startKey] = startSet
	nextID++

	dfa := &DFA{States: map[int]*DFAState{}}
	dfa.Start = idOf[startKey]

	worklist := []pending{{key: startKey, set: startSet}}
	explored := map[string]bool{}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		if explored[cur.key] {
			continue
		}
		explored[cur.key] = true

		id := idOf[cur.key]
		st := &DFAState{ID: id, Trans: map[rune]int{}}
		tagSet := false
		for nfaID := range cur.set {
			nState := n.stateAt(nfaID)
			if nState != nil && nState.Accept {
				if acceptTagBeats(nState.AcceptTag, st.AcceptTag, tagSet) {
					st.AcceptTag = nState.AcceptTag
					tagSet = true
				}
				st.Accept = true
			}
		}
		dfa.States[id] = st

		for c := range alphabet {
			moved := n.Move(cur.set, c)
			if len(moved) == 0 {
				continue
			}
			closure := n.EpsilonClosure(moved)
			key := subsetKey(closure)

			toID, ok := idOf[key]
			if !ok {
				toID = nextID
				nextID++
				idOf[key] = toID
				setOf[key] = closure
			}
			st.Trans[c] = toID

			if !explored[key] {
				worklist = append(worklist, pending{key: key, set: closure})
			}
		}
	}

	return dfa.renumberFromStart()
}

// renumberFromStart renumbers d's states densely from 0 via BFS from
// Start, dropping any state not reachable (subset construction above never
// produces unreachable states, but this keeps the invariant explicit and
// lets minimization reuse the same helper).
func (d *DFA) renumberFromStart() *DFA {
	order := []int{}
	seen := map[int]bool{d.Start: true}
	queue := []int{d.Start}
	order = append(order, d.Start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		st := d.States[cur]
		if st == nil {
			continue
		}
		// deterministic iteration order over transitions for reproducible
		// numbering
		syms := make([]rune, 0, len(st.Trans))
		for sym := range st.Trans {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			to := st.Trans[sym]
			if !seen[to] {
				seen[to] = true
				order = append(order, to)
				queue = append(queue, to)
			}
		}
	}

	remap := map[int]int{}
	for i, old := range order {
		remap[old] = i
	}

	out := &DFA{Start: remap[d.Start], States: map[int]*DFAState{}}
	for _, old := range order {
		oldSt := d.States[old]
		newTrans := map[rune]int{}
		for sym, to := range oldSt.Trans {
			if newTo, ok := remap[to]; ok {
				newTrans[sym] = newTo
			}
		}
		out.States[remap[old]] = &DFAState{
			ID:        remap[old],
			Accept:    oldSt.Accept,
			AcceptTag: oldSt.AcceptTag,
			Trans:     newTrans,
		}
	}

	return out
}
