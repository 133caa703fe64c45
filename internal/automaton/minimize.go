package automaton

import "sort"

// sentinelBlock stands for the trap state's own equivalence block when
// computing destination-block fibers in the refinement loop below: an
// absent transition must be distinguishable from every real block.
const sentinelBlock = -1

// Minimize performs Hopcroft-style partition-refinement minimization,
// preserving accept-tag classes:
//
//  1. Initial partitions: one block for all non-accepting states, then one
//     block per distinct accept-tag, so tagged final states never merge
//     across kinds.
//  2. Refinement: for every block with more than one member and every
//     input symbol, compute the destination-block map; if it produces more
//     than one image, split the block by its fibers; the pass goes on
//     with the remaining blocks and another pass follows.
//  3. Terminate when a full pass produces no split.
//  4. Emit a new DFA with one state per surviving block; accept flag and
//     tag are inherited from any member (they agree within a block by
//     construction).
func (d *DFA) Minimize() *DFA {
	alphabet := map[rune]struct{}{}
	for _, st := range d.States {
		for sym := range st.Trans {
			alphabet[sym] = struct{}{}
		}
	}
	syms := make([]rune, 0, len(alphabet))
	for sym := range alphabet {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })

	blockOf := map[int]int{}  // state id -> block id
	blocks := map[int][]int{} // block id -> member state ids
	nextBlock := 0

	// Step 1: initial partition.
	nonAccept := []int{}
	byTag := map[string][]int{}
	for id, st := range d.States {
		if !st.Accept {
			nonAccept = append(nonAccept, id)
		} else {
			byTag[st.AcceptTag] = append(byTag[st.AcceptTag], id)
		}
	}
	if len(nonAccept) > 0 {
		b := nextBlock
		nextBlock++
		blocks[b] = nonAccept
		for _, id := range nonAccept {
			blockOf[id] = b
		}
	}
	// deterministic order of tags for reproducible block numbering
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		b := nextBlock
		nextBlock++
		blocks[b] = byTag[tag]
		for _, id := range byTag[tag] {
			blockOf[id] = b
		}
	}

	// Step 2-3: refine to a fixed point.
	changed := true
	for changed {
		changed = false

		blockIDs := make([]int, 0, len(blocks))
		for b := range blocks {
			blockIDs = append(blockIDs, b)
		}
		sort.Ints(blockIDs)

		for _, b := range blockIDs {
			members := blocks[b]
			if len(members) <= 1 {
				continue
			}

			// fiber key per member: tuple of destination blocks across all
			// symbols, in sorted symbol order.
			fiberOf := map[int]string{}
			fibers := map[string][]int{}
			var fiberOrder []string

			for _, id := range members {
				key := make([]byte, 0, len(syms)*4)
				st := d.States[id]
				for i, sym := range syms {
					if i > 0 {
						key = append(key, '|')
					}
					to, ok := st.Trans[sym]
					dest := sentinelBlock
					if ok {
						dest = blockOf[to]
					}
					key = appendInt(key, dest)
				}
				k := string(key)
				fiberOf[id] = k
				if _, seen := fibers[k]; !seen {
					fiberOrder = append(fiberOrder, k)
				}
				fibers[k] = append(fibers[k], id)
			}

			if len(fibers) <= 1 {
				continue
			}

			// split: keep the fiber with the smallest key (in sorted key
			// order) in block b, assign the rest fresh block ids.
			sort.Strings(fiberOrder)
			blocks[b] = fibers[fiberOrder[0]]
			for _, id := range fibers[fiberOrder[0]] {
				blockOf[id] = b
			}
			for _, k := range fiberOrder[1:] {
				nb := nextBlock
				nextBlock++
				blocks[nb] = fibers[k]
				for _, id := range fibers[k] {
					blockOf[id] = nb
				}
			}

			changed = true
		}
	}

	// Step 4: emit one state per block.
	out := &DFA{States: map[int]*DFAState{}}
	out.Start = blockOf[d.Start]

	blockIDs := make([]int, 0, len(blocks))
	for b := range blocks {
		blockIDs = append(blockIDs, b)
	}
	sort.Ints(blockIDs)

	for _, b := range blockIDs {
		members := blocks[b]
		rep := d.States[members[0]]
		trans := map[rune]int{}
		for _, sym := range syms {
			if to, ok := rep.Trans[sym]; ok {
				trans[sym] = blockOf[to]
			}
		}
		out.States[b] = &DFAState{
			ID:        b,
			Accept:    rep.Accept,
			AcceptTag: rep.AcceptTag,
			Trans:     trans,
		}
	}

	return out.renumberFromStart()
}
