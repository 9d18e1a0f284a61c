package sat

// watchIndex maps a literal's dense index idx(l) = 2*var + (negated?1:0)
// to the list of clause indices currently watching that literal. Holding
// ClauseIdx rather than *Clause is what lets reduceDB compact the store and
// then rewrite the cached indices in one pass (see store.compact and remap).
type watchIndex struct {
	lists [][]ClauseIdx
}

// grow adds the two new literal slots (positive and negative) for a
// freshly declared variable.
func (w *watchIndex) grow() {
	w.lists = append(w.lists, nil, nil)
}

// attach registers idx as a watcher of literal l.
func (w *watchIndex) attach(l Literal, idx ClauseIdx) {
	w.lists[l] = append(w.lists[l], idx)
}

// detach removes idx from the watchers of literal l, via swap-with-last so
// the operation is O(k) in the list's length rather than requiring a
// shift.
func (w *watchIndex) detach(l Literal, idx ClauseIdx) {
	lst := w.lists[l]
	for i, c := range lst {
		if c == idx {
			lst[i] = lst[len(lst)-1]
			w.lists[l] = lst[:len(lst)-1]
			return
		}
	}
}

// at returns the current watcher list for literal l. The propagator
// compacts this slice in place, keeping the watchers that stay, while
// iterating it.
func (w *watchIndex) at(l Literal) []ClauseIdx {
	return w.lists[l]
}

// set replaces the watcher list for literal l wholesale; used by the
// propagator once it has finished scanning (and compacting) a list, to
// commit the surviving watchers back.
func (w *watchIndex) set(l Literal, lst []ClauseIdx) {
	w.lists[l] = lst
}

// remap rewrites every clause index appearing in the watch lists according
// to the old->new mapping produced by store.compact. Indices with no entry
// in the mapping were removed from the store and must already have been
// detached by the caller before compacting.
func (w *watchIndex) remap(mapping map[ClauseIdx]ClauseIdx) {
	for l, lst := range w.lists {
		j := 0
		for _, idx := range lst {
			if nw, ok := mapping[idx]; ok {
				lst[j] = nw
				j++
			}
		}
		w.lists[l] = lst[:j]
	}
}
