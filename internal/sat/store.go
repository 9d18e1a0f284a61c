package sat

// store is the clause database: a contiguous, index-addressed sequence of
// clauses. Clause indices double as trail reasons, so the store is the
// single place that knows how to keep them consistent across additions
// and reduceDB-driven deletions.
type store struct {
	clauses []*Clause

	clauseInc   float64
	clauseDecay float64
}

func newStore(clauseDecay float64) *store {
	return &store{
		clauseInc:   1,
		clauseDecay: clauseDecay,
	}
}

// add appends c and returns its new index.
func (st *store) add(c *Clause) ClauseIdx {
	idx := ClauseIdx(len(st.clauses))
	st.clauses = append(st.clauses, c)
	return idx
}

// get returns the clause at idx. idx must be a currently-valid index.
func (st *store) get(idx ClauseIdx) *Clause {
	return st.clauses[idx]
}

// len returns the number of clauses currently in the store.
func (st *store) len() int {
	return len(st.clauses)
}

// bumpActivity adds the current clauseInc to c's activity, rescaling every
// clause's activity (and clauseInc itself) if any exceeds 1e100. The same
// rescale shape is used for per-variable activity in the VSIDS heuristic.
func (st *store) bumpActivity(c *Clause) {
	c.activity += st.clauseInc
	if c.activity > 1e100 {
		st.clauseInc *= 1e-100
		for _, other := range st.clauses {
			other.activity *= 1e-100
		}
	}
}

// decay divides clauseInc by clauseDecay, the inverse of a multiplicative
// decay applied lazily the next time bumpActivity runs.
func (st *store) decay() {
	st.clauseInc /= st.clauseDecay
}

// compact removes the clauses named by dead (given as a set of indices)
// from the store, preserving relative order of survivors, and returns the
// mapping from every surviving clause's old index to its new index. The
// caller is responsible for detaching dead clauses from the watch index
// beforehand and for rewriting any cached indices (trail reasons, other
// watch lists) using the returned mapping.
func (st *store) compact(dead map[ClauseIdx]bool) map[ClauseIdx]ClauseIdx {
	remap := make(map[ClauseIdx]ClauseIdx, len(st.clauses))
	j := 0
	for i, c := range st.clauses {
		old := ClauseIdx(i)
		if dead[old] {
			continue
		}
		st.clauses[j] = c
		remap[old] = ClauseIdx(j)
		j++
	}
	st.clauses = st.clauses[:j]
	return remap
}
