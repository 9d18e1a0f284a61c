package sat

import "sort"

// reduceDBEvery is how many newly learned clauses elapse between reduceDB
// passes.
const reduceDBEvery = 200

// isLocked reports whether the clause at idx is currently the reason for
// some trail entry. Scanning the clause's own literals (rather than the
// whole trail) is enough: the only variable a clause can ever be the
// reason of is one of its own literals' variables.
func (s *Solver) isLocked(idx ClauseIdx) bool {
	c := s.store.get(idx)
	for i := 0; i < c.Len(); i++ {
		v := c.Lit(i).VarID()
		if s.trail.isAssigned(v) && s.trail.reasonOfVar(v) == idx {
			return true
		}
	}
	return false
}

// reduceDB thins the learnt clause database: among learnt clauses with
// size > 2 and LBD > 2 that are not locked, it deletes the worse half,
// ranked worst-first by (higher LBD, then lower activity, then larger
// size).
func (s *Solver) reduceDB() {
	type candidate struct {
		idx  ClauseIdx
		c    *Clause
	}
	var eligible []candidate
	for i := 0; i < s.store.len(); i++ {
		idx := ClauseIdx(i)
		c := s.store.get(idx)
		if !c.IsLearnt() || c.Len() <= 2 || c.LBD() <= 2 {
			continue
		}
		if s.isLocked(idx) {
			continue
		}
		eligible = append(eligible, candidate{idx: idx, c: c})
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i].c, eligible[j].c
		if a.LBD() != b.LBD() {
			return a.LBD() > b.LBD() // higher LBD is worse
		}
		if a.activity != b.activity {
			return a.activity < b.activity // lower activity is worse
		}
		return a.Len() > b.Len() // larger size is worse
	})

	nDelete := len(eligible) / 2
	if nDelete == 0 {
		return
	}

	dead := make(map[ClauseIdx]bool, nDelete)
	for i := 0; i < nDelete; i++ {
		idx := eligible[i].idx
		c := eligible[i].c
		w0, w1 := c.Watched()
		s.watch.detach(w0, idx)
		if w1 != w0 {
			s.watch.detach(w1, idx)
		}
		dead[idx] = true
	}

	remap := s.store.compact(dead)
	s.watch.remap(remap)

	for v := 0; v < s.NumVariables(); v++ {
		if !s.trail.isAssigned(v) {
			continue
		}
		old := s.trail.reasonOfVar(v)
		if old == decisionReason {
			continue
		}
		nw, ok := remap[old]
		if !ok {
			// Locked clauses are never eligible for deletion, so every
			// reason still in use must survive compaction.
			panic("reduceDB: reason clause of an active assignment was deleted")
		}
		s.trail.reasonOf[v] = nw
	}
}
