package sat

// analyze performs first-UIP conflict analysis starting from the clause
// at conflictIdx, which must have been found at a decision level greater
// than 0. It returns the learned clause's literals (with the asserting
// literal already placed at position 0) and the backjump level.
//
// It walks the trail backwards from the conflict without materializing
// intermediate resolvent clauses, counting how many literals of the
// current decision level remain unresolved (nImplicationPoints) and
// resolving against each one's reason until a single one is left — the
// first UIP.
func (s *Solver) analyze(conflictIdx ClauseIdx) ([]Literal, int) {
	defer scopedTimer(&s.stats.AnalyzeTime)()

	s.seenVar.clear()
	curLevel := s.trail.decisionLevel()

	learned := make([]Literal, 1) // position 0 reserved for the UIP
	backjumpLevel := 0
	nImplicationPoints := 0

	cIdx := conflictIdx
	var piv Literal
	hasPiv := false
	nextIdx := s.trail.len() - 1

	for {
		c := s.store.get(cIdx)
		if c.IsLearnt() {
			s.store.bumpActivity(c)
		}

		for i := 0; i < c.Len(); i++ {
			l := c.Lit(i)
			if hasPiv && l == piv {
				continue // excluded: the literal this clause resolves on
			}
			v := l.VarID()
			if s.seenVar.contains(v) {
				continue
			}
			s.seenVar.add(v)
			s.heuristic.onConflictBump(v)

			if s.trail.levelOfVar(v) == curLevel {
				nImplicationPoints++
				continue
			}
			// l is already falsified under the current assignment (that's
			// why it's in this antecedent clause): keep it as-is.
			learned = append(learned, l)
			if lvl := s.trail.levelOfVar(v); lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		var v int
		for {
			lit := s.trail.at(nextIdx)
			nextIdx--
			v = lit.VarID()
			if s.seenVar.contains(v) {
				piv = lit
				hasPiv = true
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
		cIdx = s.trail.reasonOfVar(v)
	}

	learned[0] = piv.Opposite()

	s.store.decay()
	s.heuristic.decay()

	return learned, backjumpLevel
}
