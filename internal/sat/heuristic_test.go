package sat

import "testing"

func TestJWHeuristic_OnNewClauseAndPick(t *testing.T) {
	h := newJW()
	for i := 0; i < 3; i++ {
		h.grow()
	}

	// v0 and v1 appear in a binary clause (weight 2^-2) and a ternary clause
	// (weight 2^-3), v2 only in the ternary one: v0 and v1 tie on every
	// JW key, and the lower index, v0, should be picked first.
	h.onNewClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	h.onNewClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), NegativeLiteral(2)})

	s := NewSolver(Options{Heuristic: JeroslowWang})
	for i := 0; i < 3; i++ {
		s.AddVariable()
	}

	v, ok := h.pick(s)
	if !ok {
		t.Fatal("pick() ok = false, want true")
	}
	if v != 0 {
		t.Errorf("pick() = %d, want 0 (highest combined JW weight, lowest index among ties)", v)
	}
}

func TestJWHeuristic_Polarity(t *testing.T) {
	h := newJW()
	h.grow()
	h.onNewClause([]Literal{PositiveLiteral(0)})
	h.onNewClause([]Literal{PositiveLiteral(0)})
	h.onNewClause([]Literal{NegativeLiteral(0)})

	if !h.polarity(0) {
		t.Error("polarity(0) = false, want true (pos weight > neg weight)")
	}
}

func TestRandomHeuristic_PicksOnlyUnassigned(t *testing.T) {
	h := newRandom(42)
	for i := 0; i < 3; i++ {
		h.grow()
	}

	s := NewSolver(Options{Heuristic: Random, Seed: 42})
	for i := 0; i < 3; i++ {
		s.AddVariable()
	}
	s.enqueue(PositiveLiteral(0), decisionReason)
	s.enqueue(PositiveLiteral(1), decisionReason)

	v, ok := h.pick(s)
	if !ok {
		t.Fatal("pick() ok = false, want true")
	}
	if v != 2 {
		t.Errorf("pick() = %d, want 2 (only unassigned variable)", v)
	}
}

func TestVSIDSHeuristic_BumpReordersHeap(t *testing.T) {
	h := newVSIDS(0.95)
	for i := 0; i < 2; i++ {
		h.grow()
	}

	h.onConflictBump(1)
	h.onConflictBump(1)
	h.onConflictBump(0)

	s := NewSolver(Options{Heuristic: VSIDS})
	s.AddVariable()
	s.AddVariable()

	v, ok := h.pick(s)
	if !ok {
		t.Fatal("pick() ok = false, want true")
	}
	if v != 1 {
		t.Errorf("pick() = %d, want 1 (higher bumped activity)", v)
	}
}
