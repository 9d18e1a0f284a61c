package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestAnalyze_DegenerateFirstUIP builds a small implication graph by hand
// (bypassing propagate) where the conflicting clause already contains a
// single literal at the current decision level, so first-UIP analysis
// terminates immediately: the learned clause is the conflict clause itself,
// reordered with the asserting literal first.
func TestAnalyze_DegenerateFirstUIP(t *testing.T) {
	s := NewSolver(DefaultOptions)
	for i := 0; i < 4; i++ {
		s.AddVariable()
	}

	mustAddClause(t, s, []Literal{NegativeLiteral(0), PositiveLiteral(1)})                      // c1: -a v b
	mustAddClause(t, s, []Literal{NegativeLiteral(1), NegativeLiteral(2), PositiveLiteral(3)})    // c2: -b v -c v d
	mustAddClause(t, s, []Literal{NegativeLiteral(1), NegativeLiteral(3)})                       // c3: -b v -d

	s.trail.beginDecisionLevel()
	s.enqueue(PositiveLiteral(0), decisionReason)  // a, level 1
	s.enqueue(PositiveLiteral(1), ClauseIdx(0))    // b, level 1, reason c1

	s.trail.beginDecisionLevel()
	s.enqueue(PositiveLiteral(2), decisionReason)  // c, level 2
	s.enqueue(PositiveLiteral(3), ClauseIdx(1))    // d, level 2, reason c2

	learned, bj := s.analyze(ClauseIdx(2))

	want := []Literal{NegativeLiteral(3), NegativeLiteral(1)}
	if diff := cmp.Diff(want, learned); diff != "" {
		t.Errorf("analyze(): learned clause mismatch (-want, +got):\n%s", diff)
	}
	if bj != 1 {
		t.Errorf("analyze(): backjump level = %d, want 1", bj)
	}
}

// TestAnalyze_ResolvesPastCurrentLevel exercises an actual resolution step:
// the conflict clause has two literals at the current decision level, one
// of them propagated (not a decision), so analyze must resolve it against
// its antecedent before reaching the first UIP.
func TestAnalyze_ResolvesPastCurrentLevel(t *testing.T) {
	s := NewSolver(DefaultOptions)
	for i := 0; i < 5; i++ {
		s.AddVariable()
	}

	mustAddClause(t, s, []Literal{NegativeLiteral(0), PositiveLiteral(1)})                     // c0: -a v b       (antecedent of b)
	mustAddClause(t, s, []Literal{NegativeLiteral(1), PositiveLiteral(2)})                     // c1: -b v c       (antecedent of c)
	mustAddClause(t, s, []Literal{NegativeLiteral(3), PositiveLiteral(4)})                     // c2: -d v e       (antecedent of e)
	mustAddClause(t, s, []Literal{NegativeLiteral(2), NegativeLiteral(3), NegativeLiteral(4)}) // c3: -c v -d v -e (conflict)

	s.trail.beginDecisionLevel()
	s.enqueue(PositiveLiteral(0), decisionReason) // a, level 1
	s.enqueue(PositiveLiteral(1), ClauseIdx(0))   // b, level 1, reason c0
	s.enqueue(PositiveLiteral(2), ClauseIdx(1))   // c, level 1, reason c1

	s.trail.beginDecisionLevel()
	s.enqueue(PositiveLiteral(3), decisionReason) // d, level 2
	s.enqueue(PositiveLiteral(4), ClauseIdx(2))   // e, level 2, reason c2

	learned, bj := s.analyze(ClauseIdx(3))

	// e resolves away against its antecedent c2, leaving d as the sole
	// level-2 (asserting) literal and c carried over unchanged from c3.
	want := []Literal{NegativeLiteral(3), NegativeLiteral(2)}
	if diff := cmp.Diff(want, learned); diff != "" {
		t.Errorf("analyze(): learned clause mismatch (-want, +got):\n%s", diff)
	}
	if bj != 1 {
		t.Errorf("analyze(): backjump level = %d, want 1", bj)
	}
}
