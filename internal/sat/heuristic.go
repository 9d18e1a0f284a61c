package sat

import (
	"math"
	"math/rand"
	"time"

	"github.com/rhartert/yagh"
)

// branchHeuristic is the shared contract of the solver's branching
// strategies. Each variant is its own struct with its own state; none of
// their methods are shared beyond this interface, so a tagged sum type
// fits better here than a shared base via embedding.
type branchHeuristic interface {
	// pick returns the next unassigned variable to branch on, using the
	// assigned-ness oracle s to skip stale entries. ok is false only if the
	// heuristic could not find a candidate, in which case the solver falls
	// back to a linear scan.
	pick(s *Solver) (varID int, ok bool)

	// polarity returns the heuristic's recommended polarity for a variable
	// with no saved phase yet.
	polarity(varID int) bool

	// onNewClause is invoked for every clause (input or learnt) once it is
	// attached. Only Jeroslow-Wang reacts to it.
	onNewClause(lits []Literal)

	// onConflictBump is invoked once per variable encountered during
	// conflict analysis. Only VSIDS reacts to it.
	onConflictBump(varID int)

	// onUnassign is invoked when v is unassigned by a backtrack. Only
	// VSIDS reacts to it (heap reinsertion).
	onUnassign(varID int)

	// decay applies the heuristic's exponential decay, once per conflict.
	// Only VSIDS reacts to it.
	decay()

	// grow extends the heuristic's per-variable state for a newly declared
	// variable.
	grow()
}

// --- VSIDS -------------------------------------------------------------

// vsidsHeuristic is the exponential Variable State Independent Decaying
// Sum heuristic: a max-heap over variables keyed by activity, bumped on
// every variable touched during conflict analysis and periodically
// rescaled to keep the scores from overflowing.
type vsidsHeuristic struct {
	heap *yagh.IntMap[float64]

	scores  []float64
	scoreInc   float64
	scoreDecay float64
}

func newVSIDS(decay float64) *vsidsHeuristic {
	return &vsidsHeuristic{
		heap:       yagh.New[float64](0),
		scoreInc:   1,
		scoreDecay: decay,
	}
}

func (h *vsidsHeuristic) grow() {
	v := len(h.scores)
	h.scores = append(h.scores, 0)
	h.heap.GrowBy(1)
	h.heap.Put(v, 0)
}

func (h *vsidsHeuristic) pick(s *Solver) (int, bool) {
	for {
		e, ok := h.heap.Pop()
		if !ok {
			return 0, false
		}
		if s.isAssigned(e.Elem) {
			continue
		}
		return e.Elem, true
	}
}

func (h *vsidsHeuristic) polarity(int) bool {
	return true
}

func (h *vsidsHeuristic) onNewClause([]Literal) {}

func (h *vsidsHeuristic) onConflictBump(v int) {
	h.scores[v] += h.scoreInc
	if h.heap.Contains(v) {
		h.heap.Put(v, -h.scores[v])
	}
	if h.scores[v] > 1e100 {
		h.rescale()
	}
}

func (h *vsidsHeuristic) onUnassign(v int) {
	if !h.heap.Contains(v) {
		h.heap.Put(v, -h.scores[v])
	}
}

func (h *vsidsHeuristic) decay() {
	h.scoreInc /= h.scoreDecay
}

func (h *vsidsHeuristic) rescale() {
	h.scoreInc *= 1e-100
	for v, sc := range h.scores {
		h.scores[v] = sc * 1e-100
		if h.heap.Contains(v) {
			h.heap.Put(v, -h.scores[v])
		}
	}
}

// --- Jeroslow-Wang (static) ---------------------------------------------

// jwHeuristic implements the Jeroslow-Wang static heuristic: per variable,
// two weights accumulated as Σ 2^-|c| over clauses containing +v and -v
// respectively, kept up to date incrementally as clauses are added. Ties
// in pick are broken by total weight, then by the larger of the two
// per-polarity weights, then by the positive weight.
type jwHeuristic struct {
	pos []float64
	neg []float64
}

func newJW() *jwHeuristic {
	return &jwHeuristic{}
}

func (h *jwHeuristic) grow() {
	h.pos = append(h.pos, 0)
	h.neg = append(h.neg, 0)
}

func (h *jwHeuristic) onNewClause(lits []Literal) {
	w := math.Pow(2, -float64(len(lits)))
	for _, l := range lits {
		if l.IsPositive() {
			h.pos[l.VarID()] += w
		} else {
			h.neg[l.VarID()] += w
		}
	}
}

func (h *jwHeuristic) pick(s *Solver) (int, bool) {
	best := -1
	var bestSum, bestMax, bestPos float64
	for v := 0; v < s.NumVariables(); v++ {
		if s.isAssigned(v) {
			continue
		}
		sum := h.pos[v] + h.neg[v]
		mx := math.Max(h.pos[v], h.neg[v])
		if best == -1 ||
			sum > bestSum ||
			(sum == bestSum && mx > bestMax) ||
			(sum == bestSum && mx == bestMax && h.pos[v] > bestPos) {
			best, bestSum, bestMax, bestPos = v, sum, mx, h.pos[v]
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (h *jwHeuristic) polarity(v int) bool {
	return h.pos[v] >= h.neg[v]
}

func (h *jwHeuristic) onConflictBump(int) {}
func (h *jwHeuristic) onUnassign(int)     {}
func (h *jwHeuristic) decay()             {}

// --- Random --------------------------------------------------------------

// randomHeuristic picks uniformly among unassigned variables. Seedable so
// a run can be reproduced exactly; a seed of 0 means unseeded (the clock
// seeds the generator).
type randomHeuristic struct {
	rng     *rand.Rand
	numVars int
}

func newRandom(seed uint64) *randomHeuristic {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomHeuristic{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (h *randomHeuristic) grow() {
	h.numVars++
}

func (h *randomHeuristic) onNewClause([]Literal) {}
func (h *randomHeuristic) onConflictBump(int)     {}
func (h *randomHeuristic) onUnassign(int)         {}
func (h *randomHeuristic) decay()                 {}

func (h *randomHeuristic) polarity(int) bool {
	return true
}

func (h *randomHeuristic) pick(s *Solver) (int, bool) {
	candidates := make([]int, 0, h.numVars)
	for v := 0; v < h.numVars; v++ {
		if !s.isAssigned(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[h.rng.Intn(len(candidates))], true
}
