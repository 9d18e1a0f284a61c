package sat

import (
	"fmt"
	"sync/atomic"
	"time"
)

// HeuristicKind selects one of the solver's branching strategies.
type HeuristicKind int

const (
	VSIDS HeuristicKind = iota
	JeroslowWang
	Random
)

func (k HeuristicKind) String() string {
	switch k {
	case VSIDS:
		return "vsids"
	case JeroslowWang:
		return "jw"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// ParseHeuristicKind parses the CLI spelling of a heuristic name.
func ParseHeuristicKind(s string) (HeuristicKind, error) {
	switch s {
	case "vsids":
		return VSIDS, nil
	case "jw":
		return JeroslowWang, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("cdclsat: unknown heuristic %q (want vsids, jw, or random)", s)
	}
}

// Options configures a Solver. Constructing a fresh Solver is the
// isolation boundary for running a different heuristic on the same
// formula: there is no shared mutable state between instances.
type Options struct {
	Heuristic HeuristicKind
	Seed      uint64 // only used by the Random heuristic; 0 = unseeded

	ClauseDecay float64 // in (0, 1), e.g. 0.95-0.999
	VarDecay    float64 // in (0, 1), e.g. 0.95

	RestartBase int // Luby restart budget multiplier, e.g. 2

	MaxConflicts int64         // -1 = unbounded
	Timeout      time.Duration // -1 = unbounded
}

// DefaultOptions holds reasonable defaults for every Options field,
// defaulting to the VSIDS heuristic.
var DefaultOptions = Options{
	Heuristic:    VSIDS,
	ClauseDecay:  0.999,
	VarDecay:     0.95,
	RestartBase:  2,
	MaxConflicts: -1,
	Timeout:      -1,
}

// Solver is the CDCL orchestrator: it owns the clause store, the watch
// index, the trail, the active branching heuristic, the restart
// scheduler, and drives the propagate/analyze/branch loop.
type Solver struct {
	numVars int
	assigns []LBool // per-variable current value
	phase   []LBool // per-variable saved phase, never cleared on backtrack

	trail *trail
	watch *watchIndex
	store *store

	heuristic branchHeuristic
	restarter *restartScheduler

	seenVar *resetSet

	unsat bool

	learntsSinceReduce int

	stats Stats

	startTime time.Time
	hasStopCond bool
	maxConflict int64
	timeout     time.Duration
	stopFlag    atomic.Bool

	// Models accumulates every satisfying assignment found across
	// repeated Solve() calls on the same instance (e.g. after the caller
	// adds a blocking clause to enumerate further models).
	Models [][]bool
}

// NewSolver returns a Solver configured with opts.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		trail:     &trail{},
		watch:     &watchIndex{},
		store:     newStore(opts.ClauseDecay),
		restarter: newRestartScheduler(opts.RestartBase),
		seenVar:   &resetSet{},
		maxConflict: -1,
		timeout:     -1,
	}

	switch opts.Heuristic {
	case JeroslowWang:
		s.heuristic = newJW()
	case Random:
		s.heuristic = newRandom(opts.Seed)
	default:
		s.heuristic = newVSIDS(opts.VarDecay)
	}

	if opts.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflict = opts.MaxConflicts
	}
	if opts.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = opts.Timeout
	}

	return s
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// RequestStop asks a running Solve() to return Unknown at the next loop
// boundary. It does not interrupt propagation or analysis mid-step.
func (s *Solver) RequestStop() {
	s.stopFlag.Store(true)
}

func (s *Solver) stopRequested() bool {
	if s.stopFlag.Load() {
		return true
	}
	if !s.hasStopCond {
		return false
	}
	if s.maxConflict >= 0 && s.stats.Conflicts >= s.maxConflict {
		return true
	}
	if s.timeout >= 0 && time.Since(s.startTime) >= s.timeout {
		return true
	}
	return false
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int {
	return s.numVars
}

// NumConstraints returns the number of clauses (input and learnt)
// currently in the store.
func (s *Solver) NumConstraints() int {
	return s.store.len()
}

// Stats returns a snapshot of the solver's search counters and timings.
func (s *Solver) Stats() Stats {
	return s.stats
}

// VarValue returns the current assignment of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.assigns[v]
}

func (s *Solver) isAssigned(v int) bool {
	return s.assigns[v] != Unknown
}

func (s *Solver) litValue(l Literal) LBool {
	val := s.assigns[l.VarID()]
	if l.IsPositive() {
		return val
	}
	return val.Opposite()
}

func (s *Solver) decisionLevel() int {
	return s.trail.decisionLevel()
}

// AddVariable declares a new variable and returns its (zero-based) ID.
func (s *Solver) AddVariable() int {
	v := s.numVars
	s.numVars++
	s.assigns = append(s.assigns, Unknown)
	s.phase = append(s.phase, Unknown)
	s.trail.grow()
	s.watch.grow()
	s.seenVar.grow()
	s.heuristic.grow()
	return v
}

// enqueue records lit as assigned true with the given reason. It returns
// false if lit is already falsified (a conflicting assignment), true
// otherwise (including if lit was already assigned true). It is the only
// function that pushes entries onto the trail.
func (s *Solver) enqueue(lit Literal, reason ClauseIdx) bool {
	switch s.litValue(lit) {
	case False:
		return false
	case True:
		return true
	}
	val := True
	if !lit.IsPositive() {
		val = False
	}
	v := lit.VarID()
	s.assigns[v] = val
	s.phase[v] = val
	s.trail.push(lit, reason)
	return true
}

func (s *Solver) attachWatches(idx ClauseIdx, c *Clause) {
	s.watch.attach(c.literals[c.w0], idx)
	if c.w1 != c.w0 {
		s.watch.attach(c.literals[c.w1], idx)
	}
}

// normalizeClause deduplicates literals, detects tautologies, and drops
// literals already falsified at the root level. ok is false if the clause
// is trivially satisfied (tautology, or a literal already true) and
// should not be added at all.
func (s *Solver) normalizeClause(lits []Literal) (out []Literal, ok bool) {
	seen := make(map[Literal]bool, len(lits))
	out = make([]Literal, 0, len(lits))
	for _, l := range lits {
		if seen[l.Opposite()] {
			return nil, false
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		switch s.litValue(l) {
		case True:
			return nil, false
		case False:
			continue
		}
		out = append(out, l)
	}
	return out, true
}

// AddClause adds an input clause. It may only be called at decision
// level 0, since attaching watches and enqueuing an implied unit
// assignment both assume nothing has been decided yet.
func (s *Solver) AddClause(lits []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("cdclsat: AddClause called at decision level %d, must be 0", s.decisionLevel())
	}

	norm, ok := s.normalizeClause(lits)
	if !ok {
		return nil // tautology or already satisfied: harmless to drop
	}
	if len(norm) == 0 {
		s.unsat = true
		return nil
	}

	c := newClause(norm, false)
	idx := s.store.add(c)
	s.attachWatches(idx, c)
	s.heuristic.onNewClause(c.literals)

	if len(norm) == 1 {
		if !s.enqueue(norm[0], idx) {
			s.unsat = true
		}
	}
	return nil
}

// addLearnt stores a freshly analyzed clause: the asserting literal at
// position 0, and — for clauses of size >= 2 — a literal at the backjump
// level at position 1, so the two watches can be established
// immediately. lbd must have been computed by the caller against the
// trail as it stood before the backjump.
func (s *Solver) addLearnt(lits []Literal, lbd int) ClauseIdx {
	c := newClause(lits, true)
	c.lbd = lbd

	if len(c.literals) >= 2 {
		maxLevel := -1
		wl := 1
		for i := 1; i < len(c.literals); i++ {
			if lvl := s.trail.levelOfVar(c.literals[i].VarID()); lvl > maxLevel {
				maxLevel = lvl
				wl = i
			}
		}
		c.literals[1], c.literals[wl] = c.literals[wl], c.literals[1]
		c.w0, c.w1 = 0, 1
	} else {
		c.w0, c.w1 = 0, 0
	}

	idx := s.store.add(c)
	s.attachWatches(idx, c)
	s.heuristic.onNewClause(c.literals)
	s.stats.LearntsAdded++
	s.learntsSinceReduce++
	return idx
}

func (s *Solver) lbdOf(lits []Literal) int {
	return lbdFromLevels(lits, s.trail.levelOfVar)
}

// cancelUntil rewinds the trail to decision level, notifying the
// heuristic of every variable it unassigns (so VSIDS can reinsert it into
// its heap).
func (s *Solver) cancelUntil(level int) {
	for _, v := range s.trail.popAbove(level) {
		s.assigns[v] = Unknown
		s.heuristic.onUnassign(v)
	}
}

func (s *Solver) allAssigned() bool {
	return s.trail.len() == s.numVars
}

func (s *Solver) saveModel() {
	model := make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		model[v] = s.assigns[v] == True
	}
	s.Models = append(s.Models, model)
}

// decide picks the next branching literal: the active heuristic is
// consulted first; if it returns no candidate (or a stale, already
// assigned one), the solver falls back to a linear scan. The chosen
// variable's saved phase overrides the heuristic's recommended polarity
// whenever one has been recorded.
func (s *Solver) decide() (Literal, bool) {
	v, ok := s.heuristic.pick(s)
	if !ok || s.isAssigned(v) {
		ok = false
		for cand := 0; cand < s.numVars; cand++ {
			if !s.isAssigned(cand) {
				v, ok = cand, true
				break
			}
		}
	}
	if !ok {
		return 0, false
	}

	positive := s.heuristic.polarity(v)
	if ph := s.phase[v]; ph != Unknown {
		positive = ph == True
	}
	if positive {
		return PositiveLiteral(v), true
	}
	return NegativeLiteral(v), true
}

// Solve runs the main CDCL loop to completion: propagate, analyze on
// conflict (backjumping and learning), restart and reduceDB on schedule,
// or branch. It returns True (SAT, with a model appended to Models and the
// trail rewound to level 0 so that further clauses can be added), False
// (UNSAT), or Unknown if a stop condition fired.
func (s *Solver) Solve() LBool {
	if s.unsat {
		return False
	}
	s.startTime = time.Now()

	for {
		if s.stopRequested() {
			return Unknown
		}

		conflict, hasConflict := s.propagate()
		if hasConflict {
			s.stats.Conflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return False
			}

			learned, bj := s.analyze(conflict)
			lbd := s.lbdOf(learned)

			s.cancelUntil(bj)

			idx := s.addLearnt(learned, lbd)
			if !s.enqueue(learned[0], idx) {
				panic("cdclsat: asserting literal rejected after backjump (invariant violated)")
			}

			if s.restarter.onConflict() {
				s.stats.Restarts++
				s.cancelUntil(0)
			}

			if s.learntsSinceReduce >= reduceDBEvery {
				s.learntsSinceReduce = 0
				s.reduceDB()
			}

			continue
		}

		if s.allAssigned() {
			s.saveModel()
			s.cancelUntil(0)
			return True
		}

		lit, ok := s.decide()
		if !ok {
			s.saveModel()
			s.cancelUntil(0)
			return True
		}

		s.trail.beginDecisionLevel()
		s.stats.Decisions++
		s.enqueue(lit, decisionReason)
	}
}
