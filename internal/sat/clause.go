package sat

import "strings"

// ClauseIdx identifies a clause by its position in the clause store. It is
// also used as a trail entry's "reason": every valid ClauseIdx names a
// clause that implied the corresponding assignment, and decisionReason is
// the sentinel for assignments made by branching rather than propagation.
//
// Indices, not pointers: reduceDB compacts the store, so holding raw
// pointers into it would be brittle. See DESIGN.md for the tradeoff.
type ClauseIdx int32

// decisionReason is the trail-reason sentinel for a decision literal, as
// opposed to a literal forced by unit propagation.
const decisionReason ClauseIdx = -1

// Clause is an ordered, mutable list of literals plus the bookkeeping the
// CDCL core needs: two watch positions, whether it was learnt by conflict
// analysis, its Literal Block Distance, and its activity score used by
// reduceDB.
type Clause struct {
	literals []Literal

	// w0 and w1 are positions into literals (not literals themselves) that
	// name the two watched slots. For an empty clause both are -1; for a
	// unit clause both are 0; otherwise w0=0, w1=1 at construction.
	w0, w1 int

	learnt bool

	// lbd is the Literal Block Distance: the number of distinct decision
	// levels spanned by the clause's literals. -1 means "not yet computed".
	lbd int

	activity float64
}

// newClause builds a clause from lits, taking ownership of a private copy.
// Default watch positions: empty -> (-1,-1), unit -> (0,0), otherwise
// (0,1).
func newClause(lits []Literal, learnt bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), lits...),
		learnt:   learnt,
		lbd:      -1,
	}
	switch len(c.literals) {
	case 0:
		c.w0, c.w1 = -1, -1
	case 1:
		c.w0, c.w1 = 0, 0
	default:
		c.w0, c.w1 = 0, 1
	}
	return c
}

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int {
	return len(c.literals)
}

// Lit returns the literal at position i.
func (c *Clause) Lit(i int) Literal {
	return c.literals[i]
}

// Watched returns the two watched literals. For a unit clause both calls
// return the same literal.
func (c *Clause) Watched() (Literal, Literal) {
	return c.literals[c.w0], c.literals[c.w1]
}

// otherWatch returns the position of the watch slot that is not at.
func (c *Clause) otherWatch(at int) int {
	if at == c.w0 {
		return c.w1
	}
	return c.w0
}

// setWatch moves the watch currently at position "at" to the new literal
// position "to".
func (c *Clause) setWatch(at, to int) {
	if at == c.w0 {
		c.w0 = to
	} else {
		c.w1 = to
	}
}

// IsLearnt reports whether the clause was produced by conflict analysis.
func (c *Clause) IsLearnt() bool {
	return c.learnt
}

// LBD returns the clause's cached Literal Block Distance, or -1 if it has
// not yet been computed.
func (c *Clause) LBD() int {
	return c.lbd
}

// lbdFromLevels computes the Literal Block Distance of lits: the number of
// distinct decision levels returned by levelOf across their variables.
func lbdFromLevels(lits []Literal, levelOf func(varID int) int) int {
	if len(lits) <= 1 {
		return len(lits)
	}
	seen := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		seen[levelOf(l.VarID())] = struct{}{}
	}
	return len(seen)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
