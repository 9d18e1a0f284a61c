// Package dimacscnf loads DIMACS CNF files into a sat.Solver. It wraps the
// third-party token-level reader github.com/rhartert/dimacs and layers the
// declared-vs-observed validations of the external interface on top: the
// tokenizer itself does not enforce that the declared clause count matches
// what was actually read, or that every variable stays within the declared
// range, so this package checks both: a clause naming an out-of-range
// variable is rejected before it reaches the solver, and the clause count is
// compared once the whole file has been read (by then every clause read has
// already been handed to the solver).
package dimacscnf

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/hlindqvist/cdclsat/internal/sat"
)

// Solver is the subset of *sat.Solver this package needs, kept narrow so
// callers can substitute a fake in tests.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacscnf: %w", err)
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("dimacscnf: not a gzip file: %w", err)
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and feeds its declared
// variables and clauses to solver, in the order they appear in the file.
// It rejects a file whose actual clause count disagrees with the
// declared one, or whose observed maximum variable exceeds the declared
// numVars.
func Load(filename string, gzipped bool, solver Solver) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return err
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return fmt.Errorf("dimacscnf: %w", err)
	}
	if b.numClauses != b.clausesSeen {
		return fmt.Errorf("dimacscnf: declared %d clauses, found %d", b.numClauses, b.clausesSeen)
	}
	return nil
}

// builder implements dimacs.Builder, translating its 1-based signed-integer
// literals into sat.Literal and tracking the counts Load validates.
type builder struct {
	solver Solver

	numVars     int
	numClauses  int
	clausesSeen int
}

func (b *builder) Problem(problem string, numVars int, numClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q (want cnf)", problem)
	}
	b.numVars = numVars
	b.numClauses = numClauses
	for i := 0; i < numVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	b.clausesSeen++
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		v := l
		if v < 0 {
			v = -v
		}
		if v > b.numVars {
			return fmt.Errorf("variable %d exceeds declared count %d", v, b.numVars)
		}
		if l < 0 {
			lits[i] = sat.NegativeLiteral(v - 1)
		} else {
			lits[i] = sat.PositiveLiteral(v - 1)
		}
	}
	return b.solver.AddClause(lits)
}

func (b *builder) Comment(string) error {
	return nil
}

// ReadModels parses a ".cnf.models" fixture: one model per line, encoded the
// same way as a DIMACS clause line (one signed literal per variable,
// positive meaning true), used by the end-to-end test harness to check
// solver output against pre-computed reference models.
func ReadModels(filename string) ([][]bool, error) {
	r, err := openReader(filename, false)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacscnf: %w", err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(string, int, int) error {
	return fmt.Errorf("models file must not contain a problem line")
}

func (b *modelBuilder) Comment(string) error {
	return nil
}

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
