package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hlindqvist/cdclsat/internal/dimacscnf"
	"github.com/hlindqvist/cdclsat/internal/sat"
)

// This suite verifies the solver end-to-end against the testdata fixtures:
// for each ".cnf" instance file there is a matching ".cnf.models" file
// holding the models a trusted reference solver found for it (empty for
// UNSAT instances). The one exception is the random 3-SAT smoke-test
// instance, which has no models file (see TestSolve_Random3SAT).
const testdataDir = "testdata"

type testCase struct {
	name         string
	instanceFile string
	modelsFile   string
}

func listTestCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		cases = append(cases, testCase{
			name:         d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})
	return cases, err
}

func toString(model []bool) string {
	b := make([]byte, len(model))
	for i, v := range model {
		if v {
			b[i] = 1
		}
	}
	return string(b)
}

func toSet(models [][]bool) map[string]struct{} {
	set := make(map[string]struct{}, len(models))
	for _, m := range models {
		set[toString(m)] = struct{}{}
	}
	return set
}

// solveAll repeatedly solves s, blocking each model found with a clause that
// forbids it, until the instance is exhausted, and returns every model
// found.
func solveAll(s *sat.Solver) [][]bool {
	for s.Solve() == sat.True {
		model := s.Models[len(s.Models)-1]
		blocking := make([]sat.Literal, len(model))
		for i, b := range model {
			if b {
				blocking[i] = sat.NegativeLiteral(i)
			} else {
				blocking[i] = sat.PositiveLiteral(i)
			}
		}
		s.AddClause(blocking)
	}
	return s.Models
}

func TestSolveAll(t *testing.T) {
	cases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("listTestCases(): %s", err)
	}
	if len(cases) == 0 {
		t.Fatal("no test cases found under testdata")
	}

	// Scenario 6 is a smoke test, not an exhaustive-model comparison: a
	// 20-variable instance can have far too many models to hand-enumerate.
	// It is exercised separately by TestSolve_Random3SAT.
	for _, tc := range cases {
		if tc.name == "random_3sat_20_40.cnf" {
			continue
		}

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			want, err := dimacscnf.ReadModels(tc.modelsFile)
			if err != nil {
				t.Fatalf("ReadModels(%s): %s", tc.modelsFile, err)
			}

			s := sat.NewDefaultSolver()
			if err := dimacscnf.Load(tc.instanceFile, false, s); err != nil {
				t.Fatalf("Load(%s): %s", tc.instanceFile, err)
			}

			got := solveAll(s)

			if len(got) != len(want) {
				t.Errorf("model count = %d, want %d", len(got), len(want))
			}
			if diff := cmp.Diff(toSet(want), toSet(got)); diff != "" {
				t.Errorf("models mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

type clauseCollector struct {
	numVars int
	clauses [][]sat.Literal
}

func (c *clauseCollector) AddVariable() int {
	c.numVars++
	return c.numVars - 1
}

func (c *clauseCollector) AddClause(tmp []sat.Literal) error {
	clause := make([]sat.Literal, len(tmp))
	copy(clause, tmp)
	c.clauses = append(c.clauses, clause)
	return nil
}

// TestSolve_Random3SAT smoke-tests every heuristic against a larger
// satisfiable instance, checking the returned model against the instance's
// own clauses rather than a fixed model list.
func TestSolve_Random3SAT(t *testing.T) {
	const path = "testdata/random_3sat_20_40.cnf"

	for _, kind := range []sat.HeuristicKind{sat.VSIDS, sat.JeroslowWang, sat.Random} {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			collector := &clauseCollector{}
			if err := dimacscnf.Load(path, false, collector); err != nil {
				t.Fatalf("Load(%s) into collector: %s", path, err)
			}

			opts := sat.DefaultOptions
			opts.Heuristic = kind
			opts.Seed = 1
			s := sat.NewSolver(opts)
			if err := dimacscnf.Load(path, false, s); err != nil {
				t.Fatalf("Load(%s): %s", path, err)
			}

			if got := s.Solve(); got != sat.True {
				t.Fatalf("Solve() = %s, want %s", got, sat.True)
			}

			model := s.Models[len(s.Models)-1]
			for _, c := range collector.clauses {
				satisfied := false
				for _, l := range c {
					v := l.VarID()
					if (l.IsPositive() && model[v]) || (!l.IsPositive() && !model[v]) {
						satisfied = true
						break
					}
				}
				if !satisfied {
					t.Errorf("clause %v not satisfied by model", c)
				}
			}
		})
	}
}
