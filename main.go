package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hlindqvist/cdclsat/internal/dimacscnf"
	"github.com/hlindqvist/cdclsat/internal/sat"
)

var flagCNF = flag.String(
	"cnf",
	"testdata/small_sat.cnf",
	"path to the DIMACS CNF instance to solve",
)

var flagHeuristic = flag.String(
	"heuristic",
	"vsids",
	"branching heuristic(s) to run, comma-separated: vsids, jw, random",
)

var flagSeed = flag.Uint64(
	"seed",
	0,
	"seed for the random heuristic (0 = unseeded)",
)

var flagStats = flag.String(
	"stats",
	"",
	"append a CSV row per run to this path",
)

type config struct {
	cnfPath    string
	heuristics []sat.HeuristicKind
	seed       uint64
	statsPath  string
}

func parseConfig() (*config, error) {
	flag.Parse()

	var kinds []sat.HeuristicKind
	for _, name := range strings.Split(*flagHeuristic, ",") {
		k, err := sat.ParseHeuristicKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}

	return &config{
		cnfPath:    *flagCNF,
		heuristics: kinds,
		seed:       *flagSeed,
		statsPath:  *flagStats,
	}, nil
}

// runResult carries the per-run numbers the CSV row and the console
// summary both need.
type runResult struct {
	heuristic sat.HeuristicKind
	verdict   sat.LBool
	elapsed   time.Duration
	stats     sat.Stats
}

func runOne(cfg *config, kind sat.HeuristicKind) (*runResult, *sat.Solver, error) {
	opts := sat.DefaultOptions
	opts.Heuristic = kind
	opts.Seed = cfg.seed

	s := sat.NewSolver(opts)
	if err := dimacscnf.Load(cfg.cnfPath, false, s); err != nil {
		return nil, nil, fmt.Errorf("could not load instance: %w", err)
	}

	start := time.Now()
	verdict := s.Solve()
	elapsed := time.Since(start)

	return &runResult{
		heuristic: kind,
		verdict:   verdict,
		elapsed:   elapsed,
		stats:     s.Stats(),
	}, s, nil
}

func printVerdict(s *sat.Solver, verdict sat.LBool) {
	if verdict == sat.True {
		model := s.Models[len(s.Models)-1]
		line := make([]string, len(model))
		for v, b := range model {
			if b {
				line[v] = strconv.Itoa(v + 1)
			} else {
				line[v] = strconv.Itoa(-(v + 1))
			}
		}
		fmt.Println(strings.Join(line, " "))
		fmt.Println("SATISFIABLE")
		return
	}
	if verdict == sat.Unknown {
		fmt.Println("UNKNOWN")
		return
	}
	fmt.Println("UNSATISFIABLE")
}

func appendStatsRow(path string, cfg *config, r *runResult) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open stats file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	return w.Write([]string{
		cfg.cnfPath,
		r.heuristic.String(),
		strconv.FormatUint(cfg.seed, 10),
		r.verdict.String(),
		strconv.FormatInt(r.stats.Conflicts, 10),
		strconv.FormatInt(r.stats.Decisions, 10),
		strconv.FormatInt(r.stats.Restarts, 10),
		strconv.FormatInt(r.stats.LearntsAdded, 10),
		strconv.FormatFloat(r.elapsed.Seconds(), 'f', -1, 64),
	})
}

func run(cfg *config) error {
	for _, kind := range cfg.heuristics {
		r, s, err := runOne(cfg, kind)
		if err != nil {
			return err
		}

		fmt.Printf("c heuristic:  %s\n", kind)
		fmt.Printf("c variables:  %d\n", s.NumVariables())
		fmt.Printf("c clauses:    %d\n", s.NumConstraints())
		fmt.Printf("c time (sec): %f\n", r.elapsed.Seconds())
		fmt.Printf("c conflicts:  %d\n", r.stats.Conflicts)

		printVerdict(s, r.verdict)

		if cfg.statsPath != "" {
			if err := appendStatsRow(cfg.statsPath, cfg, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
