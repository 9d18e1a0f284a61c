package sat

import "time"

// Stats accumulates the search counters and scoped wall-clock timings the
// orchestrator reports, generalized from original_source/Solver.h's Stats
// struct (decisions/conflicts/propagations/learnts_added/
// clause_inspections/watch_moves/t_bcp_ms/t_analyze_ms) into Go-idiomatic
// durations.
type Stats struct {
	Decisions        int64
	Conflicts        int64
	Propagations     int64
	Restarts         int64
	LearntsAdded     int64
	ClauseInspections int64
	WatchMoves       int64

	BCPTime     time.Duration
	AnalyzeTime time.Duration
}

// scopedTimer returns a function that, when deferred, adds the elapsed
// time since its creation to *acc. It is the Go analogue of
// original_source/Timer.h's ScopedTimer: acquired at entry of a phase,
// released on every exit path via defer.
func scopedTimer(acc *time.Duration) func() {
	start := time.Now()
	return func() {
		*acc += time.Since(start)
	}
}
