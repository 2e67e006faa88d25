package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kvieira/ncsat/internal/sat"
)

// engine selects which search strategy shares the package's propagation
// core (spec §4: CDCL and DPLL differ only in how conflicts are resolved).
type engine string

const (
	engineCDCL engine = "cdcl"
	engineDPLL engine = "dpll"
)

// heuristicName selects a branching heuristic (spec §4.4).
type heuristicName string

const (
	heuristicFirst  heuristicName = "first"
	heuristicLast   heuristicName = "last"
	heuristicRandom heuristicName = "random"
	heuristicFreq   heuristicName = "freq"
)

func newHeuristic(name heuristicName, numVars int, clauses [][]int, seed int64) (sat.Heuristic, error) {
	switch name {
	case heuristicFirst, "":
		return sat.NewFirstUnassigned(), nil
	case heuristicLast:
		return sat.NewLastUnassigned(), nil
	case heuristicRandom:
		return sat.NewRandomUnassigned(seed), nil
	case heuristicFreq:
		return sat.NewFrequencyPhase(sat.OccurrenceCounts(numVars, clauses)), nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// solveResult bundles an outcome with the stats and wall-clock time a
// caller wants to log, since the solver itself never logs (spec §5).
type solveResult struct {
	runID    string
	outcome  sat.Outcome
	stats    sat.Stats
	elapsed  time.Duration
	numVars  int
	numConst int
}

func solveInstance(ctx context.Context, runID string, numVars int, clauses [][]int, eng engine, h heuristicName, seed int64, timeout time.Duration) (*solveResult, error) {
	heuristic, err := newHeuristic(h, numVars, clauses, seed)
	if err != nil {
		return nil, err
	}

	s, err := sat.FromClauses(numVars, clauses, heuristic)
	if err != nil {
		return nil, fmt.Errorf("building solver: %w", err)
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    runID,
		"vars":      numVars,
		"clauses":   len(clauses),
		"engine":    eng,
		"heuristic": h,
	}).Info("starting solve")

	start := time.Now()
	var outcome sat.Outcome
	switch eng {
	case engineDPLL:
		outcome = s.SolveDPLL(runCtx)
	case engineCDCL, "":
		outcome = s.SolveCDCL(runCtx)
	default:
		return nil, fmt.Errorf("unknown engine %q", eng)
	}
	elapsed := time.Since(start)

	res := &solveResult{
		runID:    runID,
		outcome:  outcome,
		stats:    s.Stats,
		elapsed:  elapsed,
		numVars:  numVars,
		numConst: len(clauses),
	}

	logrus.WithFields(logrus.Fields{
		"run_id":      runID,
		"outcome":     outcomeName(outcome),
		"elapsed":     elapsed,
		"decisions":   s.Stats.Decisions,
		"conflicts":   s.Stats.Conflicts,
		"backjumps":   s.Stats.Backjumps,
		"propagation": s.Stats.Propagations,
	}).Info("solve finished")

	return res, nil
}

func outcomeName(o sat.Outcome) string {
	switch o.(type) {
	case sat.Sat:
		return "sat"
	case sat.Unsat:
		return "unsat"
	case sat.Timedout:
		return "timedout"
	default:
		return "unknown"
	}
}
