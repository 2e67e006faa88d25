package sat_test

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvieira/ncsat/internal/sat"
)

func solveBoth(t *testing.T, numVars int, clauses [][]int) (dpll, cdcl sat.Outcome) {
	t.Helper()

	s1, err := sat.FromClauses(numVars, clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	dpll = s1.SolveDPLL(context.Background())

	s2, err := sat.FromClauses(numVars, clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	cdcl = s2.SolveCDCL(context.Background())

	return dpll, cdcl
}

func checkModel(t *testing.T, numVars int, clauses [][]int, model []int) {
	t.Helper()
	truth := make(map[int]bool, numVars)
	for _, l := range model {
		truth[abs(l)] = l > 0
	}
	for _, clause := range clauses {
		satisfied := false
		for _, x := range clause {
			if truth[abs(x)] == (x > 0) {
				satisfied = true
				break
			}
		}
		assert.Truef(t, satisfied, "clause %v not satisfied by model %v", clause, model)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// End-to-end scenarios.

func TestSolve_UnitClauseSAT(t *testing.T) {
	clauses := [][]int{{1}}
	dpll, cdcl := solveBoth(t, 1, clauses)

	for _, out := range []sat.Outcome{dpll, cdcl} {
		sat, ok := out.(sat.Sat)
		require.Truef(t, ok, "got %#v", out)
		checkModel(t, 1, clauses, sat.Model)
	}
}

func TestSolve_DirectContradictionUNSAT(t *testing.T) {
	clauses := [][]int{{1}, {-1}}
	dpll, cdcl := solveBoth(t, 1, clauses)

	assert.IsType(t, sat.Unsat{}, dpll)
	assert.IsType(t, sat.Unsat{}, cdcl)
}

func TestSolve_TwoVarContradictionUNSAT(t *testing.T) {
	clauses := [][]int{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	dpll, cdcl := solveBoth(t, 2, clauses)

	assert.IsType(t, sat.Unsat{}, dpll)
	assert.IsType(t, sat.Unsat{}, cdcl)
}

func TestSolve_FourClauseThreeVarSAT(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {-2, 3}, {-3, 1}}
	dpll, cdcl := solveBoth(t, 3, clauses)

	for _, out := range []sat.Outcome{dpll, cdcl} {
		m, ok := out.(sat.Sat)
		require.Truef(t, ok, "got %#v", out)
		checkModel(t, 3, clauses, m.Model)
	}
}

func TestSolve_RequiresBacktrackingSAT(t *testing.T) {
	// Forces at least one wrong branch under a first-unassigned, positive
	// default heuristic: x1 true is tried first and leads to a conflict.
	clauses := [][]int{
		{1, 2}, {2, -3}, {-1, 3}, {-1, -3},
	}
	dpll, cdcl := solveBoth(t, 3, clauses)

	for _, out := range []sat.Outcome{dpll, cdcl} {
		m, ok := out.(sat.Sat)
		require.Truef(t, ok, "got %#v", out)
		checkModel(t, 3, clauses, m.Model)
	}
}

func TestSolve_ContradictoryUnitsAmidTautologiesUNSAT(t *testing.T) {
	// The unit clauses {1} and {-1} contradict each other; the clauses
	// {i, -i} for i>1 are tautologies that clause construction drops. Both
	// engines must still report UNSAT.
	n := 10
	clauses := [][]int{{1}, {-1}}
	for i := 2; i <= n; i++ {
		clauses = append(clauses, []int{i, -i}) // always satisfiable noise
	}
	dpll, cdcl := solveBoth(t, n, clauses)
	assert.IsType(t, sat.Unsat{}, dpll)
	assert.IsType(t, sat.Unsat{}, cdcl)
}

// Property: every reported Sat model satisfies every input clause
// (model soundness, spec §8).
func TestProperty_ModelSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		numVars := 1 + rng.Intn(6)
		numClauses := 1 + rng.Intn(10)
		clauses := randomClauses(rng, numVars, numClauses)

		s, err := sat.FromClauses(numVars, clauses, sat.NewRandomUnassigned(int64(trial)))
		require.NoError(t, err)
		out := s.SolveCDCL(context.Background())
		if m, ok := out.(sat.Sat); ok {
			checkModel(t, numVars, clauses, m.Model)
		}
	}
}

// Property: UNSAT soundness, checked against an independent solver.
func TestProperty_UnsatSoundnessAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		numVars := 1 + rng.Intn(6)
		numClauses := 1 + rng.Intn(12)
		clauses := randomClauses(rng, numVars, numClauses)

		dpll, cdcl := solveBoth(t, numVars, clauses)
		want := giniSatisfiable(numVars, clauses)

		_, dpllSat := dpll.(sat.Sat)
		_, cdclSat := cdcl.(sat.Sat)
		assert.Equalf(t, want, dpllSat, "DPLL disagreed with oracle on %v", clauses)
		assert.Equalf(t, want, cdclSat, "CDCL disagreed with oracle on %v", clauses)
	}
}

// Property: DPLL and CDCL agree on satisfiability for every instance (they
// share propagation and only differ in search strategy).
func TestProperty_DPLLAndCDCLAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 150; trial++ {
		numVars := 1 + rng.Intn(7)
		numClauses := 1 + rng.Intn(14)
		clauses := randomClauses(rng, numVars, numClauses)

		dpll, cdcl := solveBoth(t, numVars, clauses)
		_, dpllSat := dpll.(sat.Sat)
		_, cdclSat := cdcl.(sat.Sat)
		assert.Equal(t, dpllSat, cdclSat)
	}
}

func randomClauses(rng *rand.Rand, numVars, numClauses int) [][]int {
	clauses := make([][]int, numClauses)
	for i := range clauses {
		width := 1 + rng.Intn(3)
		clause := make([]int, width)
		for j := range clause {
			v := 1 + rng.Intn(numVars)
			if rng.Intn(2) == 0 {
				v = -v
			}
			clause[j] = v
		}
		clauses[i] = clause
	}
	return clauses
}

// Timedout is reachable via an already-cancelled context, without otherwise
// disturbing a solver's invariants (spec §5: not a core-invariant outcome).
func TestSolve_TimedoutOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clauses := [][]int{{1, 2}, {-1, 3}, {-2, 3}, {-3, 1}}
	s, err := sat.FromClauses(3, clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)

	out := s.SolveDPLL(ctx)
	assert.IsType(t, sat.Timedout{}, out)
}

// A deterministic heuristic run twice on the same instance must reach the
// exact same model both times — the search has no hidden source of
// nondeterminism (map iteration order, etc).
func TestProperty_DeterministicHeuristicIsModelStable(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3}, {-1, 2}, {-2, 3}, {-3, 1}, {1, -2, -3},
	}

	run := func() []int {
		s, err := sat.FromClauses(3, clauses, sat.NewFirstUnassigned())
		require.NoError(t, err)
		out := s.SolveCDCL(context.Background())
		m, ok := out.(sat.Sat)
		require.True(t, ok)
		model := append([]int(nil), m.Model...)
		sort.Ints(model)
		return model
	}

	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("model changed across identical runs (-first +second):\n%s", diff)
	}
}

func TestSolve_EmptyClauseIsImmediateUnsat(t *testing.T) {
	clauses := [][]int{{}}
	s, err := sat.FromClauses(1, clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	assert.IsType(t, sat.Unsat{}, s.SolveCDCL(context.Background()))
}
