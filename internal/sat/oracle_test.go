package sat_test

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// giniSatisfiable is a differential oracle independent of this package's own
// propagation and analysis code: it re-solves the same CNF with a mature,
// unrelated solver so the UNSAT-soundness property isn't just checked
// against itself.
func giniSatisfiable(numVars int, clauses [][]int) bool {
	g := gini.New()
	for v := 1; v <= numVars; v++ {
		g.Add(z.Dimacs2Lit(v))
		g.Add(z.Dimacs2Lit(-v))
		g.Add(0) // touch every variable so gini's internal count matches
	}
	for _, clause := range clauses {
		for _, x := range clause {
			g.Add(z.Dimacs2Lit(x))
		}
		g.Add(0)
	}
	return g.Solve() == 1
}
