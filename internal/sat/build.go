package sat

// FromClauses builds a Solver for numVars variables and the given clauses,
// where each clause is a list of signed, 1-based DIMACS literals. It is the
// common entry point used by both the Sudoku encoder and the raw-CNF CLI
// path (spec §6's boundary: the solver only ever sees ints in, ints out).
func FromClauses(numVars int, clauses [][]int, h Heuristic) (*Solver, error) {
	s := NewSolver(numVars, h)
	buf := make([]Literal, 0, 8)
	for _, clause := range clauses {
		buf = buf[:0]
		for _, x := range clause {
			buf = append(buf, LitFromInt(x))
		}
		if err := s.AddClause(buf); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// OccurrenceCounts returns, for numVars variables, how many literals of each
// variable appear across clauses. It is the static frequency table the
// FrequencyPhase heuristic is built from.
func OccurrenceCounts(numVars int, clauses [][]int) []int {
	counts := make([]int, numVars)
	for _, clause := range clauses {
		for _, x := range clause {
			v := LitFromInt(x).VarID()
			counts[v]++
		}
	}
	return counts
}
