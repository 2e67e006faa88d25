// Package sat implements a from-scratch CDCL/DPLL SAT engine: a shared
// assignment/trail/watch-list core (this file), chronological DPLL search
// (dpll.go), conflict-driven search with First-UIP learning (cdcl.go), and
// pluggable branching heuristics (heuristic.go).
package sat

import "fmt"

// Solver holds the state shared by both search modes: the clause database,
// the trail of assignments, two-watched-literal watch lists, and per-
// variable level/reason bookkeeping. A Solver is single-threaded and owns
// its state exclusively for its lifetime; there is no shared mutable state
// across instances and no I/O performed by the solver itself (spec §5).
type Solver struct {
	numVars int

	// Clause database. Original and learned clauses share one namespace
	// conceptually; pointer identity is the stable "index" (see clause.go).
	clauses []*Clause
	learnts []*Clause

	// watches[l] lists the clauses currently watching literal l.
	watches [][]*Clause

	// assigns is indexed by literal: assigns[l] mirrors the truth value of
	// l directly (not just its variable), so LitValue is a single lookup.
	assigns []LBool

	// Trail of signed literals in assignment order, and the propagation
	// cursor into it (spec §3: propIndex).
	trail     []Literal
	propIndex int

	// levelStart[k] is the trail index at which decision level k+1 began.
	// len(levelStart) is the current decision level.
	levelStart []int

	// Per-variable bookkeeping.
	level  []int
	reason []*Clause

	// decisions is the chronological-DPLL decision stack (spec §4.2). CDCL
	// never pushes to it; backjump never reads it.
	decisions []decisionFrame

	// contradiction is set the moment a clause is added that can never be
	// satisfied (the empty clause, or a unit clause on an already-opposite
	// assignment). This replaces the spec's alternative of synthesizing an
	// {+1,-1} unit pair: it signals the conflict directly, as the spec's
	// own open-question resolution prefers.
	contradiction bool

	heuristic Heuristic

	// Scratch buffers reused across calls to avoid repeated allocation.
	seenVar     *ResetSet
	tmpWatchers []*Clause
	tmpLearnt   []Literal
	tmpReason   []Literal

	// Search statistics, read by callers after Solve returns. The solver
	// never performs I/O itself; logging these is the caller's job.
	Stats Stats
}

// Stats accumulates counters over a Solve call.
type Stats struct {
	Decisions    int64
	Propagations int64
	Conflicts    int64
	Backjumps    int64
	LearnedLits  int64
}

type decisionFrame struct {
	variable   int
	triedFalse bool
}

// NewSolver returns a Solver with numVars variables and no clauses yet,
// using h to choose decision literals.
func NewSolver(numVars int, h Heuristic) *Solver {
	s := &Solver{
		heuristic: h,
		seenVar:   &ResetSet{},
	}
	for i := 0; i < numVars; i++ {
		s.AddVariable()
	}
	return s
}

// AddVariable declares one new variable and returns its 0-based index.
// Kept for parity with incremental DIMACS loading, where the variable
// count is only known after the header line.
func (s *Solver) AddVariable() int {
	v := s.numVars
	s.numVars++

	s.watches = append(s.watches, nil, nil)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.level = append(s.level, -1)
	s.reason = append(s.reason, nil)
	s.seenVar.Expand()

	if s.heuristic != nil {
		s.heuristic.AddVariable()
	}

	return v
}

func (s *Solver) NumVariables() int   { return s.numVars }
func (s *Solver) NumAssigned() int    { return len(s.trail) }
func (s *Solver) NumConstraints() int { return len(s.clauses) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }

// LitValue returns the current truth value of literal l.
func (s *Solver) LitValue(l Literal) LBool { return s.assigns[l] }

// VarValue returns the current truth value of variable v.
func (s *Solver) VarValue(v int) LBool { return s.assigns[PositiveLiteral(v)] }

func (s *Solver) decisionLevel() int { return len(s.levelStart) }

// watch registers c to be woken when literal l becomes true (i.e. when its
// opposite is falsified and c needs to re-examine itself).
func (s *Solver) watch(c *Clause, l Literal) {
	s.watches[l] = append(s.watches[l], c)
}

// AddClause adds an original (non-learned) clause. Per spec §4.3, clauses
// may only be added at decision level 0. literals is consumed as scratch
// space by clause construction (deduplication, tautology removal).
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called at decision level %d, must be 0", s.decisionLevel())
	}
	c, ok := NewClause(s, literals, false)
	if !ok {
		s.contradiction = true
		return nil
	}
	if c != nil {
		s.clauses = append(s.clauses, c)
	}
	return nil
}

// assign records that literal l is true, at the given decision level, with
// the given reason clause (nil for a decision or a root-level fact). It
// returns false if l is already falsified (a conflict), true otherwise —
// including when l was already true (a no-op).
func (s *Solver) assign(l Literal, level int, reason *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = level
		s.reason[v] = reason
		s.trail = append(s.trail, l)
		s.Stats.Propagations++
		if s.heuristic != nil {
			s.heuristic.OnAssign(l)
		}
		return true
	}
}

// unassign clears variable v's assignment. Watch lists are left untouched:
// 2WL tolerates temporarily stale watches, re-establishing the invariant
// lazily as propagation proceeds (spec design notes).
func (s *Solver) unassign(v int) {
	pos := PositiveLiteral(v)
	s.assigns[pos] = Unknown
	s.assigns[pos.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1
	if s.heuristic != nil {
		s.heuristic.OnUnassign(v)
	}
}

// Propagate drains the trail: for every literal assigned but not yet
// examined, it wakes every clause watching that literal (registered, per
// watch's doc comment, to wake when that literal becomes true — i.e. when
// its opposite is falsified). It returns the first clause found to be
// fully falsified, or nil if propagation reached a fixpoint with no
// conflict (spec §4.1).
func (s *Solver) Propagate() *Clause {
	for s.propIndex < len(s.trail) {
		l := s.trail[s.propIndex]
		s.propIndex++

		ws := s.watches[l]
		s.tmpWatchers = append(s.tmpWatchers[:0], ws...)
		s.watches[l] = s.watches[l][:0]

		for i, c := range s.tmpWatchers {
			if c.propagate(s, l) {
				continue
			}
			// Conflict: put back the watchers we hadn't processed yet.
			s.watches[l] = append(s.watches[l], s.tmpWatchers[i+1:]...)
			return c
		}
	}
	return nil
}

// saveModel collects the current (total) assignment as a DIMACS-style
// model: one positive or negative literal per variable.
func (s *Solver) saveModel() []int {
	model := make([]int, s.numVars)
	for v := 0; v < s.numVars; v++ {
		switch s.VarValue(v) {
		case True:
			model[v] = v + 1
		case False:
			model[v] = -(v + 1)
		default:
			panic("sat: saveModel called with an incomplete assignment")
		}
	}
	return model
}

// positiveModel is the encoder/decoder-facing contract from spec §6: the
// list of positive literals of variables set true (negatives are implied
// by omission).
func positiveModel(full []int) []int {
	out := make([]int, 0, len(full))
	for _, l := range full {
		if l > 0 {
			out = append(out, l)
		}
	}
	return out
}
