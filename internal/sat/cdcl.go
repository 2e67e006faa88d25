package sat

import "context"

// SolveCDCL runs conflict-driven clause learning search: two-watched-
// literal propagation (shared with DPLL), First-UIP conflict analysis, and
// non-chronological backjumping (spec §4.3). ctx is checked at the top of
// the decision loop and the inner conflict-resolution loop.
func (s *Solver) SolveCDCL(ctx context.Context) Outcome {
	if s.contradiction {
		return Unsat{}
	}

	for {
		select {
		case <-ctx.Done():
			return Timedout{}
		default:
		}

		conflict := s.Propagate()
		for conflict != nil {
			s.Stats.Conflicts++

			if s.decisionLevel() == 0 {
				return Unsat{}
			}

			learned, backjumpLevel := s.analyze(conflict)
			if backjumpLevel < 0 {
				return Unsat{}
			}
			s.backjump(backjumpLevel)
			s.record(learned)
			s.Stats.Backjumps++
			s.Stats.LearnedLits += int64(len(learned))

			select {
			case <-ctx.Done():
				return Timedout{}
			default:
			}

			conflict = s.Propagate()
		}

		if s.NumAssigned() == s.NumVariables() {
			return Sat{Model: positiveModel(s.saveModel())}
		}

		lit, ok := s.heuristic.Pick(s)
		if !ok {
			return Sat{Model: positiveModel(s.saveModel())}
		}
		s.assume(lit)
		s.Stats.Decisions++
	}
}

// assume opens a new decision level and assigns lit as a pure decision
// (no reason clause). Used only by CDCL; DPLL uses pushDecisionLevel,
// which additionally maintains the decisions stack CDCL never touches.
func (s *Solver) assume(lit Literal) {
	s.levelStart = append(s.levelStart, len(s.trail))
	s.assign(lit, s.decisionLevel(), nil)
}

// analyze implements First-UIP conflict analysis (spec §4.3): walking the
// trail backward from the conflict, it resolves reason clauses until
// exactly one literal of the current decision level remains unresolved —
// the first unique implication point. It returns the learned clause (the
// UIP's negation at position 0, followed by the lower-level literals) and
// the level to backjump to, or backjumpLevel -1 if the conflict is already
// at decision level 0 (root-level UNSAT).
func (s *Solver) analyze(conflict *Clause) ([]Literal, int) {
	if s.decisionLevel() == 0 {
		return nil, -1
	}

	s.tmpLearnt = append(s.tmpLearnt[:0], 0) // placeholder for the UIP literal
	s.seenVar.Clear()

	pending := 0 // literals from the current decision level not yet resolved
	backjumpLevel := 0

	explain := conflict.explainConflict(s.tmpReason)
	nextIndex := len(s.trail) - 1
	var uipLit Literal

	for {
		for _, q := range explain {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)

			if s.level[v] == s.decisionLevel() {
				pending++
				continue
			}

			s.tmpLearnt = append(s.tmpLearnt, q.Opposite())
			if lvl := s.level[v]; lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		// Find the next trail literal whose variable is in the pending set.
		var reasonClause *Clause
		for {
			uipLit = s.trail[nextIndex]
			nextIndex--
			v := uipLit.VarID()
			if s.seenVar.Contains(v) {
				reasonClause = s.reason[v]
				break
			}
		}

		pending--
		if pending <= 0 {
			break
		}
		s.tmpReason = reasonClause.explainAssign(s.tmpReason)
		explain = s.tmpReason
	}

	s.tmpLearnt[0] = uipLit.Opposite()
	learned := append([]Literal(nil), s.tmpLearnt...)
	return learned, backjumpLevel
}

// record adds a freshly learned clause to the database and immediately
// asserts its UIP literal, which the backjump to backjumpLevel has made
// unit (spec §4.3: "the subsequent propagate call consumes this forced
// assignment").
func (s *Solver) record(learned []Literal) {
	c, _ := NewClause(s, learned, true)
	s.assign(learned[0], s.decisionLevel(), c)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
}

// backjump undoes every assignment made after decision level `level`,
// truncating the decision-level bookkeeping down to it (spec §4.3). It
// does not itself assign the asserting literal; record does that right
// after, relying on backjump having left the learned clause unit.
func (s *Solver) backjump(level int) {
	target := s.levelStart[level]

	for i := len(s.trail) - 1; i >= target; i-- {
		s.unassign(s.trail[i].VarID())
	}
	s.trail = s.trail[:target]
	s.propIndex = target
	s.levelStart = s.levelStart[:level]
}
