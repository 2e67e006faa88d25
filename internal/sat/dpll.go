package sat

import "context"

// SolveDPLL runs chronological DPLL search: unit propagation shared with
// CDCL, but conflicts are resolved by flipping the most recent
// not-yet-tried decision rather than by learning a clause (spec §4.2).
// ctx is checked at the top of both the outer decision loop and the inner
// backtrack loop; a cancelled context yields Timedout without touching any
// of the solver's invariants.
func (s *Solver) SolveDPLL(ctx context.Context) Outcome {
	if s.contradiction {
		return Unsat{}
	}
	if conflict := s.Propagate(); conflict != nil {
		return Unsat{}
	}

	for {
		select {
		case <-ctx.Done():
			return Timedout{}
		default:
		}

		lit, ok := s.heuristic.Pick(s)
		if !ok {
			return Sat{Model: positiveModel(s.saveModel())}
		}

		s.pushDecisionLevel(lit)

		for {
			conflict := s.Propagate()
			if conflict == nil {
				break
			}
			s.Stats.Conflicts++

			select {
			case <-ctx.Done():
				return Timedout{}
			default:
			}

			if !s.backtrack() {
				return Unsat{}
			}
		}
	}
}

// pushDecisionLevel opens a new decision level and assigns lit as its
// decision literal, with the opposite-polarity flag cleared.
func (s *Solver) pushDecisionLevel(lit Literal) {
	s.levelStart = append(s.levelStart, len(s.trail))
	s.decisions = append(s.decisions, decisionFrame{
		variable:   lit.VarID(),
		triedFalse: false,
	})
	s.Stats.Decisions++
	s.assign(lit, s.decisionLevel(), nil)
}

// backtrack implements spec §4.2: undo the current decision level; if its
// decision hasn't been tried in the opposite polarity yet, flip it and
// keep searching at the same level. Otherwise pop further. Returns false
// once every decision has exhausted both polarities (UNSAT).
func (s *Solver) backtrack() bool {
	for {
		if len(s.decisions) == 0 {
			return false
		}

		top := s.decisions[len(s.decisions)-1]
		start := s.levelStart[len(s.levelStart)-1]
		decided := s.trail[start]

		for i := len(s.trail) - 1; i >= start; i-- {
			s.unassign(s.trail[i].VarID())
		}
		s.trail = s.trail[:start]
		s.propIndex = start

		if !top.triedFalse {
			s.decisions[len(s.decisions)-1].triedFalse = true
			s.levelStart[len(s.levelStart)-1] = len(s.trail)
			flipped := decided.Opposite()
			s.assign(flipped, s.decisionLevel(), nil)
			return true
		}

		s.decisions = s.decisions[:len(s.decisions)-1]
		s.levelStart = s.levelStart[:len(s.levelStart)-1]
	}
}
