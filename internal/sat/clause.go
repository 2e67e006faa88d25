package sat

import "strings"

// Clause is an ordered, mutable sequence of literals. Order is mutable by
// design: two-watched-literal propagation keeps its watched literals at
// positions 0 and 1, swapping positions as assignments invalidate a watch.
// Original and learned clauses share this representation and the solver's
// clause-index namespace (here, pointer identity stands in for the index:
// a *Clause is a stable reference for the lifetime of the solver, the same
// role an arena offset/length pair would play).
type Clause struct {
	literals []Literal
	learnt   bool
}

// NewClause builds a clause from tmpLiterals. For original (non-learnt)
// clauses it also performs the bookkeeping the spec requires before a
// clause is handed to the solver: duplicate literals are collapsed,
// tautologies (a clause containing both l and ¬l) are dropped as always
// true, and literals already falsified at the current (root) assignment
// are removed. tmpLiterals is used as scratch space and may be reordered.
//
// The second return value is false only when the clause is a genuine
// contradiction: an empty clause, or one whose single remaining literal is
// already assigned false. Callers (AddClause) translate that into the
// solver's explicit contradiction flag, per the spec's resolution of the
// "empty clause" open question — no synthetic {+1,-1} pair is injected.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology: clause is always true
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false // contradiction
	case 1:
		return nil, s.assign(tmpLiterals[0], s.decisionLevel(), nil)
	default:
		c := &Clause{
			learnt:   learnt,
			literals: append([]Literal(nil), tmpLiterals...),
		}

		if learnt {
			// Position 1 holds the literal with the highest decision level
			// among the non-asserting literals, so that the clause is unit
			// immediately after the backjump to that level (spec §4.3).
			maxLevel := -1
			swapAt := 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel = lvl
					swapAt = i
				}
			}
			c.literals[1], c.literals[swapAt] = c.literals[swapAt], c.literals[1]
		}

		s.watch(c, c.literals[0].Opposite())
		s.watch(c, c.literals[1].Opposite())

		return c, true
	}
}

// propagate is invoked when literal l, one of c's two watches, has just
// become true — meaning its opposite, formerly unassigned, is now
// falsified in c. It implements spec §4.1's watcher update: find a
// replacement watch among positions 2..end, or, failing that, assign (or
// report conflict on) the other watched literal.
func (c *Clause) propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l) // clause already satisfied, keep watching l
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c, c.literals[1].Opposite())
			return true
		}
	}

	// No replacement: clauses[0] must become true or this is a conflict.
	s.watch(c, l)
	return s.assign(c.literals[0], s.decisionLevel(), c)
}

// explainConflict returns the negation of every literal in c, i.e. the
// reason all of them are currently false — used when c itself is the
// conflicting clause during analysis.
func (c *Clause) explainConflict(buf []Literal) []Literal {
	buf = buf[:0]
	for _, l := range c.literals {
		buf = append(buf, l.Opposite())
	}
	return buf
}

// explainAssign returns the negation of every literal but the asserted one
// (position 0) — the reason c forced position 0's literal true.
func (c *Clause) explainAssign(buf []Literal) []Literal {
	buf = buf[:0]
	for _, l := range c.literals[1:] {
		buf = append(buf, l.Opposite())
	}
	return buf
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteByte('(')
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteString(" v ")
		sb.WriteString(l.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
