package sat

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// Heuristic is the solver's pluggable decision policy (spec §4.4): given
// the current assignment, Pick chooses the next decision literal. The
// AddVariable/OnAssign/OnUnassign hooks let a heuristic maintain whatever
// bookkeeping it needs (e.g. phase saving) without the search loop having
// to know which variant is in use.
type Heuristic interface {
	// AddVariable is called once per variable, in declaration order,
	// before the variable is ever assigned.
	AddVariable()

	// OnAssign is called after every assignment, decision or propagated.
	OnAssign(l Literal)

	// OnUnassign is called when v becomes unassigned again (backtrack or
	// backjump), after the solver has already cleared its own state.
	OnUnassign(v int)

	// Pick returns the next decision literal, or ok=false if every
	// variable is already assigned.
	Pick(s *Solver) (lit Literal, ok bool)
}

// FirstUnassigned always branches on the smallest-indexed unassigned
// variable, positive polarity.
type FirstUnassigned struct{ n int }

func NewFirstUnassigned() *FirstUnassigned { return &FirstUnassigned{} }

func (h *FirstUnassigned) AddVariable()        { h.n++ }
func (h *FirstUnassigned) OnAssign(Literal)    {}
func (h *FirstUnassigned) OnUnassign(int)      {}
func (h *FirstUnassigned) Pick(s *Solver) (Literal, bool) {
	for v := 0; v < h.n; v++ {
		if s.VarValue(v) == Unknown {
			return PositiveLiteral(v), true
		}
	}
	return 0, false
}

// LastUnassigned always branches on the largest-indexed unassigned
// variable, positive polarity.
type LastUnassigned struct{ n int }

func NewLastUnassigned() *LastUnassigned { return &LastUnassigned{} }

func (h *LastUnassigned) AddVariable()     { h.n++ }
func (h *LastUnassigned) OnAssign(Literal) {}
func (h *LastUnassigned) OnUnassign(int)   {}
func (h *LastUnassigned) Pick(s *Solver) (Literal, bool) {
	for v := h.n - 1; v >= 0; v-- {
		if s.VarValue(v) == Unknown {
			return PositiveLiteral(v), true
		}
	}
	return 0, false
}

// RandomUnassigned picks uniformly among unassigned variables, positive
// polarity, using reservoir sampling so it needs no auxiliary index.
type RandomUnassigned struct {
	n   int
	rng *rand.Rand
}

// NewRandomUnassigned returns a RandomUnassigned heuristic seeded from
// seed, so that runs are reproducible when the caller wants them to be.
func NewRandomUnassigned(seed int64) *RandomUnassigned {
	return &RandomUnassigned{rng: rand.New(rand.NewSource(seed))}
}

func (h *RandomUnassigned) AddVariable()     { h.n++ }
func (h *RandomUnassigned) OnAssign(Literal) {}
func (h *RandomUnassigned) OnUnassign(int)   {}
func (h *RandomUnassigned) Pick(s *Solver) (Literal, bool) {
	chosen := -1
	seen := 0
	for v := 0; v < h.n; v++ {
		if s.VarValue(v) != Unknown {
			continue
		}
		seen++
		if h.rng.Intn(seen) == 0 {
			chosen = v
		}
	}
	if chosen < 0 {
		return 0, false
	}
	return PositiveLiteral(chosen), true
}

// FrequencyPhase branches on the unassigned variable with the highest
// static occurrence count across the original clauses (ties broken by
// lowest index, via the heap's own tie-breaking), using the polarity it
// was last assigned (phase saving), positive if never assigned before.
type FrequencyPhase struct {
	order  *yagh.IntMap[float64]
	counts []float64
	phases []LBool
}

// NewFrequencyPhase builds the heuristic from per-variable static
// occurrence counts (counts[v] = number of original-clause literals whose
// variable is v). Variables are then declared via AddVariable in the same
// order the solver declares them.
func NewFrequencyPhase(counts []int) *FrequencyPhase {
	h := &FrequencyPhase{
		order:  yagh.New[float64](len(counts)),
		counts: make([]float64, len(counts)),
	}
	for v, c := range counts {
		h.counts[v] = float64(c)
	}
	return h
}

func (h *FrequencyPhase) AddVariable() {
	v := len(h.phases)
	h.phases = append(h.phases, Unknown)
	h.order.GrowBy(1)
	count := 0.0
	if v < len(h.counts) {
		count = h.counts[v]
	}
	// yagh pops the minimum key first; negate so the highest-frequency
	// variable surfaces first, matching the teacher's VarOrder convention.
	h.order.Put(v, -count)
}

func (h *FrequencyPhase) OnAssign(l Literal) {
	if l.IsPositive() {
		h.phases[l.VarID()] = True
	} else {
		h.phases[l.VarID()] = False
	}
}

func (h *FrequencyPhase) OnUnassign(v int) {
	h.order.Put(v, -h.counts[v])
}

func (h *FrequencyPhase) Pick(s *Solver) (Literal, bool) {
	for {
		item, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		if s.VarValue(item.Elem) != Unknown {
			continue // stale entry: reinserted lazily on OnUnassign
		}
		switch h.phases[item.Elem] {
		case False:
			return NegativeLiteral(item.Elem), true
		default:
			return PositiveLiteral(item.Elem), true
		}
	}
}
