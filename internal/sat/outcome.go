package sat

// Outcome is the solver's result as a closed sum type: exactly one of Sat,
// Unsat, or Timedout. Deliberately not a (string, nullable-slice) pair —
// see spec design notes on sum types over status.
type Outcome interface {
	isOutcome()
}

// Sat carries a complete model as the list of positive literals of the
// variables set true; variables not mentioned are false.
type Sat struct {
	Model []int
}

func (Sat) isOutcome() {}

// Unsat means no satisfying assignment exists.
type Unsat struct{}

func (Unsat) isOutcome() {}

// Timedout means the external deadline passed before a verdict was
// reached. It is not part of the core invariants (§5): a caller that
// never supplies a deadline will never observe it.
type Timedout struct{}

func (Timedout) isOutcome() {}
