package sat

import "fmt"

// Literal represents a literal, which either represents a boolean variable
// or its negation. Variables are 0-based internally; a Literal packs the
// variable and its sign into a single int so it doubles as a slice index
// for per-literal tables such as watch lists.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// LitFromInt converts a DIMACS-style signed, 1-based integer (as emitted by
// the encoder and accepted on the wire) into a Literal.
func LitFromInt(x int) Literal {
	if x < 0 {
		return NegativeLiteral(-x - 1)
	}
	return PositiveLiteral(x - 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// Int returns the signed, 1-based DIMACS representation of the literal.
func (l Literal) Int() int {
	if l.IsPositive() {
		return l.VarID() + 1
	}
	return -(l.VarID() + 1)
}

// IsPositive returns true if and only if the literal represent the value of
// its boolean variable (i.e. not its negation)
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID()+1)
	} else {
		return fmt.Sprintf("!%d", l.VarID()+1)
	}
}
