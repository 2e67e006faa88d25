// Package encoder turns a non-consecutive Sudoku puzzle into a CNF
// formula, following the boundary contract in spec §6. It is kept small
// and deterministic: no heuristics, no solver-specific knowledge.
package encoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for the malformed-input cases spec §7 calls out. Wrapped
// with fmt.Errorf("...: %w", ...) so callers can errors.Is against them.
var (
	ErrEmptyGrid        = errors.New("encoder: grid is empty")
	ErrNotSquareGrid    = errors.New("encoder: grid rows must all have length N")
	ErrNotPerfectSquare = errors.New("encoder: N must be a perfect square")
	ErrBadToken         = errors.New("encoder: non-integer token in grid")
	ErrValueOutOfRange  = errors.New("encoder: cell value must be in [0,N]")
)

// Grid is a parsed, unvalidated-beyond-shape N×N puzzle: 0 marks an empty
// cell, values in [1,N] are clues.
type Grid struct {
	N     int
	Cells [][]int
}

// ParseGrid reads a whitespace-separated N×N grid of non-negative integers
// from r (spec §6's input puzzle format). It validates shape but not the
// perfect-square constraint on N — that is Encode's job, since a caller
// might want to inspect a malformed grid before deciding to encode it.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows [][]int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadToken, f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("encoder: reading grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	n := len(rows)
	for _, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: got row of length %d, want %d", ErrNotSquareGrid, len(row), n)
		}
	}
	for _, row := range rows {
		for _, v := range row {
			if v < 0 || v > n {
				return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrValueOutOfRange, v, n)
			}
		}
	}

	return &Grid{N: n, Cells: rows}, nil
}

// Instance is the encoder's output contract (spec §6): NumVars = N³, and
// Clauses contains no duplicate literal and no tautological clause.
type Instance struct {
	NumVars int
	Clauses [][]int
	// Box is the derived √N block size, kept for the decoder/visualizer.
	Box int
}

// VarID returns the spec's variable numbering: var(r,c,v) = r·N²+c·N+v,
// for r,c ∈ [0,N) and v ∈ [1,N]. The returned id is the 1-based DIMACS
// variable number that Encode's clauses and the solver's model use.
func VarID(n, r, c, v int) int {
	return r*n*n + c*n + v
}

// Encode builds the CNF for g, following spec §6's five constraint
// families plus clue unit clauses. It returns ErrNotPerfectSquare if N is
// not a perfect square.
func Encode(g *Grid) (*Instance, error) {
	n := g.N
	box := int(math.Sqrt(float64(n)))
	if box*box != n {
		return nil, fmt.Errorf("%w: N=%d", ErrNotPerfectSquare, n)
	}

	var clauses [][]int
	exactlyOne := func(lits []int) {
		clauses = append(clauses, append([]int(nil), lits...))
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				clauses = append(clauses, []int{-lits[i], -lits[j]})
			}
		}
	}
	v := func(r, c, val int) int { return VarID(n, r, c, val) }

	// (1) Exactly one value per cell.
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			lits := make([]int, n)
			for val := 1; val <= n; val++ {
				lits[val-1] = v(r, c, val)
			}
			exactlyOne(lits)
		}
	}

	// (2) Exactly one column per (row, value).
	for val := 1; val <= n; val++ {
		for r := 0; r < n; r++ {
			lits := make([]int, n)
			for c := 0; c < n; c++ {
				lits[c] = v(r, c, val)
			}
			exactlyOne(lits)
		}
	}

	// (3) Exactly one row per (column, value).
	for val := 1; val <= n; val++ {
		for c := 0; c < n; c++ {
			lits := make([]int, n)
			for r := 0; r < n; r++ {
				lits[r] = v(r, c, val)
			}
			exactlyOne(lits)
		}
	}

	// (4) Exactly one cell per (box, value).
	for val := 1; val <= n; val++ {
		for br := 0; br < box; br++ {
			for bc := 0; bc < box; bc++ {
				lits := make([]int, 0, n)
				for i := 0; i < box; i++ {
					for j := 0; j < box; j++ {
						lits = append(lits, v(br*box+i, bc*box+j, val))
					}
				}
				exactlyOne(lits)
			}
		}
	}

	// (5) Non-consecutive rule: orthogonal neighbors cannot differ by 1.
	forbidAdjacent := func(r1, c1, r2, c2 int) {
		for val := 1; val <= n; val++ {
			if val-1 >= 1 {
				clauses = append(clauses, []int{-v(r1, c1, val), -v(r2, c2, val-1)})
			}
			if val+1 <= n {
				clauses = append(clauses, []int{-v(r1, c1, val), -v(r2, c2, val+1)})
			}
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if c+1 < n {
				forbidAdjacent(r, c, r, c+1)
			}
			if r+1 < n {
				forbidAdjacent(r, c, r+1, c)
			}
		}
	}

	// (6) Clues: unit clauses pinning the given digits.
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if val := g.Cells[r][c]; val > 0 {
				clauses = append(clauses, []int{v(r, c, val)})
			}
		}
	}

	return &Instance{
		NumVars: n * n * n,
		Clauses: clauses,
		Box:     box,
	}, nil
}
