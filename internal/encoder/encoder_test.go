package encoder_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvieira/ncsat/internal/encoder"
	"github.com/kvieira/ncsat/internal/sat"
)

func TestParseGrid_RejectsRaggedRows(t *testing.T) {
	_, err := encoder.ParseGrid(strings.NewReader("1 2 3\n4 5\n7 8 9\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, encoder.ErrNotSquareGrid)
}

func TestParseGrid_RejectsNonInteger(t *testing.T) {
	_, err := encoder.ParseGrid(strings.NewReader("1 2\nx 4\n"))
	assert.ErrorIs(t, err, encoder.ErrBadToken)
}

func TestParseGrid_RejectsOutOfRangeValue(t *testing.T) {
	_, err := encoder.ParseGrid(strings.NewReader("1 2\n3 9\n"))
	assert.ErrorIs(t, err, encoder.ErrValueOutOfRange)
}

func TestParseGrid_RejectsEmpty(t *testing.T) {
	_, err := encoder.ParseGrid(strings.NewReader(""))
	assert.ErrorIs(t, err, encoder.ErrEmptyGrid)
}

func TestEncode_RejectsNonPerfectSquareN(t *testing.T) {
	g := &encoder.Grid{N: 5, Cells: make([][]int, 5)}
	for i := range g.Cells {
		g.Cells[i] = make([]int, 5)
	}
	_, err := encoder.Encode(g)
	assert.ErrorIs(t, err, encoder.ErrNotPerfectSquare)
}

func TestEncode_VarIDMatchesSpecFormula(t *testing.T) {
	// var(r,c,v) = r*N*N + c*N + v
	assert.Equal(t, 1, encoder.VarID(4, 0, 0, 1))
	assert.Equal(t, 4, encoder.VarID(4, 0, 0, 4))
	assert.Equal(t, 5, encoder.VarID(4, 0, 1, 1))
	assert.Equal(t, 4*4*4, encoder.VarID(4, 3, 3, 4))
}

func TestEncode_EmptyGridIsSatisfiable(t *testing.T) {
	n := 9
	g := emptyGrid(n)
	inst, err := encoder.Encode(g)
	require.NoError(t, err)
	assert.Equal(t, n*n*n, inst.NumVars)

	s, err := sat.FromClauses(inst.NumVars, inst.Clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	out := s.SolveCDCL(context.Background())
	assert.IsType(t, sat.Sat{}, out)
}

func TestEncode_ClueIsHonoredInEveryModel(t *testing.T) {
	n := 9
	g := emptyGrid(n)
	g.Cells[0][0] = 3
	inst, err := encoder.Encode(g)
	require.NoError(t, err)

	s, err := sat.FromClauses(inst.NumVars, inst.Clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	out := s.SolveCDCL(context.Background())
	model, ok := out.(sat.Sat)
	require.True(t, ok)

	want := encoder.VarID(n, 0, 0, 3)
	found := false
	for _, l := range model.Model {
		if l == want {
			found = true
		}
	}
	assert.True(t, found, "clue variable %d not set in model", want)
}

func TestEncode_AdjacentConsecutiveCluesAreUnsat(t *testing.T) {
	n := 4
	g := emptyGrid(n)
	g.Cells[0][0] = 2
	g.Cells[0][1] = 3 // horizontally adjacent and consecutive: forbidden
	inst, err := encoder.Encode(g)
	require.NoError(t, err)

	s, err := sat.FromClauses(inst.NumVars, inst.Clauses, sat.NewFirstUnassigned())
	require.NoError(t, err)
	out := s.SolveCDCL(context.Background())
	assert.IsType(t, sat.Unsat{}, out)
}

func TestEncode_NoDuplicateOrTautologicalClauses(t *testing.T) {
	n := 4
	g := emptyGrid(n)
	g.Cells[1][1] = 2
	inst, err := encoder.Encode(g)
	require.NoError(t, err)

	for _, clause := range inst.Clauses {
		lits := map[int]bool{}
		for _, x := range clause {
			if lits[-x] {
				t.Fatalf("tautological clause: %v", clause)
			}
			if lits[x] {
				t.Fatalf("duplicate literal %d in clause: %v", x, clause)
			}
			lits[x] = true
		}
	}
}

func emptyGrid(n int) *encoder.Grid {
	cells := make([][]int, n)
	for i := range cells {
		cells[i] = make([]int, n)
	}
	return &encoder.Grid{N: n, Cells: cells}
}
