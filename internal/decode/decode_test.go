package decode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvieira/ncsat/internal/decode"
	"github.com/kvieira/ncsat/internal/encoder"
)

func TestDecode_RoundTripsEncoderVarNumbering(t *testing.T) {
	n := 4
	model := []int{
		encoder.VarID(n, 0, 0, 3),
		encoder.VarID(n, 1, 2, 1),
		-encoder.VarID(n, 3, 3, 4), // negative literals are ignored
	}
	grid := decode.Decode(n, model)

	assert.Equal(t, 3, grid[0][0])
	assert.Equal(t, 1, grid[1][2])
	assert.Equal(t, 0, grid[3][3])
}

func TestRender_ProducesABoxedGridWithAllValues(t *testing.T) {
	n := 4
	grid := [][]int{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	}
	clues := make([][]int, n)
	for i := range clues {
		clues[i] = make([]int, n)
	}
	clues[0][0] = 1 // only the top-left cell is a clue

	out := decode.Render(n, grid, clues)
	for _, v := range []string{"1", "2", "3", "4"} {
		assert.Contains(t, out, v)
	}
	assert.True(t, strings.Contains(out, "+"))
	assert.True(t, strings.Contains(out, "|"))
}

func TestRender_EmptyCellsRenderAsDots(t *testing.T) {
	n := 4
	grid := make([][]int, n)
	clues := make([][]int, n)
	for i := range grid {
		grid[i] = make([]int, n)
		clues[i] = make([]int, n)
	}
	out := decode.Render(n, grid, clues)
	assert.Contains(t, out, ".")
}
