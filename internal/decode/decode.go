// Package decode turns a solver model back into a grid, and renders that
// grid for a terminal, distinguishing the clues the puzzle started with
// from the cells the solve filled in.
package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Decode maps a positive-literal-only model (spec §6's output contract)
// back onto an N×N grid, using the same var(r,c,v) = r·N²+c·N+v numbering
// the encoder used. Cells with no positive literal in the model are left 0.
func Decode(n int, model []int) [][]int {
	grid := make([][]int, n)
	for i := range grid {
		grid[i] = make([]int, n)
	}
	for _, lit := range model {
		if lit <= 0 {
			continue
		}
		v := lit - 1
		row := v / (n * n)
		col := (v % (n * n)) / n
		val := v%n + 1
		if row < 0 || row >= n || col < 0 || col >= n {
			continue
		}
		grid[row][col] = val
	}
	return grid
}

var (
	clueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	solveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	gridStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws grid as a boxed table, coloring clue cells (from the
// original puzzle, given in clues) differently from cells the solver
// filled in. A 0 in clues marks a cell as not a clue.
func Render(n int, grid, clues [][]int) string {
	block := int(math.Sqrt(float64(n)))
	if block*block != n {
		block = 1
	}
	cellWidth := len(strconv.Itoa(n))

	sep := separatorLine(n, block, cellWidth)

	var b strings.Builder
	fmt.Fprintln(&b, gridStyle.Render(sep))
	for r := 0; r < n; r++ {
		var row strings.Builder
		for c := 0; c < n; c++ {
			if c%block == 0 {
				row.WriteString(gridStyle.Render("|"))
			}
			row.WriteString(renderCell(grid[r][c], clues[r][c], cellWidth))
			row.WriteString(" ")
		}
		row.WriteString(gridStyle.Render("|"))
		b.WriteString(row.String())
		b.WriteString("\n")
		if (r+1)%block == 0 {
			fmt.Fprintln(&b, gridStyle.Render(sep))
		}
	}
	return b.String()
}

func renderCell(val, clue, width int) string {
	if val == 0 {
		return emptyStyle.Render(strings.Repeat(".", width))
	}
	text := fmt.Sprintf("%*d", width, val)
	if clue != 0 {
		return clueStyle.Render(text)
	}
	return solveStyle.Render(text)
}

// separatorLine follows the same construction as the plain-text visualizer
// this was derived from: widen each '+' junction by the separator pieces it
// borders, so the line lines up under variable-width cells.
func separatorLine(n, block, cellWidth int) string {
	var parts []string
	for j := 0; j < n; j++ {
		if j%block == 0 {
			parts = append(parts, "+")
		}
		parts = append(parts, strings.Repeat("-", cellWidth))
		parts = append(parts, "-")
	}
	parts = append(parts, "+")
	return strings.Join(parts, "")
}
