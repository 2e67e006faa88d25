// Package dimacsio reads and writes raw DIMACS CNF files, for the "solve
// this CNF directly" CLI path as opposed to the Sudoku-specific one.
package dimacsio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/dimacs"
)

// Problem is a parsed CNF instance: NumVars from the DIMACS header, and
// Clauses as signed, 1-based literal lists.
type Problem struct {
	NumVars int
	Clauses [][]int
}

// ReadFile loads a DIMACS CNF file, transparently gzip-decompressing it
// when gzipped is true.
func ReadFile(filename string, gzipped bool) (*Problem, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacsio: opening %q: %w", filename, err)
	}
	defer f.Close()

	var rc io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("dimacsio: gzip %q: %w", filename, err)
		}
		defer gz.Close()
		rc = gz
	}

	b := &builder{}
	if err := dimacs.ReadBuilder(rc, b); err != nil {
		return nil, fmt.Errorf("dimacsio: parsing %q: %w", filename, err)
	}
	return &Problem{NumVars: b.numVars, Clauses: b.clauses}, nil
}

type builder struct {
	numVars int
	clauses [][]int
}

func (b *builder) Problem(problem string, nVars, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacsio: unsupported problem type %q", problem)
	}
	b.numVars = nVars
	b.clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	b.clauses = append(b.clauses, append([]int(nil), tmpClause...))
	return nil
}

func (b *builder) Comment(string) error { return nil }

// WriteModel writes model (a list of positive DIMACS literals) as a single
// 0-terminated DIMACS "clause" line holding one signed literal for every
// variable 1..numVars: positive if it appears in model, negative otherwise.
func WriteModel(w io.Writer, numVars int, model []int) error {
	truth := make(map[int]bool, numVars)
	for _, l := range model {
		truth[l] = true
	}
	parts := make([]string, 0, numVars+1)
	for v := 1; v <= numVars; v++ {
		if truth[v] {
			parts = append(parts, strconv.Itoa(v))
		} else {
			parts = append(parts, strconv.Itoa(-v))
		}
	}
	parts = append(parts, "0")
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}
