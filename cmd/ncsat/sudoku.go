package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kvieira/ncsat/internal/decode"
	"github.com/kvieira/ncsat/internal/encoder"
	"github.com/kvieira/ncsat/internal/sat"
)

var flagWatch bool

func newSudokuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudoku [puzzle files...]",
		Short: "Solve non-consecutive Sudoku puzzles given as N×N grids of digits (0 = blank)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagWatch {
				return watchSudoku(cmd.Context(), args)
			}
			return solveSudokuFiles(cmd.Context(), args)
		},
	}
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "re-solve a puzzle file whenever it changes on disk")
	return cmd
}

func solveSudokuFiles(ctx context.Context, files []string) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, flagConcurr)

	for _, file := range files {
		file := file
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			return solveSudokuFile(gctx, file)
		})
	}
	return g.Wait()
}

func solveSudokuFile(ctx context.Context, file string) error {
	runID := uuid.NewString()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %q: %w", file, err)
	}
	defer f.Close()

	g, err := encoder.ParseGrid(f)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", file, err)
	}
	inst, err := encoder.Encode(g)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", file, err)
	}

	res, err := solveInstance(ctx, runID, inst.NumVars, inst.Clauses, engine(flagEngine), heuristicName(flagHeuristic), flagSeed, flagTimeout)
	if err != nil {
		return err
	}

	printOutcome(file, g.N, res.outcome, g.Cells)
	return nil
}

// printOutcome renders a solved grid, or reports UNSAT/timeout, to stdout.
func printOutcome(file string, n int, out sat.Outcome, clues [][]int) {
	switch o := out.(type) {
	case sat.Sat:
		grid := decode.Decode(n, o.Model)
		fmt.Printf("%s: SAT\n", file)
		fmt.Println(decode.Render(n, grid, clues))
	case sat.Unsat:
		fmt.Printf("%s: UNSAT\n", file)
	case sat.Timedout:
		fmt.Printf("%s: TIMEOUT\n", file)
	default:
		logrus.WithField("file", file).Warn("unrecognized outcome")
	}
}

func watchSudoku(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("watching %q: %w", file, err)
		}
		if err := solveSudokuFile(ctx, file); err != nil {
			logrus.WithError(err).WithField("file", file).Error("initial solve failed")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := solveSudokuFile(ctx, ev.Name); err != nil {
				logrus.WithError(err).WithField("file", ev.Name).Error("re-solve failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Error("watcher error")
		}
	}
}
