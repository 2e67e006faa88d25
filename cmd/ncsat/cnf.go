package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kvieira/ncsat/internal/dimacsio"
	"github.com/kvieira/ncsat/internal/sat"
)

var flagGzip bool

func newCNFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cnf [dimacs files...]",
		Short: "Solve raw DIMACS CNF instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return solveCNFFiles(cmd.Context(), args)
		},
	}
	cmd.Flags().BoolVar(&flagGzip, "gzip", false, "input files are gzip-compressed")
	return cmd
}

func solveCNFFiles(ctx context.Context, files []string) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, flagConcurr)

	for _, file := range files {
		file := file
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			return solveCNFFile(gctx, file)
		})
	}
	return g.Wait()
}

func solveCNFFile(ctx context.Context, file string) error {
	runID := uuid.NewString()

	p, err := dimacsio.ReadFile(file, flagGzip)
	if err != nil {
		return err
	}

	res, err := solveInstance(ctx, runID, p.NumVars, p.Clauses, engine(flagEngine), heuristicName(flagHeuristic), flagSeed, flagTimeout)
	if err != nil {
		return err
	}

	switch o := res.outcome.(type) {
	case sat.Sat:
		fmt.Fprintf(os.Stdout, "%s: SAT\n", file)
		if err := dimacsio.WriteModel(os.Stdout, p.NumVars, o.Model); err != nil {
			return fmt.Errorf("writing model for %q: %w", file, err)
		}
	case sat.Unsat:
		fmt.Fprintf(os.Stdout, "%s: UNSAT\n", file)
	case sat.Timedout:
		fmt.Fprintf(os.Stdout, "%s: TIMEOUT\n", file)
	}
	return nil
}
