package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagEngine    string
	flagHeuristic string
	flagSeed      int64
	flagTimeout   time.Duration
	flagVerbose   bool
	flagConcurr   int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ncsat",
		Short:         "Solve non-consecutive Sudoku puzzles and raw CNF instances by reduction to SAT",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&flagEngine, "engine", "cdcl", "search engine: cdcl or dpll")
	root.PersistentFlags().StringVar(&flagHeuristic, "heuristic", "first", "branching heuristic: first, last, random, or freq")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "seed for the random heuristic")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "solve deadline (0 disables it)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVar(&flagConcurr, "concurrency", 4, "max files solved concurrently")

	root.AddCommand(newSudokuCmd())
	root.AddCommand(newCNFCmd())

	return root
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("ncsat failed")
	}
}
