// Command satire is a DIMACS CNF SAT solver exposing DPLL and CDCL engines.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xDarkicex/satire/dimacs"
	"github.com/xDarkicex/satire/report"
	"github.com/xDarkicex/satire/sat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		report.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "satire <solver> check <file>",
		Short:         "A DPLL/CDCL SAT solver for DIMACS CNF formulas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, name := range sat.Names() {
		root.AddCommand(newSolverCmd(name))
	}

	return root
}

// configureLogging sets logrus's level from, in increasing priority: the
// default (info), the SATIRE_LOG environment variable, and -v/--verbose.
func configureLogging(verbose bool) {
	level := logrus.InfoLevel
	if raw := os.Getenv("SATIRE_LOG"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

func newSolverCmd(name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("run the %s solver", name),
	}
	cmd.AddCommand(newCheckCmd(name))
	return cmd
}

func newCheckCmd(solverName string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "solve a DIMACS CNF file and print SAT/UNSAT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(solverName, args[0])
		},
	}
}

func runCheck(solverName, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cnf, err := dimacs.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	engine, err := sat.New(solverName, cnf)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"solver":    solverName,
		"variables": cnf.NumVariables,
		"clauses":   cnf.NumClauses(),
	}).Debug("starting solve")

	model, satisfiable := engine.Solve()
	if satisfiable {
		fmt.Printf("SAT %s\n", model)
	} else {
		fmt.Println("UNSAT")
	}
	return nil
}
