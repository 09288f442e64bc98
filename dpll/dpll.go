// Package dpll implements the classic Davis–Putnam–Logemann–Loveland
// search: unit propagation, pure-literal elimination, and recursive
// branching with chronological backtracking. It shares the formula and
// clause-tracker types with the cdcl package but does no clause learning.
package dpll

import (
	"time"

	"github.com/xDarkicex/satire/core"
	"github.com/xDarkicex/satire/formula"
	"github.com/xDarkicex/satire/tracker"
)

// Statistics records basic counters about a completed or in-flight search.
type Statistics struct {
	Decisions     int64
	Propagations  int64
	PureLiterals  int64
	Backtracks    int64
	Duration      time.Duration
	TimedOut      bool
}

// Solver runs DPLL search over a formula.
type Solver struct {
	cnf   *formula.CNF
	t     *tracker.Tracker
	stats Statistics
}

// New builds a Solver for f.
func New(f *formula.CNF) *Solver {
	return &Solver{cnf: f, t: tracker.FromCNF(f)}
}

// Statistics returns a snapshot of the solver's counters.
func (s *Solver) Statistics() Statistics { return s.stats }

// Solve runs DPLL to completion, with no time limit.
func (s *Solver) Solve() (*formula.Model, bool) {
	start := time.Now()
	sat := s.search(nil)
	s.stats.Duration = time.Since(start)
	if !sat {
		return nil, false
	}
	return formula.NewModel(s.cnf, s.t.Assignments().ToBools(true)), true
}

// SolveWithTimeout runs DPLL until it finishes or timeout elapses. When the
// timeout fires mid-search, it returns (nil, false) with Statistics().TimedOut
// set, which callers must distinguish from a genuine UNSAT result.
func (s *Solver) SolveWithTimeout(timeout time.Duration) (*formula.Model, bool) {
	start := time.Now()
	deadline := start.Add(timeout)
	sat := s.search(&deadline)
	s.stats.Duration = time.Since(start)
	if s.stats.TimedOut {
		return nil, false
	}
	if !sat {
		return nil, false
	}
	return formula.NewModel(s.cnf, s.t.Assignments().ToBools(true)), true
}

func (s *Solver) timedOut(deadline *time.Time) bool {
	if deadline == nil {
		return false
	}
	if time.Now().After(*deadline) {
		s.stats.TimedOut = true
		return true
	}
	return false
}

// search performs unit propagation to a fixed point, then pure-literal
// elimination, then (if neither closed the formula) branches on an
// unassigned variable, trying true then false.
//
// Termination is driven by the clause count, not the variable count: the
// search stops the moment every clause is satisfied, even if variables
// remain unassigned, and checks for a falsified clause before that so an
// unsatisfiable formula (including one containing the empty clause) is
// never mistaken for success just because propagation happened to assign
// everything.
func (s *Solver) search(deadline *time.Time) bool {
	if s.timedOut(deadline) {
		return false
	}

	assignedThisCall, ok := s.propagateUnits()
	if !ok {
		s.undoAll(assignedThisCall)
		return false
	}
	assignedThisCall = append(assignedThisCall, s.eliminatePureLiterals()...)

	if _, falsified := s.t.AnyFalsified(); falsified {
		s.undoAll(assignedThisCall)
		return false
	}
	if s.t.CountStatus(tracker.Satisfied) == s.t.NumClauses() {
		return true
	}

	variable, ok := s.firstUnassigned()
	if !ok {
		// every variable is assigned, none falsified, yet some clause is
		// still not satisfied — impossible once every literal is resolved.
		panic(core.NewInvariantError("dpll", "no unassigned variable but some clause is neither satisfied nor falsified"))
	}

	s.stats.Decisions++
	s.t.SetLiteral(variable, true)
	if s.search(deadline) {
		return true
	}
	s.t.Unset(variable)

	s.stats.Decisions++
	s.stats.Backtracks++
	s.t.SetLiteral(variable, false)
	if s.search(deadline) {
		return true
	}
	s.t.Unset(variable)

	s.undoAll(assignedThisCall)
	return false
}

// propagateUnits repeatedly assigns forced literals until no unit clause
// remains or a conflict is found. It returns every variable it assigned, in
// assignment order, so the caller can undo them on failure.
func (s *Solver) propagateUnits() ([]formula.Variable, bool) {
	var assigned []formula.Variable
	for {
		idx, ok := s.t.AnyUnit()
		if !ok {
			break
		}
		lit, err := s.t.GetUnitClauseLiteral(idx)
		if err != nil {
			panic(err)
		}
		s.stats.Propagations++
		s.t.SetLiteral(lit.Var, lit.Positive)
		assigned = append(assigned, lit.Var)

		if _, falsified := s.t.AnyFalsified(); falsified {
			return assigned, false
		}
	}
	return assigned, true
}

// eliminatePureLiterals assigns every variable that currently appears with
// only one polarity among not-yet-satisfied clauses.
func (s *Solver) eliminatePureLiterals() []formula.Variable {
	var assigned []formula.Variable
	for i := uint32(0); i < s.cnf.NumVariables; i++ {
		v := formula.Variable(i)
		if _, ok := s.t.Value(v); ok {
			continue
		}
		pos := s.hasUnsatisfiedOccurrence(formula.NewLiteral(v, true))
		neg := s.hasUnsatisfiedOccurrence(formula.NewLiteral(v, false))
		if pos && !neg {
			s.stats.PureLiterals++
			s.t.SetLiteral(v, true)
			assigned = append(assigned, v)
		} else if neg && !pos {
			s.stats.PureLiterals++
			s.t.SetLiteral(v, false)
			assigned = append(assigned, v)
		}
	}
	return assigned
}

func (s *Solver) hasUnsatisfiedOccurrence(lit formula.Literal) bool {
	for _, idx := range s.t.LiveOccurrences(lit) {
		if s.t.Status(idx) != tracker.Satisfied {
			return true
		}
	}
	return false
}

func (s *Solver) firstUnassigned() (formula.Variable, bool) {
	for i := uint32(0); i < s.cnf.NumVariables; i++ {
		v := formula.Variable(i)
		if _, ok := s.t.Value(v); !ok {
			return v, true
		}
	}
	return 0, false
}

func (s *Solver) undoAll(vars []formula.Variable) {
	for i := len(vars) - 1; i >= 0; i-- {
		s.t.Unset(vars[i])
	}
}
