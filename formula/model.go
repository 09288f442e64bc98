package formula

import (
	"fmt"
	"strings"

	"github.com/xDarkicex/satire/core"
)

// Model is a satisfying assignment for a formula.
type Model struct {
	Formula    *CNF
	Assignment []bool
}

// NewModel builds a Model from a formula and a complete assignment.
//
// It panics via core.InvariantError if the assignment's length doesn't
// match the formula's variable count, or if any clause is left
// unsatisfied — a solver must never construct a Model it hasn't verified,
// since "SAT" with a broken witness is worse than reporting UNSAT.
func NewModel(f *CNF, assignment []bool) *Model {
	if len(assignment) != int(f.NumVariables) {
		panic(core.NewInvariantErrorf("formula.Model", "assignment length %d does not match %d variables", len(assignment), f.NumVariables))
	}

	for _, clause := range f.Clauses {
		satisfied := false
		for _, lit := range clause.Literals {
			if lit.Value(assignment) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			panic(core.NewInvariantErrorf("formula.Model", "clause %s is not satisfied by the assignment", clause))
		}
	}

	return &Model{Formula: f, Assignment: assignment}
}

// String renders the model as "Model for <formula>\nAssignment:\n  x1: true\n...".
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model for %s\nAssignment:", m.Formula)
	for idx, val := range m.Assignment {
		fmt.Fprintf(&b, "\n  %s: %t", Variable(idx), val)
	}
	return b.String()
}
