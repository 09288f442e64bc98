package formula

import (
	"fmt"
	"strings"

	"github.com/xDarkicex/satire/core"
)

// CNF is a formula in conjunctive normal form: a conjunction of clauses over
// a fixed set of variables.
type CNF struct {
	NumVariables uint32
	Clauses      []Clause
}

// NewCNF allocates an empty formula declaring numVariables variables.
func NewCNF(numVariables uint32) *CNF {
	return &CNF{NumVariables: numVariables}
}

// AddClause appends a clause to the formula.
//
// It panics via core.InvariantError if the clause references a variable
// outside the declared range — the caller (the dimacs parser) is expected
// to have validated literals with ParseLiteral already, so this is a
// last-line defense against programmer error, not user input.
func (c *CNF) AddClause(clause Clause) {
	for _, lit := range clause.Literals {
		if lit.Var.Index() >= c.NumVariables {
			panic(core.NewInvariantErrorf("formula.CNF", "literal %s out of range for %d variables", lit, c.NumVariables))
		}
	}
	c.Clauses = append(c.Clauses, clause)
}

// NumClauses returns the number of clauses in the formula.
func (c *CNF) NumClauses() int {
	return len(c.Clauses)
}

// String renders the formula as "CNF with N variables (c1 ∧ c2 ∧ ...)".
func (c *CNF) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CNF with %d variables (", c.NumVariables)
	for i, clause := range c.Clauses {
		if i > 0 {
			b.WriteString(" ∧ ")
		}
		b.WriteString(clause.String())
	}
	b.WriteString(")")
	return b.String()
}
