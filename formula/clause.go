package formula

import "strings"

// Clause is a disjunction of literals.
type Clause struct {
	Literals []Literal
}

// NewClause builds a Clause from the given literals. The slice is taken by
// reference, not copied.
func NewClause(literals []Literal) Clause {
	return Clause{Literals: literals}
}

// NumLiterals returns the number of literals in the clause.
func (c Clause) NumLiterals() int {
	return len(c.Literals)
}

// IsEmpty reports whether the clause has no literals. An empty clause is
// always falsified.
func (c Clause) IsEmpty() bool {
	return len(c.Literals) == 0
}

// IsUnit reports whether the clause has exactly one literal.
func (c Clause) IsUnit() bool {
	return len(c.Literals) == 1
}

// Contains reports whether the clause mentions the given literal.
func (c Clause) Contains(l Literal) bool {
	for _, lit := range c.Literals {
		if lit == l {
			return true
		}
	}
	return false
}

// String renders the clause as "(x1 ∨ ¬x3)".
func (c Clause) String() string {
	if len(c.Literals) == 0 {
		return "()"
	}
	parts := make([]string, len(c.Literals))
	for i, lit := range c.Literals {
		parts[i] = lit.String()
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}
