// Package formula defines the CNF data model shared by the dpll and cdcl
// engines: variables, literals, clauses, whole formulas, and satisfying
// models.
package formula

import "fmt"

// Variable is a zero-based index into a formula's variable set. DIMACS
// input and output use 1-based numbering; Variable always stores the
// 0-based form internally and converts at the edges.
type Variable uint32

// MaxVariableIndex is the largest index a Variable can hold.
const MaxVariableIndex = ^Variable(0)

// NewVariable builds a Variable from a 0-based index, reporting whether the
// index is representable.
func NewVariable(index uint64) (Variable, bool) {
	if index > uint64(MaxVariableIndex) {
		return 0, false
	}
	return Variable(index), true
}

// Index returns the 0-based index of the variable.
func (v Variable) Index() uint32 {
	return uint32(v)
}

// String renders the variable in 1-based DIMACS style, e.g. "x3".
func (v Variable) String() string {
	return fmt.Sprintf("x%d", uint32(v)+1)
}
