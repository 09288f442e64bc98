package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satire/formula"
	"github.com/xDarkicex/satire/tracker"
)

func lit(v uint32, positive bool) formula.Literal {
	return formula.NewLiteral(formula.Variable(v), positive)
}

func TestNewClauseIsUnresolvedOrUnit(t *testing.T) {
	cnf := formula.NewCNF(3)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true), lit(1, true), lit(2, false)}))
	tk := tracker.FromCNF(cnf)

	assert.Equal(t, tracker.Unresolved, tk.Status(0))
	_, ok := tk.AnyUnit()
	assert.False(t, ok)
}

func TestSetLiteralSatisfiesClause(t *testing.T) {
	cnf := formula.NewCNF(2)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true), lit(1, false)}))
	tk := tracker.FromCNF(cnf)

	tk.SetLiteral(0, true)
	assert.Equal(t, tracker.Satisfied, tk.Status(0))
}

func TestSetLiteralLeavesUnitClause(t *testing.T) {
	cnf := formula.NewCNF(2)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true), lit(1, false)}))
	tk := tracker.FromCNF(cnf)

	tk.SetLiteral(0, false)
	assert.Equal(t, tracker.Unit, tk.Status(0))
	unitLit, err := tk.GetUnitClauseLiteral(0)
	require.NoError(t, err)
	assert.Equal(t, lit(1, false), unitLit)
}

func TestSetLiteralFalsifiesClause(t *testing.T) {
	cnf := formula.NewCNF(1)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true)}))
	tk := tracker.FromCNF(cnf)

	tk.SetLiteral(0, false)
	assert.Equal(t, tracker.Falsified, tk.Status(0))
	idx, ok := tk.AnyFalsified()
	require.True(t, ok)
	assert.EqualValues(t, 0, idx)
}

func TestUnsetRestoresExactState(t *testing.T) {
	cnf := formula.NewCNF(3)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true), lit(1, true), lit(2, false)}))
	tk := tracker.FromCNF(cnf)

	tk.SetLiteral(0, false)
	tk.SetLiteral(1, false)
	assert.Equal(t, tracker.Unit, tk.Status(0))

	tk.Unset(1)
	assert.Equal(t, tracker.Unresolved, tk.Status(0))
	tk.Unset(0)
	assert.Equal(t, tracker.Unresolved, tk.Status(0))
	assert.Equal(t, 0, tk.AssignedCount())
}

func TestAddClauseAfterAssignment(t *testing.T) {
	cnf := formula.NewCNF(2)
	tk := tracker.FromCNF(cnf)
	tk.SetLiteral(0, true)

	idx := tk.AddClause(formula.NewClause([]formula.Literal{lit(0, false), lit(1, true)}))
	assert.Equal(t, tracker.Unit, tk.Status(idx))
	unitLit, err := tk.GetUnitClauseLiteral(idx)
	require.NoError(t, err)
	assert.Equal(t, lit(1, true), unitLit)
}

func TestVariableOccurrence(t *testing.T) {
	cnf := formula.NewCNF(1)
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, true)}))
	cnf.AddClause(formula.NewClause([]formula.Literal{lit(0, false)}))
	tk := tracker.FromCNF(cnf)

	assert.Equal(t, 2, tk.VariableOccurrence(0))
}
