package formula_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satire/formula"
)

func TestParseLiteral(t *testing.T) {
	lit, err := formula.ParseLiteral("-3", 5)
	require.NoError(t, err)
	assert.Equal(t, formula.Variable(2), lit.Var)
	assert.False(t, lit.Positive)

	lit, err = formula.ParseLiteral("3", 5)
	require.NoError(t, err)
	assert.Equal(t, formula.Variable(2), lit.Var)
	assert.True(t, lit.Positive)
}

func TestParseLiteralZeroIsTerminator(t *testing.T) {
	_, err := formula.ParseLiteral("0", 5)
	require.ErrorIs(t, err, formula.ErrLiteralZero)
}

func TestParseLiteralOutOfRange(t *testing.T) {
	_, err := formula.ParseLiteral("6", 5)
	require.ErrorIs(t, err, formula.ErrVariableOutOfRange)

	_, err = formula.ParseLiteral("0", 5)
	require.Error(t, err)
}

func TestLiteralNotAndValue(t *testing.T) {
	lit := formula.NewLiteral(formula.Variable(0), true)
	assert.False(t, lit.Not().Positive)

	assignment := []bool{true, false}
	assert.True(t, lit.Value(assignment))
	assert.False(t, lit.Not().Value(assignment))
}

func TestClauseUnitAndEmpty(t *testing.T) {
	empty := formula.NewClause(nil)
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsUnit())

	unit := formula.NewClause([]formula.Literal{formula.NewLiteral(0, true)})
	assert.True(t, unit.IsUnit())
}

func TestModelVerifiesSatisfaction(t *testing.T) {
	cnf := formula.NewCNF(2)
	cnf.AddClause(formula.NewClause([]formula.Literal{
		formula.NewLiteral(0, true),
		formula.NewLiteral(1, false),
	}))

	model := formula.NewModel(cnf, []bool{true, true})
	assert.Equal(t, []bool{true, true}, model.Assignment)
}

func TestModelPanicsOnUnsatisfyingAssignment(t *testing.T) {
	cnf := formula.NewCNF(1)
	cnf.AddClause(formula.NewClause([]formula.Literal{formula.NewLiteral(0, true)}))

	assert.Panics(t, func() {
		formula.NewModel(cnf, []bool{false})
	})
}

func TestCNFAddClauseOutOfRangePanics(t *testing.T) {
	cnf := formula.NewCNF(1)
	assert.Panics(t, func() {
		cnf.AddClause(formula.NewClause([]formula.Literal{formula.NewLiteral(5, true)}))
	})
}

func TestClauseDeepEquality(t *testing.T) {
	a := formula.NewClause([]formula.Literal{formula.NewLiteral(0, true), formula.NewLiteral(1, false)})
	b := formula.NewClause([]formula.Literal{formula.NewLiteral(0, true), formula.NewLiteral(1, false)})

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("clauses should be equal (-want +got):\n%s", diff)
	}
}
