package sat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satire/formula"
	"github.com/xDarkicex/satire/sat"
)

func TestNewUnknownEngine(t *testing.T) {
	cnf := formula.NewCNF(1)
	_, err := sat.New("resolution", cnf)
	assert.Error(t, err)
}

func TestNewKnownEngines(t *testing.T) {
	cnf := formula.NewCNF(1)
	cnf.AddClause(formula.NewClause([]formula.Literal{formula.NewLiteral(0, true)}))

	for _, name := range sat.Names() {
		engine, err := sat.New(name, cnf)
		require.NoError(t, err)
		model, ok := engine.Solve()
		require.True(t, ok)
		assert.True(t, model.Assignment[0])
	}
}
