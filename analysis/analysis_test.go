package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xDarkicex/satire/analysis"
	"github.com/xDarkicex/satire/formula"
)

// fakeTrail is a minimal analysis.DataProvider over a hand-built trail,
// used to exercise First-UIP resolution without running a full solver.
type fakeTrail struct {
	values      map[formula.Variable]bool
	levels      map[formula.Variable]int
	antecedents map[formula.Variable]formula.Clause
}

func (f *fakeTrail) Value(v formula.Variable) (bool, bool) {
	val, ok := f.values[v]
	return val, ok
}

func (f *fakeTrail) Level(v formula.Variable) int { return f.levels[v] }

func (f *fakeTrail) Antecedent(v formula.Variable) (formula.Clause, bool) {
	c, ok := f.antecedents[v]
	return c, ok
}

func lit(v uint32, positive bool) formula.Literal {
	return formula.NewLiteral(formula.Variable(v), positive)
}

func TestAnalyzeFindsFirstUIP(t *testing.T) {
	// x0 decided true at level 1; x1 forced true by (¬x0 ∨ x1).
	// x2 decided true at level 2; x3 forced true by (¬x2 ∨ x3).
	// Conflict: (¬x1 ∨ ¬x3) is falsified.
	data := &fakeTrail{
		values: map[formula.Variable]bool{0: true, 1: true, 2: true, 3: true},
		levels: map[formula.Variable]int{0: 1, 1: 1, 2: 2, 3: 2},
		antecedents: map[formula.Variable]formula.Clause{
			1: formula.NewClause([]formula.Literal{lit(0, false), lit(1, true)}),
			3: formula.NewClause([]formula.Literal{lit(2, false), lit(3, true)}),
		},
	}

	conflict := formula.NewClause([]formula.Literal{lit(1, false), lit(3, false)})
	trailAtLevel2 := []formula.Literal{lit(3, true), lit(2, true)} // most recent first

	a := analysis.New()
	learned, backjump := a.Analyze(data, 2, conflict, trailAtLevel2)

	assert.Equal(t, 1, backjump)
	assert.ElementsMatch(t, []formula.Literal{lit(1, false), lit(3, false)}, learned.Literals)
}

func TestAnalyzeResolvesThroughAntecedent(t *testing.T) {
	// x0 decided true at level 1.
	// x1 forced true at level 2 by (¬x0 ∨ x1) -- wait x1 must be level 2 to
	// participate in resolution at the current level.
	data := &fakeTrail{
		values: map[formula.Variable]bool{0: true, 1: true, 2: true},
		levels: map[formula.Variable]int{0: 1, 1: 2, 2: 2},
		antecedents: map[formula.Variable]formula.Clause{
			1: formula.NewClause([]formula.Literal{lit(0, false), lit(1, true)}),
		},
	}

	// Conflict clause falsified at level 2: (¬x1 ∨ ¬x2). x2 decides level 2
	// first; x1 is then forced by (¬x0 ∨ x1), so it is the more recent of
	// the two on the trail.
	conflict := formula.NewClause([]formula.Literal{lit(1, false), lit(2, false)})
	trailAtLevel2 := []formula.Literal{lit(1, true), lit(2, true)} // most recent first

	a := analysis.New()
	learned, backjump := a.Analyze(data, 2, conflict, trailAtLevel2)

	// Resolving x1 away via its antecedent pulls in ¬x0; x2's decision
	// becomes the UIP since it's the last current-level literal standing.
	assert.Equal(t, 1, backjump)
	assert.ElementsMatch(t, []formula.Literal{lit(0, false), lit(2, false)}, learned.Literals)
}
