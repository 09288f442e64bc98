// Package analysis implements First-UIP conflict analysis: given a
// falsified clause and the trail that produced it, it derives a new clause
// containing exactly one literal from the current decision level (the
// first unique implication point) plus every literal from an earlier,
// non-root level that the resolution reaches.
package analysis

import (
	"github.com/xDarkicex/satire/core"
	"github.com/xDarkicex/satire/formula"
)

// DataProvider answers the three questions conflict analysis needs about a
// variable on the trail: its current value, the decision level it was set
// at, and — for variables set by unit propagation — the clause that forced
// it (ok is false for decisions).
type DataProvider interface {
	Value(v formula.Variable) (bool, bool)
	Level(v formula.Variable) int
	Antecedent(v formula.Variable) (formula.Clause, bool)
}

// Analyzer runs First-UIP analysis. A single Analyzer may be reused across
// many conflicts; Analyze resets its internal state each call.
type Analyzer struct {
	seen            map[formula.Variable]bool
	recorded        []formula.Literal
	recordedLevels  []int
	unresolvedCount int
}

// New returns a ready-to-use Analyzer.
func New() *Analyzer {
	return &Analyzer{seen: make(map[formula.Variable]bool)}
}

func (a *Analyzer) reset() {
	for k := range a.seen {
		delete(a.seen, k)
	}
	a.recorded = a.recorded[:0]
	a.recordedLevels = a.recordedLevels[:0]
	a.unresolvedCount = 0
}

// markIfUnseen marks v as participating in the resolution, returning true
// the first time v is seen.
func (a *Analyzer) markIfUnseen(v formula.Variable) bool {
	if a.seen[v] {
		return false
	}
	a.seen[v] = true
	return true
}

// addClause folds every literal of clause into the in-progress resolvent:
// literals at the current decision level count toward the still-unresolved
// total (they'll be walked off the trail next); literals from earlier,
// non-root levels are recorded directly into the learned clause.
func (a *Analyzer) addClause(data DataProvider, currentLevel int, clause formula.Clause) {
	for _, lit := range clause.Literals {
		if !a.markIfUnseen(lit.Var) {
			continue
		}
		level := data.Level(lit.Var)
		switch {
		case level == currentLevel:
			a.unresolvedCount++
		case level != 0:
			a.recorded = append(a.recorded, lit)
			a.recordedLevels = append(a.recordedLevels, level)
		}
	}
}

// Analyze derives a learned clause from a conflicting clause and the trail
// of literals assigned at the current decision level, most recent first.
// It returns the learned clause and the second-highest decision level it
// mentions — the level the cdcl engine should backjump to (0 if the
// learned clause has no other literals).
func (a *Analyzer) Analyze(data DataProvider, currentLevel int, conflicting formula.Clause, trailAtLevel []formula.Literal) (formula.Clause, int) {
	a.reset()
	a.addClause(data, currentLevel, conflicting)

	for _, lit := range trailAtLevel {
		v := lit.Var
		if !a.seen[v] {
			continue
		}
		a.unresolvedCount--
		if a.unresolvedCount == 0 {
			value, ok := data.Value(v)
			if !ok {
				panic(core.NewInvariantErrorf("analysis", "UIP variable %s has no value", v))
			}
			uip := formula.NewLiteral(v, !value)

			backjump := 0
			for _, lvl := range a.recordedLevels {
				if lvl > backjump {
					backjump = lvl
				}
			}

			literals := append(append([]formula.Literal{}, a.recorded...), uip)
			return formula.NewClause(literals), backjump
		}

		antecedent, ok := data.Antecedent(v)
		if !ok {
			panic(core.NewInvariantErrorf("analysis", "%s reached without being the UIP and has no antecedent (decision variable mid-resolution)", v))
		}
		a.addClause(data, currentLevel, antecedent)
	}

	panic(core.NewInvariantError("analysis", "exhausted trail without finding a unique implication point"))
}
