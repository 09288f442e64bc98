// Package cdcl implements conflict-driven clause learning: unit
// propagation as in dpll and VSIDS-guided decisions, but on conflict it
// runs First-UIP analysis to derive a new clause, backjumps non-
// chronologically to the level that clause lets it resume at, and adds the
// clause to the tracker (not to the input formula) so the same conflict can
// never recur.
package cdcl

import (
	"time"

	"github.com/xDarkicex/satire/analysis"
	"github.com/xDarkicex/satire/core"
	"github.com/xDarkicex/satire/formula"
	"github.com/xDarkicex/satire/heuristic"
	"github.com/xDarkicex/satire/tracker"
)

// Statistics records counters about a completed or in-flight search.
type Statistics struct {
	Decisions     int64
	Propagations  int64
	Conflicts     int64
	LearnedLiterals int64
	Duration      time.Duration
	TimedOut      bool
}

// Solver runs CDCL search over a formula.
type Solver struct {
	cnf   *formula.CNF
	t     *tracker.Tracker
	vsids *heuristic.VSIDS
	an    *analysis.Analyzer

	trail         []formula.Literal
	levelOf       []int
	antecedent    []*formula.Clause
	frame         []int // frame[level] = index in trail where that level's literals start; frame[0] == 0
	decisionLevel int

	stats Statistics
}

// New builds a Solver for f. seed controls VSIDS tiebreak randomization,
// for reproducible test runs.
func New(f *formula.CNF, seed int64) *Solver {
	t := tracker.FromCNF(f)
	return &Solver{
		cnf:        f,
		t:          t,
		vsids:      heuristic.New(t, seed),
		an:         analysis.New(),
		levelOf:    make([]int, f.NumVariables),
		antecedent: make([]*formula.Clause, f.NumVariables),
		frame:      []int{0},
	}
}

// Statistics returns a snapshot of the solver's counters.
func (s *Solver) Statistics() Statistics { return s.stats }

// Solve runs CDCL to completion, with no time limit.
func (s *Solver) Solve() (*formula.Model, bool) {
	start := time.Now()
	model, sat := s.run(nil)
	s.stats.Duration = time.Since(start)
	return model, sat
}

// SolveWithTimeout runs CDCL until it finishes or timeout elapses.
func (s *Solver) SolveWithTimeout(timeout time.Duration) (*formula.Model, bool) {
	start := time.Now()
	deadline := start.Add(timeout)
	model, sat := s.run(&deadline)
	s.stats.Duration = time.Since(start)
	return model, sat
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

func (s *Solver) run(deadline *time.Time) (*formula.Model, bool) {
	for {
		if s.timedOut(deadline) {
			return nil, false
		}

		conflictIdx, conflict := s.propagate()
		if conflict {
			s.stats.Conflicts++
			if s.decisionLevel == 0 {
				return nil, false
			}

			learned, backjumpLevel := s.analyzeConflict(conflictIdx)
			s.stats.LearnedLiterals += int64(learned.NumLiterals())
			s.vsids.Decay()
			if !learned.IsUnit() {
				s.vsids.LearnClause(learned)
			}
			s.backjumpTo(backjumpLevel)

			learnedIdx := s.t.AddClause(learned)
			if learned.IsEmpty() {
				return nil, false
			}
			lit, err := s.t.GetUnitClauseLiteral(learnedIdx)
			if err != nil {
				panic(err)
			}
			reason := s.t.OriginalClause(learnedIdx)
			s.assign(lit, &reason)
			continue
		}

		// propagate() found no conflict, so no clause is currently falsified;
		// terminate the instant every clause is satisfied rather than
		// waiting for every variable to be assigned (which the empty clause
		// and other clause-driven formulas may never require).
		if s.t.CountStatus(tracker.Satisfied) == s.t.NumClauses() {
			return formula.NewModel(s.cnf, s.t.Assignments().ToBools(true)), true
		}

		if s.vsids.Empty() {
			panic(core.NewInvariantError("cdcl", "no unassigned variable left in VSIDS but assignment incomplete"))
		}
		variable := s.vsids.Top()
		s.decisionLevel++
		s.frame = append(s.frame, len(s.trail))
		s.stats.Decisions++
		s.assign(formula.NewLiteral(variable, true), nil)
	}
}

// propagate assigns every forced literal it can find. It returns the index
// of a falsified clause the moment one appears, even if other unit clauses
// remain unprocessed — the caller must analyze before propagating further.
func (s *Solver) propagate() (tracker.ClauseIdx, bool) {
	for {
		if idx, ok := s.t.AnyFalsified(); ok {
			return idx, true
		}
		idx, ok := s.t.AnyUnit()
		if !ok {
			return 0, false
		}
		lit, err := s.t.GetUnitClauseLiteral(idx)
		if err != nil {
			panic(err)
		}
		s.stats.Propagations++
		reason := s.t.OriginalClause(idx)
		s.assign(lit, &reason)
	}
}

// assign sets lit's variable in the tracker and records it on the trail at
// the current decision level. reason is nil for a decision literal.
func (s *Solver) assign(lit formula.Literal, reason *formula.Clause) {
	s.t.SetLiteral(lit.Var, lit.Positive)
	s.vsids.Remove(lit.Var)
	s.trail = append(s.trail, lit)
	s.levelOf[lit.Var.Index()] = s.decisionLevel
	s.antecedent[lit.Var.Index()] = reason
}

// analyzeConflict runs First-UIP analysis over the trail's current-level
// literals, most recent first.
func (s *Solver) analyzeConflict(conflictIdx tracker.ClauseIdx) (formula.Clause, int) {
	conflicting := s.t.OriginalClause(conflictIdx)
	start := s.frame[s.decisionLevel]
	levelLits := make([]formula.Literal, len(s.trail)-start)
	copy(levelLits, s.trail[start:])
	for i, j := 0, len(levelLits)-1; i < j; i, j = i+1, j-1 {
		levelLits[i], levelLits[j] = levelLits[j], levelLits[i]
	}
	return s.an.Analyze(s, s.decisionLevel, conflicting, levelLits)
}

// backjumpTo undoes every assignment made at a decision level deeper than
// target, non-chronologically — target may be many levels below the
// conflict's level.
func (s *Solver) backjumpTo(target int) {
	cut := s.frame[target+1]
	for i := len(s.trail) - 1; i >= cut; i-- {
		v := s.trail[i].Var
		s.t.Unset(v)
		s.vsids.Insert(v)
		s.levelOf[v.Index()] = -1
		s.antecedent[v.Index()] = nil
	}
	s.trail = s.trail[:cut]
	s.frame = s.frame[:target+1]
	s.decisionLevel = target
}

// Value, Level, and Antecedent implement analysis.DataProvider.

func (s *Solver) Value(v formula.Variable) (bool, bool) { return s.t.Value(v) }

func (s *Solver) Level(v formula.Variable) int { return s.levelOf[v.Index()] }

func (s *Solver) Antecedent(v formula.Variable) (formula.Clause, bool) {
	c := s.antecedent[v.Index()]
	if c == nil {
		return formula.Clause{}, false
	}
	return *c, true
}
