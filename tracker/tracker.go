// Package tracker maintains, for every clause of a formula, whether it is
// falsified, satisfied, unit, or unresolved under the assignment built up so
// far, and updates that classification incrementally as variables are set
// and unset. The cdcl engine drives its main loop by repeatedly asking the
// tracker for a falsified or unit clause rather than rescanning the formula.
package tracker

import (
	"fmt"

	"github.com/xDarkicex/satire/core"
	"github.com/xDarkicex/satire/formula"
)

// ClauseIdx indexes into a Tracker's clause arena.
type ClauseIdx int

// Status classifies a clause under the current (possibly partial)
// assignment.
type Status uint8

const (
	Falsified Status = iota
	Satisfied
	Unit
	Unresolved
)

func (s Status) String() string {
	switch s {
	case Falsified:
		return "falsified"
	case Satisfied:
		return "satisfied"
	case Unit:
		return "unit"
	default:
		return "unresolved"
	}
}

// clauseStat holds the running satisfied/unsatisfied literal counts that
// determine a clause's Status.
type clauseStat struct {
	total, satisfied, unsatisfied int
	status                        Status
}

func newClauseStat(total, satisfied, unsatisfied int) clauseStat {
	s := clauseStat{total: total, satisfied: satisfied, unsatisfied: unsatisfied}
	s.status = s.computeStatus()
	return s
}

// computeStatus derives a clause's status from its counts: any satisfied
// literal makes it Satisfied; every literal falsified makes it Falsified;
// exactly one literal left undetermined makes it Unit; otherwise it is
// Unresolved.
func (s clauseStat) computeStatus() Status {
	switch {
	case s.satisfied > 0:
		return Satisfied
	case s.unsatisfied == s.total:
		return Falsified
	case s.total-s.unsatisfied == 1:
		return Unit
	default:
		return Unresolved
	}
}

func (s *clauseStat) incrementSatisfied() (old, after Status) {
	old = s.status
	s.satisfied++
	s.status = s.computeStatus()
	return old, s.status
}

func (s *clauseStat) incrementUnsatisfied() (old, after Status) {
	old = s.status
	s.unsatisfied++
	s.status = s.computeStatus()
	return old, s.status
}

func (s *clauseStat) decrementSatisfied() (old, after Status) {
	if s.satisfied == 0 {
		panic(core.NewInvariantError("tracker", "decrementSatisfied on a clause with no satisfied literals"))
	}
	old = s.status
	s.satisfied--
	s.status = s.computeStatus()
	return old, s.status
}

func (s *clauseStat) decrementUnsatisfied() (old, after Status) {
	if s.unsatisfied == 0 {
		panic(core.NewInvariantError("tracker", "decrementUnsatisfied on a clause with no unsatisfied literals"))
	}
	old = s.status
	s.unsatisfied--
	s.status = s.computeStatus()
	return old, s.status
}

// watchElement is one static occurrence of a literal across the formula's
// clauses. clauseCol is the occurrence's current position in its clause's
// live-literal list, or -1 once the occurrence has been resolved (its
// variable was assigned).
type watchElement struct {
	clauseIdx ClauseIdx
	clauseCol int
}

// watchedLiteral is a still-live (unassigned) literal inside a clause's
// live-literal list. rowIndex points back to this literal's watchElement so
// the list can be swap-removed from in O(1).
type watchedLiteral struct {
	literal  formula.Literal
	rowIndex int
}

type trackedClause struct {
	stat     clauseStat
	original formula.Clause
	literals []watchedLiteral
}

type statusCache struct {
	buckets [4]map[ClauseIdx]struct{}
}

func newStatusCache() statusCache {
	var c statusCache
	for i := range c.buckets {
		c.buckets[i] = make(map[ClauseIdx]struct{})
	}
	return c
}

func (c *statusCache) insert(idx ClauseIdx, status Status) {
	c.buckets[status][idx] = struct{}{}
}

func (c *statusCache) remove(idx ClauseIdx, status Status) {
	delete(c.buckets[status], idx)
}

func (c *statusCache) move(idx ClauseIdx, old, new Status) {
	if old == new {
		return
	}
	c.remove(idx, old)
	c.insert(idx, new)
}

// any returns the lowest clause index in the bucket, so the choice does not
// depend on map iteration order.
func (c *statusCache) any(status Status) (ClauseIdx, bool) {
	best, found := ClauseIdx(0), false
	for idx := range c.buckets[status] {
		if !found || idx < best {
			best, found = idx, true
		}
	}
	return best, found
}

func (c *statusCache) count(status Status) int {
	return len(c.buckets[status])
}

// Tracker incrementally classifies every clause of a formula as the
// assignment grows and shrinks via Set/Unset.
type Tracker struct {
	numVariables  uint32
	assignments   []formula.Tribool
	assignedCount int

	positiveRows [][]watchElement
	negativeRows [][]watchElement

	clauses []trackedClause
	cache   statusCache
}

// New allocates an empty Tracker over numVariables variables with no
// clauses yet.
func New(numVariables uint32) *Tracker {
	return &Tracker{
		numVariables: numVariables,
		assignments:  formula.NewPartialAssignment(numVariables),
		positiveRows: make([][]watchElement, numVariables),
		negativeRows: make([][]watchElement, numVariables),
		cache:        newStatusCache(),
	}
}

// FromCNF builds a Tracker preloaded with every clause of f.
func FromCNF(f *formula.CNF) *Tracker {
	t := New(f.NumVariables)
	for _, clause := range f.Clauses {
		t.AddClause(clause)
	}
	return t
}

func (t *Tracker) row(v formula.Variable, positive bool) []watchElement {
	if positive {
		return t.positiveRows[v.Index()]
	}
	return t.negativeRows[v.Index()]
}

func (t *Tracker) appendRow(v formula.Variable, positive bool, we watchElement) int {
	idx := v.Index()
	if positive {
		rowIdx := len(t.positiveRows[idx])
		t.positiveRows[idx] = append(t.positiveRows[idx], we)
		return rowIdx
	}
	rowIdx := len(t.negativeRows[idx])
	t.negativeRows[idx] = append(t.negativeRows[idx], we)
	return rowIdx
}

// NumVariables returns the number of variables the tracker was built over.
func (t *Tracker) NumVariables() uint32 { return t.numVariables }

// NumClauses returns the number of clauses currently tracked, original and
// learned.
func (t *Tracker) NumClauses() int { return len(t.clauses) }

// AssignedCount returns how many variables currently have a value.
func (t *Tracker) AssignedCount() int { return t.assignedCount }

// Complete reports whether every variable has been assigned.
func (t *Tracker) Complete() bool { return t.assignedCount == int(t.numVariables) }

// Assignments returns the tracker's current partial assignment. The caller
// must not mutate the returned slice.
func (t *Tracker) Assignments() formula.PartialAssignment { return t.assignments }

// Value returns the current value of v, if assigned.
func (t *Tracker) Value(v formula.Variable) (bool, bool) {
	switch t.assignments[v.Index()] {
	case formula.True:
		return true, true
	case formula.False:
		return false, true
	default:
		return false, false
	}
}

// VariableOccurrence returns how many clauses mention v, in either polarity,
// counting original and learned clauses.
func (t *Tracker) VariableOccurrence(v formula.Variable) int {
	return len(t.positiveRows[v.Index()]) + len(t.negativeRows[v.Index()])
}

// LiteralOccurrence returns how many clauses mention lit.
func (t *Tracker) LiteralOccurrence(lit formula.Literal) int {
	return len(t.row(lit.Var, lit.Positive))
}

// OriginalClause returns the clause as it was added (not the current live
// sublist), for presenting conflicts and learned clauses to callers.
func (t *Tracker) OriginalClause(idx ClauseIdx) formula.Clause {
	return t.clauses[idx].original
}

// LiveOccurrences returns the clauses in which lit is currently live
// (unassigned), regardless of whether the clause is already satisfied by
// some other literal. Used for pure-literal elimination.
func (t *Tracker) LiveOccurrences(lit formula.Literal) []ClauseIdx {
	row := t.row(lit.Var, lit.Positive)
	var out []ClauseIdx
	for _, we := range row {
		if we.clauseCol >= 0 {
			out = append(out, we.clauseIdx)
		}
	}
	return out
}

// AddClause registers a new clause — original or learned — against the
// tracker's current assignment and returns its index.
func (t *Tracker) AddClause(clause formula.Clause) ClauseIdx {
	idx := ClauseIdx(len(t.clauses))
	tc := trackedClause{original: clause}
	satisfied, unsatisfied := 0, 0

	for _, lit := range clause.Literals {
		switch t.assignments[lit.Var.Index()] {
		case formula.Unassigned:
			col := len(tc.literals)
			rowIdx := t.appendRow(lit.Var, lit.Positive, watchElement{clauseIdx: idx, clauseCol: col})
			tc.literals = append(tc.literals, watchedLiteral{literal: lit, rowIndex: rowIdx})
		case formula.True:
			if lit.Positive {
				satisfied++
			} else {
				unsatisfied++
			}
			t.appendRow(lit.Var, lit.Positive, watchElement{clauseIdx: idx, clauseCol: -1})
		case formula.False:
			if lit.Positive {
				unsatisfied++
			} else {
				satisfied++
			}
			t.appendRow(lit.Var, lit.Positive, watchElement{clauseIdx: idx, clauseCol: -1})
		}
	}

	tc.stat = newClauseStat(len(clause.Literals), satisfied, unsatisfied)
	t.clauses = append(t.clauses, tc)
	t.cache.insert(idx, tc.stat.status)
	return idx
}

// removeLive swap-removes the live literal at col from tc's live list,
// fixing up the watch-row pointer of whichever literal gets moved into its
// place.
func (t *Tracker) removeLive(tc *trackedClause, col int) {
	last := len(tc.literals) - 1
	if col != last {
		moved := tc.literals[last]
		tc.literals[col] = moved
		row := t.row(moved.literal.Var, moved.literal.Positive)
		row[moved.rowIndex].clauseCol = col
	}
	tc.literals = tc.literals[:last]
}

// SetLiteral assigns v and updates every clause mentioning it. v must
// currently be unassigned.
func (t *Tracker) SetLiteral(v formula.Variable, value bool) {
	if t.assignments[v.Index()] != formula.Unassigned {
		panic(core.NewInvariantErrorf("tracker", "SetLiteral on already-assigned %s", v))
	}
	if value {
		t.assignments[v.Index()] = formula.True
	} else {
		t.assignments[v.Index()] = formula.False
	}
	t.assignedCount++

	t.resolvePolarity(v, true, value)
	t.resolvePolarity(v, false, value)
}

func (t *Tracker) resolvePolarity(v formula.Variable, litPositive, value bool) {
	satisfiedNow := litPositive == value
	row := t.row(v, litPositive)
	for i := range row {
		we := &row[i]
		if we.clauseCol < 0 {
			continue
		}
		col := we.clauseCol
		tc := &t.clauses[we.clauseIdx]
		var old, new Status
		if satisfiedNow {
			old, new = tc.stat.incrementSatisfied()
		} else {
			old, new = tc.stat.incrementUnsatisfied()
		}
		t.cache.move(we.clauseIdx, old, new)
		t.removeLive(tc, col)
		we.clauseCol = -1
	}
}

// Unset undoes the most recent assignment to v, restoring every clause it
// had resolved. v must currently be assigned.
func (t *Tracker) Unset(v formula.Variable) {
	switch t.assignments[v.Index()] {
	case formula.True:
		t.unresolvePolarity(v, true, true)
		t.unresolvePolarity(v, false, true)
	case formula.False:
		t.unresolvePolarity(v, true, false)
		t.unresolvePolarity(v, false, false)
	default:
		panic(core.NewInvariantErrorf("tracker", "Unset on unassigned %s", v))
	}
	t.assignments[v.Index()] = formula.Unassigned
	t.assignedCount--
}

func (t *Tracker) unresolvePolarity(v formula.Variable, litPositive, wasValue bool) {
	wasSatisfied := litPositive == wasValue
	row := t.row(v, litPositive)
	for i := range row {
		we := &row[i]
		if we.clauseCol >= 0 {
			panic(core.NewInvariantError("tracker", "Unset found a still-live watch element"))
		}
		tc := &t.clauses[we.clauseIdx]
		var old, new Status
		if wasSatisfied {
			old, new = tc.stat.decrementSatisfied()
		} else {
			old, new = tc.stat.decrementUnsatisfied()
		}
		t.cache.move(we.clauseIdx, old, new)
		col := len(tc.literals)
		tc.literals = append(tc.literals, watchedLiteral{literal: formula.NewLiteral(v, litPositive), rowIndex: i})
		we.clauseCol = col
	}
}

// AnyFalsified returns the lowest-indexed currently-falsified clause, if any.
func (t *Tracker) AnyFalsified() (ClauseIdx, bool) { return t.cache.any(Falsified) }

// AnyUnit returns the lowest-indexed currently-unit clause, if any.
func (t *Tracker) AnyUnit() (ClauseIdx, bool) { return t.cache.any(Unit) }

// CountStatus returns how many clauses currently have the given status.
func (t *Tracker) CountStatus(s Status) int { return t.cache.count(s) }

// Status returns the current status of clause idx.
func (t *Tracker) Status(idx ClauseIdx) Status { return t.clauses[idx].stat.status }

// GetUnitClauseLiteral returns the sole remaining live literal of a unit
// clause. idx must currently have Status Unit.
func (t *Tracker) GetUnitClauseLiteral(idx ClauseIdx) (formula.Literal, error) {
	tc := &t.clauses[idx]
	if len(tc.literals) != 1 {
		return formula.Literal{}, fmt.Errorf("%w: clause %d has %d live literals, want 1", core.NewInvariantError("tracker", "GetUnitClauseLiteral"), idx, len(tc.literals))
	}
	return tc.literals[0].literal, nil
}
