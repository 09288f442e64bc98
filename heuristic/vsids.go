// Package heuristic implements VSIDS (Variable State Independent Decaying
// Sum) variable selection: every variable carries an activity score that
// is bumped when it participates in a learned clause and periodically
// decayed, so the search keeps branching on variables recently involved in
// conflicts. Scores are kept in an indexed binary heap so bump/remove/top
// are all O(log n).
package heuristic

import (
	"container/heap"
	"math/rand"

	"github.com/xDarkicex/satire/formula"
	"github.com/xDarkicex/satire/tracker"
)

const (
	decayRate         = 0.95
	rebalanceThreshold = 1e100
)

// entry is one variable's node in the heap.
type entry struct {
	variable formula.Variable
	score    float64
	nonce    float64 // tiebreaks equal scores so Top is well-defined
	index    int     // position in the heap slice; maintained by heap.Interface
}

// scoreHeap is a max-heap on (score, nonce) implementing container/heap,
// grounded on the indexed-heap pattern used for watch-list-length ordering
// in cespare/saturday's litHeap.
type scoreHeap []*entry

func (h scoreHeap) Len() int { return len(h) }
func (h scoreHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].nonce > h[j].nonce
}
func (h scoreHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *scoreHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *scoreHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// VSIDS tracks per-variable activity and offers the currently
// highest-scoring still-unassigned variable as the next branching decision.
type VSIDS struct {
	currentRate float64
	entries     []*entry // indexed by Variable; always present, whether or not currently in the heap
	inHeap      []bool
	h           scoreHeap
	rng         *rand.Rand
}

// New seeds a VSIDS scorer from a tracker's static occurrence counts, the
// same initialization MiniSAT-derived solvers use: variables that appear
// more often start with higher activity.
func New(t *tracker.Tracker, seed int64) *VSIDS {
	n := t.NumVariables()
	v := &VSIDS{
		currentRate: 1.0,
		entries:     make([]*entry, n),
		inHeap:      make([]bool, n),
		h:           make(scoreHeap, 0, n),
		rng:         rand.New(rand.NewSource(seed)),
	}
	for i := uint32(0); i < n; i++ {
		variable := formula.Variable(i)
		e := &entry{
			variable: variable,
			score:    float64(t.VariableOccurrence(variable)),
			nonce:    v.rng.Float64(),
		}
		v.entries[i] = e
		heap.Push(&v.h, e)
		v.inHeap[i] = true
	}
	return v
}

// Remove takes a variable out of consideration, e.g. because it was just
// assigned as a decision or by propagation.
func (v *VSIDS) Remove(variable formula.Variable) {
	idx := variable.Index()
	if !v.inHeap[idx] {
		return
	}
	heap.Remove(&v.h, v.entries[idx].index)
	v.inHeap[idx] = false
}

// Insert returns a variable to consideration, e.g. on backtrack.
func (v *VSIDS) Insert(variable formula.Variable) {
	idx := variable.Index()
	if v.inHeap[idx] {
		return
	}
	heap.Push(&v.h, v.entries[idx])
	v.inHeap[idx] = true
}

// Top returns the highest-activity variable still under consideration. It
// panics if nothing is left to decide; callers should check CountStatus or
// an emptiness predicate first.
func (v *VSIDS) Top() formula.Variable {
	return v.h[0].variable
}

// Empty reports whether every variable has been removed from consideration.
func (v *VSIDS) Empty() bool { return len(v.h) == 0 }

func (v *VSIDS) bump(variable formula.Variable) {
	idx := variable.Index()
	e := v.entries[idx]
	e.score += v.currentRate
	e.nonce = v.rng.Float64()
	if v.inHeap[idx] {
		heap.Fix(&v.h, e.index)
	}
	if e.score >= rebalanceThreshold {
		v.rebalance()
	}
}

func (v *VSIDS) rebalance() {
	v.currentRate /= rebalanceThreshold
	for _, e := range v.entries {
		e.score /= rebalanceThreshold
	}
	heap.Init(&v.h)
}

// Decay increases the bump increment so future activity counts for more
// than past activity, without having to rescale every score immediately.
func (v *VSIDS) Decay() {
	v.currentRate /= decayRate
}

// LearnClause bumps every variable mentioned in a newly learned clause.
func (v *VSIDS) LearnClause(clause formula.Clause) {
	for _, lit := range clause.Literals {
		v.bump(lit.Var)
	}
}
