// Package sat exposes DPLL and CDCL behind a single Engine interface so the
// CLI can select between them by name.
package sat

import (
	"fmt"
	"time"

	"github.com/xDarkicex/satire/cdcl"
	"github.com/xDarkicex/satire/dpll"
	"github.com/xDarkicex/satire/formula"
)

// Engine solves a formula, optionally under a time limit.
type Engine interface {
	Solve() (*formula.Model, bool)
	SolveWithTimeout(timeout time.Duration) (*formula.Model, bool)
}

// New returns the named engine over f. name is "dpll" or "cdcl".
func New(name string, f *formula.CNF) (Engine, error) {
	switch name {
	case "dpll":
		return dpll.New(f), nil
	case "cdcl":
		return cdcl.New(f, 1), nil
	default:
		return nil, fmt.Errorf("unknown solver %q", name)
	}
}

// Names lists the engines New accepts.
func Names() []string { return []string{"dpll", "cdcl"} }
