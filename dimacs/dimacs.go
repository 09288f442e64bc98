// Package dimacs reads the DIMACS CNF file format into formula.CNF values.
package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xDarkicex/satire/formula"
)

// Builder receives parse events from Parse/ParseBuilder, in order. It lets
// callers observe comments and the problem line alongside clause
// construction instead of only getting the finished formula.CNF back.
type Builder interface {
	// Problem is called once, with the declared variable and clause
	// counts from the "p cnf <vars> <clauses>" line.
	Problem(numVariables, numClauses uint32) error
	// Clause is called once per terminated clause, including empty ones.
	Clause(literals []formula.Literal) error
	// Comment is called for each "c ..." line, with the "c" stripped.
	Comment(line string)
}

// cnfBuilder is the Builder used internally by Parse to build a formula.CNF.
type cnfBuilder struct {
	cnf *formula.CNF
}

func (b *cnfBuilder) Problem(numVariables, numClauses uint32) error {
	b.cnf = formula.NewCNF(numVariables)
	return nil
}

func (b *cnfBuilder) Clause(literals []formula.Literal) error {
	if b.cnf == nil {
		return errors.New("clause line appears before problem line")
	}
	b.cnf.AddClause(formula.NewClause(literals))
	return nil
}

func (b *cnfBuilder) Comment(line string) {}

// Parse reads a complete DIMACS CNF document from r and returns the
// resulting formula.
func Parse(r io.Reader) (*formula.CNF, error) {
	b := &cnfBuilder{}
	if err := ParseBuilder(r, b); err != nil {
		return nil, err
	}
	if b.cnf == nil {
		return nil, errors.New("missing problem line")
	}
	return b.cnf, nil
}

// ParseBuilder streams a DIMACS CNF document to b.
//
// The problem line must have exactly four whitespace-separated fields,
// "p", "cnf", the variable count, and the clause count, in that order.
// An empty clause (a bare "0") is accepted as a valid, immediately
// falsified clause and counts toward the declared clause total.
func ParseBuilder(r io.Reader, b Builder) error {
	var numVariables uint32
	haveProblem := false
	var declaredClauses, clauseCount uint32
	var current []formula.Literal
	haveLiteral := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			b.Comment(strings.TrimPrefix(line, "c"))
			continue
		case '%':
			// Non-standard trailer some generators append; stop reading.
			goto done
		case 'p':
			if haveProblem {
				return fmt.Errorf("line %d: multiple problem lines", lineNo)
			}
			if len(current) > 0 || clauseCount > 0 {
				return fmt.Errorf("line %d: problem line appears after clauses", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return fmt.Errorf("line %d: malformed problem line %q, want \"p cnf <vars> <clauses>\"", lineNo, line)
			}
			vars, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: invalid variable count: %w", lineNo, err)
			}
			clauses, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return fmt.Errorf("line %d: invalid clause count: %w", lineNo, err)
			}
			numVariables = uint32(vars)
			declaredClauses = uint32(clauses)
			if err := b.Problem(numVariables, declaredClauses); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			haveProblem = true
			continue
		}

		if !haveProblem {
			return fmt.Errorf("line %d: clause line appears before problem line", lineNo)
		}

		for _, field := range strings.Fields(line) {
			lit, err := formula.ParseLiteral(field, numVariables)
			if err != nil {
				if errors.Is(err, formula.ErrLiteralZero) {
					if err := b.Clause(current); err != nil {
						return fmt.Errorf("line %d: %w", lineNo, err)
					}
					clauseCount++
					current = nil
					haveLiteral = false
					continue
				}
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = append(current, lit)
			haveLiteral = true
		}
	}
done:
	if err := scanner.Err(); err != nil {
		return err
	}
	if haveLiteral {
		return fmt.Errorf("line %d: clause not terminated with 0", lineNo)
	}
	if !haveProblem {
		return errors.New("missing problem line")
	}
	if clauseCount != declaredClauses {
		return fmt.Errorf("problem line declares %d clauses, but %d were read", declaredClauses, clauseCount)
	}
	return nil
}
