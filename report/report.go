// Package report renders an error's full cause chain for display on the
// CLI, the way a terminal error reporter walks Rust's Error::source() chain
// — here built on the standard library's errors.Unwrap instead, since no
// chained-error printer in the example corpus improves on that for a
// small CLI (see DESIGN.md).
package report

import (
	"errors"
	"fmt"
	"io"
)

// Print writes err to w, followed by a "Caused by:" numbered list of every
// error in its Unwrap chain, if any.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, err)

	causes := causeChain(err)
	if len(causes) == 0 {
		return
	}

	fmt.Fprintln(w, "\nCaused by:")
	for i, cause := range causes {
		fmt.Fprintf(w, "  %d: %s\n", i, cause)
	}
}

func causeChain(err error) []error {
	var causes []error
	for {
		cause := errors.Unwrap(err)
		if cause == nil {
			return causes
		}
		causes = append(causes, cause)
		err = cause
	}
}
