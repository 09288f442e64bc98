package report_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xDarkicex/satire/report"
)

func TestPrintWithNoCause(t *testing.T) {
	var buf bytes.Buffer
	report.Print(&buf, errors.New("boom"))
	assert.Equal(t, "boom\n", buf.String())
}

func TestPrintWalksCauseChain(t *testing.T) {
	root := errors.New("file not found")
	mid := fmt.Errorf("opening config: %w", root)
	top := fmt.Errorf("loading formula: %w", mid)

	var buf bytes.Buffer
	report.Print(&buf, top)

	out := buf.String()
	assert.Contains(t, out, "loading formula: opening config: file not found")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "0: opening config: file not found")
	assert.Contains(t, out, "1: file not found")
}

func TestPrintNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	report.Print(&buf, nil)
	assert.Empty(t, buf.String())
}
