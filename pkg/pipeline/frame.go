package pipeline

import (
	"math"

	"github.com/pkg/errors"
)

// Frame is a column-major block of features flowing between pipeline steps.
// A frame holds either numeric columns (NaN marks a missing value) or text
// columns ("" marks a missing value), never both.
type Frame struct {
	Names   []string
	Numeric [][]float64
	Text    [][]string
	rows    int
}

// NewNumericFrame builds a numeric frame. All columns must have the same length.
func NewNumericFrame(names []string, cols [][]float64) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, errors.Errorf("%d names for %d columns", len(names), len(cols))
	}
	rows := 0
	for j, c := range cols {
		if j == 0 {
			rows = len(c)
		} else if len(c) != rows {
			return nil, errors.Errorf("column %q has %d rows, want %d", names[j], len(c), rows)
		}
	}
	return &Frame{Names: names, Numeric: cols, rows: rows}, nil
}

// NewTextFrame builds a text frame. All columns must have the same length.
func NewTextFrame(names []string, cols [][]string) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, errors.Errorf("%d names for %d columns", len(names), len(cols))
	}
	rows := 0
	for j, c := range cols {
		if j == 0 {
			rows = len(c)
		} else if len(c) != rows {
			return nil, errors.Errorf("column %q has %d rows, want %d", names[j], len(c), rows)
		}
	}
	return &Frame{Names: names, Text: cols, rows: rows}, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return f.rows }

// Cols returns the number of columns.
func (f *Frame) Cols() int { return len(f.Names) }

// IsText reports whether the frame holds text columns.
func (f *Frame) IsText() bool { return f.Text != nil }

// IsMissing reports whether cell (i, j) holds no value.
func (f *Frame) IsMissing(i, j int) bool {
	if f.IsText() {
		return f.Text[j][i] == ""
	}
	return math.IsNaN(f.Numeric[j][i])
}
