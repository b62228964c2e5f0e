package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Branch routes a subset of columns through one pipeline.
type Branch struct {
	Name     string
	Kind     Kind
	Columns  []string
	Pipeline *Pipeline
}

// ColumnTransformer applies a pipeline per branch and concatenates the
// branch outputs horizontally, in branch order. Columns not named by any
// branch are dropped.
type ColumnTransformer struct {
	branches []Branch
	features []string
	fitted   bool
}

func NewColumnTransformer(branches ...Branch) *ColumnTransformer {
	return &ColumnTransformer{branches: branches}
}

// RestoreColumnTransformer rebuilds an already fitted transformer from
// branches whose steps carry learned parameters.
func RestoreColumnTransformer(branches []Branch, features []string) *ColumnTransformer {
	return &ColumnTransformer{branches: branches, features: features, fitted: true}
}

func (c *ColumnTransformer) Branches() []Branch { return c.branches }

func (c *ColumnTransformer) Fitted() bool { return c.fitted }

// FeatureNames returns "<branch>__<feature>" for every output column.
// It is empty until the transformer is fitted.
func (c *ColumnTransformer) FeatureNames() []string { return c.features }

func (c *ColumnTransformer) Fit(df dataframe.DataFrame) error {
	_, err := c.FitTransform(df)
	return err
}

// FitTransform learns every branch's parameters from df and returns df transformed.
// A failed fit leaves the transformer unfitted.
func (c *ColumnTransformer) FitTransform(df dataframe.DataFrame) (*mat.Dense, error) {
	c.fitted = false
	c.features = nil
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "input dataframe")
	}
	if len(c.branches) == 0 {
		return nil, errors.New("column transformer has no branches")
	}
	outs := make([]*Frame, 0, len(c.branches))
	var features []string
	for _, b := range c.branches {
		in, err := extract(df, b)
		if err != nil {
			return nil, errors.Wrapf(err, "branch %q", b.Name)
		}
		out, err := b.Pipeline.FitTransform(in)
		if err != nil {
			return nil, errors.Wrapf(err, "branch %q", b.Name)
		}
		outs = append(outs, out)
		for _, name := range out.Names {
			features = append(features, b.Name+"__"+name)
		}
	}
	m, err := stack(outs, df.Nrow())
	if err != nil {
		return nil, err
	}
	c.features = features
	c.fitted = true
	return m, nil
}

// Transform applies the learned parameters to df.
func (c *ColumnTransformer) Transform(df dataframe.DataFrame) (*mat.Dense, error) {
	if !c.fitted {
		return nil, errors.New("column transformer is not fitted")
	}
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "input dataframe")
	}
	outs := make([]*Frame, 0, len(c.branches))
	for _, b := range c.branches {
		in, err := extract(df, b)
		if err != nil {
			return nil, errors.Wrapf(err, "branch %q", b.Name)
		}
		out, err := b.Pipeline.Transform(in)
		if err != nil {
			return nil, errors.Wrapf(err, "branch %q", b.Name)
		}
		outs = append(outs, out)
	}
	m, err := stack(outs, df.Nrow())
	if err != nil {
		return nil, err
	}
	if _, cols := m.Dims(); cols != len(c.features) {
		return nil, errors.Errorf("transform produced %d columns, fitted with %d", cols, len(c.features))
	}
	return m, nil
}

func extract(df dataframe.DataFrame, b Branch) (*Frame, error) {
	switch b.Kind {
	case Numeric:
		cols := make([][]float64, len(b.Columns))
		for j, name := range b.Columns {
			s := df.Col(name)
			if s.Err != nil {
				return nil, errors.Wrapf(s.Err, "column %q", name)
			}
			vals, err := Floats(s)
			if err != nil {
				return nil, errors.Wrapf(err, "column %q", name)
			}
			cols[j] = vals
		}
		return NewNumericFrame(b.Columns, cols)
	case Categorical:
		cols := make([][]string, len(b.Columns))
		for j, name := range b.Columns {
			s := df.Col(name)
			if s.Err != nil {
				return nil, errors.Wrapf(s.Err, "column %q", name)
			}
			cols[j] = textValues(s)
		}
		return NewTextFrame(b.Columns, cols)
	default:
		return nil, errors.Errorf("branch cannot route columns of kind %q", b.Kind)
	}
}

// Floats returns the series as floats with NaN for missing cells.
// Text that does not parse as a number is an error, not a missing value.
func Floats(s series.Series) ([]float64, error) {
	switch s.Type() {
	case series.Float, series.Int:
		return s.Float(), nil
	}
	vals := make([]float64, s.Len())
	for i := range vals {
		e := s.Elem(i)
		if e.IsNA() {
			vals[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
		if err != nil {
			return nil, errors.Errorf("row %d: %q is not numeric", i, e.String())
		}
		vals[i] = v
	}
	return vals, nil
}

func textValues(s series.Series) []string {
	vals := make([]string, s.Len())
	for i := range vals {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		vals[i] = e.String()
	}
	return vals
}

func stack(frames []*Frame, rows int) (*mat.Dense, error) {
	cols := 0
	for _, f := range frames {
		if f.IsText() {
			return nil, errors.Errorf("branch output %v is not numeric", f.Names)
		}
		if f.Rows() != rows {
			return nil, errors.Errorf("branch output has %d rows, want %d", f.Rows(), rows)
		}
		cols += f.Cols()
	}
	if rows == 0 {
		return nil, errors.New("no rows to transform")
	}
	if cols == 0 {
		return nil, errors.New("transform produced no columns")
	}
	m := mat.NewDense(rows, cols, nil)
	off := 0
	for _, f := range frames {
		for j, col := range f.Numeric {
			m.SetCol(off+j, col)
		}
		off += f.Cols()
	}
	return m, nil
}
