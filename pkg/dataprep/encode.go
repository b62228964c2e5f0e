package dataprep

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

// OneHotEncoder expands each text column into one indicator column per
// category seen during Fit. Categories are kept in sorted order. A value
// never seen during Fit encodes as all zeros for its column.
type OneHotEncoder struct {
	columns    []string
	categories [][]string
	fitted     bool
}

func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

func (e *OneHotEncoder) Fit(f *pipeline.Frame) error {
	if !f.IsText() {
		return errors.New("one-hot encoding needs text columns")
	}
	categories := make([][]string, f.Cols())
	for j, col := range f.Text {
		unique := map[string]struct{}{}
		for i, v := range col {
			if f.IsMissing(i, j) {
				return errors.Errorf("column %q row %d is missing; impute before encoding", f.Names[j], i)
			}
			unique[v] = struct{}{}
		}
		cats := make([]string, 0, len(unique))
		for v := range unique {
			cats = append(cats, v)
		}
		slices.Sort(cats)
		categories[j] = cats
	}
	e.columns = slices.Clone(f.Names)
	e.categories = categories
	e.fitted = true
	return nil
}

func (e *OneHotEncoder) Transform(f *pipeline.Frame) (*pipeline.Frame, error) {
	if !e.fitted {
		return nil, errors.New("one-hot encoder is not fitted")
	}
	if !f.IsText() {
		return nil, errors.New("one-hot encoding needs text columns")
	}
	if !slices.Equal(f.Names, e.columns) {
		return nil, errors.Errorf("encoder fitted on columns %v, got %v", e.columns, f.Names)
	}

	var names []string
	var cols [][]float64
	for j, col := range f.Text {
		index := make(map[string]int, len(e.categories[j]))
		block := make([][]float64, len(e.categories[j]))
		for k, cat := range e.categories[j] {
			index[cat] = k
			block[k] = make([]float64, f.Rows())
			names = append(names, e.columns[j]+"_"+cat)
		}
		for i, v := range col {
			if f.IsMissing(i, j) {
				return nil, errors.Errorf("column %q row %d is missing; impute before encoding", f.Names[j], i)
			}
			if k, ok := index[v]; ok {
				block[k][i] = 1
			}
		}
		cols = append(cols, block...)
	}
	return pipeline.NewNumericFrame(names, cols)
}

// OneHotState is the learned state of a OneHotEncoder.
type OneHotState struct {
	Columns    []string   `json:"columns"`
	Categories [][]string `json:"categories"`
}

func (e *OneHotEncoder) State() (OneHotState, error) {
	if !e.fitted {
		return OneHotState{}, errors.New("one-hot encoder is not fitted")
	}
	return OneHotState{Columns: e.columns, Categories: e.categories}, nil
}

// RestoreOneHotEncoder rebuilds a fitted encoder from its state.
func RestoreOneHotEncoder(st OneHotState) (*OneHotEncoder, error) {
	if len(st.Columns) != len(st.Categories) {
		return nil, errors.Errorf("%d columns for %d category lists", len(st.Columns), len(st.Categories))
	}
	return &OneHotEncoder{columns: st.Columns, categories: st.Categories, fitted: true}, nil
}
