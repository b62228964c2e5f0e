package dataprep

import (
	"github.com/pkg/errors"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
	"github.com/sparshsharma0303/MLProject/pkg/stats"
)

// StandardScaler standardizes each column to zero mean and unit variance.
// With WithMean unset it only divides by the standard deviation, which
// keeps zero entries of indicator columns at zero.
type StandardScaler struct {
	WithMean bool
	Mean     []float64
	Scale    []float64
	fitted   bool
}

func NewStandardScaler(withMean bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean}
}

func (s *StandardScaler) Fit(f *pipeline.Frame) error {
	if f.IsText() {
		return errors.New("scaling needs numeric columns")
	}
	c := f.Cols()
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	for j, col := range f.Numeric {
		for i := range col {
			if f.IsMissing(i, j) {
				return errors.Errorf("column %q row %d is missing; impute before scaling", f.Names[j], i)
			}
		}
		s.Mean[j] = stats.Mean(col)
		s.Scale[j] = stats.Std(col)
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	s.fitted = true
	return nil
}

func (s *StandardScaler) Transform(f *pipeline.Frame) (*pipeline.Frame, error) {
	if !s.fitted {
		return nil, errors.New("scaler is not fitted")
	}
	if f.IsText() {
		return nil, errors.New("scaling needs numeric columns")
	}
	if f.Cols() != len(s.Scale) {
		return nil, errors.Errorf("scaler fitted on %d columns, got %d", len(s.Scale), f.Cols())
	}
	cols := make([][]float64, f.Cols())
	for j, col := range f.Numeric {
		out := make([]float64, len(col))
		for i, v := range col {
			if s.WithMean {
				v -= s.Mean[j]
			}
			out[i] = v / s.Scale[j]
		}
		cols[j] = out
	}
	return pipeline.NewNumericFrame(f.Names, cols)
}

// ScalerState is the learned state of a StandardScaler.
type ScalerState struct {
	WithMean bool      `json:"with_mean"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

func (s *StandardScaler) State() (ScalerState, error) {
	if !s.fitted {
		return ScalerState{}, errors.New("scaler is not fitted")
	}
	return ScalerState{WithMean: s.WithMean, Mean: s.Mean, Scale: s.Scale}, nil
}

// RestoreStandardScaler rebuilds a fitted scaler from its state.
func RestoreStandardScaler(st ScalerState) (*StandardScaler, error) {
	if len(st.Mean) != len(st.Scale) {
		return nil, errors.Errorf("%d means for %d scales", len(st.Mean), len(st.Scale))
	}
	for j, v := range st.Scale {
		if v == 0 {
			return nil, errors.Errorf("scale of column %d is zero", j)
		}
	}
	return &StandardScaler{WithMean: st.WithMean, Mean: st.Mean, Scale: st.Scale, fitted: true}, nil
}
