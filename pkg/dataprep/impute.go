package dataprep

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
	"github.com/sparshsharma0303/MLProject/pkg/stats"
)

// Strategy selects the statistic used to fill missing values.
type Strategy string

const (
	Median       Strategy = "median"
	Mean         Strategy = "mean"
	MostFrequent Strategy = "most_frequent"
	Constant     Strategy = "constant"
)

// SimpleImputer replaces missing values column by column with a statistic
// learned during Fit. Median and mean only apply to numeric frames.
type SimpleImputer struct {
	Strategy  Strategy
	FillValue string // used by Constant; parsed as a float for numeric frames

	numeric []float64
	text    []string
	fitted  bool
}

func NewSimpleImputer(strategy Strategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// NewConstantImputer fills every missing value with value.
func NewConstantImputer(value string) *SimpleImputer {
	return &SimpleImputer{Strategy: Constant, FillValue: value}
}

func (s *SimpleImputer) Fit(f *pipeline.Frame) error {
	if f.IsText() {
		return s.fitText(f)
	}
	return s.fitNumeric(f)
}

func (s *SimpleImputer) fitNumeric(f *pipeline.Frame) error {
	fill := make([]float64, f.Cols())
	for j, col := range f.Numeric {
		if s.Strategy == Constant {
			v, err := strconv.ParseFloat(s.FillValue, 64)
			if err != nil {
				return errors.Errorf("fill value %q is not numeric", s.FillValue)
			}
			fill[j] = v
			continue
		}
		observed := stats.Observed(col)
		if len(observed) == 0 {
			return errors.Errorf("column %q has no observed values", f.Names[j])
		}
		switch s.Strategy {
		case Median:
			fill[j] = stats.Median(observed)
		case Mean:
			fill[j] = stats.Mean(observed)
		case MostFrequent:
			fill[j] = stats.Mode(observed)
		default:
			return errors.Errorf("unknown imputation strategy %q", s.Strategy)
		}
	}
	s.numeric, s.text = fill, nil
	s.fitted = true
	return nil
}

func (s *SimpleImputer) fitText(f *pipeline.Frame) error {
	fill := make([]string, f.Cols())
	for j, col := range f.Text {
		switch s.Strategy {
		case Constant:
			if s.FillValue == "" {
				return errors.New("constant imputation needs a fill value")
			}
			fill[j] = s.FillValue
		case MostFrequent:
			observed := make([]string, 0, len(col))
			for _, v := range col {
				if v != "" {
					observed = append(observed, v)
				}
			}
			if len(observed) == 0 {
				return errors.Errorf("column %q has no observed values", f.Names[j])
			}
			fill[j] = stats.Mode(observed)
		default:
			return errors.Errorf("strategy %q cannot be used with text column %q", s.Strategy, f.Names[j])
		}
	}
	s.numeric, s.text = nil, fill
	s.fitted = true
	return nil
}

// Transform returns a copy of f with missing values filled.
func (s *SimpleImputer) Transform(f *pipeline.Frame) (*pipeline.Frame, error) {
	if !s.fitted {
		return nil, errors.New("imputer is not fitted")
	}
	if f.IsText() {
		if s.text == nil {
			return nil, errors.New("imputer was fitted on numeric columns, got text")
		}
		if f.Cols() != len(s.text) {
			return nil, errors.Errorf("imputer fitted on %d columns, got %d", len(s.text), f.Cols())
		}
		cols := make([][]string, f.Cols())
		for j, col := range f.Text {
			out := make([]string, len(col))
			for i, v := range col {
				if f.IsMissing(i, j) {
					v = s.text[j]
				}
				out[i] = v
			}
			cols[j] = out
		}
		return pipeline.NewTextFrame(f.Names, cols)
	}

	if s.numeric == nil {
		return nil, errors.New("imputer was fitted on text columns, got numeric")
	}
	if f.Cols() != len(s.numeric) {
		return nil, errors.Errorf("imputer fitted on %d columns, got %d", len(s.numeric), f.Cols())
	}
	cols := make([][]float64, f.Cols())
	for j, col := range f.Numeric {
		out := make([]float64, len(col))
		for i, v := range col {
			if f.IsMissing(i, j) {
				v = s.numeric[j]
			}
			out[i] = v
		}
		cols[j] = out
	}
	return pipeline.NewNumericFrame(f.Names, cols)
}

// ImputerState is the learned state of a SimpleImputer.
type ImputerState struct {
	Strategy  Strategy  `json:"strategy"`
	FillValue string    `json:"fill_value,omitempty"`
	Numeric   []float64 `json:"numeric,omitempty"`
	Text      []string  `json:"text,omitempty"`
}

func (s *SimpleImputer) State() (ImputerState, error) {
	if !s.fitted {
		return ImputerState{}, errors.New("imputer is not fitted")
	}
	return ImputerState{
		Strategy:  s.Strategy,
		FillValue: s.FillValue,
		Numeric:   s.numeric,
		Text:      s.text,
	}, nil
}

// RestoreImputer rebuilds a fitted imputer from its state.
func RestoreImputer(st ImputerState) (*SimpleImputer, error) {
	if (st.Numeric == nil) == (st.Text == nil) {
		return nil, errors.New("imputer state must hold either numeric or text statistics")
	}
	return &SimpleImputer{
		Strategy:  st.Strategy,
		FillValue: st.FillValue,
		numeric:   st.Numeric,
		text:      st.Text,
		fitted:    true,
	}, nil
}
