package pipeline

import "github.com/pkg/errors"

// Transformer is the fit/transform contract every preprocessing step follows.
// Fit learns parameters from a frame; Transform applies them without
// changing what was learned.
type Transformer interface {
	Fit(f *Frame) error
	Transform(f *Frame) (*Frame, error)
}

// Step is a named pipeline stage.
type Step struct {
	Name        string
	Transformer Transformer
}

// Pipeline chains multiple transformers.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Steps returns the pipeline stages in order.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Fit fits each step on the output of the step before it.
func (p *Pipeline) Fit(f *Frame) error {
	_, err := p.FitTransform(f)
	return err
}

// FitTransform fits every step and returns the fully transformed frame.
func (p *Pipeline) FitTransform(f *Frame) (*Frame, error) {
	var err error
	for _, step := range p.steps {
		if err = step.Transformer.Fit(f); err != nil {
			return nil, errors.Wrapf(err, "fit step %q", step.Name)
		}
		if f, err = step.Transformer.Transform(f); err != nil {
			return nil, errors.Wrapf(err, "transform step %q", step.Name)
		}
	}
	return f, nil
}

func (p *Pipeline) Transform(f *Frame) (*Frame, error) {
	var err error
	for _, step := range p.steps {
		if f, err = step.Transformer.Transform(f); err != nil {
			return nil, errors.Wrapf(err, "transform step %q", step.Name)
		}
	}
	return f, nil
}
