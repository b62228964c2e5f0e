// Package artifact persists a fitted preprocessor as a portable JSON
// document of learned parameters: imputation statistics, one-hot
// vocabularies and scaling factors per branch.
package artifact

import (
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/sparshsharma0303/MLProject/pkg/dataprep"
	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

// FormatVersion is bumped whenever the document layout changes.
const FormatVersion = 1

const (
	typeImputer = "simple_imputer"
	typeOneHot  = "one_hot_encoder"
	typeScaler  = "standard_scaler"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the on-disk form of a fitted ColumnTransformer.
type Document struct {
	Version      int      `json:"version"`
	FeatureNames []string `json:"feature_names"`
	Branches     []Branch `json:"branches"`
}

type Branch struct {
	Name    string        `json:"name"`
	Kind    pipeline.Kind `json:"kind"`
	Columns []string      `json:"columns"`
	Steps   []Step        `json:"steps"`
}

// Step holds the learned state of one pipeline step. Exactly one of the
// state fields is set, matching Type.
type Step struct {
	Name    string                 `json:"name"`
	Type    string                 `json:"type"`
	Imputer *dataprep.ImputerState `json:"imputer,omitempty"`
	Encoder *dataprep.OneHotState  `json:"encoder,omitempty"`
	Scaler  *dataprep.ScalerState  `json:"scaler,omitempty"`
}

// Encode captures the learned parameters of a fitted transformer.
func Encode(ct *pipeline.ColumnTransformer) (*Document, error) {
	if !ct.Fitted() {
		return nil, errors.New("preprocessor is not fitted")
	}
	doc := &Document{Version: FormatVersion, FeatureNames: ct.FeatureNames()}
	for _, b := range ct.Branches() {
		bd := Branch{Name: b.Name, Kind: b.Kind, Columns: b.Columns}
		for _, s := range b.Pipeline.Steps() {
			sd, err := encodeStep(s)
			if err != nil {
				return nil, errors.Wrapf(err, "branch %q", b.Name)
			}
			bd.Steps = append(bd.Steps, sd)
		}
		doc.Branches = append(doc.Branches, bd)
	}
	return doc, nil
}

func encodeStep(s pipeline.Step) (Step, error) {
	sd := Step{Name: s.Name}
	switch t := s.Transformer.(type) {
	case *dataprep.SimpleImputer:
		st, err := t.State()
		if err != nil {
			return sd, errors.Wrapf(err, "step %q", s.Name)
		}
		sd.Type, sd.Imputer = typeImputer, &st
	case *dataprep.OneHotEncoder:
		st, err := t.State()
		if err != nil {
			return sd, errors.Wrapf(err, "step %q", s.Name)
		}
		sd.Type, sd.Encoder = typeOneHot, &st
	case *dataprep.StandardScaler:
		st, err := t.State()
		if err != nil {
			return sd, errors.Wrapf(err, "step %q", s.Name)
		}
		sd.Type, sd.Scaler = typeScaler, &st
	default:
		return sd, errors.Errorf("step %q: cannot persist %T", s.Name, s.Transformer)
	}
	return sd, nil
}

// Decode rebuilds a fitted transformer from doc.
func Decode(doc *Document) (*pipeline.ColumnTransformer, error) {
	if doc.Version != FormatVersion {
		return nil, errors.Errorf("unsupported preprocessor format version %d", doc.Version)
	}
	branches := make([]pipeline.Branch, 0, len(doc.Branches))
	for _, bd := range doc.Branches {
		steps := make([]pipeline.Step, 0, len(bd.Steps))
		for _, sd := range bd.Steps {
			tr, err := decodeStep(sd)
			if err != nil {
				return nil, errors.Wrapf(err, "branch %q step %q", bd.Name, sd.Name)
			}
			steps = append(steps, pipeline.Step{Name: sd.Name, Transformer: tr})
		}
		branches = append(branches, pipeline.Branch{
			Name:     bd.Name,
			Kind:     bd.Kind,
			Columns:  bd.Columns,
			Pipeline: pipeline.NewPipeline(steps...),
		})
	}
	return pipeline.RestoreColumnTransformer(branches, doc.FeatureNames), nil
}

func decodeStep(sd Step) (pipeline.Transformer, error) {
	switch {
	case sd.Type == typeImputer && sd.Imputer != nil:
		return dataprep.RestoreImputer(*sd.Imputer)
	case sd.Type == typeOneHot && sd.Encoder != nil:
		return dataprep.RestoreOneHotEncoder(*sd.Encoder)
	case sd.Type == typeScaler && sd.Scaler != nil:
		return dataprep.RestoreStandardScaler(*sd.Scaler)
	}
	return nil, errors.Errorf("unknown or incomplete step of type %q", sd.Type)
}

// Save writes the fitted transformer to path, creating parent directories
// and replacing any existing file.
func Save(fs afero.Fs, path string, ct *pipeline.ColumnTransformer) error {
	doc, err := Encode(ct)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode preprocessor")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	return errors.Wrapf(afero.WriteFile(fs, path, b, 0o644), "write %s", path)
}

// Load reads a transformer written by Save.
func Load(fs afero.Fs, path string) (*pipeline.ColumnTransformer, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return Decode(&doc)
}
