// Package ingest copies a raw dataset into the artifact directory and
// splits it into the train and test files consumed by package transform.
package ingest

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/sparshsharma0303/MLProject/pkg/data"
	"github.com/sparshsharma0303/MLProject/pkg/errs"
	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

type Config struct {
	ArtifactDir string
	TestRatio   float64
	Seed        int64
}

// Paths are the files written by a DataIngestion run.
type Paths struct {
	Raw   string
	Train string
	Test  string
}

type DataIngestion struct {
	Config Config
	Schema pipeline.Schema
	Fs     afero.Fs
	Logger *slog.Logger
}

func (d *DataIngestion) paths() Paths {
	return Paths{
		Raw:   filepath.Join(d.Config.ArtifactDir, "raw.csv"),
		Train: filepath.Join(d.Config.ArtifactDir, "train.csv"),
		Test:  filepath.Join(d.Config.ArtifactDir, "test.csv"),
	}
}

// Run reads source, writes it unchanged as raw.csv and writes the split
// halves as train.csv and test.csv. Cells are copied as text, so every
// value reaches the output files exactly as it appears in source.
func (d *DataIngestion) Run(source string) (Paths, error) {
	const op = "ingest.run"
	p := d.paths()

	df, err := data.ReadRawCSV(d.Fs, source)
	if err != nil {
		return Paths{}, errs.Wrap(err, op, source)
	}
	names := df.Names()
	for _, c := range d.Schema.Columns {
		if !slices.Contains(names, c.Name) {
			return Paths{}, errs.Wrap(errors.Errorf("column %q not found", c.Name), op, source)
		}
	}
	d.Logger.Info("read the dataset as dataframe", "source", source, "rows", df.Nrow())

	if err := data.WriteCSV(d.Fs, p.Raw, df); err != nil {
		return Paths{}, errs.Wrap(err, op, p.Raw)
	}

	d.Logger.Info("train test split initiated", "test_ratio", d.Config.TestRatio, "seed", d.Config.Seed)
	train, test, err := TrainTestSplit(df, d.Config.TestRatio, d.Config.Seed)
	if err != nil {
		return Paths{}, errs.Wrap(err, op, source)
	}
	if err := data.WriteCSV(d.Fs, p.Train, train); err != nil {
		return Paths{}, errs.Wrap(err, op, p.Train)
	}
	if err := data.WriteCSV(d.Fs, p.Test, test); err != nil {
		return Paths{}, errs.Wrap(err, op, p.Test)
	}

	d.Logger.Info("ingestion of the data is completed", "train_rows", train.Nrow(), "test_rows", test.Nrow())
	return p, nil
}
