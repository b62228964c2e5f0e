// Package transform turns the raw train and test tables into numeric
// matrices ready for model training and stores the fitted preprocessor.
package transform

import (
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"

	"github.com/sparshsharma0303/MLProject/pkg/artifact"
	"github.com/sparshsharma0303/MLProject/pkg/config"
	"github.com/sparshsharma0303/MLProject/pkg/data"
	"github.com/sparshsharma0303/MLProject/pkg/dataprep"
	"github.com/sparshsharma0303/MLProject/pkg/errs"
	"github.com/sparshsharma0303/MLProject/pkg/logging"
	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

// DataTransformation builds, fits and persists the preprocessing pipeline.
type DataTransformation struct {
	config Config
	schema pipeline.Schema
	fs     afero.Fs
	logger *slog.Logger
}

type Option func(*DataTransformation)

func WithConfig(c Config) Option { return func(d *DataTransformation) { d.config = c } }

func WithSchema(s pipeline.Schema) Option { return func(d *DataTransformation) { d.schema = s } }

func WithFs(fs afero.Fs) Option { return func(d *DataTransformation) { d.fs = fs } }

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(d *DataTransformation) {
		if l == nil {
			l = logging.Discard()
		}
		d.logger = l
	}
}

// New returns a DataTransformation for the student-performance schema that
// reads and writes the OS filesystem and logs nothing, unless overridden.
func New(opts ...Option) *DataTransformation {
	d := &DataTransformation{
		config: DefaultConfig(),
		schema: config.StudentPerformanceSchema(),
		fs:     afero.NewOsFs(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DataTransformation) Config() Config { return d.config }

// Preprocessor returns an unfitted column transformer: numeric columns go
// through median imputation and standard scaling, categorical columns
// through most-frequent imputation, one-hot encoding and scaling without
// centering.
func (d *DataTransformation) Preprocessor() (*pipeline.ColumnTransformer, error) {
	return d.preprocessor(d.logger)
}

func (d *DataTransformation) preprocessor(logger *slog.Logger) (*pipeline.ColumnTransformer, error) {
	const op = "transform.preprocessor"
	if err := d.schema.Validate(); err != nil {
		return nil, errs.Wrap(err, op)
	}
	numeric := d.schema.Names(pipeline.Numeric)
	categorical := d.schema.Names(pipeline.Categorical)

	var branches []pipeline.Branch
	if len(numeric) > 0 {
		branches = append(branches, pipeline.Branch{
			Name:    "num_pipeline",
			Kind:    pipeline.Numeric,
			Columns: numeric,
			Pipeline: pipeline.NewPipeline(
				pipeline.Step{Name: "imputer", Transformer: dataprep.NewSimpleImputer(dataprep.Median)},
				pipeline.Step{Name: "scaler", Transformer: dataprep.NewStandardScaler(true)},
			),
		})
	}
	if len(categorical) > 0 {
		branches = append(branches, pipeline.Branch{
			Name:    "cat_pipeline",
			Kind:    pipeline.Categorical,
			Columns: categorical,
			Pipeline: pipeline.NewPipeline(
				pipeline.Step{Name: "imputer", Transformer: dataprep.NewSimpleImputer(dataprep.MostFrequent)},
				pipeline.Step{Name: "one_hot_encoder", Transformer: dataprep.NewOneHotEncoder()},
				pipeline.Step{Name: "scaler", Transformer: dataprep.NewStandardScaler(false)},
			),
		})
	}

	logger.Info("numerical columns", "columns", numeric)
	logger.Info("categorical columns", "columns", categorical)

	return pipeline.NewColumnTransformer(branches...), nil
}

// Run reads the train and test files, fits the preprocessor on the train
// features only, transforms both splits and appends the target as the
// last column. The fitted preprocessor is written to the configured path.
func (d *DataTransformation) Run(trainPath, testPath string) (train, test *mat.Dense, preprocessorPath string, err error) {
	const op = "transform.run"
	logger := d.logger.With("run_id", uuid.NewString())

	trainDF, err := data.ReadCSV(d.fs, trainPath, d.schema)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, trainPath)
	}
	testDF, err := data.ReadCSV(d.fs, testPath, d.schema)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, testPath)
	}
	logger.Info("read train and test data", "train_rows", trainDF.Nrow(), "test_rows", testDF.Nrow())

	logger.Info("obtaining preprocessing object")
	pre, err := d.preprocessor(logger)
	if err != nil {
		return nil, nil, "", err
	}

	target, err := d.schema.Target()
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op)
	}
	trainX, trainY, err := splitTarget(trainDF, target)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, trainPath)
	}
	testX, testY, err := splitTarget(testDF, target)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, testPath)
	}

	logger.Info("applying preprocessor object on training and test dataframe")
	trainFeatures, err := pre.FitTransform(trainX)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, "fit on "+trainPath)
	}
	testFeatures, err := pre.Transform(testX)
	if err != nil {
		return nil, nil, "", errs.Wrap(err, op, "transform "+testPath)
	}
	train = appendColumn(trainFeatures, trainY)
	test = appendColumn(testFeatures, testY)

	path := d.config.PreprocessorPath
	if err := artifact.Save(d.fs, path, pre); err != nil {
		return nil, nil, "", errs.Wrap(err, op, path)
	}
	logger.Info("saved preprocessing object", "path", path, "features", len(pre.FeatureNames()))

	return train, test, path, nil
}

// splitTarget separates the target column from the feature columns.
func splitTarget(df dataframe.DataFrame, target string) (dataframe.DataFrame, []float64, error) {
	col := df.Col(target)
	if col.Err != nil {
		return dataframe.DataFrame{}, nil, errors.Wrapf(col.Err, "target column %q", target)
	}
	y, err := pipeline.Floats(col)
	if err != nil {
		return dataframe.DataFrame{}, nil, errors.Wrapf(err, "target column %q", target)
	}
	x := df.Drop(target)
	if x.Err != nil {
		return dataframe.DataFrame{}, nil, errors.Wrapf(x.Err, "drop target column %q", target)
	}
	return x, y, nil
}

// appendColumn returns m with col added as its last column.
func appendColumn(m *mat.Dense, col []float64) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		copy(row, m.RawRowView(i))
		row[c] = col[i]
	}
	return out
}
