package data

import (
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

// MissingValues are the cell contents read as "no value".
var MissingValues = []string{"", "NA", "NaN", "N/A", "null"}

// ReadCSV loads a comma-separated file with a header row. Categorical
// columns of schema are always read as text; every other column has its
// type detected.
func ReadCSV(fs afero.Fs, path string, schema pipeline.Schema) (dataframe.DataFrame, error) {
	f, err := fs.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	types := make(map[string]series.Type)
	for _, name := range schema.Names(pipeline.Categorical) {
		types[name] = series.String
	}
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.NaNValues(MissingValues),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(df.Err, "parse %s", path)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Errorf("%s has no data rows", path)
	}
	return df, nil
}

// ReadRawCSV loads a comma-separated file with a header row keeping every
// cell as the text it was read as, so that writing the table back
// reproduces the source values exactly.
func ReadRawCSV(fs afero.Fs, path string) (dataframe.DataFrame, error) {
	f, err := fs.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(df.Err, "parse %s", path)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, errors.Errorf("%s has no data rows", path)
	}
	return df, nil
}

// WriteCSV writes df with a header row, creating parent directories.
func WriteCSV(fs afero.Fs, path string, df dataframe.DataFrame) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// WriteMatrixCSV writes m as a CSV file whose header is names. Cells are
// formatted with the shortest text that parses back to the same float64.
func WriteMatrixCSV(fs afero.Fs, path string, names []string, m mat.Matrix) error {
	r, c := m.Dims()
	if len(names) != c {
		return errors.Errorf("%d names for %d columns", len(names), c)
	}
	cols := make([]series.Series, c)
	for j := 0; j < c; j++ {
		vals := make([]string, r)
		for i := 0; i < r; i++ {
			vals[i] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		cols[j] = series.New(vals, series.String, names[j])
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return errors.Wrap(df.Err, "build output table")
	}
	return WriteCSV(fs, path, df)
}
