package data

import (
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

var schema = pipeline.Schema{Columns: []pipeline.Column{
	{Name: "lunch", Kind: pipeline.Categorical},
	{Name: "reading_score", Kind: pipeline.Numeric},
	{Name: "math_score", Kind: pipeline.Target},
}}

func TestReadCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "train.csv", []byte(
		"lunch,reading_score,math_score\n"+
			"1,70,60\n"+
			"NA,,70\n"), 0o644))

	df, err := ReadCSV(fs, "train.csv", schema)
	require.NoError(t, err)
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"lunch", "reading_score", "math_score"}, df.Names())

	lunch := df.Col("lunch")
	assert.Equal(t, series.String, lunch.Type(), "categorical columns stay text")
	assert.True(t, lunch.Elem(1).IsNA())
	assert.True(t, df.Col("reading_score").Elem(1).IsNA())
	assert.Equal(t, []float64{60, 70}, df.Col("math_score").Float())
}

func TestReadCSVErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "header_only.csv", []byte("lunch,math_score\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "ragged.csv", []byte("a,b\n1,2,3\n"), 0o644))

	_, err := ReadCSV(fs, "missing.csv", schema)
	assert.ErrorContains(t, err, "open missing.csv")

	_, err = ReadCSV(fs, "header_only.csv", schema)
	assert.Error(t, err)

	_, err = ReadCSV(fs, "ragged.csv", schema)
	assert.Error(t, err)
}

func TestWriteMatrixCSVRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := mat.NewDense(2, 2, []float64{-1, 60, 1, 70})

	require.NoError(t, WriteMatrixCSV(fs, "out/nested/train_array.csv", []string{"num__reading_score", "math_score"}, m))

	df, err := ReadCSV(fs, "out/nested/train_array.csv", pipeline.Schema{})
	require.NoError(t, err)
	assert.Equal(t, []string{"num__reading_score", "math_score"}, df.Names())
	assert.Equal(t, []float64{-1, 1}, df.Col("num__reading_score").Float())
	assert.Equal(t, []float64{60, 70}, df.Col("math_score").Float())

	assert.Error(t, WriteMatrixCSV(fs, "bad.csv", []string{"only_one"}, m))
}

func TestWriteMatrixCSVKeepsPrecision(t *testing.T) {
	fs := afero.NewMemMapFs()
	want := []float64{-1.224744871391589, 3.2e-7, 0.123456789, 1.5e-8}
	m := mat.NewDense(len(want), 1, want)

	require.NoError(t, WriteMatrixCSV(fs, "out.csv", []string{"x"}, m))

	df, err := ReadCSV(fs, "out.csv", pipeline.Schema{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, df.Col("x").Float(), 1e-12)
}

func TestReadRawCSVRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "lunch,reading_score,math_score\n" +
		"standard,0.123456789,1.5e-8\n" +
		"NA,,70\n" +
		"free/reduced,NaN,007\n"
	require.NoError(t, afero.WriteFile(fs, "in.csv", []byte(src), 0o644))

	df, err := ReadRawCSV(fs, "in.csv")
	require.NoError(t, err)
	for _, name := range df.Names() {
		assert.Equal(t, series.String, df.Col(name).Type(), name)
	}

	require.NoError(t, WriteCSV(fs, "copy/out.csv", df))
	got, err := afero.ReadFile(fs, "copy/out.csv")
	require.NoError(t, err)
	assert.Equal(t, src, string(got))
}

func TestReadRawCSVErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "header_only.csv", []byte("a,b\n"), 0o644))

	_, err := ReadRawCSV(fs, "missing.csv")
	assert.ErrorContains(t, err, "open missing.csv")

	_, err = ReadRawCSV(fs, "header_only.csv")
	assert.Error(t, err)
}
