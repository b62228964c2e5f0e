package ingest

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparshsharma0303/MLProject/pkg/config"
	"github.com/sparshsharma0303/MLProject/pkg/data"
	"github.com/sparshsharma0303/MLProject/pkg/errs"
	"github.com/sparshsharma0303/MLProject/pkg/logging"
)

func numbered(n int) dataframe.DataFrame {
	records := [][]string{{"id"}}
	for i := 0; i < n; i++ {
		records = append(records, []string{fmt.Sprint(i)})
	}
	return dataframe.LoadRecords(records)
}

func ids(df dataframe.DataFrame) []int {
	vals, err := df.Col("id").Int()
	if err != nil {
		panic(err)
	}
	return vals
}

func TestTrainTestSplit(t *testing.T) {
	train, test, err := TrainTestSplit(numbered(10), 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, 8, train.Nrow())
	assert.Equal(t, 2, test.Nrow())

	all := append(ids(train), ids(test)...)
	sort.Ints(all)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all, "every row lands in exactly one split")

	again, _, err := TrainTestSplit(numbered(10), 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, ids(train), ids(again), "same seed, same split")
}

func TestTrainTestSplitRoundsTestUp(t *testing.T) {
	train, test, err := TrainTestSplit(numbered(3), 0.2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, test.Nrow())
	assert.Equal(t, 2, train.Nrow())
}

func TestTrainTestSplitErrors(t *testing.T) {
	for _, ratio := range []float64{0, 1, -0.5, 1.5} {
		_, _, err := TrainTestSplit(numbered(10), ratio, 42)
		assert.Error(t, err, "ratio %v", ratio)
	}
	_, _, err := TrainTestSplit(numbered(1), 0.5, 42)
	assert.ErrorContains(t, err, "cannot split 1 rows")
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	var b strings.Builder
	b.WriteString("gender,race_ethnicity,parental_level_of_education,lunch,test_preparation_course,math_score,reading_score,writing_score\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "female,group B,high school,standard,none,%d,%d,%d\n", 50+i, 60+i, 70+i)
	}
	require.NoError(t, afero.WriteFile(fs, "data/stud.csv", []byte(b.String()), 0o644))

	d := &DataIngestion{
		Config: Config{ArtifactDir: "artifacts", TestRatio: 0.2, Seed: 42},
		Schema: config.StudentPerformanceSchema(),
		Fs:     fs,
		Logger: logging.Discard(),
	}
	p, err := d.Run("data/stud.csv")
	require.NoError(t, err)
	assert.Equal(t, Paths{Raw: "artifacts/raw.csv", Train: "artifacts/train.csv", Test: "artifacts/test.csv"}, p)

	raw, err := data.ReadCSV(fs, p.Raw, d.Schema)
	require.NoError(t, err)
	assert.Equal(t, 10, raw.Nrow())
	train, err := data.ReadCSV(fs, p.Train, d.Schema)
	require.NoError(t, err)
	assert.Equal(t, 8, train.Nrow())
	test, err := data.ReadCSV(fs, p.Test, d.Schema)
	require.NoError(t, err)
	assert.Equal(t, 2, test.Nrow())
	assert.Equal(t, raw.Names(), test.Names())
}

func TestRunCopiesCellsExactly(t *testing.T) {
	fs := afero.NewMemMapFs()
	header := "gender,race_ethnicity,parental_level_of_education,lunch,test_preparation_course,math_score,reading_score,writing_score"
	rows := []string{
		"female,group B,high school,standard,none,0.123456789,1.5e-8,70",
		"male,group C,NA,free/reduced,completed,61,,71.25",
		"female,group A,some college,standard,none,62,60.000001,NaN",
		"male,group D,master's degree,standard,none,63,61,72",
		"female,group E,high school,free/reduced,none,64,62,73",
	}
	src := header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, afero.WriteFile(fs, "data/stud.csv", []byte(src), 0o644))

	d := &DataIngestion{
		Config: Config{ArtifactDir: "artifacts", TestRatio: 0.2, Seed: 42},
		Schema: config.StudentPerformanceSchema(),
		Fs:     fs,
		Logger: logging.Discard(),
	}
	p, err := d.Run("data/stud.csv")
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, p.Raw)
	require.NoError(t, err)
	assert.Equal(t, src, string(raw))

	var split []string
	for _, path := range []string{p.Train, p.Test} {
		b, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
		require.Equal(t, header, lines[0], path)
		split = append(split, lines[1:]...)
	}
	sort.Strings(split)
	want := slices.Clone(rows)
	sort.Strings(want)
	assert.Equal(t, want, split)
}

func TestRunMissingSchemaColumn(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/stud.csv", []byte("gender,math_score\nfemale,60\nmale,70\n"), 0o644))

	d := &DataIngestion{
		Config: Config{ArtifactDir: "artifacts", TestRatio: 0.2, Seed: 42},
		Schema: config.StudentPerformanceSchema(),
		Fs:     fs,
		Logger: logging.Discard(),
	}
	_, err := d.Run("data/stud.csv")
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.ErrorContains(t, err, `column "race_ethnicity" not found`)

	exists, err := afero.Exists(fs, "artifacts/raw.csv")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunMissingSource(t *testing.T) {
	d := &DataIngestion{
		Config: Config{ArtifactDir: "artifacts", TestRatio: 0.2, Seed: 42},
		Schema: config.StudentPerformanceSchema(),
		Fs:     afero.NewMemMapFs(),
		Logger: logging.Discard(),
	}
	_, err := d.Run("nope.csv")
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "ingest.run", e.Op)
}
