package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "artifacts", cfg.ArtifactDir)
	assert.Equal(t, "artifacts/preprocessor.json", cfg.PreprocessorPath())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0.2, cfg.TestRatio)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ARTIFACT_DIR", "/tmp/out")
	t.Setenv("PREPROCESSOR_FILE", "pre.json")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("INGEST_TEST_RATIO", "0.25")
	t.Setenv("INGEST_SEED", "not-a-number")

	cfg := Load()
	assert.Equal(t, "/tmp/out/pre.json", cfg.PreprocessorPath())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 0.25, cfg.TestRatio)
	assert.Equal(t, int64(42), cfg.Seed, "unparsable values fall back to the default")
}

func TestStudentPerformanceSchema(t *testing.T) {
	s := StudentPerformanceSchema()
	require.NoError(t, s.Validate())
	assert.Equal(t, []string{"reading_score", "writing_score"}, s.Names(pipeline.Numeric))
	assert.Equal(t, []string{"gender", "race_ethnicity", "parental_level_of_education", "lunch", "test_preparation_course"}, s.Names(pipeline.Categorical))
	target, err := s.Target()
	require.NoError(t, err)
	assert.Equal(t, "math_score", target)
}

func TestSchemaFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "schema.yaml", []byte(`
columns:
  - name: hours
    kind: numeric
  - name: school
    kind: categorical
  - name: grade
    kind: target
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("columns:\n  - name: hours\n    kind: numeric\n"), 0o644))

	cfg := &Config{SchemaFile: "schema.yaml"}
	s, err := cfg.Schema(fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"hours"}, s.Names(pipeline.Numeric))
	assert.Equal(t, []string{"school"}, s.Names(pipeline.Categorical))

	_, err = LoadSchema(fs, "bad.yaml")
	assert.ErrorContains(t, err, "exactly one target")

	_, err = LoadSchema(fs, "nope.yaml")
	assert.Error(t, err)

	s, err = (&Config{}).Schema(fs)
	require.NoError(t, err)
	assert.Equal(t, StudentPerformanceSchema(), s)
}
