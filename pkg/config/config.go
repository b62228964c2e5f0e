package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/sparshsharma0303/MLProject/pkg/pipeline"
)

// Config holds all configuration for the command line tools.
type Config struct {
	ArtifactDir      string
	PreprocessorFile string
	SchemaFile       string
	LogLevel         string
	LogFormat        string
	LogFile          string
	TestRatio        float64
	Seed             int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ArtifactDir:      getEnv("ARTIFACT_DIR", "artifacts"),
		PreprocessorFile: getEnv("PREPROCESSOR_FILE", "preprocessor.json"),
		SchemaFile:       getEnv("SCHEMA_FILE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogFile:          getEnv("LOG_FILE", ""),
		TestRatio:        getEnvFloat("INGEST_TEST_RATIO", 0.2),
		Seed:             getEnvInt("INGEST_SEED", 42),
	}
}

// PreprocessorPath returns where the fitted preprocessor is stored.
func (c *Config) PreprocessorPath() string {
	return filepath.Join(c.ArtifactDir, c.PreprocessorFile)
}

// Schema returns the schema file's contents, or the student-performance
// schema when no file is configured.
func (c *Config) Schema(fs afero.Fs) (pipeline.Schema, error) {
	if c.SchemaFile == "" {
		return StudentPerformanceSchema(), nil
	}
	return LoadSchema(fs, c.SchemaFile)
}

// StudentPerformanceSchema is the layout of the student-performance dataset.
func StudentPerformanceSchema() pipeline.Schema {
	return pipeline.Schema{Columns: []pipeline.Column{
		{Name: "gender", Kind: pipeline.Categorical},
		{Name: "race_ethnicity", Kind: pipeline.Categorical},
		{Name: "parental_level_of_education", Kind: pipeline.Categorical},
		{Name: "lunch", Kind: pipeline.Categorical},
		{Name: "test_preparation_course", Kind: pipeline.Categorical},
		{Name: "math_score", Kind: pipeline.Target},
		{Name: "reading_score", Kind: pipeline.Numeric},
		{Name: "writing_score", Kind: pipeline.Numeric},
	}}
}

// LoadSchema reads and validates a YAML schema file:
//
//	columns:
//	  - name: reading_score
//	    kind: numeric
//	  - name: math_score
//	    kind: target
func LoadSchema(fs afero.Fs, path string) (pipeline.Schema, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return pipeline.Schema{}, errors.Wrapf(err, "read schema %s", path)
	}
	var s pipeline.Schema
	if err := yaml.Unmarshal(b, &s); err != nil {
		return pipeline.Schema{}, errors.Wrapf(err, "parse schema %s", path)
	}
	if err := s.Validate(); err != nil {
		return pipeline.Schema{}, errors.Wrapf(err, "schema %s", path)
	}
	return s, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	if v, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return v
	}
	return defaultValue
}
