package transform

import "path/filepath"

// Config names where the fitted preprocessor is stored. It is a value
// type; a DataTransformation keeps its own copy.
type Config struct {
	PreprocessorPath string
}

// DefaultConfig stores the preprocessor under artifacts/.
func DefaultConfig() Config {
	return Config{PreprocessorPath: filepath.Join("artifacts", "preprocessor.json")}
}
