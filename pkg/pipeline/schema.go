package pipeline

import "github.com/pkg/errors"

// Kind tags a column with the role it plays in preprocessing.
type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
	Target      Kind = "target"
)

func (k Kind) valid() bool {
	switch k {
	case Numeric, Categorical, Target:
		return true
	}
	return false
}

// Column is a named, typed column of a dataset.
type Column struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`
}

// Schema describes the structure of a dataset. It is the one place
// that says which columns are numeric, categorical or the target.
type Schema struct {
	Columns []Column `yaml:"columns" json:"columns"`
}

// Names returns the column names of the given kind in schema order.
func (s Schema) Names(kind Kind) []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// Target returns the name of the target column.
func (s Schema) Target() (string, error) {
	targets := s.Names(Target)
	if len(targets) != 1 {
		return "", errors.Errorf("schema must have exactly one target column, found %d", len(targets))
	}
	return targets[0], nil
}

// Validate checks that the schema can drive a preprocessing run.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return errors.New("schema has no columns")
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return errors.New("schema column with empty name")
		}
		if !c.Kind.valid() {
			return errors.Errorf("column %q has unknown kind %q", c.Name, c.Kind)
		}
		if _, dup := seen[c.Name]; dup {
			return errors.Errorf("column %q declared more than once", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	if _, err := s.Target(); err != nil {
		return err
	}
	if len(s.Names(Numeric))+len(s.Names(Categorical)) == 0 {
		return errors.New("schema has no feature columns")
	}
	return nil
}
