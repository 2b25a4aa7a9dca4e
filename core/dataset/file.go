package dataset

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadFile reads a dataset from a YAML, JSON or TOML file. Keys: name, inputs, outputs,
// input_labels, output_label, sample_names. A missing name defaults to the file's base name.
func LoadFile(path string) (*DataSet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read dataset file %s", path)
	}

	ds := &DataSet{}
	if err := v.Unmarshal(ds); err != nil {
		return nil, errors.Wrapf(err, "decode dataset file %s", path)
	}
	if ds.Name == "" {
		base := filepath.Base(path)
		ds.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Files resolves names against a directory of dataset files before falling back to another
// provider. A name matches <dir>/<name>.yaml, .yml, .json or .toml.
type Files struct {
	Dir      string
	Fallback Provider
}

var fileExtensions = []string{".yaml", ".yml", ".json", ".toml"}

func (f *Files) Names() []string {
	var names []string
	if f.Dir != "" {
		for _, ext := range fileExtensions {
			matches, _ := filepath.Glob(filepath.Join(f.Dir, "*"+ext))
			for _, m := range matches {
				names = append(names, strings.TrimSuffix(filepath.Base(m), ext))
			}
		}
	}
	if f.Fallback != nil {
		names = append(names, f.Fallback.Names()...)
	}
	return names
}

func (f *Files) Dataset(name string) (*DataSet, error) {
	if f.Dir != "" {
		for _, ext := range fileExtensions {
			matches, _ := filepath.Glob(filepath.Join(f.Dir, name+ext))
			if len(matches) > 0 {
				return LoadFile(matches[0])
			}
		}
	}
	if f.Fallback != nil {
		return f.Fallback.Dataset(name)
	}
	return nil, errors.Wrapf(ErrUnknownDataset, "%q", name)
}
