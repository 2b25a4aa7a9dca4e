// Package dataset supplies labeled sample collections to the classifier: the built-in
// fixtures and datasets read from YAML, JSON or TOML files.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"perceptron/core/ml"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// DataSet is a named table of input vectors and their expected 0/1 outputs.
type DataSet struct {
	Name        string      `mapstructure:"name"`
	Inputs      [][]float64 `mapstructure:"inputs"`
	Outputs     []int       `mapstructure:"outputs"`
	InputLabels []string    `mapstructure:"input_labels"`
	OutputLabel string      `mapstructure:"output_label"`
	// SampleNames optionally names each row, e.g. "Lemon".
	SampleNames []string `mapstructure:"sample_names"`
}

// Width is the number of features per input, 0 for an empty set.
func (d *DataSet) Width() int {
	if len(d.Inputs) == 0 {
		return 0
	}
	return len(d.Inputs[0])
}

// Validate checks the table shape: matching row counts, uniform width and 0/1 outputs.
func (d *DataSet) Validate() error {
	if len(d.Inputs) != len(d.Outputs) {
		return errors.Wrapf(ml.ErrInvalidArgument, "dataset %q: %d inputs but %d outputs", d.Name, len(d.Inputs), len(d.Outputs))
	}
	width := d.Width()
	for i, x := range d.Inputs {
		if len(x) != width {
			return errors.Wrapf(ml.ErrDimensionMismatch, "dataset %q: row %d has %d features, want %d", d.Name, i, len(x), width)
		}
	}
	for i, y := range d.Outputs {
		if !ml.Label(y).Valid() {
			return errors.Wrapf(ml.ErrLabelOutOfRange, "dataset %q: row %d label %d", d.Name, i, y)
		}
	}
	if len(d.InputLabels) > 0 && len(d.InputLabels) != width {
		return errors.Wrapf(ml.ErrInvalidArgument, "dataset %q: %d input labels for %d features", d.Name, len(d.InputLabels), width)
	}
	if len(d.SampleNames) > 0 && len(d.SampleNames) != len(d.Inputs) {
		return errors.Wrapf(ml.ErrInvalidArgument, "dataset %q: %d sample names for %d rows", d.Name, len(d.SampleNames), len(d.Inputs))
	}
	return nil
}

// Samples validates the table and converts it for the classifier.
func (d *DataSet) Samples() ([]ml.Sample, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return ml.NewSampleSet(d.Inputs, d.Outputs)
}

// InputLabel returns the label of feature i, falling back to "Input i+1".
func (d *DataSet) InputLabel(i int) string {
	if i < len(d.InputLabels) && d.InputLabels[i] != "" {
		return d.InputLabels[i]
	}
	return fmt.Sprintf("Input %d", i+1)
}

func (d *DataSet) SampleName(i int) string {
	if i < len(d.SampleNames) {
		return d.SampleNames[i]
	}
	return fmt.Sprintf("#%d", i)
}

// Provider looks datasets up by name.
type Provider interface {
	Dataset(name string) (*DataSet, error)
	Names() []string
}

// Builtin serves the fixed example datasets.
type Builtin struct{}

func (Builtin) Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (Builtin) Dataset(name string) (*DataSet, error) {
	build, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDataset, "%q", name)
	}
	return build(), nil
}
