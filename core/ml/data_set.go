package ml

import (
	"fmt"

	"github.com/pkg/errors"
)

// Label is the binary class of a sample or prediction.
type Label int

const (
	Negative Label = 0
	Positive Label = 1
)

func (l Label) Valid() bool {
	return l == Negative || l == Positive
}

func (l Label) String() string {
	switch l {
	case Negative:
		return "0"
	case Positive:
		return "1"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// Sample is one labeled input vector.
type Sample struct {
	x []float64
	y Label
}

func NewSample(x []float64, y Label) Sample {
	return Sample{x: x, y: y}
}

func (s *Sample) GetX() []float64 {
	return s.x
}

func (s *Sample) GetY() Label {
	return s.y
}

// NewSampleSet pairs inputs with outputs. Both slices must have the same length and every
// output must be 0 or 1; input widths are checked later against the classifier.
func NewSampleSet(inputs [][]float64, outputs []int) ([]Sample, error) {
	if len(inputs) != len(outputs) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d inputs but %d outputs", len(inputs), len(outputs))
	}
	samples := make([]Sample, len(inputs))
	for i := range inputs {
		y := Label(outputs[i])
		if !y.Valid() {
			return nil, errors.Wrapf(ErrLabelOutOfRange, "sample %d: label %d", i, outputs[i])
		}
		samples[i] = NewSample(inputs[i], y)
	}
	return samples, nil
}
