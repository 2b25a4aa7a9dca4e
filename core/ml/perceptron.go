package ml

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultLearningRate = 0.1
	// DefaultReinforceIterations caps the local updates ReinforceSample applies to one
	// example. It is a heuristic, not a convergence bound.
	DefaultReinforceIterations = 5
)

type State int

const (
	StateInitialized State = iota
	StateTrained
)

func (s State) String() string {
	if s == StateTrained {
		return "trained"
	}
	return "initialized"
}

type options struct {
	learningRate        float64
	reinforceIterations int
	rng                 *rand.Rand
	observer            Observer
}

type Option func(o *options)

func WithLearningRate(lr float64) Option {
	return func(o *options) { o.learningRate = lr }
}

// WithRand sets the generator used for the initial weights. Without it a time-seeded
// generator is created.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func WithReinforceIterations(n int) Option {
	return func(o *options) { o.reinforceIterations = n }
}

// WithObserver sets the sink that receives events from traced TrainBatch calls.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		learningRate:        DefaultLearningRate,
		reinforceIterations: DefaultReinforceIterations,
	}
	for _, opt := range opts {
		opt(o)
	}
	if !(o.learningRate > 0) {
		return nil, errors.Wrapf(ErrInvalidArgument, "learning rate %v must be positive", o.learningRate)
	}
	if o.reinforceIterations <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "reinforce iterations %d must be positive", o.reinforceIterations)
	}
	return o, nil
}

// Perceptron is a single-layer linear threshold classifier. It is not safe for concurrent
// use; callers sharing an instance must serialize access.
type Perceptron struct {
	weights             []float64
	bias                float64
	learningRate        float64
	reinforceIterations int
	observer            Observer
	state               State
}

// NewPerceptron allocates inputSize weights and draws them, and the bias, uniformly from [-1, 1).
func NewPerceptron(inputSize int, opts ...Option) (*Perceptron, error) {
	if inputSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "input size %d must be positive", inputSize)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	weights := make([]float64, inputSize)
	for i := range weights {
		weights[i] = rng.Float64()*2 - 1
	}
	bias := rng.Float64()*2 - 1

	return newPerceptron(weights, bias, o), nil
}

// NewPerceptronFromWeights builds a classifier with fixed initial parameters. The weights
// slice is copied.
func NewPerceptronFromWeights(weights []float64, bias float64, opts ...Option) (*Perceptron, error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty weight vector")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return newPerceptron(append([]float64(nil), weights...), bias, o), nil
}

func newPerceptron(weights []float64, bias float64, o *options) *Perceptron {
	return &Perceptron{
		weights:             weights,
		bias:                bias,
		learningRate:        o.learningRate,
		reinforceIterations: o.reinforceIterations,
		observer:            o.observer,
		state:               StateInitialized,
	}
}

func (p *Perceptron) InputSize() int {
	return len(p.weights)
}

func (p *Perceptron) LearningRate() float64 {
	return p.learningRate
}

func (p *Perceptron) ReinforceIterations() int {
	return p.reinforceIterations
}

// Weights returns a copy of the current weight vector.
func (p *Perceptron) Weights() []float64 {
	return append([]float64(nil), p.weights...)
}

func (p *Perceptron) Bias() float64 {
	return p.bias
}

func (p *Perceptron) State() State {
	return p.state
}

func (p *Perceptron) SetObserver(obs Observer) {
	p.observer = obs
}

func (p *Perceptron) checkInput(x []float64) error {
	if len(x) != len(p.weights) {
		return errors.Wrapf(ErrDimensionMismatch, "input has %d features, classifier expects %d", len(x), len(p.weights))
	}
	return nil
}

// Predict returns 1 when bias + w·x >= 0 and 0 otherwise.
func (p *Perceptron) Predict(x []float64) (Label, error) {
	if err := p.checkInput(x); err != nil {
		return Negative, err
	}
	return p.activate(x), nil
}

func (p *Perceptron) activate(x []float64) Label {
	if p.bias+floats.Dot(x, p.weights) >= 0 {
		return Positive
	}
	return Negative
}

// update applies the perceptron rule for one sample with the given error.
func (p *Perceptron) update(x []float64, e int) {
	step := p.learningRate * float64(e)
	floats.AddScaled(p.weights, step, x)
	p.bias += step
}
