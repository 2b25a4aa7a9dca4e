package ml

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	starts    []StartEvent
	steps     []StepEvent
	epochs    []EpochEvent
	converged []ConvergedEvent
	finishes  []FinishEvent
}

func (r *recorder) TrainingStarted(ev StartEvent)   { r.starts = append(r.starts, ev) }
func (r *recorder) Step(ev StepEvent)               { r.steps = append(r.steps, ev) }
func (r *recorder) EpochDone(ev EpochEvent)         { r.epochs = append(r.epochs, ev) }
func (r *recorder) Converged(ev ConvergedEvent)     { r.converged = append(r.converged, ev) }
func (r *recorder) TrainingFinished(ev FinishEvent) { r.finishes = append(r.finishes, ev) }

func TestTrainTraceEvents(t *testing.T) {
	rec := &recorder{}
	p, err := NewPerceptronFromWeights([]float64{0, 0}, 0, WithObserver(rec))
	require.NoError(t, err)

	outcome, err := p.TrainBatch(gateSamples(t, gateOutputs["AND"]), 100, true)
	require.NoError(t, err)
	require.True(t, outcome.Converged())

	require.Len(t, rec.starts, 1)
	assert.Equal(t, []float64{0, 0}, rec.starts[0].Weights)
	assert.Equal(t, 4, rec.starts[0].Samples)
	assert.Equal(t, 100, rec.starts[0].MaxEpochs)

	require.Len(t, rec.steps, 4*outcome.Epochs)
	require.Len(t, rec.epochs, outcome.Epochs)
	require.Len(t, rec.converged, 1)
	require.Len(t, rec.finishes, 1)

	// (0,0): sum 0 predicts 1, expected 0, only the bias moves
	first := rec.steps[0]
	assert.Equal(t, 0, first.Epoch)
	assert.Equal(t, 0, first.SampleIndex)
	assert.Equal(t, Positive, first.Prediction)
	assert.Equal(t, Negative, first.Expected)
	assert.Equal(t, -1, first.Error)
	assert.True(t, first.Updated())
	assert.Equal(t, []float64{0, 0}, first.WeightsBefore)
	assert.Equal(t, 0.0, first.BiasBefore)
	assert.Equal(t, []float64{0, 0}, first.WeightsAfter)
	assert.InDelta(t, -0.1, first.BiasAfter, 1e-12)

	// (0,1): sum -0.1 predicts 0, correct, no update
	second := rec.steps[1]
	assert.Equal(t, 0, second.Error)
	assert.False(t, second.Updated())
	assert.Nil(t, second.WeightsAfter)
	assert.InDelta(t, -0.1, second.BiasBefore, 1e-12)

	for i, ev := range rec.epochs {
		assert.Equal(t, i, ev.Epoch)
		assert.Equal(t, outcome.ErrorsPerEpoch[i], ev.Errors)
	}
	assert.Equal(t, outcome.ConvergedEpoch, rec.converged[0].Epoch)
	assert.Equal(t, p.Weights(), rec.finishes[0].Weights)
	assert.Equal(t, p.Bias(), rec.finishes[0].Bias)
	assert.Equal(t, *outcome, rec.finishes[0].Outcome)
}

func TestTrainWithoutTraceEmitsNothing(t *testing.T) {
	rec := &recorder{}
	p, err := NewPerceptron(2, WithRand(rand.New(rand.NewSource(11))), WithObserver(rec))
	require.NoError(t, err)

	_, err = p.TrainBatch(gateSamples(t, gateOutputs["OR"]), 100, false)
	require.NoError(t, err)
	assert.Empty(t, rec.starts)
	assert.Empty(t, rec.steps)
	assert.Empty(t, rec.epochs)
	assert.Empty(t, rec.finishes)
}

func TestTrainTraceDoesNotChangeResult(t *testing.T) {
	quiet, err := NewPerceptronFromWeights([]float64{0.7, -0.4}, 0.2)
	require.NoError(t, err)
	traced, err := NewPerceptronFromWeights([]float64{0.7, -0.4}, 0.2, WithObserver(&recorder{}))
	require.NoError(t, err)

	o1, err := quiet.TrainBatch(gateSamples(t, gateOutputs["NAND"]), 100, false)
	require.NoError(t, err)
	o2, err := traced.TrainBatch(gateSamples(t, gateOutputs["NAND"]), 100, true)
	require.NoError(t, err)

	assert.Equal(t, o1, o2)
	assert.Equal(t, quiet.Weights(), traced.Weights())
	assert.Equal(t, quiet.Bias(), traced.Bias())
}

func TestTrainDeterministic(t *testing.T) {
	run := func() (*Perceptron, *recorder, *TrainingOutcome) {
		rec := &recorder{}
		p, err := NewPerceptronFromWeights([]float64{-0.9, 0.35}, 0.6, WithObserver(rec))
		require.NoError(t, err)
		o, err := p.TrainBatch(gateSamples(t, gateOutputs["NOR"]), 100, true)
		require.NoError(t, err)
		return p, rec, o
	}

	p1, r1, o1 := run()
	p2, r2, o2 := run()
	assert.Equal(t, o1, o2)
	assert.Equal(t, p1.Weights(), p2.Weights())
	assert.Equal(t, p1.Bias(), p2.Bias())
	assert.Equal(t, r1.steps, r2.steps)
	assert.Equal(t, r1.epochs, r2.epochs)
}

func TestTrainAccumulatesAcrossCalls(t *testing.T) {
	p, err := NewPerceptronFromWeights([]float64{0, 0}, 0)
	require.NoError(t, err)

	o, err := p.TrainBatch(gateSamples(t, gateOutputs["AND"]), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Epochs)
	after := p.Weights()

	o, err = p.TrainBatch(gateSamples(t, gateOutputs["AND"]), 100, false)
	require.NoError(t, err)
	assert.True(t, o.Converged())
	assert.NotEqual(t, after, p.Weights())
}

func TestReinforceAlreadyCorrect(t *testing.T) {
	p, err := NewPerceptronFromWeights([]float64{1, 1}, -1.5)
	require.NoError(t, err)

	res, err := p.ReinforceSample([]float64{1, 1}, Positive)
	require.NoError(t, err)
	assert.Equal(t, AlreadyCorrect, res.Status)
	assert.Equal(t, Positive, res.Prediction)
	assert.Equal(t, 0, res.Updates)
	assert.Equal(t, []float64{1, 1}, p.Weights())
	assert.Equal(t, -1.5, p.Bias())
}

func TestReinforceLearned(t *testing.T) {
	p, err := NewPerceptronFromWeights([]float64{0, 0}, 0)
	require.NoError(t, err)

	res, err := p.ReinforceSample([]float64{1, 1}, Negative)
	require.NoError(t, err)
	assert.Equal(t, Learned, res.Status)
	assert.Equal(t, Negative, res.Prediction)
	assert.Equal(t, 1, res.Updates)
	assert.InDeltaSlice(t, []float64{-0.1, -0.1}, p.Weights(), 1e-12)
	assert.InDelta(t, -0.1, p.Bias(), 1e-12)

	w := p.Weights()
	res, err = p.ReinforceSample([]float64{1, 1}, Negative)
	require.NoError(t, err)
	assert.Equal(t, AlreadyCorrect, res.Status)
	assert.Equal(t, w, p.Weights())
}

func TestReinforcePartiallyLearned(t *testing.T) {
	p, err := NewPerceptronFromWeights([]float64{10, 10}, 0)
	require.NoError(t, err)

	res, err := p.ReinforceSample([]float64{1, 1}, Negative)
	require.NoError(t, err)
	assert.Equal(t, PartiallyLearned, res.Status)
	assert.Equal(t, Positive, res.Prediction)
	assert.Equal(t, DefaultReinforceIterations, res.Updates)
	assert.InDeltaSlice(t, []float64{9.5, 9.5}, p.Weights(), 1e-9)

	// a larger bound gets there
	p, err = NewPerceptronFromWeights([]float64{10, 10}, 0, WithReinforceIterations(100))
	require.NoError(t, err)
	res, err = p.ReinforceSample([]float64{1, 1}, Negative)
	require.NoError(t, err)
	assert.Equal(t, Learned, res.Status)
	assert.Greater(t, res.Updates, DefaultReinforceIterations)
	assert.Less(t, res.Updates, 100)
}

func TestReinforceValidation(t *testing.T) {
	p, err := NewPerceptronFromWeights([]float64{0, 0}, 0)
	require.NoError(t, err)

	_, err = p.ReinforceSample([]float64{1}, Positive)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = p.ReinforceSample([]float64{1, 1}, Label(3))
	assert.True(t, errors.Is(err, ErrLabelOutOfRange))
	assert.Equal(t, []float64{0, 0}, p.Weights())
	assert.Equal(t, 0.0, p.Bias())
}

func TestReinforceAfterTraining(t *testing.T) {
	p, err := NewPerceptron(2, WithRand(rand.New(rand.NewSource(5))))
	require.NoError(t, err)
	_, err = p.TrainBatch(gateSamples(t, gateOutputs["OR"]), 100, false)
	require.NoError(t, err)

	x := []float64{0.1, 0.1}
	c, err := p.Predict(x)
	require.NoError(t, err)

	want := Positive
	if c == Positive {
		want = Negative
	}
	res, err := p.ReinforceSample(x, want)
	require.NoError(t, err)
	assert.NotEqual(t, AlreadyCorrect, res.Status)
	if res.Status == Learned {
		res, err = p.ReinforceSample(x, want)
		require.NoError(t, err)
		assert.Equal(t, AlreadyCorrect, res.Status)
	}
}
