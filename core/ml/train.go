package ml

import (
	"github.com/pkg/errors"
)

type TrainingStatus int

const (
	// Exhausted means maxEpochs passes ran and the last one still had errors.
	Exhausted TrainingStatus = iota
	// Converged means an epoch completed with zero misclassifications.
	Converged
)

func (s TrainingStatus) String() string {
	if s == Converged {
		return "converged"
	}
	return "exhausted"
}

type TrainingOutcome struct {
	Status TrainingStatus
	// Epochs is the number of completed passes.
	Epochs int
	// ConvergedEpoch is the index of the zero-error epoch, or -1.
	ConvergedEpoch int
	ErrorsPerEpoch []int
}

func (o *TrainingOutcome) Converged() bool {
	return o.Status == Converged
}

// LastErrors returns the error count of the final epoch, or -1 if no epoch ran.
func (o *TrainingOutcome) LastErrors() int {
	if len(o.ErrorsPerEpoch) == 0 {
		return -1
	}
	return o.ErrorsPerEpoch[len(o.ErrorsPerEpoch)-1]
}

func (o TrainingOutcome) clone() TrainingOutcome {
	o.ErrorsPerEpoch = append([]int(nil), o.ErrorsPerEpoch...)
	return o
}

func (p *Perceptron) checkSamples(samples []Sample) error {
	for i := range samples {
		if err := p.checkInput(samples[i].x); err != nil {
			return errors.WithMessagef(err, "sample %d", i)
		}
		if !samples[i].y.Valid() {
			return errors.Wrapf(ErrLabelOutOfRange, "sample %d: label %d", i, int(samples[i].y))
		}
	}
	return nil
}

// TrainBatch runs the perceptron rule over samples, in order, for up to maxEpochs passes.
// Updates are applied per sample so later samples in a pass see earlier corrections.
// Training stops after the first pass with no errors. Every sample is validated before the
// weights are touched.
func (p *Perceptron) TrainBatch(samples []Sample, maxEpochs int, trace bool) (*TrainingOutcome, error) {
	if maxEpochs < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "max epochs %d must not be negative", maxEpochs)
	}
	if err := p.checkSamples(samples); err != nil {
		return nil, err
	}

	obs := p.observer
	if !trace {
		obs = nil
	}

	outcome := &TrainingOutcome{
		Status:         Exhausted,
		ConvergedEpoch: -1,
		ErrorsPerEpoch: make([]int, 0, maxEpochs),
	}
	p.state = StateTrained

	if obs != nil {
		obs.TrainingStarted(StartEvent{
			Weights:   p.Weights(),
			Bias:      p.bias,
			Samples:   len(samples),
			MaxEpochs: maxEpochs,
		})
	}

	for epoch := 0; epoch < maxEpochs; epoch++ {
		errorsInEpoch := 0
		for i := range samples {
			x, y := samples[i].x, samples[i].y
			prediction := p.activate(x)
			e := int(y) - int(prediction)

			var ev StepEvent
			if obs != nil {
				ev = StepEvent{
					Epoch:         epoch,
					SampleIndex:   i,
					Input:         append([]float64(nil), x...),
					Prediction:    prediction,
					Expected:      y,
					Error:         e,
					WeightsBefore: p.Weights(),
					BiasBefore:    p.bias,
				}
			}

			if e != 0 {
				errorsInEpoch++
				p.update(x, e)
				if obs != nil {
					ev.WeightsAfter = p.Weights()
					ev.BiasAfter = p.bias
				}
			}

			if obs != nil {
				obs.Step(ev)
			}
		}

		outcome.Epochs++
		outcome.ErrorsPerEpoch = append(outcome.ErrorsPerEpoch, errorsInEpoch)
		if obs != nil {
			obs.EpochDone(EpochEvent{Epoch: epoch, Errors: errorsInEpoch})
		}

		if errorsInEpoch == 0 {
			outcome.Status = Converged
			outcome.ConvergedEpoch = epoch
			if obs != nil {
				obs.Converged(ConvergedEvent{Epoch: epoch})
			}
			break
		}
	}

	if obs != nil {
		obs.TrainingFinished(FinishEvent{
			Weights: p.Weights(),
			Bias:    p.bias,
			Outcome: outcome.clone(),
		})
	}
	return outcome, nil
}
