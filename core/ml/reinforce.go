package ml

import "github.com/pkg/errors"

type ReinforceStatus int

const (
	AlreadyCorrect ReinforceStatus = iota
	Learned
	PartiallyLearned
)

func (s ReinforceStatus) String() string {
	switch s {
	case AlreadyCorrect:
		return "already correct"
	case Learned:
		return "learned"
	case PartiallyLearned:
		return "partially learned"
	}
	return "unknown"
}

type ReinforcementResult struct {
	Status     ReinforceStatus
	Prediction Label
	// Updates is the number of weight updates applied.
	Updates int
}

// ReinforceSample corrects the classifier on a single example. When the example is already
// classified as expected nothing changes. Otherwise the update rule is applied to this example
// at most ReinforceIterations times, stopping as soon as the prediction flips.
func (p *Perceptron) ReinforceSample(x []float64, expected Label) (*ReinforcementResult, error) {
	if err := p.checkInput(x); err != nil {
		return nil, err
	}
	if !expected.Valid() {
		return nil, errors.Wrapf(ErrLabelOutOfRange, "expected label %d", int(expected))
	}

	prediction := p.activate(x)
	if prediction == expected {
		return &ReinforcementResult{Status: AlreadyCorrect, Prediction: prediction}, nil
	}

	res := &ReinforcementResult{}
	for iter := 0; iter < p.reinforceIterations; iter++ {
		e := int(expected) - int(p.activate(x))
		if e == 0 {
			break
		}
		p.update(x, e)
		res.Updates++
	}

	res.Prediction = p.activate(x)
	if res.Prediction == expected {
		res.Status = Learned
	} else {
		res.Status = PartiallyLearned
	}
	return res, nil
}
