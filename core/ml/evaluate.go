package ml

// Evaluation is the result of scoring a classifier against labeled samples.
type Evaluation struct {
	Predictions []Label
	Expected    []Label
	Correct     int
	Total       int
}

// Accuracy returns the percentage of correct predictions, 0 for an empty set.
func (e *Evaluation) Accuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Correct) * 100 / float64(e.Total)
}

func (e *Evaluation) Passed(i int) bool {
	return e.Predictions[i] == e.Expected[i]
}

// Evaluate predicts every sample without touching the weights.
func Evaluate(p *Perceptron, samples []Sample) (*Evaluation, error) {
	if err := p.checkSamples(samples); err != nil {
		return nil, err
	}
	ev := &Evaluation{
		Predictions: make([]Label, len(samples)),
		Expected:    make([]Label, len(samples)),
		Total:       len(samples),
	}
	for i := range samples {
		ev.Predictions[i] = p.activate(samples[i].x)
		ev.Expected[i] = samples[i].y
		if ev.Passed(i) {
			ev.Correct++
		}
	}
	return ev, nil
}
