package ml

// StartEvent is emitted once before the first epoch of a traced TrainBatch.
type StartEvent struct {
	Weights   []float64
	Bias      float64
	Samples   int
	MaxEpochs int
}

// StepEvent describes one sample visited during a traced epoch. WeightsAfter is nil and
// BiasAfter is zero when the sample was classified correctly and no update happened.
type StepEvent struct {
	Epoch         int
	SampleIndex   int
	Input         []float64
	Prediction    Label
	Expected      Label
	Error         int
	WeightsBefore []float64
	BiasBefore    float64
	WeightsAfter  []float64
	BiasAfter     float64
}

func (e *StepEvent) Updated() bool {
	return e.WeightsAfter != nil
}

type EpochEvent struct {
	Epoch  int
	Errors int
}

type ConvergedEvent struct {
	Epoch int
}

type FinishEvent struct {
	Weights []float64
	Bias    float64
	Outcome TrainingOutcome
}

// Observer receives training telemetry inline with TrainBatch when tracing is on.
// Implementations must not block and must not call back into the Perceptron.
// Slices inside events are copies owned by the observer.
type Observer interface {
	TrainingStarted(ev StartEvent)
	Step(ev StepEvent)
	EpochDone(ev EpochEvent)
	Converged(ev ConvergedEvent)
	TrainingFinished(ev FinishEvent)
}

// NopObserver ignores every event. Embed it to implement only part of Observer.
type NopObserver struct{}

func (NopObserver) TrainingStarted(StartEvent)   {}
func (NopObserver) Step(StepEvent)               {}
func (NopObserver) EpochDone(EpochEvent)         {}
func (NopObserver) Converged(ConvergedEvent)     {}
func (NopObserver) TrainingFinished(FinishEvent) {}
