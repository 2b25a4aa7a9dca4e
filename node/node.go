package node

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"perceptron/common"
	"perceptron/core/config"
	"perceptron/core/dataset"
	"perceptron/core/ml"
	"perceptron/core/msgbus"
	"perceptron/core/report"
)

// PerceptronNode owns one training session: its dataset, classifier, event bus and logger.
// Like the classifier it wraps, a node is driven by one caller at a time.
type PerceptronNode struct {
	conf       *config.LocalConfig
	log        common.Logger
	sessionID  string
	seed       int64
	msgBus     msgbus.MessageBus
	data       *dataset.DataSet
	samples    []ml.Sample
	classifier *ml.Perceptron
	outcome    *ml.TrainingOutcome
}

// ClassifyResult is the answer to one Classify call. Reinforcement is nil when no expected
// label was given.
type ClassifyResult struct {
	Input         []float64
	Prediction    ml.Label
	Reinforcement *ml.ReinforcementResult
}

// Init applies the log config and sets the node up with module loggers.
func (n *PerceptronNode) Init(c *config.LocalConfig) error {
	logConfig, err := c.LogConfig()
	if err != nil {
		return errors.WithMessage(err, "get log config")
	}
	common.SetLogConfig(logConfig)

	n.sessionID = uuid.New().String()
	return n.InitWithLogger(c, common.GetLoggerWithSessionID(common.MODULE_NODE, n.sessionID))
}

// InitWithLogger sets the node up with the given logger for every module.
func (n *PerceptronNode) InitWithLogger(c *config.LocalConfig, log common.Logger) error {
	n.conf = c
	n.log = log
	if n.sessionID == "" {
		n.sessionID = uuid.New().String()
	}

	if c.Path != "" {
		n.moduleLogger(common.MODULE_CONFIG).Infof("config loaded from %s", c.Path)
	} else {
		n.moduleLogger(common.MODULE_CONFIG).Debugf("no config file, using defaults")
	}

	ds, err := loadDataset(c)
	if err != nil {
		return err
	}
	n.moduleLogger(common.MODULE_DATASET).Debugf("dataset %q: inputs %v, output %q",
		ds.Name, ds.InputLabels, ds.OutputLabel)
	samples, err := ds.Samples()
	if err != nil {
		return err
	}
	if ds.Width() == 0 {
		return errors.Errorf("dataset %q has no samples", ds.Name)
	}
	n.data = ds
	n.samples = samples

	n.seed = c.Train.Seed
	if n.seed == 0 {
		n.seed = time.Now().UnixNano()
	}
	opts := append(c.PerceptronOptions(), ml.WithRand(rand.New(rand.NewSource(n.seed))))

	//在分类器初始化之前，初始化messagebus
	n.msgBus = msgbus.NewMessageBus(n.moduleLogger(common.MODULE_TRACE))
	n.msgBus.Register(common.TrainingMsg, &traceLogger{log: n.moduleLogger(common.MODULE_TRACE)})
	n.msgBus.Register(common.FeedbackMsg, &feedbackLogger{log: n.moduleLogger(common.MODULE_PERCEPTRON)})
	opts = append(opts, ml.WithObserver(msgbus.NewObserver(n.msgBus, n.sessionID)))

	n.classifier, err = ml.NewPerceptron(ds.Width(), opts...)
	if err != nil {
		return errors.WithMessage(err, "create perceptron")
	}

	n.log.Infof("session %s: dataset %q, %d samples x %d features, learning rate %v, seed %d",
		n.sessionID, ds.Name, len(samples), ds.Width(), c.Train.LearningRate, n.seed)
	return nil
}

// moduleLogger returns the module logger of this session, or the injected logger when the
// node was not set up through Init.
func (n *PerceptronNode) moduleLogger(module string) common.Logger {
	if _, ok := n.log.(*common.PerceptronLogger); ok {
		return common.GetLoggerWithSessionID(module, n.sessionID)
	}
	return n.log
}

func loadDataset(c *config.LocalConfig) (*dataset.DataSet, error) {
	if c.Dataset.File != "" {
		return dataset.LoadFile(c.Dataset.File)
	}
	provider := &dataset.Files{Dir: c.Dataset.Dir, Fallback: dataset.Builtin{}}
	return provider.Dataset(c.Dataset.Name)
}

func (n *PerceptronNode) SessionID() string {
	return n.sessionID
}

func (n *PerceptronNode) Seed() int64 {
	return n.seed
}

func (n *PerceptronNode) Dataset() *dataset.DataSet {
	return n.data
}

func (n *PerceptronNode) Classifier() *ml.Perceptron {
	return n.classifier
}

// Outcome is the result of the last Train call, nil before training.
func (n *PerceptronNode) Outcome() *ml.TrainingOutcome {
	return n.outcome
}

// Train runs TrainBatch over the session dataset with the configured epoch budget. When the
// trace is off, progress is logged every ProgressEvery epochs and on the final epoch.
func (n *PerceptronNode) Train() (*ml.TrainingOutcome, error) {
	tc := n.conf.Train
	outcome, err := n.classifier.TrainBatch(n.samples, tc.MaxEpochs, tc.Trace)
	n.msgBus.Flush()
	if err != nil {
		return nil, errors.WithMessagef(err, "train on %q", n.data.Name)
	}
	n.outcome = outcome

	if !tc.Trace {
		n.logProgress(outcome)
	}
	if outcome.Converged() {
		n.log.Infof("training complete, converged at epoch %d", outcome.ConvergedEpoch)
	} else {
		n.log.Warnf("no convergence within %d epochs (%d errors in the last one), data may not be linearly separable",
			tc.MaxEpochs, outcome.LastErrors())
	}
	n.logWeights()
	return outcome, nil
}

func (n *PerceptronNode) logProgress(outcome *ml.TrainingOutcome) {
	every := n.conf.Train.ProgressEvery
	if every <= 0 {
		return
	}
	for epoch, errs := range outcome.ErrorsPerEpoch {
		if epoch%every == 0 || epoch == len(outcome.ErrorsPerEpoch)-1 {
			n.log.Infof("epoch %d: %d errors", epoch, errs)
		}
	}
}

func (n *PerceptronNode) logWeights() {
	w := n.classifier.Weights()
	for i := range w {
		n.log.Infof("  %-24s w%d = %.4f", n.data.InputLabel(i), i, w[i])
	}
	n.log.Infof("  %-24s bias = %.4f", "", n.classifier.Bias())
}

// Evaluate scores the classifier on the session dataset and logs a pass/fail line per sample.
func (n *PerceptronNode) Evaluate() (*ml.Evaluation, error) {
	ev, err := ml.Evaluate(n.classifier, n.samples)
	if err != nil {
		return nil, err
	}
	for i := range n.samples {
		result := "PASS"
		if !ev.Passed(i) {
			result = "FAIL"
		}
		n.log.Infof("  %-12s %s -> %s (expected %s) %s",
			n.data.SampleName(i), formatInput(n.data.Inputs[i]), ev.Predictions[i], ev.Expected[i], result)
	}
	n.log.Infof("%d/%d tests passed (%.1f%% accuracy)", ev.Correct, ev.Total, ev.Accuracy())
	return ev, nil
}

// Classify predicts input and, when expected is given and differs, reinforces the classifier
// on it.
func (n *PerceptronNode) Classify(input []float64, expected *ml.Label) (*ClassifyResult, error) {
	prediction, err := n.classifier.Predict(input)
	if err != nil {
		return nil, err
	}
	res := &ClassifyResult{Input: append([]float64(nil), input...), Prediction: prediction}
	published := *res
	n.msgBus.Publish(n.sessionID, common.FeedbackMsg_Prediction, &published)

	if expected != nil {
		res.Reinforcement, err = n.classifier.ReinforceSample(input, *expected)
		if err != nil {
			return nil, err
		}
		published := *res
		n.msgBus.Publish(n.sessionID, common.FeedbackMsg_Reinforce, &published)
	}
	n.msgBus.Flush()
	return res, nil
}

// SaveErrorCurve plots errors per epoch of the last training run.
func (n *PerceptronNode) SaveErrorCurve(filename string) error {
	if n.outcome == nil {
		return errors.New("not trained yet")
	}
	if err := report.SaveErrorCurve(filename, n.data.Name, n.outcome.ErrorsPerEpoch); err != nil {
		return err
	}
	n.log.Infof("error curve saved to %s", filename)
	return nil
}

// Close drains pending events and stops the bus.
func (n *PerceptronNode) Close() {
	if n.msgBus != nil {
		n.msgBus.Reset()
	}
}
