package node

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"perceptron/common"
	"perceptron/core/ml"
	"perceptron/core/msgbus"
)

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatInput(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// traceLogger writes the step-by-step training trace.
type traceLogger struct {
	log common.Logger
}

func (t *traceLogger) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	switch ev := msg.Msg.(type) {
	case *ml.StartEvent:
		t.log.Infof("start training on %d samples for at most %d epochs", ev.Samples, ev.MaxEpochs)
		for i, w := range ev.Weights {
			t.log.Infof("  w%d = %.4f", i, w)
		}
		t.log.Infof("  bias = %.4f", ev.Bias)
	case *ml.StepEvent:
		if !ev.Updated() {
			t.log.Debugf("epoch %d sample %d: %s -> pred=%s, expected=%s ok",
				ev.Epoch, ev.SampleIndex, formatInput(ev.Input), ev.Prediction, ev.Expected)
			return nil
		}
		t.log.Infof("epoch %d sample %d: %s -> pred=%s, expected=%s ERROR=%d",
			ev.Epoch, ev.SampleIndex, formatInput(ev.Input), ev.Prediction, ev.Expected, ev.Error)
		for j := range ev.WeightsBefore {
			t.log.Infof("    w%d: %.4f -> %.4f", j, ev.WeightsBefore[j], ev.WeightsAfter[j])
		}
		t.log.Infof("    bias: %.4f -> %.4f", ev.BiasBefore, ev.BiasAfter)
	case *ml.EpochEvent:
		t.log.Infof("epoch %d summary: %d errors", ev.Epoch, ev.Errors)
	case *ml.ConvergedEvent:
		t.log.Infof("converged at epoch %d", ev.Epoch)
	case *ml.FinishEvent:
		t.log.Infof("final weights %s bias %.4f (%s after %d epochs)",
			formatVector(ev.Weights), ev.Bias, ev.Outcome.Status, ev.Outcome.Epochs)
	default:
		return errors.Errorf("unexpected %s payload %T", msg.MsgType, msg.Msg)
	}
	return nil
}

// feedbackLogger reports predictions and reinforcement results from Classify.
type feedbackLogger struct {
	log common.Logger
}

func (f *feedbackLogger) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	switch ev := msg.Msg.(type) {
	case *ClassifyResult:
		if msg.MsgType == common.FeedbackMsg_Prediction {
			f.log.Infof("input %s -> %s", formatInput(ev.Input), ev.Prediction)
			return nil
		}
		switch ev.Reinforcement.Status {
		case ml.AlreadyCorrect:
			f.log.Infof("input %s: already correct, no update needed", formatInput(ev.Input))
		case ml.Learned:
			f.log.Infof("input %s: learned after %d updates, now predicting %s",
				formatInput(ev.Input), ev.Reinforcement.Updates, ev.Reinforcement.Prediction)
		case ml.PartiallyLearned:
			f.log.Warnf("input %s: partially learned after %d updates, still predicting %s, may need more examples",
				formatInput(ev.Input), ev.Reinforcement.Updates, ev.Reinforcement.Prediction)
		}
	default:
		return errors.Errorf("unexpected %s payload %T", msg.MsgType, msg.Msg)
	}
	return nil
}
