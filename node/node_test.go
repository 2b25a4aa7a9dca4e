package node

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perceptron/core/config"
	"perceptron/core/dataset"
	"perceptron/core/ml"
	"perceptron/test/mock"
)

func testConfig(name string) *config.LocalConfig {
	return &config.LocalConfig{
		Log: config.LogSection{Level: "DEBUG"},
		Train: config.TrainSection{
			LearningRate:        0.1,
			MaxEpochs:           100,
			ReinforceIterations: 5,
			Seed:                1,
			ProgressEvery:       10,
		},
		Dataset: config.DatasetSection{Name: name},
	}
}

func newTestNode(t *testing.T, c *config.LocalConfig) (*PerceptronNode, *mock.MockLog) {
	log := mock.GetMockLogger("node")
	n := &PerceptronNode{}
	require.NoError(t, n.InitWithLogger(c, log))
	t.Cleanup(n.Close)
	return n, log
}

func containsLine(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestNodeTrainGate(t *testing.T) {
	n, log := newTestNode(t, testConfig("and"))
	assert.Equal(t, int64(1), n.Seed())
	assert.NotEmpty(t, n.SessionID())
	assert.Equal(t, "AND logic gate", n.Dataset().Name)
	assert.Nil(t, n.Outcome())

	outcome, err := n.Train()
	require.NoError(t, err)
	assert.True(t, outcome.Converged())
	assert.Equal(t, outcome, n.Outcome())

	ev, err := n.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 100.0, ev.Accuracy())

	lines := log.Lines()
	assert.True(t, containsLine(lines, "converged at epoch"))
	assert.True(t, containsLine(lines, "epoch 0:"))
	assert.True(t, containsLine(lines, "4/4 tests passed"))
	assert.False(t, containsLine(lines, "summary"), "no trace without train.trace")
}

func TestNodeTrainIsReproducible(t *testing.T) {
	n1, _ := newTestNode(t, testConfig("nand"))
	n2, _ := newTestNode(t, testConfig("nand"))
	assert.Equal(t, n1.Classifier().Weights(), n2.Classifier().Weights())

	_, err := n1.Train()
	require.NoError(t, err)
	_, err = n2.Train()
	require.NoError(t, err)
	assert.Equal(t, n1.Classifier().Weights(), n2.Classifier().Weights())
	assert.Equal(t, n1.Classifier().Bias(), n2.Classifier().Bias())
}

func TestNodeTrace(t *testing.T) {
	c := testConfig("or")
	c.Train.Trace = true
	n, log := newTestNode(t, c)

	outcome, err := n.Train()
	require.NoError(t, err)

	lines := log.Lines()
	assert.True(t, containsLine(lines, "start training on 4 samples"))
	assert.True(t, containsLine(lines, "epoch 0 summary"))
	assert.True(t, containsLine(lines, "final weights"))
	if outcome.Epochs > 1 {
		assert.True(t, containsLine(lines, "ERROR="))
	}
	assert.False(t, containsLine(lines, "[WARN]"))
}

func TestNodeNonSeparable(t *testing.T) {
	n, log := newTestNode(t, testConfig("xor"))

	outcome, err := n.Train()
	require.NoError(t, err)
	assert.Equal(t, ml.Exhausted, outcome.Status)
	assert.Equal(t, 100, outcome.Epochs)
	assert.True(t, containsLine(log.Lines(), "no convergence within 100 epochs"))

	ev, err := n.Evaluate()
	require.NoError(t, err)
	assert.Less(t, ev.Accuracy(), 100.0)
}

func TestNodeClassify(t *testing.T) {
	n, log := newTestNode(t, testConfig("and"))
	_, err := n.Train()
	require.NoError(t, err)

	res, err := n.Classify([]float64{1, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, ml.Positive, res.Prediction)
	assert.Nil(t, res.Reinforcement)

	want := ml.Positive
	res, err = n.Classify([]float64{1, 1}, &want)
	require.NoError(t, err)
	assert.Equal(t, ml.AlreadyCorrect, res.Reinforcement.Status)
	assert.True(t, containsLine(log.Lines(), "already correct"))

	// teach it that (0,0) is positive
	res, err = n.Classify([]float64{0, 0}, &want)
	require.NoError(t, err)
	assert.Equal(t, ml.Negative, res.Prediction)
	assert.NotEqual(t, ml.AlreadyCorrect, res.Reinforcement.Status)
	assert.True(t, containsLine(log.Lines(), "learned"))

	_, err = n.Classify([]float64{1}, nil)
	assert.True(t, errors.Is(err, ml.ErrDimensionMismatch))

	bad := ml.Label(7)
	_, err = n.Classify([]float64{1, 0}, &bad)
	assert.True(t, errors.Is(err, ml.ErrLabelOutOfRange))
}

func TestNodeUnknownDataset(t *testing.T) {
	n := &PerceptronNode{}
	err := n.InitWithLogger(testConfig("unicorns"), mock.GetMockLogger("node"))
	assert.True(t, errors.Is(err, dataset.ErrUnknownDataset))
}

func TestNodeDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three.yaml")
	data := "inputs: [[1, 0, 0], [0, 1, 0], [0, 0, 1], [1, 1, 1]]\noutputs: [0, 0, 1, 1]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c := testConfig("")
	c.Dataset.File = path
	n, _ := newTestNode(t, c)
	assert.Equal(t, "three", n.Dataset().Name)
	assert.Equal(t, 3, n.Classifier().InputSize())

	outcome, err := n.Train()
	require.NoError(t, err)
	assert.True(t, outcome.Converged())
}

func TestNodeSaveErrorCurve(t *testing.T) {
	n, _ := newTestNode(t, testConfig("nor"))
	path := filepath.Join(t.TempDir(), "curve.png")

	assert.Error(t, n.SaveErrorCurve(path))

	_, err := n.Train()
	require.NoError(t, err)
	require.NoError(t, n.SaveErrorCurve(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
