package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"perceptron/core/dataset"
	"perceptron/core/ml"
)

// parseInput reads "6,7.5" style vectors.
func parseInput(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	x := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "input %q", s)
		}
		x = append(x, v)
	}
	return x, nil
}

func classify(cmd *cobra.Command) error {
	if len(inputFlag) == 0 {
		return errors.New("at least one --input is required")
	}
	inputs := make([][]float64, len(inputFlag))
	for i, s := range inputFlag {
		x, err := parseInput(s)
		if err != nil {
			return err
		}
		inputs[i] = x
	}
	var expected *ml.Label
	if labelFlag >= 0 {
		l := ml.Label(labelFlag)
		if !l.Valid() {
			return errors.Wrapf(ml.ErrLabelOutOfRange, "--label %d", labelFlag)
		}
		expected = &l
	}

	n, err := startNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	if _, err := n.Train(); err != nil {
		return err
	}
	for _, x := range inputs {
		res, err := n.Classify(x, expected)
		if err != nil {
			return err
		}
		if res.Reinforcement != nil {
			cmd.Printf("%v -> %s (%s, now %s)\n", x, res.Prediction, res.Reinforcement.Status, res.Reinforcement.Prediction)
		} else {
			cmd.Printf("%v -> %s\n", x, res.Prediction)
		}
	}
	return nil
}

func classifyCMD() *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "train, then classify inputs",
		Long: "train a perceptron, predict each --input and, with --label, " +
			"reinforce the classifier on inputs it gets wrong",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return classify(cmd)
		},
	}
	attachFlags(classifyCmd, append(trainingFlags, "input", "label"))
	return classifyCmd
}

func listDatasets(cmd *cobra.Command) error {
	provider := &dataset.Files{Dir: dataDirFlag, Fallback: dataset.Builtin{}}
	for _, name := range provider.Names() {
		ds, err := provider.Dataset(name)
		if err != nil {
			return err
		}
		cmd.Printf("%-12s %-45s %d samples x %d features\n", name, ds.Name, len(ds.Inputs), ds.Width())
	}
	return nil
}

func datasetsCMD() *cobra.Command {
	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "list available datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listDatasets(cmd)
		},
	}
	attachFlags(datasetsCmd, []string{"data-dir"})
	return datasetsCmd
}
