package main

import (
	"github.com/spf13/cobra"

	"perceptron/core/config"
	"perceptron/node"
)

func startNode(cmd *cobra.Command) (*node.PerceptronNode, error) {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return nil, err
	}

	n := &node.PerceptronNode{}
	if err := n.Init(lc); err != nil {
		return nil, err
	}
	return n, nil
}

func train(cmd *cobra.Command) error {
	n, err := startNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()

	outcome, err := n.Train()
	if err != nil {
		return err
	}
	if _, err := n.Evaluate(); err != nil {
		return err
	}
	if plotFlag != "" {
		if err := n.SaveErrorCurve(plotFlag); err != nil {
			return err
		}
	}

	cmd.Printf("%s: %s after %d epochs\n", n.Dataset().Name, outcome.Status, outcome.Epochs)
	return nil
}

func trainCMD() *cobra.Command {
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "train a perceptron",
		Long:  "train a perceptron on a dataset and report how well it fits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return train(cmd)
		},
	}
	attachFlags(trainCmd, append(trainingFlags, "plot"))
	return trainCmd
}
