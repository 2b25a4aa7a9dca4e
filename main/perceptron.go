package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag   string
	datasetFlag   string
	dataFileFlag  string
	dataDirFlag   string
	lrFlag        float64
	epochsFlag    int
	reinforceFlag int
	seedFlag      int64
	traceFlag     bool
	logLevelFlag  string
	plotFlag      string
	inputFlag     []string
	labelFlag     int
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "",
		"config file, default perceptron_config.yaml under $PERCEPTRON_CFG_PATH")
	flags.StringVarP(&datasetFlag, "dataset", "d", "and",
		"built-in dataset or a file name under --data-dir")
	flags.StringVar(&dataFileFlag, "data", "",
		"dataset file (yaml, json or toml), overrides --dataset")
	flags.StringVar(&dataDirFlag, "data-dir", "",
		"directory of extra dataset files")
	flags.Float64Var(&lrFlag, "lr", 0.1,
		"learning rate")
	flags.IntVarP(&epochsFlag, "epochs", "e", 1000,
		"max training epochs")
	flags.IntVar(&reinforceFlag, "reinforce", 5,
		"max updates applied when correcting one input")
	flags.Int64VarP(&seedFlag, "seed", "s", 0,
		"seed for the initial weights, 0 seeds from the clock")
	flags.BoolVarP(&traceFlag, "trace", "t", false,
		"log every training step")
	flags.StringVar(&logLevelFlag, "log-level", "INFO",
		"DEBUG, INFO, WARN or ERROR")
	flags.StringVarP(&plotFlag, "plot", "p", "",
		"write the errors-per-epoch chart to this file (png, svg, pdf)")
	flags.StringArrayVarP(&inputFlag, "input", "i", nil,
		"comma separated input vector, repeatable")
	flags.IntVarP(&labelFlag, "label", "l", -1,
		"expected output (0 or 1) for the inputs, enables reinforcement")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("Could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

var trainingFlags = []string{
	"config", "dataset", "data", "data-dir", "lr", "epochs", "reinforce", "seed", "trace", "log-level",
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:          "perceptron",
		Short:        "single layer perceptron trainer",
		SilenceUsage: true,
	}
	mainCmd.AddCommand(trainCMD())
	mainCmd.AddCommand(classifyCMD())
	mainCmd.AddCommand(datasetsCMD())
	return mainCmd
}

func main() {
	if newMainCmd().Execute() != nil {
		os.Exit(1)
	}
}
