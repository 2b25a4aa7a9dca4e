package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"perceptron/common"
	"perceptron/core/ml"
)

const (
	envPrefix      = "perceptron"
	cfgPathEnv     = "PERCEPTRON_CFG_PATH"
	cfgFileName    = "perceptron_config"
	defaultDataset = "and"
)

type LogSection struct {
	BriefMode      string            `mapstructure:"brief_mode"`
	Level          string            `mapstructure:"level"`
	ModuleLevels   map[string]string `mapstructure:"module_levels"`
	Path           string            `mapstructure:"path"`
	RotationMaxAge int               `mapstructure:"rotation_max_age"`
	RotationTime   int               `mapstructure:"rotation_time"`
	RotationSize   int               `mapstructure:"rotation_size"`
	ShowLine       bool              `mapstructure:"show_line"`
	Console        bool              `mapstructure:"console"`
	File           bool              `mapstructure:"file"`
}

type TrainSection struct {
	LearningRate        float64 `mapstructure:"learning_rate"`
	MaxEpochs           int     `mapstructure:"max_epochs"`
	ReinforceIterations int     `mapstructure:"reinforce_iterations"`
	// Seed 0 means seed from the clock.
	Seed  int64 `mapstructure:"seed"`
	Trace bool  `mapstructure:"trace"`
	// ProgressEvery is how often, in epochs, untraced training logs its error count.
	ProgressEvery int `mapstructure:"progress_every"`
}

type DatasetSection struct {
	Name string `mapstructure:"name"`
	// File, when set, is loaded instead of Name.
	File string `mapstructure:"file"`
	// Dir holds extra dataset files addressable by name.
	Dir string `mapstructure:"dir"`
}

type LocalConfig struct {
	Path    string
	Log     LogSection     `mapstructure:"log"`
	Train   TrainSection   `mapstructure:"train"`
	Dataset DatasetSection `mapstructure:"dataset"`
}

func setDefaults(v *viper.Viper) {
	dev := common.DefaultLogConfig(true)
	v.SetDefault("log.level", common.LOG_LEVEL_Name[common.LEVEL_INFO])
	v.SetDefault("log.path", dev.LogPath)
	v.SetDefault("log.rotation_max_age", dev.RotationMaxAge)
	v.SetDefault("log.rotation_time", dev.RotationTime)
	v.SetDefault("log.rotation_size", dev.RotationSize)
	v.SetDefault("log.show_line", false)
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", false)

	v.SetDefault("train.learning_rate", ml.DefaultLearningRate)
	v.SetDefault("train.max_epochs", 1000)
	v.SetDefault("train.reinforce_iterations", ml.DefaultReinforceIterations)
	v.SetDefault("train.seed", 0)
	v.SetDefault("train.trace", false)
	v.SetDefault("train.progress_every", 10)

	v.SetDefault("dataset.name", defaultDataset)
}

// flagKeys maps command line flags onto config keys; flags that are set win over the file.
var flagKeys = map[string]string{
	"lr":        "train.learning_rate",
	"epochs":    "train.max_epochs",
	"reinforce": "train.reinforce_iterations",
	"seed":      "train.seed",
	"trace":     "train.trace",
	"dataset":   "dataset.name",
	"data":      "dataset.file",
	"data-dir":  "dataset.dir",
	"log-level": "log.level",
}

// InitLocalConfig loads configuration in the order defaults, config file, PERCEPTRON_*
// environment, command flags. The config file is the --config flag when given, otherwise
// perceptron_config.* under $PERCEPTRON_CFG_PATH (default "."); a missing file is fine.
func InitLocalConfig(cmd *cobra.Command) (*LocalConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	altPath := os.Getenv(cfgPathEnv)
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName(cfgFileName)

	cmdSetConfigFile := ""
	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cmdSetConfigFile = flag.Value.String()
	}
	if cmdSetConfigFile != "" {
		v.SetConfigFile(cmdSetConfigFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cmdSetConfigFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	lc := &LocalConfig{Path: v.ConfigFileUsed()}
	if err := v.Unmarshal(lc); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	return lc, nil
}

func (c *LocalConfig) Validate() error {
	if !(c.Train.LearningRate > 0) {
		return errors.Errorf("train.learning_rate must be positive, got %v", c.Train.LearningRate)
	}
	if c.Train.MaxEpochs < 0 {
		return errors.Errorf("train.max_epochs must not be negative, got %d", c.Train.MaxEpochs)
	}
	if c.Train.ReinforceIterations <= 0 {
		return errors.Errorf("train.reinforce_iterations must be positive, got %d", c.Train.ReinforceIterations)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	for module, level := range c.Log.ModuleLevels {
		if _, err := parseLevel(level); err != nil {
			return errors.WithMessagef(err, "log.module_levels.%s", module)
		}
	}
	return nil
}

func parseLevel(level string) (common.LOG_LEVEL, error) {
	l, ok := common.LOG_LEVEL_Value[strings.ToUpper(level)]
	if !ok {
		return common.LEVEL_INFO, errors.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// LogConfig converts the log section for common.SetLogConfig.
func (c *LocalConfig) LogConfig() (*common.LogConfig, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	lc := &common.LogConfig{
		BriefMode:      strings.ToUpper(c.Log.BriefMode),
		LogPath:        c.Log.Path,
		LogLevel:       level,
		RotationMaxAge: c.Log.RotationMaxAge,
		RotationTime:   c.Log.RotationTime,
		RotationSize:   c.Log.RotationSize,
		ShowLine:       c.Log.ShowLine,
		LogInConsole:   c.Log.Console,
		LogInFile:      c.Log.File,
	}
	if len(c.Log.ModuleLevels) > 0 {
		lc.ModuleSpecialLevel = make(map[string]common.LOG_LEVEL, len(c.Log.ModuleLevels))
		for module, l := range c.Log.ModuleLevels {
			if lc.ModuleSpecialLevel[moduleName(module)], err = parseLevel(l); err != nil {
				return nil, err
			}
		}
	}
	return lc, nil
}

// moduleName accepts "trace" as well as "[Trace]".
func moduleName(key string) string {
	if strings.HasPrefix(key, "[") {
		return key
	}
	if key == "" {
		return key
	}
	return "[" + strings.ToUpper(key[:1]) + key[1:] + "]"
}

// PerceptronOptions turns the train section into classifier options.
func (c *LocalConfig) PerceptronOptions() []ml.Option {
	return []ml.Option{
		ml.WithLearningRate(c.Train.LearningRate),
		ml.WithReinforceIterations(c.Train.ReinforceIterations),
	}
}
