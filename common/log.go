package common

import (
	"log"
	"os"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 日志级别，int类型，内部接口使用常量
type LOG_LEVEL int

const (
	LEVEL_DEBUG LOG_LEVEL = iota
	LEVEL_INFO
	LEVEL_WARN
	LEVEL_ERROR
)

var (
	LOG_LEVEL_Name = map[LOG_LEVEL]string{
		0: "DEBUG",
		1: "INFO",
		2: "WARN",
		3: "ERROR",
	}
	LOG_LEVEL_Value = map[string]LOG_LEVEL{
		"DEBUG": 0,
		"INFO":  1,
		"WARN":  2,
		"ERROR": 3,
	}
)

const (
	LOG_MODE_DEV  = "DEV"
	LOG_MODE_PROD = "PROD"
)

type LogConfig struct {
	BriefMode          string
	ModuleSpecialLevel map[string]LOG_LEVEL // per-module level override

	LogPath        string
	LogLevel       LOG_LEVEL
	RotationMaxAge int // days to keep rotated files
	RotationTime   int // hours between rotations
	RotationSize   int // MB before a forced rotation
	ShowLine       bool
	LogInConsole   bool
	LogInFile      bool
}

// DefaultLogConfig is used when nothing was configured before the first GetLogger call.
func DefaultLogConfig(isDEV bool) *LogConfig {
	if isDEV {
		return defaultBriefLogConfigForDEV()
	}

	return defaultBriefLogConfigForPROD()
}

func defaultBriefLogConfigForDEV() *LogConfig {
	return &LogConfig{
		LogPath:        "./log/perceptron.dev.log",
		LogLevel:       LEVEL_DEBUG,
		RotationMaxAge: 1,
		RotationTime:   1,
		RotationSize:   10,
		ShowLine:       true,
		LogInConsole:   true,
		LogInFile:      true,
	}
}

func defaultBriefLogConfigForPROD() *LogConfig {
	return &LogConfig{
		LogPath:        "./log/perceptron.prod.log",
		LogLevel:       LEVEL_INFO,
		RotationMaxAge: 7,
		RotationTime:   24,
		RotationSize:   30,
		ShowLine:       true,
		LogInConsole:   false,
		LogInFile:      true,
	}
}

func adjustLogConfig(name string, lc *LogConfig) *LogConfig {
	if lc.BriefMode != "" {
		return DefaultLogConfig(lc.BriefMode != LOG_MODE_PROD)
	}

	newC := *lc
	if level, ok := lc.ModuleSpecialLevel[name]; ok {
		newC.LogLevel = level
	}
	newC.ModuleSpecialLevel = nil
	return &newC
}

func zapLevelOf(level LOG_LEVEL) zapcore.Level {
	switch level {
	case LEVEL_DEBUG:
		return zap.DebugLevel
	case LEVEL_INFO:
		return zap.InfoLevel
	case LEVEL_WARN:
		return zap.WarnLevel
	case LEVEL_ERROR:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func NewSugaredLogger(name string, lc *LogConfig) *zap.SugaredLogger {
	lcc := adjustLogConfig(name, lc)
	//1.level
	zapLevel := zapLevelOf(lcc.LogLevel)
	priorityLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	//2.syncer
	var syncers []zapcore.WriteSyncer
	if lcc.LogInFile {
		fileName := lcc.LogPath + ".%Y%m%d%H"
		rotationWriter, err := rotatelogs.New(
			fileName,
			rotatelogs.WithRotationTime(time.Duration(lcc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lcc.RotationSize*1024*1024)),
			rotatelogs.WithMaxAge(time.Hour*24*time.Duration(lcc.RotationMaxAge)),
		)
		if err != nil {
			log.Fatalf("new rotation log failed, %s", err)
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}
	if lcc.LogInConsole {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	syncer := zapcore.NewMultiWriteSyncer(syncers...)

	//3.encoder
	customLevelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	customTimeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	//4.core
	core := zapcore.NewCore(encoder, syncer, priorityLevel)
	//5.SugaredLogger
	logger := zap.New(core).Named(name)
	defer logger.Sync()

	var opts []zap.Option
	if lcc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}
	// wrapped by PerceptronLogger, skip one frame
	opts = append(opts, zap.AddCallerSkip(1))
	logger = logger.WithOptions(opts...)

	return logger.Sugar()
}

const (
	MODULE_PERCEPTRON = "[Perceptron]"
	MODULE_DATASET    = "[Dataset]"
	MODULE_TRACE      = "[Trace]"
	MODULE_NODE       = "[Node]"
	MODULE_CONFIG     = "[Config]"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type PerceptronLogger struct {
	zlog      *zap.SugaredLogger
	name      string
	sessionID string
	mutex     sync.RWMutex
}

func (l *PerceptronLogger) Logger() *zap.SugaredLogger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.zlog
}

func (l *PerceptronLogger) Debug(args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Debug(args...)
}

func (l *PerceptronLogger) Debugf(format string, args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Debugf(format, args...)
}

func (l *PerceptronLogger) Error(args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Error(args...)
}

func (l *PerceptronLogger) Errorf(format string, args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Errorf(format, args...)
}

func (l *PerceptronLogger) Fatal(args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Fatal(args...)
}

func (l *PerceptronLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Fatalf(format, args...)
}

func (l *PerceptronLogger) Info(args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Info(args...)
}

func (l *PerceptronLogger) Infof(format string, args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Infof(format, args...)
}

func (l *PerceptronLogger) Warn(args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Warn(args...)
}

func (l *PerceptronLogger) Warnf(format string, args ...interface{}) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.zlog.Warnf(format, args...)
}

func (l *PerceptronLogger) SetLogger(logger *zap.SugaredLogger) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.zlog = logger
}

func (l *PerceptronLogger) Sync() error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.zlog.Sync()
}

var (
	loggersMap    = make(map[string]*PerceptronLogger)
	loggerMutex   sync.RWMutex
	globalLogConf *LogConfig
)

func GetLogger(name string) *PerceptronLogger {
	return GetLoggerWithSessionID(name, "")
}

// GetLoggerWithSessionID returns a logger whose lines carry the given session id.
func GetLoggerWithSessionID(name, sessionID string) *PerceptronLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	loggerKey := name + sessionID
	if logger, ok := loggersMap[loggerKey]; ok {
		return logger
	}

	if globalLogConf == nil {
		globalLogConf = DefaultLogConfig(true)
	}

	logger := &PerceptronLogger{
		name:      name,
		sessionID: sessionID,
		zlog:      newSessionLogger(name, sessionID, globalLogConf),
	}
	loggersMap[loggerKey] = logger

	return logger
}

func newSessionLogger(name, sessionID string, lc *LogConfig) *zap.SugaredLogger {
	zlog := NewSugaredLogger(name, lc)
	if sessionID != "" {
		zlog = zlog.With("session", sessionID)
	}
	return zlog
}

// SetLogConfig replaces the global config and rebuilds every logger handed out so far.
func SetLogConfig(config *LogConfig) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	globalLogConf = config
	for _, logger := range loggersMap {
		logger.SetLogger(newSessionLogger(logger.name, logger.sessionID, globalLogConf))
	}
}
