package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel = zap.NewAtomicLevelAt(LevelInfo)

var baseLogger = newConsole()

func newConsole() *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), currentLevel)
	return zap.New(core).Sugar()
}

// Initialize switches the backend between console (default) and JSON output on stderr.
func Initialize(jsonOutput bool) error {
	if !jsonOutput {
		baseLogger = newConsole()
		return nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = currentLevel
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build json logger: %w", err)
	}
	baseLogger = l.Sugar()
	return nil
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	currentLevel.SetLevel(l)
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return currentLevel.Level() }

// Sync flushes buffered entries.
func Sync() { _ = baseLogger.Sync() }

func logf(l LogLevel, format string, args ...interface{}) {
	if !currentLevel.Enabled(l) {
		return
	}
	// Only format when there are args; a pre-formatted message may contain literal '%'.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	switch l {
	case LevelDebug:
		baseLogger.Debug(msg)
	case LevelWarn:
		baseLogger.Warn(msg)
	case LevelError:
		baseLogger.Error(msg)
	default:
		baseLogger.Info(msg)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Timing helper for pipeline stages.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
