package xlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xrbt/lib/infra"
)

type xLogger struct {
	logger              *zap.Logger
	dynamicLevelEnabler zap.AtomicLevel
}

// IncreaseLogLevel we can increase or decrease the log level concurrently.
func (l *xLogger) IncreaseLogLevel(level zapcore.Level) {
	l.dynamicLevelEnabler.SetLevel(level)
}

func (l *xLogger) Sync() error {
	return l.logger.Sync()
}

func (l *xLogger) Level() string {
	return l.dynamicLevelEnabler.Level().String()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	l.logger.Error(msg, append(newFields, fields...)...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	l.logger.Error(msg, append(errorStackFields(err), fields...)...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	if !l.dynamicLevelEnabler.Enabled(lvl) {
		return
	}
	l.logger.Log(lvl, fmt.Sprintf(format, args...))
}

// Plain errors are logged as the "error" field only.
func errorStackFields(err error) []zap.Field {
	if err == nil {
		return []zap.Field{}
	}
	if es, ok := err.(infra.ErrorStack); ok && es != nil {
		return []zap.Field{zap.Inline(es)}
	}
	return []zap.Field{zap.String("error", err.Error())}
}

func newEncoderCfg() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "lvl",
		TimeKey:        "ts",
		CallerKey:      "callAt",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		FunctionKey:    coreKeyIgnored,
		NameKey:        "component",
		EncodeName:     zapcore.FullNameEncoder,
		StacktraceKey:  coreKeyIgnored,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

type loggerCfg struct {
	encoderType logEncoderType
	level       *zapcore.Level
	writer      io.Writer
}

func (cfg *loggerCfg) core(lvlEnabler zapcore.LevelEnabler) zapcore.Core {
	var enc zapcore.Encoder
	switch cfg.encoderType {
	case PlainText:
		enc = zapcore.NewConsoleEncoder(newEncoderCfg())
	default:
		enc = zapcore.NewJSONEncoder(newEncoderCfg())
	}
	return zapcore.NewCore(enc, getOutWriteSyncer(cfg.writer), lvlEnabler)
}

type XLoggerOption func(*loggerCfg) error

// NewXLogger builds a single core logger. Without options, the JSON
// records are written into the buffered stdout and the level is read
// from env XLOG_LVL.
func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{encoderType: JSON}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			panic(err)
		}
	}
	xl := &xLogger{}
	if cfg.level != nil {
		xl.dynamicLevelEnabler = zap.NewAtomicLevelAt(*cfg.level)
	} else {
		xl.dynamicLevelEnabler = zap.NewAtomicLevelAt(getLogLevelOrDefault(os.Getenv("XLOG_LVL")))
	}
	// Disable zap logger error stack.
	xl.logger = zap.New(
		cfg.core(xl.dynamicLevelEnabler),
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	)
	return xl
}

// WithXLoggerWriter redirects the output from the buffered stdout to w.
func WithXLoggerWriter(w io.Writer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w == nil {
			return infra.NewErrorStack("[XLogger] nil writer")
		}
		cfg.writer = w
		return nil
	}
}

func WithXLoggerEncoder(logEnc logEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("[XLogger] unknown encoder")
		}
		cfg.encoderType = logEnc
		return nil
	}
}

// WithXLoggerStrLevel accepts the level name in any letter case,
// for example from a command line flag.
func WithXLoggerStrLevel(lvl string) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := getLogLevelOrDefault(lvl)
		cfg.level = &_lvl
		return nil
	}
}

func getLogLevelOrDefault(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LogLevelInfo.String():
		return zapcore.InfoLevel
	case LogLevelWarn.String():
		return zapcore.WarnLevel
	case LogLevelError.String():
		return zapcore.ErrorLevel
	case LogLevelDebug.String():
		fallthrough
	default:
	}
	return zapcore.DebugLevel
}
