package xlog

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logLevel string

const (
	LogLevelDebug logLevel = "DEBUG"
	LogLevelInfo  logLevel = "INFO"
	LogLevelWarn  logLevel = "WARN"
	LogLevelError logLevel = "ERROR"
)

func (lvl logLevel) String() string {
	return string(lvl)
}

type logEncoderType uint8

const (
	JSON logEncoderType = iota
	PlainText
	_encMax
)

const coreKeyIgnored = ""

var (
	stdoutOnce sync.Once
	stdoutWS   zapcore.WriteSyncer
)

// The stdout syncer is shared by all loggers in the process.
// Records are flushed by interval or by XLogger.Sync.
func getStdOutWriteSyncer() zapcore.WriteSyncer {
	stdoutOnce.Do(func() {
		stdoutWS = &zapcore.BufferedWriteSyncer{
			WS:            zapcore.Lock(os.Stdout),
			Size:          512 * 1024,
			FlushInterval: 30 * time.Second,
		}
	})
	return stdoutWS
}

func getOutWriteSyncer(w io.Writer) zapcore.WriteSyncer {
	if w == nil {
		return getStdOutWriteSyncer()
	}
	if ws, ok := w.(zapcore.WriteSyncer); ok {
		return zapcore.Lock(ws)
	}
	return zapcore.Lock(zapcore.AddSync(w))
}

// XLogger mainly implemented by Uber zap logger.
//
// ErrorStack is used to print the captured stack of an
// infra.ErrorStack error as structured fields instead of
// the zap default stacktrace string.
//
// Log format is not recommended, because it is low performance.
type XLogger interface {
	IncreaseLogLevel(level zapcore.Level)
	Level() string
	Sync() error

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)
	ErrorStack(err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)
}
