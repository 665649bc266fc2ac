// Package logger is a small levelled key/value logger over zap.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	z *zap.SugaredLogger
}

// New logs to stderr in console format at the given level ("debug", "info",
// "warn", "error"); unknown levels fall back to info.
func New(levelStr string) *Logger {
	return NewWriter(levelStr, "console", os.Stderr)
}

func NewWriter(levelStr, format string, w io.Writer) *Logger {
	lvl, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return FromZap(zap.New(core))
}

func FromZap(z *zap.Logger) *Logger { return &Logger{z: z.Sugar()} }

func Nop() *Logger { return FromZap(zap.NewNop()) }

func (l *Logger) With(fields ...any) *Logger { return &Logger{z: l.z.With(fields...)} }

func (l *Logger) Debug(msg string, fields ...any) { l.z.Debugw(msg, fields...) }
func (l *Logger) Info(msg string, fields ...any)  { l.z.Infow(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...any)  { l.z.Warnw(msg, fields...) }
func (l *Logger) Error(msg string, fields ...any) { l.z.Errorw(msg, fields...) }

func (l *Logger) Sync() { _ = l.z.Sync() }
