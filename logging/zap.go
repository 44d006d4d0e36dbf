package logging

import (
	"context"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to the Logger interface. Output is JSON
// with ISO8601 timestamps.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a JSON logger writing to stderr at InfoLevel
func NewZapLogger() *ZapLogger {
	return NewZapLoggerWithWriter(os.Stderr)
}

// NewZapLoggerWithWriter creates a JSON logger writing to w
func NewZapLoggerWithWriter(w io.Writer) *ZapLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), level)

	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		level:  level,
	}
}

// convertLevel maps a Level onto the matching zap level
func convertLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []Fields) []zap.Field {
	var keys []string
	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			if _, seen := merged[k]; !seen {
				keys = append(keys, k)
			}
			merged[k] = v
		}
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, merged[k]))
	}
	return out
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	z.logger.Debug(msg, zapFields(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	z.logger.Info(msg, zapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	z.logger.Warn(msg, zapFields(fields)...)
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	z.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	z.logger.Fatal(msg, append(zapFields(fields), zap.Error(err))...)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		logger: z.logger.With(zapFields([]Fields{fields})...),
		level:  z.level,
	}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := fieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

// SetLevel changes the level for this logger and every logger derived from it
func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(convertLevel(level))
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (z *ZapLogger) Sync() error {
	if err := z.logger.Sync(); err != nil {
		if isTerminal() {
			return nil
		}
		return err
	}
	return nil
}
