package mzap

import (
	"context"

	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	"go.uber.org/zap"
)

// ZapLogger is a mlog.Logger backed directly by a zap.SugaredLogger.
type ZapLogger struct {
	Logger *zap.SugaredLogger
}

// Info implements Info Logger interface function.
func (l *ZapLogger) Info(args ...any) { l.Logger.Info(args...) }

// Infof implements Infof Logger interface function.
func (l *ZapLogger) Infof(format string, args ...any) { l.Logger.Infof(format, args...) }

// Infoln implements Infoln Logger interface function.
func (l *ZapLogger) Infoln(args ...any) { l.Logger.Infoln(args...) }

// InfofContext logs at Info level; ctx is accepted for interface parity
// but carries no span since this build has no tracing exporter.
func (l *ZapLogger) InfofContext(_ context.Context, format string, args ...any) {
	l.Logger.Infof(format, args...)
}

// InfowContext logs at Info level with structured key/value pairs.
func (l *ZapLogger) InfowContext(_ context.Context, format string, keysAndValues ...any) {
	l.Logger.Infow(format, keysAndValues...)
}

// Error implements Error Logger interface function.
func (l *ZapLogger) Error(args ...any) { l.Logger.Error(args...) }

// Errorf implements Errorf Logger interface function.
func (l *ZapLogger) Errorf(format string, args ...any) { l.Logger.Errorf(format, args...) }

// Errorln implements Errorln Logger interface function
func (l *ZapLogger) Errorln(args ...any) { l.Logger.Errorln(args...) }

// ErrorfContext logs at Error level.
func (l *ZapLogger) ErrorfContext(_ context.Context, format string, args ...any) {
	l.Logger.Errorf(format, args...)
}

// ErrorwContext logs at Error level with structured key/value pairs.
func (l *ZapLogger) ErrorwContext(_ context.Context, format string, keysAndValues ...any) {
	l.Logger.Errorw(format, keysAndValues...)
}

// Warn implements Warn Logger interface function.
func (l *ZapLogger) Warn(args ...any) { l.Logger.Warn(args...) }

// Warnf implements Warnf Logger interface function.
func (l *ZapLogger) Warnf(format string, args ...any) { l.Logger.Warnf(format, args...) }

// Warnln implements Warnln Logger interface function
func (l *ZapLogger) Warnln(args ...any) { l.Logger.Warnln(args...) }

// WarnfContext logs at Warn level.
func (l *ZapLogger) WarnfContext(_ context.Context, format string, args ...any) {
	l.Logger.Warnf(format, args...)
}

// WarnwContext logs at Warn level with structured key/value pairs.
func (l *ZapLogger) WarnwContext(_ context.Context, format string, keysAndValues ...any) {
	l.Logger.Warnw(format, keysAndValues...)
}

// Debug implements Debug Logger interface function.
func (l *ZapLogger) Debug(args ...any) { l.Logger.Debug(args...) }

// Debugf implements Debugf Logger interface function.
func (l *ZapLogger) Debugf(format string, args ...any) { l.Logger.Debugf(format, args...) }

// Debugln implements Debugln Logger interface function
func (l *ZapLogger) Debugln(args ...any) { l.Logger.Debugln(args...) }

// DebugfContext logs at Debug level.
func (l *ZapLogger) DebugfContext(_ context.Context, format string, args ...any) {
	l.Logger.Debugf(format, args...)
}

// DebugwContext logs at Debug level with structured key/value pairs.
func (l *ZapLogger) DebugwContext(_ context.Context, format string, keysAndValues ...any) {
	l.Logger.Debugw(format, keysAndValues...)
}

// Fatal implements Fatal Logger interface function.
func (l *ZapLogger) Fatal(args ...any) { l.Logger.Fatal(args...) }

// Fatalf implements Fatalf Logger interface function.
func (l *ZapLogger) Fatalf(format string, args ...any) { l.Logger.Fatalf(format, args...) }

// Fatalln implements Fatalln Logger interface function
func (l *ZapLogger) Fatalln(args ...any) { l.Logger.Fatalln(args...) }

// FatalfContext logs at Fatal level.
func (l *ZapLogger) FatalfContext(_ context.Context, format string, args ...any) {
	l.Logger.Fatalf(format, args...)
}

// FatalwContext logs at Fatal level with structured key/value pairs.
func (l *ZapLogger) FatalwContext(_ context.Context, format string, keysAndValues ...any) {
	l.Logger.Fatalw(format, keysAndValues...)
}

// WithFields adds structured context to the logger. It returns a new logger and leaves the original unchanged.
//
//nolint:ireturn
func (l *ZapLogger) WithFields(fields ...any) mlog.Logger {
	return &ZapLogger{
		Logger: l.Logger.With(fields...),
	}
}

// Sync flushes any buffered log entries.
func (l *ZapLogger) Sync() error {
	return l.Logger.Sync()
}
