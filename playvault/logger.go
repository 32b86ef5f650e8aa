package playvault

import (
	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"
)

// zapLogger adapts a zap logger to the runtime.Logger surface so the service
// can run outside the host process (tests, standalone tools) with the same
// logging everywhere.
type zapLogger struct {
	sugar  *zap.SugaredLogger
	fields map[string]interface{}
}

func NewZapLogger(base *zap.Logger) runtime.Logger {
	return &zapLogger{
		sugar:  base.Sugar(),
		fields: make(map[string]interface{}),
	}
}

func (l *zapLogger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *zapLogger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *zapLogger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *zapLogger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

func (l *zapLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *zapLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		merged[k] = v
		args = append(args, k, v)
	}
	return &zapLogger{
		sugar:  l.sugar.With(args...),
		fields: merged,
	}
}

func (l *zapLogger) Fields() map[string]interface{} {
	return l.fields
}
