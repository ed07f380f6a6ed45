package logging

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// temporalLogger routes Temporal SDK logs through zap
type temporalLogger struct {
	s *zap.SugaredLogger
}

// Temporal adapts l to the Temporal SDK logger interface
func Temporal(l *zap.Logger) log.Logger {
	return &temporalLogger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (t *temporalLogger) Debug(msg string, keyvals ...interface{}) { t.s.Debugw(msg, keyvals...) }
func (t *temporalLogger) Info(msg string, keyvals ...interface{})  { t.s.Infow(msg, keyvals...) }
func (t *temporalLogger) Warn(msg string, keyvals ...interface{})  { t.s.Warnw(msg, keyvals...) }
func (t *temporalLogger) Error(msg string, keyvals ...interface{}) { t.s.Errorw(msg, keyvals...) }

func (t *temporalLogger) With(keyvals ...interface{}) log.Logger {
	return &temporalLogger{s: t.s.With(keyvals...)}
}
