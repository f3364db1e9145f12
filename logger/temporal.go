package logger

import (
	"go.uber.org/zap"

	"go.temporal.io/sdk/log"
)

// TemporalAdapter routes Temporal SDK logging through zap so client and
// worker logs share one output with the rest of the service.
type TemporalAdapter struct {
	s *zap.SugaredLogger
}

var _ log.Logger = (*TemporalAdapter)(nil)

// NewTemporalAdapter wraps a zap logger for use in client.Options.Logger.
func NewTemporalAdapter(l *zap.Logger) *TemporalAdapter {
	return &TemporalAdapter{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a *TemporalAdapter) Debug(msg string, keyvals ...interface{}) {
	a.s.Debugw(msg, keyvals...)
}

func (a *TemporalAdapter) Info(msg string, keyvals ...interface{}) {
	a.s.Infow(msg, keyvals...)
}

func (a *TemporalAdapter) Warn(msg string, keyvals ...interface{}) {
	a.s.Warnw(msg, keyvals...)
}

func (a *TemporalAdapter) Error(msg string, keyvals ...interface{}) {
	a.s.Errorw(msg, keyvals...)
}
