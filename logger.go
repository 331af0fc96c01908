package casdoor

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Logger is a generic logging interface for the client. The transport's
// debug logging accepts the same interface.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// CallEvent describes one finished API call.
type CallEvent struct {
	Action   string
	Method   string
	URL      string
	Outcome  string
	Duration time.Duration
	Err      error
}

// CallLogger is implemented by loggers that record finished calls as
// structured entries. Other loggers get a formatted debug line instead.
// Successful calls are logged at debug level, failed ones at warn.
type CallLogger interface {
	LogCall(event CallEvent)
}

const callMessage = "casdoor call"

// NoopLogger discards everything. It is the client's default.
type NoopLogger struct{}

func (NoopLogger) Debugf(string, ...interface{}) {}
func (NoopLogger) Infof(string, ...interface{})  {}
func (NoopLogger) Warnf(string, ...interface{})  {}
func (NoopLogger) Errorf(string, ...interface{}) {}

// NewZapLogger returns a Logger for l. Calls are logged with zap's
// key-value pairs.
func NewZapLogger(l *zap.SugaredLogger) Logger {
	return zapLogger{l}
}

type zapLogger struct{ *zap.SugaredLogger }

func (z zapLogger) LogCall(e CallEvent) {
	kv := []interface{}{
		"action", e.Action,
		"method", e.Method,
		"url", e.URL,
		"outcome", e.Outcome,
		"duration", e.Duration,
	}
	if e.Err != nil {
		z.Warnw(callMessage, append(kv, "error", e.Err)...)
		return
	}
	z.Debugw(callMessage, kv...)
}

// NewZerologLogger returns a Logger for l. Calls are logged as zerolog
// fields.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l}
}

type zerologLogger struct{ l zerolog.Logger }

func (z zerologLogger) logf(level zerolog.Level, format string, args []interface{}) {
	z.l.WithLevel(level).Msgf(format, args...)
}

func (z zerologLogger) Debugf(format string, args ...interface{}) {
	z.logf(zerolog.DebugLevel, format, args)
}
func (z zerologLogger) Infof(format string, args ...interface{}) {
	z.logf(zerolog.InfoLevel, format, args)
}
func (z zerologLogger) Warnf(format string, args ...interface{}) {
	z.logf(zerolog.WarnLevel, format, args)
}
func (z zerologLogger) Errorf(format string, args ...interface{}) {
	z.logf(zerolog.ErrorLevel, format, args)
}

func (z zerologLogger) LogCall(e CallEvent) {
	ev := z.l.Debug()
	if e.Err != nil {
		ev = z.l.Warn().Err(e.Err)
	}
	ev.Str("action", e.Action).
		Str("method", e.Method).
		Str("url", e.URL).
		Str("outcome", e.Outcome).
		Dur("duration", e.Duration).
		Msg(callMessage)
}

// NewLogrusLogger returns a Logger for l. Calls are logged with
// logrus.Fields.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return logrusLogger{l}
}

type logrusLogger struct{ logrus.FieldLogger }

func (l logrusLogger) LogCall(e CallEvent) {
	entry := l.WithFields(logrus.Fields{
		"action":   e.Action,
		"method":   e.Method,
		"url":      e.URL,
		"outcome":  e.Outcome,
		"duration": e.Duration,
	})
	if e.Err != nil {
		entry.WithError(e.Err).Warn(callMessage)
		return
	}
	entry.Debug(callMessage)
}
