// Package logger provides the structured logger used across the service.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/devlink-network/devlink/internal/logging"
)

// Logger wraps a logrus entry bound to a service name.
type Logger struct {
	entry *logrus.Entry
}

// New builds a logger for the named service with the given level ("debug",
// "info", "warn", "error") and format ("json" or "text").
func New(service, level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Logger{entry: l.WithField("service", service)}
}

// NewDefault builds an info-level JSON logger for the named service.
func NewDefault(service string) *Logger {
	return New(service, "info", "json")
}

// SetOutput redirects log output; used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// WithField returns a logger with an extra field attached.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger with extra fields attached.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithError returns a logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// WithContext attaches the trace id and acting account id carried by ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := logrus.Fields{}
	if traceID := logging.GetTraceID(ctx); traceID != "" {
		fields["trace_id"] = traceID
	}
	if accountID := logging.GetAccountID(ctx); accountID != "" {
		fields["account_id"] = accountID
	}
	if len(fields) == 0 {
		return l
	}
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
