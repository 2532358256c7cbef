package logging

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a leveled structured logger carried through the whole service.
// It wraps logrus entries so that enriched loggers can be passed around
// under the same interface.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields logrus.Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	SetLevel(level logrus.Level)
}

type logger struct {
	*logrus.Entry
}

func New() Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger{logrus.NewEntry(log)}
}

func (l logger) WithField(key string, value interface{}) Logger {
	return logger{l.Entry.WithField(key, value)}
}

func (l logger) WithFields(fields logrus.Fields) Logger {
	return logger{l.Entry.WithFields(fields)}
}

func (l logger) WithError(err error) Logger {
	return logger{l.Entry.WithError(err)}
}

func (l logger) SetLevel(level logrus.Level) {
	l.Entry.Logger.SetLevel(level)
}

type loggerContextKey struct{}

func WithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

func LoggerFromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(Logger); ok {
		return log
	}
	return New()
}
