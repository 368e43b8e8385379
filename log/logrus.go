package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	logger *logrus.Logger
	level  Level
	closer io.Closer
}

type Option func(*Logger)

// WithOutput replaces stdout as the log destination.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.logger.SetOutput(w)
	}
}

// WithFile duplicates log output into a size-rotated file.
func WithFile(path string) Option {
	return func(l *Logger) {
		if path == "" {
			return
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 5,
			Compress:   true,
		}
		l.logger.SetOutput(io.MultiWriter(l.logger.Out, rotator))
		l.closer = rotator
	}
}

func NewLogger(level Level, options ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.999999999Z07:00",
	})
	base.SetLevel(level.logrus())

	l := &Logger{logger: base, level: level}
	for _, opt := range options {
		opt(l)
	}
	if level == SilentLevel {
		l.logger.SetOutput(io.Discard)
	}
	return l
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Logf(lvl Level, template string, args ...any) {
	if l.level == SilentLevel || lvl < l.level {
		return
	}
	switch lvl {
	case DebugLevel:
		l.logger.Debugf(template, args...)
	case InfoLevel:
		l.logger.Infof(template, args...)
	case WarnLevel:
		l.logger.Warnf(template, args...)
	default:
		l.logger.Errorf(template, args...)
	}
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
