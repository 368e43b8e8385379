package log

import (
	"os"
	"sync"
)

// global Logger.
var (
	_globalMu sync.RWMutex
	_globalL  *Logger
)

func init() {
	SetLogger(NewLogger(InfoLevel))
}

// NewLeveled builds a Logger for an already parsed level.
func NewLeveled(l Level, options ...Option) (*Logger, error) {
	switch l {
	case SilentLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return NewLogger(l, options...), nil
	default:
		return nil, os.ErrInvalid
	}
}

// SetLogger sets the global Logger and returns the previous one.
func SetLogger(logger *Logger) *Logger {
	_globalMu.Lock()
	defer _globalMu.Unlock()
	prev := _globalL
	_globalL = logger
	return prev
}

func current() *Logger {
	_globalMu.RLock()
	defer _globalMu.RUnlock()
	return _globalL
}

func logf(lvl Level, template string, args ...any) {
	current().Logf(lvl, template, args...)
}

// IsDebugEnabled reports whether Debugf output is emitted.
func IsDebugEnabled() bool {
	return current().Level() == DebugLevel
}

func Debugf(template string, args ...any) {
	logf(DebugLevel, template, args...)
}

func Infof(template string, args ...any) {
	logf(InfoLevel, template, args...)
}

func Warnf(template string, args ...any) {
	logf(WarnLevel, template, args...)
}

func Errorf(template string, args ...any) {
	logf(ErrorLevel, template, args...)
}

func Fatalf(template string, args ...any) {
	logf(ErrorLevel, template, args...)
	_ = current().Close()
	os.Exit(1)
}
