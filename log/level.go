package log

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level int

// Levels are aliases for Level.
const (
	DebugLevel   Level = 0
	InfoLevel    Level = 1
	WarnLevel    Level = 2
	ErrorLevel   Level = 3
	FatalLevel   Level = 6
	InvalidLevel Level = -1
	SilentLevel  Level = 7
)

// ParseLevel maps a level name to a Level.
func ParseLevel(text string) (Level, error) {
	switch strings.ToLower(text) {
	case "silent":
		return SilentLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InvalidLevel, fmt.Errorf("invalid level: %q", text)
	}
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case SilentLevel:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel, SilentLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
