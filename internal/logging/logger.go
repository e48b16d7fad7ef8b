package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	baseLogger *logrus.Logger
	initOnce   sync.Once
)

// Init configures the process logger once. Later calls return the same logger
// and ignore their arguments.
func Init(level, format string) *logrus.Logger {
	initOnce.Do(func() {
		baseLogger = New(level, format)
	})
	return baseLogger
}

// New builds a standalone logger. level falls back to info when it cannot be parsed.
func New(level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:          true,
			TimestampFormat:        "2006-01-02T15:04:05-07:00",
			PadLevelText:           true,
			DisableLevelTruncation: true,
		})
	}

	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		lvl = "info"
	}
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return l
}

// L returns the process logger, initialising it from the environment if Init
// has not been called yet.
func L() *logrus.Logger {
	return Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}
